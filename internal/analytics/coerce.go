package analytics

import (
	"math"
	"strconv"
	"strings"
)

// placeholderTokens are spellings BLS and O*NET publications use for
// suppressed or unavailable measurements. They coerce to nil, never to zero.
var placeholderTokens = map[string]struct{}{
	"":    {},
	"n/a": {},
	"na":  {},
	"*":   {},
	"**":  {},
	"#":   {},
	"~":   {},
}

// ParseMeasure converts a raw measurement field to a float, or nil when the
// value is absent, a known placeholder, or not numeric. It never fails:
// stray text tokens in numeric columns become nil and are skipped by every
// downstream aggregate.
func ParseMeasure(raw string) *float64 {
	s := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := placeholderTokens[s]; ok {
		return nil
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// TruthySet is the allow-list of spellings accepted as "true" for the
// annual/hourly release flags. The set is configurable because the
// exhaustiveness of any fixed list against source data is unverified.
type TruthySet map[string]struct{}

// NewTruthySet builds a TruthySet from the given spellings, lowercased.
func NewTruthySet(spellings ...string) TruthySet {
	set := make(TruthySet, len(spellings))
	for _, s := range spellings {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return set
}

// DefaultTruthySet covers the spellings observed in OEWS releases.
func DefaultTruthySet() TruthySet {
	return NewTruthySet("true", "t", "yes", "y", "1")
}

// Truthy reports whether the raw flag value is in the allow-list.
func (t TruthySet) Truthy(raw string) bool {
	_, ok := t[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// Round2 rounds to 2 decimal places. Applied only at the output boundary;
// internal sums and ratios keep full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round2p(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := Round2(*v)
	return &r
}
