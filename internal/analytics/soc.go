package analytics

import (
	"regexp"
	"strings"
)

// detailDelimiter separates a 6-digit SOC code from its 2-digit O*NET
// suffix, e.g. "29-1141.01".
const detailDelimiter = "."

// ParentCode extracts the coarse SOC code from a detailed O*NET code by
// truncating at the first delimiter. Codes without a delimiter are already
// coarse and are returned unchanged. The mapping is many-to-one: many
// detailed codes share one parent.
func ParentCode(code string) string {
	if i := strings.Index(code, detailDelimiter); i >= 0 {
		return code[:i]
	}
	return code
}

var majorGroupPattern = regexp.MustCompile(`^(\d{2})-`)

// MajorGroup extracts the SOC major group (first two digits) from a code,
// e.g. "29-1141.01" -> "29". ok is false when the code does not start with
// a two-digit prefix.
func MajorGroup(code string) (group string, ok bool) {
	m := majorGroupPattern.FindStringSubmatch(strings.TrimSpace(code))
	if m == nil {
		return "", false
	}
	return m[1], true
}
