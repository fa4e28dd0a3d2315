package analytics

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"soclens/pkg/contracts/domain"
)

// simpleMean is the arithmetic mean over non-nil values; nil when the group
// has no usable value. Nils are skipped, not treated as zero.
func simpleMean(values []*float64) *float64 {
	var xs []float64
	for _, v := range values {
		if v != nil {
			xs = append(xs, *v)
		}
	}
	if len(xs) == 0 {
		return nil
	}
	m := stat.Mean(xs, nil)
	return &m
}

// weightedMean is sum(value*weight)/sum(weight) over pairwise-complete
// pairs: a row contributes only when both the value and the weight are
// non-nil and the weight is strictly positive. A zero or empty denominator
// yields nil, never a divide fault.
func weightedMean(values, weights []*float64) *float64 {
	var xs, ws []float64
	for i, v := range values {
		w := weights[i]
		if v == nil || w == nil || *w <= 0 {
			continue
		}
		xs = append(xs, *v)
		ws = append(ws, *w)
	}
	if len(xs) == 0 || floats.Sum(ws) <= 0 {
		return nil
	}
	m := stat.Mean(xs, ws)
	return &m
}

// sumIgnoreNil sums non-nil values; nils contribute nothing.
func sumIgnoreNil(values []*float64) float64 {
	var total float64
	for _, v := range values {
		if v != nil {
			total += *v
		}
	}
	return total
}

// pickTitle returns the lexicographically smallest non-empty title so the
// representative title for a group is deterministic regardless of input
// order.
func pickTitle(current, candidate string) string {
	if candidate == "" {
		return current
	}
	if current == "" || candidate < current {
		return candidate
	}
	return current
}

type stateGroup struct {
	occCode string
	state   string
	title   string
	emp     []*float64
	aMean   []*float64
	hMean   []*float64
}

// StateAggregates collapses raw occupation records into one row per
// (occ_code, prim_state): summed employment (nil-as-zero), simple average
// annual and hourly mean wages, and a deterministic representative title.
// Output is sorted by occupation code, then state.
func StateAggregates(records []domain.OccupationRecord) []domain.StateAggregate {
	type key struct{ code, state string }
	groups := make(map[key]*stateGroup)
	for _, r := range records {
		k := key{r.OccCode, r.PrimState}
		g, ok := groups[k]
		if !ok {
			g = &stateGroup{occCode: r.OccCode, state: r.PrimState}
			groups[k] = g
		}
		g.title = pickTitle(g.title, r.OccTitle)
		g.emp = append(g.emp, r.TotEmp)
		g.aMean = append(g.aMean, r.AMean)
		g.hMean = append(g.hMean, r.HMean)
	}

	out := make([]domain.StateAggregate, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.StateAggregate{
			OccCode:   g.occCode,
			OccTitle:  g.title,
			PrimState: g.state,
			TotEmp:    sumIgnoreNil(g.emp),
			AvgAMean:  simpleMean(g.aMean),
			AvgHMean:  simpleMean(g.hMean),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OccCode != out[j].OccCode {
			return out[i].OccCode < out[j].OccCode
		}
		return out[i].PrimState < out[j].PrimState
	})
	return out
}

type weightedGroup struct {
	occCode string
	title   string
	emp     []*float64
	aMean   []*float64
	hMean   []*float64
}

// WeightedAggregates collapses raw occupation records (not state
// aggregates) into one row per occ_code across all states: total
// employment, average employment per raw row, and employment-weighted
// annual and hourly mean wages. This is the national baseline every
// comparison metric is computed against. Output is sorted by occupation
// code.
func WeightedAggregates(records []domain.OccupationRecord) []domain.WeightedAggregate {
	groups := make(map[string]*weightedGroup)
	for _, r := range records {
		g, ok := groups[r.OccCode]
		if !ok {
			g = &weightedGroup{occCode: r.OccCode}
			groups[r.OccCode] = g
		}
		g.title = pickTitle(g.title, r.OccTitle)
		g.emp = append(g.emp, r.TotEmp)
		g.aMean = append(g.aMean, r.AMean)
		g.hMean = append(g.hMean, r.HMean)
	}

	out := make([]domain.WeightedAggregate, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.WeightedAggregate{
			OccCode:       g.occCode,
			OccTitle:      g.title,
			TotEmp:        sumIgnoreNil(g.emp),
			AvgEmpPerRow:  simpleMean(g.emp),
			WeightedAMean: weightedMean(g.aMean, g.emp),
			WeightedHMean: weightedMean(g.hMean, g.emp),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccCode < out[j].OccCode })
	return out
}

func weightedByCode(aggs []domain.WeightedAggregate) map[string]domain.WeightedAggregate {
	m := make(map[string]domain.WeightedAggregate, len(aggs))
	for _, a := range aggs {
		m[a.OccCode] = a
	}
	return m
}
