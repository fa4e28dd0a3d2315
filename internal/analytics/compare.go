package analytics

import (
	"sort"

	"soclens/pkg/contracts/domain"
)

// diffAndRatio derives the comparison metrics for one wage pair. The diff
// needs both sides; the ratio additionally needs a strictly positive
// baseline — a non-positive weighted value omits the ratio rather than
// dividing by it.
func diffAndRatio(state, weighted *float64) (diff, ratio *float64) {
	if state == nil || weighted == nil {
		return nil, nil
	}
	d := *state - *weighted
	diff = &d
	if *weighted > 0 {
		r := *state / *weighted
		ratio = &r
	}
	return diff, ratio
}

// CompareStates joins each (occupation, state) aggregate to the
// occupation's weighted baseline and emits the per-state deviation metrics.
// The all-occupations sentinel code is excluded, as are occupations with no
// weighted baseline row. Metrics are rounded at this boundary only. Output
// is sorted by occupation code, then state.
func CompareStates(states []domain.StateAggregate, weighted []domain.WeightedAggregate) []domain.StateComparisonRow {
	baseline := weightedByCode(weighted)

	out := make([]domain.StateComparisonRow, 0, len(states))
	for _, s := range states {
		if s.OccCode == domain.SentinelAllOccupations {
			continue
		}
		w, ok := baseline[s.OccCode]
		if !ok {
			continue
		}
		aDiff, aRatio := diffAndRatio(s.AvgAMean, w.WeightedAMean)
		hDiff, hRatio := diffAndRatio(s.AvgHMean, w.WeightedHMean)
		out = append(out, domain.StateComparisonRow{
			OccCode:       s.OccCode,
			OccTitle:      s.OccTitle,
			PrimState:     s.PrimState,
			StateTotEmp:   s.TotEmp,
			StateAMean:    round2p(s.AvgAMean),
			WeightedAMean: round2p(w.WeightedAMean),
			AMeanDiff:     round2p(aDiff),
			AMeanRatio:    round2p(aRatio),
			StateHMean:    round2p(s.AvgHMean),
			WeightedHMean: round2p(w.WeightedHMean),
			HMeanDiff:     round2p(hDiff),
			HMeanRatio:    round2p(hRatio),
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
