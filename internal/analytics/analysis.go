package analytics

import (
	"sort"

	"soclens/pkg/contracts/domain"
)

// AverageWageByMajorGroup averages the annual mean wage of closest-parent
// rows per SOC major group (first two digits of the detailed code). Rows
// without a parseable major group or wage are skipped. Sorted by average
// wage descending, group ascending on ties.
func AverageWageByMajorGroup(rows []domain.ClosestWageRow) []domain.MajorGroupRow {
	groups := make(map[string][]*float64)
	for _, r := range rows {
		g, ok := MajorGroup(r.SOCCode)
		if !ok {
			continue
		}
		groups[g] = append(groups[g], r.AMean)
	}

	out := make([]domain.MajorGroupRow, 0, len(groups))
	for g, wages := range groups {
		if m := simpleMean(wages); m != nil {
			out = append(out, domain.MajorGroupRow{MajorGroup: g, AvgAMean: Round2(*m)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgAMean != out[j].AvgAMean {
			return out[i].AvgAMean > out[j].AvgAMean
		}
		return out[i].MajorGroup < out[j].MajorGroup
	})
	return out
}

// ReleaseFlagCounts tallies how many occupation rows carry truthy annual
// and hourly release flags.
type ReleaseFlagCounts struct {
	Annual int
	Hourly int
	Both   int
}

// CountReleaseFlags classifies the annual/hourly flags of every row against
// the allow-list.
func CountReleaseFlags(records []domain.OccupationRecord, set TruthySet) ReleaseFlagCounts {
	var c ReleaseFlagCounts
	for _, r := range records {
		annual := set.Truthy(r.Annual)
		hourly := set.Truthy(r.Hourly)
		if annual {
			c.Annual++
		}
		if hourly {
			c.Hourly++
		}
		if annual && hourly {
			c.Both++
		}
	}
	return c
}

// TopCodesByWage ranks detailed codes by their average annual mean wage
// across closest-parent rows (a code usually appears once per skill) and
// returns the top n. Sorted by wage descending, code ascending on ties.
func TopCodesByWage(rows []domain.ClosestWageRow, n int) []domain.TopCodeRow {
	byCode := make(map[string][]*float64)
	for _, r := range rows {
		byCode[r.SOCCode] = append(byCode[r.SOCCode], r.AMean)
	}

	out := make([]domain.TopCodeRow, 0, len(byCode))
	for code, wages := range byCode {
		if m := simpleMean(wages); m != nil {
			out = append(out, domain.TopCodeRow{SOCCode: code, AvgAMean: Round2(*m)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgAMean != out[j].AvgAMean {
			return out[i].AvgAMean > out[j].AvgAMean
		}
		return out[i].SOCCode < out[j].SOCCode
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
