package analytics

import (
	"sort"

	"soclens/pkg/contracts/domain"
)

// JoinParams configures the closest-parent join. The original analysis
// hardcoded one state and one scale; both are parameters here so the join
// is reusable across regions and measurement scales.
type JoinParams struct {
	// State filters the wage side before collapsing. Raw rows whose state
	// is empty or different are excluded from the join, so skills whose
	// parent only reports elsewhere are dropped (inner-join semantics).
	State string `json:"state" validate:"required"`
	// ScaleID filters the skill side to one proficiency scale, e.g. "im"
	// (importance) or "lv" (level).
	ScaleID string `json:"scale_id" validate:"required"`
}

// DefaultJoinParams mirrors the scope of the original analysis: Maryland
// rows on the level scale.
func DefaultJoinParams() JoinParams {
	return JoinParams{State: "md", ScaleID: "lv"}
}

// ExpandToChildren fans each parent occupation's weighted metrics out to
// every distinct detailed O*NET code whose extracted parent key matches.
// Parents with no children produce nothing and children whose parent has no
// weighted row are dropped. One output row per (parent, detailed code),
// sorted by parent then child.
func ExpandToChildren(snap domain.Snapshot) []domain.SkillChildRow {
	baseline := weightedByCode(WeightedAggregates(snap.Occupations))

	// Distinct children with a deterministic representative title.
	childTitles := make(map[string]string)
	for _, s := range snap.Skills {
		childTitles[s.SOCCode] = pickTitle(childTitles[s.SOCCode], s.OccupationTitle)
	}

	out := make([]domain.SkillChildRow, 0, len(childTitles))
	for soc, title := range childTitles {
		parent := ParentCode(soc)
		if parent == domain.SentinelAllOccupations {
			continue
		}
		w, ok := baseline[parent]
		if !ok {
			continue
		}
		out = append(out, domain.SkillChildRow{
			OccCode:       w.OccCode,
			OccTitle:      w.OccTitle,
			SOCCode:       soc,
			ChildTitle:    title,
			TotEmp:        w.TotEmp,
			WeightedAMean: round2p(w.WeightedAMean),
			WeightedHMean: round2p(w.WeightedHMean),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OccCode != out[j].OccCode {
			return out[i].OccCode < out[j].OccCode
		}
		return out[i].SOCCode < out[j].SOCCode
	})
	return out
}

// collapsedWages is one (occ_code, state) wage profile built by straight
// per-field averaging of duplicate raw rows. Not employment-weighted: this
// collapse exists to guarantee exactly one wage row per parent before the
// skill join.
type collapsedWages struct {
	occCode string
	state   string
	totEmp  *float64
	aMean   *float64
	aMedian *float64
	hMean   *float64
	hMedian *float64
}

func collapseByState(records []domain.OccupationRecord, state string) map[string]collapsedWages {
	type fields struct {
		totEmp, aMean, aMedian, hMean, hMedian []*float64
	}
	groups := make(map[string]*fields)
	for _, r := range records {
		if r.PrimState != state {
			continue
		}
		g, ok := groups[r.OccCode]
		if !ok {
			g = &fields{}
			groups[r.OccCode] = g
		}
		g.totEmp = append(g.totEmp, r.TotEmp)
		g.aMean = append(g.aMean, r.AMean)
		g.aMedian = append(g.aMedian, r.AMedian)
		g.hMean = append(g.hMean, r.HMean)
		g.hMedian = append(g.hMedian, r.HMedian)
	}

	out := make(map[string]collapsedWages, len(groups))
	for code, g := range groups {
		out[code] = collapsedWages{
			occCode: code,
			state:   state,
			totEmp:  simpleMean(g.totEmp),
			aMean:   simpleMean(g.aMean),
			aMedian: simpleMean(g.aMedian),
			hMean:   simpleMean(g.hMean),
			hMedian: simpleMean(g.hMedian),
		}
	}
	return out
}

// ClosestParent joins each skill row on the requested scale to the single
// collapsed (parent occupation, state) wage row. Skill rows whose parent
// has no wage row in the requested state are dropped. One output row per
// surviving skill row, sorted by parent code, detailed code, element ID,
// then scale ID.
func ClosestParent(snap domain.Snapshot, params JoinParams) []domain.ClosestWageRow {
	collapsed := collapseByState(snap.Occupations, params.State)

	var out []domain.ClosestWageRow
	for _, s := range snap.Skills {
		if s.ScaleID != params.ScaleID {
			continue
		}
		parent := ParentCode(s.SOCCode)
		if parent == domain.SentinelAllOccupations {
			continue
		}
		w, ok := collapsed[parent]
		if !ok {
			continue
		}
		out = append(out, domain.ClosestWageRow{
			OccCode:   w.occCode,
			SOCCode:   s.SOCCode,
			SOCTitle:  s.OccupationTitle,
			ElementID: s.ElementID,
			SkillName: s.SkillName,
			ScaleID:   s.ScaleID,
			PrimState: w.state,
			TotEmp:    round2p(w.totEmp),
			AMean:     round2p(w.aMean),
			AMedian:   round2p(w.aMedian),
			HMean:     round2p(w.hMean),
			HMedian:   round2p(w.hMedian),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OccCode != out[j].OccCode {
			return out[i].OccCode < out[j].OccCode
		}
		if out[i].SOCCode != out[j].SOCCode {
			return out[i].SOCCode < out[j].SOCCode
		}
		if out[i].ElementID != out[j].ElementID {
			return out[i].ElementID < out[j].ElementID
		}
		return out[i].ScaleID < out[j].ScaleID
	})
	return out
}
