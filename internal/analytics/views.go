package analytics

import (
	"fmt"
	"strconv"
	"sync"

	"soclens/pkg/contracts/domain"
)

// View names. ViewClosestWage keeps the name the downstream pandas analysis
// reads.
const (
	ViewStateVsWeighted = "vw_oews_state_vs_weighted"
	ViewSkillChildren   = "vw_soc_skill_children"
	ViewClosestWage     = "vw_onet_closest_oews"
)

// ResultSet is the tabular output of one view evaluation. Nil metrics are
// rendered as empty cells.
type ResultSet struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ViewFunc evaluates one named view against an immutable snapshot.
// Re-registering a name replaces the function; live state is never mutated.
type ViewFunc func(snap domain.Snapshot, params JoinParams) ResultSet

// Registry maps view names to their evaluators. The three built-in views
// are registered by NewRegistry; callers may replace or add definitions.
type Registry struct {
	mu    sync.RWMutex
	views map[string]ViewFunc
	order []string
}

// NewRegistry returns a registry with the three built-in views registered.
func NewRegistry() *Registry {
	r := &Registry{views: make(map[string]ViewFunc)}
	r.Replace(ViewStateVsWeighted, stateVsWeightedView)
	r.Replace(ViewSkillChildren, skillChildrenView)
	r.Replace(ViewClosestWage, closestWageView)
	return r
}

// Replace registers fn under name, overwriting any previous definition.
func (r *Registry) Replace(name string, fn ViewFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.views[name]; !exists {
		r.order = append(r.order, name)
	}
	r.views[name] = fn
}

// Names returns the registered view names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Evaluate runs the named view against the snapshot.
func (r *Registry) Evaluate(name string, snap domain.Snapshot, params JoinParams) (ResultSet, error) {
	r.mu.RLock()
	fn, ok := r.views[name]
	r.mu.RUnlock()
	if !ok {
		return ResultSet{}, fmt.Errorf("view %q not registered", name)
	}
	return fn(snap, params), nil
}

func formatMetric(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stateVsWeightedView(snap domain.Snapshot, _ JoinParams) ResultSet {
	rows := CompareStates(StateAggregates(snap.Occupations), WeightedAggregates(snap.Occupations))
	rs := ResultSet{
		Name: ViewStateVsWeighted,
		Columns: []string{
			"occ_code", "occ_title", "prim_state", "state_tot_emp",
			"state_a_mean", "weighted_a_mean", "a_mean_diff", "a_mean_ratio",
			"state_h_mean", "weighted_h_mean", "h_mean_diff", "h_mean_ratio",
		},
	}
	for _, r := range rows {
		rs.Rows = append(rs.Rows, []string{
			r.OccCode, r.OccTitle, r.PrimState, formatCount(r.StateTotEmp),
			formatMetric(r.StateAMean), formatMetric(r.WeightedAMean),
			formatMetric(r.AMeanDiff), formatMetric(r.AMeanRatio),
			formatMetric(r.StateHMean), formatMetric(r.WeightedHMean),
			formatMetric(r.HMeanDiff), formatMetric(r.HMeanRatio),
		})
	}
	return rs
}

func skillChildrenView(snap domain.Snapshot, _ JoinParams) ResultSet {
	rows := ExpandToChildren(snap)
	rs := ResultSet{
		Name: ViewSkillChildren,
		Columns: []string{
			"occ_code", "occ_title", "soc_code", "child_title",
			"tot_emp", "weighted_a_mean", "weighted_h_mean",
		},
	}
	for _, r := range rows {
		rs.Rows = append(rs.Rows, []string{
			r.OccCode, r.OccTitle, r.SOCCode, r.ChildTitle,
			formatCount(r.TotEmp), formatMetric(r.WeightedAMean), formatMetric(r.WeightedHMean),
		})
	}
	return rs
}

func closestWageView(snap domain.Snapshot, params JoinParams) ResultSet {
	rows := ClosestParent(snap, params)
	rs := ResultSet{
		Name: ViewClosestWage,
		Columns: []string{
			"occ_code", "soc_code", "soc_title", "element_id", "skill_name",
			"scale_id", "prim_state", "tot_emp", "a_mean", "a_median", "h_mean", "h_median",
		},
	}
	for _, r := range rows {
		rs.Rows = append(rs.Rows, []string{
			r.OccCode, r.SOCCode, r.SOCTitle, r.ElementID, r.SkillName,
			r.ScaleID, r.PrimState, formatMetric(r.TotEmp),
			formatMetric(r.AMean), formatMetric(r.AMedian),
			formatMetric(r.HMean), formatMetric(r.HMedian),
		})
	}
	return rs
}
