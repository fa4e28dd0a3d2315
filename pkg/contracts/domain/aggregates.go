package domain

// StateAggregate is one (occupation, state) summary: duplicate raw rows for
// the key are collapsed by summing employment and averaging wages.
type StateAggregate struct {
	OccCode   string `json:"occ_code" db:"occ_code"`
	OccTitle  string `json:"occ_title" db:"occ_title"`
	PrimState string `json:"prim_state" db:"prim_state"`

	TotEmp   float64  `json:"tot_emp" db:"tot_emp"`
	AvgAMean *float64 `json:"avg_a_mean,omitempty" db:"avg_a_mean"`
	AvgHMean *float64 `json:"avg_h_mean,omitempty" db:"avg_h_mean"`
}

// WeightedAggregate is one occupation summarized across all states. Weighted
// wages are employment-weighted; nil when no row carried both a wage and a
// positive employment.
type WeightedAggregate struct {
	OccCode  string `json:"occ_code" db:"occ_code"`
	OccTitle string `json:"occ_title" db:"occ_title"`

	TotEmp        float64  `json:"tot_emp" db:"tot_emp"`
	AvgEmpPerRow  *float64 `json:"avg_emp_per_row,omitempty" db:"avg_emp_per_row"`
	WeightedAMean *float64 `json:"weighted_a_mean,omitempty" db:"weighted_a_mean"`
	WeightedHMean *float64 `json:"weighted_h_mean,omitempty" db:"weighted_h_mean"`
}

// StateComparisonRow is one row of the state-vs-weighted view: a state's
// simple-average wages next to the occupation's national weighted baseline.
// Diff and ratio are nil when either side is missing; ratio additionally
// requires a strictly positive baseline. All metrics rounded to 2 decimals.
type StateComparisonRow struct {
	OccCode   string `json:"occ_code" db:"occ_code"`
	OccTitle  string `json:"occ_title" db:"occ_title"`
	PrimState string `json:"prim_state" db:"prim_state"`

	StateTotEmp   float64  `json:"state_tot_emp" db:"state_tot_emp"`
	StateAMean    *float64 `json:"state_a_mean,omitempty" db:"state_a_mean"`
	WeightedAMean *float64 `json:"weighted_a_mean,omitempty" db:"weighted_a_mean"`
	AMeanDiff     *float64 `json:"a_mean_diff,omitempty" db:"a_mean_diff"`
	AMeanRatio    *float64 `json:"a_mean_ratio,omitempty" db:"a_mean_ratio"`

	StateHMean    *float64 `json:"state_h_mean,omitempty" db:"state_h_mean"`
	WeightedHMean *float64 `json:"weighted_h_mean,omitempty" db:"weighted_h_mean"`
	HMeanDiff     *float64 `json:"h_mean_diff,omitempty" db:"h_mean_diff"`
	HMeanRatio    *float64 `json:"h_mean_ratio,omitempty" db:"h_mean_ratio"`
}

// SkillChildRow is one row of the expand-to-children view: a distinct
// detailed O*NET code under a parent occupation, carrying the parent's
// weighted metrics.
type SkillChildRow struct {
	OccCode    string `json:"occ_code" db:"occ_code"`
	OccTitle   string `json:"occ_title" db:"occ_title"`
	SOCCode    string `json:"soc_code" db:"soc_code"`
	ChildTitle string `json:"child_title" db:"child_title"`

	TotEmp        float64  `json:"tot_emp" db:"tot_emp"`
	WeightedAMean *float64 `json:"weighted_a_mean,omitempty" db:"weighted_a_mean"`
	WeightedHMean *float64 `json:"weighted_h_mean,omitempty" db:"weighted_h_mean"`
}

// ClosestWageRow is one row of the closest-parent view: a skill measurement
// joined to the single collapsed (parent occupation, state) wage row.
type ClosestWageRow struct {
	OccCode   string `json:"occ_code" db:"occ_code"`
	SOCCode   string `json:"soc_code" db:"soc_code"`
	SOCTitle  string `json:"soc_title" db:"soc_title"`
	ElementID string `json:"element_id" db:"element_id"`
	SkillName string `json:"skill_name" db:"skill_name"`
	ScaleID   string `json:"scale_id" db:"scale_id"`
	PrimState string `json:"prim_state" db:"prim_state"`

	TotEmp  *float64 `json:"tot_emp,omitempty" db:"tot_emp"`
	AMean   *float64 `json:"a_mean,omitempty" db:"a_mean"`
	AMedian *float64 `json:"a_median,omitempty" db:"a_median"`
	HMean   *float64 `json:"h_mean,omitempty" db:"h_mean"`
	HMedian *float64 `json:"h_median,omitempty" db:"h_median"`
}

// MajorGroupRow is one SOC major group (first two digits) with its average
// annual mean wage across the closest-parent view.
type MajorGroupRow struct {
	MajorGroup string  `json:"soc_major_group" db:"soc_major_group"`
	AvgAMean   float64 `json:"avg_annual_mean_wage" db:"avg_annual_mean_wage"`
}

// TopCodeRow is one detailed code ranked by its average annual mean wage.
type TopCodeRow struct {
	SOCCode  string  `json:"soc_code" db:"soc_code"`
	AvgAMean float64 `json:"avg_annual_mean_wage" db:"avg_annual_mean_wage"`
}
