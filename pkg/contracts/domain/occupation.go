package domain

// SentinelAllOccupations is the OEWS roll-up code covering every occupation
// in a state. It is excluded from comparison outputs because it is not a
// real occupation.
const SentinelAllOccupations = "00-0000"

// OccupationRecord represents one OEWS occupation x state x measurement row.
// Numeric fields are pointers: nil means the source value was absent,
// suppressed, or not parseable. Raw data may contain duplicate rows per
// (occ_code, prim_state); aggregation tolerates that via summing/averaging.
type OccupationRecord struct {
	OccCode   string `json:"occ_code" db:"occ_code" validate:"required"`
	OccTitle  string `json:"occ_title" db:"occ_title"`
	PrimState string `json:"prim_state" db:"prim_state"`

	TotEmp   *float64 `json:"tot_emp,omitempty" db:"tot_emp"`
	Jobs1000 *float64 `json:"jobs_1000,omitempty" db:"jobs_1000"`
	MeanPRSE *float64 `json:"mean_prse,omitempty" db:"mean_prse"`
	EmpPRSE  *float64 `json:"emp_prse,omitempty" db:"emp_prse"`

	AMean   *float64 `json:"a_mean,omitempty" db:"a_mean"`
	AMedian *float64 `json:"a_median,omitempty" db:"a_median"`
	APct10  *float64 `json:"a_pct10,omitempty" db:"a_pct10"`
	APct25  *float64 `json:"a_pct25,omitempty" db:"a_pct25"`
	APct75  *float64 `json:"a_pct75,omitempty" db:"a_pct75"`
	APct90  *float64 `json:"a_pct90,omitempty" db:"a_pct90"`

	HMean   *float64 `json:"h_mean,omitempty" db:"h_mean"`
	HMedian *float64 `json:"h_median,omitempty" db:"h_median"`
	HPct10  *float64 `json:"h_pct10,omitempty" db:"h_pct10"`
	HPct25  *float64 `json:"h_pct25,omitempty" db:"h_pct25"`
	HPct75  *float64 `json:"h_pct75,omitempty" db:"h_pct75"`
	HPct90  *float64 `json:"h_pct90,omitempty" db:"h_pct90"`

	// Release flags arrive as free-form truthy strings ("true", "t", ...).
	// They are matched against a configurable allow-list, not parsed.
	Annual string `json:"annual,omitempty" db:"annual"`
	Hourly string `json:"hourly,omitempty" db:"hourly"`

	PctTotal *float64 `json:"pct_total,omitempty" db:"pct_total"`
	PctRpt   *float64 `json:"pct_rpt,omitempty" db:"pct_rpt"`
}
