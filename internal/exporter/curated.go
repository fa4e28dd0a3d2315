package exporter

import (
	"strconv"

	"soclens/pkg/contracts/domain"
)

func metric(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

var occupationHeaders = []string{
	"occ_code", "occ_title", "prim_state", "tot_emp", "jobs_1000",
	"mean_prse", "emp_prse", "a_mean", "a_median", "a_pct10", "a_pct25",
	"a_pct75", "a_pct90", "h_mean", "h_median", "h_pct10", "h_pct25",
	"h_pct75", "h_pct90", "annual", "hourly", "pct_total", "pct_rpt",
}

// OccupationCSV renders curated occupation records for a CSV write. Nil
// measurements become empty cells.
func OccupationCSV(records []domain.OccupationRecord) WriteOptions {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.OccCode, r.OccTitle, r.PrimState, metric(r.TotEmp), metric(r.Jobs1000),
			metric(r.MeanPRSE), metric(r.EmpPRSE), metric(r.AMean), metric(r.AMedian),
			metric(r.APct10), metric(r.APct25), metric(r.APct75), metric(r.APct90),
			metric(r.HMean), metric(r.HMedian), metric(r.HPct10), metric(r.HPct25),
			metric(r.HPct75), metric(r.HPct90), r.Annual, r.Hourly,
			metric(r.PctTotal), metric(r.PctRpt),
		}
	}
	return WriteOptions{Headers: occupationHeaders, Records: rows}
}

var skillHeaders = []string{
	"soc_code", "occupation_title", "element_id", "skill_name", "scale_id", "data_value",
}

// SkillCSV renders curated skill records for a CSV write.
func SkillCSV(records []domain.SkillRecord) WriteOptions {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.SOCCode, r.OccupationTitle, r.ElementID, r.SkillName, r.ScaleID, metric(r.DataValue),
		}
	}
	return WriteOptions{Headers: skillHeaders, Records: rows}
}
