package store

import (
	"fmt"
	"strings"

	"soclens/internal/analytics"
)

// baseDDL creates the schemas and curated tables. Raw tables are created
// per load because their column set follows the source workbook.
var baseDDL = []string{
	`CREATE SCHEMA IF NOT EXISTS raw`,
	`CREATE SCHEMA IF NOT EXISTS curated`,
	`CREATE TABLE IF NOT EXISTS curated.oews_cleaned (
		occ_code   TEXT NOT NULL,
		occ_title  TEXT,
		prim_state TEXT,
		tot_emp    DOUBLE PRECISION,
		jobs_1000  DOUBLE PRECISION,
		mean_prse  DOUBLE PRECISION,
		emp_prse   DOUBLE PRECISION,
		a_mean     DOUBLE PRECISION,
		a_median   DOUBLE PRECISION,
		a_pct10    DOUBLE PRECISION,
		a_pct25    DOUBLE PRECISION,
		a_pct75    DOUBLE PRECISION,
		a_pct90    DOUBLE PRECISION,
		h_mean     DOUBLE PRECISION,
		h_median   DOUBLE PRECISION,
		h_pct10    DOUBLE PRECISION,
		h_pct25    DOUBLE PRECISION,
		h_pct75    DOUBLE PRECISION,
		h_pct90    DOUBLE PRECISION,
		annual     TEXT,
		hourly     TEXT,
		pct_total  DOUBLE PRECISION,
		pct_rpt    DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS curated.onet_skills_cleaned (
		soc_code         TEXT NOT NULL,
		occupation_title TEXT,
		element_id       TEXT,
		skill_name       TEXT,
		scale_id         TEXT,
		data_value       DOUBLE PRECISION
	)`,
	`CREATE INDEX IF NOT EXISTS idx_oews_cleaned_occ_state
		ON curated.oews_cleaned (occ_code, prim_state)`,
	`CREATE INDEX IF NOT EXISTS idx_onet_skills_soc
		ON curated.onet_skills_cleaned (soc_code)`,
}

// stateVsWeightedDDL compares each state's simple-average wages against the
// occupation's employment-weighted national baseline. Weighting is
// pairwise-complete (rows need both the wage and a positive employment) and
// a zero denominator nulls the metric via NULLIF.
const stateVsWeightedDDL = `
CREATE OR REPLACE VIEW curated.vw_oews_state_vs_weighted AS
WITH state_agg AS (
    SELECT occ_code,
           MIN(NULLIF(occ_title, '')) AS occ_title,
           prim_state,
           SUM(COALESCE(tot_emp, 0)) AS state_tot_emp,
           AVG(a_mean) AS state_a_mean,
           AVG(h_mean) AS state_h_mean
    FROM curated.oews_cleaned
    GROUP BY occ_code, prim_state
),
weighted AS (
    SELECT occ_code,
           SUM(a_mean * tot_emp) FILTER (WHERE a_mean IS NOT NULL AND tot_emp > 0)
               / NULLIF(SUM(tot_emp) FILTER (WHERE a_mean IS NOT NULL AND tot_emp > 0), 0) AS weighted_a_mean,
           SUM(h_mean * tot_emp) FILTER (WHERE h_mean IS NOT NULL AND tot_emp > 0)
               / NULLIF(SUM(tot_emp) FILTER (WHERE h_mean IS NOT NULL AND tot_emp > 0), 0) AS weighted_h_mean
    FROM curated.oews_cleaned
    GROUP BY occ_code
)
SELECT s.occ_code,
       s.occ_title,
       s.prim_state,
       s.state_tot_emp,
       ROUND(s.state_a_mean::numeric, 2)                      AS state_a_mean,
       ROUND(w.weighted_a_mean::numeric, 2)                   AS weighted_a_mean,
       ROUND((s.state_a_mean - w.weighted_a_mean)::numeric, 2) AS a_mean_diff,
       CASE WHEN w.weighted_a_mean > 0
            THEN ROUND((s.state_a_mean / w.weighted_a_mean)::numeric, 2) END AS a_mean_ratio,
       ROUND(s.state_h_mean::numeric, 2)                      AS state_h_mean,
       ROUND(w.weighted_h_mean::numeric, 2)                   AS weighted_h_mean,
       ROUND((s.state_h_mean - w.weighted_h_mean)::numeric, 2) AS h_mean_diff,
       CASE WHEN w.weighted_h_mean > 0
            THEN ROUND((s.state_h_mean / w.weighted_h_mean)::numeric, 2) END AS h_mean_ratio
FROM state_agg s
JOIN weighted w ON w.occ_code = s.occ_code
WHERE s.occ_code <> '00-0000'
ORDER BY s.occ_code, s.prim_state`

// skillChildrenDDL fans each parent occupation's weighted metrics out to
// its distinct detailed O*NET codes. split_part returns the whole code when
// there is no delimiter, matching analytics.ParentCode.
const skillChildrenDDL = `
CREATE OR REPLACE VIEW curated.vw_soc_skill_children AS
WITH weighted AS (
    SELECT occ_code,
           MIN(NULLIF(occ_title, '')) AS occ_title,
           SUM(COALESCE(tot_emp, 0)) AS tot_emp,
           SUM(a_mean * tot_emp) FILTER (WHERE a_mean IS NOT NULL AND tot_emp > 0)
               / NULLIF(SUM(tot_emp) FILTER (WHERE a_mean IS NOT NULL AND tot_emp > 0), 0) AS weighted_a_mean,
           SUM(h_mean * tot_emp) FILTER (WHERE h_mean IS NOT NULL AND tot_emp > 0)
               / NULLIF(SUM(tot_emp) FILTER (WHERE h_mean IS NOT NULL AND tot_emp > 0), 0) AS weighted_h_mean
    FROM curated.oews_cleaned
    GROUP BY occ_code
),
children AS (
    SELECT split_part(soc_code, '.', 1) AS occ_code,
           soc_code,
           MIN(NULLIF(occupation_title, '')) AS child_title
    FROM curated.onet_skills_cleaned
    GROUP BY soc_code
)
SELECT w.occ_code,
       w.occ_title,
       c.soc_code,
       c.child_title,
       w.tot_emp,
       ROUND(w.weighted_a_mean::numeric, 2) AS weighted_a_mean,
       ROUND(w.weighted_h_mean::numeric, 2) AS weighted_h_mean
FROM weighted w
JOIN children c ON c.occ_code = w.occ_code
WHERE w.occ_code <> '00-0000'
ORDER BY w.occ_code, c.soc_code`

// closestWageTemplate joins each skill row on one scale to the single
// collapsed (parent, state) wage row. The state and scale filters are
// interpolated when the view is (re)created; quoteLiteral guards the
// values.
const closestWageTemplate = `
CREATE OR REPLACE VIEW curated.vw_onet_closest_oews AS
WITH collapsed AS (
    SELECT occ_code,
           prim_state,
           AVG(tot_emp)  AS tot_emp,
           AVG(a_mean)   AS a_mean,
           AVG(a_median) AS a_median,
           AVG(h_mean)   AS h_mean,
           AVG(h_median) AS h_median
    FROM curated.oews_cleaned
    WHERE prim_state = %s
    GROUP BY occ_code, prim_state
)
SELECT c.occ_code,
       s.soc_code,
       s.occupation_title AS soc_title,
       s.element_id,
       s.skill_name,
       s.scale_id,
       c.prim_state,
       ROUND(c.tot_emp::numeric, 2)  AS tot_emp,
       ROUND(c.a_mean::numeric, 2)   AS a_mean,
       ROUND(c.a_median::numeric, 2) AS a_median,
       ROUND(c.h_mean::numeric, 2)   AS h_mean,
       ROUND(c.h_median::numeric, 2) AS h_median
FROM curated.onet_skills_cleaned s
JOIN collapsed c ON c.occ_code = split_part(s.soc_code, '.', 1)
WHERE s.scale_id = %s
  AND c.occ_code <> '00-0000'
ORDER BY c.occ_code, s.soc_code, s.element_id, s.scale_id`

// quoteLiteral quotes a string for safe embedding in view DDL.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// viewDDL renders the three view definitions for the given join
// parameters.
func viewDDL(params analytics.JoinParams) []string {
	return []string{
		stateVsWeightedDDL,
		skillChildrenDDL,
		fmt.Sprintf(closestWageTemplate, quoteLiteral(params.State), quoteLiteral(params.ScaleID)),
	}
}
