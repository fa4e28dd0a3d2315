package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"soclens/internal/analytics"
	"soclens/internal/ingest"
	"soclens/pkg/contracts/domain"
)

const (
	driverName = "pgx"
	defaultDSN = "postgres://localhost/soclens?sslmode=disable"

	insertChunkSize = 500
)

// Store wraps the Postgres connection and the loading/query operations.
type Store struct {
	db *sql.DB
}

// Open connects to Postgres (falling back to a local default DSN), verifies
// the connection and applies the schema/table DDL.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{db: db}
	if err := s.applyDDL(ctx, baseDDL); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) applyDDL(ctx context.Context, stmts []string) error {
	for _, stmt := range stmts {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}

// CreateViews (re)defines the three analysis views with the given join
// parameters baked into the closest-parent definition. Replacing a view is
// a wholesale redefinition, never a mutation of loaded data.
func (s *Store) CreateViews(ctx context.Context, params analytics.JoinParams) error {
	if err := s.applyDDL(ctx, viewDDL(params)); err != nil {
		return err
	}
	slog.Info("Created analysis views",
		slog.String("state", params.State),
		slog.String("scale_id", params.ScaleID))
	return nil
}

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func quoteIdent(name string) (string, error) {
	if !identifierPattern.MatchString(name) {
		return "", fmt.Errorf("invalid identifier %q", name)
	}
	return `"` + name + `"`, nil
}

// ReplaceRawTable drops and recreates raw.<name> with one TEXT column per
// workbook header and loads every row. The raw layer mirrors the source
// verbatim; typing happens in the curated layer.
func (s *Store) ReplaceRawTable(ctx context.Context, name string, table *ingest.Table) error {
	qname, err := quoteIdent(name)
	if err != nil {
		return err
	}
	cols := make([]string, len(table.Headers))
	defs := make([]string, len(table.Headers))
	for i, h := range table.Headers {
		qcol, err := quoteIdent(h)
		if err != nil {
			return fmt.Errorf("raw table %s: %w", name, err)
		}
		cols[i] = qcol
		defs[i] = qcol + " TEXT"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin raw load: %w", err)
	}
	defer tx.Rollback()

	target := "raw." + qname
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+target); err != nil {
		return fmt.Errorf("drop %s: %w", target, err)
	}
	if _, err := tx.ExecContext(ctx, "CREATE TABLE "+target+" ("+strings.Join(defs, ", ")+")"); err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}

	rows := make([][]any, len(table.Rows))
	for i, r := range table.Rows {
		row := make([]any, len(r))
		for j, v := range r {
			row[j] = v
		}
		rows[i] = row
	}
	if err := insertChunked(ctx, tx, target, cols, rows); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit raw load: %w", err)
	}

	slog.Info("Replaced raw table",
		slog.String("table", target),
		slog.Int("rows", len(table.Rows)))
	return nil
}

var occupationColumns = []string{
	"occ_code", "occ_title", "prim_state", "tot_emp", "jobs_1000",
	"mean_prse", "emp_prse", "a_mean", "a_median", "a_pct10", "a_pct25",
	"a_pct75", "a_pct90", "h_mean", "h_median", "h_pct10", "h_pct25",
	"h_pct75", "h_pct90", "annual", "hourly", "pct_total", "pct_rpt",
}

// ReplaceOccupations reloads curated.oews_cleaned wholesale.
func (s *Store) ReplaceOccupations(ctx context.Context, records []domain.OccupationRecord) error {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{
			r.OccCode, r.OccTitle, r.PrimState, r.TotEmp, r.Jobs1000,
			r.MeanPRSE, r.EmpPRSE, r.AMean, r.AMedian, r.APct10, r.APct25,
			r.APct75, r.APct90, r.HMean, r.HMedian, r.HPct10, r.HPct25,
			r.HPct75, r.HPct90, r.Annual, r.Hourly, r.PctTotal, r.PctRpt,
		}
	}
	return s.replaceTable(ctx, "curated.oews_cleaned", occupationColumns, rows)
}

var skillColumns = []string{
	"soc_code", "occupation_title", "element_id", "skill_name", "scale_id", "data_value",
}

// ReplaceSkills reloads curated.onet_skills_cleaned wholesale.
func (s *Store) ReplaceSkills(ctx context.Context, records []domain.SkillRecord) error {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = []any{r.SOCCode, r.OccupationTitle, r.ElementID, r.SkillName, r.ScaleID, r.DataValue}
	}
	return s.replaceTable(ctx, "curated.onet_skills_cleaned", skillColumns, rows)
}

func (s *Store) replaceTable(ctx context.Context, target string, cols []string, rows [][]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load of %s: %w", target, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+target); err != nil {
		return fmt.Errorf("clear %s: %w", target, err)
	}
	if err := insertChunked(ctx, tx, target, cols, rows); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load of %s: %w", target, err)
	}

	slog.Info("Replaced curated table",
		slog.String("table", target),
		slog.Int("rows", len(rows)))
	return nil
}

func insertChunked(ctx context.Context, tx *sql.Tx, target string, cols []string, rows [][]any) error {
	for start := 0; start < len(rows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		var b strings.Builder
		b.WriteString("INSERT INTO " + target + " (" + strings.Join(cols, ", ") + ") VALUES ")
		args := make([]any, 0, len(chunk)*len(cols))
		for i, row := range chunk {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("(")
			for j := range cols {
				if j > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "$%d", len(args)+1)
				args = append(args, row[j])
			}
			b.WriteString(")")
		}
		if _, err := tx.ExecContext(ctx, b.String(), args...); err != nil {
			return fmt.Errorf("insert into %s: %w", target, err)
		}
	}
	return nil
}

// viewTables maps queryable view names to their qualified relations; only
// these names reach the SQL layer.
var viewTables = map[string]string{
	analytics.ViewStateVsWeighted: "curated.vw_oews_state_vs_weighted",
	analytics.ViewSkillChildren:   "curated.vw_soc_skill_children",
	analytics.ViewClosestWage:     "curated.vw_onet_closest_oews",
}

// EvaluateView reads one analysis view in its defined order and returns it
// as a generic result set. Nulls become empty cells, matching the pure
// evaluators.
func (s *Store) EvaluateView(ctx context.Context, name string) (analytics.ResultSet, error) {
	relation, ok := viewTables[name]
	if !ok {
		return analytics.ResultSet{}, fmt.Errorf("view %q not known to store", name)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+relation)
	if err != nil {
		return analytics.ResultSet{}, fmt.Errorf("query %s: %w", relation, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return analytics.ResultSet{}, fmt.Errorf("columns of %s: %w", relation, err)
	}

	rs := analytics.ResultSet{Name: name, Columns: cols}
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return analytics.ResultSet{}, fmt.Errorf("scan %s: %w", relation, err)
		}
		row := make([]string, len(cols))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return analytics.ResultSet{}, fmt.Errorf("iterate %s: %w", relation, err)
	}
	return rs, nil
}

// LoadSnapshot reads the curated tables into an immutable snapshot for the
// pure evaluators.
func (s *Store) LoadSnapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot

	occRows, err := s.db.QueryContext(ctx,
		"SELECT "+strings.Join(occupationColumns, ", ")+" FROM curated.oews_cleaned")
	if err != nil {
		return snap, fmt.Errorf("query oews_cleaned: %w", err)
	}
	defer occRows.Close()
	for occRows.Next() {
		var r domain.OccupationRecord
		if err := occRows.Scan(
			&r.OccCode, &r.OccTitle, &r.PrimState, &r.TotEmp, &r.Jobs1000,
			&r.MeanPRSE, &r.EmpPRSE, &r.AMean, &r.AMedian, &r.APct10, &r.APct25,
			&r.APct75, &r.APct90, &r.HMean, &r.HMedian, &r.HPct10, &r.HPct25,
			&r.HPct75, &r.HPct90, &r.Annual, &r.Hourly, &r.PctTotal, &r.PctRpt,
		); err != nil {
			return snap, fmt.Errorf("scan oews_cleaned: %w", err)
		}
		snap.Occupations = append(snap.Occupations, r)
	}
	if err := occRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate oews_cleaned: %w", err)
	}

	skillRows, err := s.db.QueryContext(ctx,
		"SELECT "+strings.Join(skillColumns, ", ")+" FROM curated.onet_skills_cleaned")
	if err != nil {
		return snap, fmt.Errorf("query onet_skills_cleaned: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var r domain.SkillRecord
		if err := skillRows.Scan(
			&r.SOCCode, &r.OccupationTitle, &r.ElementID, &r.SkillName, &r.ScaleID, &r.DataValue,
		); err != nil {
			return snap, fmt.Errorf("scan onet_skills_cleaned: %w", err)
		}
		snap.Skills = append(snap.Skills, r)
	}
	if err := skillRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate onet_skills_cleaned: %w", err)
	}
	return snap, nil
}
