package ingest

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"soclens/internal/analytics"
	"soclens/pkg/contracts/domain"
)

// Table is one parsed worksheet: normalized headers and cleaned cell
// values, padded so every row has one cell per header.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Column returns the index of a normalized header, or -1.
func (t *Table) Column(header string) int {
	for i, h := range t.Headers {
		if h == header {
			return i
		}
	}
	return -1
}

func (t *Table) cell(row []string, header string) string {
	i := t.Column(header)
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Rename maps normalized headers to new names; headers without an entry
// are kept.
func (t *Table) Rename(renames map[string]string) {
	for i, h := range t.Headers {
		if to, ok := renames[h]; ok {
			t.Headers[i] = to
		}
	}
}

// ReadWorkbook parses the first sheet of an xlsx document: the first row
// becomes the normalized header set, every later row is cleaned
// (trimmed, lowercased) and padded to the header width.
func ReadWorkbook(name string, data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", name, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", name)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s of %s: %w", sheet, name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s sheet %s is empty", name, sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = NormalizeHeader(h)
	}

	table := &Table{Name: name, Headers: headers}
	for _, raw := range rows[1:] {
		row := make([]string, len(headers))
		for i := range headers {
			if i < len(raw) {
				row[i] = CleanValue(raw[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}

	slog.Info("Parsed workbook",
		slog.String("workbook", name),
		slog.String("sheet", sheet),
		slog.Int("columns", len(table.Headers)),
		slog.Int("rows", len(table.Rows)))
	return table, nil
}

// OccupationRecords converts an OEWS table into curated records: the field
// selection drops geography/industry columns and every measurement goes
// through numeric coercion, so stray suppression markers become nil instead
// of poisoning aggregates. Rows without an occupation code are skipped.
func OccupationRecords(t *Table) []domain.OccupationRecord {
	var out []domain.OccupationRecord
	skipped := 0
	for _, row := range t.Rows {
		code := t.cell(row, "occ_code")
		if code == "" {
			skipped++
			continue
		}
		out = append(out, domain.OccupationRecord{
			OccCode:   code,
			OccTitle:  t.cell(row, "occ_title"),
			PrimState: t.cell(row, "prim_state"),
			TotEmp:    analytics.ParseMeasure(t.cell(row, "tot_emp")),
			Jobs1000:  analytics.ParseMeasure(t.cell(row, "jobs_1000")),
			MeanPRSE:  analytics.ParseMeasure(t.cell(row, "mean_prse")),
			EmpPRSE:   analytics.ParseMeasure(t.cell(row, "emp_prse")),
			AMean:     analytics.ParseMeasure(t.cell(row, "a_mean")),
			AMedian:   analytics.ParseMeasure(t.cell(row, "a_median")),
			APct10:    analytics.ParseMeasure(t.cell(row, "a_pct10")),
			APct25:    analytics.ParseMeasure(t.cell(row, "a_pct25")),
			APct75:    analytics.ParseMeasure(t.cell(row, "a_pct75")),
			APct90:    analytics.ParseMeasure(t.cell(row, "a_pct90")),
			HMean:     analytics.ParseMeasure(t.cell(row, "h_mean")),
			HMedian:   analytics.ParseMeasure(t.cell(row, "h_median")),
			HPct10:    analytics.ParseMeasure(t.cell(row, "h_pct10")),
			HPct25:    analytics.ParseMeasure(t.cell(row, "h_pct25")),
			HPct75:    analytics.ParseMeasure(t.cell(row, "h_pct75")),
			HPct90:    analytics.ParseMeasure(t.cell(row, "h_pct90")),
			Annual:    t.cell(row, "annual"),
			Hourly:    t.cell(row, "hourly"),
			PctTotal:  analytics.ParseMeasure(t.cell(row, "pct_total")),
			PctRpt:    analytics.ParseMeasure(t.cell(row, "pct_rpt")),
		})
	}
	if skipped > 0 {
		slog.Warn("Skipped rows without occupation code",
			slog.String("workbook", t.Name), slog.Int("skipped", skipped))
	}
	return out
}

// SkillRecords converts an O*NET skills table into curated records. The
// table is renamed in place with SkillRenames first, so both the published
// headers and the curated names resolve.
func SkillRecords(t *Table) []domain.SkillRecord {
	t.Rename(SkillRenames())

	var out []domain.SkillRecord
	skipped := 0
	for _, row := range t.Rows {
		code := t.cell(row, "soc_code")
		if code == "" {
			skipped++
			continue
		}
		out = append(out, domain.SkillRecord{
			SOCCode:         code,
			OccupationTitle: t.cell(row, "occupation_title"),
			ElementID:       t.cell(row, "element_id"),
			SkillName:       t.cell(row, "skill_name"),
			ScaleID:         t.cell(row, "scale_id"),
			DataValue:       analytics.ParseMeasure(t.cell(row, "data_value")),
		})
	}
	if skipped > 0 {
		slog.Warn("Skipped rows without SOC code",
			slog.String("workbook", t.Name), slog.Int("skipped", skipped))
	}
	return out
}
