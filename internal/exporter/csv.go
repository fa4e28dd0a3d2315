// Package exporter writes raw tables, curated records and view results as
// CSV files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"soclens/internal/analytics"
)

// CSVWriter writes tabular data beneath the configured data directories.
type CSVWriter struct{}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// WriteOptions configures one CSV write.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // UTF-8 BOM for Excel compatibility
}

// Write stores headers and records at path, creating parent directories.
// Empty datasets are skipped with a warning so a failed upstream fetch
// never produces a misleading empty artifact.
func (w *CSVWriter) Write(path string, options WriteOptions) error {
	if len(options.Records) == 0 {
		slog.Warn("Dataset is empty, skipping save", slog.String("path", path))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := cw.Write(options.Headers); err != nil {
			return fmt.Errorf("write headers: %w", err)
		}
	}
	for _, record := range options.Records {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	slog.Info("Wrote CSV file",
		slog.String("path", path),
		slog.Int("records", len(options.Records)))
	return nil
}

// WriteResultSet stores a view result set at path.
func (w *CSVWriter) WriteResultSet(path string, rs analytics.ResultSet) error {
	return w.Write(path, WriteOptions{Headers: rs.Columns, Records: rs.Rows})
}
