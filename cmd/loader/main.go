// Command loader parses the downloaded workbooks, materializes the raw and
// curated CSV layers, and (when a DSN is configured) loads Postgres and
// defines the analysis views.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"soclens/internal/analytics"
	"soclens/internal/config"
	"soclens/internal/exporter"
	"soclens/internal/infrastructure"
	"soclens/internal/ingest"
	"soclens/internal/pipeline"
	"soclens/internal/store"
	"soclens/pkg/contracts/domain"
)

const (
	oewsWorkbookName   = "oews_state.xlsx"
	skillsWorkbookName = "skills.xlsx"

	oewsRawName   = "oews_raw"
	skillsRawName = "onet_skills_raw"

	keyOEWSTable    = "oews_table"
	keySkillsTable  = "skills_table"
	keyOccupations  = "occupations"
	keySkillRecords = "skills"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger, err := infrastructure.InitLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Paths.EnsureDirs(); err != nil {
		return err
	}

	steps := []pipeline.Step{
		pipeline.NewStep("parse", "Parse downloaded workbooks", func(ctx context.Context, state *pipeline.State) error {
			return parseWorkbooks(cfg, state)
		}),
		pipeline.NewStep("export_raw", "Export raw CSV layer", func(ctx context.Context, state *pipeline.State) error {
			return exportRaw(cfg, state)
		}),
		pipeline.NewStep("export_curated", "Export curated CSV layer", func(ctx context.Context, state *pipeline.State) error {
			return exportCurated(cfg, state)
		}),
	}
	if cfg.Database.DSN != "" {
		steps = append(steps,
			pipeline.NewStep("load_db", "Load Postgres raw and curated layers", func(ctx context.Context, state *pipeline.State) error {
				return loadDatabase(ctx, cfg, state)
			}),
		)
	} else {
		logger.Info("No database DSN configured, staying in CSV-only mode")
	}

	_, err := pipeline.NewRunner(logger, steps...).Run(ctx)
	return err
}

func parseWorkbooks(cfg *config.Config, state *pipeline.State) error {
	oews, err := readWorkbook(cfg.Paths.DownloadPath(oewsWorkbookName), oewsRawName)
	if err != nil {
		return err
	}
	skills, err := readWorkbook(cfg.Paths.DownloadPath(skillsWorkbookName), skillsRawName)
	if err != nil {
		return err
	}

	state.Set(keyOEWSTable, oews)
	state.Set(keySkillsTable, skills)
	state.Set(keyOccupations, ingest.OccupationRecords(oews))
	state.Set(keySkillRecords, ingest.SkillRecords(skills))
	return nil
}

func readWorkbook(path, name string) (*ingest.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s (run the extractor first): %w", path, err)
	}
	return ingest.ReadWorkbook(name, data)
}

func exportRaw(cfg *config.Config, state *pipeline.State) error {
	w := exporter.NewCSVWriter()
	for _, key := range []string{keyOEWSTable, keySkillsTable} {
		v, ok := state.Get(key)
		if !ok {
			return fmt.Errorf("pipeline state missing %s", key)
		}
		table := v.(*ingest.Table)
		err := w.Write(cfg.Paths.RawCSVPath(table.Name), exporter.WriteOptions{
			Headers: table.Headers,
			Records: table.Rows,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func exportCurated(cfg *config.Config, state *pipeline.State) error {
	occupations, skills, err := curatedRecords(state)
	if err != nil {
		return err
	}

	w := exporter.NewCSVWriter()
	if err := w.Write(cfg.Paths.CuratedCSVPath("oews_cleaned"), exporter.OccupationCSV(occupations)); err != nil {
		return err
	}
	return w.Write(cfg.Paths.CuratedCSVPath("onet_skills_cleaned"), exporter.SkillCSV(skills))
}

func loadDatabase(ctx context.Context, cfg *config.Config, state *pipeline.State) error {
	occupations, skills, err := curatedRecords(state)
	if err != nil {
		return err
	}

	db, err := store.Open(ctx, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, key := range []string{keyOEWSTable, keySkillsTable} {
		v, _ := state.Get(key)
		table := v.(*ingest.Table)
		if err := db.ReplaceRawTable(ctx, table.Name, table); err != nil {
			return err
		}
		infrastructure.RowsLoaded.WithLabelValues("raw." + table.Name).Add(float64(len(table.Rows)))
	}

	if err := db.ReplaceOccupations(ctx, occupations); err != nil {
		return err
	}
	infrastructure.RowsLoaded.WithLabelValues("curated.oews_cleaned").Add(float64(len(occupations)))

	if err := db.ReplaceSkills(ctx, skills); err != nil {
		return err
	}
	infrastructure.RowsLoaded.WithLabelValues("curated.onet_skills_cleaned").Add(float64(len(skills)))

	return db.CreateViews(ctx, analytics.JoinParams{
		State:   cfg.Analysis.State,
		ScaleID: cfg.Analysis.ScaleID,
	})
}

func curatedRecords(state *pipeline.State) ([]domain.OccupationRecord, []domain.SkillRecord, error) {
	ov, ok := state.Get(keyOccupations)
	if !ok {
		return nil, nil, fmt.Errorf("pipeline state missing %s", keyOccupations)
	}
	sv, ok := state.Get(keySkillRecords)
	if !ok {
		return nil, nil, fmt.Errorf("pipeline state missing %s", keySkillRecords)
	}
	return ov.([]domain.OccupationRecord), sv.([]domain.SkillRecord), nil
}
