// Command analyzer evaluates the analysis views and writes them, plus the
// derived wage reports, to the curated CSV layer. With a configured DSN the
// views are read from Postgres; otherwise everything is computed in memory
// from the downloaded workbooks.
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

	keySnapshot = "snapshot"
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
		logger.Error("Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Paths.EnsureDirs(); err != nil {
		return err
	}

	params := analytics.JoinParams{State: cfg.Analysis.State, ScaleID: cfg.Analysis.ScaleID}

	var db *store.Store
	if cfg.Database.DSN != "" {
		var err error
		db, err = store.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	steps := []pipeline.Step{
		pipeline.NewStep("snapshot", "Load curated snapshot", func(ctx context.Context, state *pipeline.State) error {
			snap, err := loadSnapshot(ctx, cfg, db)
			if err != nil {
				return err
			}
			state.Set(keySnapshot, snap)
			return nil
		}),
		pipeline.NewStep("views", "Evaluate and export analysis views", func(ctx context.Context, state *pipeline.State) error {
			return exportViews(ctx, cfg, db, params, mustSnapshot(state))
		}),
		pipeline.NewStep("reports", "Write derived wage reports", func(ctx context.Context, state *pipeline.State) error {
			return writeReports(cfg, logger, params, mustSnapshot(state))
		}),
	}

	_, err := pipeline.NewRunner(logger, steps...).Run(ctx)
	return err
}

func mustSnapshot(state *pipeline.State) domain.Snapshot {
	v, _ := state.Get(keySnapshot)
	snap, _ := v.(domain.Snapshot)
	return snap
}

func loadSnapshot(ctx context.Context, cfg *config.Config, db *store.Store) (domain.Snapshot, error) {
	if db != nil {
		return db.LoadSnapshot(ctx)
	}

	var snap domain.Snapshot
	oews, err := readWorkbook(cfg.Paths.DownloadPath(oewsWorkbookName), "oews_raw")
	if err != nil {
		return snap, err
	}
	skills, err := readWorkbook(cfg.Paths.DownloadPath(skillsWorkbookName), "onet_skills_raw")
	if err != nil {
		return snap, err
	}
	snap.Occupations = ingest.OccupationRecords(oews)
	snap.Skills = ingest.SkillRecords(skills)
	return snap, nil
}

func readWorkbook(path, name string) (*ingest.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s (run the extractor first): %w", path, err)
	}
	return ingest.ReadWorkbook(name, data)
}

// exportViews writes each view to the curated layer. With a store the SQL
// definitions are read back; otherwise the in-memory evaluators run against
// the snapshot, producing the same rows.
func exportViews(ctx context.Context, cfg *config.Config, db *store.Store, params analytics.JoinParams, snap domain.Snapshot) error {
	registry := analytics.NewRegistry()
	w := exporter.NewCSVWriter()

	for _, name := range registry.Names() {
		var (
			rs  analytics.ResultSet
			err error
		)
		if db != nil {
			rs, err = db.EvaluateView(ctx, name)
		} else {
			rs, err = registry.Evaluate(name, snap, params)
		}
		if err != nil {
			return err
		}
		if err := w.WriteResultSet(cfg.Paths.CuratedCSVPath(name), rs); err != nil {
			return err
		}
	}
	return nil
}

func writeReports(cfg *config.Config, logger *slog.Logger, params analytics.JoinParams, snap domain.Snapshot) error {
	closest := analytics.ClosestParent(snap, params)

	w := exporter.NewCSVWriter()

	byGroup := analytics.AverageWageByMajorGroup(closest)
	groupRows := make([][]string, len(byGroup))
	for i, r := range byGroup {
		groupRows[i] = []string{r.MajorGroup, fmt.Sprintf("%.2f", r.AvgAMean)}
	}
	err := w.Write(cfg.Paths.CuratedCSVPath("report_major_group_wages"), exporter.WriteOptions{
		Headers: []string{"major_group", "avg_a_mean"},
		Records: groupRows,
	})
	if err != nil {
		return err
	}

	top := analytics.TopCodesByWage(closest, cfg.Analysis.TopN)
	topRows := make([][]string, len(top))
	for i, r := range top {
		topRows[i] = []string{r.SOCCode, fmt.Sprintf("%.2f", r.AvgAMean)}
	}
	err = w.Write(cfg.Paths.CuratedCSVPath("report_top_codes"), exporter.WriteOptions{
		Headers: []string{"soc_code", "avg_a_mean"},
		Records: topRows,
	})
	if err != nil {
		return err
	}

	flags := analytics.CountReleaseFlags(snap.Occupations, analytics.NewTruthySet(cfg.Analysis.TruthyFlags...))
	logger.Info("Release flag summary",
		slog.Int("annual", flags.Annual),
		slog.Int("hourly", flags.Hourly),
		slog.Int("both", flags.Both))
	return nil
}
