// Command web serves the analysis views over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"soclens/internal/analytics"
	"soclens/internal/config"
	"soclens/internal/infrastructure"
	"soclens/internal/ingest"
	"soclens/internal/store"
	transport "soclens/internal/transport/http"
	"soclens/pkg/contracts/domain"
)

const (
	oewsWorkbookName   = "oews_state.xlsx"
	skillsWorkbookName = "skills.xlsx"
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
		logger.Error("Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	source, cleanup, err := snapshotSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	service := transport.NewViewService(source, analytics.NewRegistry(), analytics.JoinParams{
		State:   cfg.Analysis.State,
		ScaleID: cfg.Analysis.ScaleID,
	})
	handler := transport.NewHandler(service, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

// snapshotSource picks the curated dataset source: Postgres when a DSN is
// configured, otherwise the downloaded workbooks parsed on demand.
func snapshotSource(ctx context.Context, cfg *config.Config) (transport.SnapshotSource, func(), error) {
	if cfg.Database.DSN != "" {
		db, err := store.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}

	source := transport.SnapshotSourceFunc(func(ctx context.Context) (domain.Snapshot, error) {
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
	})
	return source, func() {}, nil
}

func readWorkbook(path, name string) (*ingest.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook %s (run the extractor first): %w", path, err)
	}
	return ingest.ReadWorkbook(name, data)
}
