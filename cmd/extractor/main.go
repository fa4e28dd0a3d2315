// Command extractor downloads the OEWS by-state archive and the O*NET
// skills workbook into the downloads directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"soclens/internal/config"
	"soclens/internal/fetch"
	"soclens/internal/infrastructure"
	"soclens/internal/pipeline"
)

const (
	oewsWorkbookName   = "oews_state.xlsx"
	skillsWorkbookName = "skills.xlsx"
)

func main() {
	resolveLatest := flag.Bool("resolve-latest", false, "discover the newest OEWS release instead of the configured URL")
	flag.Parse()

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
	if *resolveLatest {
		cfg.Sources.ResolveLatest = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Extraction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Paths.EnsureDirs(); err != nil {
		return err
	}

	client := fetch.NewClient(
		fetch.WithUserAgent(cfg.Sources.UserAgent),
		fetch.WithRateLimit(cfg.Sources.RateLimitRPS, 1),
	)

	oewsURL := cfg.Sources.OEWSURL
	if cfg.Sources.ResolveLatest {
		resolved, err := fetch.ResolveLatestOEWS(ctx, client)
		if err != nil {
			logger.Warn("Could not resolve latest OEWS release, using configured URL",
				slog.String("error", err.Error()))
		} else {
			oewsURL = resolved
			logger.Info("Resolved latest OEWS release", slog.String("url", oewsURL))
		}
	}

	runner := pipeline.NewRunner(logger,
		pipeline.NewStep("fetch_sources", "Fetch source datasets", func(ctx context.Context, state *pipeline.State) error {
			return fetchBoth(ctx, cfg, client, oewsURL)
		}),
	)
	_, err := runner.Run(ctx)
	return err
}

// fetchBoth downloads the two sources in parallel; the client's limiter
// still paces the requests.
func fetchBoth(ctx context.Context, cfg *config.Config, client *fetch.Client, oewsURL string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		archive, err := client.Download(ctx, oewsURL)
		if err != nil {
			return fmt.Errorf("fetch oews archive: %w", err)
		}
		infrastructure.DownloadBytes.WithLabelValues("oews").Add(float64(len(archive)))

		member, workbook, err := fetch.FirstWorkbook(archive)
		if err != nil {
			return fmt.Errorf("extract oews workbook: %w", err)
		}
		slog.Info("Extracted workbook from archive", slog.String("member", member))
		return save(cfg.Paths.DownloadPath(oewsWorkbookName), workbook)
	})

	g.Go(func() error {
		workbook, err := client.Download(ctx, cfg.Sources.SkillsURL)
		if err != nil {
			return fmt.Errorf("fetch skills workbook: %w", err)
		}
		infrastructure.DownloadBytes.WithLabelValues("skills").Add(float64(len(workbook)))
		return save(cfg.Paths.DownloadPath(skillsWorkbookName), workbook)
	})

	return g.Wait()
}

func save(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	slog.Info("Saved source file", slog.String("path", path), slog.Int("bytes", len(data)))
	return nil
}
