// ABOUTME: The run command wires configuration, logging, fetching and the sink into one pipeline run
// ABOUTME: Configuration errors are fatal; feed and sink failures are logged and reported

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"linkfeed-aggregator/core/aggregate"
	apperrors "linkfeed-aggregator/core/errors"
	"linkfeed-aggregator/core/interfaces"
	"linkfeed-aggregator/core/parser"
	"linkfeed-aggregator/core/pipeline"
	"linkfeed-aggregator/core/region"
	"linkfeed-aggregator/infrastructure/cache/memory"
	stdhttp "linkfeed-aggregator/infrastructure/http/standard"
	"linkfeed-aggregator/infrastructure/logger/structured"
	"linkfeed-aggregator/pkg/config"
)

func newRunCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch all feeds, aggregate the links and publish them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.LoadFromEnv()
			if err != nil {
				return err
			}
			if dryRun {
				cfg.Sink.Type = config.SinkStdout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			_, err = runPipeline(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return err
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the result instead of publishing it")

	return cmd
}

// runPipeline executes one aggregation run against a validated configuration
func runPipeline(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) (*pipeline.Report, error) {
	logger, err := structured.NewLogger(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Output: stderr,
	})
	if err != nil {
		return nil, err
	}
	defer logger.Close()

	httpClient, err := stdhttp.NewStandardHTTPClientWithOptions(stdhttp.Options{
		Timeout:      cfg.Fetch.Timeout,
		MaxRetries:   cfg.Fetch.Retries,
		RateLimit:    cfg.Fetch.RateLimit,
		ProxyAddress: cfg.Fetch.Proxy,
	})
	if err != nil {
		return nil, &apperrors.ConfigError{Field: "FETCH_PROXY", Message: err.Error()}
	}

	sink, closeSink, err := buildSink(cfg, stdout)
	if err != nil {
		if apperrors.IsConfig(err) {
			return nil, err
		}
		// The run still fetches and aggregates; the report records the missing sink
		logger.Error("Failed to initialize sink", map[string]interface{}{
			"sink":  cfg.Sink.Type,
			"error": err.Error(),
		})
	}
	defer closeSink()

	deps := interfaces.Dependencies{
		Cache:      memory.NewMemoryCache(),
		HTTPClient: httpClient,
		Logger:     logger,
		Sink:       sink,
	}

	detector := parser.NewDetector(region.NewResolver(), cfg.Aggregation.Decoration())
	aggregator := aggregate.NewAggregator(cfg.Aggregation)

	svc := pipeline.NewService(deps, detector, aggregator, pipeline.Options{
		Concurrency:  cfg.Fetch.Concurrency,
		FetchTimeout: cfg.Fetch.Timeout,
	})

	logger.Info("Starting subscription aggregator", map[string]interface{}{
		"feeds":            len(cfg.Feeds.URLs),
		"regions":          cfg.Aggregation.RegionOrder.Strings(),
		"per_region_limit": cfg.Aggregation.PerRegionLimit,
		"sink":             cfg.Sink.Type,
	})

	report, err := svc.Run(ctx, cfg.Feeds.URLs)
	if err != nil {
		return report, err
	}

	failed := 0
	for _, feed := range report.Feeds {
		if apperrors.IsFetch(feed.Err) {
			failed++
		}
	}

	logger.Info("Aggregation run finished", map[string]interface{}{
		"feeds_failed": failed,
		"extracted":    report.Extracted,
		"links":        len(report.Links),
		"published":    report.Published,
	})

	return report, nil
}
