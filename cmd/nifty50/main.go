package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"niftycli/internal/batch"
	"niftycli/internal/config"
	"niftycli/internal/feed"
	"niftycli/internal/infrastructure"
	"niftycli/internal/tickersource"
	"niftycli/pkg/contracts"
)

func main() {
	// Panic recovery at the very start so crashes always leave a trace
	var logger *slog.Logger
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC RECOVERED: %v\n", r)
			fmt.Printf("Stack trace:\n%s\n", debug.Stack())
			if logger != nil {
				logger.Error("Exporter panicked",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
			}
			os.Exit(1)
		}
	}()

	configPath := flag.String("config", "", "path to an optional YAML config file")
	outDir := flag.String("out", "", "directory to save ticker files (overrides config)")
	noEnrich := flag.Bool("no-enrich", false, "skip NSE delivery/open-interest enrichment")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error: Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Export.OutDir = *outDir
	}
	if *noEnrich {
		cfg.Batch.EnrichDelivery = false
	}

	logger, err = infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Warning: Failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	// one trace ID per run so every record of this run correlates
	ctx := infrastructure.ContextWithTraceID(context.Background())
	logger = infrastructure.LoggerWithContext(ctx)

	logger.Info("NIFTY 50 history exporter starting",
		slog.String("version", contracts.Version),
		slog.String("output_dir", cfg.Export.OutDir),
		slog.Int("lookback_years", cfg.Batch.LookbackYears),
		slog.Bool("enrich_delivery", cfg.Batch.EnrichDelivery),
		slog.String("constituents_url", cfg.Sources.ConstituentsURL))

	resolver := tickersource.New(tickersource.Config{
		URL:            cfg.Sources.ConstituentsURL,
		ExchangeSuffix: cfg.Batch.ExchangeSuffix,
		UserAgent:      cfg.Sources.UserAgent,
		Timeout:        cfg.Sources.ConstituentsTimeout,
	}, infrastructure.WithComponent(logger, "tickersource"))

	prices := feed.NewYahooClient(
		cfg.Sources.YahooBaseURL,
		cfg.Sources.UserAgent,
		cfg.Sources.HistoricalTimeout,
		infrastructure.WithComponent(logger, "yahoo"))

	var deliveries feed.DeliverySource
	if cfg.Batch.EnrichDelivery {
		nse, err := feed.NewNSEClient(
			cfg.Sources.NSEBaseURL,
			cfg.Sources.UserAgent,
			cfg.Batch.ExchangeSuffix,
			cfg.Sources.HistoricalTimeout,
			infrastructure.WithComponent(logger, "nse"))
		if err != nil {
			logger.Error("Failed to create NSE client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		deliveries = nse
	}

	runner := batch.NewRunner(cfg, logger, resolver, prices, deliveries)

	summary, err := runner.Run(ctx)
	if err != nil {
		logger.Error("Export run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Partial failure is still a successful process: the summary names the
	// failed tickers for manual follow-up.
	logger.Info("Export run complete",
		slog.Int("successful_downloads", summary.Succeeded),
		slog.Int("failed_downloads", summary.Failed))
}
