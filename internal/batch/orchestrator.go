package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"niftycli/internal/config"
	"niftycli/internal/exporter"
	"niftycli/internal/feed"
	"niftycli/internal/merge"
	"niftycli/internal/tickersource"
	"niftycli/pkg/contracts/domain"
)

// OutcomeKind tags what happened to one ticker
type OutcomeKind string

const (
	// OutcomeWritten means price data was fetched, merged and is ready to write
	OutcomeWritten OutcomeKind = "written"
	// OutcomeSkippedEmpty means the provider had no price data for the ticker
	OutcomeSkippedEmpty OutcomeKind = "skipped-empty"
	// OutcomeFailed means the price fetch failed
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is the result of processing one ticker. The fetch/merge work is
// separated from the file write and logging so it can be tested without
// touching the filesystem.
type Outcome struct {
	Ticker string
	Kind   OutcomeKind
	Bars   []domain.MergedBar
	Err    error
}

// Resolver resolves the ticker universe for a run
type Resolver interface {
	Resolve(ctx context.Context) tickersource.Resolution
}

// Runner drives one export run: resolve tickers, then sequentially fetch,
// merge and write each ticker, pacing requests with a fixed delay. It is not
// resumable and performs no retries.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	resolver   Resolver
	prices     feed.PriceSource
	deliveries feed.DeliverySource // nil when enrichment is disabled
	tickers    *exporter.TickerExporter
	summaries  *exporter.RunSummaryExporter
	limiter    *rate.Limiter
}

// NewRunner creates a Runner. deliveries may be nil to run without the NSE
// enrichment.
func NewRunner(cfg *config.Config, logger *slog.Logger, resolver Resolver, prices feed.PriceSource, deliveries feed.DeliverySource) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	limit := rate.Inf
	if cfg.Batch.RequestDelay > 0 {
		limit = rate.Every(cfg.Batch.RequestDelay)
	}
	limiter := rate.NewLimiter(limit, 1)
	// the bucket starts full; drain it so the first Wait paces the gap
	// after the first ticker instead of returning immediately
	limiter.Allow()

	return &Runner{
		cfg:        cfg,
		logger:     logger,
		resolver:   resolver,
		prices:     prices,
		deliveries: deliveries,
		tickers:    exporter.NewTickerExporter(),
		summaries:  exporter.NewRunSummaryExporter(),
		limiter:    limiter,
	}
}

// Run executes one export run and returns its summary. Per-ticker failures
// never abort the run; only filesystem errors (output directory or file
// writes) are fatal.
func (r *Runner) Run(ctx context.Context) (domain.RunSummary, error) {
	var summary domain.RunSummary

	outDir := r.cfg.Export.OutDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return summary, fmt.Errorf("failed to create output dir %s: %w", outDir, err)
	}

	resolution := r.resolver.Resolve(ctx)
	r.logger.Info(fmt.Sprintf("Using %d tickers from %s.", len(resolution.Tickers), resolution.Source),
		slog.Int("count", len(resolution.Tickers)),
		slog.String("source", string(resolution.Source)))

	to := midnightUTC(time.Now())
	from := to.AddDate(-r.cfg.Batch.LookbackYears, 0, 0)

	if r.deliveries != nil {
		if err := r.deliveries.Warmup(ctx); err != nil {
			// Enrichment stays best-effort per ticker; a cold session just
			// makes the first delivery fetches likelier to fail.
			r.logger.Warn("NSE session warmup failed",
				slog.String("error", err.Error()))
		}
	}

	results := make([]exporter.SummaryRow, 0, len(resolution.Tickers))

	for _, ticker := range resolution.Tickers {
		r.logger.Info(fmt.Sprintf("Downloading %s...", ticker),
			slog.String("ticker", ticker))

		outcome := r.processTicker(ctx, ticker, from, to)

		switch outcome.Kind {
		case OutcomeWritten:
			path, err := r.tickers.ExportTickerFile(outDir, ticker, outcome.Bars)
			if err != nil {
				// Filesystem failures are the only fatal class.
				return summary, err
			}
			summary.AddSuccess()
			r.logger.Info(fmt.Sprintf("Saved %s to %s", ticker, path),
				slog.String("ticker", ticker),
				slog.String("path", path),
				slog.Int("rows", len(outcome.Bars)))
			results = append(results, writtenSummaryRow(outcome))

		case OutcomeSkippedEmpty:
			summary.AddFailure(ticker)
			r.logger.Info(fmt.Sprintf("No data for %s; skipping.", ticker),
				slog.String("ticker", ticker))
			results = append(results, exporter.SummaryRow{Ticker: ticker, Outcome: string(outcome.Kind)})

		case OutcomeFailed:
			summary.AddFailure(ticker)
			r.logger.Error(fmt.Sprintf("Failed %s: %v", ticker, outcome.Err),
				slog.String("ticker", ticker),
				slog.String("error", outcome.Err.Error()))
			results = append(results, exporter.SummaryRow{
				Ticker:  ticker,
				Outcome: string(outcome.Kind),
				Detail:  outcome.Err.Error(),
			})
		}

		// fixed pacing between provider requests, applied regardless of outcome
		if err := r.limiter.Wait(ctx); err != nil {
			return summary, fmt.Errorf("run interrupted: %w", err)
		}
	}

	r.logSummary(summary)

	if r.cfg.Export.WriteSummary {
		path := filepath.Join(outDir, r.cfg.Export.SummaryWorkbook)
		if err := r.summaries.WriteWorkbook(path, results, summary); err != nil {
			r.logger.Warn("Failed to write run summary workbook",
				slog.String("path", path),
				slog.String("error", err.Error()))
		} else {
			r.logger.Info("Run summary workbook written", slog.String("path", path))
		}
	}

	return summary, nil
}

// processTicker runs the fetch/merge pipeline for one ticker and returns a
// tagged outcome. It performs no file writes. An enrichment failure degrades
// to "no delivery data" and never fails the ticker on its own.
func (r *Runner) processTicker(ctx context.Context, ticker string, from, to time.Time) Outcome {
	bars, err := r.prices.PriceHistory(ctx, ticker, from, to)
	if err != nil {
		return Outcome{Ticker: ticker, Kind: OutcomeFailed, Err: err}
	}
	if len(bars) == 0 {
		return Outcome{Ticker: ticker, Kind: OutcomeSkippedEmpty}
	}

	var deliveries []domain.DeliveryRow
	if r.deliveries != nil {
		rows, err := r.deliveries.DeliveryHistory(ctx, ticker, from, to)
		switch {
		case err != nil:
			r.logger.Warn(fmt.Sprintf("Failed to fetch NSE delivery data for %s: %v", ticker, err),
				slog.String("ticker", ticker),
				slog.String("error", err.Error()))
		case len(rows) == 0:
			r.logger.Debug("No delivery rows in range",
				slog.String("ticker", ticker))
		default:
			deliveries = rows
		}
	}

	return Outcome{
		Ticker: ticker,
		Kind:   OutcomeWritten,
		Bars:   merge.Join(bars, deliveries),
	}
}

// logSummary emits the end-of-run summary block
func (r *Runner) logSummary(summary domain.RunSummary) {
	r.logger.Info("Summary",
		slog.Int("successful_downloads", summary.Succeeded),
		slog.Int("failed_downloads", summary.Failed))
	if len(summary.FailedTickers) > 0 {
		r.logger.Info(fmt.Sprintf("Failed tickers: %s", strings.Join(summary.FailedTickers, ", ")),
			slog.Int("count", len(summary.FailedTickers)))
	}
}

// writtenSummaryRow builds the workbook row for a written ticker
func writtenSummaryRow(outcome Outcome) exporter.SummaryRow {
	row := exporter.SummaryRow{
		Ticker:  outcome.Ticker,
		Outcome: string(outcome.Kind),
		Rows:    len(outcome.Bars),
	}
	if len(outcome.Bars) > 0 {
		row.FirstDate = outcome.Bars[0].Date.Format("2006-01-02")
		row.LastDate = outcome.Bars[len(outcome.Bars)-1].Date.Format("2006-01-02")
	}
	return row
}

// midnightUTC truncates a timestamp to its UTC calendar day
func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
