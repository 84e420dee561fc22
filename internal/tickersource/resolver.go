package tickersource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// Source labels which path produced the ticker list.
type Source string

const (
	// SourceWikipedia means the list was parsed from the live constituents page
	SourceWikipedia Source = "wikipedia"
	// SourceFallback means the embedded list was used
	SourceFallback Source = "fallback"
)

// symbolColumn is the constituents-table column holding the ticker symbols
const symbolColumn = "Symbol"

// ErrNoSymbols is returned when the constituents page was fetched but no
// symbols could be extracted from it.
var ErrNoSymbols = errors.New("no symbols parsed from constituents page")

// Resolution is the outcome of resolving the ticker universe. When the
// primary path fails the resolver falls back to the embedded list and records
// the cause in FallbackReason, so callers and tests can inspect why the
// fallback was taken instead of relying on log output.
type Resolution struct {
	Tickers        []string
	Source         Source
	FallbackReason error
}

// Config holds the resolver settings
type Config struct {
	URL            string
	ExchangeSuffix string
	UserAgent      string
	Timeout        time.Duration
}

// Resolver resolves the universe of tickers to export, preferring the live
// constituents page and falling back to the embedded list.
type Resolver struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Resolver
func New(cfg Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{cfg: cfg, logger: logger}
}

// Resolve returns the ordered, duplicate-free ticker list. The result is
// never empty: any failure on the primary path yields the embedded fallback
// list, which is fixed and non-empty.
func (r *Resolver) Resolve(ctx context.Context) Resolution {
	tickers, err := r.fetchConstituents(ctx)
	if err != nil {
		r.logger.Warn("Failed to fetch tickers from constituents page, using fallback list",
			slog.String("url", r.cfg.URL),
			slog.String("error", err.Error()))
		return Resolution{
			Tickers:        FallbackTickers(),
			Source:         SourceFallback,
			FallbackReason: err,
		}
	}

	r.logger.Info("Resolved tickers from constituents page",
		slog.String("url", r.cfg.URL),
		slog.Int("count", len(tickers)))
	return Resolution{Tickers: tickers, Source: SourceWikipedia}
}

// fetchConstituents scrapes the constituents page and extracts the Symbol
// column of the first table that has one, in row order, de-duplicated and
// suffixed for the exchange.
func (r *Resolver) fetchConstituents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(colly.UserAgent(r.cfg.UserAgent))
	c.SetRequestTimeout(r.cfg.Timeout)

	var (
		tickers []string
		seen    = make(map[string]struct{})
		found   bool
	)

	c.OnHTML("table.wikitable", func(table *colly.HTMLElement) {
		if found {
			return
		}
		col := symbolColumnIndex(table)
		if col < 0 {
			return
		}
		found = true
		table.ForEach("tr", func(i int, row *colly.HTMLElement) {
			if i == 0 {
				return // header row
			}
			cells := row.ChildTexts("td")
			if col >= len(cells) {
				return
			}
			symbol := strings.TrimSpace(cells[col])
			if symbol == "" {
				return
			}
			if _, dup := seen[symbol]; dup {
				return
			}
			seen[symbol] = struct{}{}
			tickers = append(tickers, symbol+r.cfg.ExchangeSuffix)
		})
	})

	var respErr error
	c.OnError(func(_ *colly.Response, err error) {
		respErr = err
	})

	if err := c.Visit(r.cfg.URL); err != nil {
		return nil, fmt.Errorf("fetch constituents page: %w", err)
	}
	if respErr != nil {
		return nil, fmt.Errorf("fetch constituents page: %w", respErr)
	}
	if len(tickers) == 0 {
		return nil, ErrNoSymbols
	}

	return tickers, nil
}

// symbolColumnIndex returns the index of the Symbol column in the table's
// header row, or -1. Header cells are matched after trimming whitespace.
func symbolColumnIndex(table *colly.HTMLElement) int {
	idx := -1
	table.ForEach("tr:first-child th", func(i int, h *colly.HTMLElement) {
		if idx < 0 && strings.TrimSpace(h.Text) == symbolColumn {
			idx = i
		}
	})
	if idx < 0 {
		// some tables carry the header in td cells
		table.ForEach("tr:first-child td", func(i int, h *colly.HTMLElement) {
			if idx < 0 && strings.TrimSpace(h.Text) == symbolColumn {
				idx = i
			}
		})
	}
	return idx
}
