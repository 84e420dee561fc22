package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"niftycli/pkg/contracts/domain"
)

// YahooClient fetches daily bars from the Yahoo Finance chart API.
type YahooClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *slog.Logger
}

// NewYahooClient creates a YahooClient against the given base URL
func NewYahooClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *YahooClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &YahooClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

// chartResponse mirrors the subset of the v8 chart payload we consume
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote    []chartQuote    `json:"quote"`
		AdjClose []chartAdjClose `json:"adjclose"`
	} `json:"indicators"`
}

// quote slots are pointers: Yahoo emits JSON null for days it has no value
type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type chartAdjClose struct {
	AdjClose []*float64 `json:"adjclose"`
}

// PriceHistory returns the daily bars for ticker between from (inclusive) and
// to (exclusive), sorted by date ascending. The fixed column selection is
// date, open, high, low, close, adjusted close, volume; everything else in
// the payload is discarded. A ticker the provider does not know yields an
// empty slice and a nil error.
func (c *YahooClient) PriceHistory(ctx context.Context, ticker string, from, to time.Time) ([]domain.PriceBar, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build chart request for %s: %w", ticker, err)
	}
	q := req.URL.Query()
	q.Set("period1", strconv.FormatInt(from.Unix(), 10))
	q.Set("period2", strconv.FormatInt(to.Unix(), 10))
	q.Set("interval", "1d")
	q.Set("events", "div,splits")
	q.Set("includeAdjustedClose", "true")
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch chart for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	// Unknown symbols come back as 404 with an error payload; that is the
	// provider's "no data", not a failure.
	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug("Chart API returned not found", slog.String("ticker", ticker))
		return []domain.PriceBar{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart request for %s: unexpected status %s", ticker, resp.Status)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode chart response for %s: %w", ticker, err)
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s (%s)",
			ticker, payload.Chart.Error.Description, payload.Chart.Error.Code)
	}
	if len(payload.Chart.Result) == 0 {
		return []domain.PriceBar{}, nil
	}

	result := payload.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return []domain.PriceBar{}, nil
	}
	quote := result.Indicators.Quote[0]

	var adjClose []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adjClose = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]domain.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		open := at(quote.Open, i)
		high := at(quote.High, i)
		low := at(quote.Low, i)
		cls := at(quote.Close, i)
		if open == nil || high == nil || low == nil || cls == nil {
			continue // non-trading slot
		}

		bar := domain.PriceBar{
			Date:     midnightUTC(time.Unix(ts, 0)),
			Open:     *open,
			High:     *high,
			Low:      *low,
			Close:    *cls,
			AdjClose: *cls,
		}
		if adj := at(adjClose, i); adj != nil {
			bar.AdjClose = *adj
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	c.logger.Debug("Fetched price history",
		slog.String("ticker", ticker),
		slog.Int("bars", len(bars)))
	return bars, nil
}

// at returns s[i] when the index is in bounds, nil otherwise
func at[T any](s []*T, i int) *T {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// midnightUTC truncates a timestamp to its UTC calendar day
func midnightUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
