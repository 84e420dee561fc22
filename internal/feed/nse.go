package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"sort"
	"strings"
	"time"

	"niftycli/pkg/contracts/domain"
)

// nseDateFormat is the day-month-year form the historical endpoint expects
// in its from/to query parameters.
const nseDateFormat = "02-01-2006"

// nseTimestampFormat is the form CH_TIMESTAMP values arrive in.
const nseTimestampFormat = "02-Jan-2006"

// NSEClient fetches delivery and open-interest figures from the NSE
// historical-equity endpoint. The endpoint rejects requests without an
// established session, so the client carries a cookie jar and browser-like
// headers and must be warmed once before use.
type NSEClient struct {
	baseURL        string
	userAgent      string
	exchangeSuffix string
	client         *http.Client
	logger         *slog.Logger
}

// NewNSEClient creates an NSEClient with a fresh cookie jar
func NewNSEClient(baseURL, userAgent, exchangeSuffix string, timeout time.Duration, logger *slog.Logger) (*NSEClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NSEClient{
		baseURL:        baseURL,
		userAgent:      userAgent,
		exchangeSuffix: exchangeSuffix,
		client:         &http.Client{Timeout: timeout, Jar: jar},
		logger:         logger,
	}, nil
}

// Warmup performs one request against the site root to pick up the session
// cookies the historical endpoint requires. Call it once per run; the client
// is then reused across every ticker (single-threaded reuse only).
func (c *NSEClient) Warmup(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("build warmup request: %w", err)
	}
	c.applyHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("warmup request: %w", err)
	}
	defer resp.Body.Close()
	// Body content is irrelevant; draining lets the connection be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Debug("NSE session warmed", slog.Int("status", resp.StatusCode))
	return nil
}

// nsePayload mirrors the subset of the historical-equity response we consume
type nsePayload struct {
	Data []nseRow `json:"data"`
}

// numeric fields are pointers: NSE omits them for some symbols and nil must
// stay distinguishable from zero
type nseRow struct {
	Timestamp    string   `json:"CH_TIMESTAMP"`
	DeliveryQty  *int64   `json:"CH_DELIVERY_QTY"`
	DeliveryPct  *float64 `json:"CH_DELIVERY_PERC"`
	OpenInterest *int64   `json:"CH_OPEN_INT"`
}

// DeliveryHistory returns the delivery rows for ticker between from and to,
// sorted by date ascending. The exchange suffix is stripped to recover the
// bare symbol before querying; the series filter restricts results to normal
// equity trades. An absent or empty data array yields an empty slice and a
// nil error.
func (c *NSEClient) DeliveryHistory(ctx context.Context, ticker string, from, to time.Time) ([]domain.DeliveryRow, error) {
	symbol := strings.TrimSuffix(ticker, c.exchangeSuffix)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/historical/cm/equity", nil)
	if err != nil {
		return nil, fmt.Errorf("build delivery request for %s: %w", symbol, err)
	}
	q := req.URL.Query()
	q.Set("symbol", symbol)
	q.Set("series", `["EQ"]`)
	q.Set("from", from.Format(nseDateFormat))
	q.Set("to", to.Format(nseDateFormat))
	req.URL.RawQuery = q.Encode()
	c.applyHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch delivery data for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("delivery request for %s: unexpected status %s", symbol, resp.Status)
	}

	var payload nsePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode delivery response for %s: %w", symbol, err)
	}
	if len(payload.Data) == 0 {
		return []domain.DeliveryRow{}, nil
	}

	rows := make([]domain.DeliveryRow, 0, len(payload.Data))
	for _, raw := range payload.Data {
		date, err := time.Parse(nseTimestampFormat, raw.Timestamp)
		if err != nil {
			c.logger.Warn("Skipping delivery row with unparseable timestamp",
				slog.String("symbol", symbol),
				slog.String("timestamp", raw.Timestamp))
			continue
		}
		rows = append(rows, domain.DeliveryRow{
			Date:              date.UTC(),
			DeliverableVolume: raw.DeliveryQty,
			DeliverablePct:    raw.DeliveryPct,
			OpenInterest:      raw.OpenInterest,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	c.logger.Debug("Fetched delivery history",
		slog.String("symbol", symbol),
		slog.Int("rows", len(rows)))
	return rows, nil
}

// applyHeaders sets the browser-like headers the NSE endpoints expect
func (c *NSEClient) applyHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", c.baseURL+"/")
	req.Header.Set("Connection", "keep-alive")
}
