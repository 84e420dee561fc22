package domain

import (
	"time"
)

// PriceBar is one daily OHLCV bar for a single ticker. Dates are normalized
// to UTC midnight and are unique per ticker.
type PriceBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close"`
	Volume   int64     `json:"volume"`
}

// DeliveryRow holds the delivery and open-interest figures NSE publishes for
// one trading day. The numeric fields are nullable: the provider omits them
// for some symbols (open interest outside the F&O segment, for example), and
// nil must stay distinguishable from a genuine zero.
type DeliveryRow struct {
	Date              time.Time `json:"date"`
	DeliverableVolume *int64    `json:"deliverable_volume"`
	DeliverablePct    *float64  `json:"deliverable_pct"`
	OpenInterest      *int64    `json:"open_interest"`
}

// MergedBar is a price bar extended with the delivery fields for the same
// date. nil enrichment fields mean "no delivery data for this date" and are
// serialized as empty cells, never as zero.
type MergedBar struct {
	PriceBar
	DeliverableVolume *int64   `json:"deliverable_volume"`
	DeliverablePct    *float64 `json:"deliverable_pct"`
	OpenInterest      *int64   `json:"open_interest"`
}

// RunSummary accumulates the per-ticker outcomes of one export run. It lives
// only for the duration of the run and is never persisted.
type RunSummary struct {
	Succeeded     int      `json:"succeeded"`
	Failed        int      `json:"failed"`
	FailedTickers []string `json:"failed_tickers,omitempty"`
}

// AddFailure records a failed ticker.
func (s *RunSummary) AddFailure(ticker string) {
	s.Failed++
	s.FailedTickers = append(s.FailedTickers, ticker)
}

// AddSuccess records a successfully written ticker.
func (s *RunSummary) AddSuccess() {
	s.Succeeded++
}
