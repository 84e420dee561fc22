package feed

import (
	"context"
	"time"

	"niftycli/pkg/contracts/domain"
)

// PriceSource supplies daily OHLCV bars for a ticker over a date range.
// An empty slice with a nil error means the provider has no data for the
// ticker; callers must treat that as "skip", not as a failure.
type PriceSource interface {
	PriceHistory(ctx context.Context, ticker string, from, to time.Time) ([]domain.PriceBar, error)
}

// DeliverySource supplies NSE delivery/open-interest rows for a ticker.
// Warmup must be called once before the first DeliveryHistory call to
// establish the provider session; the client is then reused across tickers.
type DeliverySource interface {
	Warmup(ctx context.Context) error
	DeliveryHistory(ctx context.Context, ticker string, from, to time.Time) ([]domain.DeliveryRow, error)
}
