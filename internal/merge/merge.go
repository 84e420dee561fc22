// Package merge aligns delivery rows to price bars by calendar date.
package merge

import (
	"time"

	"niftycli/pkg/contracts/domain"
)

// Join performs a price-preserving left join of deliveries onto prices by
// calendar date (UTC). Every price bar is kept, in order; a delivery row for
// the same date attaches its three fields, otherwise they stay nil. An empty
// delivery set therefore yields bars whose enrichment fields are all nil —
// never zero, since zero is a valid delivery or open-interest value.
func Join(prices []domain.PriceBar, deliveries []domain.DeliveryRow) []domain.MergedBar {
	byDate := make(map[string]domain.DeliveryRow, len(deliveries))
	for _, d := range deliveries {
		byDate[dateKey(d.Date)] = d
	}

	merged := make([]domain.MergedBar, 0, len(prices))
	for _, p := range prices {
		bar := domain.MergedBar{PriceBar: p}
		if d, ok := byDate[dateKey(p.Date)]; ok {
			bar.DeliverableVolume = d.DeliverableVolume
			bar.DeliverablePct = d.DeliverablePct
			bar.OpenInterest = d.OpenInterest
		}
		merged = append(merged, bar)
	}
	return merged
}

// Prices projects the price columns back out of a merged set. The result of
// Prices(Join(p, d)) equals p for any d.
func Prices(merged []domain.MergedBar) []domain.PriceBar {
	out := make([]domain.PriceBar, 0, len(merged))
	for _, m := range merged {
		out = append(out, m.PriceBar)
	}
	return out
}

func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
