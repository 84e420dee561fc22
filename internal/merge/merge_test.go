package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niftycli/pkg/contracts/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func testBars() []domain.PriceBar {
	return []domain.PriceBar{
		{Date: day("2024-01-15"), Open: 100, High: 105, Low: 99, Close: 104, AdjClose: 103.5, Volume: 1000},
		{Date: day("2024-01-16"), Open: 104, High: 108, Low: 103, Close: 107, AdjClose: 106.4, Volume: 1200},
		{Date: day("2024-01-17"), Open: 107, High: 109, Low: 105, Close: 106, AdjClose: 105.4, Volume: 900},
	}
}

func TestJoin_EmptyDeliveries(t *testing.T) {
	bars := testBars()

	merged := Join(bars, nil)
	require.Len(t, merged, len(bars))

	for i, m := range merged {
		assert.Equal(t, bars[i], m.PriceBar)
		assert.Nil(t, m.DeliverableVolume)
		assert.Nil(t, m.DeliverablePct)
		assert.Nil(t, m.OpenInterest)
	}
}

func TestJoin_MatchAttachesFields(t *testing.T) {
	bars := testBars()
	deliveries := []domain.DeliveryRow{
		{
			Date:              day("2024-01-16"),
			DeliverableVolume: i64(500),
			DeliverablePct:    f64(41.67),
			OpenInterest:      i64(120),
		},
	}

	merged := Join(bars, deliveries)
	require.Len(t, merged, 3)

	// unmatched dates keep the missing marker, not zero
	assert.Nil(t, merged[0].DeliverableVolume)
	assert.Nil(t, merged[0].DeliverablePct)
	assert.Nil(t, merged[0].OpenInterest)
	assert.Nil(t, merged[2].DeliverableVolume)

	require.NotNil(t, merged[1].DeliverableVolume)
	assert.Equal(t, int64(500), *merged[1].DeliverableVolume)
	require.NotNil(t, merged[1].DeliverablePct)
	assert.Equal(t, 41.67, *merged[1].DeliverablePct)
	require.NotNil(t, merged[1].OpenInterest)
	assert.Equal(t, int64(120), *merged[1].OpenInterest)
}

func TestJoin_ZeroValuesAreNotMissing(t *testing.T) {
	bars := testBars()[:1]
	deliveries := []domain.DeliveryRow{
		{
			Date:              day("2024-01-15"),
			DeliverableVolume: i64(0),
			DeliverablePct:    f64(0),
			OpenInterest:      i64(0),
		},
	}

	merged := Join(bars, deliveries)
	require.Len(t, merged, 1)

	require.NotNil(t, merged[0].DeliverableVolume)
	assert.Equal(t, int64(0), *merged[0].DeliverableVolume)
	require.NotNil(t, merged[0].OpenInterest)
	assert.Equal(t, int64(0), *merged[0].OpenInterest)
}

func TestJoin_LeftJoinKeepsAllPriceDates(t *testing.T) {
	bars := testBars()
	// delivery rows for dates the price set does not contain are dropped
	deliveries := []domain.DeliveryRow{
		{Date: day("2023-12-29"), DeliverableVolume: i64(1)},
		{Date: day("2024-01-16"), DeliverableVolume: i64(2)},
		{Date: day("2024-02-01"), DeliverableVolume: i64(3)},
	}

	merged := Join(bars, deliveries)
	require.Len(t, merged, len(bars))
	for i, m := range merged {
		assert.Equal(t, bars[i].Date, m.Date)
	}
	require.NotNil(t, merged[1].DeliverableVolume)
	assert.Equal(t, int64(2), *merged[1].DeliverableVolume)
}

func TestPrices_RoundTrip(t *testing.T) {
	bars := testBars()

	assert.Equal(t, bars, Prices(Join(bars, nil)))

	deliveries := []domain.DeliveryRow{
		{Date: day("2024-01-15"), DeliverableVolume: i64(7)},
	}
	assert.Equal(t, bars, Prices(Join(bars, deliveries)))
}

func TestJoin_EmptyPrices(t *testing.T) {
	merged := Join(nil, []domain.DeliveryRow{{Date: day("2024-01-15")}})
	assert.Empty(t, merged)
}
