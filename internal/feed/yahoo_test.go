package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserAgent = "niftycli-test"

func chartPayload(timestamps []int64, opens, highs, lows, closes, adjCloses []interface{}, volumes []interface{}) string {
	marshal := func(vals []interface{}) string {
		out := "["
		for i, v := range vals {
			if i > 0 {
				out += ","
			}
			if v == nil {
				out += "null"
			} else {
				out += fmt.Sprintf("%v", v)
			}
		}
		return out + "]"
	}
	ts := "["
	for i, v := range timestamps {
		if i > 0 {
			ts += ","
		}
		ts += fmt.Sprintf("%d", v)
	}
	ts += "]"

	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":%s,
		"indicators":{"quote":[{"open":%s,"high":%s,"low":%s,"close":%s,"volume":%s}],
		"adjclose":[{"adjclose":%s}]}}],"error":null}}`,
		ts, marshal(opens), marshal(highs), marshal(lows), marshal(closes), marshal(volumes), marshal(adjCloses))
}

func TestPriceHistory(t *testing.T) {
	d1 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)

	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))
		fmt.Fprint(w, chartPayload(
			[]int64{d1.Unix(), d2.Unix(), d3.Unix()},
			[]interface{}{100.0, 104.0, 107.0},
			[]interface{}{105.0, 108.0, 109.0},
			[]interface{}{99.0, 103.0, 105.0},
			[]interface{}{104.0, 107.0, 106.0},
			[]interface{}{103.5, 106.4, 105.4},
			[]interface{}{1000, 1200, 900},
		))
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, testUserAgent, 5*time.Second, nil)
	bars, err := client.PriceHistory(context.Background(), "RELIANCE.NS", d1, d3)
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, "/v8/finance/chart/RELIANCE.NS", gotPath)
	assert.Contains(t, gotQuery, "interval=1d")
	assert.Contains(t, gotQuery, fmt.Sprintf("period1=%d", d1.Unix()))
	assert.Contains(t, gotQuery, fmt.Sprintf("period2=%d", d3.Unix()))

	assert.Equal(t, d1, bars[0].Date)
	assert.Equal(t, 100.0, bars[0].Open)
	assert.Equal(t, 105.0, bars[0].High)
	assert.Equal(t, 99.0, bars[0].Low)
	assert.Equal(t, 104.0, bars[0].Close)
	assert.Equal(t, 103.5, bars[0].AdjClose)
	assert.Equal(t, int64(1000), bars[0].Volume)

	// ascending date order
	assert.True(t, bars[0].Date.Before(bars[1].Date))
	assert.True(t, bars[1].Date.Before(bars[2].Date))
}

func TestPriceHistory_NullSlotsSkipped(t *testing.T) {
	d1 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartPayload(
			[]int64{d1.Unix(), d2.Unix()},
			[]interface{}{100.0, nil},
			[]interface{}{105.0, nil},
			[]interface{}{99.0, nil},
			[]interface{}{104.0, nil},
			[]interface{}{103.5, nil},
			[]interface{}{1000, nil},
		))
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, testUserAgent, 5*time.Second, nil)
	bars, err := client.PriceHistory(context.Background(), "RELIANCE.NS", d1, d2)
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, d1, bars[0].Date)
}

func TestPriceHistory_UnknownSymbolIsEmptyNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, testUserAgent, 5*time.Second, nil)
	bars, err := client.PriceHistory(context.Background(), "NOPE.NS", time.Now().AddDate(-1, 0, 0), time.Now())
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestPriceHistory_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, testUserAgent, 5*time.Second, nil)
	bars, err := client.PriceHistory(context.Background(), "RELIANCE.NS", time.Now().AddDate(-1, 0, 0), time.Now())
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestPriceHistory_ServerErrorFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, testUserAgent, 5*time.Second, nil)
	_, err := client.PriceHistory(context.Background(), "RELIANCE.NS", time.Now().AddDate(-1, 0, 0), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestPriceHistory_AdjCloseFallsBackToClose(t *testing.T) {
	d1 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[{"timestamp":[`+fmt.Sprintf("%d", d1.Unix())+`],
			"indicators":{"quote":[{"open":[100],"high":[105],"low":[99],"close":[104],"volume":[1000]}]}}],"error":null}}`)
	}))
	defer server.Close()

	client := NewYahooClient(server.URL, testUserAgent, 5*time.Second, nil)
	bars, err := client.PriceHistory(context.Background(), "RELIANCE.NS", d1, d1.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 104.0, bars[0].AdjClose)
}
