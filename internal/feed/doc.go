// Package feed contains the external market-data clients: the Yahoo Finance
// chart API for daily OHLCV bars and the NSE historical-equity endpoint for
// delivery/open-interest enrichment. Both return an empty slice with a nil
// error when the provider simply has no rows for a ticker, so callers can
// distinguish "nothing there" from a transport or schema failure.
package feed
