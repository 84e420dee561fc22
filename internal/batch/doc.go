// Package batch drives one export run end to end: resolve the ticker
// universe, fetch and merge each ticker's data sequentially, write one file
// per ticker, and report a run summary. A single ticker's failure never
// aborts the run; request pacing between tickers is a fixed delay.
package batch
