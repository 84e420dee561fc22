// Package tickersource resolves the universe of tickers to export.
//
// The primary path scrapes the Symbol column of the NIFTY 50 constituents
// table on Wikipedia. Any failure there (network, parse, empty table) falls
// back to an embedded list of the 50 constituents, so a run always has a
// non-empty ticker universe. The Resolution result type records which path
// was taken and, on fallback, why.
package tickersource
