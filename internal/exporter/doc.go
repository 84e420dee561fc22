// Package exporter provides the output side of the NIFTY 50 history
// exporter.
//
// This package contains three main components:
//
// CSVWriter: core CSV writing with header rows and directory creation.
//
// TickerExporter: writes one CSV history file per ticker with the fixed
// column set (Date, Open, High, Low, Close, Adj Close, Volume, Deliverable
// Volume, Deliverable %, OI). Missing enrichment values are serialized as
// empty cells, never as zero.
//
// RunSummaryExporter: writes an Excel workbook summarizing a run, one row
// per ticker plus the success/failure totals.
package exporter
