package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"niftycli/pkg/contracts/domain"
)

// TickerExporter writes one history file per ticker
type TickerExporter struct {
	csvWriter *CSVWriter
}

// NewTickerExporter creates a new ticker history exporter
func NewTickerExporter() *TickerExporter {
	return &TickerExporter{
		csvWriter: NewCSVWriter(),
	}
}

// Headers returns the fixed, order-sensitive column set of a ticker file
func Headers() []string {
	return []string{
		"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume",
		"Deliverable Volume", "Deliverable %", "OI",
	}
}

// FileName maps a ticker to its output file name, with separators normalized
// to underscores ("RELIANCE.NS" -> "RELIANCE_NS.csv").
func FileName(ticker string) string {
	return strings.ReplaceAll(ticker, ".", "_") + ".csv"
}

// ExportTickerFile writes the merged bars for one ticker to outDir and
// returns the path of the written file.
func (t *TickerExporter) ExportTickerFile(outDir, ticker string, bars []domain.MergedBar) (string, error) {
	path := filepath.Join(outDir, FileName(ticker))

	records := make([][]string, 0, len(bars))
	for _, bar := range bars {
		records = append(records, barToCSVRow(bar))
	}

	if err := t.csvWriter.WriteSimpleCSV(path, Headers(), records); err != nil {
		return "", fmt.Errorf("failed to write ticker file for %s: %w", ticker, err)
	}
	return path, nil
}

// barToCSVRow converts a merged bar to a CSV row
func barToCSVRow(bar domain.MergedBar) []string {
	return []string{
		formatDate(bar.Date),
		formatFloat(bar.Open),
		formatFloat(bar.High),
		formatFloat(bar.Low),
		formatFloat(bar.Close),
		formatFloat(bar.AdjClose),
		formatInt(bar.Volume),
		formatNullableInt(bar.DeliverableVolume),
		formatNullableFloat(bar.DeliverablePct),
		formatNullableInt(bar.OpenInterest),
	}
}
