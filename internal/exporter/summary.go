package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"niftycli/pkg/contracts/domain"
)

// summarySheet is the name of the workbook sheet holding per-ticker results
const summarySheet = "Run Summary"

// SummaryRow is one per-ticker line of the run-summary workbook
type SummaryRow struct {
	Ticker    string
	Outcome   string
	Rows      int
	FirstDate string
	LastDate  string
	Detail    string
}

// RunSummaryExporter writes an Excel workbook describing one export run:
// a row per ticker with its outcome, plus the run totals.
type RunSummaryExporter struct{}

// NewRunSummaryExporter creates a new run-summary exporter
func NewRunSummaryExporter() *RunSummaryExporter {
	return &RunSummaryExporter{}
}

// WriteWorkbook writes the summary workbook to path
func (e *RunSummaryExporter) WriteWorkbook(path string, rows []SummaryRow, summary domain.RunSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	header := []interface{}{"Ticker", "Outcome", "Rows", "First Date", "Last Date", "Detail"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	line := 2
	for _, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return fmt.Errorf("failed to compute summary cell: %w", err)
		}
		values := []interface{}{row.Ticker, row.Outcome, row.Rows, row.FirstDate, row.LastDate, row.Detail}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write summary row for %s: %w", row.Ticker, err)
		}
		line++
	}

	// totals block below the per-ticker rows
	line++
	totals := [][]interface{}{
		{"Successful downloads", summary.Succeeded},
		{"Failed downloads", summary.Failed},
	}
	for _, t := range totals {
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return fmt.Errorf("failed to compute totals cell: %w", err)
		}
		values := t
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write totals row: %w", err)
		}
		line++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save summary workbook: %w", err)
	}
	return nil
}
