package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"niftycli/pkg/contracts/domain"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run_summary.xlsx")
	exp := NewRunSummaryExporter()

	rows := []SummaryRow{
		{Ticker: "RELIANCE.NS", Outcome: "written", Rows: 1250, FirstDate: "2019-01-15", LastDate: "2024-01-12"},
		{Ticker: "TESTCO.NS", Outcome: "failed", Detail: "unexpected status 503 Service Unavailable"},
	}
	summary := domain.RunSummary{Succeeded: 1, Failed: 1, FailedTickers: []string{"TESTCO.NS"}}

	require.NoError(t, exp.WriteWorkbook(path, rows, summary))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Run Summary", cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Ticker", get("A1"))
	assert.Equal(t, "Outcome", get("B1"))

	assert.Equal(t, "RELIANCE.NS", get("A2"))
	assert.Equal(t, "written", get("B2"))
	assert.Equal(t, "1250", get("C2"))
	assert.Equal(t, "2019-01-15", get("D2"))

	assert.Equal(t, "TESTCO.NS", get("A3"))
	assert.Equal(t, "failed", get("B3"))
	assert.Equal(t, "unexpected status 503 Service Unavailable", get("F3"))

	// totals block sits one blank line below the per-ticker rows
	assert.Equal(t, "Successful downloads", get("A5"))
	assert.Equal(t, "1", get("B5"))
	assert.Equal(t, "Failed downloads", get("A6"))
	assert.Equal(t, "1", get("B6"))
}

func TestWriteWorkbook_NoRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	exp := NewRunSummaryExporter()

	require.NoError(t, exp.WriteWorkbook(path, nil, domain.RunSummary{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Run Summary", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Successful downloads", v)
}
