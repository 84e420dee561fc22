package exporter

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV_SurfacesFlushError(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("requires /dev/full")
	}

	// the csv writer buffers rows, so a small write only hits the device at
	// flush; the error must come back instead of vanishing in a defer
	w := NewCSVWriter()
	err := w.WriteSimpleCSV("/dev/full", []string{"Date"}, [][]string{{"2024-01-15"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flush")
}
