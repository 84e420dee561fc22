package exporter

import (
	"fmt"
	"time"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// formatDate formats a date for CSV output
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// formatNullableInt serializes a nullable integer; nil becomes the empty
// cell, the missing marker, which is distinct from "0".
func formatNullableInt(v *int64) string {
	if v == nil {
		return ""
	}
	return formatInt(*v)
}

// formatNullableFloat serializes a nullable fractional value; nil becomes
// the empty cell.
func formatNullableFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
