package exporter

import (
	"fmt"
)

// formatScore formats a satisfaction score with one decimal place, the
// precision the generator and uploads carry.
func formatScore(f float64) string {
	return fmt.Sprintf("%.1f", f)
}

// formatFloat formats a derived float with exactly 2 decimal places so
// values like 13.4 appear as 13.40 in CSV.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatBool formats a boolean value for CSV output.
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
