package exporter

import (
	"fmt"
	"strings"
)

// formatFloat formats a float64 for report output with 4 decimal places,
// enough to show a calibrated adjustment like 0.0375 without noise.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

// formatInt formats an int for report output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// sectionName turns a sheet title into a CSV section key,
// e.g. "House types" becomes "house_types".
func sectionName(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_")
}
