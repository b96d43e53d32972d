// Package report renders a range summary as a printable plain-text
// document, the terminal counterpart of the original print window.
package report

import (
	"fmt"
	"strings"

	"github.com/dori/shiftbook/internal/schedule"
)

// Render produces the printable summary for one employee and date range
func Render(data schedule.SummaryData) string {
	var b strings.Builder

	title := fmt.Sprintf("Time Summary - %s", data.EmployeeName)
	fmt.Fprintln(&b, title)
	fmt.Fprintln(&b, strings.Repeat("=", len(title)))
	if data.DateRangeLabel != "" {
		fmt.Fprintln(&b, data.DateRangeLabel)
	}
	fmt.Fprintln(&b)

	if len(data.Entries) == 0 {
		fmt.Fprintln(&b, "No entries in this range.")
	} else {
		for _, e := range data.Entries {
			fmt.Fprintf(&b, "%-14s %8s - %-8s %6.2f h\n", e.DateLabel, e.StartLabel, e.EndLabel, e.Hours)
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Total hours: %.2f\n", data.TotalHours)
	fmt.Fprintf(&b, "Income:      %.2f\n", data.Income)

	return b.String()
}
