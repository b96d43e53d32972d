package report

import (
	"strings"
	"testing"

	"github.com/dori/shiftbook/internal/schedule"
)

func TestRender(t *testing.T) {
	data := schedule.SummaryData{
		EmployeeName:   "Alex",
		DateRangeLabel: "Mar 4, 2024 - Mar 5, 2024",
		Entries: []schedule.SummaryEntry{
			{DateLabel: "Mon, Mar 4", StartLabel: "9:00 AM", EndLabel: "5:00 PM", Hours: 8},
			{DateLabel: "Tue, Mar 5", StartLabel: "9:00 AM", EndLabel: "1:00 PM", Hours: 4},
		},
		TotalHours: 12,
		Income:     240,
	}

	out := Render(data)

	for _, want := range []string{
		"Time Summary - Alex",
		"Mar 4, 2024 - Mar 5, 2024",
		"Mon, Mar 4",
		"9:00 AM",
		"Total hours: 12.00",
		"Income:      240.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmptyRange(t *testing.T) {
	out := Render(schedule.SummaryData{EmployeeName: "Alex"})
	if !strings.Contains(out, "No entries in this range.") {
		t.Errorf("empty report = %q", out)
	}
	if !strings.Contains(out, "Total hours: 0.00") {
		t.Errorf("empty report missing zero total:\n%s", out)
	}
}
