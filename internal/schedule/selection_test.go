package schedule

import (
	"testing"
	"time"
)

func TestSelectionSingleDate(t *testing.T) {
	sel := NewSelection(2024, time.March)
	sel.Start("2024-03-04")

	date, ok := sel.Single()
	if !ok || date != "2024-03-04" {
		t.Errorf("Single() = %q, %v; want %q, true", date, ok, "2024-03-04")
	}
	if sel.IsRange() {
		t.Error("single date reported as range")
	}
}

func TestSelectionExtendAscending(t *testing.T) {
	sel := NewSelection(2024, time.March)
	sel.Start("2024-03-04")
	sel.ExtendTo("2024-03-07")

	want := []string{"2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07"}
	got := sel.Dates()
	if len(got) != len(want) {
		t.Fatalf("Dates() has %d elements, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dates()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !sel.IsRange() {
		t.Error("multi-date selection not reported as range")
	}
}

func TestSelectionExtendBackward(t *testing.T) {
	// Sweeping backward past the anchor still yields ascending dates
	sel := NewSelection(2024, time.March)
	sel.Start("2024-03-07")
	sel.ExtendTo("2024-03-04")

	got := sel.Dates()
	if len(got) != 4 || got[0] != "2024-03-04" || got[3] != "2024-03-07" {
		t.Errorf("backward sweep = %v, want ascending 04..07", got)
	}
}

func TestSelectionStaysInsideDisplayedMonth(t *testing.T) {
	sel := NewSelection(2024, time.March)
	sel.Start("2024-03-28")
	sel.ExtendTo("2024-04-02")

	for _, d := range sel.Dates() {
		if d > "2024-03-31" {
			t.Errorf("selection includes out-of-month date %s", d)
		}
	}
	got := sel.Dates()
	if len(got) != 4 || got[len(got)-1] != "2024-03-31" {
		t.Errorf("selection = %v, want 03-28..03-31", got)
	}
}

func TestSelectionShrinksWhenSweepReverses(t *testing.T) {
	sel := NewSelection(2024, time.March)
	sel.Start("2024-03-10")
	sel.ExtendTo("2024-03-15")
	sel.ExtendTo("2024-03-12")

	got := sel.Dates()
	if len(got) != 3 || got[0] != "2024-03-10" || got[2] != "2024-03-12" {
		t.Errorf("selection after reversing sweep = %v, want 10..12", got)
	}
}

func TestSelectionStartOutsideMonthIgnored(t *testing.T) {
	sel := NewSelection(2024, time.March)
	sel.Start("2024-04-01")

	if !sel.IsEmpty() {
		t.Errorf("selection anchored outside month = %v, want empty", sel.Dates())
	}
}

func TestSelectionClear(t *testing.T) {
	sel := NewSelection(2024, time.March)
	sel.Start("2024-03-04")
	sel.ExtendTo("2024-03-06")
	sel.Clear()

	if !sel.IsEmpty() {
		t.Errorf("selection after Clear = %v, want empty", sel.Dates())
	}
	if sel.Contains("2024-03-05") {
		t.Error("cleared selection still contains a date")
	}
}
