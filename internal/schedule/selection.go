package schedule

import (
	"time"

	"github.com/dori/shiftbook/internal/model"
	"github.com/dori/shiftbook/internal/timecalc"
)

// Selection tracks the contiguous set of calendar dates chosen within one
// displayed month, either a single date or a range swept out from an anchor.
// It lives only for the duration of a gesture: Start begins it, ExtendTo
// updates it, Clear ends it.
type Selection struct {
	year   int
	month  time.Month
	anchor string
	dates  []string
}

// NewSelection returns an empty selection bounded to the displayed month
func NewSelection(year int, month time.Month) *Selection {
	return &Selection{year: year, month: month}
}

// Start anchors the selection at date and selects just that date.
// Dates outside the displayed month are ignored.
func (s *Selection) Start(date string) {
	if !s.inMonth(date) {
		return
	}
	s.anchor = date
	s.dates = []string{date}
}

// ExtendTo recomputes the selection as every displayed-month date between
// the anchor and date inclusive, ascending. The endpoints may be swept in
// either direction; dates outside the month are excluded even when they
// fall between the endpoints.
func (s *Selection) ExtendTo(date string) {
	if s.anchor == "" {
		return
	}

	span, err := timecalc.DatesBetween(s.anchor, date)
	if err != nil {
		return
	}

	dates := span[:0]
	for _, d := range span {
		if s.inMonth(d) {
			dates = append(dates, d)
		}
	}
	s.dates = dates
}

// Clear empties the selection. Called on save completion, editor cancel,
// summary close, and month navigation.
func (s *Selection) Clear() {
	s.anchor = ""
	s.dates = nil
}

// Dates returns the selected dates in ascending order
func (s *Selection) Dates() []string {
	return s.dates
}

// IsEmpty reports whether nothing is selected
func (s *Selection) IsEmpty() bool {
	return len(s.dates) == 0
}

// Single returns the selected date when exactly one is selected
func (s *Selection) Single() (string, bool) {
	if len(s.dates) == 1 {
		return s.dates[0], true
	}
	return "", false
}

// IsRange reports whether more than one date is selected
func (s *Selection) IsRange() bool {
	return len(s.dates) > 1
}

// Contains reports whether date is part of the selection
func (s *Selection) Contains(date string) bool {
	for _, d := range s.dates {
		if d == date {
			return true
		}
	}
	return false
}

func (s *Selection) inMonth(date string) bool {
	t, err := time.ParseInLocation(model.DateLayout, date, time.Local)
	if err != nil {
		return false
	}
	return t.Year() == s.year && t.Month() == s.month
}
