package model

import (
	"fmt"
	"time"
)

// Meridiem is the AM/PM half of a 12-hour clock time
type Meridiem string

const (
	AM Meridiem = "AM"
	PM Meridiem = "PM"
)

// IsValid reports whether m is one of the two allowed values
func (m Meridiem) IsValid() bool {
	return m == AM || m == PM
}

// DateLayout is the ISO civil-date layout used for TimeEntry.Date.
// Dates are local civil dates; no timezone is attached.
const DateLayout = "2006-01-02"

// TimeEntry represents one day's recorded start/end time for one employee.
// At most one entry exists per (EmployeeID, Date) pair.
type TimeEntry struct {
	ID         int64    `json:"id"`
	EmployeeID int64    `json:"employee_id"`
	Date       string   `json:"date"` // YYYY-MM-DD
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
	StartAmPm  Meridiem `json:"start_ampm"`
	EndAmPm    Meridiem `json:"end_ampm"`

	// Total is the elapsed hours as a decimal string, derived from the
	// start/end fields when the entry is written. Not authoritative:
	// anything that changes start/end must recompute it.
	Total string `json:"total"`
}

// StartLabel returns the start time as shown to the user, e.g. "9:00 AM"
func (te *TimeEntry) StartLabel() string {
	return fmt.Sprintf("%s %s", te.StartTime, te.StartAmPm)
}

// EndLabel returns the end time as shown to the user
func (te *TimeEntry) EndLabel() string {
	return fmt.Sprintf("%s %s", te.EndTime, te.EndAmPm)
}

// DateLabel formats the entry date for display, e.g. "Mon, Jan 2"
func (te *TimeEntry) DateLabel() string {
	t, err := time.Parse(DateLayout, te.Date)
	if err != nil {
		return te.Date
	}
	return t.Format("Mon, Jan 2")
}
