package timecalc

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/dori/shiftbook/internal/model"
)

// clockPattern matches a 12-hour clock time: 1-2 digit hour, 2 digit minute.
var clockPattern = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})$`)

// ValidClock reports whether s looks like H:MM or HH:MM.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// ParseClock parses an H:MM or HH:MM string into hour and minute.
// The hour is the raw 12-hour value (0-12); AM/PM conversion is separate.
func ParseClock(s string) (hour, minute int, err error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("timecalc: malformed clock time %q", s)
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 12 || minute > 59 {
		return 0, 0, fmt.Errorf("timecalc: clock time %q out of range", s)
	}
	return hour, minute, nil
}

// to24Hour converts a 12-hour clock hour to 0-23.
// 12 AM is midnight; 12 PM stays noon.
func to24Hour(hour int, ampm model.Meridiem) int {
	if ampm == model.AM && hour == 12 {
		return 0
	}
	if ampm == model.PM && hour < 12 {
		return hour + 12
	}
	return hour
}

// ElapsedHours returns the hours between a start and end clock time on the
// same civil day. An end earlier than the start is treated as an overnight
// shift and wraps by 24 hours, so the result is never negative.
func ElapsedHours(start string, startAmPm model.Meridiem, end string, endAmPm model.Meridiem) (float64, error) {
	sh, sm, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	eh, em, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	startMin := to24Hour(sh, startAmPm)*60 + sm
	endMin := to24Hour(eh, endAmPm)*60 + em

	elapsed := endMin - startMin
	if elapsed < 0 {
		elapsed += 24 * 60
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return float64(elapsed) / 60, nil
}

// FormatHours renders an hour count as a two-decimal string, the form the
// store caches in TimeEntry.Total.
func FormatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', 2, 64)
}

// ISODate formats t as a local civil date string.
func ISODate(t time.Time) string {
	return t.Format(model.DateLayout)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// MonthBounds returns the first and last civil dates of a month.
func MonthBounds(year int, month time.Month) (first, last string) {
	f := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	l := time.Date(year, month, DaysInMonth(year, month), 0, 0, 0, 0, time.Local)
	return ISODate(f), ISODate(l)
}

// DatesBetween enumerates every date from a to b inclusive, ascending.
// The endpoints may be given in either order.
func DatesBetween(a, b string) ([]string, error) {
	ta, err := time.ParseInLocation(model.DateLayout, a, time.Local)
	if err != nil {
		return nil, fmt.Errorf("timecalc: bad date %q: %w", a, err)
	}
	tb, err := time.ParseInLocation(model.DateLayout, b, time.Local)
	if err != nil {
		return nil, fmt.Errorf("timecalc: bad date %q: %w", b, err)
	}
	if tb.Before(ta) {
		ta, tb = tb, ta
	}

	var dates []string
	for d := ta; !d.After(tb); d = d.AddDate(0, 0, 1) {
		dates = append(dates, ISODate(d))
	}
	return dates, nil
}
