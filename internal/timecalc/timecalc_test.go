package timecalc_test

import (
	"testing"
	"time"

	"github.com/dori/shiftbook/internal/model"
	"github.com/dori/shiftbook/internal/timecalc"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in       string
		hour     int
		minute   int
		wantErr  bool
	}{
		{"9:00", 9, 0, false},
		{"09:00", 9, 0, false},
		{"12:30", 12, 30, false},
		{"1:05", 1, 5, false},
		{"", 0, 0, true},
		{"9", 0, 0, true},
		{"9:5", 0, 0, true},
		{"9:00 AM", 0, 0, true},
		{"13:00", 0, 0, true},
		{"9:60", 0, 0, true},
		{"nine:00", 0, 0, true},
	}
	for _, tt := range tests {
		h, m, err := timecalc.ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d:%d", tt.in, h, m)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if h != tt.hour || m != tt.minute {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.in, h, m, tt.hour, tt.minute)
		}
	}
}

func TestElapsedHours(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		startAmPm model.Meridiem
		end       string
		endAmPm   model.Meridiem
		want      float64
	}{
		{"standard workday", "9:00", model.AM, "5:00", model.PM, 8},
		{"half day", "9:00", model.AM, "1:00", model.PM, 4},
		{"overnight shift", "11:00", model.PM, "1:00", model.AM, 2},
		{"midnight start", "12:00", model.AM, "8:00", model.AM, 8},
		{"noon start", "12:00", model.PM, "5:00", model.PM, 5},
		{"zero length", "9:00", model.AM, "9:00", model.AM, 0},
		{"partial hour", "9:15", model.AM, "10:45", model.AM, 1.5},
		{"nearly full day", "12:30", model.AM, "12:00", model.AM, 23.5},
	}
	for _, tt := range tests {
		got, err := timecalc.ElapsedHours(tt.start, tt.startAmPm, tt.end, tt.endAmPm)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: ElapsedHours = %v, want %v", tt.name, got, tt.want)
		}
		if got < 0 {
			t.Errorf("%s: ElapsedHours returned negative %v", tt.name, got)
		}
	}
}

func TestElapsedHoursRejectsMalformedTimes(t *testing.T) {
	if _, err := timecalc.ElapsedHours("", model.AM, "5:00", model.PM); err == nil {
		t.Error("expected error for empty start time")
	}
	if _, err := timecalc.ElapsedHours("9:00", model.AM, "5pm", model.PM); err == nil {
		t.Error("expected error for malformed end time")
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{8, "8.00"},
		{1.5, "1.50"},
		{0, "0.00"},
		{23.5, "23.50"},
	}
	for _, tt := range tests {
		if got := timecalc.FormatHours(tt.hours); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		first string
		last  string
	}{
		{2024, time.March, "2024-03-01", "2024-03-31"},
		{2024, time.February, "2024-02-01", "2024-02-29"}, // leap year
		{2023, time.February, "2023-02-01", "2023-02-28"},
		{2024, time.December, "2024-12-01", "2024-12-31"},
	}
	for _, tt := range tests {
		first, last := timecalc.MonthBounds(tt.year, tt.month)
		if first != tt.first || last != tt.last {
			t.Errorf("MonthBounds(%d, %v) = %q, %q, want %q, %q",
				tt.year, tt.month, first, last, tt.first, tt.last)
		}
	}
}

func TestDatesBetween(t *testing.T) {
	dates, err := timecalc.DatesBetween("2024-03-04", "2024-03-06")
	if err != nil {
		t.Fatalf("DatesBetween: %v", err)
	}
	want := []string{"2024-03-04", "2024-03-05", "2024-03-06"}
	if len(dates) != len(want) {
		t.Fatalf("DatesBetween returned %d dates, want %d", len(dates), len(want))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("DatesBetween[%d] = %q, want %q", i, dates[i], want[i])
		}
	}
}

func TestDatesBetweenReversedEndpoints(t *testing.T) {
	dates, err := timecalc.DatesBetween("2024-03-06", "2024-03-04")
	if err != nil {
		t.Fatalf("DatesBetween: %v", err)
	}
	if len(dates) != 3 || dates[0] != "2024-03-04" || dates[2] != "2024-03-06" {
		t.Errorf("DatesBetween with reversed endpoints = %v, want ascending 04..06", dates)
	}
}

func TestDatesBetweenCrossesMonth(t *testing.T) {
	dates, err := timecalc.DatesBetween("2024-03-30", "2024-04-02")
	if err != nil {
		t.Fatalf("DatesBetween: %v", err)
	}
	want := []string{"2024-03-30", "2024-03-31", "2024-04-01", "2024-04-02"}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("DatesBetween[%d] = %q, want %q", i, dates[i], want[i])
		}
	}
}
