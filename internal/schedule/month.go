package schedule

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dori/shiftbook/internal/db"
	"github.com/dori/shiftbook/internal/model"
	"github.com/dori/shiftbook/internal/timecalc"
)

// Month aggregates one employee's time entries for a displayed month. The
// date-indexed map is a cache over the store, rebuilt wholesale by Load on
// every navigation or mutation, and is never a second source of truth.
type Month struct {
	db *db.DB

	EmployeeID int64
	Year       int
	Month      time.Month

	byDate map[string]model.TimeEntry
}

// NewMonth prepares a month aggregate without touching the store. Call
// Reload before reading from it.
func NewMonth(database *db.DB, employeeID int64, year int, month time.Month) *Month {
	return &Month{
		db:         database,
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		byDate:     make(map[string]model.TimeEntry),
	}
}

// LoadMonth queries the store for every entry in the month and indexes the
// result by date. One entry per date, per the store's uniqueness constraint.
func LoadMonth(database *db.DB, employeeID int64, year int, month time.Month) (*Month, error) {
	m := NewMonth(database, employeeID, year, month)
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload rebuilds the date index from the store
func (m *Month) Reload() error {
	first, last := timecalc.MonthBounds(m.Year, m.Month)
	entries, err := m.db.GetEntriesInRange(m.EmployeeID, first, last)
	if err != nil {
		return fmt.Errorf("failed to load entries for %s: %w", first[:7], err)
	}

	m.byDate = make(map[string]model.TimeEntry, len(entries))
	for _, e := range entries {
		m.byDate[e.Date] = e
	}
	return nil
}

// Entry returns the entry for a date, or nil when the date has none
func (m *Month) Entry(date string) *model.TimeEntry {
	if e, ok := m.byDate[date]; ok {
		return &e
	}
	return nil
}

// TotalHours sums the cached per-entry totals over the given dates. Dates
// without an entry contribute 0. The cached total is trusted as written;
// it is not recomputed here.
func (m *Month) TotalHours(dates []string) float64 {
	var total float64
	for _, d := range dates {
		e, ok := m.byDate[d]
		if !ok {
			continue
		}
		if hours, err := strconv.ParseFloat(e.Total, 64); err == nil {
			total += hours
		}
	}
	return total
}

// Income returns the pay owed for the given dates at an hourly rate
func (m *Month) Income(dates []string, hourlyRate float64) float64 {
	return m.TotalHours(dates) * hourlyRate
}

// CommitEntry validates the times once, then writes one entry per date.
// Existing entries are updated in place, keeping their ids; the rest are
// inserted. Each date's write is independent: a failure is recorded against
// its date and the remaining dates are still attempted. On return the
// month's cache reflects the just-written records.
func (m *Month) CommitEntry(dates []string, startTime string, startAmPm model.Meridiem, endTime string, endAmPm model.Meridiem) []DateError {
	if m.EmployeeID == 0 {
		return []DateError{{Err: ErrNoEmployee}}
	}
	if startTime == "" || endTime == "" {
		return []DateError{{Err: ErrMissingTime}}
	}
	if !timecalc.ValidClock(startTime) || !timecalc.ValidClock(endTime) {
		return []DateError{{Err: ErrBadTime}}
	}

	hours, err := timecalc.ElapsedHours(startTime, startAmPm, endTime, endAmPm)
	if err != nil {
		return []DateError{{Err: err}}
	}
	total := timecalc.FormatHours(hours)

	var failures []DateError
	for _, date := range dates {
		entry := model.TimeEntry{
			EmployeeID: m.EmployeeID,
			Date:       date,
			StartTime:  startTime,
			EndTime:    endTime,
			StartAmPm:  startAmPm,
			EndAmPm:    endAmPm,
			Total:      total,
		}

		existing, err := m.db.GetEntryByDate(m.EmployeeID, date)
		if err != nil {
			failures = append(failures, DateError{Date: date, Err: err})
			continue
		}

		if existing != nil {
			entry.ID = existing.ID
			err = m.db.UpdateEntry(&entry)
		} else {
			entry.ID, err = m.db.AddEntry(&entry)
		}
		if err != nil {
			failures = append(failures, DateError{Date: date, Err: err})
			continue
		}

		m.byDate[date] = entry
	}

	return failures
}

// DayCell is the per-day projection consumed by the calendar renderer
type DayCell struct {
	Date       string
	Day        int
	HasEntry   bool
	StartLabel string
	EndLabel   string
	TotalHours float64
	IsToday    bool
	IsSelected bool
}

// Cells returns one DayCell per day of the displayed month, in order.
// A nil selection marks no cell selected.
func (m *Month) Cells(sel *Selection) []DayCell {
	today := timecalc.ISODate(time.Now())
	days := timecalc.DaysInMonth(m.Year, m.Month)

	cells := make([]DayCell, 0, days)
	for day := 1; day <= days; day++ {
		date := timecalc.ISODate(time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.Local))
		cell := DayCell{
			Date:       date,
			Day:        day,
			IsToday:    date == today,
			IsSelected: sel != nil && sel.Contains(date),
		}
		if e, ok := m.byDate[date]; ok {
			cell.HasEntry = true
			cell.StartLabel = e.StartLabel()
			cell.EndLabel = e.EndLabel()
			cell.TotalHours, _ = strconv.ParseFloat(e.Total, 64)
		}
		cells = append(cells, cell)
	}
	return cells
}

// SummaryEntry is one line of the printable range summary
type SummaryEntry struct {
	DateLabel  string
	StartLabel string
	EndLabel   string
	Hours      float64
}

// SummaryData is the read-only projection handed to the summary and print
// renderers.
type SummaryData struct {
	EmployeeName   string
	DateRangeLabel string
	Entries        []SummaryEntry
	TotalHours     float64
	Income         float64
}

// Summary builds the range summary for an employee over the given dates,
// in ascending date order. Dates without entries are omitted from the
// listing but still count as 0 toward the totals.
func (m *Month) Summary(employee *model.Employee, dates []string) SummaryData {
	data := SummaryData{
		EmployeeName: employee.Name,
		TotalHours:   m.TotalHours(dates),
	}
	data.Income = data.TotalHours * employee.HourlyRate

	if n := len(dates); n == 1 {
		data.DateRangeLabel = formatDateLabel(dates[0])
	} else if n > 1 {
		data.DateRangeLabel = fmt.Sprintf("%s - %s", formatDateLabel(dates[0]), formatDateLabel(dates[n-1]))
	}

	for _, d := range dates {
		e, ok := m.byDate[d]
		if !ok {
			continue
		}
		hours, _ := strconv.ParseFloat(e.Total, 64)
		data.Entries = append(data.Entries, SummaryEntry{
			DateLabel:  e.DateLabel(),
			StartLabel: e.StartLabel(),
			EndLabel:   e.EndLabel(),
			Hours:      hours,
		})
	}
	return data
}

// RangeSummary builds a summary straight from the store for an arbitrary
// date range, which may span months. Used by the report command.
func RangeSummary(database *db.DB, employee *model.Employee, from, to string) (SummaryData, error) {
	dates, err := timecalc.DatesBetween(from, to)
	if err != nil {
		return SummaryData{}, err
	}

	entries, err := database.GetEntriesInRange(employee.ID, dates[0], dates[len(dates)-1])
	if err != nil {
		return SummaryData{}, err
	}

	data := SummaryData{EmployeeName: employee.Name}
	if n := len(dates); n == 1 {
		data.DateRangeLabel = formatDateLabel(dates[0])
	} else {
		data.DateRangeLabel = fmt.Sprintf("%s - %s", formatDateLabel(dates[0]), formatDateLabel(dates[n-1]))
	}

	for _, e := range entries {
		hours, _ := strconv.ParseFloat(e.Total, 64)
		data.TotalHours += hours
		data.Entries = append(data.Entries, SummaryEntry{
			DateLabel:  e.DateLabel(),
			StartLabel: e.StartLabel(),
			EndLabel:   e.EndLabel(),
			Hours:      hours,
		})
	}
	data.Income = data.TotalHours * employee.HourlyRate
	return data, nil
}

func formatDateLabel(date string) string {
	t, err := time.ParseInLocation(model.DateLayout, date, time.Local)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}
