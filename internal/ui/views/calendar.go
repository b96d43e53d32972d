package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/shiftbook/internal/app"
	"github.com/dori/shiftbook/internal/model"
	"github.com/dori/shiftbook/internal/schedule"
	"github.com/dori/shiftbook/internal/timecalc"
	"github.com/dori/shiftbook/internal/ui/theme"
)

// CalendarMode represents what the calendar view is currently showing
type CalendarMode int

const (
	CalendarModeGrid CalendarMode = iota
	CalendarModeEditor
	CalendarModeSummary
)

// CalendarView shows one employee's month and drives entry editing
type CalendarView struct {
	app    *app.App
	width  int
	height int

	employee model.Employee
	month    *schedule.Month
	sel      *schedule.Selection
	cursor   string // ISO date under the cursor
	sweeping bool

	mode    CalendarMode
	editor  EditorView
	summary SummaryView
}

// NewCalendarView creates a calendar for the given employee, opened on today
func NewCalendarView(a *app.App, employee model.Employee) CalendarView {
	now := time.Now()
	return CalendarView{
		app:      a,
		employee: employee,
		month:    schedule.NewMonth(a.DB, employee.ID, now.Year(), now.Month()),
		sel:      schedule.NewSelection(now.Year(), now.Month()),
		cursor:   timecalc.ISODate(now),
	}
}

// Init loads the current month
func (v CalendarView) Init() tea.Cmd {
	return v.loadMonth()
}

// SetSize sets the view dimensions
func (v CalendarView) SetSize(width, height int) CalendarView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode returns whether a sub-component is capturing text input
func (v CalendarView) IsInputMode() bool {
	return v.mode == CalendarModeEditor
}

// Employee returns the employee this calendar belongs to
func (v CalendarView) Employee() model.Employee {
	return v.employee
}

func (v CalendarView) loadMonth() tea.Cmd {
	month := v.month
	return func() tea.Msg {
		if err := month.Reload(); err != nil {
			return ErrorMsg{Err: err}
		}
		return MonthLoadedMsg{Month: month}
	}
}

func (v CalendarView) cursorDay() int {
	var day int
	fmt.Sscanf(v.cursor[8:], "%d", &day)
	return day
}

func (v *CalendarView) setCursorDay(day int) {
	last := timecalc.DaysInMonth(v.month.Year, v.month.Month)
	if day < 1 {
		day = 1
	}
	if day > last {
		day = last
	}
	v.cursor = fmt.Sprintf("%04d-%02d-%02d", v.month.Year, int(v.month.Month), day)
	if v.sweeping {
		v.sel.ExtendTo(v.cursor)
	}
}

func (v *CalendarView) shiftMonth(delta int) {
	year, month := v.month.Year, v.month.Month
	month += time.Month(delta)
	for month < time.January {
		month += 12
		year--
	}
	for month > time.December {
		month -= 12
		year++
	}
	v.month = schedule.NewMonth(v.app.DB, v.employee.ID, year, month)
	v.sel = schedule.NewSelection(year, month)
	v.sweeping = false
	day := v.cursorDay()
	v.setCursorDay(day)
}

// Update handles messages
func (v CalendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MonthLoadedMsg:
		return v, nil

	case EntryCommittedMsg:
		v.mode = CalendarModeGrid
		v.sel.Clear()
		v.sweeping = false
		if len(msg.Failures) > 0 {
			failed := msg.Failures[0]
			return v, func() tea.Msg {
				return ErrorMsg{Err: fmt.Errorf("%d day(s) not saved: %s", len(msg.Failures), failed.Error())}
			}
		}
		return v, func() tea.Msg {
			return StatusMsg{Message: fmt.Sprintf("Saved %d day(s)", len(msg.Dates))}
		}

	case EditorCancelledMsg:
		v.mode = CalendarModeGrid
		v.sel.Clear()
		v.sweeping = false
		return v, nil

	case SummaryClosedMsg:
		v.mode = CalendarModeGrid
		v.sel.Clear()
		v.sweeping = false
		return v, nil

	case ReportWrittenMsg:
		v.mode = CalendarModeGrid
		v.sel.Clear()
		v.sweeping = false
		if msg.Err != nil {
			return v, func() tea.Msg { return ErrorMsg{Err: msg.Err} }
		}
		return v, func() tea.Msg {
			return StatusMsg{Message: "Report written to " + msg.Path}
		}

	case tea.KeyMsg:
		switch v.mode {
		case CalendarModeEditor:
			newEditor, cmd := v.editor.Update(msg)
			v.editor = newEditor.(EditorView)
			return v, cmd
		case CalendarModeSummary:
			newSummary, cmd := v.summary.Update(msg)
			v.summary = newSummary.(SummaryView)
			return v, cmd
		}
		return v.updateGrid(msg)
	}

	// Non-key messages still reach active sub-components
	switch v.mode {
	case CalendarModeEditor:
		newEditor, cmd := v.editor.Update(msg)
		v.editor = newEditor.(EditorView)
		return v, cmd
	case CalendarModeSummary:
		newSummary, cmd := v.summary.Update(msg)
		v.summary = newSummary.(SummaryView)
		return v, cmd
	}

	return v, nil
}

func (v CalendarView) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	day := v.cursorDay()

	switch msg.String() {
	case "h", "left":
		v.setCursorDay(day - 1)
	case "l", "right":
		v.setCursorDay(day + 1)
	case "k", "up":
		v.setCursorDay(day - 7)
	case "j", "down":
		v.setCursorDay(day + 7)
	case "g":
		v.setCursorDay(1)
	case "G":
		v.setCursorDay(timecalc.DaysInMonth(v.month.Year, v.month.Month))

	case "H", "pgup":
		v.shiftMonth(-1)
		return v, v.loadMonth()
	case "L", "pgdown":
		v.shiftMonth(1)
		return v, v.loadMonth()

	case "t":
		now := time.Now()
		v.month = schedule.NewMonth(v.app.DB, v.employee.ID, now.Year(), now.Month())
		v.sel = schedule.NewSelection(now.Year(), now.Month())
		v.sweeping = false
		v.cursor = timecalc.ISODate(now)
		return v, v.loadMonth()

	case "v":
		if v.sweeping {
			v.sweeping = false
			v.sel.Clear()
		} else {
			v.sweeping = true
			v.sel.Start(v.cursor)
		}

	case "esc":
		v.sweeping = false
		v.sel.Clear()

	case "d":
		entry := v.month.Entry(v.cursor)
		if entry == nil {
			return v, nil
		}
		id := entry.ID
		month := v.month
		return v, func() tea.Msg {
			if err := v.app.DB.DeleteEntry(id); err != nil {
				return ErrorMsg{Err: err}
			}
			if err := month.Reload(); err != nil {
				return ErrorMsg{Err: err}
			}
			return StatusMsg{Message: "Entry deleted"}
		}

	case "enter", "a", "e":
		v.sweeping = false
		dates := v.sel.Dates()
		if len(dates) == 0 {
			dates = []string{v.cursor}
		}

		if len(dates) > 1 && msg.String() == "enter" {
			// A multi-day selection confirmed with enter shows the summary
			v.summary = NewSummaryView(v.app, v.employee, v.month.Summary(&v.employee, dates))
			v.summary = v.summary.SetSize(v.width, v.height)
			v.mode = CalendarModeSummary
			return v, nil
		}

		v.editor = NewEditorView(v.month, dates)
		v.editor = v.editor.SetSize(v.width, v.height)
		v.mode = CalendarModeEditor
		return v, v.editor.Init()

	case "s":
		// Summary of the selection, or of the whole month when nothing is selected
		v.sweeping = false
		dates := v.sel.Dates()
		if len(dates) == 0 {
			first, last := timecalc.MonthBounds(v.month.Year, v.month.Month)
			dates, _ = timecalc.DatesBetween(first, last)
		}
		v.summary = NewSummaryView(v.app, v.employee, v.month.Summary(&v.employee, dates))
		v.summary = v.summary.SetSize(v.width, v.height)
		v.mode = CalendarModeSummary
		return v, nil
	}

	return v, nil
}

// View renders the calendar
func (v CalendarView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	switch v.mode {
	case CalendarModeEditor:
		return v.editor.View()
	case CalendarModeSummary:
		return v.summary.View()
	}

	calWidth := 30
	detailWidth := v.width - calWidth - 6
	if detailWidth < 20 {
		detailWidth = 20
	}

	grid := v.renderGrid(calWidth)
	detail := v.renderDayDetail(detailWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, grid, detail)
}

func (v CalendarView) renderGrid(width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	accent := t.Accent(v.employee.Color)

	monthName := fmt.Sprintf("%s %d", v.month.Month.String(), v.month.Year)
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Width(width).
		Align(lipgloss.Center)

	var lines []string
	lines = append(lines, headerStyle.Render(monthName))
	lines = append(lines, lipgloss.NewStyle().Foreground(t.Subtle).Render(" Su  Mo  Tu  We  Th  Fr  Sa"))

	firstDay := time.Date(v.month.Year, v.month.Month, 1, 0, 0, 0, 0, time.Local)
	startWeekday := int(firstDay.Weekday())

	cells := v.month.Cells(v.sel)

	var week []string
	for i := 0; i < startWeekday; i++ {
		week = append(week, "    ")
	}

	for _, cell := range cells {
		dayStyle := lipgloss.NewStyle().Width(4).Align(lipgloss.Center)

		isCursor := cell.Date == v.cursor

		if cell.IsSelected {
			dayStyle = dayStyle.Background(t.Highlight)
		}
		if isCursor {
			dayStyle = dayStyle.Background(accent).Foreground(t.Background).Bold(true)
		}
		if cell.IsToday && !isCursor {
			dayStyle = dayStyle.Foreground(t.Primary).Bold(true)
		}
		if cell.HasEntry && !isCursor && !cell.IsSelected {
			dayStyle = dayStyle.Foreground(accent)
		}

		dayStr := fmt.Sprintf("%2d", cell.Day)
		if cell.HasEntry {
			dayStr += "•"
		} else {
			dayStr += " "
		}

		week = append(week, dayStyle.Render(dayStr))

		if (startWeekday+cell.Day)%7 == 0 {
			lines = append(lines, strings.Join(week, ""))
			week = nil
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, "    ")
		}
		lines = append(lines, strings.Join(week, ""))
	}

	first, last := timecalc.MonthBounds(v.month.Year, v.month.Month)
	monthDates, _ := timecalc.DatesBetween(first, last)
	total := v.month.TotalHours(monthDates)
	income := v.month.Income(monthDates, v.employee.HourlyRate)
	lines = append(lines, "")
	lines = append(lines, styles.Label.Render(fmt.Sprintf("Month: %.2f h / %.2f", total, income)))

	if v.sweeping {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Warning).Render(
			fmt.Sprintf("Selecting %d day(s)", len(v.sel.Dates()))))
	}

	return styles.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

func (v CalendarView) renderDayDetail(width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	var lines []string
	lines = append(lines, styles.PanelTitle.Render(v.employee.Name))

	entry := v.month.Entry(v.cursor)
	if entry == nil {
		lines = append(lines, styles.Subtitle.Render(v.cursor))
		lines = append(lines, "")
		lines = append(lines, styles.Label.Render("No entry for this day."))
		lines = append(lines, styles.Label.Render("Press 'a' to add one."))
	} else {
		lines = append(lines, styles.Subtitle.Render(entry.DateLabel()))
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("%s %s",
			styles.Label.Render("In: "), entry.StartLabel()))
		lines = append(lines, fmt.Sprintf("%s %s",
			styles.Label.Render("Out:"), entry.EndLabel()))
		lines = append(lines, fmt.Sprintf("%s %s h",
			styles.Label.Render("Hrs:"), entry.Total))
	}

	if !v.sel.IsEmpty() {
		dates := v.sel.Dates()
		lines = append(lines, "")
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Info).Render(
			fmt.Sprintf("%d day(s) selected", len(dates))))
		lines = append(lines, styles.Label.Render("enter: summary • e: edit all • esc: clear"))
	}

	return styles.Panel.Width(width).Render(strings.Join(lines, "\n"))
}
