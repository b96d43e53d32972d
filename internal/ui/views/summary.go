package views

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/shiftbook/internal/app"
	"github.com/dori/shiftbook/internal/model"
	"github.com/dori/shiftbook/internal/report"
	"github.com/dori/shiftbook/internal/schedule"
	"github.com/dori/shiftbook/internal/ui/theme"
)

// SummaryView shows the payable hours and income for a date range
type SummaryView struct {
	app      *app.App
	employee model.Employee
	data     schedule.SummaryData
	width    int
	height   int
	scroll   int
}

// NewSummaryView creates a summary over precomputed range data
func NewSummaryView(a *app.App, employee model.Employee, data schedule.SummaryData) SummaryView {
	return SummaryView{
		app:      a,
		employee: employee,
		data:     data,
	}
}

// SetSize sets the view dimensions
func (v SummaryView) SetSize(width, height int) SummaryView {
	v.width = width
	v.height = height
	return v
}

// Init implements tea.Model; the summary data is precomputed
func (v SummaryView) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (v SummaryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "esc", "enter":
		return v, func() tea.Msg { return SummaryClosedMsg{} }

	case "up", "k":
		if v.scroll > 0 {
			v.scroll--
		}
	case "down", "j":
		if v.scroll < len(v.data.Entries)-1 {
			v.scroll++
		}

	case "w":
		return v, v.writeReport()
	}

	return v, nil
}

// writeReport renders the summary as plain text next to the database, the
// terminal stand-in for the original's print window.
func (v SummaryView) writeReport() tea.Cmd {
	data := v.data
	dir := v.app.DataDir
	name := fmt.Sprintf("summary-%s-%s.txt",
		strings.ToLower(strings.ReplaceAll(v.employee.Name, " ", "-")),
		time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)

	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(report.Render(data)), 0o644); err != nil {
			return ReportWrittenMsg{Path: path, Err: err}
		}
		return ReportWrittenMsg{Path: path}
	}
}

// View renders the summary panel
func (v SummaryView) View() string {
	styles := theme.Current.Styles

	var lines []string
	lines = append(lines, styles.Title.Render("Time Summary "+v.data.EmployeeName))
	if v.data.DateRangeLabel != "" {
		lines = append(lines, styles.Subtitle.Render(v.data.DateRangeLabel))
	}
	lines = append(lines, "")

	if len(v.data.Entries) == 0 {
		lines = append(lines, styles.Label.Render("No entries in this range."))
	}

	// Keep the listing inside the panel on short terminals
	visible := v.height - 10
	if visible < 3 {
		visible = 3
	}
	start := v.scroll
	if start > len(v.data.Entries) {
		start = len(v.data.Entries)
	}
	end := start + visible
	if end > len(v.data.Entries) {
		end = len(v.data.Entries)
	}

	for _, e := range v.data.Entries[start:end] {
		lines = append(lines, fmt.Sprintf("%-14s %8s - %-8s %s",
			e.DateLabel, e.StartLabel, e.EndLabel,
			styles.Label.Render(fmt.Sprintf("%6.2f h", e.Hours))))
	}
	if end < len(v.data.Entries) {
		lines = append(lines, styles.Label.Render(fmt.Sprintf("... %d more", len(v.data.Entries)-end)))
	}

	lines = append(lines, "")
	lines = append(lines, styles.Subtitle.Render(fmt.Sprintf("Total hours: %.2f", v.data.TotalHours)))
	lines = append(lines, styles.Subtitle.Render(fmt.Sprintf("Income:      %.2f", v.data.Income)))
	lines = append(lines, "")
	lines = append(lines, styles.Footer.Render("w: write report • esc: close"))

	return styles.Panel.Render(strings.Join(lines, "\n"))
}
