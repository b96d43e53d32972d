package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/shiftbook/internal/app"
	"github.com/dori/shiftbook/internal/db"
	"github.com/dori/shiftbook/internal/model"
	"github.com/dori/shiftbook/internal/ui/theme"
	"github.com/dori/shiftbook/internal/ui/views"
)

// Debug logging (enable by setting SHIFTBOOK_DEBUG=1)
var rootDebugLog *os.File

func init() {
	if os.Getenv("SHIFTBOOK_DEBUG") == "1" {
		rootDebugLog, _ = os.OpenFile("/tmp/shiftbook-root-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	}
}

func rootDebugf(format string, args ...interface{}) {
	if rootDebugLog != nil {
		fmt.Fprintf(rootDebugLog, format+"\n", args...)
		rootDebugLog.Sync()
	}
}

// RootModel is the main application model that manages views
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView   View
	employeesView views.EmployeesView
	calendarView  views.CalendarView
	hasCalendar   bool
	helpVisible   bool

	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = false

	return RootModel{
		app:           application,
		keys:          DefaultKeyMap(),
		help:          h,
		currentView:   ViewEmployees,
		employeesView: views.NewEmployeesView(application.DB),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	cmd := m.employeesView.Init()
	rootDebugf("RootModel.Init() returning cmd: %v", cmd != nil)
	return cmd
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	rootDebugf("RootModel.Update received msg type: %T", msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header and footer
		contentHeight := m.height - 4
		m.employeesView = m.employeesView.SetSize(m.width, contentHeight)
		if m.hasCalendar {
			m.calendarView = m.calendarView.SetSize(m.width, contentHeight)
		}

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := false
		switch m.currentView {
		case ViewEmployees:
			isInputMode = m.employeesView.IsInputMode()
		case ViewCalendar:
			isInputMode = m.calendarView.IsInputMode()
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, m.persistTheme()
		}

		if isInputMode {
			break // Fall through to view delegation
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil

		case key.Matches(msg, m.keys.EmployeesView):
			m.currentView = ViewEmployees
			return m, m.employeesView.Init()

		case key.Matches(msg, m.keys.CalendarView):
			if m.hasCalendar {
				m.currentView = ViewCalendar
				return m, m.calendarView.Init()
			}
			m.statusMsg = "Select an employee first"
			return m, nil
		}

	case views.EmployeeSelectedMsg:
		m.calendarView = views.NewCalendarView(m.app, msg.Employee)
		m.calendarView = m.calendarView.SetSize(m.width, m.height-4)
		m.hasCalendar = true
		m.currentView = ViewCalendar
		cmds = append(cmds, m.calendarView.Init(), m.persistSelectedEmployee(msg.Employee.ID))
		return m, tea.Batch(cmds...)

	case views.EmployeesLoadedMsg:
		// Reopen the last-viewed calendar once on startup
		if !m.hasCalendar && msg.Err == nil {
			if emp := m.restoreSelectedEmployee(msg.Employees); emp != nil {
				m.calendarView = views.NewCalendarView(m.app, *emp)
				m.calendarView = m.calendarView.SetSize(m.width, m.height-4)
				m.hasCalendar = true
				m.currentView = ViewCalendar
				newEmployees, cmd := m.employeesView.Update(msg)
				m.employeesView = newEmployees.(views.EmployeesView)
				cmds = append(cmds, cmd, m.calendarView.Init())
				return m, tea.Batch(cmds...)
			}
		}

	case views.EmployeeDeletedMsg:
		// The open calendar may belong to the deleted employee
		if msg.Err == nil && m.hasCalendar && m.calendarView.Employee().ID == msg.ID {
			m.hasCalendar = false
			m.currentView = ViewEmployees
		}

	case views.ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case views.StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	// Delegate to current view
	rootDebugf("Delegating to view: %v", m.currentView)
	switch m.currentView {
	case ViewEmployees:
		newEmployeesView, cmd := m.employeesView.Update(msg)
		m.employeesView = newEmployeesView.(views.EmployeesView)
		cmds = append(cmds, cmd)
	case ViewCalendar:
		newCalendarView, cmd := m.calendarView.Update(msg)
		m.calendarView = newCalendarView.(views.CalendarView)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// restoreSelectedEmployee matches the persisted selection against the loaded
// list, or returns nil when nothing usable is stored.
func (m RootModel) restoreSelectedEmployee(employees []model.Employee) *model.Employee {
	stored, err := m.app.DB.GetSetting(db.SettingSelectedEmployee)
	if err != nil || stored == "" {
		return nil
	}
	var id int64
	if _, err := fmt.Sscanf(stored, "%d", &id); err != nil {
		return nil
	}
	for i := range employees {
		if employees[i].ID == id {
			return &employees[i]
		}
	}
	return nil
}

func (m RootModel) persistSelectedEmployee(id int64) tea.Cmd {
	database := m.app.DB
	return func() tea.Msg {
		if err := database.SetSetting(db.SettingSelectedEmployee, fmt.Sprintf("%d", id)); err != nil {
			rootDebugf("persist selected employee: %v", err)
		}
		return nil
	}
}

func (m RootModel) persistTheme() tea.Cmd {
	database := m.app.DB
	name := theme.Current.Theme.Name
	return func() tea.Msg {
		if err := database.SetSetting(db.SettingTheme, name); err != nil {
			rootDebugf("persist theme: %v", err)
		}
		return nil
	}
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	styles := theme.Current.Styles
	var sections []string

	sections = append(sections, m.renderHeader())

	// Reserve: 1 line for header + 3 lines for footer
	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight--
	}
	var content string

	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewEmployees:
			content = m.employeesView.View()
		case ViewCalendar:
			content = m.calendarView.View()
		default:
			content = styles.Panel.Render("View not implemented")
		}
	}

	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("shiftbook")

	viewStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := viewStyle.Render(fmt.Sprintf("[%s]", m.currentView.String()))

	var employeeIndicator string
	if m.hasCalendar {
		emp := m.calendarView.Employee()
		employeeIndicator = lipgloss.NewStyle().
			Foreground(t.Accent(emp.Color)).
			Padding(0, 1).
			Render(emp.Name)
	}

	themeIndicator := viewStyle.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator, employeeIndicator)
	rightSide := themeIndicator

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string

	switch m.currentView {
	case ViewEmployees:
		if m.employeesView.IsInputMode() {
			line1 = key("enter", "save") + sep + key("esc", "cancel")
		} else {
			line1 = key("enter", "open calendar") + sep +
				key("a", "add") + sep +
				key("e", "edit") + sep +
				key("d", "delete")
			line2 = key("j/k", "navigate") + sep +
				key("ctrl+t", "theme") + sep +
				key("?", "help")
		}

	case ViewCalendar:
		if m.calendarView.IsInputMode() {
			line1 = key("tab", "field") + sep +
				key("space", "AM/PM") + sep +
				key("enter", "save") + sep +
				key("esc", "cancel")
		} else {
			line1 = key("h/j/k/l", "days") + sep +
				key("H/L", "months") + sep +
				key("v", "select range") + sep +
				key("enter", "edit/summary")
			line2 = key("t", "today") + sep +
				key("s", "summary") + sep +
				key("d", "delete entry") + sep +
				key("1/2", "views") + sep +
				key("?", "help")
		}

	default:
		line1 = key("1/2", "views") + sep + key("?", "help")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	t := theme.Current.Theme

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Secondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Foreground).
		Bold(true).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(t.Subtle)

	row := func(k, desc string) string {
		return keyStyle.Render(k) + descStyle.Render(desc)
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Shiftbook Help"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Views"))
	b.WriteString("\n")
	b.WriteString(row("1", "employees") + "\n")
	b.WriteString(row("2", "calendar") + "\n")

	b.WriteString(sectionStyle.Render("Employees"))
	b.WriteString("\n")
	b.WriteString(row("j/k", "move cursor") + "\n")
	b.WriteString(row("enter", "open calendar for employee") + "\n")
	b.WriteString(row("a", "add employee") + "\n")
	b.WriteString(row("e", "edit name and rate") + "\n")
	b.WriteString(row("d", "delete employee and entries") + "\n")

	b.WriteString(sectionStyle.Render("Calendar"))
	b.WriteString("\n")
	b.WriteString(row("h/j/k/l", "move between days") + "\n")
	b.WriteString(row("H/L", "previous/next month") + "\n")
	b.WriteString(row("t", "jump to today") + "\n")
	b.WriteString(row("v", "start/stop range selection") + "\n")
	b.WriteString(row("enter", "edit day, or summarize range") + "\n")
	b.WriteString(row("e", "edit all selected days") + "\n")
	b.WriteString(row("s", "summary of selection or month") + "\n")
	b.WriteString(row("d", "delete day's entry") + "\n")

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(row("w", "write report file") + "\n")
	b.WriteString(row("esc", "close") + "\n")

	b.WriteString(sectionStyle.Render("General"))
	b.WriteString("\n")
	b.WriteString(row("ctrl+t", "cycle theme") + "\n")
	b.WriteString(row("?", "toggle help") + "\n")
	b.WriteString(row("q", "quit") + "\n")

	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
