package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/shiftbook/internal/db"
	"github.com/dori/shiftbook/internal/model"
	"github.com/dori/shiftbook/internal/ui/theme"
)

// EmployeesMode represents the current input mode of the employees view
type EmployeesMode int

const (
	EmployeesModeNormal EmployeesMode = iota
	EmployeesModeAdd
	EmployeesModeEdit
	EmployeesModeConfirmDelete
)

// EmployeesView lists employees and handles add/edit/delete
type EmployeesView struct {
	db     *db.DB
	width  int
	height int

	employees []model.Employee
	cursor    int
	mode      EmployeesMode

	nameInput textinput.Model
	rateInput textinput.Model
	focusIdx  int
	editingID int64
	formErr   string
}

// NewEmployeesView creates the employees view
func NewEmployeesView(database *db.DB) EmployeesView {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 60
	name.Width = 24

	rate := textinput.New()
	rate.Placeholder = "Hourly rate (e.g. 20.00)"
	rate.CharLimit = 10
	rate.Width = 24

	return EmployeesView{
		db:        database,
		nameInput: name,
		rateInput: rate,
	}
}

// Init loads the employee list
func (v EmployeesView) Init() tea.Cmd {
	return v.loadEmployees()
}

// SetSize sets the view dimensions
func (v EmployeesView) SetSize(width, height int) EmployeesView {
	v.width = width
	v.height = height
	return v
}

// IsInputMode returns whether the view is capturing text input
func (v EmployeesView) IsInputMode() bool {
	return v.mode == EmployeesModeAdd || v.mode == EmployeesModeEdit
}

// Selected returns the employee under the cursor, or nil
func (v EmployeesView) Selected() *model.Employee {
	if v.cursor < 0 || v.cursor >= len(v.employees) {
		return nil
	}
	return &v.employees[v.cursor]
}

func (v EmployeesView) loadEmployees() tea.Cmd {
	return func() tea.Msg {
		employees, err := v.db.GetEmployees()
		return EmployeesLoadedMsg{Employees: employees, Err: err}
	}
}

// Update handles messages
func (v EmployeesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EmployeesLoadedMsg:
		if msg.Err != nil {
			return v, func() tea.Msg { return ErrorMsg{Err: msg.Err} }
		}
		v.employees = msg.Employees
		if v.cursor >= len(v.employees) {
			v.cursor = len(v.employees) - 1
		}
		if v.cursor < 0 {
			v.cursor = 0
		}
		return v, nil

	case EmployeeSavedMsg:
		if msg.Err != nil {
			return v, func() tea.Msg { return ErrorMsg{Err: msg.Err} }
		}
		v.mode = EmployeesModeNormal
		return v, v.loadEmployees()

	case EmployeeDeletedMsg:
		if msg.Err != nil {
			return v, func() tea.Msg { return ErrorMsg{Err: msg.Err} }
		}
		v.mode = EmployeesModeNormal
		return v, v.loadEmployees()

	case tea.KeyMsg:
		switch v.mode {
		case EmployeesModeAdd, EmployeesModeEdit:
			return v.updateForm(msg)
		case EmployeesModeConfirmDelete:
			return v.updateConfirmDelete(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v EmployeesView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.employees)-1 {
			v.cursor++
		}
	case "g":
		v.cursor = 0
	case "G":
		if len(v.employees) > 0 {
			v.cursor = len(v.employees) - 1
		}

	case "a":
		v.mode = EmployeesModeAdd
		v.editingID = 0
		v.formErr = ""
		v.nameInput.SetValue("")
		v.rateInput.SetValue("")
		v.focusIdx = 0
		v.nameInput.Focus()
		v.rateInput.Blur()
		return v, textinput.Blink

	case "e":
		emp := v.Selected()
		if emp == nil {
			return v, nil
		}
		v.mode = EmployeesModeEdit
		v.editingID = emp.ID
		v.formErr = ""
		v.nameInput.SetValue(emp.Name)
		v.rateInput.SetValue(strconv.FormatFloat(emp.HourlyRate, 'f', 2, 64))
		v.focusIdx = 0
		v.nameInput.Focus()
		v.rateInput.Blur()
		return v, textinput.Blink

	case "d":
		if v.Selected() != nil {
			v.mode = EmployeesModeConfirmDelete
		}

	case "enter":
		emp := v.Selected()
		if emp == nil {
			return v, nil
		}
		selected := *emp
		return v, func() tea.Msg { return EmployeeSelectedMsg{Employee: selected} }
	}

	return v, nil
}

func (v EmployeesView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.mode = EmployeesModeNormal
		return v, nil

	case "tab", "shift+tab", "up", "down":
		if v.focusIdx == 0 {
			v.focusIdx = 1
			v.nameInput.Blur()
			v.rateInput.Focus()
		} else {
			v.focusIdx = 0
			v.rateInput.Blur()
			v.nameInput.Focus()
		}
		return v, textinput.Blink

	case "enter":
		return v.submitForm()
	}

	var cmd tea.Cmd
	if v.focusIdx == 0 {
		v.nameInput, cmd = v.nameInput.Update(msg)
	} else {
		v.rateInput, cmd = v.rateInput.Update(msg)
	}
	return v, cmd
}

func (v EmployeesView) submitForm() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(v.nameInput.Value())
	if name == "" {
		v.formErr = "Name is required"
		return v, nil
	}

	rate := 0.0
	if raw := strings.TrimSpace(v.rateInput.Value()); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			v.formErr = "Rate must be a non-negative number"
			return v, nil
		}
		rate = parsed
	}

	editingID := v.editingID
	database := v.db
	return v, func() tea.Msg {
		if editingID != 0 {
			if err := database.UpdateEmployee(editingID, name, rate); err != nil {
				return EmployeeSavedMsg{Err: err}
			}
			return EmployeeSavedMsg{Employee: model.Employee{ID: editingID, Name: name, HourlyRate: rate}}
		}
		emp, err := database.CreateEmployee(name, rate, "")
		if err != nil {
			return EmployeeSavedMsg{Err: err}
		}
		return EmployeeSavedMsg{Employee: *emp}
	}
}

func (v EmployeesView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		emp := v.Selected()
		if emp == nil {
			v.mode = EmployeesModeNormal
			return v, nil
		}
		id := emp.ID
		database := v.db
		return v, func() tea.Msg {
			if err := database.DeleteEmployee(id); err != nil {
				return EmployeeDeletedMsg{ID: id, Err: err}
			}
			return EmployeeDeletedMsg{ID: id}
		}
	case "n", "N", "esc":
		v.mode = EmployeesModeNormal
	}
	return v, nil
}

// View renders the employees view
func (v EmployeesView) View() string {
	if v.width == 0 || v.height == 0 {
		return "Loading..."
	}

	t := theme.Current.Theme
	styles := theme.Current.Styles

	switch v.mode {
	case EmployeesModeAdd, EmployeesModeEdit:
		return v.renderForm()
	case EmployeesModeConfirmDelete:
		return v.renderConfirmDelete()
	}

	var lines []string
	lines = append(lines, styles.Title.Render("Employees"))

	if len(v.employees) == 0 {
		lines = append(lines, styles.Subtitle.Render("No employees yet. Press 'a' to add one."))
	}

	for i, emp := range v.employees {
		marker := lipgloss.NewStyle().Foreground(t.Accent(emp.Color)).Render("●")
		label := fmt.Sprintf("%s %s  %s", marker, emp.Name,
			styles.Label.Render(fmt.Sprintf("%.2f/h", emp.HourlyRate)))

		if i == v.cursor {
			lines = append(lines, styles.ListSelected.Render(label))
		} else {
			lines = append(lines, styles.ListNormal.Render(label))
		}
	}

	content := strings.Join(lines, "\n")
	return styles.Panel.Width(v.width - 4).Render(content)
}

func (v EmployeesView) renderForm() string {
	styles := theme.Current.Styles

	title := "Add Employee"
	if v.mode == EmployeesModeEdit {
		title = "Edit Employee"
	}

	nameBox := styles.Input.Render(v.nameInput.View())
	rateBox := styles.Input.Render(v.rateInput.View())
	if v.focusIdx == 0 {
		nameBox = styles.InputFocused.Render(v.nameInput.View())
	} else {
		rateBox = styles.InputFocused.Render(v.rateInput.View())
	}

	var lines []string
	lines = append(lines, styles.Title.Render(title))
	lines = append(lines, styles.Label.Render("Name"))
	lines = append(lines, nameBox)
	lines = append(lines, styles.Label.Render("Hourly rate"))
	lines = append(lines, rateBox)
	if v.formErr != "" {
		lines = append(lines, styles.ErrorText.Render(v.formErr))
	}
	lines = append(lines, styles.Footer.Render("tab: switch field • enter: save • esc: cancel"))

	return styles.Panel.Render(strings.Join(lines, "\n"))
}

func (v EmployeesView) renderConfirmDelete() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	emp := v.Selected()
	name := ""
	if emp != nil {
		name = emp.Name
	}

	warning := lipgloss.NewStyle().Foreground(t.Error).Bold(true).
		Render(fmt.Sprintf("Delete %s?", name))
	detail := styles.Label.Render("All of their time entries will be deleted too.")
	hint := styles.Footer.Render("y: delete • n/esc: cancel")

	return styles.Panel.Render(strings.Join([]string{warning, detail, hint}, "\n"))
}
