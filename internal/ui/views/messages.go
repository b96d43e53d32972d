package views

import (
	"github.com/dori/shiftbook/internal/model"
	"github.com/dori/shiftbook/internal/schedule"
)

// Messages exchanged between the views and the root model

// EmployeesLoadedMsg contains loaded employees
type EmployeesLoadedMsg struct {
	Employees []model.Employee
	Err       error
}

// EmployeeSavedMsg indicates an employee was created or updated
type EmployeeSavedMsg struct {
	Employee model.Employee
	Err      error
}

// EmployeeDeletedMsg indicates an employee (and their entries) was removed
type EmployeeDeletedMsg struct {
	ID  int64
	Err error
}

// EmployeeSelectedMsg asks the root model to open the calendar for an employee
type EmployeeSelectedMsg struct {
	Employee model.Employee
}

// MonthLoadedMsg carries a freshly loaded month
type MonthLoadedMsg struct {
	Month *schedule.Month
	Err   error
}

// EntryCommittedMsg reports a multi-date save: zero failures means every
// date was written.
type EntryCommittedMsg struct {
	Dates    []string
	Failures []schedule.DateError
}

// EditorCancelledMsg indicates the entry editor was dismissed without saving
type EditorCancelledMsg struct{}

// SummaryClosedMsg indicates the range summary was dismissed
type SummaryClosedMsg struct{}

// ReportWrittenMsg reports the result of writing a printable summary
type ReportWrittenMsg struct {
	Path string
	Err  error
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}
