package ui

// View represents the current active view
type View int

const (
	ViewEmployees View = iota
	ViewCalendar
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewEmployees:
		return "Employees"
	case ViewCalendar:
		return "Calendar"
	default:
		return "Unknown"
	}
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}
