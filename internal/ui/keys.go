package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Calendar
	MonthPrev key.Binding
	MonthNext key.Binding
	Today     key.Binding
	Sweep     key.Binding

	// Actions
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Write   key.Binding

	// Views
	EmployeesView key.Binding
	CalendarView  key.Binding

	// General
	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),

		MonthPrev: key.NewBinding(
			key.WithKeys("H", "pgup"),
			key.WithHelp("H", "prev month"),
		),
		MonthNext: key.NewBinding(
			key.WithKeys("L", "pgdown"),
			key.WithHelp("L", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Sweep: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select range"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Write: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write report"),
		),

		EmployeesView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "employees"),
		),
		CalendarView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "calendar"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.MonthPrev, k.MonthNext, k.Today, k.Sweep},
		{k.Add, k.Edit, k.Delete, k.Confirm, k.Cancel},
		{k.EmployeesView, k.CalendarView, k.ThemeCycle, k.Help, k.Quit},
	}
}
