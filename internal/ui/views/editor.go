package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/shiftbook/internal/model"
	"github.com/dori/shiftbook/internal/schedule"
	"github.com/dori/shiftbook/internal/ui/theme"
)

const (
	editorFieldStart = iota
	editorFieldStartAmPm
	editorFieldEnd
	editorFieldEndAmPm
	editorFieldCount
)

// EditorView edits the punch times for one or more dates at once
type EditorView struct {
	month  *schedule.Month
	dates  []string
	width  int
	height int

	startInput textinput.Model
	endInput   textinput.Model
	startAmPm  model.Meridiem
	endAmPm    model.Meridiem
	focusIdx   int
	formErr    string
}

// NewEditorView creates an editor over the given dates. When a single date
// already has an entry its times prefill the form.
func NewEditorView(month *schedule.Month, dates []string) EditorView {
	start := textinput.New()
	start.Placeholder = "9:00"
	start.CharLimit = 5
	start.Width = 7

	end := textinput.New()
	end.Placeholder = "5:00"
	end.CharLimit = 5
	end.Width = 7

	v := EditorView{
		month:      month,
		dates:      dates,
		startInput: start,
		endInput:   end,
		startAmPm:  model.AM,
		endAmPm:    model.PM,
	}

	if len(dates) == 1 {
		if entry := month.Entry(dates[0]); entry != nil {
			v.startInput.SetValue(entry.StartTime)
			v.endInput.SetValue(entry.EndTime)
			v.startAmPm = entry.StartAmPm
			v.endAmPm = entry.EndAmPm
		}
	}

	v.startInput.Focus()
	return v
}

// Init starts the cursor blink
func (v EditorView) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the view dimensions
func (v EditorView) SetSize(width, height int) EditorView {
	v.width = width
	v.height = height
	return v
}

func (v *EditorView) setFocus(idx int) {
	v.focusIdx = idx
	v.startInput.Blur()
	v.endInput.Blur()
	switch idx {
	case editorFieldStart:
		v.startInput.Focus()
	case editorFieldEnd:
		v.endInput.Focus()
	}
}

func (v *EditorView) toggleMeridiem() {
	flip := func(m model.Meridiem) model.Meridiem {
		if m == model.AM {
			return model.PM
		}
		return model.AM
	}
	switch v.focusIdx {
	case editorFieldStartAmPm:
		v.startAmPm = flip(v.startAmPm)
	case editorFieldEndAmPm:
		v.endAmPm = flip(v.endAmPm)
	}
}

// Update handles messages
func (v EditorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "esc":
		return v, func() tea.Msg { return EditorCancelledMsg{} }

	case "tab", "down":
		v.setFocus((v.focusIdx + 1) % editorFieldCount)
		return v, textinput.Blink

	case "shift+tab", "up":
		v.setFocus((v.focusIdx + editorFieldCount - 1) % editorFieldCount)
		return v, textinput.Blink

	case " ":
		if v.focusIdx == editorFieldStartAmPm || v.focusIdx == editorFieldEndAmPm {
			v.toggleMeridiem()
			return v, nil
		}

	case "a", "p":
		// Direct meridiem selection while a toggle has focus
		if v.focusIdx == editorFieldStartAmPm || v.focusIdx == editorFieldEndAmPm {
			m := model.AM
			if keyMsg.String() == "p" {
				m = model.PM
			}
			if v.focusIdx == editorFieldStartAmPm {
				v.startAmPm = m
			} else {
				v.endAmPm = m
			}
			return v, nil
		}

	case "enter":
		return v.save()
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case editorFieldStart:
		v.startInput, cmd = v.startInput.Update(msg)
	case editorFieldEnd:
		v.endInput, cmd = v.endInput.Update(msg)
	}
	return v, cmd
}

func (v EditorView) save() (tea.Model, tea.Cmd) {
	start := strings.TrimSpace(v.startInput.Value())
	end := strings.TrimSpace(v.endInput.Value())

	month := v.month
	dates := append([]string(nil), v.dates...)
	startAmPm, endAmPm := v.startAmPm, v.endAmPm

	failures := month.CommitEntry(dates, start, startAmPm, end, endAmPm)

	// Validation failures carry no date: keep the form open with the message
	if len(failures) > 0 && failures[0].Date == "" {
		v.formErr = failures[0].Err.Error()
		return v, nil
	}

	return v, func() tea.Msg {
		return EntryCommittedMsg{Dates: dates, Failures: failures}
	}
}

// View renders the editor form
func (v EditorView) View() string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	title := "Time Entry"
	switch len(v.dates) {
	case 1:
		title = "Time Entry " + v.dates[0]
	default:
		title = fmt.Sprintf("Time Entry (%d days)", len(v.dates))
	}

	meridiem := func(m model.Meridiem, focused bool) string {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(t.Foreground)
		if focused {
			style = style.Background(t.Highlight).Bold(true)
		}
		return style.Render(string(m))
	}

	startBox := styles.Input.Render(v.startInput.View())
	endBox := styles.Input.Render(v.endInput.View())
	if v.focusIdx == editorFieldStart {
		startBox = styles.InputFocused.Render(v.startInput.View())
	}
	if v.focusIdx == editorFieldEnd {
		endBox = styles.InputFocused.Render(v.endInput.View())
	}

	startRow := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.Label.Render("Punch in  "),
		startBox, " ",
		meridiem(v.startAmPm, v.focusIdx == editorFieldStartAmPm))
	endRow := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.Label.Render("Punch out "),
		endBox, " ",
		meridiem(v.endAmPm, v.focusIdx == editorFieldEndAmPm))

	var lines []string
	lines = append(lines, styles.Title.Render(title))
	lines = append(lines, "")
	lines = append(lines, startRow)
	lines = append(lines, endRow)
	if v.formErr != "" {
		lines = append(lines, "")
		lines = append(lines, styles.ErrorText.Render(v.formErr))
	}
	lines = append(lines, "")
	lines = append(lines, styles.Footer.Render("tab: next field • space/a/p: AM/PM • enter: save • esc: cancel"))

	return styles.Panel.Render(strings.Join(lines, "\n"))
}
