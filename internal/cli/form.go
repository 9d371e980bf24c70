package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const fmtV1 = " %s\n %s\n\n"

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()
	helpStyle    = blurredStyle
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	sumStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	focusedButton = focusedStyle.Render("[ Submit ]")
	blurredButton = fmt.Sprintf("[ %s ]", blurredStyle.Render("Submit"))
)

// form is a column of text inputs followed by a submit button.
type form struct {
	focusIndex int
	inputs     []textinput.Model
}

func newInput(placeholder, value string, limit int) textinput.Model {
	t := textinput.New()
	t.Cursor.Style = cursorStyle
	t.CharLimit = limit
	t.Placeholder = placeholder
	t.SetValue(value)

	return t
}

func newForm(inputs []textinput.Model) form {
	f := form{inputs: inputs}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
		f.inputs[0].PromptStyle = focusedStyle
		f.inputs[0].TextStyle = focusedStyle
	}

	return f
}

func (f *form) onSubmit() bool {
	return f.focusIndex == len(f.inputs)
}

// navigate moves the focus for tab/shift+tab/enter/up/down.
func (f *form) navigate(key string) tea.Cmd {
	if key == "up" || key == "shift+tab" {
		f.focusIndex--
	} else {
		f.focusIndex++
	}

	if f.focusIndex > len(f.inputs) {
		f.focusIndex = 0
	} else if f.focusIndex < 0 {
		f.focusIndex = len(f.inputs)
	}

	cmds := make([]tea.Cmd, len(f.inputs))
	for i := 0; i <= len(f.inputs)-1; i++ {
		if i == f.focusIndex {
			// Set focused state
			cmds[i] = f.inputs[i].Focus()
			f.inputs[i].PromptStyle = focusedStyle
			f.inputs[i].TextStyle = focusedStyle

			continue
		}
		// Remove the focused state
		f.inputs[i].Blur()
		f.inputs[i].PromptStyle = noStyle
		f.inputs[i].TextStyle = noStyle
	}

	return tea.Batch(cmds...)
}

func (f *form) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(f.inputs))

	// Only text inputs with Focus() set will respond, so it's safe to simply
	// update all of them here without any further logic.
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (f *form) button() string {
	if f.onSubmit() {
		return focusedButton
	}

	return blurredButton
}

type successMsg struct{}
type errMsg struct{ err error }
