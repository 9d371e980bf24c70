package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inovacc/roundboard/internal/model"
)

// SaveRoundsFunc stores manually entered digits.
type SaveRoundsFunc func(digits [model.RoundCount]string) (model.RoundRecord, error)

// EditModel is the round entry form of one day. Sums are derived while
// typing; an invalid entry keeps the form open.
type EditModel struct {
	form
	heading string
	save    SaveRoundsFunc

	Saved  bool
	Record model.RoundRecord
	Err    error
}

// NewEditModel prefills the form with the current digits of rec.
func NewEditModel(heading string, rec model.RoundRecord, save SaveRoundsFunc) *EditModel {
	inputs := make([]textinput.Model, model.RoundCount)
	for i, round := range rec.Rounds {
		inputs[i] = newInput("---", round.Digits, 3)
	}

	return &EditModel{
		form:    newForm(inputs),
		heading: heading,
		save:    save,
	}
}

func digitsOnly(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func (m *EditModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case successMsg:
		m.Saved = true
		return m, tea.Quit
	case errMsg:
		// Validation failures stay in the form so they can be fixed.
		m.Err = msg.err
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			if s == "enter" && m.onSubmit() {
				return m, m.saveRounds
			}

			return m, m.navigate(s)
		}

		if msg.Type == tea.KeyRunes && !digitsOnly(msg.Runes) {
			return m, nil
		}
	}

	return m, m.updateInputs(msg)
}

// Digits returns the current form values.
func (m *EditModel) Digits() [model.RoundCount]string {
	var digits [model.RoundCount]string
	for i := range digits {
		digits[i] = strings.TrimSpace(m.inputs[i].Value())
	}

	return digits
}

func (m *EditModel) View() string {
	if m.Saved {
		return successStyle.Render(fmt.Sprintf("\n  ✓ Saved %d rounds for %s\n\n", m.Record.Filled(), m.heading))
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(m.heading+" (EDITING)") + "\n")
	b.WriteString(blurredStyle.Render("Enter 3 digits per round, leave empty for no result") + "\n\n")

	for i, d := range m.Digits() {
		sum := model.Checksum(d)
		if sum == "" {
			sum = "–"
		}

		label := fmt.Sprintf("Round %d", i+1)
		fmt.Fprintf(&b, " %-9s %s  %s\n", blurredStyle.Render(label), m.inputs[i].View(), sumStyle.Render("sum "+sum))
	}

	fmt.Fprintf(&b, "\n %s\n\n", m.button())

	if m.Err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf(" ✗ %v", m.Err)) + "\n\n")
	}

	b.WriteString(helpStyle.Render(" tab/shift+tab: navigate • enter: submit • esc: cancel"))

	return b.String()
}

func (m *EditModel) saveRounds() tea.Msg {
	rec, err := m.save(m.Digits())
	if err != nil {
		return errMsg{err}
	}

	m.Record = rec

	return successMsg{}
}
