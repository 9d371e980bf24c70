package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Align(lipgloss.Center).Padding(0, 1)
	digitsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).Align(lipgloss.Center).Padding(0, 1)
	sumStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Align(lipgloss.Center).Padding(0, 1)
	editedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Table renders one record: round numbers, digits and sums.
func Table(heading string, rec model.RoundRecord) string {
	headers := make([]string, model.RoundCount)
	digits := make([]string, model.RoundCount)
	sums := make([]string, model.RoundCount)

	for i, round := range rec.Rounds {
		headers[i] = strconv.Itoa(i + 1)
		digits[i] = cellValue(round.Digits)
		sums[i] = cellValue(round.Sum)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		BorderRow(true).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return headerStyle
			case 0:
				return digitsStyle
			default:
				return sumStyle
			}
		}).
		Headers(headers...).
		Row(digits...).
		Row(sums...)

	var b strings.Builder

	b.WriteString(headingStyle.Render(heading))

	if rec.Edited() {
		b.WriteString(" " + editedStyle.Render("(edited "+clock.Local(*rec.LastEditedAt).Format("15:04")+")"))
	}

	b.WriteString("\n")
	b.WriteString(t.Render())

	return b.String()
}

// Terminal writes the table of one date key.
func Terminal(w io.Writer, key string, rec model.RoundRecord) error {
	_, err := fmt.Fprintln(w, Table(clock.DisplayKey(key), rec))
	return err
}

// TerminalCatalog writes the tables of keys in the given order.
func TerminalCatalog(w io.Writer, catalog model.Catalog, keys []string) error {
	if len(keys) == 0 {
		_, err := fmt.Fprintln(w, dimStyle.Render("No old results available yet."))
		return err
	}

	for _, key := range keys {
		if err := Terminal(w, key, catalog[key]); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

func cellValue(s string) string {
	if s == "" {
		return Empty
	}

	return s
}
