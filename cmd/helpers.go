package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inovacc/roundboard/internal/clock"
	"github.com/inovacc/roundboard/internal/model"
)

// promptConfirm asks the user for confirmation and returns true if they confirm
// prompt should include the question (e.g., "Delete this post? [y/N]: ")
func promptConfirm(prompt string) bool {
	_, _ = fmt.Fprint(os.Stdout, prompt)

	var response string

	_, _ = fmt.Scanln(&response)

	return response == "y" || response == "Y"
}

// resolveDateKey accepts YYYY-MM-DD, "today" or "yesterday". An empty
// argument means today.
func resolveDateKey(c clock.Clock, arg string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return clock.Today(c), nil
	case "yesterday":
		return clock.PreviousKeys(c.Now(), 1)[0], nil
	}

	t, err := clock.ParseDateKey(arg)
	if err != nil {
		return "", err
	}

	return clock.DateKey(t), nil
}

// parseDigits splits "239,108,,555" into round digits. Positions past the
// last value stay empty.
func parseDigits(s string) ([model.RoundCount]string, error) {
	var digits [model.RoundCount]string

	parts := strings.Split(s, ",")
	if len(parts) > model.RoundCount {
		return digits, fmt.Errorf("at most %d rounds, got %d", model.RoundCount, len(parts))
	}

	for i, p := range parts {
		digits[i] = strings.TrimSpace(p)
	}

	return digits, nil
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}

// centerString centers a string in a field of given width
func centerString(s string, width int) string {
	if len(s) >= width {
		return s
	}

	padding := (width - len(s)) / 2

	return fmt.Sprintf("%*s%s%*s", padding, "", s, width-len(s)-padding, "")
}

// boxWidth is the standard width for info boxes
const boxWidth = 64

// printBoxHeader prints the top border of an info box with a title
func printBoxHeader(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════╗")
	_, _ = fmt.Fprintf(w, "║%s║\n", centerString(title, boxWidth-2))
	_, _ = fmt.Fprintln(w, "╠══════════════════════════════════════════════════════════════╣")
}

// printBoxLine prints a line inside an info box with label and value
func printBoxLine(w io.Writer, label, value string) {
	content := truncateString(fmt.Sprintf("  %s: %s", label, value), boxWidth-2)
	padding := boxWidth - 2 - len(content)

	_, _ = fmt.Fprintf(w, "║%s%*s║\n", content, padding, "")
}

// printBoxFooter prints the bottom border of an info box
func printBoxFooter(w io.Writer) {
	_, _ = fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════╝")
}

// printInfoBox prints a complete info box with title and key-value pairs
func printInfoBox(w io.Writer, title string, items map[string]string, order []string) {
	printBoxHeader(w, title)

	for _, key := range order {
		if val, ok := items[key]; ok {
			printBoxLine(w, key, val)
		}
	}

	printBoxFooter(w)
}
