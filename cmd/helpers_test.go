package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/inovacc/roundboard/internal/clock"
)

func TestResolveDateKey(t *testing.T) {
	fake := clock.NewFake(time.Date(2025, 10, 28, 4, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "empty means today", input: "", expected: "2025-10-28"},
		{name: "today", input: "today", expected: "2025-10-28"},
		{name: "case insensitive", input: " Today ", expected: "2025-10-28"},
		{name: "yesterday", input: "yesterday", expected: "2025-10-27"},
		{name: "explicit key", input: "2025-01-05", expected: "2025-01-05"},
		{name: "display format", input: "05/01/2025", wantErr: true},
		{name: "not a date", input: "tomorrow", wantErr: true},
		{name: "invalid day", input: "2025-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := resolveDateKey(fake, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveDateKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if !tt.wantErr && result != tt.expected {
				t.Errorf("resolveDateKey(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseDigits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected [8]string
		wantErr  bool
	}{
		{
			name:     "single round",
			input:    "239",
			expected: [8]string{"239"},
		},
		{
			name:     "gaps and spaces",
			input:    "239, ,108",
			expected: [8]string{"239", "", "108"},
		},
		{
			name:     "all rounds",
			input:    "1,2,3,4,5,6,7,8",
			expected: [8]string{"1", "2", "3", "4", "5", "6", "7", "8"},
		},
		{
			name:    "too many rounds",
			input:   "1,2,3,4,5,6,7,8,9",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseDigits(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDigits(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if !tt.wantErr && result != tt.expected {
				t.Errorf("parseDigits(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "short string", input: "hello", maxLen: 10, expected: "hello"},
		{name: "exact length", input: "hello", maxLen: 5, expected: "hello"},
		{name: "truncated", input: "hello world", maxLen: 8, expected: "hello..."},
		{name: "tiny limit", input: "hello", maxLen: 3, expected: "hel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncateString(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestCenterString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{name: "even padding", input: "ab", width: 6, expected: "  ab  "},
		{name: "odd padding", input: "ab", width: 5, expected: " ab  "},
		{name: "too wide", input: "abcdef", width: 4, expected: "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := centerString(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("centerString(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
			}
		})
	}
}

func TestPrintInfoBox(t *testing.T) {
	var buf bytes.Buffer

	printInfoBox(&buf, "Status", map[string]string{
		"Store":   "bolt",
		"Watcher": "running",
		"Unused":  "skipped",
	}, []string{"Store", "Watcher", "Missing"})

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}

	if !strings.Contains(lines[1], "Status") {
		t.Errorf("title line = %q", lines[1])
	}

	if !strings.Contains(lines[3], "Store: bolt") || !strings.Contains(lines[4], "Watcher: running") {
		t.Errorf("unexpected body:\n%s", out)
	}

	if strings.Contains(out, "Unused") {
		t.Errorf("items outside order must not be printed:\n%s", out)
	}
}
