// Package parser turns a published round result file into a RoundRecord.
//
// A result file holds one line per round:
//
//	1. 239, 4
//	2. 108
//
// The leading number is a label only; rounds are assigned in line order.
// A missing checksum is derived from the digits. Lines that do not match
// are skipped, never reported as errors, because the files are written by
// hand. Callers that care about skipped input use [ParseWithStats].
package parser

import (
	"regexp"
	"strings"

	"github.com/inovacc/roundboard/internal/model"
)

var lineRe = regexp.MustCompile(`^\d+\.\s*(\d{3})(?:\s*,\s*(\d))?\s*$`)

// Stats describes how the lines of one file were handled.
type Stats struct {
	// Lines counts non-blank lines
	Lines int

	// Accepted counts lines stored as rounds
	Accepted int

	// Skipped counts lines that did not match the round grammar
	Skipped int

	// Overflow counts valid lines past the eighth round, which are dropped
	Overflow int

	// ChecksumMismatch counts rounds whose written checksum disagrees with
	// the digits. The written value is kept.
	ChecksumMismatch int
}

// Parser is implemented by every result file format.
type Parser interface {
	Parse(text string) (model.RoundRecord, Stats)
}

// TextParser parses the plain-text line format.
type TextParser struct{}

// NewTextParser creates a new text parser
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Parse implements Parser.
func (p *TextParser) Parse(text string) (model.RoundRecord, Stats) {
	return ParseWithStats(text)
}

// Parse converts text into a record with exactly eight rounds.
func Parse(text string) model.RoundRecord {
	rec, _ := ParseWithStats(text)
	return rec
}

// ParseWithStats is Parse plus per-line diagnostics.
func ParseWithStats(text string) (model.RoundRecord, Stats) {
	var (
		rec   model.RoundRecord
		stats Stats
		next  int
	)

	text = strings.ReplaceAll(text, "\r\n", "\n")

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		stats.Lines++

		round, mismatch, ok := parseLine(line)
		if !ok {
			stats.Skipped++
			continue
		}

		if next >= model.RoundCount {
			stats.Overflow++
			continue
		}

		if mismatch {
			stats.ChecksumMismatch++
		}

		rec.Rounds[next] = round
		next++
		stats.Accepted++
	}

	return rec, stats
}

func parseLine(line string) (model.Round, bool, bool) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return model.Round{}, false, false
	}

	digits, sum := m[1], m[2]
	derived := model.Checksum(digits)

	if sum == "" {
		return model.Round{Digits: digits, Sum: derived}, false, true
	}

	return model.Round{Digits: digits, Sum: sum}, sum != derived, true
}
