package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// RoundCount is the number of rounds drawn per day.
const RoundCount = 8

// Round is one position of a daily result.
type Round struct {
	// Digits is empty or exactly three characters in '0'..'9'
	Digits string `json:"digits"`

	// Sum is the checksum digit of Digits, empty when Digits is empty
	Sum string `json:"sum"`
}

// IsEmpty reports whether the round carries no result yet.
func (r Round) IsEmpty() bool {
	return r.Digits == ""
}

// NewRound builds a round from digits, deriving the checksum.
// Invalid digits produce an empty round.
func NewRound(digits string) Round {
	if !validDigits(digits) {
		return Round{}
	}

	return Round{Digits: digits, Sum: Checksum(digits)}
}

// RoundRecord is the result of one day: always eight rounds.
type RoundRecord struct {
	Rounds [RoundCount]Round `json:"rounds"`

	// CreatedAt is the first creation time for the date key
	CreatedAt time.Time `json:"created"`

	// LastEditedAt is set only when the record was edited by hand
	LastEditedAt *time.Time `json:"lastEdited,omitempty"`
}

// EmptyRecord returns a record with eight empty rounds.
func EmptyRecord(createdAt time.Time) RoundRecord {
	return RoundRecord{CreatedAt: createdAt}
}

// Filled returns how many rounds carry digits.
func (r RoundRecord) Filled() int {
	n := 0

	for _, round := range r.Rounds {
		if !round.IsEmpty() {
			n++
		}
	}

	return n
}

// Edited reports whether the record was touched by a manual edit.
func (r RoundRecord) Edited() bool {
	return r.LastEditedAt != nil
}

// Equal compares the rounds of two records, ignoring timestamps.
func (r RoundRecord) Equal(other RoundRecord) bool {
	return r.Rounds == other.Rounds
}

// Normalize blanks invalid digits and recomputes every checksum.
func (r RoundRecord) Normalize() RoundRecord {
	for i, round := range r.Rounds {
		r.Rounds[i] = NewRound(round.Digits)
	}

	return r
}

// Digits returns the digits of every round in order.
func (r RoundRecord) Digits() [RoundCount]string {
	var out [RoundCount]string

	for i, round := range r.Rounds {
		out[i] = round.Digits
	}

	return out
}

type roundRecordJSON struct {
	Rounds       []*Round   `json:"rounds"`
	CreatedAt    time.Time  `json:"created"`
	LastEditedAt *time.Time `json:"lastEdited,omitempty"`
}

// UnmarshalJSON accepts catalogs written by older clients: a rounds list
// of any length, with null entries, is padded or truncated to eight.
func (r *RoundRecord) UnmarshalJSON(data []byte) error {
	var raw roundRecordJSON

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode round record: %w", err)
	}

	var rec RoundRecord

	for i, round := range raw.Rounds {
		if i >= RoundCount {
			break
		}

		if round != nil {
			rec.Rounds[i] = *round
		}
	}

	rec.CreatedAt = raw.CreatedAt
	rec.LastEditedAt = raw.LastEditedAt
	*r = rec

	return nil
}

// Checksum returns (d0+d1+d2) mod 10 as a single digit string, or ""
// when digits is not exactly three numeric characters.
func Checksum(digits string) string {
	if !validDigits(digits) {
		return ""
	}

	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i] - '0')
	}

	return string(rune('0' + sum%10))
}

// ValidateDigits checks user supplied digits for a round. Empty is valid
// and means "no result".
func ValidateDigits(round int, digits string) error {
	if digits == "" || validDigits(digits) {
		return nil
	}

	return &InvalidRoundError{Round: round, Digits: digits}
}

func validDigits(digits string) bool {
	if len(digits) != 3 {
		return false
	}

	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}

	return true
}

// InvalidRoundError rejects digits that are not exactly three numbers.
type InvalidRoundError struct {
	Round  int
	Digits string
}

func (e *InvalidRoundError) Error() string {
	return fmt.Sprintf("round %d: %q must be exactly 3 digits (0-9)", e.Round, e.Digits)
}
