// Package clock derives the local calendar day used as the catalog key.
//
// The local day is defined by a fixed UTC+05:30 offset. No time zone
// database and no daylight saving rules are involved.
package clock

import (
	"fmt"
	"strconv"
	"time"
)

// Offset is the fixed distance of the local day from UTC.
const Offset = 5*time.Hour + 30*time.Minute

// KeyLayout is the layout of a date key.
const KeyLayout = "2006-01-02"

// Zone is the fixed offset location used for every local computation.
var Zone = time.FixedZone("IST", int(Offset/time.Second))

var months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Clock abstracts the current time so callers can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// System is the real clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// NowLocal returns the clock's current instant in the fixed local offset.
func NowLocal(c Clock) time.Time {
	return Local(c.Now())
}

// Local shifts t into the fixed local offset. The instant is unchanged.
func Local(t time.Time) time.Time {
	return t.In(Zone)
}

// DateKey formats t as YYYY-MM-DD using the local calendar day.
func DateKey(t time.Time) string {
	return Local(t).Format(KeyLayout)
}

// Today returns the date key of the clock's current local day.
func Today(c Clock) string {
	return DateKey(c.Now())
}

// DisplayDate formats t as "D MonthName YYYY" in the local calendar.
func DisplayDate(t time.Time) string {
	l := Local(t)

	return strconv.Itoa(l.Day()) + " " + months[l.Month()-1] + " " + strconv.Itoa(l.Year())
}

// ParseDateKey parses a YYYY-MM-DD key as local midnight.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, Zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}

	return t, nil
}

// DisplayKey renders a stored date key for headings. Unparseable keys are
// returned unchanged.
func DisplayKey(key string) string {
	t, err := ParseDateKey(key)
	if err != nil {
		return key
	}

	return DisplayDate(t)
}

// PreviousKeys returns the keys of the n local calendar days before t,
// newest first.
func PreviousKeys(t time.Time, n int) []string {
	if n <= 0 {
		return nil
	}

	l := Local(t)
	day := time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, Zone)

	keys := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		keys = append(keys, day.AddDate(0, 0, -i).Format(KeyLayout))
	}

	return keys
}
