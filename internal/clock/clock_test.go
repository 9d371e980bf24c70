package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	tests := []struct {
		name string
		utc  time.Time
		want string
	}{
		{"morning utc", time.Date(2025, 10, 28, 6, 0, 0, 0, time.UTC), "2025-10-28"},
		{"just before local midnight", time.Date(2025, 10, 28, 18, 29, 59, 0, time.UTC), "2025-10-28"},
		{"local midnight", time.Date(2025, 10, 28, 18, 30, 0, 0, time.UTC), "2025-10-29"},
		{"year rollover", time.Date(2024, 12, 31, 23, 45, 0, 0, time.UTC), "2025-01-01"},
		{"month rollover", time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC), "2025-02-01"},
		{"leap day", time.Date(2024, 2, 28, 19, 0, 0, 0, time.UTC), "2024-02-29"},
		{"zero padded", time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), "2025-03-04"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateKey(tt.utc))
		})
	}
}

func TestDateKey_IgnoresInputLocation(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	instant := time.Date(2025, 10, 28, 20, 0, 0, 0, ny) // 01:00 UTC on the 29th

	assert.Equal(t, "2025-10-29", DateKey(instant))
}

func TestDateKey_StableWithinLocalDay(t *testing.T) {
	start := time.Date(2025, 10, 27, 18, 30, 0, 0, time.UTC) // local midnight of the 28th

	for m := 0; m < 24*60; m += 7 {
		require.Equal(t, "2025-10-28", DateKey(start.Add(time.Duration(m)*time.Minute)))
	}

	assert.Equal(t, "2025-10-29", DateKey(start.Add(24*time.Hour)))
	assert.Equal(t, "2025-10-27", DateKey(start.Add(-time.Nanosecond)))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "1 January 2025", DisplayDate(time.Date(2024, 12, 31, 23, 45, 0, 0, time.UTC)))
	assert.Equal(t, "28 October 2025", DisplayDate(time.Date(2025, 10, 28, 6, 0, 0, 0, time.UTC)))
}

func TestNowLocal(t *testing.T) {
	fake := NewFake(time.Date(2025, 10, 28, 20, 0, 0, 0, time.UTC))

	local := NowLocal(fake)
	_, offset := local.Zone()

	assert.Equal(t, 5*3600+30*60, offset)
	assert.True(t, local.Equal(fake.Now()))
	assert.Equal(t, 29, local.Day())
	assert.Equal(t, 1, local.Hour())
	assert.Equal(t, 30, local.Minute())
	assert.Equal(t, "2025-10-29", Today(fake))
}

func TestParseDateKey(t *testing.T) {
	got, err := ParseDateKey("2025-10-28")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-28", DateKey(got))
	assert.Equal(t, "28 October 2025", DisplayKey("2025-10-28"))

	_, err = ParseDateKey("28-10-2025")
	require.Error(t, err)
	assert.Equal(t, "not-a-date", DisplayKey("not-a-date"))
}

func TestPreviousKeys(t *testing.T) {
	now := time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC) // 2 March local

	assert.Equal(t, []string{"2025-03-01", "2025-02-28", "2025-02-27"}, PreviousKeys(now, 3))
	assert.Nil(t, PreviousKeys(now, 0))
}

func TestFake_Advance(t *testing.T) {
	fake := NewFake(time.Date(2025, 10, 28, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-10-28", Today(fake))

	fake.Advance(30 * time.Minute)
	assert.Equal(t, "2025-10-29", Today(fake))
}
