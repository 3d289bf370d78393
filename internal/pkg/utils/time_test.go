package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimeLabel(t *testing.T) {
	cases := map[int]string{
		0:    "12:00 AM",
		30:   "12:30 AM",
		570:  "9:30 AM",
		630:  "10:30 AM",
		720:  "12:00 PM",
		780:  "1:00 PM",
		1260: "9:00 PM",
		1439: "11:59 PM",
	}
	for minutes, want := range cases {
		assert.Equal(t, want, FormatTimeLabel(minutes))
	}
}

func TestParseTimeLabel(t *testing.T) {
	t.Run("Round Trips Labels", func(t *testing.T) {
		for _, minutes := range []int{0, 45, 600, 630, 720, 735, 1259} {
			got, ok := ParseTimeLabel(FormatTimeLabel(minutes))
			assert.True(t, ok)
			assert.Equal(t, minutes, got)
		}
	})

	t.Run("Accepts 24 Hour Clock", func(t *testing.T) {
		got, ok := ParseTimeLabel("14:30")
		assert.True(t, ok)
		assert.Equal(t, 870, got)
	})

	t.Run("Lowercase Suffix", func(t *testing.T) {
		got, ok := ParseTimeLabel("10:30 am")
		assert.True(t, ok)
		assert.Equal(t, 630, got)
	})

	t.Run("Rejects Garbage", func(t *testing.T) {
		for _, s := range []string{"", "10", "13:00 PM", "0:30 AM", "10:3 AM", "ab:cd", "24:00", "10:60", "+9:00 AM", "9:00", "-1:30"} {
			_, ok := ParseTimeLabel(s)
			assert.False(t, ok, s)
		}
	})
}

func TestParseClock(t *testing.T) {
	got, ok := ParseClock("09:05")
	assert.True(t, ok)
	assert.Equal(t, 545, got)

	assert.Equal(t, "09:05", FormatClock(545))

	for _, s := range []string{"9:5", "9:00", "+9:00", "-0:30", "09:+5", "0x:00", "24:00", "09:60", "09-00", "009:00"} {
		_, ok = ParseClock(s)
		assert.False(t, ok, s)
	}
}

func TestDateKeys(t *testing.T) {
	d := time.Date(2024, 7, 3, 15, 4, 0, 0, time.UTC)

	assert.Equal(t, "3_7_2024", LegacyDateKey(d))
	assert.Equal(t, "2024-07-03", ISODate(d))

	parsed, err := ParseISODate("2024-07-03", time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, StartOfDay(d), parsed)

	_, err = ParseISODate("3_7_2024", time.UTC)
	assert.Error(t, err)
}

func TestAtMinutes(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)
	day := time.Date(2025, 7, 7, 18, 0, 0, 0, loc)

	at := AtMinutes(day, 630)
	assert.Equal(t, time.Date(2025, 7, 7, 10, 30, 0, 0, loc), at)
	assert.Equal(t, 630, MinutesOfDay(at))
	assert.True(t, IsValidMinuteOfDay(1439))
	assert.False(t, IsValidMinuteOfDay(1440))
}
