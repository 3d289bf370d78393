package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"vetcare-service/internal/pkg/constvars"
)

const minutesPerDay = 24 * 60

// ParseClock parses a 24-hour "HH:MM" wall time into minutes since midnight. Both
// parts must be exactly two digits.
func ParseClock(s string) (int, bool) {
	h, m, ok := splitClock(strings.TrimSpace(s), 2)
	if !ok || h > 23 {
		return 0, false
	}
	return h*60 + m, true
}

// splitClock parses "H:MM" with an hour of minHourDigits to 2 digits and a two
// digit minute. Signs and other non digits are rejected.
func splitClock(s string, minHourDigits int) (int, int, bool) {
	hour, minute, found := strings.Cut(s, ":")
	if !found || len(hour) < minHourDigits || len(hour) > 2 || len(minute) != 2 {
		return 0, 0, false
	}
	h, ok := parseDigits(hour)
	if !ok {
		return 0, 0, false
	}
	m, ok := parseDigits(minute)
	if !ok || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatTimeLabel renders minutes since midnight as "h:mm AM/PM" with no leading zero
// on the hour, e.g. 630 -> "10:30 AM", 780 -> "1:00 PM".
func FormatTimeLabel(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// ParseTimeLabel accepts either the "h:mm AM/PM" label or a 24-hour "HH:MM" clock.
func ParseTimeLabel(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	var suffix string
	switch {
	case strings.HasSuffix(s, "AM"):
		suffix = "AM"
	case strings.HasSuffix(s, "PM"):
		suffix = "PM"
	default:
		return ParseClock(s)
	}

	clock := strings.TrimSpace(strings.TrimSuffix(s, suffix))
	h, m, ok := splitClock(clock, 1)
	if !ok || h < 1 || h > 12 {
		return 0, false
	}
	if h == 12 {
		h = 0
	}
	if suffix == "PM" {
		h += 12
	}
	return h*60 + m, true
}

// LegacyDateKey renders the non zero-padded D_M_YYYY key used by older clients.
func LegacyDateKey(t time.Time) string {
	return fmt.Sprintf("%d_%d_%d", t.Day(), int(t.Month()), t.Year())
}

func ISODate(t time.Time) string {
	return t.Format(constvars.ISODateLayout)
}

func ParseISODate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constvars.ISODateLayout, s, loc)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AtMinutes returns the instant minutes after midnight on day's calendar date.
func AtMinutes(day time.Time, minutes int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, day.Location())
}

// MinutesOfDay returns t's wall clock as minutes since midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func IsValidMinuteOfDay(minutes int) bool {
	return minutes >= 0 && minutes < minutesPerDay
}
