package types

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeFormat is returned when a clock time is not "HH:MM" with a
// valid hour and minute.
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

const minutesPerDay = 24 * 60

// ParseClockTime parses a strict "HH:MM" clock time into minutes since
// midnight. Unlike time.Parse("15:04", ...) it rejects single-digit hours.
func ParseClockTime(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return hour*60 + minute, nil
}

// FormatClockMinutes formats minutes since midnight as "HH:MM", wrapping
// modulo 24 hours. Negative values wrap backwards from midnight.
func FormatClockMinutes(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
