package schedule

import (
	"errors"
	"fmt"
)

// MinutesPerDay is the size of the wrap-around clock space.
const MinutesPerDay = 24 * 60

// ErrInvalidClock indicates a string that is not a zero-padded HH:MM time.
var ErrInvalidClock = errors.New("invalid HH:MM time")

// ParseClock converts a zero-padded "HH:MM" string to minutes since
// midnight. Anything else, including unpadded hours, is rejected.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidClock
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidClock
		}
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	minutes := int(s[3]-'0')*10 + int(s[4]-'0')
	if hours > 23 || minutes > 59 {
		return 0, ErrInvalidClock
	}
	return hours*60 + minutes, nil
}

// FormatClock converts minutes since midnight to a zero-padded "HH:MM"
// string, wrapping into [0, 1440).
func FormatClock(m int) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ClockDiff returns the minutes from a forward to b, wrapping past
// midnight. Always in [0, 1440).
func ClockDiff(a, b int) int {
	return ((b-a)%MinutesPerDay + MinutesPerDay) % MinutesPerDay
}

// AddClock advances a by d minutes, wrapping modulo the day.
func AddClock(a, d int) int {
	return ((a+d)%MinutesPerDay + MinutesPerDay) % MinutesPerDay
}
