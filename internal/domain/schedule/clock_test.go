package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"8:00", 0, true},
		{"08-00", 0, true},
		{"0800", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			require.ErrorIs(t, err, ErrInvalidClock, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.minutes, got, "input %q", tc.in)
	}
}

func TestFormatClock(t *testing.T) {
	require.Equal(t, "00:00", FormatClock(0))
	require.Equal(t, "08:05", FormatClock(485))
	require.Equal(t, "23:59", FormatClock(1439))
	// Wraps both directions.
	require.Equal(t, "00:30", FormatClock(1470))
	require.Equal(t, "23:30", FormatClock(-30))
}

func TestForwardWrapArithmetic(t *testing.T) {
	at := func(s string) int {
		m, err := ParseClock(s)
		require.NoError(t, err)
		return m
	}

	require.Equal(t, 45, ClockDiff(at("23:30"), at("00:15")))
	require.Equal(t, "00:30", FormatClock(AddClock(at("23:30"), 60)))
	require.Equal(t, 0, ClockDiff(at("10:00"), at("10:00")))
	require.Equal(t, MinutesPerDay-1, ClockDiff(at("10:00"), at("09:59")))
}
