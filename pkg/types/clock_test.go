package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		tests := map[string]int{
			"00:00": 0,
			"06:30": 6*60 + 30,
			"12:00": 12 * 60,
			"23:59": 23*60 + 59,
		}
		for in, want := range tests {
			got, err := ParseClockTime(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, in := range []string{
			"", "6:30", "06:3", "24:00", "12:60", "ab:cd", "12-30", "12:345",
		} {
			_, err := ParseClockTime(in)
			require.Error(t, err, in)
			assert.ErrorIs(t, err, ErrInvalidTimeFormat, in)
		}
	})
}

func TestFormatClockMinutes(t *testing.T) {
	tests := map[int]string{
		0:          "00:00",
		6*60 + 30:  "06:30",
		23*60 + 59: "23:59",
		24 * 60:    "00:00", // wraps
		25 * 60:    "01:00",
		-60:        "23:00", // wraps backwards
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatClockMinutes(in), "minutes=%d", in)
	}
}
