package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		input    string
		expected Clock
	}{
		{"08:30", NewClock(8, 30, 0)},
		{"08:30:15", NewClock(8, 30, 15)},
		{"00:00", 0},
		{"23:59:59", NewClock(23, 59, 59)},
		{" 7:05 ", NewClock(7, 5, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseClock(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestParseClock_Invalid(t *testing.T) {
	for _, input := range []string{"", "24:00", "12:60", "noon", "8", "08:30:15:00", "08-30", "08:30:15.999", "08:30:15,5", "+8:30"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseClock(input)
			assert.Error(t, err)
		})
	}
}

func TestClock_Components(t *testing.T) {
	c := NewClock(13, 7, 42)
	assert.Equal(t, 13, c.Hour())
	assert.Equal(t, 7, c.Minute())
	assert.Equal(t, 42, c.Second())
	assert.Equal(t, "13:07:42", c.String())
	assert.Equal(t, 13*time.Hour+7*time.Minute+42*time.Second, c.Duration())
}

func TestClockOf(t *testing.T) {
	ts := time.Date(2024, 3, 1, 21, 15, 30, 999, time.Local)
	assert.Equal(t, NewClock(21, 15, 30), ClockOf(ts))
}

func TestClock_On(t *testing.T) {
	day := time.Date(2024, 3, 1, 21, 15, 30, 0, time.UTC)
	got := NewClock(6, 0, 0).On(day)
	assert.Equal(t, time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC), got)
}

func TestClock_TextRoundTrip(t *testing.T) {
	var c Clock
	require.NoError(t, c.UnmarshalText([]byte("06:45")))
	assert.Equal(t, NewClock(6, 45, 0), c)

	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "06:45:00", string(text))

	assert.Error(t, c.UnmarshalText([]byte("late")))
}
