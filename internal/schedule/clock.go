package schedule

import (
	"fmt"
	"strings"
	"time"
)

// secondsPerDay is the length of one schedule cycle.
const secondsPerDay = 24 * 60 * 60

// Clock is a time of day, stored as seconds since midnight.
type Clock int

// NewClock builds a Clock from hour, minute and second components.
func NewClock(hour, minute, second int) Clock {
	return Clock(hour*3600 + minute*60 + second)
}

// ClockOf returns the time of day of t in t's location, truncated to whole seconds.
func ClockOf(t time.Time) Clock {
	h, m, s := t.Clock()
	return NewClock(h, m, s)
}

// ParseClock parses a 24-hour "HH:MM" or "HH:MM:SS" string.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)

	// time.Parse accepts a fractional seconds suffix; only digits and colons are valid here
	if strings.IndexFunc(s, func(r rune) bool { return r != ':' && (r < '0' || r > '9') }) >= 0 {
		return 0, fmt.Errorf("invalid time %q: must be HH:MM or HH:MM:SS", s)
	}

	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: must be HH:MM or HH:MM:SS", s)
	}
	return ClockOf(t), nil
}

// Hour returns the hour component (0-23).
func (c Clock) Hour() int { return int(c) / 3600 }

// Minute returns the minute component (0-59).
func (c Clock) Minute() int { return int(c) % 3600 / 60 }

// Second returns the second component (0-59).
func (c Clock) Second() int { return int(c) % 60 }

// Duration returns the offset of c from midnight.
func (c Clock) Duration() time.Duration {
	return time.Duration(c) * time.Second
}

// On returns the instant at time of day c on the calendar day of t, in t's location.
func (c Clock) On(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), c.Second(), 0, t.Location())
}

// String formats the clock as HH:MM:SS.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
