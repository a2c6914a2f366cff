package schedule

import (
	"fmt"
	"strings"
)

// TimeOfDay is one of the four states of the fixed day/night cycle.
type TimeOfDay int

const (
	Night TimeOfDay = iota
	Morning
	Day
	Evening
)

// String returns the lowercase name of the state.
func (t TimeOfDay) String() string {
	switch t {
	case Night:
		return "night"
	case Morning:
		return "morning"
	case Day:
		return "day"
	case Evening:
		return "evening"
	default:
		return "unknown"
	}
}

// AllTimesOfDay returns the states in cycle order starting at Night.
func AllTimesOfDay() []TimeOfDay {
	return []TimeOfDay{Night, Morning, Day, Evening}
}

// Boundaries are the instants at which each state begins.
// Night starts in the evening and runs across midnight until Morning.
type Boundaries struct {
	Morning Clock `toml:"morning"`
	Day     Clock `toml:"day"`
	Evening Clock `toml:"evening"`
	Night   Clock `toml:"night"`
}

// DefaultBoundaries returns 06:00, 09:00, 16:00 and 20:00.
func DefaultBoundaries() Boundaries {
	return Boundaries{
		Morning: NewClock(6, 0, 0),
		Day:     NewClock(9, 0, 0),
		Evening: NewClock(16, 0, 0),
		Night:   NewClock(20, 0, 0),
	}
}

// Validate checks that the boundaries are strictly ascending within one day.
func (b Boundaries) Validate() error {
	if b.Morning < 0 || b.Night >= secondsPerDay {
		return fmt.Errorf("boundaries must lie within 00:00:00 and 23:59:59")
	}
	if !(b.Morning < b.Day && b.Day < b.Evening && b.Evening < b.Night) {
		return fmt.Errorf("boundaries must be ascending: morning %s < day %s < evening %s < night %s",
			b.Morning, b.Day, b.Evening, b.Night)
	}
	return nil
}

// Start returns the boundary at which state t begins.
func (b Boundaries) Start(t TimeOfDay) Clock {
	switch t {
	case Morning:
		return b.Morning
	case Day:
		return b.Day
	case Evening:
		return b.Evening
	default:
		return b.Night
	}
}

// Classify returns the state whose range contains now and the state that
// precedes it in the daily cycle. It keeps no state; callers diff results
// across ticks themselves.
func Classify(b Boundaries, now Clock) (previous, current TimeOfDay) {
	switch {
	case now < b.Morning:
		// Night wraps across midnight
		return Evening, Night
	case now < b.Day:
		return Night, Morning
	case now < b.Evening:
		return Morning, Day
	case now < b.Night:
		return Day, Evening
	default:
		return Evening, Night
	}
}

// FixedWallpapers maps every TimeOfDay to a wallpaper file name.
type FixedWallpapers struct {
	Night   string `toml:"night"`
	Morning string `toml:"morning"`
	Day     string `toml:"day"`
	Evening string `toml:"evening"`
}

// DefaultFixedWallpapers returns the Big Sur mountain series.
func DefaultFixedWallpapers() FixedWallpapers {
	return FixedWallpapers{
		Night:   "big-sur-mountains-night-6016x6016.jpg",
		Morning: "big-sur-mountains-morning-6016x6016.jpg",
		Day:     "big-sur-mountains-day-6016x6016.jpg",
		Evening: "big-sur-mountains-evening-6016x6016.jpg",
	}
}

// For returns the wallpaper for state t.
func (w FixedWallpapers) For(t TimeOfDay) string {
	switch t {
	case Morning:
		return w.Morning
	case Day:
		return w.Day
	case Evening:
		return w.Evening
	default:
		return w.Night
	}
}

// Validate checks that every state has a wallpaper.
func (w FixedWallpapers) Validate() error {
	var missing []string
	for _, t := range AllTimesOfDay() {
		if strings.TrimSpace(w.For(t)) == "" {
			missing = append(missing, t.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing wallpaper for %s", strings.Join(missing, ", "))
	}
	return nil
}

// FixedSchedule is the four-state day/night cycle.
type FixedSchedule struct {
	boundaries Boundaries
	wallpapers FixedWallpapers
}

var _ Schedule = (*FixedSchedule)(nil)

// NewFixedSchedule validates the boundaries and wallpapers and builds a FixedSchedule.
func NewFixedSchedule(b Boundaries, w FixedWallpapers) (*FixedSchedule, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &FixedSchedule{boundaries: b, wallpapers: w}, nil
}

// Active returns the wallpaper of the state containing now.
func (s *FixedSchedule) Active(now Clock) string {
	_, current := Classify(s.boundaries, now)
	return s.wallpapers.For(current)
}

// Previous returns the wallpaper of the state preceding the one containing now.
func (s *FixedSchedule) Previous(now Clock) string {
	previous, _ := Classify(s.boundaries, now)
	return s.wallpapers.For(previous)
}

// Changes returns the four boundaries in ascending order.
func (s *FixedSchedule) Changes() []Clock {
	changes := make([]Clock, 0, 4)
	for _, t := range []TimeOfDay{Morning, Day, Evening, Night} {
		changes = append(changes, s.boundaries.Start(t))
	}
	return changes
}
