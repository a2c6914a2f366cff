package schedule

import "sort"

// Schedule decides which wallpaper is active at a given time of day.
type Schedule interface {
	// Active returns the wallpaper that should be displayed at now.
	Active(now Clock) string

	// Previous returns the wallpaper that precedes the active one in the cycle.
	Previous(now Clock) string

	// Changes returns the ascending times of day at which Active may change.
	Changes() []Clock
}

// Slot is a span of the day during which one wallpaper is active.
type Slot struct {
	Start     Clock  `json:"start" yaml:"start"`
	Wallpaper string `json:"wallpaper" yaml:"wallpaper"`
}

// Timeline returns one slot per change of s, in ascending order of start time.
// The last slot runs across midnight until the first slot's start.
func Timeline(s Schedule) []Slot {
	changes := s.Changes()
	slots := make([]Slot, 0, len(changes))
	for _, c := range changes {
		slots = append(slots, Slot{Start: c, Wallpaper: s.Active(c)})
	}
	return slots
}

// SlotIndex returns the index of the slot containing now.
// Before the first slot's start the last slot, carried over from the previous day, applies.
func SlotIndex(slots []Slot, now Clock) int {
	if len(slots) == 0 {
		return -1
	}
	i := sort.Search(len(slots), func(i int) bool {
		return slots[i].Start > now
	})
	if i == 0 {
		return len(slots) - 1
	}
	return i - 1
}

// NextChange returns the next time of day after now at which the active
// wallpaper may change. wraps reports whether that time falls on the next day.
func NextChange(s Schedule, now Clock) (next Clock, wraps bool) {
	changes := s.Changes()
	if len(changes) == 0 {
		return 0, false
	}
	for _, c := range changes {
		if c > now {
			return c, false
		}
	}
	return changes[0], true
}
