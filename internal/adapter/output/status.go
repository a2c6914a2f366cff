package output

import (
	"time"

	"github.com/jmylchreest/autowall/internal/config"
	"github.com/jmylchreest/autowall/internal/schedule"
)

// Status is the state of a schedule at one instant.
type Status struct {
	Now           schedule.Clock `json:"now" yaml:"now"`
	Active        string         `json:"active" yaml:"active"`
	ActivePath    string         `json:"active_path" yaml:"active_path"`
	Previous      string         `json:"previous" yaml:"previous"`
	NextChange    schedule.Clock `json:"next_change" yaml:"next_change"`
	NextChangeAt  time.Time      `json:"next_change_at" yaml:"next_change_at"`
	NextWallpaper string         `json:"next_wallpaper" yaml:"next_wallpaper"`
	Source        string         `json:"source" yaml:"source"`
	ScheduleFile  string         `json:"schedule_file,omitempty" yaml:"schedule_file,omitempty"`
	WallpaperDir  string         `json:"wallpaper_dir" yaml:"wallpaper_dir"`
}

// NewStatus evaluates s at now. Wallpapers are resolved against dir.
func NewStatus(s schedule.Schedule, now time.Time, dir string) *Status {
	clock := schedule.ClockOf(now)
	next, wraps := schedule.NextChange(s, clock)

	nextAt := next.On(now)
	if wraps {
		nextAt = next.On(now.AddDate(0, 0, 1))
	}

	active := s.Active(clock)
	return &Status{
		Now:           clock,
		Active:        active,
		ActivePath:    config.ResolveWallpaper(dir, active),
		Previous:      s.Previous(clock),
		NextChange:    next,
		NextChangeAt:  nextAt,
		NextWallpaper: s.Active(next),
		WallpaperDir:  dir,
	}
}

// Timeline is the day's slots with the one containing Now marked.
type Timeline struct {
	Now    schedule.Clock  `json:"now" yaml:"now"`
	Active int             `json:"active" yaml:"active"`
	Slots  []schedule.Slot `json:"slots" yaml:"slots"`
	Paths  []string        `json:"paths" yaml:"paths"`
}

// NewTimeline builds the timeline of s as seen at now.
func NewTimeline(s schedule.Schedule, now time.Time, dir string) *Timeline {
	clock := schedule.ClockOf(now)
	slots := schedule.Timeline(s)

	paths := make([]string, len(slots))
	for i, slot := range slots {
		paths[i] = config.ResolveWallpaper(dir, slot.Wallpaper)
	}

	return &Timeline{
		Now:    clock,
		Active: schedule.SlotIndex(slots, clock),
		Slots:  slots,
		Paths:  paths,
	}
}
