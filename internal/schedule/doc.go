// Package schedule maps a time of day to the wallpaper that should be shown.
//
// Two providers implement the Schedule interface:
//
//   - FixedSchedule: four TimeOfDay states separated by four ordered boundaries.
//   - ConfigSchedule: an ordered list of (time, wallpaper) entries loaded from
//     ~/.config/hypr/auto-wallpaper.conf.
//
// Both treat the day as a single repeating 24 hour cycle and are pure: the
// same Clock always yields the same wallpaper.
package schedule
