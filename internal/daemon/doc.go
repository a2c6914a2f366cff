// Package daemon provides the main orchestration for autowalld.
// It runs the tick loop that keeps hyprpaper showing the scheduled
// wallpaper, reloads the schedule file when it changes, and reports
// failures as desktop notifications.
package daemon
