// Package config handles environment and configuration file loading.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default locations, relative to the user config directory.
const (
	AppPrefix           = "hypr"
	ScheduleFileName    = "auto-wallpaper.conf"
	DaemonFileName      = "auto-wallpaper.toml"
	DefaultWallpaperDir = "~/Pictures/wallpapers"
)

// ConfigError describes a configuration problem that prevents startup.
type ConfigError struct {
	Source  string // Environment, or the offending file path
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	msg := e.Source + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ConfigDir returns the hypr directory under the user config directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppPrefix), nil
}

// ScheduleConfigPath returns the path to the schedule file.
func ScheduleConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ScheduleFileName), nil
}

// DaemonConfigPath returns the path to the daemon settings file.
func DaemonConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DaemonFileName), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// ResolveWallpaper joins a wallpaper identifier onto dir unless it is already absolute.
func ResolveWallpaper(dir, wallpaper string) string {
	wallpaper = ExpandPath(wallpaper)
	if filepath.IsAbs(wallpaper) {
		return wallpaper
	}
	return filepath.Join(dir, wallpaper)
}
