package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Env holds the optional environment settings.
type Env struct {
	WallpaperDir string `envconfig:"WALLPAPER_DIR"`
	LogLevel     string `envconfig:"AUTOWALL_LOG_LEVEL" default:"info"`
}

// SessionEnv identifies the running Hyprland session. Both values are required
// to locate the hyprpaper socket.
type SessionEnv struct {
	RuntimeDir        string `envconfig:"XDG_RUNTIME_DIR" required:"true"`
	InstanceSignature string `envconfig:"HYPRLAND_INSTANCE_SIGNATURE" required:"true"`
}

// LoadEnv reads the optional environment settings. A missing WALLPAPER_DIR
// falls back to DefaultWallpaperDir with a warning. The directory is ~-expanded.
func LoadEnv(logger *slog.Logger) (*Env, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, &ConfigError{Source: "environment", Message: "failed to process environment", Err: err}
	}

	if strings.TrimSpace(env.WallpaperDir) == "" {
		logger.Warn("WALLPAPER_DIR not set, using default", "dir", DefaultWallpaperDir)
		env.WallpaperDir = DefaultWallpaperDir
	}
	env.WallpaperDir = ExpandPath(env.WallpaperDir)

	if _, err := ParseLogLevel(env.LogLevel); err != nil {
		return nil, &ConfigError{Source: "environment", Message: "invalid AUTOWALL_LOG_LEVEL", Err: err}
	}

	return &env, nil
}

// Level returns the parsed log level.
func (e *Env) Level() slog.Level {
	level, _ := ParseLogLevel(e.LogLevel)
	return level
}

// LoadSessionEnv reads XDG_RUNTIME_DIR and HYPRLAND_INSTANCE_SIGNATURE.
func LoadSessionEnv() (*SessionEnv, error) {
	var env SessionEnv
	if err := envconfig.Process("", &env); err != nil {
		return nil, &ConfigError{Source: "environment", Message: "hyprland session not detected", Err: err}
	}

	// envconfig only checks presence; an empty value is just as unusable
	if env.RuntimeDir == "" {
		return nil, &ConfigError{Source: "environment", Message: "XDG_RUNTIME_DIR is empty"}
	}
	if env.InstanceSignature == "" {
		return nil, &ConfigError{Source: "environment", Message: "HYPRLAND_INSTANCE_SIGNATURE is empty"}
	}
	return &env, nil
}

// ParseLogLevel parses debug, info, warn or error (case-insensitive).
// An empty string means info.
func ParseLogLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
