package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/autowall/internal/schedule"
)

// Duration is a time.Duration that can be unmarshaled from human-readable strings.
// Supports formats like "5s", "1m", "1h30m", or integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	// Plain integers are milliseconds
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '1m', '1h30m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// ScheduleSource selects which schedule provider the daemon uses.
type ScheduleSource string

const (
	// SourceFile reads entries from auto-wallpaper.conf.
	SourceFile ScheduleSource = "file"
	// SourceFixed uses the four-state day/night cycle.
	SourceFixed ScheduleSource = "fixed"
)

// ErrorPolicy decides what happens when preload or wallpaper fails.
type ErrorPolicy string

const (
	// ErrorPolicyExit terminates the daemon with a non-zero status.
	ErrorPolicyExit ErrorPolicy = "exit"
	// ErrorPolicyRetry logs the failure and tries again on the next tick.
	ErrorPolicyRetry ErrorPolicy = "retry"
)

// MinInterval is the shortest accepted tick interval.
const MinInterval = time.Second

// DaemonConfig is the configuration for autowalld.
// Loaded from ~/.config/hypr/auto-wallpaper.toml
type DaemonConfig struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Timer    TimerConfig    `toml:"timer"`
	Display  DisplayConfig  `toml:"display"`
	Fixed    FixedConfig    `toml:"fixed"`
	Notify   NotifyConfig   `toml:"notify"`
}

// ScheduleConfig selects and locates the schedule.
type ScheduleConfig struct {
	Source string `toml:"source"` // "file" or "fixed"
	Path   string `toml:"path"`   // Overrides ~/.config/hypr/auto-wallpaper.conf
	Watch  bool   `toml:"watch"`  // Reload the schedule file when it changes
}

// TimerConfig controls the tick loop.
type TimerConfig struct {
	Interval Duration `toml:"interval"` // e.g. "5s", "1m"
	OnError  string   `toml:"on_error"` // "exit" or "retry"
}

// DisplayConfig is passed through to hyprpaper's wallpaper command.
type DisplayConfig struct {
	Monitor string `toml:"monitor"` // Empty = all monitors
	Mode    string `toml:"mode"`    // e.g. "contain", "tile"; empty = hyprpaper default
}

// FixedConfig configures the four-state cycle used when source = "fixed".
type FixedConfig struct {
	Boundaries schedule.Boundaries      `toml:"boundaries"`
	Wallpapers schedule.FixedWallpapers `toml:"wallpapers"`
}

// NotifyConfig controls desktop notifications.
type NotifyConfig struct {
	Enabled  bool `toml:"enabled"`   // Report failures as desktop notifications
	OnSwitch bool `toml:"on_switch"` // Also announce every successful switch
}

// DefaultDaemonConfig returns a new DaemonConfig with default values.
func DefaultDaemonConfig() *DaemonConfig {
	return &DaemonConfig{
		Schedule: ScheduleConfig{
			Source: string(SourceFile),
			Watch:  true,
		},
		Timer: TimerConfig{
			Interval: Duration(5 * time.Second),
			OnError:  string(ErrorPolicyExit),
		},
		Fixed: FixedConfig{
			Boundaries: schedule.DefaultBoundaries(),
			Wallpapers: schedule.DefaultFixedWallpapers(),
		},
		Notify: NotifyConfig{
			Enabled:  true,
			OnSwitch: false,
		},
	}
}

// LoadDaemonConfig loads the daemon configuration from path, or from
// DaemonConfigPath when path is empty. A missing file yields the defaults.
func LoadDaemonConfig(path string) (*DaemonConfig, error) {
	if path == "" {
		var err error
		path, err = DaemonConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultDaemonConfig(), nil
		}
		return nil, &ConfigError{Source: path, Message: "failed to read config file", Err: err}
	}

	// Start with defaults, then overlay with file contents
	config := DefaultDaemonConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, &ConfigError{Source: path, Message: "failed to parse config file", Err: err}
	}

	if err := config.Validate(); err != nil {
		return nil, &ConfigError{Source: path, Message: "invalid configuration", Err: err}
	}

	return config, nil
}

// SaveDaemonConfig writes the configuration to path atomically.
func SaveDaemonConfig(path string, config *DaemonConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *DaemonConfig) Validate() error {
	switch ScheduleSource(c.Schedule.Source) {
	case SourceFile, SourceFixed:
	default:
		return fmt.Errorf("invalid schedule source %q, must be %q or %q", c.Schedule.Source, SourceFile, SourceFixed)
	}

	if c.Timer.Interval.Duration() < MinInterval {
		return fmt.Errorf("timer interval must be at least %s, got %s", MinInterval, c.Timer.Interval.Duration())
	}

	switch ErrorPolicy(c.Timer.OnError) {
	case ErrorPolicyExit, ErrorPolicyRetry:
	default:
		return fmt.Errorf("invalid on_error %q, must be %q or %q", c.Timer.OnError, ErrorPolicyExit, ErrorPolicyRetry)
	}

	// Fixed settings are only used with the fixed source, but a broken
	// value should not lie in wait until the source is switched.
	if err := c.Fixed.Boundaries.Validate(); err != nil {
		return fmt.Errorf("fixed.boundaries: %w", err)
	}
	if err := c.Fixed.Wallpapers.Validate(); err != nil {
		return fmt.Errorf("fixed.wallpapers: %w", err)
	}

	return nil
}

// SchedulePath returns the schedule file location, honouring schedule.path.
func (c *DaemonConfig) SchedulePath() (string, error) {
	if c.Schedule.Path != "" {
		return ExpandPath(c.Schedule.Path), nil
	}
	return ScheduleConfigPath()
}

// BuildSchedule constructs the schedule provider selected by schedule.source.
func (c *DaemonConfig) BuildSchedule() (schedule.Schedule, error) {
	if ScheduleSource(c.Schedule.Source) == SourceFixed {
		fixed, err := schedule.NewFixedSchedule(c.Fixed.Boundaries, c.Fixed.Wallpapers)
		if err != nil {
			return nil, err
		}
		return fixed, nil
	}

	path, err := c.SchedulePath()
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule path: %w", err)
	}
	fromFile, err := schedule.LoadConfigSchedule(path)
	if err != nil {
		return nil, err
	}
	return fromFile, nil
}

// ExitOnError reports whether a failed switch should terminate the daemon.
func (c *DaemonConfig) ExitOnError() bool {
	return ErrorPolicy(c.Timer.OnError) == ErrorPolicyExit
}
