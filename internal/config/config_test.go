package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/autowall/internal/schedule"
)

func TestScheduleConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path, err := ScheduleConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/hypr/auto-wallpaper.conf", path)

	path, err = DaemonConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/hypr/auto-wallpaper.toml", path)
}

func TestScheduleConfigPathDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")

	path, err := ScheduleConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.config/hypr/auto-wallpaper.conf", path)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "/home/tester/Pictures/wallpapers", ExpandPath("~/Pictures/wallpapers"))
	assert.Equal(t, "/home/tester", ExpandPath("~"))
	assert.Equal(t, "/srv/walls", ExpandPath("/srv/walls"))
	assert.Equal(t, "~other/walls", ExpandPath("~other/walls"))
}

func TestResolveWallpaper(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "/walls/beach.jpg", ResolveWallpaper("/walls", "beach.jpg"))
	assert.Equal(t, "/walls/sub/beach.jpg", ResolveWallpaper("/walls", "sub/beach.jpg"))
	assert.Equal(t, "/other/beach.jpg", ResolveWallpaper("/walls", "/other/beach.jpg"))
	assert.Equal(t, "/home/tester/beach.jpg", ResolveWallpaper("/walls", "~/beach.jpg"))
}

func TestDefaultDaemonConfig(t *testing.T) {
	cfg := DefaultDaemonConfig()

	assert.Equal(t, string(SourceFile), cfg.Schedule.Source)
	assert.True(t, cfg.Schedule.Watch)
	assert.Equal(t, 5*time.Second, cfg.Timer.Interval.Duration())
	assert.Equal(t, string(ErrorPolicyExit), cfg.Timer.OnError)
	assert.True(t, cfg.ExitOnError())
	assert.Empty(t, cfg.Display.Monitor)
	assert.Equal(t, schedule.DefaultBoundaries(), cfg.Fixed.Boundaries)
	assert.True(t, cfg.Notify.Enabled)
	assert.False(t, cfg.Notify.OnSwitch)
	require.NoError(t, cfg.Validate())
}

func TestLoadDaemonConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadDaemonConfig("/nonexistent/path/auto-wallpaper.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultDaemonConfig(), cfg)
}

func TestLoadDaemonConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auto-wallpaper.toml")

	content := `
[schedule]
source = "fixed"
watch = false

[timer]
interval = "1m"
on_error = "retry"

[display]
monitor = "DP-1"
mode = "contain"

[fixed.boundaries]
morning = "05:30"
day = "10:00"
evening = "17:00:30"
night = "21:00"

[fixed.wallpapers]
night = "n.jpg"
morning = "m.jpg"
day = "d.jpg"
evening = "e.jpg"

[notify]
enabled = false
on_switch = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadDaemonConfig(path)
	require.NoError(t, err)

	assert.Equal(t, string(SourceFixed), cfg.Schedule.Source)
	assert.False(t, cfg.Schedule.Watch)
	assert.Equal(t, time.Minute, cfg.Timer.Interval.Duration())
	assert.False(t, cfg.ExitOnError())
	assert.Equal(t, "DP-1", cfg.Display.Monitor)
	assert.Equal(t, "contain", cfg.Display.Mode)
	assert.Equal(t, schedule.NewClock(5, 30, 0), cfg.Fixed.Boundaries.Morning)
	assert.Equal(t, schedule.NewClock(17, 0, 30), cfg.Fixed.Boundaries.Evening)
	assert.Equal(t, "e.jpg", cfg.Fixed.Wallpapers.Evening)
	assert.False(t, cfg.Notify.Enabled)
	assert.True(t, cfg.Notify.OnSwitch)

	s, err := cfg.BuildSchedule()
	require.NoError(t, err)
	assert.Equal(t, "m.jpg", s.Active(schedule.NewClock(6, 0, 0)))
}

func TestLoadDaemonConfig_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auto-wallpaper.toml")

	require.NoError(t, os.WriteFile(path, []byte("[timer]\ninterval = 30000\n"), 0644))

	cfg, err := LoadDaemonConfig(path)
	require.NoError(t, err)

	// Integers are milliseconds
	assert.Equal(t, 30*time.Second, cfg.Timer.Interval.Duration())

	// Unchanged fields keep their defaults
	assert.Equal(t, string(SourceFile), cfg.Schedule.Source)
	assert.Equal(t, string(ErrorPolicyExit), cfg.Timer.OnError)
	assert.Equal(t, schedule.DefaultFixedWallpapers(), cfg.Fixed.Wallpapers)
}

func TestLoadDaemonConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auto-wallpaper.toml")
	require.NoError(t, os.WriteFile(path, []byte(`this is not valid toml [`), 0644))

	_, err := LoadDaemonConfig(path)
	require.Error(t, err)

	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, path, ce.Source)
}

func TestDaemonConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *DaemonConfig)
	}{
		{"unknown source", func(c *DaemonConfig) { c.Schedule.Source = "cron" }},
		{"interval too short", func(c *DaemonConfig) { c.Timer.Interval = Duration(500 * time.Millisecond) }},
		{"unknown error policy", func(c *DaemonConfig) { c.Timer.OnError = "ignore" }},
		{"unordered boundaries", func(c *DaemonConfig) { c.Fixed.Boundaries.Day = c.Fixed.Boundaries.Morning }},
		{"missing fixed wallpaper", func(c *DaemonConfig) { c.Fixed.Wallpapers.Day = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDaemonConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDaemonConfig_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "auto-wallpaper.toml")

	cfg := DefaultDaemonConfig()
	cfg.Display.Monitor = "eDP-1"
	cfg.Timer.Interval = Duration(10 * time.Second)
	cfg.Fixed.Boundaries.Night = schedule.NewClock(22, 15, 0)

	require.NoError(t, SaveDaemonConfig(path, cfg))

	loaded, err := LoadDaemonConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDaemonConfig_SchedulePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	t.Setenv("HOME", "/home/tester")

	cfg := DefaultDaemonConfig()
	path, err := cfg.SchedulePath()
	require.NoError(t, err)
	assert.Equal(t, "/custom/config/hypr/auto-wallpaper.conf", path)

	cfg.Schedule.Path = "~/walls/schedule.conf"
	path, err = cfg.SchedulePath()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/walls/schedule.conf", path)
}

func TestDaemonConfig_BuildScheduleFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auto-wallpaper.conf")
	require.NoError(t, os.WriteFile(path, []byte("07:00 = A\n18:00 = B\n"), 0644))

	cfg := DefaultDaemonConfig()
	cfg.Schedule.Path = path

	s, err := cfg.BuildSchedule()
	require.NoError(t, err)
	assert.Equal(t, "A", s.Active(schedule.NewClock(22, 0, 0)))

	cfg.Schedule.Path = filepath.Join(dir, "missing.conf")
	_, err = cfg.BuildSchedule()
	assert.Error(t, err)
}
