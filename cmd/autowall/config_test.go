package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/autowall/internal/config"
)

// execute runs the root command with args and resets global flag state afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("WALLPAPER_DIR", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		globalOpts.configPath = ""
		configOpts.force = false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeBrokenSettings(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "auto-wallpaper.toml")
	require.NoError(t, os.WriteFile(path, []byte("[timer\ninterval = \n"), 0o644))
	return path
}

func TestConfigInit_RepairsBrokenSettings(t *testing.T) {
	path := writeBrokenSettings(t)

	out, err := execute(t, "config", "init", "--force", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	loaded, err := config.LoadDaemonConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDaemonConfig(), loaded)
}

func TestConfigInit_KeepsExistingWithoutForce(t *testing.T) {
	path := writeBrokenSettings(t)

	_, err := execute(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[timer\ninterval = \n", string(data))
}

func TestConfigShow_BrokenSettingsFails(t *testing.T) {
	path := writeBrokenSettings(t)

	_, err := execute(t, "config", "show", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestConfigShow_PrintsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	out, err := execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "[timer]")
	assert.Contains(t, out, "interval = ")
	assert.Contains(t, out, "5s")
}
