// Package main provides the CLI entrypoint for autowall.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/autowall/internal/adapter/output"
	"github.com/jmylchreest/autowall/internal/config"
	"github.com/jmylchreest/autowall/internal/hyprpaper"
	"github.com/jmylchreest/autowall/internal/schedule"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// skipSettingsAnnotation marks commands that do not load auto-wallpaper.toml.
const skipSettingsAnnotation = "autowall.skip-settings"

// Global configuration and state
var (
	cfg        *config.DaemonConfig
	env        *config.Env
	globalOpts struct {
		verbose    bool
		configPath string
		format     string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "autowall",
	Short: "Inspect and drive the autowalld wallpaper schedule",
	Long: `autowall is the companion CLI for autowalld, the time-of-day wallpaper
scheduler for hyprpaper.

It shows which wallpaper the schedule selects right now, validates schedule
files, and sends one-off commands to hyprpaper.

Running autowall without a subcommand shows the status.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		env, err = config.LoadEnv(logger)
		if err != nil {
			return err
		}

		// Commands that replace the settings file must run even when it is broken
		if cmd.Annotations[skipSettingsAnnotation] == "true" {
			return nil
		}

		cfg, err = config.LoadDaemonConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to daemon config file (default: ~/.config/hypr/auto-wallpaper.toml)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.format, "output", "o", "plain",
		"Output format (plain, json, yaml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// formatter returns the formatter selected by --output.
func formatter() (output.Formatter, error) {
	format, err := output.ParseFormat(globalOpts.format)
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(format, output.FormatterOptions{
		Reference: time.Now(),
		ShowPaths: globalOpts.verbose,
	}), nil
}

// loadSchedule builds the schedule the daemon would use.
func loadSchedule() (schedule.Schedule, error) {
	return cfg.BuildSchedule()
}

// hyprpaperClient connects to the hyprpaper socket of the current Hyprland session.
func hyprpaperClient() (*hyprpaper.Client, error) {
	session, err := config.LoadSessionEnv()
	if err != nil {
		return nil, err
	}
	return hyprpaper.NewClient(hyprpaper.SocketPath(session.RuntimeDir, session.InstanceSignature), logger), nil
}

// resolve maps a wallpaper argument to the path hyprpaper receives.
func resolve(wallpaper string) string {
	return config.ResolveWallpaper(env.WallpaperDir, wallpaper)
}
