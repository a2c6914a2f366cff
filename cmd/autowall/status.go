package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/autowall/internal/adapter/output"
	"github.com/jmylchreest/autowall/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the wallpaper the schedule selects now",
	Long: `Show the wallpaper the schedule selects at the current time, the one it
replaced, and when the next change is due.

This reads the same configuration as autowalld but does not talk to the
daemon or hyprpaper, so it reports what should be displayed.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the day's wallpaper timeline",
	Long: `Show one line per slot of the day, marking the slot that is active now.
The last slot runs across midnight until the first slot starts.`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(scheduleCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	f, err := formatter()
	if err != nil {
		return err
	}

	sched, err := loadSchedule()
	if err != nil {
		return err
	}

	status := output.NewStatus(sched, time.Now(), env.WallpaperDir)
	status.Source = cfg.Schedule.Source
	if config.ScheduleSource(cfg.Schedule.Source) == config.SourceFile {
		if status.ScheduleFile, err = cfg.SchedulePath(); err != nil {
			return err
		}
	}

	return f.FormatStatus(os.Stdout, status)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	f, err := formatter()
	if err != nil {
		return err
	}

	sched, err := loadSchedule()
	if err != nil {
		return err
	}

	return f.FormatTimeline(os.Stdout, output.NewTimeline(sched, time.Now(), env.WallpaperDir))
}
