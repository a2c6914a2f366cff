package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/autowall/internal/adapter/output"
	"github.com/jmylchreest/autowall/internal/schedule"
)

var checkOpts struct {
	quiet bool // Suppress output, return exit code only
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate a schedule file",
	Long: `Parse a schedule file and report the first invalid line.

Each non-blank line has the form "HH:MM[:SS] = wallpaper". The default path
is the schedule file the daemon reads. On success the resulting timeline is
printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVarP(&checkOpts.quiet, "quiet", "q", false,
		"Suppress output, return exit code only")
}

func runCheck(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		var err error
		if path, err = cfg.SchedulePath(); err != nil {
			return err
		}
	}

	sched, err := schedule.LoadConfigSchedule(path)
	if err != nil {
		return err
	}
	logger.Debug("schedule valid", "path", path, "entries", len(sched.Entries()))

	if checkOpts.quiet {
		return nil
	}

	f, err := formatter()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(os.Stderr, "%s: %d entries ok\n", path, len(sched.Entries())); err != nil {
		return err
	}
	return f.FormatTimeline(os.Stdout, output.NewTimeline(sched, time.Now(), env.WallpaperDir))
}
