// Package main is the entry point for the autowalld wallpaper daemon.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/autowall/internal/config"
	"github.com/jmylchreest/autowall/internal/daemon"
	"github.com/jmylchreest/autowall/internal/dbus"
	"github.com/jmylchreest/autowall/internal/hyprpaper"
	"github.com/jmylchreest/autowall/internal/schedule"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	// Set up structured logging; the level is raised or lowered once the environment is read
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := run(logger, level); err != nil {
		logger.Error("autowalld exiting", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, level *slog.LevelVar) error {
	env, err := config.LoadEnv(logger)
	if err != nil {
		return err
	}
	level.Set(env.Level())

	session, err := config.LoadSessionEnv()
	if err != nil {
		return err
	}

	cfg, err := config.LoadDaemonConfig("")
	if err != nil {
		return err
	}

	sched, err := cfg.BuildSchedule()
	if err != nil {
		return err
	}

	socketPath := hyprpaper.SocketPath(session.RuntimeDir, session.InstanceSignature)
	client := hyprpaper.NewClient(socketPath, logger)

	logger.Info("starting autowalld",
		"version", version,
		"source", cfg.Schedule.Source,
		"socket", socketPath,
		"wallpaper_dir", env.WallpaperDir,
		"on_error", cfg.Timer.OnError,
	)

	scheduler := daemon.NewScheduler(sched, client, daemon.Options{
		Interval:     cfg.Timer.Interval.Duration(),
		WallpaperDir: env.WallpaperDir,
		Monitor:      cfg.Display.Monitor,
		Mode:         cfg.Display.Mode,
		ExitOnError:  cfg.ExitOnError(),
	}, logger)

	notifier := daemon.NewDesktopNotifier(logger)
	notifier.SetEnabled(cfg.Notify.Enabled)
	notifier.SetNotifyOnSwitch(cfg.Notify.OnSwitch)
	if cfg.Notify.Enabled {
		bus, err := dbus.NewClient(logger)
		if err != nil {
			logger.Warn("session bus unavailable, running without notifications", "error", err)
		} else {
			defer bus.Close()
			notifier.SetClient(bus)
		}
	}
	scheduler.SetNotifier(notifier)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if config.ScheduleSource(cfg.Schedule.Source) == config.SourceFile && cfg.Schedule.Watch {
		path, err := cfg.SchedulePath()
		if err != nil {
			return err
		}

		watcher, err := daemon.NewScheduleWatcher(path, logger)
		if err != nil {
			logger.Warn("failed to watch schedule file, hot-reload disabled", "path", path, "error", err)
		} else {
			watcher.SetReloadCallback(func(ctx context.Context, s *schedule.ConfigSchedule) {
				if err := scheduler.Reload(ctx, s); err == nil {
					notifier.NotifyScheduleReloaded(path)
				}
			})
			watcher.SetErrorCallback(notifier.NotifyScheduleError)
			g.Go(func() error {
				return watcher.Run(ctx)
			})
		}
	}

	g.Go(func() error {
		return notifier.Run(ctx)
	})
	g.Go(func() error {
		return scheduler.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("autowalld stopped")
	return nil
}
