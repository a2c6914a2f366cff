package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/autowall/internal/config"
	"github.com/jmylchreest/autowall/internal/hyprpaper"
	"github.com/jmylchreest/autowall/internal/schedule"
)

// Sender delivers a single command to hyprpaper.
type Sender interface {
	Send(ctx context.Context, cmd hyprpaper.Command) (string, error)
}

// Options configures a Scheduler.
type Options struct {
	Interval     time.Duration // Time between ticks
	WallpaperDir string        // Base directory for relative wallpaper names
	Monitor      string        // Empty = all monitors
	Mode         string        // Passed through to hyprpaper when set
	ExitOnError  bool          // Run returns on a failed switch instead of retrying
}

// SwitchError reports a failed preload or wallpaper command. The switch was
// not committed and the previously displayed wallpaper remains.
type SwitchError struct {
	From  string
	To    string
	Phase string // "preload" or "wallpaper"
	Err   error
}

func (e *SwitchError) Error() string {
	return fmt.Sprintf("switch to %s failed during %s: %v", e.To, e.Phase, e.Err)
}

func (e *SwitchError) Unwrap() error {
	return e.Err
}

// Scheduler drives hyprpaper from a Schedule. All mutable state is owned by
// the goroutine running Run; other goroutines hand over new schedules via Reload.
type Scheduler struct {
	logger   *slog.Logger
	sender   Sender
	notifier Notifier
	opts     Options

	schedule schedule.Schedule
	current  string // Wallpaper believed active; empty before the first switch
	now      func() time.Time
	reloads  chan schedule.Schedule
}

// NewScheduler creates a Scheduler for the given schedule and sender.
func NewScheduler(s schedule.Schedule, sender Sender, opts Options, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Interval <= 0 {
		opts.Interval = 5 * time.Second
	}
	return &Scheduler{
		logger:   logger,
		sender:   sender,
		notifier: NopNotifier{},
		opts:     opts,
		schedule: s,
		now:      time.Now,
		reloads:  make(chan schedule.Schedule),
	}
}

// SetNotifier sets where switch events are reported. Must be called before Run.
func (s *Scheduler) SetNotifier(n Notifier) {
	if n == nil {
		n = NopNotifier{}
	}
	s.notifier = n
}

// Current returns the wallpaper committed by the last successful switch.
// Only safe to call from the goroutine running Run, or when Run is not running.
func (s *Scheduler) Current() string {
	return s.current
}

// Reload hands a new schedule to the running loop, which evaluates it
// immediately. It blocks until the loop accepts it or ctx is done.
func (s *Scheduler) Reload(ctx context.Context, sched schedule.Schedule) error {
	select {
	case s.reloads <- sched:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run evaluates the schedule immediately and then on every tick until ctx is
// cancelled. Ticks missed while a switch is in flight are dropped, not queued.
// Cancellation abandons any in-flight switch; nothing is drained.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "interval", s.opts.Interval, "dir", s.opts.WallpaperDir)

	for {
		if err := s.Tick(ctx, s.now()); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if s.opts.ExitOnError {
				return err
			}
			s.logger.Error("wallpaper switch failed, retrying on next tick", "error", err)
		}

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped", "current", s.current)
			return nil
		case <-ticker.C:
		case sched := <-s.reloads:
			s.schedule = sched
			s.logger.Info("schedule reloaded")
		}
	}
}

// Tick evaluates the schedule at now and, if the target changed, switches to it:
// preload and wallpaper (commit), then unload of the previous image (cleanup).
// Only commit failures are returned.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) error {
	clock := schedule.ClockOf(now)
	target := s.schedule.Active(clock)

	if target == s.current {
		s.logger.Debug("wallpaper unchanged", "now", clock, "wallpaper", target)
		return nil
	}

	previous := s.current
	logger := s.logger.With("switch", ulid.Make().String())
	logger.Info("switching wallpaper", "now", clock, "from", previous, "to", target)

	if err := s.commit(ctx, logger, previous, target); err != nil {
		s.notifier.NotifySwitchFailed(target, err)
		return err
	}
	s.current = target
	s.notifier.NotifySwitched(target)

	if err := s.cleanup(ctx, logger, previous, target); err != nil {
		// Only leaks a cached image; the displayed wallpaper is already correct
		logger.Warn("failed to unload previous wallpaper", "wallpaper", previous, "error", err)
		s.notifier.NotifyUnloadFailed(previous, err)
	}
	return nil
}

// commit preloads and displays target. Nothing is committed on failure.
func (s *Scheduler) commit(ctx context.Context, logger *slog.Logger, previous, target string) error {
	path := s.resolve(target)

	if _, err := s.sender.Send(ctx, hyprpaper.Preload{Path: path}); err != nil {
		return &SwitchError{From: previous, To: target, Phase: "preload", Err: err}
	}
	logger.Debug("preloaded wallpaper", "path", path)

	cmd := hyprpaper.Wallpaper{Monitor: s.opts.Monitor, Mode: s.opts.Mode, Path: path}
	if _, err := s.sender.Send(ctx, cmd); err != nil {
		return &SwitchError{From: previous, To: target, Phase: "wallpaper", Err: err}
	}
	logger.Info("wallpaper set", "path", path, "monitor", s.opts.Monitor)
	return nil
}

// cleanup unloads previous when it is known and differs from target.
func (s *Scheduler) cleanup(ctx context.Context, logger *slog.Logger, previous, target string) error {
	if previous == "" || previous == target {
		return nil
	}

	path := s.resolve(previous)
	if _, err := s.sender.Send(ctx, hyprpaper.Unload{Path: path}); err != nil {
		return err
	}
	logger.Debug("unloaded wallpaper", "path", path)
	return nil
}

func (s *Scheduler) resolve(wallpaper string) string {
	return config.ResolveWallpaper(s.opts.WallpaperDir, wallpaper)
}
