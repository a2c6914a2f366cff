package daemon

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/autowall/internal/schedule"
)

// DefaultDebounce is how long the watcher waits after the last change before
// reloading. Editors commonly emit several events for one save.
const DefaultDebounce = 250 * time.Millisecond

// ScheduleWatcher reloads the schedule file when it changes on disk.
type ScheduleWatcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	logger   *slog.Logger
	debounce time.Duration

	onReload func(ctx context.Context, s *schedule.ConfigSchedule)
	onError  func(err error)
}

// NewScheduleWatcher creates a watcher for the schedule file at path.
// The file does not need to exist yet but its directory does.
func NewScheduleWatcher(path string, logger *slog.Logger) (*ScheduleWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory containing the file (more reliable for writes)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &ScheduleWatcher{
		watcher:  watcher,
		filePath: path,
		logger:   logger,
		debounce: DefaultDebounce,
	}, nil
}

// SetReloadCallback sets the function called with each successfully parsed schedule.
func (w *ScheduleWatcher) SetReloadCallback(fn func(ctx context.Context, s *schedule.ConfigSchedule)) {
	w.onReload = fn
}

// SetErrorCallback sets the function called when a changed file fails to load.
// The previous schedule stays in effect.
func (w *ScheduleWatcher) SetErrorCallback(fn func(err error)) {
	w.onError = fn
}

// SetDebounce sets the quiet period before a reload.
func (w *ScheduleWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run watches until ctx is cancelled, then closes the underlying watcher.
// A ScheduleWatcher cannot be restarted.
func (w *ScheduleWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	w.logger.Info("watching schedule file", "path", w.filePath)

	filename := filepath.Base(w.filePath)
	var pending <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			// Rename covers editors that save by replacing the file
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.logger.Debug("schedule file changed", "op", event.Op.String())
				pending = time.After(w.debounce)
			}

		case <-pending:
			pending = nil
			w.reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *ScheduleWatcher) reload(ctx context.Context) {
	s, err := schedule.LoadConfigSchedule(w.filePath)
	if err != nil {
		w.logger.Warn("failed to reload schedule, keeping previous", "path", w.filePath, "error", err)
		if w.onError != nil {
			w.onError(err)
		}
		return
	}

	w.logger.Info("schedule file reloaded", "path", w.filePath, "entries", len(s.Entries()))
	if w.onReload != nil {
		w.onReload(ctx, s)
	}
}
