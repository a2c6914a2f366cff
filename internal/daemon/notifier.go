package daemon

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmylchreest/autowall/internal/dbus"
)

// Notifier receives scheduler and watcher events worth surfacing to the user.
type Notifier interface {
	NotifySwitched(wallpaper string)
	NotifySwitchFailed(wallpaper string, err error)
	NotifyUnloadFailed(wallpaper string, err error)
	NotifyScheduleReloaded(path string)
	NotifyScheduleError(err error)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) NotifySwitched(string) {}
func (NopNotifier) NotifySwitchFailed(string, error) {}
func (NopNotifier) NotifyUnloadFailed(string, error) {}
func (NopNotifier) NotifyScheduleReloaded(string) {}
func (NopNotifier) NotifyScheduleError(error) {}

// NotificationLevel indicates the urgency/severity of a desktop notification.
type NotificationLevel int

const (
	// NotificationLevelInfo is for informational messages (low urgency).
	NotificationLevelInfo NotificationLevel = iota
	// NotificationLevelWarning is for warning messages (normal urgency).
	NotificationLevelWarning
	// NotificationLevelError is for error messages (critical urgency).
	NotificationLevelError
)

const (
	// DefaultNotifyTimeout bounds a single delivery to the notification daemon.
	DefaultNotifyTimeout = 2 * time.Second

	notifyQueueSize = 16
)

// DesktopNotifier sends events as freedesktop notifications.
// Notifications sharing a key are rate limited so a failing tick loop
// does not flood the notification daemon. Notify only queues; delivery
// happens in Run, so callers never wait on the bus.
type DesktopNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger

	notifyHandler func(ctx context.Context, notification *dbus.DBusNotification) error
	queue         chan *dbus.DBusNotification
	timeout       time.Duration

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration
	now            func() time.Time

	enabled  bool
	onSwitch bool
}

// NewDesktopNotifier creates a DesktopNotifier with no handler attached.
func NewDesktopNotifier(logger *slog.Logger) *DesktopNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &DesktopNotifier{
		logger:         logger,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    time.Minute,
		now:            time.Now,
		queue:          make(chan *dbus.DBusNotification, notifyQueueSize),
		timeout:        DefaultNotifyTimeout,
		enabled:        true,
	}
}

// SetNotifyHandler sets the function used to deliver notifications.
func (n *DesktopNotifier) SetNotifyHandler(handler func(ctx context.Context, notification *dbus.DBusNotification) error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifyHandler = handler
}

// SetClient delivers notifications through a session bus client.
func (n *DesktopNotifier) SetClient(client *dbus.Client) {
	n.SetNotifyHandler(func(ctx context.Context, notification *dbus.DBusNotification) error {
		_, err := client.Notify(ctx, notification)
		return err
	})
}

// SetTimeout sets how long a single delivery may take before it is abandoned.
func (n *DesktopNotifier) SetTimeout(timeout time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.timeout = timeout
}

// Run delivers queued notifications until ctx is cancelled. Anything still
// queued at that point is dropped.
func (n *DesktopNotifier) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case notification := <-n.queue:
			n.deliver(ctx, notification)
		}
	}
}

func (n *DesktopNotifier) deliver(ctx context.Context, notification *dbus.DBusNotification) {
	n.mu.Lock()
	handler, timeout := n.notifyHandler, n.timeout
	n.mu.Unlock()

	if handler == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := handler(ctx, notification); err != nil {
		n.logger.Warn("failed to send notification", "summary", notification.Summary, "error", err)
	}
}

// SetEnabled enables or disables all notifications.
func (n *DesktopNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetNotifyOnSwitch enables a low urgency notice after each successful switch.
func (n *DesktopNotifier) SetNotifyOnSwitch(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onSwitch = enabled
}

// SetMinInterval sets the minimum interval between notifications with the same key.
func (n *DesktopNotifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify queues a notification unless one with the same key was sent within
// the minimum interval. It never blocks; when the queue is full the
// notification is dropped.
func (n *DesktopNotifier) Notify(key, summary, body string, level NotificationLevel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.enabled {
		return
	}
	if n.notifyHandler == nil {
		n.logger.Debug("notification skipped: no handler", "summary", summary)
		return
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.logger.Debug("notification rate-limited", "key", key, "summary", summary)
		return
	}
	n.lastNotifyTime[key] = now

	notification := &dbus.DBusNotification{
		AppName:       "autowall",
		Summary:       summary,
		Body:          body,
		ExpireTimeout: 5000,
	}
	notification.SetHint("category", "system")
	notification.SetHint("desktop-entry", "autowall")

	switch level {
	case NotificationLevelInfo:
		notification.AppIcon = "preferences-desktop-wallpaper"
		notification.SetHint("urgency", dbus.UrgencyLow)
		notification.SetHint("transient", true)
	case NotificationLevelWarning:
		notification.AppIcon = "dialog-warning"
		notification.SetHint("urgency", dbus.UrgencyNormal)
	case NotificationLevelError:
		notification.AppIcon = "dialog-error"
		notification.SetHint("urgency", dbus.UrgencyCritical)
		notification.ExpireTimeout = 0
	}

	select {
	case n.queue <- notification:
		n.logger.Debug("queued notification", "key", key, "summary", summary, "level", level)
	default:
		n.logger.Warn("notification queue full, dropping", "key", key, "summary", summary)
	}
}

// NotifySwitched reports a successful switch when on-switch notices are enabled.
func (n *DesktopNotifier) NotifySwitched(wallpaper string) {
	n.mu.Lock()
	onSwitch := n.onSwitch
	n.mu.Unlock()
	if !onSwitch {
		return
	}
	n.Notify(
		"switch",
		"Wallpaper Changed",
		filepath.Base(wallpaper),
		NotificationLevelInfo,
	)
}

// NotifySwitchFailed reports a switch that hyprpaper rejected or never answered.
func (n *DesktopNotifier) NotifySwitchFailed(wallpaper string, err error) {
	n.Notify(
		"switch-error",
		"Wallpaper Switch Failed",
		"Could not switch to "+filepath.Base(wallpaper)+": "+err.Error(),
		NotificationLevelError,
	)
}

// NotifyUnloadFailed reports that the previous wallpaper could not be unloaded.
func (n *DesktopNotifier) NotifyUnloadFailed(wallpaper string, err error) {
	n.Notify(
		"unload-error",
		"Wallpaper Unload Failed",
		"Could not unload "+filepath.Base(wallpaper)+": "+err.Error(),
		NotificationLevelWarning,
	)
}

// NotifyScheduleReloaded reports that the schedule file was reloaded.
func (n *DesktopNotifier) NotifyScheduleReloaded(path string) {
	n.Notify(
		"schedule-reload",
		"Schedule Reloaded",
		path+" has been successfully reloaded.",
		NotificationLevelInfo,
	)
}

// NotifyScheduleError reports a schedule file that failed to parse.
func (n *DesktopNotifier) NotifyScheduleError(err error) {
	n.Notify(
		"schedule-error",
		"Schedule Error",
		"Failed to reload schedule: "+err.Error(),
		NotificationLevelWarning,
	)
}
