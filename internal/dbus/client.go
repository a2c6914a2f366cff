package dbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the bus name of the running notification daemon.
	DBusBusName = "org.freedesktop.Notifications"

	notifyMethod = DBusInterface + ".Notify"
)

// caller is the subset of dbus.BusObject used to invoke methods.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Client sends notifications to whichever daemon owns org.freedesktop.Notifications.
type Client struct {
	mu     sync.Mutex
	conn   *dbus.Conn
	obj    caller
	logger *slog.Logger
}

// NewClient connects to the session bus.
func NewClient(logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	return &Client{
		conn:   conn,
		obj:    conn.Object(DBusBusName, DBusPath),
		logger: logger,
	}, nil
}

// newClientWithCaller builds a Client around an existing object, for tests.
func newClientWithCaller(obj caller, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{obj: obj, logger: logger}
}

// Notify sends the notification and returns the id assigned by the server.
// It gives up when ctx is done, since a hung notification daemon never replies.
func (c *Client) Notify(ctx context.Context, n *DBusNotification) (uint32, error) {
	c.mu.Lock()
	obj := c.obj
	c.mu.Unlock()

	if obj == nil {
		return 0, fmt.Errorf("dbus client is closed")
	}

	call := obj.CallWithContext(ctx, notifyMethod, 0, n.args()...)
	if call.Err != nil {
		return 0, fmt.Errorf("notify failed: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify returned unexpected reply: %w", err)
	}

	c.logger.Debug("sent desktop notification", "id", id, "summary", n.Summary)
	return id, nil
}

// Close releases the session bus connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.obj = nil
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
