package hyprpaper

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a whole request when the context carries no deadline.
	DefaultTimeout = 5 * time.Second

	socketDir  = "hypr"
	socketName = ".hyprpaper.sock"

	// maxResponseSize caps how much of a reply is read.
	maxResponseSize = 64 * 1024
)

// SocketPath returns the hyprpaper socket for a Hyprland instance:
// $XDG_RUNTIME_DIR/hypr/$HYPRLAND_INSTANCE_SIGNATURE/.hyprpaper.sock
func SocketPath(runtimeDir, instanceSignature string) string {
	return filepath.Join(runtimeDir, socketDir, instanceSignature, socketName)
}

// ErrRejected is wrapped when hyprpaper answers with anything other than "ok".
var ErrRejected = errors.New("request rejected")

// ProtocolError reports a failed request together with the command that was attempted.
type ProtocolError struct {
	Command Command
	Err     error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("hyprpaper %q: %v", e.Command.Encode(), e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Client sends commands to hyprpaper. Every Send uses a fresh connection;
// nothing is held open between calls.
type Client struct {
	socketPath string
	timeout    time.Duration
	dialer     net.Dialer
	logger     *slog.Logger
}

// NewClient creates a Client for the socket at socketPath.
func NewClient(socketPath string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		socketPath: socketPath,
		timeout:    DefaultTimeout,
		logger:     logger,
	}
}

// SetTimeout sets the request timeout used when the context has no deadline.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

// SocketPath returns the socket the client connects to.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// Send writes cmd as one line, waits for one response line (or EOF) and
// closes the connection. It does not retry.
func (c *Client) Send(ctx context.Context, cmd Command) (string, error) {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	conn, err := c.dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return "", &ProtocolError{Command: cmd, Err: err}
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return "", &ProtocolError{Command: cmd, Err: err}
		}
	}

	// Unblock pending I/O if the context is cancelled mid-request
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	line := cmd.Encode()
	c.logger.Debug("hyprpaper request", "socket", c.socketPath, "request", line)

	if _, err := io.WriteString(conn, line+"\n"); err != nil {
		return "", &ProtocolError{Command: cmd, Err: fmt.Errorf("write: %w", err)}
	}

	response, err := readResponse(conn)
	if err != nil {
		return "", &ProtocolError{Command: cmd, Err: fmt.Errorf("read: %w", err)}
	}

	c.logger.Debug("hyprpaper response", "request", line, "response", response)

	if !isSuccess(response) {
		return response, &ProtocolError{Command: cmd, Err: fmt.Errorf("%w: %s", ErrRejected, response)}
	}
	return response, nil
}

// readResponse reads up to the first newline. EOF ends the response.
func readResponse(r io.Reader) (string, error) {
	reader := bufio.NewReader(io.LimitReader(r, maxResponseSize))
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// isSuccess reports whether a response means the command was accepted.
// hyprpaper answers "ok"; a bare EOF carries no error either.
func isSuccess(response string) bool {
	return response == "" || strings.EqualFold(response, "ok")
}
