package hyprpaper

import (
	"bufio"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDaemon accepts one request per connection and answers with reply.
type fakeDaemon struct {
	listener net.Listener
	reply    func(request string) string

	mu       sync.Mutex
	requests []string
	conns    int
}

// shortTempDir keeps unix socket paths under the sun_path length limit.
func shortTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "hp")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return dir
}

func newFakeDaemon(t *testing.T, reply func(request string) string) (*fakeDaemon, string) {
	t.Helper()
	path := filepath.Join(shortTempDir(t), ".hyprpaper.sock")

	listener, err := net.Listen("unix", path)
	require.NoError(t, err)

	d := &fakeDaemon{listener: listener, reply: reply}
	t.Cleanup(func() { _ = listener.Close() })

	go d.serve()
	return d, path
}

func (d *fakeDaemon) serve() {
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return
		}
		d.handle(conn)
	}
}

func (d *fakeDaemon) handle(conn net.Conn) {
	defer conn.Close()

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}

	d.mu.Lock()
	d.conns++
	d.requests = append(d.requests, line)
	d.mu.Unlock()

	if d.reply != nil {
		if response := d.reply(line); response != "" {
			_, _ = conn.Write([]byte(response))
		}
	}
}

func (d *fakeDaemon) snapshot() ([]string, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.requests...), d.conns
}

func okReply(string) string { return "ok\n" }

func TestSocketPath(t *testing.T) {
	assert.Equal(t,
		"/run/user/1000/hypr/abc_123/.hyprpaper.sock",
		SocketPath("/run/user/1000", "abc_123"))
}

func TestNewClient(t *testing.T) {
	client := NewClient("/run/user/1000/hypr/abc/.hyprpaper.sock", nil)
	assert.Equal(t, "/run/user/1000/hypr/abc/.hyprpaper.sock", client.SocketPath())
}

func TestClient_Send(t *testing.T) {
	daemon, path := newFakeDaemon(t, okReply)
	client := NewClient(path, nil)

	response, err := client.Send(context.Background(), Preload{Path: "/walls/beach.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "ok", response)

	requests, _ := daemon.snapshot()
	assert.Equal(t, []string{"preload /walls/beach.jpg\n"}, requests)
}

func TestClient_SendUsesFreshConnectionPerCommand(t *testing.T) {
	daemon, path := newFakeDaemon(t, okReply)
	client := NewClient(path, nil)
	ctx := context.Background()

	_, err := client.Send(ctx, Preload{Path: "/w/a.jpg"})
	require.NoError(t, err)
	_, err = client.Send(ctx, Wallpaper{Path: "/w/a.jpg"})
	require.NoError(t, err)
	_, err = client.Send(ctx, UnloadAll())
	require.NoError(t, err)

	requests, conns := daemon.snapshot()
	assert.Equal(t, 3, conns)
	assert.Equal(t, []string{
		"preload /w/a.jpg\n",
		"wallpaper ,/w/a.jpg\n",
		"unload all\n",
	}, requests)
}

func TestClient_SendAcceptsEOF(t *testing.T) {
	_, path := newFakeDaemon(t, func(string) string { return "" })
	client := NewClient(path, nil)

	response, err := client.Send(context.Background(), Preload{Path: "/w/a.jpg"})
	require.NoError(t, err)
	assert.Empty(t, response)
}

func TestClient_SendRejected(t *testing.T) {
	_, path := newFakeDaemon(t, func(string) string {
		return "wallpaper failed (not preloaded)\n"
	})
	client := NewClient(path, nil)

	cmd := Wallpaper{Path: "/w/a.jpg"}
	response, err := client.Send(context.Background(), cmd)
	require.Error(t, err)
	assert.Equal(t, "wallpaper failed (not preloaded)", response)
	assert.ErrorIs(t, err, ErrRejected)

	var pe *ProtocolError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, cmd, pe.Command)
	assert.Contains(t, err.Error(), "wallpaper ,/w/a.jpg")
}

func TestClient_SendConnectionRefused(t *testing.T) {
	path := filepath.Join(shortTempDir(t), "missing.sock")
	client := NewClient(path, nil)

	cmd := Unload{Path: "/w/old.jpg"}
	_, err := client.Send(context.Background(), cmd)
	require.Error(t, err)

	var pe *ProtocolError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, cmd, pe.Command)
	assert.True(t, errors.Is(err, syscall.ENOENT) || errors.Is(err, syscall.ECONNREFUSED))
}

func TestClient_SendTimesOutWithoutResponse(t *testing.T) {
	path := filepath.Join(shortTempDir(t), "silent.sock")
	listener, err := net.Listen("unix", path)
	require.NoError(t, err)
	defer listener.Close()

	// Accept but never answer
	held := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err == nil {
			held <- conn
		}
	}()
	t.Cleanup(func() {
		select {
		case conn := <-held:
			conn.Close()
		default:
		}
	})

	client := NewClient(path, nil)
	client.SetTimeout(100 * time.Millisecond)

	start := time.Now()
	_, err = client.Send(context.Background(), Preload{Path: "/w/a.jpg"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)

	var netErr net.Error
	require.True(t, errors.As(err, &netErr))
	assert.True(t, netErr.Timeout())
}

func TestClient_SendCancelled(t *testing.T) {
	_, path := newFakeDaemon(t, okReply)
	client := NewClient(path, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Send(ctx, Preload{Path: "/w/a.jpg"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
