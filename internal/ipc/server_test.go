package ipc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/dwn/internal/wm"
)

type fakeWM struct {
	mu    sync.Mutex
	ran   []string
	snap  wm.Snapshot
	fails error
}

func (f *fakeWM) Query(ctx context.Context) (wm.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.fails
}

func (f *fakeWM) Exec(ctx context.Context, name string, args []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == "bogus" {
		return fmt.Errorf("%w %q", wm.ErrUnknownCommand, name)
	}
	f.ran = append(f.ran, name+" "+strings.Join(args, " "))
	return f.fails
}

func startServer(t *testing.T, f *fakeWM) *Client {
	t.Helper()
	// Unix socket paths are length limited, so avoid the long test temp dir.
	dir, err := os.MkdirTemp("", "dwn-ipc")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	sock := filepath.Join(dir, "dwn.sock")

	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer(sock, f, nil)
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve returned %v, want context.Canceled", err)
			}
		case <-time.After(3 * time.Second):
			t.Errorf("Serve did not stop")
		}
		if _, err := os.Stat(sock); !os.IsNotExist(err) {
			t.Errorf("socket not removed on shutdown: %v", err)
		}
	})

	deadline := time.Now().Add(3 * time.Second)
	for {
		if info, err := os.Stat(sock); err == nil && info.Mode().Perm() == 0600 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not create socket")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return NewClientAt(sock)
}

func TestServer_Ping(t *testing.T) {
	c := startServer(t, &fakeWM{})
	data, err := c.Ping()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if !strings.HasPrefix(data.Version, wm.Name+"-") {
		t.Fatalf("unexpected version %q", data.Version)
	}
}

func TestServer_Run(t *testing.T) {
	f := &fakeWM{}
	c := startServer(t, f)

	if err := c.Run("view", "3"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := c.Run("togglebar"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	f.mu.Lock()
	got := strings.Join(f.ran, "|")
	f.mu.Unlock()
	if got != "view 3|togglebar " {
		t.Fatalf("unexpected commands %q", got)
	}

	err := c.Run("bogus")
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	if err := c.Run(""); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestServer_StateAndMonitors(t *testing.T) {
	f := &fakeWM{snap: wm.Snapshot{
		Version: "dwn-test",
		Tags:    []string{"1", "2"},
		Monitors: []wm.MonitorInfo{{
			Num: 0, Width: 1920, Height: 1080, Tags: "1", Layout: "tile", Selected: true,
			Clients: []wm.ClientInfo{{Window: 0x400001, Title: "term", Focused: true}},
		}},
	}}
	c := startServer(t, f)

	snap, err := c.State()
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if len(snap.Monitors) != 1 || len(snap.Monitors[0].Clients) != 1 || snap.Monitors[0].Clients[0].Title != "term" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	mons, err := c.Monitors()
	if err != nil {
		t.Fatalf("Monitors: %v", err)
	}
	if len(mons.Monitors) != 1 || mons.Monitors[0].Width != 1920 || mons.Monitors[0].Clients != nil {
		t.Fatalf("unexpected monitors %+v", mons)
	}
}

func TestServer_LoopStopped(t *testing.T) {
	c := startServer(t, &fakeWM{fails: wm.ErrStopped})
	if _, err := c.State(); err == nil || !strings.Contains(err.Error(), "not running") {
		t.Fatalf("expected stopped error, got %v", err)
	}
}

func TestServer_UnknownCommand(t *testing.T) {
	c := startServer(t, &fakeWM{})
	_, err := c.sendRequest(&Request{Command: "reload"})
	if err == nil || !strings.Contains(err.Error(), "Unknown command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestClient_NoServer(t *testing.T) {
	c := NewClientAt(filepath.Join(t.TempDir(), "missing.sock"))
	if _, err := c.Ping(); err == nil || !strings.Contains(err.Error(), "is dwn running") {
		t.Fatalf("expected connection error, got %v", err)
	}
}
