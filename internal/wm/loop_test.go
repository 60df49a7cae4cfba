package wm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/1broseidon/dwn/internal/platform"
	"github.com/1broseidon/dwn/internal/platform/platformtest"
)

func TestRun_DoAndQuit(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- h.s.Run(ctx) }()

	var tags uint32
	if err := h.s.Do(ctx, func(s *State) {
		s.view(1 << 3)
		tags = s.Selected().tagset()
	}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if tags != 1<<3 {
		t.Fatalf("expected view changed on the loop, got %#x", tags)
	}

	if err := h.s.Do(ctx, func(s *State) { s.quit(Arg{}) }); err != nil {
		t.Fatalf("Do quit: %v", err)
	}
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-ctx.Done():
		t.Fatalf("Run did not return after quit")
	}

	if err := h.s.Do(ctx, func(*State) {}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped after the loop exits, got %v", err)
	}
}

func TestRun_HandlesEvents(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- h.s.Run(ctx) }()

	id := h.d.AddWindow(platformtest.Window{Class: "App", Rect: platform.Rect{Width: 200, Height: 100}})
	h.d.Push(platform.MapRequest{Window: id})

	deadline := time.Now().Add(3 * time.Second)
	for {
		var managed bool
		if err := h.s.Do(ctx, func(s *State) { managed = s.winToClient(id) != nil }); err != nil {
			t.Fatalf("Do: %v", err)
		}
		if managed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("map request was never handled")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRun_ConnectionLost(t *testing.T) {
	h := newHarness(t, nil)
	h.d.Close()
	err := h.s.Run(context.Background())
	if err == nil {
		t.Fatalf("expected an error when the display goes away")
	}
}

func TestQueryAndExec(t *testing.T) {
	h := newHarness(t, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- h.s.Run(ctx) }()

	if err := h.s.Exec(ctx, "view", []string{"3"}); err != nil {
		t.Fatalf("Exec view: %v", err)
	}
	snap, err := h.s.Query(ctx)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(snap.Monitors) != 1 || snap.Monitors[0].Tags != "3" {
		t.Fatalf("expected tag 3 viewed, got %+v", snap.Monitors)
	}

	if err := h.s.Exec(ctx, "nosuchcommand", nil); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}

	if err := h.s.Exec(ctx, "quit", nil); err != nil {
		t.Fatalf("Exec quit: %v", err)
	}
	if err := <-errc; err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, err := h.s.Query(ctx); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestCleanup_ReleasesHiddenClients(t *testing.T) {
	h := newHarness(t, nil)
	a := h.mapWindow(t, platformtest.Window{Class: "St"})
	b := h.mapWindow(t, platformtest.Window{Class: "St"})
	want := map[platform.WindowID]platform.Rect{a.Win: a.rect(), b.Win: b.rect()}

	h.s.view(1 << 1)
	if r := h.d.Win(a.Win).Rect; r.X >= 0 {
		t.Fatalf("client on hidden tag still on screen: %+v", r)
	}

	h.s.Cleanup()

	for w, r := range want {
		win := h.d.Win(w)
		if win.Rect != r {
			t.Errorf("window %#x rect = %+v, want %+v", w, win.Rect, r)
		}
		if win.ClientState != platform.WithdrawnState {
			t.Errorf("window %#x state = %d, want withdrawn", w, win.ClientState)
		}
	}
	if n := len(h.s.Clients(h.s.Selected())); n != 0 {
		t.Errorf("%d clients still managed", n)
	}
	if len(h.d.KeyGrabs) != 0 {
		t.Errorf("key grabs left: %d", len(h.d.KeyGrabs))
	}
	if h.d.Focused != h.d.Root() || len(h.d.ClientList) != 0 {
		t.Errorf("focused=%#x client list=%v", h.d.Focused, h.d.ClientList)
	}
}

func TestDo_WaitsForAcceptedCall(t *testing.T) {
	h := newHarness(t, nil)
	runCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	errc := make(chan error, 1)
	go func() { errc <- h.s.Run(runCtx) }()

	ctx, cancel := context.WithCancel(runCtx)
	var snap Snapshot
	err := h.s.Do(ctx, func(s *State) {
		cancel()
		time.Sleep(20 * time.Millisecond)
		snap = s.Snapshot()
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(snap.Monitors) == 0 {
		t.Fatalf("expected Do to return after the call finished")
	}

	stop()
	if err := <-errc; !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		t.Fatalf("unexpected Run error %v", err)
	}
}
