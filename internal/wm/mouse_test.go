package wm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/1broseidon/dwn/internal/platform"
	"github.com/1broseidon/dwn/internal/platform/platformtest"
)

func TestMoveMouse_DefersUnrelatedEvents(t *testing.T) {
	h := newHarness(t, nil)
	a := h.mapWindow(t, platformtest.Window{Class: "A"})
	b := h.mapWindow(t, platformtest.Window{Class: "B"})
	if h.s.Selected().Sel() != b {
		t.Fatalf("expected the newest client selected")
	}

	h.d.Destroy(a.Win)
	h.d.Push(platform.DestroyNotify{Window: a.Win})
	h.d.Push(platform.MotionNotify{Window: h.d.Root(), RootX: 10, RootY: 10, Time: 100})
	h.d.Push(platform.ButtonRelease{Window: h.d.Root(), Button: platform.Button1})
	h.s.moveMouse(Arg{})

	if h.d.PointerGrab {
		t.Fatalf("expected the pointer released after the drag")
	}
	if len(h.s.pending) != 1 {
		t.Fatalf("expected the destroy queued for the main loop, have %d pending", len(h.s.pending))
	}
	for ev, ok := h.s.popPending(); ok; ev, ok = h.s.popPending() {
		h.s.Handle(ev)
	}
	if h.s.winToClient(a.Win) != nil || len(h.s.clients) != 1 {
		t.Fatalf("expected the destroyed window unmanaged, have %d clients", len(h.s.clients))
	}
	if got := ids(h.s.Clients(h.s.Selected())); len(got) != 1 || got[0] != b.ID {
		t.Fatalf("unexpected client list %v", got)
	}
}

func TestRun_HandlesPendingFirst(t *testing.T) {
	h := newHarness(t, nil)
	a := h.mapWindow(t, platformtest.Window{Class: "A"})
	h.d.Destroy(a.Win)
	h.s.pending = append(h.s.pending, platform.DestroyNotify{Window: a.Win})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- h.s.Run(ctx) }()

	var managed bool
	if err := h.s.Do(ctx, func(s *State) { managed = s.winToClient(a.Win) != nil }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if managed {
		t.Fatalf("expected the deferred destroy handled before queued calls")
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
