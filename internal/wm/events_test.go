package wm

import (
	"testing"

	"github.com/1broseidon/dwn/internal/config"
	"github.com/1broseidon/dwn/internal/platform"
	"github.com/1broseidon/dwn/internal/platform/platformtest"
)

func withKeys(keys ...config.KeyBinding) func(*config.Config) {
	return func(cfg *config.Config) { cfg.Keys = keys }
}

func TestKeyPress_RunsBinding(t *testing.T) {
	h := newHarness(t, withKeys(config.KeyBinding{Keys: config.StringList{"Mod1-b"}, Command: "togglebar"}))
	m := h.s.Selected()
	code := h.d.KeycodeFor("b")

	h.s.Handle(platform.KeyPress{Code: code, State: platform.Mod1 | h.d.NumLock})
	if m.ShowBar {
		t.Fatalf("expected the bar hidden despite numlock")
	}
	h.s.Handle(platform.KeyPress{Code: code, State: platform.Mod4})
	if m.ShowBar {
		t.Fatalf("expected no binding for Mod4-b")
	}
}

func TestKeyPress_Chord(t *testing.T) {
	h := newHarness(t, withKeys(config.KeyBinding{Keys: config.StringList{"Mod1-e", "t"}, Command: "viewex", Args: config.StringList{"2"}}))
	m := h.s.Selected()

	h.s.Handle(platform.KeyPress{Code: h.d.KeycodeFor("e"), State: platform.Mod1})
	if m.tagset() != 1 {
		t.Fatalf("chord must wait for its second key")
	}
	h.s.Handle(platform.KeyPress{Code: h.d.KeycodeFor("t")})
	if m.tagset() != 1<<2 {
		t.Fatalf("expected tag 3 after the chord, got %#x", m.tagset())
	}
}

func TestKeyRelease_EndsCombo(t *testing.T) {
	h := newHarness(t, nil)
	m := h.s.Selected()
	h.s.comboView(2)
	h.s.comboView(4)
	if m.tagset() != 6 {
		t.Fatalf("expected combo to add tags, got %#x", m.tagset())
	}
	h.s.Handle(platform.KeyRelease{})
	h.s.comboView(1)
	if m.tagset() != 1 {
		t.Fatalf("expected a fresh view after release, got %#x", m.tagset())
	}
}

func barItemFor(t *testing.T, s *State, m *Monitor, mask uint32) barItem {
	t.Helper()
	for _, it := range s.barItems(m) {
		if it.Click == config.ClickTagBar && it.Mask == mask {
			return it
		}
	}
	t.Fatalf("no bar item for tag mask %#x", mask)
	return barItem{}
}

func TestButtonPress_TagBar(t *testing.T) {
	h := newHarness(t, nil)
	m := h.s.Selected()

	it := barItemFor(t, h.s, m, 1<<2)
	h.s.Handle(platform.ButtonPress{Window: m.Bar, Button: platform.Button1, X: it.X + 1})
	if m.tagset() != 1<<2 {
		t.Fatalf("expected click to view tag 3, got %#x", m.tagset())
	}

	it = barItemFor(t, h.s, m, 1<<1)
	h.s.Handle(platform.ButtonPress{Window: m.Bar, Button: platform.Button3, X: it.X + 1})
	if m.tagset() != 1<<2|1<<1 {
		t.Fatalf("expected right click to toggle tag 2 in, got %#x", m.tagset())
	}
}

func TestButtonPress_TagBarMovesSelection(t *testing.T) {
	h := newHarness(t, nil)
	c := h.mapWindow(t, platformtest.Window{Class: "App"})
	m := h.s.Selected()

	it := barItemFor(t, h.s, m, 1<<4)
	h.s.Handle(platform.ButtonPress{Window: m.Bar, Button: platform.Button1, State: platform.Mod1, X: it.X + 1})
	if c.Tags != 1<<4 {
		t.Fatalf("expected Mod1 click to tag the client, got %#x", c.Tags)
	}
}

func TestButtonPress_ClientFocusesAndBinds(t *testing.T) {
	h := newHarness(t, nil)
	a := h.mapWindow(t, platformtest.Window{Class: "A"})
	b := h.mapWindow(t, platformtest.Window{Class: "B"})

	h.s.Handle(platform.ButtonPress{Window: a.Win, Button: platform.Button1})
	if h.s.Selected().Sel() != a {
		t.Fatalf("expected click to focus a")
	}
	if a.Floating {
		t.Fatalf("plain click must not run a binding")
	}

	h.s.Handle(platform.ButtonPress{Window: b.Win, Button: platform.Button2, State: platform.Mod1})
	if h.s.Selected().Sel() != b || !b.Floating {
		t.Fatalf("expected Mod1 middle click to focus and float b")
	}
}

func TestRootName_StatusAndSignals(t *testing.T) {
	h := newHarness(t, nil)
	m := h.s.Selected()

	h.d.Name = "12:00 | 57%"
	h.s.Handle(platform.PropertyNotify{Window: h.d.Root(), Atom: "WM_NAME"})
	if h.s.Status() != "12:00 | 57%" {
		t.Fatalf("unexpected status %q", h.s.Status())
	}
	segs := h.d.Win(m.Bar).Segments
	if len(segs) == 0 || segs[len(segs)-1].Text != "12:00 | 57%" {
		t.Fatalf("expected status drawn last on the bar, got %+v", segs)
	}

	h.d.Name = "fsignal:viewex i 3"
	h.s.Handle(platform.PropertyNotify{Window: h.d.Root(), Atom: "WM_NAME"})
	if m.tagset() != 1<<3 {
		t.Fatalf("expected fsignal to view tag 4, got %#x", m.tagset())
	}
	if h.s.Status() != "12:00 | 57%" {
		t.Fatalf("a signal must not replace the status, got %q", h.s.Status())
	}

	h.d.Name = "fsignal:setmfact f 1.3"
	h.s.Handle(platform.PropertyNotify{Window: h.d.Root(), Atom: "WM_NAME"})
	if m.MFact < 0.29 || m.MFact > 0.31 {
		t.Fatalf("expected mfact 0.3 from fsignal, got %v", m.MFact)
	}

	h.d.Name = "fsignal:spawn"
	h.s.Handle(platform.PropertyNotify{Window: h.d.Root(), Atom: "WM_NAME"})
	if h.s.Status() != "fsignal:spawn" {
		t.Fatalf("expected unknown signal shown as status, got %q", h.s.Status())
	}
	if len(h.spawned) != 0 {
		t.Fatalf("spawn must not be reachable through fsignal")
	}

	h.d.Name = ""
	h.s.Handle(platform.PropertyNotify{Window: h.d.Root(), Atom: "WM_NAME"})
	if h.s.Status() != Name+"-"+Version {
		t.Fatalf("expected default status, got %q", h.s.Status())
	}
}

func TestPropertyNotify_ClientUpdates(t *testing.T) {
	h := newHarness(t, nil)
	a := h.mapWindow(t, platformtest.Window{Class: "A", Title: "old"})
	h.mapWindow(t, platformtest.Window{Class: "B"})

	h.d.Win(a.Win).Title = "new"
	h.s.Handle(platform.PropertyNotify{Window: a.Win, Atom: "_NET_WM_NAME"})
	if a.Name != "new" {
		t.Fatalf("expected title update, got %q", a.Name)
	}

	h.d.Win(a.Win).WMHints = &platform.WMHints{Urgent: true}
	h.s.Handle(platform.PropertyNotify{Window: a.Win, Atom: "WM_HINTS"})
	if !a.Urgent {
		t.Fatalf("expected unfocused client marked urgent")
	}

	h.d.Win(a.Win).Types = []string{"_NET_WM_WINDOW_TYPE_DIALOG"}
	h.s.Handle(platform.PropertyNotify{Window: a.Win, Atom: "_NET_WM_WINDOW_TYPE"})
	if !a.Floating {
		t.Fatalf("expected dialog type to float the client")
	}
}

func TestClientMessage_Fullscreen(t *testing.T) {
	h := newHarness(t, nil)
	c := h.mapWindow(t, platformtest.Window{Class: "App"})
	fs := h.d.InternAtom("_NET_WM_STATE_FULLSCREEN")

	h.s.Handle(platform.ClientMessage{Window: c.Win, Type: "_NET_WM_STATE", Data: [5]uint32{1, fs}})
	if !c.Fullscreen {
		t.Fatalf("expected fullscreen on add")
	}
	h.s.Handle(platform.ClientMessage{Window: c.Win, Type: "_NET_WM_STATE", Data: [5]uint32{2, 0, fs}})
	if c.Fullscreen {
		t.Fatalf("expected toggle to leave fullscreen")
	}
}

func TestClientMessage_ActiveWindowSwitchesView(t *testing.T) {
	h := newHarness(t, nil)
	c := h.mapWindow(t, platformtest.Window{Class: "App"})
	h.s.tag(1 << 6)
	if c.visible() {
		t.Fatalf("expected client hidden on tag 7")
	}

	h.s.Handle(platform.ClientMessage{Window: c.Win, Type: "_NET_ACTIVE_WINDOW"})
	if h.s.Selected().tagset() != 1<<6 || h.s.Selected().Sel() != c {
		t.Fatalf("expected activation to view tag 7 and focus the client")
	}
}

func TestConfigureRequest(t *testing.T) {
	h := newHarness(t, nil)

	other := h.d.AddWindow(platformtest.Window{Class: "Unmanaged"})
	h.s.Handle(platform.ConfigureRequest{Window: other, X: 5, Y: 6, Width: 70, Height: 80,
		ValueMask: platform.ConfigX | platform.ConfigY | platform.ConfigWidth | platform.ConfigHeight})
	if got := h.d.Win(other).Rect; got != (platform.Rect{X: 5, Y: 6, Width: 70, Height: 80}) {
		t.Fatalf("expected request forwarded, got %+v", got)
	}

	tiled := h.mapWindow(t, platformtest.Window{Class: "A"})
	before := tiled.rect()
	h.d.Synthetic = nil
	h.s.Handle(platform.ConfigureRequest{Window: tiled.Win, X: 5, Y: 6, Width: 70, Height: 80,
		ValueMask: platform.ConfigX | platform.ConfigY | platform.ConfigWidth | platform.ConfigHeight})
	if tiled.rect() != before {
		t.Fatalf("tiled client must keep its geometry, got %+v", tiled.rect())
	}
	if len(h.d.Synthetic) == 0 {
		t.Fatalf("expected a synthetic ConfigureNotify")
	}

	h.s.toggleFloating(Arg{})
	h.s.Handle(platform.ConfigureRequest{Window: tiled.Win, X: 40, Y: 50, Width: 300, Height: 200,
		ValueMask: platform.ConfigX | platform.ConfigY | platform.ConfigWidth | platform.ConfigHeight})
	if tiled.rect() != (platform.Rect{X: 40, Y: 50, Width: 300, Height: 200}) {
		t.Fatalf("expected floating client to follow the request, got %+v", tiled.rect())
	}
	if got := h.d.Win(tiled.Win).Rect; got != tiled.rect() {
		t.Fatalf("expected window moved, got %+v", got)
	}
}

func TestConfigureNotify_RootResize(t *testing.T) {
	h := newHarness(t, nil)
	c := h.mapWindow(t, platformtest.Window{Class: "App"})
	h.s.toggleFullscreen(Arg{})

	h.d.HeadRects = []platform.Rect{{Width: 2560, Height: 1440}}
	h.s.Handle(platform.ConfigureNotify{Window: h.d.Root(), Width: 2560, Height: 1440})

	m := h.s.Selected()
	if m.M.Width != 2560 || m.W.Height != 1440-h.cfg.Appearance.BarHeight {
		t.Fatalf("expected monitor resized, got M=%+v W=%+v", m.M, m.W)
	}
	if c.W != 2560 || c.H != 1440 {
		t.Fatalf("expected fullscreen client refitted, got %+v", c.rect())
	}
}

func TestConfigureNotify_HeadRemoved(t *testing.T) {
	left := platform.Rect{Width: 960, Height: 1080}
	right := platform.Rect{X: 960, Width: 960, Height: 1080}
	h := newHarness(t, nil, left, right)
	h.s.focusMon(1)
	c := h.mapWindow(t, platformtest.Window{Class: "App"})
	if c.Mon.Num != 1 {
		t.Fatalf("expected client on the second monitor")
	}

	h.d.HeadRects = []platform.Rect{{Width: 1920, Height: 1080}}
	h.s.Handle(platform.ConfigureNotify{Window: h.d.Root(), Width: 1920, Height: 1080})
	if len(h.s.Monitors()) != 1 {
		t.Fatalf("expected one monitor left, got %d", len(h.s.Monitors()))
	}
	if c.Mon != h.s.Monitors()[0] || indexOf(c.Mon.clients, c.ID) < 0 {
		t.Fatalf("expected the client moved to the remaining monitor")
	}
}

func TestEnterNotify_FocusFollowsMouse(t *testing.T) {
	h := newHarness(t, nil)
	a := h.mapWindow(t, platformtest.Window{Class: "A"})
	h.mapWindow(t, platformtest.Window{Class: "B"})

	h.s.Handle(platform.EnterNotify{Window: a.Win, Mode: platform.NotifyNormal})
	if h.s.Selected().Sel() != a {
		t.Fatalf("expected entering a to focus it")
	}
}

func TestMotionNotify_SwitchesMonitor(t *testing.T) {
	left := platform.Rect{Width: 960, Height: 1080}
	right := platform.Rect{X: 960, Width: 960, Height: 1080}
	h := newHarness(t, nil, left, right)
	root := h.d.Root()

	h.s.Handle(platform.MotionNotify{Window: root, RootX: 100, RootY: 100})
	h.s.Handle(platform.MotionNotify{Window: root, RootX: 1200, RootY: 100})
	if h.s.Selected() != h.s.Monitors()[1] {
		t.Fatalf("expected pointer motion to select the second monitor")
	}
}

func TestFocusIn_RestoresSelection(t *testing.T) {
	h := newHarness(t, nil)
	a := h.mapWindow(t, platformtest.Window{Class: "A"})
	b := h.mapWindow(t, platformtest.Window{Class: "B"})

	h.d.Focused = a.Win
	h.s.Handle(platform.FocusIn{Window: a.Win})
	if h.d.Focused != b.Win {
		t.Fatalf("expected focus taken back to the selection")
	}
}
