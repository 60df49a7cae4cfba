// Package platformtest provides an in-memory platform.Display for tests.
package platformtest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/dwn/internal/platform"
)

// Window is the fake server-side state of one window.
type Window struct {
	ID               platform.WindowID
	Rect             platform.Rect
	Border           int
	BorderColor      uint32
	Mapped           bool
	OverrideRedirect bool

	Class, Instance string
	Title           string
	Types           []string
	States          []string
	TransientFor    platform.WindowID
	SizeHints       *platform.SizeHints
	WMHints         *platform.WMHints
	Decorated       *bool
	PID             int
	// Protocols lists the WM_PROTOCOLS the client advertises.
	Protocols []string

	ClientState    int
	HasClientState bool
	Fullscreen     bool
	Props          map[string]uint32
	Killed         bool
	Bar            bool
	Segments       []platform.Segment
}

// KeyGrab records one passive key grab.
type KeyGrab struct {
	Mods uint16
	Code platform.Keycode
}

// Display is a single-screen fake. It is not safe for concurrent mutation;
// only NextEvent may be called from another goroutine.
type Display struct {
	ScreenW, ScreenH int
	HeadRects        []platform.Rect
	Windows          map[platform.WindowID]*Window

	Focused        platform.WindowID
	Active         platform.WindowID
	ClientList     []platform.WindowID
	CurrentDesktop int
	Desktops       []string
	WMName         string
	Name           string

	KeyGrabs     []KeyGrab
	ButtonGrabs  map[platform.WindowID][]platform.ButtonGrab
	NumLock      uint16
	ScrollLock   uint16
	SentProtos   []string
	Raised       []platform.WindowID
	StackedBelow [][2]platform.WindowID
	PointerX     int
	PointerY     int
	PointerGrab  bool
	Synthetic    []platform.WindowID

	// SetupErr, when set, is returned by SetupEWMH.
	SetupErr error

	events chan platform.Event
	keys   map[string]platform.Keycode
	nextID platform.WindowID
	root   platform.WindowID
	atoms  []string
}

// New returns a fake display of the given size with one head per rect, or a
// single head covering the screen.
func New(w, h int, heads ...platform.Rect) *Display {
	if len(heads) == 0 {
		heads = []platform.Rect{{X: 0, Y: 0, Width: w, Height: h}}
	}
	d := &Display{
		ScreenW:     w,
		ScreenH:     h,
		HeadRects:   heads,
		Windows:     make(map[platform.WindowID]*Window),
		ButtonGrabs: make(map[platform.WindowID][]platform.ButtonGrab),
		NumLock:     platform.Mod2,
		events:      make(chan platform.Event, 256),
		keys:        make(map[string]platform.Keycode),
		nextID:      0x100,
		root:        1,
	}
	d.Windows[d.root] = &Window{ID: d.root, Rect: platform.Rect{Width: w, Height: h}, Mapped: true, Props: map[string]uint32{}}
	return d
}

// AddWindow registers a client window and returns its id. Mapped is left as
// given so tests can model pre-existing windows for a scan.
func (d *Display) AddWindow(w Window) platform.WindowID {
	d.nextID++
	w.ID = d.nextID
	if w.Props == nil {
		w.Props = map[string]uint32{}
	}
	d.Windows[w.ID] = &w
	return w.ID
}

// Destroy removes a window as the server would after DestroyWindow.
func (d *Display) Destroy(w platform.WindowID) {
	delete(d.Windows, w)
}

// Push queues an event for NextEvent.
func (d *Display) Push(ev platform.Event) {
	d.events <- ev
}

// Win returns the fake window or nil.
func (d *Display) Win(w platform.WindowID) *Window {
	return d.Windows[w]
}

// KeycodeFor returns the code ParseKey assigned to keysym.
func (d *Display) KeycodeFor(keysym string) platform.Keycode {
	return d.code(keysym)
}

func (d *Display) code(keysym string) platform.Keycode {
	if c, ok := d.keys[keysym]; ok {
		return c
	}
	c := platform.Keycode(10 + len(d.keys))
	d.keys[keysym] = c
	return c
}

// Renderer.

func (d *Display) TextWidth(s string) int { return 6 * len(s) }

func (d *Display) DrawBar(bar platform.WindowID, width, height int, segs []platform.Segment) {
	if w := d.Windows[bar]; w != nil {
		w.Segments = append([]platform.Segment(nil), segs...)
	}
}

// Keyboard.

var modNames = map[string]uint16{
	"shift":   platform.ModShift,
	"lock":    platform.ModLock,
	"control": platform.ModControl,
	"mod1":    platform.Mod1,
	"mod2":    platform.Mod2,
	"mod3":    platform.Mod3,
	"mod4":    platform.Mod4,
	"mod5":    platform.Mod5,
	"any":     platform.ModAny,
}

func (d *Display) ParseKey(spec string) (uint16, []platform.Keycode, error) {
	parts := strings.Split(spec, "-")
	var mods uint16
	for _, p := range parts[:len(parts)-1] {
		m, ok := modNames[strings.ToLower(p)]
		if !ok {
			return 0, nil, fmt.Errorf("unknown modifier %q in %q", p, spec)
		}
		mods |= m
	}
	sym := parts[len(parts)-1]
	if sym == "" {
		return 0, nil, fmt.Errorf("missing key in %q", spec)
	}
	return mods, []platform.Keycode{d.code(sym)}, nil
}

func (d *Display) GrabKey(mods uint16, code platform.Keycode) {
	d.KeyGrabs = append(d.KeyGrabs, KeyGrab{Mods: mods, Code: code})
}

func (d *Display) UngrabKeys()            { d.KeyGrabs = nil }
func (d *Display) NumLockMask() uint16    { return d.NumLock }
func (d *Display) ScrollLockMask() uint16 { return d.ScrollLock }

// Display.

func (d *Display) Root() platform.WindowID { return d.root }
func (d *Display) ScreenSize() (int, int)  { return d.ScreenW, d.ScreenH }

func (d *Display) Heads() ([]platform.Rect, error) {
	return append([]platform.Rect(nil), d.HeadRects...), nil
}

var errClosed = errors.New("platformtest: display closed")

func (d *Display) NextEvent() (platform.Event, error) {
	ev, ok := <-d.events
	if !ok {
		return nil, errClosed
	}
	return ev, nil
}

func (d *Display) Sync() {}

// Close ends the event stream.
func (d *Display) Close() {
	defer func() { _ = recover() }()
	close(d.events)
}

func (d *Display) Attributes(w platform.WindowID) (platform.Attributes, error) {
	win := d.Windows[w]
	if win == nil {
		return platform.Attributes{}, fmt.Errorf("BadWindow %#x", w)
	}
	return platform.Attributes{
		Rect:             win.Rect,
		BorderWidth:      win.Border,
		OverrideRedirect: win.OverrideRedirect,
		Viewable:         win.Mapped,
	}, nil
}

func (d *Display) TopLevelWindows() ([]platform.WindowID, error) {
	var out []platform.WindowID
	for id := d.nextID; id > 0x100; id-- {
		if w := d.Windows[id]; w != nil && !w.Bar {
			out = append([]platform.WindowID{id}, out...)
		}
	}
	return out, nil
}

func (d *Display) TransientFor(w platform.WindowID) (platform.WindowID, bool) {
	if win := d.Windows[w]; win != nil && win.TransientFor != platform.None {
		return win.TransientFor, true
	}
	return platform.None, false
}

func (d *Display) Class(w platform.WindowID) (string, string) {
	if win := d.Windows[w]; win != nil {
		return win.Class, win.Instance
	}
	return "", ""
}

func (d *Display) Title(w platform.WindowID) string {
	if win := d.Windows[w]; win != nil {
		return win.Title
	}
	return ""
}

func (d *Display) WindowTypes(w platform.WindowID) []string {
	if win := d.Windows[w]; win != nil {
		return win.Types
	}
	return nil
}

func (d *Display) WindowStates(w platform.WindowID) []string {
	if win := d.Windows[w]; win != nil {
		return win.States
	}
	return nil
}

func (d *Display) ClientState(w platform.WindowID) (int, bool) {
	if win := d.Windows[w]; win != nil && win.HasClientState {
		return win.ClientState, true
	}
	return 0, false
}

func (d *Display) SizeHints(w platform.WindowID) (platform.SizeHints, bool) {
	if win := d.Windows[w]; win != nil && win.SizeHints != nil {
		return *win.SizeHints, true
	}
	return platform.SizeHints{}, false
}

func (d *Display) WMHints(w platform.WindowID) (platform.WMHints, bool) {
	if win := d.Windows[w]; win != nil && win.WMHints != nil {
		return *win.WMHints, true
	}
	return platform.WMHints{}, false
}

func (d *Display) SetUrgent(w platform.WindowID, urgent bool) {
	if win := d.Windows[w]; win != nil {
		if win.WMHints == nil {
			win.WMHints = &platform.WMHints{}
		}
		win.WMHints.Urgent = urgent
	}
}

func (d *Display) Decorated(w platform.WindowID) (bool, bool) {
	if win := d.Windows[w]; win != nil && win.Decorated != nil {
		return *win.Decorated, true
	}
	return false, false
}

func (d *Display) PID(w platform.WindowID) int {
	if win := d.Windows[w]; win != nil {
		return win.PID
	}
	return 0
}

// InternAtom returns a stable fake atom id for name.
func (d *Display) InternAtom(name string) uint32 {
	for i, a := range d.atoms {
		if a == name {
			return uint32(i + 1)
		}
	}
	d.atoms = append(d.atoms, name)
	return uint32(len(d.atoms))
}

func (d *Display) AtomName(atom uint32) string {
	if atom == 0 || int(atom) > len(d.atoms) {
		return ""
	}
	return d.atoms[atom-1]
}

func (d *Display) MoveResize(w platform.WindowID, r platform.Rect) {
	if win := d.Windows[w]; win != nil {
		win.Rect = r
	}
}

func (d *Display) ConfigureClient(w platform.WindowID, r platform.Rect, bw int) {
	if win := d.Windows[w]; win != nil {
		win.Rect = r
		win.Border = bw
	}
}

func (d *Display) SetBorderWidth(w platform.WindowID, bw int) {
	if win := d.Windows[w]; win != nil {
		win.Border = bw
	}
}

func (d *Display) SetBorderColor(w platform.WindowID, pixel uint32) {
	if win := d.Windows[w]; win != nil {
		win.BorderColor = pixel
	}
}

func (d *Display) SendConfigureNotify(w platform.WindowID, r platform.Rect, bw int) {
	d.Synthetic = append(d.Synthetic, w)
}

func (d *Display) ForwardConfigure(ev platform.ConfigureRequest) {
	win := d.Windows[ev.Window]
	if win == nil {
		return
	}
	if ev.ValueMask&platform.ConfigX != 0 {
		win.Rect.X = ev.X
	}
	if ev.ValueMask&platform.ConfigY != 0 {
		win.Rect.Y = ev.Y
	}
	if ev.ValueMask&platform.ConfigWidth != 0 {
		win.Rect.Width = ev.Width
	}
	if ev.ValueMask&platform.ConfigHeight != 0 {
		win.Rect.Height = ev.Height
	}
	if ev.ValueMask&platform.ConfigBorderWidth != 0 {
		win.Border = ev.BorderWidth
	}
}

func (d *Display) Map(w platform.WindowID) {
	if win := d.Windows[w]; win != nil {
		win.Mapped = true
	}
}

func (d *Display) Unmap(w platform.WindowID) {
	if win := d.Windows[w]; win != nil {
		win.Mapped = false
	}
}

func (d *Display) Raise(w platform.WindowID) {
	d.Raised = append(d.Raised, w)
}

func (d *Display) StackBelow(w, sibling platform.WindowID) {
	d.StackedBelow = append(d.StackedBelow, [2]platform.WindowID{w, sibling})
}

func (d *Display) SelectClientInput(w platform.WindowID) {}

func (d *Display) SetClientState(w platform.WindowID, state int) {
	if win := d.Windows[w]; win != nil {
		win.ClientState = state
		win.HasClientState = true
	}
}

func (d *Display) SetFocus(w platform.WindowID, input bool) {
	d.Active = w
	if input {
		d.Focused = w
	}
}

func (d *Display) FocusRoot() {
	d.Focused = d.root
	d.Active = platform.None
}

func (d *Display) SendProtocol(w platform.WindowID, protocol string) bool {
	win := d.Windows[w]
	if win == nil {
		return false
	}
	for _, p := range win.Protocols {
		if p == protocol {
			d.SentProtos = append(d.SentProtos, fmt.Sprintf("%s:%#x", protocol, w))
			return true
		}
	}
	return false
}

func (d *Display) KillClient(w platform.WindowID) {
	if win := d.Windows[w]; win != nil {
		win.Killed = true
	}
}

func (d *Display) SetupEWMH(wmName string, desktops []string) error {
	if d.SetupErr != nil {
		return d.SetupErr
	}
	d.WMName = wmName
	d.Desktops = append([]string(nil), desktops...)
	return nil
}

func (d *Display) SetClientList(ws []platform.WindowID) {
	d.ClientList = append([]platform.WindowID(nil), ws...)
}

func (d *Display) SetCurrentDesktop(n int) { d.CurrentDesktop = n }

func (d *Display) SetFullscreenState(w platform.WindowID, on bool) {
	if win := d.Windows[w]; win != nil {
		win.Fullscreen = on
	}
}

func (d *Display) Cardinal(w platform.WindowID, name string) (uint32, bool) {
	win := d.Windows[w]
	if win == nil {
		return 0, false
	}
	v, ok := win.Props[name]
	return v, ok
}

func (d *Display) SetCardinal(w platform.WindowID, name string, v uint32) {
	if win := d.Windows[w]; win != nil {
		win.Props[name] = v
	}
}

func (d *Display) RootName() string { return d.Name }

func (d *Display) SetRootName(name string) error {
	d.Name = name
	return nil
}

func (d *Display) QueryPointer() (int, int, bool) { return d.PointerX, d.PointerY, true }

func (d *Display) WarpPointer(w platform.WindowID, x, y int) {
	base := platform.Rect{}
	if win := d.Windows[w]; win != nil && w != d.root {
		base = win.Rect
	}
	d.PointerX, d.PointerY = base.X+x, base.Y+y
}

func (d *Display) GrabPointer(c platform.Cursor) bool {
	d.PointerGrab = true
	return true
}

func (d *Display) UngrabPointer() { d.PointerGrab = false }
func (d *Display) ReplayPointer() {}

func (d *Display) GrabButtons(w platform.WindowID, focused bool, grabs []platform.ButtonGrab) {
	if !focused {
		d.ButtonGrabs[w] = []platform.ButtonGrab{{Mods: platform.ModAny, Button: platform.AnyButton}}
		return
	}
	d.ButtonGrabs[w] = append([]platform.ButtonGrab(nil), grabs...)
}

func (d *Display) CreateBar(r platform.Rect) platform.WindowID {
	d.nextID++
	id := d.nextID
	d.Windows[id] = &Window{ID: id, Rect: r, Mapped: true, OverrideRedirect: true, Bar: true, Props: map[string]uint32{}}
	return id
}

var _ platform.Display = (*Display)(nil)
