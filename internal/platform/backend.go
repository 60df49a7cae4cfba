package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// None is the zero window.
const None WindowID = 0

// Keycode is a hardware key code as reported by the display server.
type Keycode byte

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Intersect returns the area shared by r and o.
func (r Rect) Intersect(o Rect) int {
	w := min(r.X+r.Width, o.X+o.Width) - max(r.X, o.X)
	h := min(r.Y+r.Height, o.Y+o.Height) - max(r.Y, o.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Attributes is the subset of window attributes the window manager reads.
type Attributes struct {
	Rect
	BorderWidth      int
	OverrideRedirect bool
	Viewable         bool
}

// SizeHints mirrors WM_NORMAL_HINTS. Has* report which fields the client set.
type SizeHints struct {
	HasBase   bool
	HasMin    bool
	HasMax    bool
	HasInc    bool
	HasAspect bool

	BaseWidth, BaseHeight int
	MinWidth, MinHeight   int
	MaxWidth, MaxHeight   int
	WidthInc, HeightInc   int

	MinAspectNum, MinAspectDen int
	MaxAspectNum, MaxAspectDen int
}

// WMHints mirrors the parts of WM_HINTS the window manager acts on.
type WMHints struct {
	Urgent   bool
	HasInput bool
	Input    bool
}

// ICCCM WM_STATE values.
const (
	WithdrawnState = 0
	NormalState    = 1
	IconicState    = 3
)

// Modifier masks as carried in key and button event state.
const (
	ModShift   uint16 = 1 << 0
	ModLock    uint16 = 1 << 1
	ModControl uint16 = 1 << 2
	Mod1       uint16 = 1 << 3
	Mod2       uint16 = 1 << 4
	Mod3       uint16 = 1 << 5
	Mod4       uint16 = 1 << 6
	Mod5       uint16 = 1 << 7
	ModAny     uint16 = 1 << 15
)

// Pointer buttons.
const (
	AnyButton byte = 0
	Button1   byte = 1
	Button2   byte = 2
	Button3   byte = 3
	Button4   byte = 4
	Button5   byte = 5
)

// Cursor selects one of the cursors the adapter preloads.
type Cursor int

const (
	CursorNormal Cursor = iota
	CursorResize
	CursorMove
)

// ButtonGrab is a passive button grab on a client window.
type ButtonGrab struct {
	Mods   uint16
	Button byte
}

// Segment is one run of text painted on the bar.
type Segment struct {
	X, Width int
	Text     string
	Fg, Bg   uint32
	// Indicator draws the small occupied-tag square in the top-left corner.
	Indicator       bool
	IndicatorFilled bool
}

// Renderer is the text-measurement and blit surface used by the bar.
type Renderer interface {
	TextWidth(s string) int
	DrawBar(bar WindowID, width, height int, segs []Segment)
}

// Keyboard resolves and grabs key bindings.
type Keyboard interface {
	// ParseKey turns a binding such as "Mod4-Shift-Return" into a modifier
	// mask and every keycode that produces the keysym.
	ParseKey(spec string) (uint16, []Keycode, error)
	GrabKey(mods uint16, code Keycode)
	UngrabKeys()
	NumLockMask() uint16
	ScrollLockMask() uint16
}

// Display abstracts the window-system operations the window manager needs.
// The X11 implementation lives in internal/x11; tests use platformtest.
type Display interface {
	Renderer
	Keyboard

	Root() WindowID
	ScreenSize() (int, int)
	Heads() ([]Rect, error)

	// NextEvent blocks until the next event arrives. It returns an error
	// only when the connection is gone.
	NextEvent() (Event, error)
	Sync()
	Close()

	Attributes(w WindowID) (Attributes, error)
	TopLevelWindows() ([]WindowID, error)
	TransientFor(w WindowID) (WindowID, bool)
	Class(w WindowID) (class, instance string)
	Title(w WindowID) string
	WindowTypes(w WindowID) []string
	WindowStates(w WindowID) []string
	ClientState(w WindowID) (int, bool)
	SizeHints(w WindowID) (SizeHints, bool)
	WMHints(w WindowID) (WMHints, bool)
	SetUrgent(w WindowID, urgent bool)
	Decorated(w WindowID) (decorated, ok bool)
	PID(w WindowID) int
	AtomName(atom uint32) string

	MoveResize(w WindowID, r Rect)
	ConfigureClient(w WindowID, r Rect, bw int)
	SetBorderWidth(w WindowID, bw int)
	SetBorderColor(w WindowID, pixel uint32)
	SendConfigureNotify(w WindowID, r Rect, bw int)
	ForwardConfigure(ev ConfigureRequest)
	Map(w WindowID)
	Unmap(w WindowID)
	Raise(w WindowID)
	StackBelow(w, sibling WindowID)
	SelectClientInput(w WindowID)
	SetClientState(w WindowID, state int)

	// SetFocus publishes w as _NET_ACTIVE_WINDOW and, when input is set,
	// gives it the input focus.
	SetFocus(w WindowID, input bool)
	FocusRoot()
	SendProtocol(w WindowID, protocol string) bool
	KillClient(w WindowID)

	SetupEWMH(wmName string, desktops []string) error
	SetClientList(ws []WindowID)
	SetCurrentDesktop(n int)
	SetFullscreenState(w WindowID, on bool)

	Cardinal(w WindowID, name string) (uint32, bool)
	SetCardinal(w WindowID, name string, v uint32)
	RootName() string
	SetRootName(name string) error

	QueryPointer() (x, y int, ok bool)
	WarpPointer(w WindowID, x, y int)
	GrabPointer(c Cursor) bool
	UngrabPointer()
	ReplayPointer()
	GrabButtons(w WindowID, focused bool, grabs []ButtonGrab)

	CreateBar(r Rect) WindowID
}
