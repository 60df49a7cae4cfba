package platform

// Event is one display-server event. The concrete types below are the only
// implementations; dispatch is a type switch.
type Event interface {
	event()
}

// ConfigureRequest value mask bits.
const (
	ConfigX           uint16 = 1 << 0
	ConfigY           uint16 = 1 << 1
	ConfigWidth       uint16 = 1 << 2
	ConfigHeight      uint16 = 1 << 3
	ConfigBorderWidth uint16 = 1 << 4
	ConfigSibling     uint16 = 1 << 5
	ConfigStackMode   uint16 = 1 << 6
)

// EnterNotify mode and detail values the dispatcher filters on.
const (
	NotifyNormal   byte = 0
	NotifyInferior byte = 2
)

type MapRequest struct {
	Window WindowID
}

type ConfigureRequest struct {
	Window      WindowID
	X, Y        int
	Width       int
	Height      int
	BorderWidth int
	Sibling     WindowID
	StackMode   byte
	ValueMask   uint16
}

type ConfigureNotify struct {
	Window WindowID
	Width  int
	Height int
}

type DestroyNotify struct {
	Window WindowID
}

type UnmapNotify struct {
	Window    WindowID
	SendEvent bool
}

type EnterNotify struct {
	Window       WindowID
	Mode, Detail byte
	RootX, RootY int
}

type MotionNotify struct {
	Window       WindowID
	RootX, RootY int
	Time         uint32
}

type ButtonPress struct {
	Window       WindowID
	Button       byte
	State        uint16
	X, Y         int
	RootX, RootY int
	Time         uint32
}

type ButtonRelease struct {
	Window WindowID
	Button byte
	State  uint16
}

type KeyPress struct {
	Code  Keycode
	State uint16
}

type KeyRelease struct {
	Code  Keycode
	State uint16
}

type PropertyNotify struct {
	Window  WindowID
	Atom    string
	Deleted bool
}

type ClientMessage struct {
	Window WindowID
	Type   string
	Data   [5]uint32
}

type FocusIn struct {
	Window WindowID
}

type Expose struct {
	Window WindowID
	Count  int
}

type MappingNotify struct {
	Keyboard bool
}

func (MapRequest) event()       {}
func (ConfigureRequest) event() {}
func (ConfigureNotify) event()  {}
func (DestroyNotify) event()    {}
func (UnmapNotify) event()      {}
func (EnterNotify) event()      {}
func (MotionNotify) event()     {}
func (ButtonPress) event()      {}
func (ButtonRelease) event()    {}
func (KeyPress) event()         {}
func (KeyRelease) event()       {}
func (PropertyNotify) event()   {}
func (ClientMessage) event()    {}
func (FocusIn) event()          {}
func (Expose) event()           {}
func (MappingNotify) event()    {}
