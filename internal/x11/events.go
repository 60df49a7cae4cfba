package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/dwn/internal/platform"
)

// unmapNotify keeps the send_event bit that the generated decoder drops.
// ICCCM clients withdraw by sending a synthetic UnmapNotify to the root.
type unmapNotify struct {
	xproto.UnmapNotifyEvent
	synthetic bool
}

func init() {
	decode := xgb.NewEventFuncs[xproto.UnmapNotify]
	xgb.NewEventFuncs[xproto.UnmapNotify] = func(buf []byte) xgb.Event {
		return unmapNotify{
			UnmapNotifyEvent: decode(buf).(xproto.UnmapNotifyEvent),
			synthetic:        buf[0]&0x80 != 0,
		}
	}
}

// NextEvent blocks until the next event the window manager handles. X
// errors delivered in between are logged unless benign.
func (d *Display) NextEvent() (platform.Event, error) {
	for {
		ev, xerr := d.conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, errClosed
		}
		if xerr != nil {
			d.logXError(xerr)
			continue
		}
		if out := d.translate(ev); out != nil {
			return out, nil
		}
	}
}

func (d *Display) translate(ev xgb.Event) platform.Event {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return platform.MapRequest{Window: platform.WindowID(e.Window)}
	case xproto.ConfigureRequestEvent:
		return platform.ConfigureRequest{
			Window:      platform.WindowID(e.Window),
			X:           int(e.X),
			Y:           int(e.Y),
			Width:       int(e.Width),
			Height:      int(e.Height),
			BorderWidth: int(e.BorderWidth),
			Sibling:     platform.WindowID(e.Sibling),
			StackMode:   e.StackMode,
			ValueMask:   e.ValueMask,
		}
	case xproto.ConfigureNotifyEvent:
		return platform.ConfigureNotify{
			Window: platform.WindowID(e.Window),
			Width:  int(e.Width),
			Height: int(e.Height),
		}
	case xproto.DestroyNotifyEvent:
		return platform.DestroyNotify{Window: platform.WindowID(e.Window)}
	case unmapNotify:
		return platform.UnmapNotify{Window: platform.WindowID(e.Window), SendEvent: e.synthetic}
	case xproto.EnterNotifyEvent:
		return platform.EnterNotify{
			Window: platform.WindowID(e.Event),
			Mode:   e.Mode,
			Detail: e.Detail,
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
		}
	case xproto.MotionNotifyEvent:
		return platform.MotionNotify{
			Window: platform.WindowID(e.Event),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
			Time:   uint32(e.Time),
		}
	case xproto.ButtonPressEvent:
		return platform.ButtonPress{
			Window: platform.WindowID(e.Event),
			Button: byte(e.Detail),
			State:  e.State,
			X:      int(e.EventX),
			Y:      int(e.EventY),
			RootX:  int(e.RootX),
			RootY:  int(e.RootY),
			Time:   uint32(e.Time),
		}
	case xproto.ButtonReleaseEvent:
		return platform.ButtonRelease{Window: platform.WindowID(e.Event), Button: byte(e.Detail), State: e.State}
	case xproto.KeyPressEvent:
		return platform.KeyPress{Code: platform.Keycode(e.Detail), State: e.State}
	case xproto.KeyReleaseEvent:
		return platform.KeyRelease{Code: platform.Keycode(e.Detail), State: e.State}
	case xproto.PropertyNotifyEvent:
		return platform.PropertyNotify{
			Window:  platform.WindowID(e.Window),
			Atom:    d.atomName(e.Atom),
			Deleted: e.State == xproto.PropertyDelete,
		}
	case xproto.ClientMessageEvent:
		cm := platform.ClientMessage{Window: platform.WindowID(e.Window), Type: d.atomName(e.Type)}
		if e.Format == 32 {
			copy(cm.Data[:], e.Data.Data32)
		}
		return cm
	case xproto.FocusInEvent:
		return platform.FocusIn{Window: platform.WindowID(e.Event)}
	case xproto.ExposeEvent:
		return platform.Expose{Window: platform.WindowID(e.Window), Count: int(e.Count)}
	case xproto.MappingNotifyEvent:
		kbd := e.Request == xproto.MappingKeyboard
		if kbd || e.Request == xproto.MappingModifier {
			keyMap, modMap := keybind.MapsGet(d.XUtil)
			keybind.KeyMapSet(d.XUtil, keyMap)
			keybind.ModMapSet(d.XUtil, modMap)
			d.updateLockMasks()
		}
		return platform.MappingNotify{Keyboard: kbd}
	}
	return nil
}

func (d *Display) atomName(a xproto.Atom) string {
	name, err := xprop.AtomName(d.XUtil, a)
	if err != nil {
		return ""
	}
	return name
}
