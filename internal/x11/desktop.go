package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/dwn/internal/platform"
)

// supported is published as _NET_SUPPORTED.
var supported = []string{
	"_NET_SUPPORTED",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_CLIENT_LIST",
	"_NET_DESKTOP_NAMES",
	"_NET_DESKTOP_VIEWPORT",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_CURRENT_DESKTOP",
}

// SetupEWMH creates the supporting window and publishes the root
// properties pagers and bars read.
func (d *Display) SetupEWMH(wmName string, desktops []string) error {
	win, err := xwindow.Create(d.XUtil, d.root)
	if err != nil {
		return fmt.Errorf("create check window: %w", err)
	}
	d.check = win.Id

	if err := ewmh.SupportingWmCheckSet(d.XUtil, d.root, win.Id); err != nil {
		return fmt.Errorf("set _NET_SUPPORTING_WM_CHECK: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(d.XUtil, win.Id, win.Id); err != nil {
		return fmt.Errorf("set _NET_SUPPORTING_WM_CHECK: %w", err)
	}
	if err := ewmh.WmNameSet(d.XUtil, win.Id, wmName); err != nil {
		return fmt.Errorf("set _NET_WM_NAME: %w", err)
	}
	if err := ewmh.SupportedSet(d.XUtil, supported); err != nil {
		return fmt.Errorf("set _NET_SUPPORTED: %w", err)
	}
	if err := ewmh.NumberOfDesktopsSet(d.XUtil, uint(len(desktops))); err != nil {
		return fmt.Errorf("set _NET_NUMBER_OF_DESKTOPS: %w", err)
	}
	if err := ewmh.DesktopNamesSet(d.XUtil, desktops); err != nil {
		return fmt.Errorf("set _NET_DESKTOP_NAMES: %w", err)
	}
	if err := ewmh.DesktopViewportSet(d.XUtil, []ewmh.DesktopViewport{{X: 0, Y: 0}}); err != nil {
		return fmt.Errorf("set _NET_DESKTOP_VIEWPORT: %w", err)
	}
	d.SetCurrentDesktop(0)
	d.SetClientList(nil)
	return nil
}

// SetClientList replaces _NET_CLIENT_LIST.
func (d *Display) SetClientList(ws []platform.WindowID) {
	if len(ws) == 0 {
		d.deleteRootProp("_NET_CLIENT_LIST")
		return
	}
	wins := make([]xproto.Window, len(ws))
	for i, w := range ws {
		wins[i] = xproto.Window(w)
	}
	if err := ewmh.ClientListSet(d.XUtil, wins); err != nil {
		d.logger.Debug("set _NET_CLIENT_LIST", "error", err)
	}
}

func (d *Display) SetCurrentDesktop(n int) {
	if err := ewmh.CurrentDesktopSet(d.XUtil, uint(n)); err != nil {
		d.logger.Debug("set _NET_CURRENT_DESKTOP", "error", err)
	}
}

// SetFullscreenState sets or clears _NET_WM_STATE on w.
func (d *Display) SetFullscreenState(w platform.WindowID, on bool) {
	var states []string
	if on {
		states = []string{"_NET_WM_STATE_FULLSCREEN"}
	}
	ewmh.WmStateSet(d.XUtil, xproto.Window(w), states)
}

// Cardinal reads a single CARDINAL property.
func (d *Display) Cardinal(w platform.WindowID, name string) (uint32, bool) {
	v, err := xprop.PropValNum(xprop.GetProperty(d.XUtil, xproto.Window(w), name))
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

func (d *Display) SetCardinal(w platform.WindowID, name string, v uint32) {
	if err := xprop.ChangeProp32(d.XUtil, xproto.Window(w), name, "CARDINAL", uint(v)); err != nil {
		d.logger.Debug("set cardinal property", "window", w, "property", name, "error", err)
	}
}

// RootName returns WM_NAME of the root window: the status text, or a
// fake signal when it starts with the signal prefix.
func (d *Display) RootName() string {
	name, err := icccm.WmNameGet(d.XUtil, d.root)
	if err != nil {
		return ""
	}
	return name
}

func (d *Display) SetRootName(name string) error {
	return icccm.WmNameSet(d.XUtil, d.root, name)
}

func (d *Display) deleteRootProp(name string) {
	if atom, err := xprop.Atm(d.XUtil, name); err == nil {
		xproto.DeleteProperty(d.conn(), d.root, atom)
	}
}

// SetRootNameStandalone sets the root window name using a new temporary
// X11 connection. Status bars and dwnc use it.
func SetRootNameStandalone(name string) error {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return fmt.Errorf("failed to connect to X11: %w", err)
	}
	defer xu.Conn().Close()

	if err := icccm.WmNameSet(xu, xu.RootWin(), name); err != nil {
		return fmt.Errorf("set root name: %w", err)
	}
	// Round trip so the change lands before the connection closes.
	xproto.GetInputFocus(xu.Conn()).Reply()
	return nil
}
