package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/dwn/internal/platform"
)

// Attributes returns the geometry and map state of w.
func (d *Display) Attributes(w platform.WindowID) (platform.Attributes, error) {
	attrs, err := xproto.GetWindowAttributes(d.conn(), xproto.Window(w)).Reply()
	if err != nil {
		return platform.Attributes{}, fmt.Errorf("window attributes %#x: %w", w, err)
	}
	geom, err := xproto.GetGeometry(d.conn(), xproto.Drawable(w)).Reply()
	if err != nil {
		return platform.Attributes{}, fmt.Errorf("window geometry %#x: %w", w, err)
	}
	return platform.Attributes{
		Rect: platform.Rect{
			X:      int(geom.X),
			Y:      int(geom.Y),
			Width:  int(geom.Width),
			Height: int(geom.Height),
		},
		BorderWidth:      int(geom.BorderWidth),
		OverrideRedirect: attrs.OverrideRedirect,
		Viewable:         attrs.MapState == xproto.MapStateViewable,
	}, nil
}

// TopLevelWindows lists the children of the root in stacking order.
func (d *Display) TopLevelWindows() ([]platform.WindowID, error) {
	tree, err := xproto.QueryTree(d.conn(), d.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}
	out := make([]platform.WindowID, 0, len(tree.Children))
	for _, w := range tree.Children {
		if _, bar := d.bars[w]; bar || w == d.check {
			continue
		}
		out = append(out, platform.WindowID(w))
	}
	return out, nil
}

func (d *Display) TransientFor(w platform.WindowID) (platform.WindowID, bool) {
	parent, err := icccm.WmTransientForGet(d.XUtil, xproto.Window(w))
	if err != nil || parent == 0 {
		return platform.None, false
	}
	return platform.WindowID(parent), true
}

// Class returns the WM_CLASS class and instance of w.
func (d *Display) Class(w platform.WindowID) (string, string) {
	wc, err := icccm.WmClassGet(d.XUtil, xproto.Window(w))
	if err != nil || wc == nil {
		return "", ""
	}
	return wc.Class, wc.Instance
}

// Title prefers _NET_WM_NAME over WM_NAME.
func (d *Display) Title(w platform.WindowID) string {
	if name, err := ewmh.WmNameGet(d.XUtil, xproto.Window(w)); err == nil && name != "" {
		return name
	}
	name, err := icccm.WmNameGet(d.XUtil, xproto.Window(w))
	if err != nil {
		return ""
	}
	return name
}

func (d *Display) WindowTypes(w platform.WindowID) []string {
	types, err := ewmh.WmWindowTypeGet(d.XUtil, xproto.Window(w))
	if err != nil {
		return nil
	}
	return types
}

func (d *Display) WindowStates(w platform.WindowID) []string {
	states, err := ewmh.WmStateGet(d.XUtil, xproto.Window(w))
	if err != nil {
		return nil
	}
	return states
}

// ClientState reads WM_STATE.
func (d *Display) ClientState(w platform.WindowID) (int, bool) {
	st, err := icccm.WmStateGet(d.XUtil, xproto.Window(w))
	if err != nil || st == nil {
		return 0, false
	}
	return int(st.State), true
}

func (d *Display) SetClientState(w platform.WindowID, state int) {
	icccm.WmStateSet(d.XUtil, xproto.Window(w), &icccm.WmState{State: uint(state)})
}

// SizeHints reads WM_NORMAL_HINTS. A program-specified minimum doubles as
// the base size when no base is given, and the reverse.
func (d *Display) SizeHints(w platform.WindowID) (platform.SizeHints, bool) {
	nh, err := icccm.WmNormalHintsGet(d.XUtil, xproto.Window(w))
	if err != nil || nh == nil {
		return platform.SizeHints{}, false
	}
	var h platform.SizeHints
	if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.HasBase = true
		h.BaseWidth, h.BaseHeight = int(nh.BaseWidth), int(nh.BaseHeight)
	} else if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.HasBase = true
		h.BaseWidth, h.BaseHeight = int(nh.MinWidth), int(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.HasMin = true
		h.MinWidth, h.MinHeight = int(nh.MinWidth), int(nh.MinHeight)
	} else if nh.Flags&icccm.SizeHintPBaseSize != 0 {
		h.HasMin = true
		h.MinWidth, h.MinHeight = int(nh.BaseWidth), int(nh.BaseHeight)
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		h.HasMax = true
		h.MaxWidth, h.MaxHeight = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	if nh.Flags&icccm.SizeHintPResizeInc != 0 {
		h.HasInc = true
		h.WidthInc, h.HeightInc = int(nh.WidthInc), int(nh.HeightInc)
	}
	if nh.Flags&icccm.SizeHintPAspect != 0 {
		h.HasAspect = true
		h.MinAspectNum, h.MinAspectDen = int(nh.MinAspectNum), int(nh.MinAspectDen)
		h.MaxAspectNum, h.MaxAspectDen = int(nh.MaxAspectNum), int(nh.MaxAspectDen)
	}
	return h, true
}

func (d *Display) WMHints(w platform.WindowID) (platform.WMHints, bool) {
	hints, err := icccm.WmHintsGet(d.XUtil, xproto.Window(w))
	if err != nil || hints == nil {
		return platform.WMHints{}, false
	}
	return platform.WMHints{
		Urgent:   hints.Flags&icccm.HintUrgency != 0,
		HasInput: hints.Flags&icccm.HintInput != 0,
		Input:    hints.Input != 0,
	}, true
}

// SetUrgent rewrites the urgency flag of WM_HINTS.
func (d *Display) SetUrgent(w platform.WindowID, urgent bool) {
	hints, err := icccm.WmHintsGet(d.XUtil, xproto.Window(w))
	if err != nil || hints == nil {
		return
	}
	if urgent {
		hints.Flags |= icccm.HintUrgency
	} else {
		hints.Flags &^= icccm.HintUrgency
	}
	icccm.WmHintsSet(d.XUtil, xproto.Window(w), hints)
}

// Decorated reports the decoration request in _MOTIF_WM_HINTS. ok is false
// when the window does not set one.
func (d *Display) Decorated(w platform.WindowID) (bool, bool) {
	hints, err := motif.WmHintsGet(d.XUtil, xproto.Window(w))
	if err != nil || hints == nil || hints.Flags&motif.HintDecorations == 0 {
		return false, false
	}
	return motif.Decor(hints), true
}

func (d *Display) PID(w platform.WindowID) int {
	pid, err := ewmh.WmPidGet(d.XUtil, xproto.Window(w))
	if err != nil {
		return 0
	}
	return int(pid)
}

func (d *Display) AtomName(atom uint32) string {
	return d.atomName(xproto.Atom(atom))
}

// MoveResize places an unmanaged window such as a bar.
func (d *Display) MoveResize(w platform.WindowID, r platform.Rect) {
	xwindow.New(d.XUtil, xproto.Window(w)).MoveResize(r.X, r.Y, r.Width, r.Height)
}

// ConfigureClient sets the geometry and border of a managed client.
func (d *Display) ConfigureClient(w platform.WindowID, r platform.Rect, bw int) {
	xproto.ConfigureWindow(d.conn(), xproto.Window(w),
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|
			xproto.ConfigWindowHeight|xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(int32(r.X)), uint32(int32(r.Y)), uint32(r.Width), uint32(r.Height), uint32(bw)})
}

func (d *Display) SetBorderWidth(w platform.WindowID, bw int) {
	xproto.ConfigureWindow(d.conn(), xproto.Window(w), xproto.ConfigWindowBorderWidth, []uint32{uint32(bw)})
}

func (d *Display) SetBorderColor(w platform.WindowID, pixel uint32) {
	xproto.ChangeWindowAttributes(d.conn(), xproto.Window(w), xproto.CwBorderPixel, []uint32{pixel})
}

// SendConfigureNotify tells a client its geometry when the window manager
// did not change it.
func (d *Display) SendConfigureNotify(w platform.WindowID, r platform.Rect, bw int) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            xproto.Window(w),
		Window:           xproto.Window(w),
		AboveSibling:     0,
		X:                int16(r.X),
		Y:                int16(r.Y),
		Width:            uint16(r.Width),
		Height:           uint16(r.Height),
		BorderWidth:      uint16(bw),
		OverrideRedirect: false,
	}
	xproto.SendEvent(d.conn(), false, xproto.Window(w), xproto.EventMaskStructureNotify, string(ev.Bytes()))
}

// ForwardConfigure grants a configure request from an unmanaged window
// unchanged.
func (d *Display) ForwardConfigure(ev platform.ConfigureRequest) {
	var vals []uint32
	var mask uint16
	add := func(bit uint16, v uint32) {
		if ev.ValueMask&bit != 0 {
			mask |= bit
			vals = append(vals, v)
		}
	}
	add(platform.ConfigX, uint32(int32(ev.X)))
	add(platform.ConfigY, uint32(int32(ev.Y)))
	add(platform.ConfigWidth, uint32(ev.Width))
	add(platform.ConfigHeight, uint32(ev.Height))
	add(platform.ConfigBorderWidth, uint32(ev.BorderWidth))
	add(platform.ConfigSibling, uint32(ev.Sibling))
	add(platform.ConfigStackMode, uint32(ev.StackMode))
	xproto.ConfigureWindow(d.conn(), xproto.Window(ev.Window), mask, vals)
}

func (d *Display) Map(w platform.WindowID) {
	xproto.MapWindow(d.conn(), xproto.Window(w))
}

func (d *Display) Unmap(w platform.WindowID) {
	xproto.UnmapWindow(d.conn(), xproto.Window(w))
}

func (d *Display) Raise(w platform.WindowID) {
	xproto.ConfigureWindow(d.conn(), xproto.Window(w), xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove})
}

// StackBelow restacks w directly below sibling.
func (d *Display) StackBelow(w, sibling platform.WindowID) {
	xproto.ConfigureWindow(d.conn(), xproto.Window(w),
		xproto.ConfigWindowSibling|xproto.ConfigWindowStackMode,
		[]uint32{uint32(sibling), xproto.StackModeBelow})
}

// SelectClientInput subscribes to the client events the manager tracks.
func (d *Display) SelectClientInput(w platform.WindowID) {
	xproto.ChangeWindowAttributes(d.conn(), xproto.Window(w), xproto.CwEventMask,
		[]uint32{xproto.EventMaskEnterWindow | xproto.EventMaskFocusChange |
			xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify})
}

// SetFocus publishes w as the active window and optionally gives it the
// input focus.
func (d *Display) SetFocus(w platform.WindowID, input bool) {
	if input {
		xproto.SetInputFocus(d.conn(), xproto.InputFocusPointerRoot, xproto.Window(w), xproto.TimeCurrentTime)
	}
	ewmh.ActiveWindowSet(d.XUtil, xproto.Window(w))
}

func (d *Display) FocusRoot() {
	xproto.SetInputFocus(d.conn(), xproto.InputFocusPointerRoot, d.root, xproto.TimeCurrentTime)
	d.deleteRootProp("_NET_ACTIVE_WINDOW")
}

// SendProtocol delivers a WM_PROTOCOLS message if w advertises protocol.
func (d *Display) SendProtocol(w platform.WindowID, protocol string) bool {
	protos, err := icccm.WmProtocolsGet(d.XUtil, xproto.Window(w))
	if err != nil {
		return false
	}
	supported := false
	for _, p := range protos {
		if p == protocol {
			supported = true
			break
		}
	}
	if !supported {
		return false
	}
	wmProtocols, err := xprop.Atm(d.XUtil, "WM_PROTOCOLS")
	if err != nil {
		return false
	}
	atom, err := xprop.Atm(d.XUtil, protocol)
	if err != nil {
		return false
	}
	cm, err := xevent.NewClientMessage(32, xproto.Window(w), wmProtocols,
		int(atom), int(xproto.TimeCurrentTime))
	if err != nil {
		return false
	}
	xproto.SendEvent(d.conn(), false, xproto.Window(w), xproto.EventMaskNoEvent, string(cm.Bytes()))
	return true
}

// KillClient disconnects the client that owns w, destroying its resources.
func (d *Display) KillClient(w platform.WindowID) {
	conn := d.conn()
	xproto.GrabServer(conn)
	xproto.SetCloseDownMode(conn, xproto.CloseDownDestroyAll)
	xproto.KillClient(conn, uint32(w))
	xproto.UngrabServer(conn)
	d.Sync()
}
