package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/mousebind"

	"github.com/1broseidon/dwn/internal/platform"
)

const buttonMask = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease

func (d *Display) QueryPointer() (int, int, bool) {
	r, err := xproto.QueryPointer(d.conn(), d.root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(r.RootX), int(r.RootY), true
}

// WarpPointer moves the pointer to x, y relative to w.
func (d *Display) WarpPointer(w platform.WindowID, x, y int) {
	xproto.WarpPointer(d.conn(), 0, xproto.Window(w), 0, 0, 0, 0, int16(x), int16(y))
}

// GrabPointer takes the pointer for a move or resize drag.
func (d *Display) GrabPointer(c platform.Cursor) bool {
	ok, err := mousebind.GrabPointer(d.XUtil, d.root, 0, d.cursors[c])
	if err != nil {
		d.logger.Debug("pointer grab failed", "error", err)
		return false
	}
	return ok
}

func (d *Display) UngrabPointer() {
	mousebind.UngrabPointer(d.XUtil)
}

// ReplayPointer releases a synchronous click grab to the client below.
func (d *Display) ReplayPointer() {
	xproto.AllowEvents(d.conn(), xproto.AllowReplayPointer, xproto.TimeCurrentTime)
}

// GrabButtons installs the passive grabs of w. An unfocused window grabs
// every button synchronously so the first click focuses it.
func (d *Display) GrabButtons(w platform.WindowID, focused bool, grabs []platform.ButtonGrab) {
	win := xproto.Window(w)
	xproto.UngrabButton(d.conn(), xproto.ButtonIndexAny, win, xproto.ModMaskAny)
	if !focused {
		if err := mousebind.GrabChecked(d.XUtil, win, xproto.ModMaskAny, xproto.ButtonIndexAny, true); err != nil {
			d.logger.Debug("button grab failed", "window", w, "error", err)
		}
	}
	for _, g := range grabs {
		xproto.GrabButton(d.conn(), false, win, buttonMask,
			xproto.GrabModeAsync, xproto.GrabModeSync, 0, 0,
			g.Button, g.Mods)
	}
}
