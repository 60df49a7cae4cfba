package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// Core request opcodes whose failures are expected while windows come and go.
const (
	opConfigureWindow   = 12
	opGrabButton        = 28
	opGrabKey           = 33
	opSetInputFocus     = 42
	opCopyArea          = 62
	opPolySegment       = 66
	opPolyFillRectangle = 70
	opPolyText8         = 74
)

// IsBenign reports whether err is one of the X errors a window manager must
// tolerate: requests racing against a window that has already been
// destroyed, focus or configure mismatches, drawing on a vanished bar, and
// grabs another client already holds.
func IsBenign(err xgb.Error) bool {
	switch e := err.(type) {
	case xproto.WindowError:
		return true
	case xproto.MatchError:
		return e.MajorOpcode == opSetInputFocus || e.MajorOpcode == opConfigureWindow
	case xproto.DrawableError:
		switch e.MajorOpcode {
		case opPolyText8, opPolyFillRectangle, opPolySegment, opCopyArea:
			return true
		}
	case xproto.AccessError:
		return e.MajorOpcode == opGrabButton || e.MajorOpcode == opGrabKey
	}
	return false
}

func (d *Display) logXError(err xgb.Error) {
	if IsBenign(err) {
		return
	}
	d.logger.Error("x request failed", "error", err.Error(), "sequence", err.SequenceId())
}
