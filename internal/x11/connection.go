package x11

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xcursor"

	"github.com/1broseidon/dwn/internal/platform"
)

// ErrAnotherWM is returned by BecomeWM when another window manager already
// holds SubstructureRedirect on the root window.
var ErrAnotherWM = errors.New("another window manager is already running")

// errClosed is returned by NextEvent once the server connection is gone.
var errClosed = errors.New("x11 connection closed")

// Display implements platform.Display on top of xgb and xgbutil.
type Display struct {
	XUtil *xgbutil.XUtil

	root    xproto.Window

	logger  *slog.Logger
	cursors map[platform.Cursor]xproto.Cursor
	font    *coreFont
	bars    map[xproto.Window]*barSurface
	check   xproto.Window

	mu         sync.Mutex
	numLock    uint16
	scrollLock uint16

	closeOnce sync.Once
}

var _ platform.Display = (*Display)(nil)

// Options configures a Display.
type Options struct {
	// Font is an X core font name or alias, e.g. "fixed".
	Font   string
	Logger *slog.Logger
}

// NewConnection establishes a connection to the X11 server and loads the
// keyboard map, cursors and bar font. It does not take over the screen; call
// BecomeWM for that.
func NewConnection(opts Options) (*Display, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	d := &Display{
		XUtil:   xu,
		root:    xu.RootWin(),
		logger:  opts.Logger,
		cursors: make(map[platform.Cursor]xproto.Cursor),
		bars:    make(map[xproto.Window]*barSurface),
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}

	// Initialize keybind module (required for key grabs and keysym lookups)
	keybind.Initialize(xu)
	d.updateLockMasks()

	for c, glyph := range map[platform.Cursor]uint16{
		platform.CursorNormal: xcursor.LeftPtr,
		platform.CursorResize: xcursor.Sizing,
		platform.CursorMove:   xcursor.Fleur,
	} {
		cur, err := xcursor.CreateCursor(xu, glyph)
		if err != nil {
			xu.Conn().Close()
			return nil, fmt.Errorf("create cursor: %w", err)
		}
		d.cursors[c] = cur
	}

	name := opts.Font
	if name == "" {
		name = "fixed"
	}
	d.font, err = openFont(xu.Conn(), name)
	if err != nil {
		d.logger.Warn("bar font unavailable, falling back to fixed", "font", name, "error", err)
		if d.font, err = openFont(xu.Conn(), "fixed"); err != nil {
			xu.Conn().Close()
			return nil, fmt.Errorf("open font: %w", err)
		}
	}

	return d, nil
}

// BecomeWM selects SubstructureRedirect on the root window and installs the
// root cursor. Any error selecting the mask means another window manager
// is running.
func (d *Display) BecomeWM() error {
	mask := uint32(xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskButtonPress |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskLeaveWindow |
		xproto.EventMaskStructureNotify |
		xproto.EventMaskPropertyChange)
	err := xproto.ChangeWindowAttributesChecked(d.conn(), d.root,
		xproto.CwEventMask|xproto.CwCursor,
		[]uint32{mask, uint32(d.cursors[platform.CursorNormal])}).Check()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAnotherWM, err)
	}
	return nil
}

// Root returns the root window id.
func (d *Display) Root() platform.WindowID { return platform.WindowID(d.root) }

// ScreenSize returns the size of the default screen in pixels.
func (d *Display) ScreenSize() (int, int) {
	s := d.XUtil.Screen()
	return int(s.WidthInPixels), int(s.HeightInPixels)
}

// Sync flushes the request queue and waits for the server to process it.
func (d *Display) Sync() {
	xproto.GetInputFocus(d.conn()).Reply()
}

// Close releases the supporting window and disconnects from the server.
func (d *Display) Close() {
	d.closeOnce.Do(func() {
		conn := d.conn()
		for w, b := range d.bars {
			b.free(conn)
			xproto.DestroyWindow(conn, w)
		}
		if d.check != 0 {
			xproto.DestroyWindow(conn, d.check)
		}
		if d.font != nil {
			d.font.close(conn)
		}
		for _, c := range d.cursors {
			xproto.FreeCursor(conn, c)
		}
		xproto.SetInputFocus(conn, xproto.InputFocusPointerRoot,
			xproto.Window(xproto.InputFocusPointerRoot), xproto.TimeCurrentTime)
		xproto.GetInputFocus(conn).Reply()
		conn.Close()
	})
}

func (d *Display) conn() *xgb.Conn { return d.XUtil.Conn() }
