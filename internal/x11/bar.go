package x11

import (
	"fmt"
	"unicode/utf16"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/dwn/internal/platform"
)

// coreFont is a server-side X core font.
type coreFont struct {
	id      xproto.Font
	ascent  int
	descent int
	widths  map[string]int
}

func openFont(conn *xgb.Conn, name string) (*coreFont, error) {
	fid, err := xproto.NewFontId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.OpenFontChecked(conn, fid, uint16(len(name)), name).Check(); err != nil {
		return nil, fmt.Errorf("open font %q: %w", name, err)
	}
	info, err := xproto.QueryFont(conn, xproto.Fontable(fid)).Reply()
	if err != nil {
		xproto.CloseFont(conn, fid)
		return nil, fmt.Errorf("query font %q: %w", name, err)
	}
	return &coreFont{
		id:      fid,
		ascent:  int(info.FontAscent),
		descent: int(info.FontDescent),
		widths:  make(map[string]int),
	}, nil
}

func (f *coreFont) close(conn *xgb.Conn) {
	xproto.CloseFont(conn, f.id)
}

func toChar2b(s string) []xproto.Char2b {
	ucs2 := utf16.Encode([]rune(s))
	chars := make([]xproto.Char2b, len(ucs2))
	for i, r := range ucs2 {
		chars[i] = xproto.Char2b{Byte1: byte(r >> 8), Byte2: byte(r)}
	}
	return chars
}

// TextWidth measures s in the bar font. Results are cached per string.
func (d *Display) TextWidth(s string) int {
	if s == "" {
		return 0
	}
	if w, ok := d.font.widths[s]; ok {
		return w
	}
	chars := toChar2b(s)
	ex, err := xproto.QueryTextExtents(d.conn(), xproto.Fontable(d.font.id), chars, uint16(len(chars))).Reply()
	if err != nil {
		return 0
	}
	w := int(ex.OverallWidth)
	if len(d.font.widths) > 1024 {
		clear(d.font.widths)
	}
	d.font.widths[s] = w
	return w
}

// barSurface is the off-screen pixmap a bar is painted into before it is
// copied to the window.
type barSurface struct {
	pixmap xproto.Pixmap
	gc     xproto.Gcontext
	width  int
	height int
}

func (b *barSurface) free(conn *xgb.Conn) {
	if b.pixmap != 0 {
		xproto.FreePixmap(conn, b.pixmap)
	}
	if b.gc != 0 {
		xproto.FreeGC(conn, b.gc)
	}
}

// CreateBar creates and maps an override-redirect bar window.
func (d *Display) CreateBar(r platform.Rect) platform.WindowID {
	win, err := xwindow.Generate(d.XUtil)
	if err != nil {
		d.logger.Error("create bar window", "error", err)
		return platform.None
	}
	err = win.CreateChecked(d.root, r.X, r.Y, r.Width, r.Height,
		xproto.CwBackPixmap|xproto.CwOverrideRedirect|xproto.CwEventMask|xproto.CwCursor,
		xproto.BackPixmapParentRelative, 1,
		xproto.EventMaskButtonPress|xproto.EventMaskExposure,
		uint32(d.cursors[platform.CursorNormal]))
	if err != nil {
		d.logger.Error("create bar window", "error", err)
		return platform.None
	}
	icccm.WmClassSet(d.XUtil, win.Id, &icccm.WmClass{Instance: "dwn", Class: "dwn"})
	d.bars[win.Id] = &barSurface{}
	win.Map()
	d.Raise(platform.WindowID(win.Id))
	return platform.WindowID(win.Id)
}

// surface returns the pixmap for bar, reallocating it when the bar grew.
func (d *Display) surface(bar xproto.Window, width, height int) (*barSurface, error) {
	b := d.bars[bar]
	if b == nil {
		b = &barSurface{}
		d.bars[bar] = b
	}
	if b.pixmap != 0 && b.width >= width && b.height >= height {
		return b, nil
	}
	conn := d.conn()
	b.free(conn)
	*b = barSurface{}

	pix, err := xproto.NewPixmapId(conn)
	if err != nil {
		return nil, err
	}
	screen := d.XUtil.Screen()
	xproto.CreatePixmap(conn, screen.RootDepth, pix, xproto.Drawable(d.root), uint16(width), uint16(height))
	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.FreePixmap(conn, pix)
		return nil, err
	}
	xproto.CreateGC(conn, gc, xproto.Drawable(pix),
		xproto.GcLineWidth|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{1, uint32(d.font.id), 0})
	*b = barSurface{pixmap: pix, gc: gc, width: width, height: height}
	return b, nil
}

// DrawBar paints segs left to right and copies the result to bar.
func (d *Display) DrawBar(bar platform.WindowID, width, height int, segs []platform.Segment) {
	if bar == platform.None || width <= 0 || height <= 0 {
		return
	}
	b, err := d.surface(xproto.Window(bar), width, height)
	if err != nil {
		d.logger.Error("allocate bar pixmap", "error", err)
		return
	}
	conn := d.conn()
	dr := xproto.Drawable(b.pixmap)
	pad := height / 4
	baseline := (height-(d.font.ascent+d.font.descent))/2 + d.font.ascent
	box := (d.font.ascent + d.font.descent) / 9
	boxw := (d.font.ascent+d.font.descent)/6 + 2

	for _, s := range segs {
		if s.Width <= 0 {
			continue
		}
		xproto.ChangeGC(conn, b.gc, xproto.GcForeground, []uint32{s.Bg})
		xproto.PolyFillRectangle(conn, dr, b.gc, []xproto.Rectangle{{
			X: int16(s.X), Y: 0, Width: uint16(s.Width), Height: uint16(height),
		}})

		text := d.fit(s.Text, s.Width-2*pad)
		if text != "" {
			xproto.ChangeGC(conn, b.gc, xproto.GcForeground|xproto.GcBackground, []uint32{s.Fg, s.Bg})
			chars := toChar2b(text)
			if len(chars) > 255 {
				chars = chars[:255]
			}
			xproto.ImageText16(conn, byte(len(chars)), dr, b.gc, int16(s.X+pad), int16(baseline), chars)
		}

		if s.Indicator {
			xproto.ChangeGC(conn, b.gc, xproto.GcForeground, []uint32{s.Fg})
			r := xproto.Rectangle{X: int16(s.X + box), Y: int16(box), Width: uint16(boxw), Height: uint16(boxw)}
			if s.IndicatorFilled {
				xproto.PolyFillRectangle(conn, dr, b.gc, []xproto.Rectangle{r})
			} else {
				xproto.PolyRectangle(conn, dr, b.gc, []xproto.Rectangle{r})
			}
		}
	}
	xproto.CopyArea(conn, dr, xproto.Drawable(bar), b.gc, 0, 0, 0, 0, uint16(width), uint16(height))
}

// fit trims s until it is at most w pixels wide.
func (d *Display) fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	for len(r) > 0 && d.TextWidth(string(r)) > w {
		r = r[:len(r)-1]
	}
	return string(r)
}
