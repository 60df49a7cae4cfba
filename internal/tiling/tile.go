package tiling

import (
	"fmt"

	"github.com/1broseidon/dwn/internal/platform"
)

// MasterStack is the classic master column plus stack column.
type MasterStack struct{}

func (MasterStack) Name() string   { return "tile" }
func (MasterStack) Symbol() string { return "[]=" }

func (MasterStack) Arrange(p Params, tiles []Tile, place PlaceFunc) string {
	n := len(tiles)
	if n == 0 {
		return ""
	}
	oh, ov, ih, iv := gaps(p, n)
	a := p.Area

	mx, my := a.X+ov, a.Y+oh
	sx, sy := mx, my
	mh := a.Height - 2*oh - ih*(min(n, p.NMaster)-1)
	sh := a.Height - 2*oh - ih*(n-p.NMaster-1)
	mw := a.Width - 2*ov
	sw := mw

	if p.NMaster > 0 && n > p.NMaster {
		sw = int(float64(mw-iv) * (1 - p.MFact))
		mw = mw - iv - sw
		sx = mx + mw + iv
	}

	mfacts, sfacts, mrest, srest := facts(tiles, p.NMaster, mh, sh)
	for i, t := range tiles {
		if i < p.NMaster {
			h := share(mh, mfacts, t.CFact, i < mrest, t.Border)
			r := place(i, platform.Rect{X: mx, Y: my, Width: mw - 2*t.Border, Height: h})
			my += r.Height + 2*t.Border + ih
		} else {
			h := share(sh, sfacts, t.CFact, i-p.NMaster < srest, t.Border)
			r := place(i, platform.Rect{X: sx, Y: sy, Width: sw - 2*t.Border, Height: h})
			sy += r.Height + 2*t.Border + ih
		}
	}
	return ""
}

// BStack puts the master row on top and the stack row below it.
type BStack struct{}

func (BStack) Name() string   { return "bstack" }
func (BStack) Symbol() string { return "TTT" }

func (BStack) Arrange(p Params, tiles []Tile, place PlaceFunc) string {
	n := len(tiles)
	if n == 0 {
		return ""
	}
	oh, ov, ih, iv := gaps(p, n)
	a := p.Area

	mx, my := a.X+ov, a.Y+oh
	sx, sy := mx, my
	mh := a.Height - 2*oh
	sh := mh
	mw := a.Width - 2*ov - iv*(min(n, p.NMaster)-1)
	sw := a.Width - 2*ov - iv*(n-p.NMaster-1)

	if p.NMaster > 0 && n > p.NMaster {
		sh = int(float64(mh-ih) * (1 - p.MFact))
		mh = mh - ih - sh
		sy = my + mh + ih
	}

	mfacts, sfacts, mrest, srest := facts(tiles, p.NMaster, mw, sw)
	for i, t := range tiles {
		if i < p.NMaster {
			w := share(mw, mfacts, t.CFact, i < mrest, t.Border)
			r := place(i, platform.Rect{X: mx, Y: my, Width: w, Height: mh - 2*t.Border})
			mx += r.Width + 2*t.Border + iv
		} else {
			w := share(sw, sfacts, t.CFact, i-p.NMaster < srest, t.Border)
			r := place(i, platform.Rect{X: sx, Y: sy, Width: w, Height: sh - 2*t.Border})
			sx += r.Width + 2*t.Border + iv
		}
	}
	return ""
}

// Deck keeps a tile master column and stacks every other client on top of
// each other in the remaining area.
type Deck struct{}

func (Deck) Name() string   { return "deck" }
func (Deck) Symbol() string { return "[D]" }

func (Deck) Arrange(p Params, tiles []Tile, place PlaceFunc) string {
	n := len(tiles)
	if n == 0 {
		return ""
	}
	oh, ov, ih, iv := gaps(p, n)
	a := p.Area

	mx, my := a.X+ov, a.Y+oh
	sx, sy := mx, my
	mh := a.Height - 2*oh - ih*(min(n, p.NMaster)-1)
	sh := mh
	mw := a.Width - 2*ov
	sw := mw

	if p.NMaster > 0 && n > p.NMaster {
		sw = int(float64(mw-iv) * (1 - p.MFact))
		mw = mw - iv - sw
		sx = mx + mw + iv
		sh = a.Height - 2*oh
	}

	mfacts, _, mrest, _ := facts(tiles, p.NMaster, mh, sh)
	for i, t := range tiles {
		if i < p.NMaster {
			h := share(mh, mfacts, t.CFact, i < mrest, t.Border)
			r := place(i, platform.Rect{X: mx, Y: my, Width: mw - 2*t.Border, Height: h})
			my += r.Height + 2*t.Border + ih
		} else {
			place(i, platform.Rect{X: sx, Y: sy, Width: sw - 2*t.Border, Height: sh - 2*t.Border})
		}
	}
	if n > p.NMaster {
		return fmt.Sprintf("D %d", n-p.NMaster)
	}
	return ""
}

// Monocle gives every client the whole work area.
type Monocle struct{}

func (Monocle) Name() string   { return "monocle" }
func (Monocle) Symbol() string { return "[M]" }

func (Monocle) Arrange(p Params, tiles []Tile, place PlaceFunc) string {
	a := p.Area
	for i, t := range tiles {
		place(i, platform.Rect{X: a.X, Y: a.Y, Width: a.Width - 2*t.Border, Height: a.Height - 2*t.Border})
	}
	return ""
}
