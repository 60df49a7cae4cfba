package tiling

import "github.com/1broseidon/dwn/internal/platform"

// CenteredMaster places the master column in the middle of the monitor with
// the stack split between a left and a right flank.
type CenteredMaster struct{}

func (CenteredMaster) Name() string   { return "centeredmaster" }
func (CenteredMaster) Symbol() string { return "|M|" }

func (CenteredMaster) Arrange(p Params, tiles []Tile, place PlaceFunc) string {
	n := len(tiles)
	if n == 0 {
		return ""
	}
	oh, ov, ih, iv := gaps(p, n)
	a := p.Area
	nm := p.NMaster
	stack := n - nm

	mx, my := a.X+ov, a.Y+oh
	masters := n
	if nm > 0 {
		masters = min(n, nm)
	}
	mh := a.Height - 2*oh - ih*(masters-1)
	mw := a.Width - 2*ov
	lh := a.Height - 2*oh - ih*(stack/2-1)
	rh := a.Height - 2*oh - ih*(stack/2-1)
	if stack%2 == 1 {
		rh = a.Height - 2*oh - ih*(stack/2)
	}
	var lx, ly, lw, rx, ry, rw int

	if nm > 0 && n > nm {
		if stack > 1 {
			mw = int(float64(a.Width-2*ov-2*iv) * p.MFact)
			lw = (a.Width - mw - 2*ov - 2*iv) / 2
			rw = (a.Width - mw - 2*ov - 2*iv) - lw
			mx += lw + iv
		} else {
			mw = int(float64(mw-iv) * p.MFact)
			lw = 0
			rw = a.Width - mw - iv - 2*ov
		}
		lx, ly = a.X+ov, a.Y+oh
		rx, ry = mx+mw+iv, a.Y+oh
	}

	isMaster := func(i int) bool { return nm == 0 || i < nm }

	var mfacts, lfacts, rfacts float64
	for i, t := range tiles {
		switch {
		case isMaster(i):
			mfacts += t.CFact
		case (i-nm)%2 == 1:
			lfacts += t.CFact
		default:
			rfacts += t.CFact
		}
	}
	mtotal, ltotal, rtotal := 0, 0, 0
	for i, t := range tiles {
		switch {
		case isMaster(i):
			mtotal = int(float64(mtotal) + float64(mh)*(t.CFact/mfacts))
		case (i-nm)%2 == 1:
			ltotal = int(float64(ltotal) + float64(lh)*(t.CFact/lfacts))
		default:
			rtotal = int(float64(rtotal) + float64(rh)*(t.CFact/rfacts))
		}
	}
	mrest, lrest, rrest := mh-mtotal, lh-ltotal, rh-rtotal

	for i, t := range tiles {
		switch {
		case isMaster(i):
			h := share(mh, mfacts, t.CFact, i < mrest, t.Border)
			r := place(i, platform.Rect{X: mx, Y: my, Width: mw - 2*t.Border, Height: h})
			my += r.Height + 2*t.Border + ih
		case (i-nm)%2 == 1:
			h := share(lh, lfacts, t.CFact, i-2*nm < 2*lrest, t.Border)
			r := place(i, platform.Rect{X: lx, Y: ly, Width: lw - 2*t.Border, Height: h})
			ly += r.Height + 2*t.Border + ih
		default:
			h := share(rh, rfacts, t.CFact, i-2*nm < 2*rrest, t.Border)
			r := place(i, platform.Rect{X: rx, Y: ry, Width: rw - 2*t.Border, Height: h})
			ry += r.Height + 2*t.Border + ih
		}
	}
	return ""
}

// CenteredFloatingMaster lays the stack out as a row and floats the master
// area in the middle of the monitor on top of it.
type CenteredFloatingMaster struct{}

func (CenteredFloatingMaster) Name() string   { return "centeredfloatingmaster" }
func (CenteredFloatingMaster) Symbol() string { return ">M>" }

func (CenteredFloatingMaster) Arrange(p Params, tiles []Tile, place PlaceFunc) string {
	n := len(tiles)
	if n == 0 {
		return ""
	}
	oh, ov, _, iv := gaps(p, n)
	a := p.Area
	nm := p.NMaster
	mivf := 1.0

	mx, my := a.X+ov, a.Y+oh
	sx, sy := mx, my
	mh := a.Height - 2*oh
	sh := mh
	mw := a.Width - 2*ov - iv*(n-1)
	sw := a.Width - 2*ov - iv*(n-nm-1)

	if nm > 0 && n > nm {
		mivf = 0.8
		inner := float64(iv) * mivf * float64(min(n, nm)-1)
		if a.Width > a.Height {
			mw = int(float64(a.Width)*p.MFact - inner)
			mh = int(float64(a.Height) * 0.9)
		} else {
			mw = int(float64(a.Width)*0.9 - inner)
			mh = int(float64(a.Height) * p.MFact)
		}
		mx = a.X + (a.Width-mw)/2
		my = a.Y + (a.Height-mh-2*oh)/2

		sx, sy = a.X+ov, a.Y+oh
		sh = a.Height - 2*oh
	}

	mfacts, sfacts, mrest, srest := facts(tiles, nm, mw, sw)
	for i, t := range tiles {
		if i < nm {
			w := share(mw, mfacts, t.CFact, i < mrest, t.Border)
			r := place(i, platform.Rect{X: mx, Y: my, Width: w, Height: mh - 2*t.Border})
			mx = int(float64(mx+r.Width+2*t.Border) + float64(iv)*mivf)
		} else {
			w := share(sw, sfacts, t.CFact, i-nm < srest, t.Border)
			r := place(i, platform.Rect{X: sx, Y: sy, Width: w, Height: sh - 2*t.Border})
			sx += r.Width + 2*t.Border + iv
		}
	}
	return ""
}
