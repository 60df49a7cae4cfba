package tiling

import "github.com/1broseidon/dwn/internal/platform"

// NRowGrid spreads the clients over nmaster+1 rows.
type NRowGrid struct{}

func (NRowGrid) Name() string   { return "nrowgrid" }
func (NRowGrid) Symbol() string { return "###" }

func (NRowGrid) Arrange(p Params, tiles []Tile, place PlaceFunc) string {
	n := len(tiles)
	if n == 0 {
		return ""
	}
	oh, ov, ih, iv := gaps(p, n)
	a := p.Area

	rows := p.NMaster + 1
	if p.ForceVSplit && n == 2 {
		rows = 1
	}
	if n < rows {
		rows = n
	}

	cols := n / rows
	used := cols
	cy := a.Y + oh
	ch := (a.Height - 2*oh - ih*(rows-1)) / rows
	uh := ch
	uw := 0
	ri, ci := 0, 0

	for i, t := range tiles {
		if ci == cols {
			uw = 0
			ci = 0
			ri++
			cols = (n - used) / (rows - ri)
			used += cols
			cy = a.Y + oh + uh + ih
			uh += ch + ih
		}
		cx := a.X + ov + uw
		cw := (a.Width - 2*ov - uw) / (cols - ci)
		uw += cw + iv
		place(i, platform.Rect{X: cx, Y: cy, Width: cw - 2*t.Border, Height: ch - 2*t.Border})
		ci++
	}
	return ""
}

// GaplessGrid fills columns top to bottom; trailing columns take one extra
// row so no cell is left empty.
type GaplessGrid struct{}

func (GaplessGrid) Name() string   { return "gaplessgrid" }
func (GaplessGrid) Symbol() string { return "HHH" }

// GridColumns returns the column count for n clients.
func GridColumns(n int) int {
	cols := 0
	for ; cols <= n/2; cols++ {
		if cols*cols >= n {
			break
		}
	}
	if n == 5 {
		// 2:3 reads better than 1:2:2
		cols = 2
	}
	return cols
}

func (GaplessGrid) Arrange(p Params, tiles []Tile, place PlaceFunc) string {
	n := len(tiles)
	if n == 0 {
		return ""
	}
	oh, ov, ih, iv := gaps(p, n)
	a := p.Area

	cols := GridColumns(n)
	rows := n / cols
	cn, rn := 0, 0

	ch := (a.Height - 2*oh - ih*(rows-1)) / rows
	cw := (a.Width - 2*ov - iv*(cols-1)) / cols
	rrest := (a.Height - 2*oh - ih*(rows-1)) - ch*rows
	crest := (a.Width - 2*ov - iv*(cols-1)) - cw*cols
	x, y := a.X+ov, a.Y+oh

	bit := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}

	for i, t := range tiles {
		if i/rows+1 > cols-n%cols {
			rows = n/cols + 1
			ch = (a.Height - 2*oh - ih*(rows-1)) / rows
			rrest = (a.Height - 2*oh - ih*(rows-1)) - ch*rows
		}
		place(i, platform.Rect{
			X:      x,
			Y:      y + rn*(ch+ih) + min(rn, rrest),
			Width:  cw + bit(cn < crest) - 2*t.Border,
			Height: ch + bit(rn < rrest) - 2*t.Border,
		})
		rn++
		if rn >= rows {
			rn = 0
			x += cw + ih + bit(cn < crest)
			cn++
		}
	}
	return ""
}
