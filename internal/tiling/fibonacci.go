package tiling

import "github.com/1broseidon/dwn/internal/platform"

// Fibonacci halves the remaining area for every client, alternating the
// split axis. Spiral turns the halves around the center; Dwindle keeps
// shrinking towards the bottom right.
type Fibonacci struct {
	Dwindle bool
}

func (f Fibonacci) Name() string {
	if f.Dwindle {
		return "dwindle"
	}
	return "spiral"
}

func (f Fibonacci) Symbol() string {
	if f.Dwindle {
		return "[\\]"
	}
	return "(@)"
}

func (f Fibonacci) Arrange(p Params, tiles []Tile, place PlaceFunc) string {
	n := len(tiles)
	if n == 0 {
		return ""
	}
	oh, ov, ih, iv := gaps(p, n)
	a := p.Area

	nx, ny := a.X+ov, a.Y+oh
	nw, nh := a.Width-2*ov, a.Height-2*oh
	hrest, wrest := 0, 0
	split := true

	i := 0
	for idx, t := range tiles {
		if split {
			if (i%2 == 1 && (nh-ih)/2 <= p.BarHeight+2*t.Border) ||
				(i%2 == 0 && (nw-iv)/2 <= p.BarHeight+2*t.Border) {
				split = false
			}
			if split && i < n-1 {
				if i%2 == 1 {
					nv := (nh - ih) / 2
					hrest = nh - 2*nv - ih
					nh = nv
				} else {
					nv := (nw - iv) / 2
					wrest = nw - 2*nv - iv
					nw = nv
				}
				if i%4 == 2 && !f.Dwindle {
					nx += nw + iv
				} else if i%4 == 3 && !f.Dwindle {
					ny += nh + ih
				}
			}

			switch i % 4 {
			case 0:
				if f.Dwindle {
					ny += nh + ih
					nh += hrest
				} else {
					nh -= hrest
					ny -= nh + ih
				}
			case 1:
				nx += nw + iv
				nw += wrest
			case 2:
				ny += nh + ih
				nh += hrest
				if i < n-1 {
					nw += wrest
				}
			case 3:
				if f.Dwindle {
					nx += nw + iv
					nw -= wrest
				} else {
					nw -= wrest
					nx -= nw + iv
					nh += hrest
				}
			}

			if i == 0 {
				if n != 1 {
					total := a.Width - iv - 2*ov
					nw = total - int(float64(total)*(1-p.MFact))
					wrest = 0
				}
				ny = a.Y + oh
			} else if i == 1 {
				nw = a.Width - nw - iv - 2*ov
			}
			i++
		}
		place(idx, platform.Rect{X: nx, Y: ny, Width: nw - 2*t.Border, Height: nh - 2*t.Border})
	}
	return ""
}
