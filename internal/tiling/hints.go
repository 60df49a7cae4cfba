package tiling

import "github.com/1broseidon/dwn/internal/platform"

// Hints are the resolved ICCCM size constraints of a client.
type Hints struct {
	BaseW, BaseH int
	IncW, IncH   int
	MaxW, MaxH   int
	MinW, MinH   int
	MinA, MaxA   float64
}

// HintsFrom resolves WM_NORMAL_HINTS. Base and minimum size stand in for each
// other when only one is given. fixed reports a client that cannot be resized.
func HintsFrom(sh platform.SizeHints) (h Hints, fixed bool) {
	switch {
	case sh.HasBase:
		h.BaseW, h.BaseH = sh.BaseWidth, sh.BaseHeight
	case sh.HasMin:
		h.BaseW, h.BaseH = sh.MinWidth, sh.MinHeight
	}
	if sh.HasInc {
		h.IncW, h.IncH = sh.WidthInc, sh.HeightInc
	}
	if sh.HasMax {
		h.MaxW, h.MaxH = sh.MaxWidth, sh.MaxHeight
	}
	switch {
	case sh.HasMin:
		h.MinW, h.MinH = sh.MinWidth, sh.MinHeight
	case sh.HasBase:
		h.MinW, h.MinH = sh.BaseWidth, sh.BaseHeight
	}
	if sh.HasAspect && sh.MinAspectNum != 0 && sh.MaxAspectDen != 0 {
		h.MinA = float64(sh.MinAspectDen) / float64(sh.MinAspectNum)
		h.MaxA = float64(sh.MaxAspectNum) / float64(sh.MaxAspectDen)
	}
	fixed = h.MaxW != 0 && h.MaxH != 0 && h.MaxW == h.MinW && h.MaxH == h.MinH
	return h, fixed
}

// SizeRequest carries the client state the resolver needs.
type SizeRequest struct {
	// Current is the client's present geometry, border excluded.
	Current platform.Rect
	Border  int
	Hints   Hints
	// Honor applies the ICCCM constraints; tiled clients under an arranging
	// layout only get the bar-height floor.
	Honor       bool
	Interactive bool
	Screen      platform.Rect
	Work        platform.Rect
	BarHeight   int
}

// ApplySizeHints corrects r against the screen, the monitor work area and the
// client's size hints. changed reports whether the result differs from the
// current geometry.
func ApplySizeHints(req SizeRequest, r platform.Rect) (platform.Rect, bool) {
	x, y, w, h := r.X, r.Y, r.Width, r.Height
	bw := req.Border
	width := req.Current.Width + 2*bw
	height := req.Current.Height + 2*bw

	w = max(1, w)
	h = max(1, h)
	if req.Interactive {
		s := req.Screen
		if x > s.Width {
			x = s.Width - width
		}
		if y > s.Height {
			y = s.Height - height
		}
		if x+w+2*bw < 0 {
			x = 0
		}
		if y+h+2*bw < 0 {
			y = 0
		}
	} else {
		m := req.Work
		if x >= m.X+m.Width {
			x = m.X + m.Width - width
		}
		if y >= m.Y+m.Height {
			y = m.Y + m.Height - height
		}
		if x+w+2*bw <= m.X {
			x = m.X
		}
		if y+h+2*bw <= m.Y {
			y = m.Y
		}
	}
	if h < req.BarHeight {
		h = req.BarHeight
	}
	if w < req.BarHeight {
		w = req.BarHeight
	}

	if req.Honor {
		hs := req.Hints
		baseIsMin := hs.BaseW == hs.MinW && hs.BaseH == hs.MinH
		if !baseIsMin {
			w -= hs.BaseW
			h -= hs.BaseH
		}
		if hs.MinA > 0 && hs.MaxA > 0 && h > 0 && w > 0 {
			if hs.MaxA < float64(w)/float64(h) {
				w = int(float64(h)*hs.MaxA + 0.5)
			} else if hs.MinA < float64(h)/float64(w) {
				h = int(float64(w)*hs.MinA + 0.5)
			}
		}
		if baseIsMin {
			w -= hs.BaseW
			h -= hs.BaseH
		}
		if hs.IncW > 0 {
			w -= w % hs.IncW
		}
		if hs.IncH > 0 {
			h -= h % hs.IncH
		}
		w = max(w+hs.BaseW, hs.MinW)
		h = max(h+hs.BaseH, hs.MinH)
		if hs.MaxW > 0 {
			w = min(w, hs.MaxW)
		}
		if hs.MaxH > 0 {
			h = min(h, hs.MaxH)
		}
	}

	out := platform.Rect{X: x, Y: y, Width: w, Height: h}
	return out, out != req.Current
}
