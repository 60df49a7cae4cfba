package wm

import (
	"github.com/1broseidon/dwn/internal/platform"
)

// motionInterval throttles drags to 60 updates per second.
const motionInterval = 1000 / 60

// nextEvent reads from the loop's event channel when Run owns the
// connection, and straight from the display otherwise.
func (s *State) nextEvent() (platform.Event, bool) {
	if s.events != nil {
		ev, ok := <-s.events
		return ev, ok
	}
	ev, err := s.d.NextEvent()
	return ev, err == nil
}

// drag runs the nested pointer loop until the button is released. Requests
// that must not wait for the drag are handled in between; motion is passed
// to onMotion at most every motionInterval milliseconds. Other events are
// queued for the main loop.
func (s *State) drag(cursor platform.Cursor, onMotion func(x, y int)) bool {
	if !s.d.GrabPointer(cursor) {
		return false
	}
	defer s.d.UngrabPointer()
	var last uint32
	for {
		ev, ok := s.nextEvent()
		if !ok {
			s.running = false
			return true
		}
		switch ev := ev.(type) {
		case platform.ConfigureRequest:
			s.configureRequest(ev)
		case platform.Expose:
			s.expose(ev)
		case platform.MapRequest:
			s.mapRequest(ev)
		case platform.MotionNotify:
			if ev.Time-last <= motionInterval {
				continue
			}
			last = ev.Time
			onMotion(ev.RootX, ev.RootY)
		case platform.ButtonRelease:
			return true
		case platform.ButtonPress:
		default:
			s.pending = append(s.pending, ev)
		}
	}
}

// popPending returns the oldest event deferred by a drag.
func (s *State) popPending() (platform.Event, bool) {
	if len(s.pending) == 0 {
		return nil, false
	}
	ev := s.pending[0]
	s.pending[0] = nil
	s.pending = s.pending[1:]
	return ev, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// moveMouse drags the selected client with the pointer, snapping to the
// work area edges. A tiled client dragged further than the snap distance
// becomes floating.
func (s *State) moveMouse(Arg) {
	c := s.selmon.sel
	if c == nil || c.fullscreen() {
		return
	}
	s.restack(s.selmon)
	ocx, ocy := c.X, c.Y
	px, py, ok := s.d.QueryPointer()
	if !ok {
		return
	}
	snap := s.cfg.Behaviour.Snap
	if !s.drag(platform.CursorMove, func(x, y int) {
		m := s.selmon
		nx := ocx + (x - px)
		ny := ocy + (y - py)
		if abs(m.W.X-nx) < snap {
			nx = m.W.X
		} else if abs(m.W.X+m.W.Width-(nx+c.width())) < snap {
			nx = m.W.X + m.W.Width - c.width()
		}
		if abs(m.W.Y-ny) < snap {
			ny = m.W.Y
		} else if abs(m.W.Y+m.W.Height-(ny+c.height())) < snap {
			ny = m.W.Y + m.W.Height - c.height()
		}
		if !c.Floating && s.arranging(m) && (abs(nx-c.X) > snap || abs(ny-c.Y) > snap) {
			s.toggleFloating(Arg{})
		}
		if !s.arranging(m) || c.Floating {
			s.resize(c, nx, ny, c.W, c.H, true)
		}
	}) {
		return
	}
	s.settleDrag(c)
}

// resizeMouse resizes the selected client from the corner nearest to the
// pointer.
func (s *State) resizeMouse(Arg) {
	c := s.selmon.sel
	if c == nil || c.fullscreen() {
		return
	}
	s.restack(s.selmon)
	ocx, ocy := c.X, c.Y
	ocx2, ocy2 := c.X+c.W, c.Y+c.H
	px, py, ok := s.d.QueryPointer()
	if !ok {
		return
	}
	left := px-c.X < c.W/2
	top := py-c.Y < c.H/2
	corner := func() {
		x, y := c.W+c.BW-1, c.H+c.BW-1
		if left {
			x = -c.BW
		}
		if top {
			y = -c.BW
		}
		s.d.WarpPointer(c.Win, x, y)
	}
	corner()
	snap := s.cfg.Behaviour.Snap
	if !s.drag(platform.CursorResize, func(x, y int) {
		m := s.selmon
		nx, ny := c.X, c.Y
		if left {
			nx = x
		}
		if top {
			ny = y
		}
		nw := max(x-ocx-2*c.BW+1, 1)
		if left {
			nw = max(ocx2-nx, 1)
		}
		nh := max(y-ocy-2*c.BW+1, 1)
		if top {
			nh = max(ocy2-ny, 1)
		}
		if c.Mon.W.X+nw >= m.W.X && c.Mon.W.X+nw <= m.W.X+m.W.Width &&
			c.Mon.W.Y+nh >= m.W.Y && c.Mon.W.Y+nh <= m.W.Y+m.W.Height {
			if !c.Floating && s.arranging(m) && (abs(nw-c.W) > snap || abs(nh-c.H) > snap) {
				s.toggleFloating(Arg{})
			}
		}
		if !s.arranging(m) || c.Floating {
			s.resize(c, nx, ny, nw, nh, true)
		}
	}) {
		return
	}
	corner()
	s.settleDrag(c)
}

// settleDrag sends a dragged client to the monitor it now mostly covers.
func (s *State) settleDrag(c *Client) {
	if s.clients[c.ID] != c {
		return
	}
	if m := s.rectToMon(c.rect()); m != s.selmon {
		s.sendMon(c, m)
		s.prevmon = s.selmon
		s.selmon = m
		s.focus(nil)
	}
}
