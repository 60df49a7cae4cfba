package wm

import (
	"strconv"

	"github.com/1broseidon/dwn/internal/platform"
	"github.com/1broseidon/dwn/internal/tiling"
)

// arrange shows and hides clients, runs the layout and restacks m. A nil m
// rearranges every monitor without restacking.
func (s *State) arrange(m *Monitor) {
	if m != nil {
		s.showHide(m)
		s.arrangeMon(m)
		s.restack(m)
		return
	}
	for _, mon := range s.mons {
		s.showHide(mon)
	}
	for _, mon := range s.mons {
		s.arrangeMon(mon)
	}
}

func (s *State) arrangeMon(m *Monitor) {
	s.updateBarPos(m)
	s.resizeBar(m)
	l := s.layout(m)
	m.LtSymbol = l.Symbol()
	if tiling.IsFloating(l) {
		return
	}

	clients := s.tiled(m)
	tiles := make([]tiling.Tile, len(clients))
	for i, c := range clients {
		tiles[i] = tiling.Tile{CFact: c.CFact, Border: c.BW}
	}
	p := tiling.Params{
		Area:        m.W,
		MFact:       m.MFact,
		NMaster:     m.NMaster,
		Gaps:        m.Gaps,
		BarHeight:   s.bh,
		ForceVSplit: s.cfg.Behaviour.ForceVSplit,
	}
	if sym := l.Arrange(p, tiles, func(i int, r platform.Rect) platform.Rect {
		c := clients[i]
		s.resize(c, r.X, r.Y, r.Width, r.Height, false)
		return c.rect()
	}); sym != "" {
		m.LtSymbol = sym
	}
	if _, ok := l.(tiling.Monocle); ok {
		n := 0
		for _, id := range m.clients {
			if s.clients[id].visible() {
				n++
			}
		}
		if n > 0 {
			m.LtSymbol = "[" + strconv.Itoa(n) + "]"
		}
	}
}

// showHide walks the focus stack: visible clients are moved into place top
// down, hidden ones are moved off screen bottom up.
func (s *State) showHide(m *Monitor) {
	stack := s.stackOf(m)
	for _, c := range stack {
		if !c.visible() {
			continue
		}
		c.NeedResize = false
		s.d.MoveResize(c.Win, c.rect())
		if (!s.arranging(m) || c.Floating) && !c.fullscreen() {
			s.resize(c, c.X, c.Y, c.W, c.H, false)
		}
	}
	for i := len(stack) - 1; i >= 0; i-- {
		c := stack[i]
		if c.visible() {
			continue
		}
		if c.ScratchKey != 0 && c.Tags&m.tagset() == 0 {
			c.Tags = s.scratchTag(c)
		}
		s.d.MoveResize(c.Win, platform.Rect{X: c.width() * -2, Y: c.Y, Width: c.W, Height: c.H})
	}
}

// restack raises the floating selection and orders tiled clients below the
// bar in focus order.
func (s *State) restack(m *Monitor) {
	s.drawBar(m)
	if m.sel == nil {
		return
	}
	if m.sel.Floating || !s.arranging(m) {
		s.d.Raise(m.sel.Win)
	}
	if s.arranging(m) {
		sibling := m.Bar
		for _, c := range s.stackOf(m) {
			if !c.Floating && c.visible() {
				s.d.StackBelow(c.Win, sibling)
				sibling = c.Win
			}
		}
	}
	s.d.Sync()
	if m == s.selmon && m.tagset()&m.sel.Tags != 0 && s.arranging(m) {
		s.warp(m.sel)
	}
}

// warp moves the pointer to the centre of c unless it is already inside c
// or over the bar.
func (s *State) warp(c *Client) {
	x, y, ok := s.d.QueryPointer()
	if !ok {
		return
	}
	if c.outer().Contains(x, y) {
		return
	}
	bar := s.barRect(c.Mon)
	if c.Mon.ShowBar && bar.Contains(x, y) {
		return
	}
	s.d.WarpPointer(c.Win, c.W/2, c.H/2)
}

func (s *State) sizeRequest(c *Client, interactive bool) tiling.SizeRequest {
	return tiling.SizeRequest{
		Current:     c.rect(),
		Border:      c.BW,
		Hints:       c.Hints,
		Honor:       s.cfg.Behaviour.ResizeHints || c.Floating || !s.arranging(c.Mon),
		Interactive: interactive,
		Screen:      platform.Rect{Width: s.sw, Height: s.sh},
		Work:        c.Mon.W,
		BarHeight:   s.bh,
	}
}

// resize applies the size hints and only touches the window when the
// geometry changes.
func (s *State) resize(c *Client, x, y, w, h int, interactive bool) {
	r, changed := tiling.ApplySizeHints(s.sizeRequest(c, interactive), platform.Rect{X: x, Y: y, Width: w, Height: h})
	if changed {
		s.resizeClient(c, r.X, r.Y, r.Width, r.Height)
	}
}

// resizeClient moves c unconditionally. A lone tiled client, or any tiled
// client under monocle, loses its border and takes the border space.
func (s *State) resizeClient(c *Client, x, y, w, h int) {
	c.OldX, c.OldY, c.OldW, c.OldH = c.X, c.Y, c.W, c.H
	c.X, c.Y, c.W, c.H = x, y, w, h
	bw := c.BW

	l := s.layout(c.Mon)
	_, monocle := l.(tiling.Monocle)
	if (len(s.tiled(c.Mon)) == 1 || monocle) && !c.fullscreen() && !c.Floating && !tiling.IsFloating(l) {
		w += 2 * bw
		h += 2 * bw
		bw = 0
	}
	s.d.ConfigureClient(c.Win, platform.Rect{X: x, Y: y, Width: w, Height: h}, bw)
	s.configure(c)
	s.d.Sync()
}

// configure sends c a synthetic ConfigureNotify with its current geometry.
func (s *State) configure(c *Client) {
	s.d.SendConfigureNotify(c.Win, c.rect(), c.BW)
}

// setFullscreen enters or leaves fullscreen. A fake fullscreen client only
// records the state.
func (s *State) setFullscreen(c *Client, on bool) {
	if on && !c.Fullscreen {
		s.d.SetFullscreenState(c.Win, true)
		c.Fullscreen = true
		if c.FakeFullscreen {
			s.setBorder(c, c == s.selmon.sel)
			return
		}
		s.enterFullscreen(c)
	} else if !on && c.Fullscreen {
		s.d.SetFullscreenState(c.Win, false)
		c.Fullscreen = false
		if c.FakeFullscreen {
			s.setBorder(c, c == s.selmon.sel)
			s.arrange(c.Mon)
			return
		}
		s.leaveFullscreen(c)
	}
}

func (s *State) enterFullscreen(c *Client) {
	c.OldState = c.Floating
	c.OldBW = c.BW
	c.BW = 0
	c.Floating = true
	s.resizeClient(c, c.Mon.M.X, c.Mon.M.Y, c.Mon.M.Width, c.Mon.M.Height)
	s.d.Raise(c.Win)
}

func (s *State) leaveFullscreen(c *Client) {
	c.Floating = c.OldState
	c.BW = c.OldBW
	c.X, c.Y, c.W, c.H = c.OldX, c.OldY, c.OldW, c.OldH
	s.resizeClient(c, c.X, c.Y, c.W, c.H)
	s.arrange(c.Mon)
}
