package wm

import "github.com/1broseidon/dwn/internal/platform"

func (s *State) spawnCmd(a Arg) {
	s.run(a.V)
}

// kill asks c to close through WM_DELETE_WINDOW and kills its connection
// when it does not speak the protocol.
func (s *State) kill(c *Client) {
	if !s.d.SendProtocol(c.Win, "WM_DELETE_WINDOW") {
		s.d.KillClient(c.Win)
	}
}

// killClient closes the selection unless it is marked permanent.
func (s *State) killClient(Arg) {
	if sel := s.selmon.sel; sel != nil && !sel.Permanent {
		s.kill(sel)
	}
}

func (s *State) killPermanent(Arg) {
	if sel := s.selmon.sel; sel != nil {
		s.kill(sel)
	}
}

// killUnsel closes every other visible client of the selected monitor.
func (s *State) killUnsel(Arg) {
	sel := s.selmon.sel
	if sel == nil {
		return
	}
	for _, c := range s.list(s.selmon) {
		if c.visible() && c != sel && !c.Permanent {
			s.kill(c)
		}
	}
}

func (s *State) killOnTag(a Arg) {
	for _, c := range s.list(s.selmon) {
		if c.Tags&a.UI != 0 {
			s.kill(c)
		}
	}
}

// quit stops the event loop. A non-zero argument saves the state of every
// monitor first and asks for a restart.
func (s *State) quit(a Arg) {
	if a.I != 0 {
		for _, m := range s.mons {
			s.save(m)
		}
		s.restart = true
	}
	s.running = false
}

// before returns the client preceding c in its monitor's tiling list.
func (s *State) before(c *Client) *Client {
	i := indexOf(c.Mon.clients, c.ID)
	if i <= 0 {
		return nil
	}
	return s.clients[c.Mon.clients[i-1]]
}

// insertAfter moves c right behind at in the tiling list, or to the front
// when at is nil.
func (s *State) insertAfter(c, at *Client) {
	s.detach(c)
	if at == nil {
		s.attach(c)
		return
	}
	c.Mon.clients = insertAt(c.Mon.clients, indexOf(c.Mon.clients, at.ID)+1, c.ID)
}

// zoom swaps the selection with the master. Zooming the master swaps it
// back with the client it displaced last, or with the next tiled client.
func (s *State) zoom(Arg) {
	m := s.selmon
	c := m.sel
	if c == nil || c.Floating || !s.arranging(m) {
		return
	}
	master, _ := s.nextTiled(m, 0)
	if p := s.prevzoom; p != nil && (s.clients[p.ID] != p || p.Mon != m) {
		s.prevzoom = nil
	}

	var at *Client
	if c == master {
		var prev *Client
		if s.prevzoom != nil {
			at = s.before(s.prevzoom)
		}
		if at != nil {
			prev, _ = s.nextTiled(m, indexOf(m.clients, at.ID)+1)
		}
		if prev == nil || prev != s.prevzoom {
			s.prevzoom = nil
			next, _ := s.nextTiled(m, indexOf(m.clients, c.ID)+1)
			if next == nil {
				return
			}
			c = next
		} else {
			c = prev
		}
	}
	if c != master && at == nil {
		at = s.before(c)
	}
	s.detach(c)
	s.attach(c)
	if c != master && at != nil {
		s.prevzoom = master
		if master != nil && at != master {
			s.insertAfter(master, at)
		}
	}
	s.focus(c)
	s.arrange(m)
}

// transfer moves the selection between the master and stack areas,
// adjusting nmaster to match.
func (s *State) transfer(Arg) {
	m := s.selmon
	sel := m.sel
	if sel == nil || sel.Floating {
		return
	}
	tiled := s.tiled(m)
	if len(tiled) == 0 {
		return
	}
	toStack := false
	var mtail *Client
	for i, c := range tiled {
		if c == sel {
			toStack = i < m.NMaster && m.NMaster != 0
		}
		if i < m.NMaster {
			mtail = c
		}
	}
	stail := tiled[len(tiled)-1]

	var after *Client
	if toStack {
		m.NMaster = min(len(tiled), m.NMaster) - 1
		after = stail
	} else {
		m.NMaster++
		after = mtail
	}
	if after != sel {
		if m.NMaster == 1 && !toStack {
			after = nil
		}
		s.insertAfter(sel, after)
	}
	m.store()
	s.arrange(m)
}

// pushDown swaps the selection with the next tiled client. The master is
// left alone.
func (s *State) pushDown(Arg) {
	m := s.selmon
	sel := m.sel
	if sel == nil || sel.Floating {
		return
	}
	if master, _ := s.nextTiled(m, 0); sel == master {
		return
	}
	if c, _ := s.nextTiled(m, indexOf(m.clients, sel.ID)+1); c != nil {
		s.insertAfter(sel, c)
	}
	s.focus(sel)
	s.arrange(m)
}

// pushUp swaps the selection with the previous tiled client, stopping
// below the master.
func (s *State) pushUp(Arg) {
	m := s.selmon
	sel := m.sel
	if sel == nil || sel.Floating {
		return
	}
	master, _ := s.nextTiled(m, 0)
	if c := s.prevTiled(m, sel); c != nil && c != master {
		s.detach(sel)
		m.clients = insertAt(m.clients, indexOf(m.clients, c.ID), sel.ID)
	}
	s.focus(sel)
	s.arrange(m)
}

// inplaceRotate rotates the area holding the selection, master or stack,
// by one place. An argument of ±2 rotates every tiled client. Focus stays
// at the same position.
func (s *State) inplaceRotate(a Arg) {
	m := s.selmon
	sel := m.sel
	if sel == nil || sel.Floating || a.I == 0 {
		return
	}
	tiled := s.tiled(m)
	at := -1
	for i, c := range tiled {
		if c == sel {
			at = i
		}
	}
	if at < 0 {
		return
	}
	group := tiled
	switch {
	case a.I == 2 || a.I == -2:
	case at < m.NMaster:
		group = tiled[:min(m.NMaster, len(tiled))]
	default:
		group = tiled[min(m.NMaster, len(tiled)):]
	}
	if len(group) < 2 {
		return
	}
	first, last := group[0], group[len(group)-1]
	if a.I > 0 {
		s.detach(last)
		m.clients = insertAt(m.clients, indexOf(m.clients, first.ID), last.ID)
	} else {
		s.insertAfter(first, last)
	}
	s.arrange(m)
	s.focus(s.tiled(m)[at])
}

func (s *State) focusMaster(Arg) {
	m := s.selmon
	if m.NMaster < 1 || m.sel == nil || m.sel.fullscreen() {
		return
	}
	if c, _ := s.nextTiled(m, 0); c != nil {
		s.focus(c)
		s.restack(m)
	}
}

// switchCol focuses the most recently used client of the other column.
func (s *State) switchCol(Arg) {
	m := s.selmon
	if m.sel == nil {
		return
	}
	tiled := s.tiled(m)
	pos := func(c *Client) int {
		for i, t := range tiled {
			if t == c {
				return i
			}
		}
		return -1
	}
	i := pos(m.sel)
	if i < 0 || len(tiled) < 2 {
		return
	}
	stack := i >= m.NMaster
	for _, c := range s.stackOf(m) {
		if !c.visible() {
			continue
		}
		if j := pos(c); j >= 0 && (j >= m.NMaster) != stack {
			s.focus(c)
			s.restack(m)
			return
		}
	}
}

// focusWin focuses the a.I-th visible client in tiling order.
func (s *State) focusWin(a Arg) {
	n := a.I
	for _, c := range s.list(s.selmon) {
		if !c.visible() {
			continue
		}
		if n == 0 {
			s.focus(c)
			s.restack(s.selmon)
			return
		}
		n--
	}
}

// activate focuses the client owning window a.I, moving to its monitor and
// viewing its tags when it is hidden.
func (s *State) activate(a Arg) {
	c := s.winToClient(platform.WindowID(a.I))
	if c == nil {
		return
	}
	if c.Mon != s.selmon {
		s.unfocus(s.selmon.sel, false)
		s.selmon = c.Mon
	}
	if !c.visible() {
		mask := c.Tags & s.cfg.TagMask()
		if mask == 0 {
			return
		}
		s.viewOn(c.Mon, mask)
	}
	s.focus(c)
	s.restack(c.Mon)
}

// toggleFloating flips the selection between tiled and floating. A client
// returning to floating gets its last floating geometry back.
func (s *State) toggleFloating(Arg) {
	sel := s.selmon.sel
	if sel == nil || sel.fullscreen() {
		return
	}
	sel.Floating = !sel.Floating || sel.Fixed
	if sel.Floating {
		s.resize(sel, sel.StoredX, sel.StoredY, sel.StoredW, sel.StoredH, false)
	} else {
		sel.saveFloatGeometry()
	}
	s.setBorder(sel, true)
	s.arrange(s.selmon)
}

// unfloatVisible tiles every visible floating client, then switches to
// layout a.I when one is given.
func (s *State) unfloatVisible(a Arg) {
	m := s.selmon
	for _, c := range s.list(m) {
		if c.visible() && c.Floating && !c.fullscreen() {
			c.Floating = c.Fixed
			s.setBorder(c, c == m.sel)
		}
	}
	if a.I >= 0 {
		s.setLayout(a.I)
		return
	}
	s.arrange(m)
}

func (s *State) toggleSticky(Arg) {
	sel := s.selmon.sel
	if sel == nil {
		return
	}
	sel.Sticky = !sel.Sticky
	s.setBorder(sel, true)
	s.arrange(s.selmon)
}

func (s *State) toggleFullscreen(Arg) {
	if sel := s.selmon.sel; sel != nil {
		s.setFullscreen(sel, !sel.Fullscreen)
	}
}

// toggleFakeFullscreen marks the selection fullscreen without covering the
// monitor. A really fullscreen client drops to fake fullscreen.
func (s *State) toggleFakeFullscreen(Arg) {
	c := s.selmon.sel
	if c == nil {
		return
	}
	switch {
	case c.FakeFullscreen:
		s.setFullscreen(c, false)
		c.FakeFullscreen = false
		s.setBorder(c, true)
	case c.Fullscreen:
		s.setFullscreen(c, false)
		c.FakeFullscreen = true
		s.setFullscreen(c, true)
	default:
		c.FakeFullscreen = true
		s.setFullscreen(c, true)
	}
}

// moveResize moves and resizes a floating selection by a geometry spec.
// The pointer follows the window when it was inside it.
func (s *State) moveResize(a Arg) {
	m := s.selmon
	c := m.sel
	if c == nil || (s.arranging(m) && !c.Floating) {
		return
	}
	g, err := parseMoveResize(a.S)
	if err != nil {
		s.logger.Warn("bad moveresize argument", "arg", a.S, "error", err)
		return
	}

	nw := c.W + g.W
	if g.AbsW {
		nw = min(g.W, m.M.Width-2*c.BW)
	}
	nh := c.H + g.H
	if g.AbsH {
		nh = min(g.H, m.M.Height-2*c.BW)
	}
	nx := c.X + g.X
	if g.AbsX {
		switch {
		case g.X < m.M.X:
			nx = m.M.X
		case g.X > m.M.X+m.M.Width:
			nx = m.M.X + m.M.Width - nw - 2*c.BW
		default:
			nx = g.X
		}
	}
	ny := c.Y + g.Y
	if g.AbsY {
		switch {
		case g.Y < m.M.Y:
			ny = m.M.Y
		case g.Y > m.M.Y+m.M.Height:
			ny = m.M.Y + m.M.Height - nh - 2*c.BW
		default:
			ny = g.Y
		}
	}

	old := c.rect()
	s.d.Raise(c.Win)
	px, py, inside := s.d.QueryPointer()
	s.resize(c, nx, ny, nw, nh, true)
	if !inside || !old.Contains(px, py) {
		return
	}
	dx := c.X - old.X + c.W - old.Width
	dy := c.Y - old.Y + c.H - old.Height
	if px+dx > c.X && py+dy > c.Y {
		s.d.WarpPointer(s.d.Root(), px+dx, py+dy)
	}
}

// moveCenter floats the selection and centres it on its monitor.
func (s *State) moveCenter(Arg) {
	c := s.selmon.sel
	if c == nil {
		return
	}
	if !c.Floating {
		s.toggleFloating(Arg{})
	}
	c.X = c.Mon.M.X + (c.Mon.M.Width-c.width())/2
	c.Y = c.Mon.M.Y + (c.Mon.M.Height-c.height())/2
	s.arrange(s.selmon)
}

// clampTo keeps a floating client inside the work area of m.
func clampTo(c *Client, m *Monitor) {
	if c.W > m.W.Width {
		c.W = m.W.Width - 2*c.BW
	}
	if c.H > m.W.Height {
		c.H = m.W.Height - 2*c.BW
	}
	if !m.M.Contains(c.X, c.Y) {
		c.X = m.W.X + (m.W.Width/2 - c.width()/2)
		c.Y = m.W.Y + (m.W.Height/2 - c.height()/2)
	}
}
