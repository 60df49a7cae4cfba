package wm

import (
	"github.com/1broseidon/dwn/internal/hotkeys"
	"github.com/1broseidon/dwn/internal/platform"
)

// borderPixel picks the border colour of c: sticky, then floating, then fake
// fullscreen, then the colour of the monitor's layout.
func (s *State) borderPixel(c *Client, selected bool) uint32 {
	p := s.colors
	pick := func(norm, sel uint32) uint32 {
		if selected {
			return sel
		}
		return norm
	}
	switch {
	case c.Sticky:
		return pick(p.stickyNorm, p.stickySel)
	case c.Floating && !c.fullscreen():
		return pick(p.floatNorm, p.floatSel)
	case c.Fullscreen && c.FakeFullscreen:
		return pick(p.fakeNorm, p.fakeSel)
	}
	i := c.Mon.Lt[c.Mon.SelLt]
	return pick(p.layoutNorm[i], p.layoutSel[i])
}

func (s *State) setBorder(c *Client, selected bool) {
	s.d.SetBorderColor(c.Win, s.borderPixel(c, selected))
}

func (s *State) grabButtons(c *Client, focused bool) {
	var grabs []platform.ButtonGrab
	if focused {
		grabs = hotkeys.ClientGrabs(s.buttons, s.d.NumLockMask(), s.d.ScrollLockMask())
	}
	s.d.GrabButtons(c.Win, focused, grabs)
}

// focus selects c, or the most recently focused visible client of the
// selected monitor when c is nil or hidden.
func (s *State) focus(c *Client) {
	if c == nil || !c.visible() {
		c = nil
		for _, t := range s.stackOf(s.selmon) {
			if t.visible() {
				c = t
				break
			}
		}
	}
	if sel := s.selmon.sel; sel != nil && sel != c {
		s.unfocus(sel, false)
	}
	if c != nil {
		if c.Mon != s.selmon {
			s.prevmon = s.selmon
			s.selmon = c.Mon
		}
		if c.Urgent {
			s.setUrgent(c, false)
		}
		s.detachStack(c)
		s.attachStack(c)
		s.grabButtons(c, true)
		s.setBorder(c, true)
		s.setFocus(c)
	} else {
		s.d.FocusRoot()
	}
	s.selmon.sel = c
	s.drawBars()
}

func (s *State) unfocus(c *Client, setFocus bool) {
	if c == nil {
		return
	}
	s.grabButtons(c, false)
	s.setBorder(c, false)
	if setFocus {
		s.d.FocusRoot()
	}
}

// setFocus gives c the input focus unless it refuses it, and offers
// WM_TAKE_FOCUS either way.
func (s *State) setFocus(c *Client) {
	s.d.SetFocus(c.Win, !c.NeverFocus)
	s.d.SendProtocol(c.Win, "WM_TAKE_FOCUS")
}

func (s *State) setUrgent(c *Client, urgent bool) {
	c.Urgent = urgent
	s.d.SetUrgent(c.Win, urgent)
}

// focusStack moves the focus to the next (dir > 0) or previous visible
// client in tiling order, wrapping around.
func (s *State) focusStack(dir int) {
	m := s.selmon
	sel := m.sel
	if sel == nil || sel.fullscreen() {
		return
	}
	list := s.list(m)
	at := indexOf(m.clients, sel.ID)
	var c *Client
	if dir > 0 {
		for i := 1; i <= len(list) && c == nil; i++ {
			if t := list[(at+i)%len(list)]; t.visible() {
				c = t
			}
		}
	} else {
		for i := 1; i <= len(list) && c == nil; i++ {
			if t := list[(at-i+len(list))%len(list)]; t.visible() {
				c = t
			}
		}
	}
	if c != nil {
		s.focus(c)
		s.restack(m)
	}
}

// focusDir focuses the visible client closest in a direction: 0 left,
// 1 right, 2 up, 3 down. Distance wraps around the work area, so the far
// edge is a candidate too. Only clients sharing the selection's floating
// state are considered.
func (s *State) focusDir(dir int) {
	m := s.selmon
	sel := m.sel
	if sel == nil {
		return
	}
	const weight = 20
	list := s.list(m)
	at := indexOf(m.clients, sel.ID)
	var found *Client
	score := -1
	for i := 1; i < len(list); i++ {
		c := list[(at+i)%len(list)]
		if !c.visible() || c.Floating != sel.Floating {
			continue
		}
		var dist, cs int
		switch dir {
		case 0:
			dist = sel.X - c.X - c.W
			cs = weight*min(abs(dist), abs(dist+m.W.Width)) + abs(sel.Y-c.Y)
		case 1:
			dist = c.X - sel.X - sel.W
			cs = weight*min(abs(dist), abs(dist+m.W.Width)) + abs(c.Y-sel.Y)
		case 2:
			dist = sel.Y - c.Y - c.H
			cs = weight*min(abs(dist), abs(dist+m.W.Height)) + abs(sel.X-c.X)
		default:
			dist = c.Y - sel.Y - sel.H
			cs = weight*min(abs(dist), abs(dist+m.W.Height)) + abs(c.X-sel.X)
		}
		if score < 0 || cs < score || ((dir == 0 || dir == 2) && cs == score) {
			score = cs
			found = c
		}
	}
	if found != nil {
		s.focus(found)
		s.restack(m)
	}
}

// focusMon moves the selection to the monitor in direction dir.
func (s *State) focusMon(dir int) {
	if len(s.mons) < 2 {
		return
	}
	m := s.dirToMon(dir)
	if m == s.selmon {
		return
	}
	s.unfocus(s.selmon.sel, false)
	if m.Bar != platform.None {
		s.d.WarpPointer(m.Bar, m.M.Width/2, m.M.Height/2)
	}
	s.prevmon = s.selmon
	s.selmon = m
	s.focus(nil)
}

// sendMon moves c to m, retagging it to m's view.
func (s *State) sendMon(c *Client, m *Monitor) {
	if c.Mon == m {
		return
	}
	s.unfocus(c, true)
	s.detach(c)
	s.detachStack(c)
	c.Mon = m
	if t := m.tagset(); t != 0 {
		c.Tags = t | s.scratchTag(c)
	} else {
		c.Tags = 1 | s.scratchTag(c)
	}
	s.attachDefault(c)
	s.attachStack(c)
	s.focus(nil)
	s.arrange(nil)
	c.SwitchTag = 0
}
