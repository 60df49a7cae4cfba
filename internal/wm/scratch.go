package wm

// toggleScratch shows or hides every client of scratchpad a.I. When all of
// them are visible they are hidden; otherwise they are shown on their
// monitor, or pulled onto the selected monitor when they all live
// elsewhere. With no such client the scratchpad command is spawned.
func (s *State) toggleScratch(a Arg) {
	if a.I < 0 || a.I >= len(s.cfg.Scratchpads) {
		return
	}
	key := a.I + 1

	var matches []*Client
	visible := 0
	multi := false
	var home *Monitor
	for _, m := range s.mons {
		for _, c := range s.list(m) {
			if c.ScratchKey != key {
				continue
			}
			if home != nil && home != m {
				multi = true
			}
			home = m
			if c.Tags&m.tagset() != 0 {
				visible++
			}
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		s.run(s.cfg.Scratchpads[a.I].Command)
		return
	}

	var found *Client
	var moving []*Client
	for _, m := range s.mons {
		for _, c := range s.stackOf(m) {
			if c.ScratchKey != key {
				continue
			}
			if found == nil || (m == s.selmon && c.Mon != s.selmon) {
				found = c
			}
			s.unfocus(c, false)
			switch {
			case !multi && c.Mon != s.selmon:
				s.detach(c)
				s.detachStack(c)
				moving = append(moving, c)
			case visible == len(matches):
				c.Tags = s.scratchTag(c)
			default:
				c.Tags = c.Mon.tagset() | s.scratchTag(c)
				if c.Floating {
					s.d.Raise(c.Win)
				}
			}
		}
	}

	for _, c := range moving {
		from := c.Mon
		c.Mon = s.selmon
		c.Tags = s.selmon.tagset() | s.scratchTag(c)
		s.attachTail(c)
		s.attachStack(c)
		if !c.Floating {
			continue
		}
		if len(matches) > 1 {
			c.X = scaleInto(c.X, from.W.X, from.W.Width, s.selmon.W.X, s.selmon.W.Width, c.width())
			c.Y = scaleInto(c.Y, from.W.Y, from.W.Height, s.selmon.W.Y, s.selmon.W.Height, c.height())
		}
		clampTo(c, s.selmon)
		s.resizeClient(c, c.X, c.Y, c.W, c.H)
		s.d.Raise(c.Win)
	}

	if found.visible() {
		s.focus(found)
	} else {
		s.focus(nil)
	}
	s.arrange(nil)
	if found.Floating {
		s.d.Raise(found.Win)
	}
}

// scaleInto maps offset v of a window of size extent from one span onto
// another, keeping its relative position.
func scaleInto(v, fromOrigin, fromSize, toOrigin, toSize, extent int) int {
	num := abs(toSize - extent)
	den := max(abs(fromSize-extent), 1)
	return toOrigin + int(float64(v-fromOrigin)*float64(num)/float64(den))
}

// scratchTag is the reserved tag bit c carries as a scratchpad, or 0.
func (s *State) scratchTag(c *Client) uint32 {
	if c.ScratchKey <= 0 || c.ScratchKey > len(s.cfg.Scratchpads) {
		return 0
	}
	return s.cfg.ScratchTag(c.ScratchKey - 1)
}

// setScratch binds the selection to scratchpad a.I.
func (s *State) setScratch(a Arg) {
	c := s.selmon.sel
	if c == nil || a.I < 0 || a.I >= len(s.cfg.Scratchpads) {
		return
	}
	c.Tags &^= s.scratchTag(c)
	c.ScratchKey = a.I + 1
	c.Tags |= s.scratchTag(c)
}

// removeScratch releases the selection from its scratchpad. A client left
// without a regular tag lands on the current view.
func (s *State) removeScratch(Arg) {
	c := s.selmon.sel
	if c == nil || c.ScratchKey == 0 {
		return
	}
	c.Tags &^= s.scratchTag(c)
	c.ScratchKey = 0
	if c.Tags&s.cfg.TagMask() == 0 {
		if t := c.Mon.tagset(); t != 0 {
			c.Tags = t
		} else {
			c.Tags = 1
		}
	}
	s.arrange(c.Mon)
}
