package wm

import (
	"math/bits"
)

// view shows mask on the selected monitor. Viewing the active mask again
// collapses to an empty view.
func (s *State) view(mask uint32) {
	s.viewOn(s.selmon, mask)
}

func (s *State) viewOn(m *Monitor, mask uint32) {
	s.prevmon = nil
	if mask != 0 && mask&s.cfg.TagMask() == m.tagset() {
		// Viewing the active set again empties the view; view 0 returns.
		m.SelTags ^= 1
		m.setTagset(0)
		m.pertag.PrevTag = m.pertag.CurTag
	} else {
		s.switchView(m, mask)
	}
	s.focus(nil)
	s.arrange(m)
	s.updateCurrentDesktop()

	if sel := s.selmon.sel; sel != nil && sel.fullscreen() {
		s.resizeClient(sel, sel.Mon.M.X, sel.Mon.M.Y, sel.Mon.M.Width, sel.Mon.M.Height)
		s.d.Raise(sel.Win)
	}
}

// switchView flips m to its other tag set slot and loads the pertag values
// of the new view. A zero mask returns to the previous view.
func (s *State) switchView(m *Monitor, mask uint32) {
	tm := s.cfg.TagMask()
	m.SelTags ^= 1
	if mask&tm != 0 {
		m.pertag.PrevTag = m.pertag.CurTag
		m.setTagset(mask & tm)
		m.pertag.CurTag = slotFor(mask&tm, tm)
	} else {
		m.pertag.CurTag, m.pertag.PrevTag = m.pertag.PrevTag, m.pertag.CurTag
	}
	m.load()
}

// updateCurrentDesktop exports the lowest tag of the selected view.
func (s *State) updateCurrentDesktop() {
	t := s.selmon.tagset() & s.cfg.TagMask()
	n := 0
	if t != 0 {
		n = bits.TrailingZeros32(t)
	}
	s.d.SetCurrentDesktop(n)
}

func (s *State) toggleView(mask uint32) {
	m := s.selmon
	next := m.tagset() ^ (mask & s.cfg.TagMask())

	// Keep the first tiled client in front of the newly shown ones.
	if first, _ := s.nextTiled(m, 0); first != nil {
		s.detach(first)
		s.attach(first)
	}
	m.setTagset(next)
	s.focus(nil)
	s.arrange(m)
	s.updateCurrentDesktop()
}

func (s *State) tag(mask uint32) {
	sel := s.selmon.sel
	if sel == nil || mask&s.cfg.TagMask() == 0 {
		return
	}
	sel.Tags = mask&s.cfg.TagMask() | s.scratchTag(sel)
	sel.SwitchTag = 0
	s.focus(nil)
	s.arrange(s.selmon)
}

func (s *State) toggleTag(mask uint32) {
	sel := s.selmon.sel
	if sel == nil {
		return
	}
	next := sel.Tags ^ (mask & s.cfg.TagMask())
	if next == 0 {
		return
	}
	sel.Tags = next
	s.focus(nil)
	s.arrange(s.selmon)
}

// tagWith moves the selection to mask and follows it.
func (s *State) tagWith(mask uint32) {
	if s.selmon.sel == nil || mask&s.cfg.TagMask() == 0 {
		return
	}
	s.tag(mask)
	s.view(mask)
}

// swapTags exchanges the clients of the single viewed tag with those of
// mask and views mask.
func (s *State) swapTags(mask uint32) {
	m := s.selmon
	next := mask & s.cfg.TagMask()
	cur := m.tagset()
	if next == cur || cur == 0 || cur&(cur-1) != 0 {
		return
	}
	for _, c := range s.list(m) {
		if c.Tags&(next|cur) != 0 {
			c.Tags ^= cur ^ next
		}
		if c.Tags == 0 {
			c.Tags = next
		}
	}
	m.setTagset(next)
	s.focus(nil)
	s.arrange(m)
}

// comboView views mask, adding further tags while the combo key stays down.
func (s *State) comboView(mask uint32) {
	m := s.selmon
	next := mask & s.cfg.TagMask()
	if s.combo {
		m.setTagset(m.tagset() | next)
	} else {
		s.combo = true
		if next != 0 {
			s.view(next)
		}
	}
	s.focus(nil)
	s.arrange(m)
}

// comboTag tags the selection with mask, accumulating until key release.
func (s *State) comboTag(mask uint32) {
	sel := s.selmon.sel
	next := mask & s.cfg.TagMask()
	if sel == nil || next == 0 {
		return
	}
	if s.combo {
		sel.Tags |= next
	} else {
		s.combo = true
		sel.Tags = next | s.scratchTag(sel)
	}
	s.focus(nil)
	s.arrange(s.selmon)
}

// goBack returns to the previously selected monitor, or to the previous
// view when there is none.
func (s *State) goBack(Arg) {
	switch {
	case s.prevmon == nil:
		s.view(0)
	case s.prevmon != s.selmon:
		s.unfocus(s.selmon.sel, false)
		p := s.selmon
		s.selmon = s.prevmon
		s.focus(nil)
		s.prevmon = p
	}
}

// nextTag rotates the single selected tag forwards or backwards, skipping
// empty tags, or occupied ones when empty is set.
func (s *State) nextTag(prev, empty bool) uint32 {
	m := s.selmon
	tag := m.tagset()
	if len(m.clients) == 0 {
		return tag
	}
	var used uint32
	for _, c := range s.list(m) {
		used |= c.Tags
	}
	n := len(s.cfg.Tags)
	last := uint32(1) << uint(n-1)
	if tag == 0 || tag&(tag-1) != 0 {
		tag = 1 << uint(bits.TrailingZeros32(tag|last))
	}
	for i := 0; i < n; i++ {
		if prev {
			if tag == 1 {
				tag = last
			} else {
				tag >>= 1
			}
		} else {
			if tag == last {
				tag = 1
			} else {
				tag <<= 1
			}
		}
		if (tag&used != 0) != empty {
			return tag
		}
	}
	return m.tagset()
}

// shiftViewClients rotates the view by a.I tags, landing on the next tag
// that holds clients.
func (s *State) shiftViewClients(a Arg) {
	m := s.selmon
	tm := s.cfg.TagMask()
	n := uint(len(s.cfg.Tags))
	var occupied uint32
	for _, c := range s.list(m) {
		occupied |= c.Tags & tm
	}
	shifted := m.tagset() & tm
	if shifted == 0 || a.I == 0 {
		return
	}
	shift := uint(((a.I % int(n)) + int(n)) % int(n))
	for i := uint(0); i < n; i++ {
		shifted = (shifted<<shift | shifted>>(n-shift)) & tm
		if occupied == 0 || shifted&occupied != 0 {
			break
		}
	}
	s.view(shifted)
}

// winView views every tag of the focused client.
func (s *State) winView(Arg) {
	sel := s.selmon.sel
	if sel == nil || sel.Tags&s.cfg.TagMask() == 0 {
		return
	}
	s.view(sel.Tags & s.cfg.TagMask())
}

// reorganizeTags packs the clients of the selected monitor onto the lowest
// tags, keeping their relative order.
func (s *State) reorganizeTags(Arg) {
	m := s.selmon
	tm := s.cfg.TagMask()
	n := len(s.cfg.Tags)

	var occ uint32
	for _, c := range s.list(m) {
		if c.Tags&tm != 0 {
			occ |= 1 << uint(bits.TrailingZeros32(c.Tags&tm))
		}
	}
	dest := make([]int, n)
	next := 0
	for i := 0; i < n; i++ {
		if occ&(1<<uint(i)) != 0 {
			dest[i] = next
			next++
		}
	}
	for _, c := range s.list(m) {
		if c.Tags&tm == 0 {
			continue
		}
		c.Tags = 1 << uint(dest[bits.TrailingZeros32(c.Tags&tm)])
	}
	if m.sel != nil && m.sel.Tags&tm != 0 {
		m.setTagset(m.sel.Tags & tm)
	}
	s.arrange(m)
}

// focusOtherMon switches the next (dir > 0) or previous monitor to mask and
// focuses it.
func (s *State) focusOtherMon(mask uint32, dir int) {
	if len(s.mons) < 2 {
		return
	}
	m := s.dirToMon(dir)
	s.prevmon = nil
	s.switchView(m, mask)
	s.focus(nil)
	s.arrange(m)
	s.updateCurrentDesktop()
	s.focusMon(dir)
}

// tagOtherMon sends the selection to the next or previous monitor with the
// tags in mask.
func (s *State) tagOtherMon(mask uint32, dir int) {
	sel := s.selmon.sel
	if sel == nil || len(s.mons) < 2 {
		return
	}
	m := s.dirToMon(dir)
	s.sendMon(sel, m)
	if mask&s.cfg.TagMask() != 0 {
		sel.Tags = mask&s.cfg.TagMask() | s.scratchTag(sel)
		s.focus(nil)
		s.arrange(m)
	}
}

func (s *State) tagMon(a Arg) {
	if s.selmon.sel == nil || len(s.mons) < 2 {
		return
	}
	s.sendMon(s.selmon.sel, s.dirToMon(a.I))
}
