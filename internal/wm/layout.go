package wm

import (
	"github.com/1broseidon/dwn/internal/config"
)

// tagRule is the configured rule behind the current tag slot of m.
func (s *State) tagRule(m *Monitor) config.TagRule {
	return s.cfg.TagRuleFor(m.Num, max(m.pertag.CurTag-1, 0))
}

// setMFact changes the master factor by a.F, or sets it to a.F-1 when a.F
// is at least 1. Zero restores the configured value; results outside
// [0.05, 0.95] are ignored.
func (s *State) setMFact(a Arg) {
	m := s.selmon
	if !s.arranging(m) {
		return
	}
	f := a.F + m.MFact
	if a.F >= 1.0 {
		f = a.F - 1.0
	}
	if a.F == 0 {
		f = s.tagRule(m).MFact
	} else if f < 0.05 || f > 0.95 {
		return
	}
	m.MFact = f
	m.store()
	s.arrange(m)
}

// setCFact changes the client factor of the selection. Zero resets it to 1;
// results outside [0.25, 4.0] are ignored.
func (s *State) setCFact(a Arg) {
	m := s.selmon
	c := m.sel
	if c == nil || !s.arranging(m) {
		return
	}
	f := a.F + c.CFact
	if a.F == 0 {
		f = 1.0
	} else if f < 0.25 || f > 4.0 {
		return
	}
	c.CFact = f
	s.arrange(m)
}

func (s *State) incNMaster(a Arg) {
	m := s.selmon
	m.NMaster = max(m.NMaster+a.I, 0)
	m.store()
	s.arrange(m)
}

func (s *State) resetNMaster(Arg) {
	m := s.selmon
	m.NMaster = 1
	m.store()
	s.arrange(m)
}

// setLayout selects layout i in the active slot. Asking for a different
// layout, or passing -1, first flips to the alternate slot.
func (s *State) setLayout(i int) {
	m := s.selmon
	if i >= len(s.layouts) {
		return
	}
	if i < 0 || i != m.Lt[m.SelLt] {
		m.SelLt ^= 1
	}
	if i >= 0 {
		m.Lt[m.SelLt] = i
	}
	m.LtSymbol = s.layout(m).Symbol()
	m.store()
	if m.sel == nil {
		s.drawBar(m)
		return
	}
	s.arrange(m)
	s.setBorder(m.sel, true)
}

func (s *State) setLayoutCmd(a Arg) {
	s.setLayout(a.I)
}

// cycleLayout steps through the layout table, wrapping at both ends.
func (s *State) cycleLayout(a Arg) {
	m := s.selmon
	n := len(s.layouts)
	step := 1
	if a.I < 0 {
		step = -1
	}
	s.setLayout(((m.Lt[m.SelLt]+step)%n + n) % n)
}

// setGaps stores new gap sizes on the selected monitor, clamped at zero.
func (s *State) setGaps(oh, ov, ih, iv int) {
	m := s.selmon
	m.Gaps.OuterH = max(oh, 0)
	m.Gaps.OuterV = max(ov, 0)
	m.Gaps.InnerH = max(ih, 0)
	m.Gaps.InnerV = max(iv, 0)
	m.store()
	s.arrange(m)
}

func (s *State) incrGaps(a Arg) {
	g := s.selmon.Gaps
	s.setGaps(g.OuterH+a.I, g.OuterV+a.I, g.InnerH+a.I, g.InnerV+a.I)
}

func (s *State) incrIGaps(a Arg) {
	g := s.selmon.Gaps
	s.setGaps(g.OuterH, g.OuterV, g.InnerH+a.I, g.InnerV+a.I)
}

func (s *State) incrOGaps(a Arg) {
	g := s.selmon.Gaps
	s.setGaps(g.OuterH+a.I, g.OuterV+a.I, g.InnerH, g.InnerV)
}

func (s *State) incrIHGaps(a Arg) {
	g := s.selmon.Gaps
	s.setGaps(g.OuterH, g.OuterV, g.InnerH+a.I, g.InnerV)
}

func (s *State) incrIVGaps(a Arg) {
	g := s.selmon.Gaps
	s.setGaps(g.OuterH, g.OuterV, g.InnerH, g.InnerV+a.I)
}

func (s *State) incrOHGaps(a Arg) {
	g := s.selmon.Gaps
	s.setGaps(g.OuterH+a.I, g.OuterV, g.InnerH, g.InnerV)
}

func (s *State) incrOVGaps(a Arg) {
	g := s.selmon.Gaps
	s.setGaps(g.OuterH, g.OuterV+a.I, g.InnerH, g.InnerV)
}

func (s *State) toggleGaps(Arg) {
	m := s.selmon
	m.Gaps.Enabled = !m.Gaps.Enabled
	m.store()
	s.arrange(m)
}

func (s *State) toggleSmartGaps(Arg) {
	m := s.selmon
	m.Gaps.Smart = !m.Gaps.Smart
	m.store()
	s.arrange(m)
}

// defaultGaps restores the configured gaps of the current tag.
func (s *State) defaultGaps(Arg) {
	g := s.tagRule(s.selmon).Gaps
	s.setGaps(g.OuterH, g.OuterV, g.InnerH, g.InnerV)
}

// setBorderPx grows or shrinks the border of every client on the selected
// monitor by a.I. Zero restores the configured width. Floating clients keep
// their outer size.
func (s *State) setBorderPx(a Arg) {
	m := s.selmon
	def := s.tagRule(m).BorderPx
	prev := m.BorderPx
	switch {
	case a.I == 0:
		m.BorderPx = def
	case m.BorderPx+a.I < 0:
		m.BorderPx = 0
	default:
		m.BorderPx += a.I
	}
	for _, c := range s.list(m) {
		if c.fullscreen() {
			continue
		}
		c.BW = m.BorderPx
		s.d.SetBorderWidth(c.Win, c.BW)
		if !c.Floating && s.arranging(m) {
			continue
		}
		switch {
		case a.I != 0 && prev+a.I >= 0:
			s.resize(c, c.X, c.Y, c.W-2*a.I, c.H-2*a.I, false)
		case a.I != 0:
			s.resizeClient(c, c.X, c.Y, c.W, c.H)
		case prev != def:
			s.resize(c, c.X, c.Y, c.W+2*(prev-def), c.H+2*(prev-def), false)
		}
	}
	m.store()
	s.arrange(m)
}

func (s *State) toggleBar(Arg) {
	m := s.selmon
	m.ShowBar = !m.ShowBar
	m.store()
	s.updateBarPos(m)
	s.resizeBar(m)
	s.arrange(m)
}

func (s *State) toggleTopBar(Arg) {
	m := s.selmon
	m.TopBar = !m.TopBar
	m.store()
	s.defaultGaps(Arg{})
}

// toggleVacant hides or shows the labels of empty tags.
func (s *State) toggleVacant(Arg) {
	m := s.selmon
	m.VacTag = !m.VacTag
	m.store()
	s.drawBar(m)
}

// togglePadding switches the bar between flush and padded. Padding moves
// the outer gaps in to match and turns smart gaps off.
func (s *State) togglePadding(Arg) {
	m := s.selmon
	def := s.tagRule(m).Gaps
	if m.TPadding {
		m.VP, m.SP = 0, 0
		m.Gaps.Smart = true
		m.Gaps.OuterH, m.Gaps.OuterV = def.OuterH, def.OuterV
	} else {
		pad := s.cfg.Behaviour.PaddingToggle
		m.VP, m.SP = pad.Vertical, pad.Side
		m.Gaps.Smart = false
		m.Gaps.OuterH, m.Gaps.OuterV = pad.Side, pad.Side
	}
	m.Gaps.InnerH, m.Gaps.InnerV = def.InnerH, def.InnerV
	m.TPadding = !m.TPadding
	m.store()
	s.updateBarPos(m)
	s.arrange(m)
}
