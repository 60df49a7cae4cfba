package wm

import (
	"math/bits"

	"github.com/1broseidon/dwn/internal/config"
	"github.com/1broseidon/dwn/internal/persist"
	"github.com/1broseidon/dwn/internal/platform"
	"github.com/1broseidon/dwn/internal/tiling"
)

// tagSlot is the per-tag configuration of a monitor. Slot 0 belongs to the
// all-tags view, slot i+1 to tag i.
type tagSlot struct {
	NMaster  int
	MFact    float64
	SelLt    int
	Lt       [2]int
	Gaps     tiling.Gaps
	ShowBar  bool
	TopBar   bool
	BorderPx int
	VacTag   bool
	TPadding bool
	VP, SP   int
}

// Pertag holds every tag slot of a monitor plus the current and previous
// slot indices.
type Pertag struct {
	CurTag  int
	PrevTag int
	Slots   []tagSlot
}

// Monitor is one physical display region.
type Monitor struct {
	Num int
	// M is the monitor rect, W the work rect left after the bar.
	M, W platform.Rect
	BarY int
	Bar  platform.WindowID

	LtSymbol string
	Lt       [2]int
	SelLt    int
	MFact    float64
	NMaster  int
	SelTags  int
	TagSet   [2]uint32

	Gaps     tiling.Gaps
	ShowBar  bool
	TopBar   bool
	BorderPx int
	VacTag   bool
	TPadding bool
	VP, SP   int

	clients []ClientID
	stack   []ClientID
	sel     *Client
	pertag  Pertag
}

func (m *Monitor) tagset() uint32 { return m.TagSet[m.SelTags] }

func (m *Monitor) setTagset(v uint32) { m.TagSet[m.SelTags] = v }

// Sel returns the selected client of m.
func (m *Monitor) Sel() *Client { return m.sel }

func (m *Monitor) slot() *tagSlot { return &m.pertag.Slots[m.pertag.CurTag] }

// store writes the live values into the current tag slot.
func (m *Monitor) store() {
	*m.slot() = tagSlot{
		NMaster:  m.NMaster,
		MFact:    m.MFact,
		SelLt:    m.SelLt,
		Lt:       m.Lt,
		Gaps:     m.Gaps,
		ShowBar:  m.ShowBar,
		TopBar:   m.TopBar,
		BorderPx: m.BorderPx,
		VacTag:   m.VacTag,
		TPadding: m.TPadding,
		VP:       m.VP,
		SP:       m.SP,
	}
}

// load copies the current tag slot into the live values.
func (m *Monitor) load() {
	t := m.slot()
	m.NMaster = t.NMaster
	m.MFact = t.MFact
	m.SelLt = t.SelLt
	m.Lt = t.Lt
	m.Gaps = t.Gaps
	m.ShowBar = t.ShowBar
	m.TopBar = t.TopBar
	m.BorderPx = t.BorderPx
	m.VacTag = t.VacTag
	m.TPadding = t.TPadding
	m.VP = t.VP
	m.SP = t.SP
}

// slotFor returns the tag slot selected by a view mask: 0 for the all-tags
// view, otherwise one past the lowest set bit.
func slotFor(mask, tagMask uint32) int {
	if mask == 0 {
		return 0
	}
	if mask&tagMask == tagMask && bits.OnesCount32(tagMask) > 1 {
		return 0
	}
	return bits.TrailingZeros32(mask) + 1
}

func (s *State) layout(m *Monitor) tiling.Layout {
	return s.layouts[m.Lt[m.SelLt]]
}

// arranging reports whether m's layout places clients.
func (s *State) arranging(m *Monitor) bool {
	return !tiling.IsFloating(s.layout(m))
}

func slotFromRule(r config.TagRule, ltIdx, alt int) tagSlot {
	return tagSlot{
		NMaster: r.NMaster,
		MFact:   r.MFact,
		Lt:      [2]int{ltIdx, alt},
		Gaps: tiling.Gaps{
			OuterH:  r.Gaps.OuterH,
			OuterV:  r.Gaps.OuterV,
			InnerH:  r.Gaps.InnerH,
			InnerV:  r.Gaps.InnerV,
			Enabled: r.EnableGaps,
			Smart:   r.SmartGaps,
		},
		ShowBar:  r.ShowBar,
		TopBar:   r.TopBar,
		BorderPx: r.BorderPx,
		VacTag:   r.HideVacant,
		TPadding: r.TPadding,
		VP:       r.Padding.Vertical,
		SP:       r.Padding.Side,
	}
}

// createMonitor builds monitor num from the tag rules, then overlays any
// state persisted by a previous instance.
func (s *State) createMonitor(num int) *Monitor {
	m := &Monitor{Num: num}
	var start uint32
	if s.cfg.Behaviour.StartOnTag {
		start = 1
	}
	m.TagSet = [2]uint32{start, start}

	ntags := len(s.cfg.Tags)
	alt := 1 % len(s.layouts)
	m.pertag.Slots = make([]tagSlot, ntags+1)
	for i := 0; i <= ntags; i++ {
		tag := i - 1
		if tag < 0 {
			tag = 0
		}
		rule := s.cfg.TagRuleFor(num, tag)
		idx, _ := s.cfg.LayoutIndex(rule.Layout)
		m.pertag.Slots[i] = slotFromRule(rule, idx, alt)
	}
	m.pertag.CurTag, m.pertag.PrevTag = 1, 1
	if start == 0 {
		m.pertag.CurTag, m.pertag.PrevTag = 0, 0
	}

	s.restoreMonitor(m)
	m.load()
	m.LtSymbol = s.layout(m).Symbol()
	return m
}

// updateBarPos derives the work rect and bar position from the monitor rect
// and bar settings.
func (s *State) updateBarPos(m *Monitor) {
	m.W = m.M
	if m.ShowBar {
		m.W.Height -= m.VP + s.bh
		if m.TopBar {
			m.BarY = m.W.Y
			m.W.Y += s.bh + m.VP
		} else {
			m.BarY = m.W.Y + m.W.Height + m.VP
		}
	} else {
		m.BarY = -s.bh - m.VP
	}
}

func (s *State) barRect(m *Monitor) platform.Rect {
	return platform.Rect{X: m.W.X + m.SP, Y: m.BarY + m.VP, Width: m.W.Width - 2*m.SP, Height: s.bh}
}

func (s *State) resizeBar(m *Monitor) {
	if m.Bar != platform.None {
		s.d.MoveResize(m.Bar, s.barRect(m))
	}
}

func (s *State) updateBars() {
	for _, m := range s.mons {
		if m.Bar == platform.None {
			m.Bar = s.d.CreateBar(s.barRect(m))
		}
	}
}

func uniqueHeads(heads []platform.Rect) []platform.Rect {
	var out []platform.Rect
	for _, h := range heads {
		dup := false
		for _, u := range out {
			if u == h {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, h)
		}
	}
	return out
}

// updateGeom reconciles the monitor slice with the physical heads. It
// reports whether anything changed.
func (s *State) updateGeom() bool {
	dirty := false
	heads, err := s.d.Heads()
	if err != nil {
		s.logger.Warn("failed to query heads", "error", err)
	}
	heads = uniqueHeads(heads)
	if len(heads) == 0 {
		heads = []platform.Rect{{Width: s.sw, Height: s.sh}}
	}

	for len(s.mons) < len(heads) {
		s.mons = append(s.mons, s.createMonitor(len(s.mons)))
	}
	for i, h := range heads {
		m := s.mons[i]
		m.Num = i
		if m.M != h || m.W.Width == 0 {
			dirty = true
			m.M = h
			s.updateBarPos(m)
		}
	}
	for len(s.mons) > len(heads) {
		gone := s.mons[len(s.mons)-1]
		first := s.mons[0]
		for _, id := range append([]ClientID(nil), gone.clients...) {
			c := s.clients[id]
			dirty = true
			gone.clients = remove(gone.clients, id)
			gone.stack = remove(gone.stack, id)
			c.Mon = first
			s.attachDefault(c)
			s.attachStack(c)
		}
		if s.selmon == gone {
			s.selmon = first
		}
		if s.prevmon == gone {
			s.prevmon = nil
		}
		if gone.Bar != platform.None {
			s.d.Unmap(gone.Bar)
		}
		s.mons = s.mons[:len(s.mons)-1]
	}
	if dirty || s.selmon == nil {
		s.selmon = s.mons[0]
		if x, y, ok := s.d.QueryPointer(); ok {
			s.selmon = s.rectToMon(platform.Rect{X: x, Y: y, Width: 1, Height: 1})
		}
	}
	return dirty
}

// rectToMon returns the monitor sharing the largest area with r.
func (s *State) rectToMon(r platform.Rect) *Monitor {
	best, area := s.selmon, 0
	for _, m := range s.mons {
		if a := r.Intersect(m.W); a > area {
			best, area = m, a
		}
	}
	if best == nil {
		best = s.mons[0]
	}
	return best
}

// winToMon maps a window to its monitor: the pointer monitor for the root,
// the bar owner for a bar, the client monitor otherwise.
func (s *State) winToMon(w platform.WindowID) *Monitor {
	if w == s.d.Root() {
		if x, y, ok := s.d.QueryPointer(); ok {
			return s.rectToMon(platform.Rect{X: x, Y: y, Width: 1, Height: 1})
		}
	}
	for _, m := range s.mons {
		if w == m.Bar {
			return m
		}
	}
	if c := s.winToClient(w); c != nil {
		return c.Mon
	}
	return s.selmon
}

// dirToMon returns the monitor after (dir > 0) or before the selected one,
// wrapping around.
func (s *State) dirToMon(dir int) *Monitor {
	i := 0
	for j, m := range s.mons {
		if m == s.selmon {
			i = j
		}
	}
	n := len(s.mons)
	if dir > 0 {
		return s.mons[(i+1)%n]
	}
	return s.mons[(i-1+n)%n]
}

func (s *State) monIndex(m *Monitor) int {
	for i, o := range s.mons {
		if o == m {
			return i
		}
	}
	return -1
}

// restoreMonitor overlays the tag set and pertag slots a restarting
// instance saved on the root window.
func (s *State) restoreMonitor(m *Monitor) {
	root := s.d.Root()
	tm := s.cfg.TagMask()
	if v, ok := s.d.Cardinal(root, persist.MonitorTagsProp(m.Num)); ok && v != persist.Missing && v&tm != 0 {
		m.setTagset(v & tm)
		m.pertag.CurTag = slotFor(v&tm, tm)
		m.pertag.PrevTag = m.pertag.CurTag
	}
	for i := range m.pertag.Slots {
		v, ok := s.d.Cardinal(root, slotProp(i, m.Num, "1"))
		if !ok {
			continue
		}
		var st persist.TagState
		if !persist.DecodeMain(v, &st) {
			continue
		}
		if p, ok := s.d.Cardinal(root, slotProp(i, m.Num, "2")); ok {
			persist.DecodePadding(p, &st)
		}
		g, hasGaps := s.d.Cardinal(root, slotProp(i, m.Num, "GAPS"))
		if hasGaps {
			persist.DecodeGaps(g, &st)
		}
		slot := &m.pertag.Slots[i]
		slot.NMaster = st.NMaster
		if st.MFact >= 0.05 && st.MFact <= 0.95 {
			slot.MFact = st.MFact
		}
		slot.ShowBar = st.ShowBar
		slot.TopBar = st.TopBar
		slot.Gaps.Enabled = st.EnableGaps
		slot.Gaps.Smart = st.SmartGaps
		slot.TPadding = st.TPadding
		slot.VacTag = st.VacTag
		slot.BorderPx = st.BorderPX
		if st.Layout < len(s.layouts) {
			slot.Lt[slot.SelLt] = st.Layout
		}
		slot.VP, slot.SP = st.VP, st.SP
		if hasGaps {
			slot.Gaps.OuterH, slot.Gaps.OuterV = st.OuterH, st.OuterV
			slot.Gaps.InnerH, slot.Gaps.InnerV = st.InnerH, st.InnerV
		}
	}
}
