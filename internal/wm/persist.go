package wm

import (
	"github.com/1broseidon/dwn/internal/persist"
)

func tagState(t tagSlot) persist.TagState {
	return persist.TagState{
		NMaster:    t.NMaster,
		MFact:      t.MFact,
		ShowBar:    t.ShowBar,
		TopBar:     t.TopBar,
		EnableGaps: t.Gaps.Enabled,
		SmartGaps:  t.Gaps.Smart,
		TPadding:   t.TPadding,
		VacTag:     t.VacTag,
		BorderPX:   t.BorderPx,
		Layout:     t.Lt[t.SelLt],
		VP:         t.VP,
		SP:         t.SP,
		OuterH:     t.Gaps.OuterH,
		OuterV:     t.Gaps.OuterV,
		InnerH:     t.Gaps.InnerH,
		InnerV:     t.Gaps.InnerV,
	}
}

// slotProp names a property of pertag slot i on m. Slot 0 is the all-tags
// view; slot i+1 holds tag i.
func slotProp(i, mon int, suffix string) string {
	if i == 0 {
		return persist.PertagAllProp(mon, suffix)
	}
	return persist.PertagProp(i-1, mon, suffix)
}

// save writes the view, the tag slots and the client flags of m to window
// properties so a restarted instance can pick them up.
func (s *State) save(m *Monitor) {
	root := s.d.Root()
	m.store()
	s.d.SetCardinal(root, persist.MonitorTagsProp(m.Num), m.tagset())
	for i, t := range m.pertag.Slots {
		st := tagState(t)
		s.d.SetCardinal(root, slotProp(i, m.Num, "1"), persist.EncodeMain(st))
		s.d.SetCardinal(root, slotProp(i, m.Num, "2"), persist.EncodePadding(st))
		s.d.SetCardinal(root, slotProp(i, m.Num, "GAPS"), persist.EncodeGaps(st))
	}
	for _, c := range s.list(m) {
		s.saveClient(c)
	}
}

func (s *State) saveClient(c *Client) {
	s.d.SetCardinal(c.Win, persist.ClientTags, c.Tags)
	s.d.SetCardinal(c.Win, persist.ClientFloating, b2u(c.Floating))
	s.d.SetCardinal(c.Win, persist.ClientSticky, b2u(c.Sticky))
	s.d.SetCardinal(c.Win, persist.ClientFullscreen, b2u(c.Fullscreen))
	s.d.SetCardinal(c.Win, persist.ClientCFact, persist.EncodeCFact(c.CFact))
	s.d.SetCardinal(c.Win, persist.ClientScratchKey, uint32(c.ScratchKey))
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
