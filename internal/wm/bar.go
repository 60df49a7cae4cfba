package wm

import (
	"fmt"
	"strings"

	"github.com/1broseidon/dwn/internal/config"
	"github.com/1broseidon/dwn/internal/platform"
)

// barItem is one clickable run of the bar.
type barItem struct {
	platform.Segment
	Click string
	Mask  uint32
}

func (s *State) textWidth(t string) int {
	return s.d.TextWidth(t) + s.bh/2
}

// tagLabel formats tag i, naming the class of its first client when the tag
// is occupied.
func (s *State) tagLabel(m *Monitor, i int) string {
	name := s.cfg.Tags[i]
	for _, c := range s.list(m) {
		if c.Tags&(1<<uint(i)) == 0 || c.Class == "" {
			continue
		}
		class := c.Class
		if s.cfg.Appearance.LowercaseLabel {
			class = strings.ToLower(class[:1]) + class[1:]
		}
		return fmt.Sprintf(s.cfg.Appearance.TagFormat, name, class)
	}
	return fmt.Sprintf(s.cfg.Appearance.EmptyTagFormat, name)
}

// barItems lays out the bar of m from left to right: layout symbol, tags,
// visible client count, selected title, then the status text flush right.
func (s *State) barItems(m *Monitor) []barItem {
	p := s.colors
	active := m == s.selmon
	view := m.tagset()

	var occ, urg uint32
	visible := 0
	for _, c := range s.list(m) {
		if !m.VacTag || c.Tags != 255 {
			occ |= c.Tags
		}
		if c.Urgent {
			urg |= c.Tags
		}
		if c.visible() {
			visible++
		}
	}

	var items []barItem
	x := 0
	add := func(text string, fg, bg uint32, click string, mask uint32) *barItem {
		w := s.textWidth(text)
		items = append(items, barItem{
			Segment: platform.Segment{X: x, Width: w, Text: text, Fg: fg, Bg: bg},
			Click:   click,
			Mask:    mask,
		})
		x += w
		return &items[len(items)-1]
	}

	if active {
		add(m.LtSymbol, p.ltFg, p.ltBg, config.ClickLtSymbol, 0)
	} else {
		add(m.LtSymbol, p.invFg, p.invBg, config.ClickLtSymbol, 0)
	}

	for i := range s.cfg.Tags {
		bit := uint32(1) << uint(i)
		if m.VacTag && occ&bit == 0 && view&bit == 0 {
			continue
		}
		fg, bg := p.normFg, p.normBg
		switch {
		case !active:
			fg, bg = p.invFg, p.invBg
		case view&bit != 0:
			fg, bg = p.selFg, p.selBg
		case occ&bit != 0 && !m.VacTag:
			fg, bg = p.occFg, p.occBg
		}
		if urg&bit != 0 {
			fg, bg = p.urgFg, p.urgBg
		}
		it := add(s.tagLabel(m, i), fg, bg, config.ClickTagBar, bit)
		it.Indicator = occ&bit != 0 && view&bit == 0
		it.IndicatorFilled = urg&bit != 0
	}

	if visible > 1 {
		add(fmt.Sprintf(" {%d}", visible), p.statusFg, p.statusBg, config.ClickWinTitle, 0)
	}

	width := m.W.Width - 2*m.SP
	sw := min(s.textWidth(s.status), max(width-x, 0))
	if m.sel != nil && x < width-sw {
		it := add(m.sel.Name, p.normFg, p.normBg, config.ClickWinTitle, 0)
		it.Width = width - sw - it.X
	}
	if sw > 0 {
		x = width - sw
		add(s.status, p.statusFg, p.statusBg, config.ClickStatusText, 0)
		items[len(items)-1].Width = sw
	}
	return items
}

// drawBar repaints the bar of m.
func (s *State) drawBar(m *Monitor) {
	if m == nil || m.Bar == platform.None {
		return
	}
	s.resizeBar(m)
	if !m.ShowBar {
		return
	}
	items := s.barItems(m)
	segs := make([]platform.Segment, len(items))
	for i, it := range items {
		segs[i] = it.Segment
	}
	s.d.DrawBar(m.Bar, m.W.Width-2*m.SP, s.bh, segs)
}

func (s *State) drawBars() {
	for _, m := range s.mons {
		s.drawBar(m)
	}
}

// barClick resolves a click at x on the bar of m to a click region and,
// for tags, the clicked tag mask.
func (s *State) barClick(m *Monitor, x int) (string, uint32) {
	for _, it := range s.barItems(m) {
		if x >= it.X && x < it.X+it.Width {
			return it.Click, it.Mask
		}
	}
	return config.ClickStatusText, 0
}

// updateStatus reads the root window name into the status text.
func (s *State) updateStatus() {
	s.status = s.d.RootName()
	if s.status == "" {
		s.status = Name + "-" + Version
	}
	s.drawBars()
}
