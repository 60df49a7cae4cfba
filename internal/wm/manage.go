package wm

import (
	"strings"

	"github.com/1broseidon/dwn/internal/persist"
	"github.com/1broseidon/dwn/internal/platform"
	"github.com/1broseidon/dwn/internal/proc"
	"github.com/1broseidon/dwn/internal/tiling"
)

const brokenTitle = "broken"

// applyRules matches c against the rule table. It sets the rule flags,
// ORs the rule tags and may move c to the rule's monitor.
func (s *State) applyRules(c *Client) {
	c.Centered = false
	c.Floating = false
	c.Tags = 0
	c.ScratchKey = 0
	class, instance := s.d.Class(c.Win)
	c.Class, c.Instance = class, instance
	if strings.Contains(class, "Steam") || strings.Contains(class, "steam_app_") {
		c.Steam = true
	}
	types := s.d.WindowTypes(c.Win)

	tm := s.cfg.TagMask()
	for _, r := range s.cfg.Rules {
		if r.Title != "" && !strings.Contains(c.Name, r.Title) {
			continue
		}
		if r.Class != "" && !strings.Contains(class, r.Class) {
			continue
		}
		if r.Instance != "" && !strings.Contains(instance, r.Instance) {
			continue
		}
		if r.WindowType != "" && !hasString(types, r.WindowType) {
			continue
		}
		c.Terminal = r.Terminal
		c.NoSwallow = r.NoSwallow
		c.Floating = r.Floating
		c.Centered = r.Centered
		c.Permanent = r.Permanent
		var tags uint32
		for _, t := range r.Tags {
			tags |= 1 << uint(t-1)
		}
		if r.Scratchpad != "" {
			if i, ok := s.cfg.ScratchpadIndex(r.Scratchpad); ok {
				c.ScratchKey = i + 1
				tags |= s.cfg.ScratchTag(i)
			}
		}
		c.Tags |= tags
		if r.Monitor != nil && *r.Monitor >= 0 && *r.Monitor < len(s.mons) {
			c.Mon = s.mons[*r.Monitor]
		}

		cur := c.Mon.tagset()
		switch r.SwitchTag {
		case 1, 3:
			if tags&tm != 0 && tags&cur == 0 {
				if r.SwitchTag == 3 {
					c.SwitchTag = cur
				}
				s.viewOn(c.Mon, tags&tm)
			}
		case 2, 4:
			if next := cur ^ (tags & tm); next != 0 && tags&cur == 0 {
				if r.SwitchTag == 4 {
					c.SwitchTag = cur
				}
				c.Mon.setTagset(next)
				s.arrange(c.Mon)
			}
		}
	}

	if v, ok := s.d.Cardinal(c.Win, persist.ClientTags); ok && v != persist.Missing && v != 0 {
		c.Tags = v
		return
	}
	if c.ScratchKey != 0 {
		return
	}
	switch {
	case c.Tags&tm != 0:
		c.Tags &= tm
	case c.Mon.tagset() != 0:
		c.Tags = c.Mon.tagset()
	default:
		c.Tags = 1
	}
}

func hasString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func (s *State) updateTitle(c *Client) {
	c.Name = s.d.Title(c.Win)
	if c.Name == "" {
		c.Name = brokenTitle
	}
}

func (s *State) updateSizeHints(c *Client) {
	sh, _ := s.d.SizeHints(c.Win)
	c.Hints, c.Fixed = tiling.HintsFrom(sh)
}

func (s *State) updateWMHints(c *Client) {
	h, ok := s.d.WMHints(c.Win)
	if !ok {
		return
	}
	if c == s.selmon.sel && h.Urgent {
		s.d.SetUrgent(c.Win, false)
	} else {
		c.Urgent = h.Urgent
	}
	if h.HasInput {
		c.NeverFocus = !h.Input
	} else {
		c.NeverFocus = false
	}
}

func (s *State) updateWindowType(c *Client) {
	if hasString(s.d.WindowStates(c.Win), "_NET_WM_STATE_FULLSCREEN") {
		s.setFullscreen(c, true)
	}
	if hasString(s.d.WindowTypes(c.Win), "_NET_WM_WINDOW_TYPE_DIALOG") {
		c.Floating = true
	}
}

// updateMotifHints drops the border of clients that ask for no decorations.
func (s *State) updateMotifHints(c *Client) {
	if !s.cfg.Behaviour.DecorHints {
		return
	}
	decorated, ok := s.d.Decorated(c.Win)
	if !ok {
		return
	}
	width, height := c.width(), c.height()
	if decorated {
		c.BW = c.Mon.BorderPx
	} else {
		c.BW = 0
	}
	c.OldBW = c.BW
	s.resize(c, c.X, c.Y, width-2*c.BW, height-2*c.BW, false)
}

func (s *State) updateClientList() {
	var ws []platform.WindowID
	for _, m := range s.mons {
		for _, c := range s.list(m) {
			ws = append(ws, c.Win)
		}
	}
	s.d.SetClientList(ws)
}

// termForWin returns the terminal client whose process is an ancestor of
// c's, if any.
func (s *State) termForWin(c *Client) *Client {
	if c.PID == 0 || c.Terminal {
		return nil
	}
	for _, m := range s.mons {
		for _, t := range s.list(m) {
			if t.Terminal && t.Swallowing == nil && t.PID != 0 && t.PID != c.PID &&
				proc.IsDescendant(s.parent, t.PID, c.PID) {
				return t
			}
		}
	}
	return nil
}

// manage adopts window w.
func (s *State) manage(w platform.WindowID, wa platform.Attributes) {
	s.nextID++
	c := &Client{
		ID:    s.nextID,
		Win:   w,
		PID:   s.d.PID(w),
		X:     wa.X,
		Y:     wa.Y,
		W:     wa.Width,
		H:     wa.Height,
		OldX:  wa.X,
		OldY:  wa.Y,
		OldW:  wa.Width,
		OldH:  wa.Height,
		OldBW: wa.BorderWidth,
		CFact: 1.0,
	}
	if v, ok := s.d.Cardinal(w, persist.ClientCFact); ok {
		if f, ok := persist.DecodeCFact(v); ok {
			c.CFact = f
		}
	}
	if v, ok := s.d.Cardinal(w, persist.ClientSticky); ok && v == 1 {
		c.Sticky = true
	}
	s.updateTitle(c)

	var term *Client
	trans, hasTrans := s.d.TransientFor(w)
	if t := s.winToClient(trans); hasTrans && t != nil {
		c.Mon = t.Mon
		c.Tags = t.Tags
	} else {
		c.Mon = s.selmon
		s.applyRules(c)
		term = s.termForWin(c)
	}
	if v, ok := s.d.Cardinal(w, persist.ClientScratchKey); ok && v != persist.Missing && int(v) <= len(s.cfg.Scratchpads) {
		c.ScratchKey = int(v)
		c.Tags |= s.scratchTag(c)
	}

	m := c.Mon
	if c.X+c.width() > m.M.X+m.M.Width {
		c.X = m.M.X + m.M.Width - c.width()
	}
	if c.Y+c.height() > m.M.Y+m.M.Height {
		c.Y = m.M.Y + m.M.Height - c.height()
	}
	c.X = max(c.X, m.M.X)
	// Keep the title bar of clients placed over the bar reachable.
	if m.ShowBar && m.TopBar && c.X+c.W/2 >= m.W.X && c.X+c.W/2 < m.W.X+m.W.Width {
		c.Y = max(c.Y, m.W.Y)
	} else {
		c.Y = max(c.Y, m.M.Y)
	}
	c.BW = m.BorderPx

	s.clients[c.ID] = c
	s.d.SetBorderWidth(w, c.BW)
	s.setBorder(c, false)
	s.configure(c)
	s.updateWindowType(c)
	s.updateSizeHints(c)
	s.updateWMHints(c)
	c.saveFloatGeometry()
	if c.Centered {
		c.X = m.M.X + (m.M.Width-c.width())/2
		c.Y = m.M.Y + (m.M.Height-c.height())/2
	}
	s.updateMotifHints(c)

	s.d.SelectClientInput(w)
	s.grabButtons(c, false)
	if !c.Floating {
		c.Floating = hasTrans || c.Fixed
		c.OldState = c.Floating
	}
	if v, ok := s.d.Cardinal(w, persist.ClientFloating); ok && v == 1 {
		c.Floating = true
		c.OldState = true
	}
	if c.Floating {
		s.d.Raise(w)
		s.setBorder(c, false)
	}
	s.attachDefault(c)
	s.attachStack(c)
	s.updateClientList()

	// Offscreen until arrange puts it in place.
	s.d.MoveResize(w, platform.Rect{X: c.X + 2*s.sw, Y: c.Y, Width: c.W, Height: c.H})
	s.d.SetClientState(w, platform.NormalState)
	if c.Mon == s.selmon {
		s.unfocus(s.selmon.sel, false)
	}
	c.Mon.sel = c
	s.arrange(c.Mon)
	s.d.Map(w)
	if term != nil {
		s.swallow(term, c)
	}
	s.focus(nil)

	if v, ok := s.d.Cardinal(w, persist.ClientFullscreen); ok && v == 1 && !c.Fullscreen {
		s.setFullscreen(c, true)
	}
	s.logger.Debug("managed client", "window", w, "class", c.Class, "tags", c.Tags, "floating", c.Floating)
}

// unmanage forgets c. destroyed tells whether its window is already gone.
func (s *State) unmanage(c *Client, destroyed bool) {
	m := c.Mon
	if c.Swallowing != nil {
		s.unswallow(c)
		return
	}
	if p := s.swallowingClient(c.Win); p != nil {
		p.Swallowing = nil
		s.arrange(p.Mon)
		s.focus(nil)
		return
	}

	s.detach(c)
	s.detachStack(c)
	delete(s.clients, c.ID)
	if s.prevzoom == c {
		s.prevzoom = nil
	}
	if !destroyed {
		s.d.SetBorderWidth(c.Win, c.OldBW)
		s.d.GrabButtons(c.Win, true, nil)
		s.d.SetClientState(c.Win, platform.WithdrawnState)
	}
	s.arrange(m)
	s.focus(nil)
	s.updateClientList()
	if c.SwitchTag != 0 {
		s.viewOn(m, c.SwitchTag)
	}
	s.logger.Debug("unmanaged client", "window", c.Win, "destroyed", destroyed)
}

// swallow hides terminal p behind its child c: p takes over c's window and
// keeps c as a snapshot to restore later.
func (s *State) swallow(p, c *Client) {
	if c.NoSwallow || c.Terminal {
		return
	}
	if !s.cfg.Behaviour.SwallowFloating && c.Floating {
		return
	}
	s.detach(c)
	s.detachStack(c)
	delete(s.clients, c.ID)

	s.d.SetClientState(c.Win, platform.WithdrawnState)
	s.d.Unmap(p.Win)

	p.Swallowing = c
	c.Mon = p.Mon
	p.Win, c.Win = c.Win, p.Win
	s.updateTitle(p)
	s.d.MoveResize(p.Win, p.rect())
	s.arrange(p.Mon)
	s.configure(p)
	s.updateClientList()
}

// unswallow gives p its own window back.
func (s *State) unswallow(p *Client) {
	p.Win = p.Swallowing.Win
	p.Swallowing = nil

	s.setFullscreen(p, false)
	s.updateTitle(p)
	s.arrange(p.Mon)
	s.d.Map(p.Win)
	s.d.MoveResize(p.Win, p.rect())
	s.d.SetClientState(p.Win, platform.NormalState)
	s.updateClientList()
	s.focus(nil)
	s.arrange(p.Mon)
}

// scan adopts the windows that existed before startup: ordinary windows
// first, then transients so their parents are already managed.
func (s *State) scan() error {
	wins, err := s.d.TopLevelWindows()
	if err != nil {
		return err
	}
	adopt := func(w platform.WindowID, transient bool) {
		wa, err := s.d.Attributes(w)
		if err != nil || wa.OverrideRedirect {
			return
		}
		if _, ok := s.d.TransientFor(w); ok != transient {
			return
		}
		state, _ := s.d.ClientState(w)
		if wa.Viewable || state == platform.IconicState {
			s.manage(w, wa)
		}
	}
	for _, w := range wins {
		adopt(w, false)
	}
	for _, w := range wins {
		adopt(w, true)
	}
	return nil
}
