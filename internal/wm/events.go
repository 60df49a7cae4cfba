package wm

import (
	"errors"

	"github.com/1broseidon/dwn/internal/config"
	"github.com/1broseidon/dwn/internal/fsignal"
	"github.com/1broseidon/dwn/internal/hotkeys"
	"github.com/1broseidon/dwn/internal/platform"
)

// Handle dispatches one display event.
func (s *State) Handle(ev platform.Event) {
	switch ev := ev.(type) {
	case platform.ButtonPress:
		s.buttonPress(ev)
	case platform.ClientMessage:
		s.clientMessage(ev)
	case platform.ConfigureRequest:
		s.configureRequest(ev)
	case platform.ConfigureNotify:
		s.configureNotify(ev)
	case platform.DestroyNotify:
		s.destroyNotify(ev)
	case platform.EnterNotify:
		s.enterNotify(ev)
	case platform.Expose:
		s.expose(ev)
	case platform.FocusIn:
		s.focusIn(ev)
	case platform.KeyPress:
		s.keyPress(ev)
	case platform.KeyRelease:
		s.combo = false
	case platform.MappingNotify:
		if ev.Keyboard {
			s.keys.Remap()
		}
	case platform.MapRequest:
		s.mapRequest(ev)
	case platform.MotionNotify:
		s.motionNotify(ev)
	case platform.PropertyNotify:
		s.propertyNotify(ev)
	case platform.UnmapNotify:
		s.unmapNotify(ev)
	}
}

func (s *State) keyPress(ev platform.KeyPress) {
	for _, chord := range s.keys.Press(ev.Code, ev.State) {
		if err := s.RunCommand(chord.Command, chord.Args); err != nil {
			s.logger.Warn("key binding failed", "command", chord.Command, "error", err)
		}
	}
}

func (s *State) buttonPress(ev platform.ButtonPress) {
	wheel := ev.Button == platform.Button4 || ev.Button == platform.Button5
	click := config.ClickRootWin
	var clicked uint32

	if m := s.winToMon(ev.Window); m != nil && m != s.selmon && (s.cfg.Behaviour.FocusOnWheel || !wheel) {
		s.unfocus(s.selmon.sel, true)
		s.prevmon = s.selmon
		s.selmon = m
		s.focus(nil)
	}
	if ev.Window == s.selmon.Bar {
		click, clicked = s.barClick(s.selmon, ev.X)
	} else if c := s.winToClient(ev.Window); c != nil {
		if s.cfg.Behaviour.FocusOnWheel || !wheel {
			s.focus(c)
			s.restack(s.selmon)
		}
		s.d.ReplayPointer()
		click = config.ClickClientWin
	}

	mods := hotkeys.CleanMask(ev.State, s.d.NumLockMask(), s.d.ScrollLockMask())
	for _, b := range s.buttons {
		if b.Click != click || b.Button != ev.Button || b.Mods != mods {
			continue
		}
		cmd, ok := Commands[b.Command]
		if !ok {
			continue
		}
		arg, err := parseArg(s.cfg, cmd.Arg, b.Args)
		if err != nil {
			s.logger.Warn("button binding failed", "command", b.Command, "error", err)
			continue
		}
		if click == config.ClickTagBar && arg.UI == 0 && arg.I == 0 {
			arg.UI = clicked
		}
		cmd.Run(s, arg)
	}
}

func (s *State) clientMessage(ev platform.ClientMessage) {
	c := s.winToClient(ev.Window)
	if c == nil {
		return
	}
	switch ev.Type {
	case "_NET_WM_STATE":
		const fs = "_NET_WM_STATE_FULLSCREEN"
		if s.d.AtomName(ev.Data[1]) == fs || s.d.AtomName(ev.Data[2]) == fs {
			// 1 is _NET_WM_STATE_ADD, 2 is _NET_WM_STATE_TOGGLE.
			s.setFullscreen(c, ev.Data[0] == 1 || (ev.Data[0] == 2 && !c.Fullscreen))
		}
	case "_NET_ACTIVE_WINDOW":
		if c.Tags&c.Mon.tagset() != 0 {
			s.focus(c)
			s.warp(c)
			return
		}
		tm := s.cfg.TagMask()
		if c.Tags&tm == 0 {
			return
		}
		bit := c.Tags & tm & -(c.Tags & tm)
		if c != s.selmon.sel {
			s.unfocus(s.selmon.sel, false)
		}
		s.selmon = c.Mon
		if bit != s.selmon.tagset() {
			s.view(bit)
		}
		s.focus(c)
		s.restack(s.selmon)
	}
}

func (s *State) configureRequest(ev platform.ConfigureRequest) {
	c := s.winToClient(ev.Window)
	if c == nil {
		s.d.ForwardConfigure(ev)
		s.d.Sync()
		return
	}
	switch {
	case ev.ValueMask&platform.ConfigBorderWidth != 0:
		c.BW = ev.BorderWidth
	case c.Floating || !s.arranging(s.selmon):
		m := c.Mon
		if !c.Steam {
			if ev.ValueMask&platform.ConfigX != 0 {
				c.OldX = c.X
				c.X = m.M.X + ev.X
			}
			if ev.ValueMask&platform.ConfigY != 0 {
				c.OldY = c.Y
				c.Y = m.M.Y + ev.Y
			}
		}
		if ev.ValueMask&platform.ConfigWidth != 0 {
			c.OldW = c.W
			c.W = ev.Width
		}
		if ev.ValueMask&platform.ConfigHeight != 0 {
			c.OldH = c.H
			c.H = ev.Height
		}
		if c.X+c.W > m.M.X+m.M.Width && c.Floating {
			c.X = m.M.X + (m.M.Width/2 - c.width()/2)
		}
		if c.Y+c.H > m.M.Y+m.M.Height && c.Floating {
			c.Y = m.M.Y + (m.M.Height/2 - c.height()/2)
		}
		if ev.ValueMask&(platform.ConfigX|platform.ConfigY) != 0 &&
			ev.ValueMask&(platform.ConfigWidth|platform.ConfigHeight) == 0 {
			s.configure(c)
		}
		if c.visible() {
			s.d.MoveResize(c.Win, c.rect())
		} else {
			c.NeedResize = true
		}
	default:
		s.configure(c)
	}
	s.d.Sync()
}

// configureNotify follows root geometry changes such as a RandR reconfigure.
func (s *State) configureNotify(ev platform.ConfigureNotify) {
	if ev.Window != s.d.Root() {
		return
	}
	dirty := s.sw != ev.Width || s.sh != ev.Height
	s.sw, s.sh = ev.Width, ev.Height
	if !s.updateGeom() && !dirty {
		return
	}
	s.updateBars()
	for _, m := range s.mons {
		for _, c := range s.list(m) {
			if c.fullscreen() {
				s.resizeClient(c, m.M.X, m.M.Y, m.M.Width, m.M.Height)
			}
		}
		s.resizeBar(m)
	}
	s.focus(nil)
	s.arrange(nil)
}

func (s *State) destroyNotify(ev platform.DestroyNotify) {
	if c := s.winToClient(ev.Window); c != nil {
		s.unmanage(c, true)
	} else if p := s.swallowingClient(ev.Window); p != nil {
		s.unmanage(p.Swallowing, true)
	}
}

func (s *State) enterNotify(ev platform.EnterNotify) {
	if (ev.Mode != platform.NotifyNormal || ev.Detail == platform.NotifyInferior) && ev.Window != s.d.Root() {
		return
	}
	c := s.winToClient(ev.Window)
	m := s.winToMon(ev.Window)
	if c != nil {
		m = c.Mon
	}
	if m != s.selmon {
		s.unfocus(s.selmon.sel, true)
		s.selmon = m
	} else if c == nil || c == s.selmon.sel {
		return
	}
	s.focus(c)
}

func (s *State) expose(ev platform.Expose) {
	if ev.Count != 0 {
		return
	}
	s.drawBar(s.winToMon(ev.Window))
}

// focusIn takes the focus back from clients that grab it.
func (s *State) focusIn(ev platform.FocusIn) {
	sel := s.selmon.sel
	if sel != nil && ev.Window != sel.Win && s.winToClient(ev.Window) != nil {
		s.setFocus(sel)
	}
}

func (s *State) mapRequest(ev platform.MapRequest) {
	wa, err := s.d.Attributes(ev.Window)
	if err != nil || wa.OverrideRedirect {
		return
	}
	if s.winToClient(ev.Window) == nil {
		s.manage(ev.Window, wa)
	}
}

// motionNotify switches the selected monitor when the pointer crosses onto
// another one over the root window.
func (s *State) motionNotify(ev platform.MotionNotify) {
	if ev.Window != s.d.Root() {
		return
	}
	m := s.rectToMon(platform.Rect{X: ev.RootX, Y: ev.RootY, Width: 1, Height: 1})
	if m != s.motion && s.motion != nil {
		s.unfocus(s.selmon.sel, true)
		s.selmon = m
		s.focus(nil)
	}
	s.motion = m
}

func (s *State) propertyNotify(ev platform.PropertyNotify) {
	if ev.Window == s.d.Root() {
		if ev.Atom == "WM_NAME" {
			s.rootNameChanged()
		}
		return
	}
	if ev.Deleted {
		return
	}
	c := s.winToClient(ev.Window)
	if c == nil {
		return
	}
	switch ev.Atom {
	case "WM_TRANSIENT_FOR":
		if trans, ok := s.d.TransientFor(c.Win); !c.Floating && ok && s.winToClient(trans) != nil {
			c.Floating = true
			s.arrange(c.Mon)
		}
	case "WM_NORMAL_HINTS":
		s.updateSizeHints(c)
		s.updateWMHints(c)
		s.drawBars()
	case "WM_HINTS":
		s.updateWMHints(c)
		s.drawBars()
	case "WM_NAME", "_NET_WM_NAME":
		s.updateTitle(c)
		if c == c.Mon.sel {
			s.drawBar(c.Mon)
		}
	case "_MOTIF_WM_HINTS":
		s.updateMotifHints(c)
	case "_NET_WM_WINDOW_TYPE":
		s.updateWindowType(c)
	}
}

// rootNameChanged runs an fsignal written to the root name, or shows the
// name as status text.
func (s *State) rootNameChanged() {
	sig, err := fsignal.Parse(s.d.RootName())
	if err == nil {
		err = s.signal(sig)
		if err == nil {
			return
		}
	}
	if !errors.Is(err, fsignal.ErrNotSignal) {
		s.logger.Debug("root name is not a signal", "error", err)
	}
	s.updateStatus()
}

func (s *State) unmapNotify(ev platform.UnmapNotify) {
	c := s.winToClient(ev.Window)
	if c == nil {
		return
	}
	if ev.SendEvent {
		s.d.SetClientState(c.Win, platform.WithdrawnState)
	} else {
		s.unmanage(c, false)
	}
}
