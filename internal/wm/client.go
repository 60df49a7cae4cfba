package wm

import (
	"github.com/1broseidon/dwn/internal/platform"
	"github.com/1broseidon/dwn/internal/tiling"
)

// ClientID is the stable arena key of a managed client.
type ClientID uint32

// Client is one managed top-level window.
type Client struct {
	ID       ClientID
	Win      platform.WindowID
	Name     string
	Class    string
	Instance string
	PID      int

	X, Y, W, H, BW                     int
	OldX, OldY, OldW, OldH, OldBW      int
	StoredX, StoredY, StoredW, StoredH int

	Hints tiling.Hints
	Fixed bool

	Tags      uint32
	SwitchTag uint32
	// ScratchKey is 1 + the scratchpad index, or 0.
	ScratchKey int

	Floating       bool
	Sticky         bool
	Fullscreen     bool
	FakeFullscreen bool
	Urgent         bool
	NeverFocus     bool
	Terminal       bool
	NoSwallow      bool
	Permanent      bool
	Centered       bool
	Steam          bool
	OldState       bool
	NeedResize     bool

	CFact float64
	Mon   *Monitor

	// Swallowing is the client whose window this one currently hides.
	Swallowing *Client
}

func (c *Client) width() int  { return c.W + 2*c.BW }
func (c *Client) height() int { return c.H + 2*c.BW }

func (c *Client) rect() platform.Rect {
	return platform.Rect{X: c.X, Y: c.Y, Width: c.W, Height: c.H}
}

// outer is the client rect including its border.
func (c *Client) outer() platform.Rect {
	return platform.Rect{X: c.X, Y: c.Y, Width: c.width(), Height: c.height()}
}

// visible is the tag visibility rule: the client shares a tag with the
// monitor's active view, or is sticky.
func (c *Client) visible() bool {
	return c.Tags&c.Mon.tagset() != 0 || c.Sticky
}

// fullscreen reports a client that covers its whole monitor. A fake
// fullscreen client keeps its place in the layout.
func (c *Client) fullscreen() bool {
	return c.Fullscreen && !c.FakeFullscreen
}

func (c *Client) saveFloatGeometry() {
	c.StoredX, c.StoredY, c.StoredW, c.StoredH = c.X, c.Y, c.W, c.H
}

func (s *State) client(id ClientID) *Client {
	return s.clients[id]
}

// winToClient finds the client wrapping w.
func (s *State) winToClient(w platform.WindowID) *Client {
	if w == platform.None {
		return nil
	}
	for _, c := range s.clients {
		if c.Win == w {
			return c
		}
	}
	return nil
}

// swallowingClient finds the client whose swallowed snapshot wraps w.
func (s *State) swallowingClient(w platform.WindowID) *Client {
	for _, c := range s.clients {
		if c.Swallowing != nil && c.Swallowing.Win == w {
			return c
		}
	}
	return nil
}

// list returns the clients of m in tiling order.
func (s *State) list(m *Monitor) []*Client {
	out := make([]*Client, 0, len(m.clients))
	for _, id := range m.clients {
		out = append(out, s.clients[id])
	}
	return out
}

// stackOf returns the clients of m in focus order, most recent first.
func (s *State) stackOf(m *Monitor) []*Client {
	out := make([]*Client, 0, len(m.stack))
	for _, id := range m.stack {
		out = append(out, s.clients[id])
	}
	return out
}

// tiled returns the visible, non-floating clients of m in tiling order.
func (s *State) tiled(m *Monitor) []*Client {
	var out []*Client
	for _, id := range m.clients {
		c := s.clients[id]
		if !c.Floating && c.visible() {
			out = append(out, c)
		}
	}
	return out
}

func indexOf(ids []ClientID, id ClientID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func remove(ids []ClientID, id ClientID) []ClientID {
	if i := indexOf(ids, id); i >= 0 {
		return append(ids[:i], ids[i+1:]...)
	}
	return ids
}

func insertAt(ids []ClientID, i int, id ClientID) []ClientID {
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	return ids
}

// attach prepends c to its monitor's tiling list.
func (s *State) attach(c *Client) {
	c.Mon.clients = insertAt(c.Mon.clients, 0, c.ID)
}

// attachBelow inserts c after the monitor's selection, or prepends it when
// the selection is missing or floating.
func (s *State) attachBelow(c *Client) {
	m := c.Mon
	if m.sel == nil || m.sel == c || m.sel.Floating {
		s.attach(c)
		return
	}
	i := indexOf(m.clients, m.sel.ID)
	if i < 0 {
		s.attach(c)
		return
	}
	m.clients = insertAt(m.clients, i+1, c.ID)
}

func (s *State) attachDefault(c *Client) {
	if s.cfg.Behaviour.AttachBelow {
		s.attachBelow(c)
	} else {
		s.attach(c)
	}
}

// attachTail appends c to its monitor's tiling list.
func (s *State) attachTail(c *Client) {
	c.Mon.clients = append(c.Mon.clients, c.ID)
}

func (s *State) detach(c *Client) {
	c.Mon.clients = remove(c.Mon.clients, c.ID)
}

func (s *State) attachStack(c *Client) {
	c.Mon.stack = insertAt(c.Mon.stack, 0, c.ID)
}

// detachStack removes c from the focus stack. When c was selected the
// monitor selection moves to the next visible client in focus order.
func (s *State) detachStack(c *Client) {
	m := c.Mon
	m.stack = remove(m.stack, c.ID)
	if c == m.sel {
		m.sel = nil
		for _, id := range m.stack {
			if t := s.clients[id]; t.visible() {
				m.sel = t
				break
			}
		}
	}
}

// nextTiled returns the first tiled visible client at or after position i
// of m's tiling list, and its position.
func (s *State) nextTiled(m *Monitor, i int) (*Client, int) {
	for ; i < len(m.clients); i++ {
		c := s.clients[m.clients[i]]
		if !c.Floating && c.visible() {
			return c, i
		}
	}
	return nil, -1
}

// prevTiled returns the last tiled visible client before c in m's list.
func (s *State) prevTiled(m *Monitor, c *Client) *Client {
	var r *Client
	for _, id := range m.clients {
		if id == c.ID {
			break
		}
		if p := s.clients[id]; !p.Floating && p.visible() {
			r = p
		}
	}
	return r
}
