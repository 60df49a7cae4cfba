package wm

// ClientInfo describes one managed client for IPC and MCP consumers.
type ClientInfo struct {
	Window     uint32  `json:"window" yaml:"window"`
	Title      string  `json:"title" yaml:"title"`
	Class      string  `json:"class" yaml:"class"`
	Instance   string  `json:"instance" yaml:"instance"`
	Tags       string  `json:"tags" yaml:"tags"`
	X          int     `json:"x" yaml:"x"`
	Y          int     `json:"y" yaml:"y"`
	Width      int     `json:"width" yaml:"width"`
	Height     int     `json:"height" yaml:"height"`
	CFact      float64 `json:"cfact" yaml:"cfact"`
	Floating   bool    `json:"floating" yaml:"floating"`
	Sticky     bool    `json:"sticky,omitempty" yaml:"sticky,omitempty"`
	Fullscreen bool    `json:"fullscreen,omitempty" yaml:"fullscreen,omitempty"`
	Urgent     bool    `json:"urgent,omitempty" yaml:"urgent,omitempty"`
	Scratchpad string  `json:"scratchpad,omitempty" yaml:"scratchpad,omitempty"`
	Swallowing bool    `json:"swallowing,omitempty" yaml:"swallowing,omitempty"`
	Focused    bool    `json:"focused" yaml:"focused"`
}

// MonitorInfo describes one monitor and its clients in tiling order.
type MonitorInfo struct {
	Num      int          `json:"num" yaml:"num"`
	X        int          `json:"x" yaml:"x"`
	Y        int          `json:"y" yaml:"y"`
	Width    int          `json:"width" yaml:"width"`
	Height   int          `json:"height" yaml:"height"`
	Tags     string       `json:"tags" yaml:"tags"`
	Layout   string       `json:"layout" yaml:"layout"`
	Symbol   string       `json:"symbol" yaml:"symbol"`
	MFact    float64      `json:"mfact" yaml:"mfact"`
	NMaster  int          `json:"nmaster" yaml:"nmaster"`
	ShowBar  bool         `json:"showbar" yaml:"showbar"`
	Selected bool         `json:"selected" yaml:"selected"`
	Clients  []ClientInfo `json:"clients,omitempty" yaml:"clients,omitempty"`
}

// Snapshot is a point-in-time copy of the window manager state.
type Snapshot struct {
	Version  string        `json:"version" yaml:"version"`
	Status   string        `json:"status" yaml:"status"`
	Tags     []string      `json:"tags" yaml:"tags"`
	Layouts  []string      `json:"layouts" yaml:"layouts"`
	Monitors []MonitorInfo `json:"monitors" yaml:"monitors"`
}

// Snapshot copies the current state. It must run on the loop goroutine,
// typically through Do.
func (s *State) Snapshot() Snapshot {
	ntags := len(s.cfg.Tags)
	snap := Snapshot{
		Version: Name + "-" + Version,
		Status:  s.status,
		Tags:    append([]string(nil), s.cfg.Tags...),
		Layouts: append([]string(nil), s.cfg.Layouts...),
	}
	for _, m := range s.mons {
		mi := MonitorInfo{
			Num:      m.Num,
			X:        m.M.X,
			Y:        m.M.Y,
			Width:    m.M.Width,
			Height:   m.M.Height,
			Tags:     FormatTags(m.tagset(), ntags),
			Layout:   s.cfg.Layouts[m.Lt[m.SelLt]],
			Symbol:   m.LtSymbol,
			MFact:    m.MFact,
			NMaster:  m.NMaster,
			ShowBar:  m.ShowBar,
			Selected: m == s.selmon,
		}
		for _, c := range s.list(m) {
			ci := ClientInfo{
				Window:     uint32(c.Win),
				Title:      c.Name,
				Class:      c.Class,
				Instance:   c.Instance,
				Tags:       FormatTags(c.Tags, ntags),
				X:          c.X,
				Y:          c.Y,
				Width:      c.W,
				Height:     c.H,
				CFact:      c.CFact,
				Floating:   c.Floating,
				Sticky:     c.Sticky,
				Fullscreen: c.Fullscreen,
				Urgent:     c.Urgent,
				Swallowing: c.Swallowing != nil,
				Focused:    c == m.sel,
			}
			if c.ScratchKey > 0 && c.ScratchKey <= len(s.cfg.Scratchpads) {
				ci.Scratchpad = s.cfg.Scratchpads[c.ScratchKey-1].Name
			}
			mi.Clients = append(mi.Clients, ci)
		}
		snap.Monitors = append(snap.Monitors, mi)
	}
	return snap
}
