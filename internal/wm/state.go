// Package wm is the window manager core: the client and monitor model, the
// arrangement engine, event handling and the command table. All State
// methods must run on the goroutine that owns the State.
package wm

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/1broseidon/dwn/internal/config"
	"github.com/1broseidon/dwn/internal/hotkeys"
	"github.com/1broseidon/dwn/internal/platform"
	"github.com/1broseidon/dwn/internal/proc"
	"github.com/1broseidon/dwn/internal/tiling"
)

// Name is published as _NET_WM_NAME.
const Name = "dwn"

// Version is set at build time.
var Version = "dev"

// Options configures a State beyond the Config.
type Options struct {
	Logger *slog.Logger
	// Parent resolves process ancestry for swallowing. Defaults to /proc.
	Parent proc.ParentFunc
	// Spawn starts an external command. Defaults to a detached exec.
	Spawn func(argv []string) error
}

type palette struct {
	normFg, normBg        uint32
	selFg, selBg          uint32
	occFg, occBg          uint32
	invFg, invBg          uint32
	statusFg, statusBg    uint32
	ltFg, ltBg            uint32
	urgFg, urgBg          uint32
	floatNorm, floatSel   uint32
	stickyNorm, stickySel uint32
	fakeNorm, fakeSel     uint32
	layoutNorm, layoutSel []uint32
}

// State is the whole window manager state.
type State struct {
	d      platform.Display
	cfg    *config.Config
	logger *slog.Logger
	parent proc.ParentFunc
	spawn  func(argv []string) error

	layouts []tiling.Layout
	colors  palette
	keys    *hotkeys.Machine
	buttons []hotkeys.ButtonBinding

	clients map[ClientID]*Client
	nextID  ClientID
	mons    []*Monitor
	selmon  *Monitor
	prevmon *Monitor
	motion  *Monitor

	sw, sh int
	bh     int
	status string

	running  bool
	restart  bool
	combo    bool
	prevzoom *Client

	events   <-chan platform.Event
	pending  []platform.Event
	calls    chan func()
	stopped  chan struct{}
	stopOnce sync.Once
}

// New validates the command references in cfg and builds an empty State.
// Call Setup before handling events.
func New(d platform.Display, cfg *config.Config, opts Options) (*State, error) {
	if err := ValidateCommands(cfg); err != nil {
		return nil, err
	}
	s := &State{
		d:       d,
		cfg:     cfg,
		logger:  opts.Logger,
		parent:  opts.Parent,
		spawn:   opts.Spawn,
		clients: make(map[ClientID]*Client),
		calls:   make(chan func()),
		stopped: make(chan struct{}),
		running: true,
		status:  Name + "-" + Version,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.parent == nil {
		s.parent = proc.System.ParentPID
	}
	if s.spawn == nil {
		s.spawn = spawnDetached
	}
	for _, name := range cfg.Layouts {
		l, err := tiling.Lookup(name)
		if err != nil {
			return nil, err
		}
		s.layouts = append(s.layouts, l)
	}
	s.colors = buildPalette(cfg)

	buttons, err := hotkeys.ParseButtons(cfg.Buttons)
	if err != nil {
		return nil, err
	}
	s.buttons = buttons
	s.bh = cfg.Appearance.BarHeight
	s.sw, s.sh = d.ScreenSize()
	return s, nil
}

// ErrUnknownCommand is returned for a binding or request naming a command
// that does not exist.
var ErrUnknownCommand = errors.New("unknown command")

// ValidateCommands checks that every key and button binding names a known
// command with parseable arguments.
func ValidateCommands(cfg *config.Config) error {
	check := func(path, name string, args []string) error {
		cmd, ok := Commands[name]
		if !ok {
			return &config.ValidationError{Path: path + ".command", Err: fmt.Errorf("%w %q", ErrUnknownCommand, name)}
		}
		if _, err := parseArg(cfg, cmd.Arg, args); err != nil {
			return &config.ValidationError{Path: path + ".args", Err: err}
		}
		return nil
	}
	for i, k := range cfg.Keys {
		if err := check(fmt.Sprintf("keys.%d", i), k.Command, k.Args); err != nil {
			return err
		}
	}
	for i, b := range cfg.Buttons {
		if err := check(fmt.Sprintf("buttons.%d", i), b.Command, b.Args); err != nil {
			return err
		}
	}
	return nil
}

func buildPalette(cfg *config.Config) palette {
	col := cfg.Appearance.Colors
	p := palette{
		normFg: config.Pixel(col.NormFg), normBg: config.Pixel(col.NormBg),
		selFg: config.Pixel(col.SelFg), selBg: config.Pixel(col.SelBg),
		occFg: config.Pixel(col.OccupiedFg), occBg: config.Pixel(col.OccupiedBg),
		invFg: config.Pixel(col.InvFg), invBg: config.Pixel(col.InvBg),
		statusFg: config.Pixel(col.StatusFg), statusBg: config.Pixel(col.StatusBg),
		ltFg: config.Pixel(col.LtSymbolFg), ltBg: config.Pixel(col.LtSymbolBg),
		urgFg: config.Pixel(col.UrgentFg), urgBg: config.Pixel(col.UrgentBg),
		floatNorm: config.Pixel(col.Floating.Norm), floatSel: config.Pixel(col.Floating.Sel),
		stickyNorm: config.Pixel(col.Sticky.Norm), stickySel: config.Pixel(col.Sticky.Sel),
		fakeNorm: config.Pixel(col.FakeFullscreen.Norm), fakeSel: config.Pixel(col.FakeFullscreen.Sel),
	}
	for _, name := range cfg.Layouts {
		pair, ok := col.Layouts[name]
		if !ok {
			pair = config.BorderPair{Norm: col.NormBg, Sel: col.SelFg}
		}
		p.layoutNorm = append(p.layoutNorm, config.Pixel(pair.Norm))
		p.layoutSel = append(p.layoutSel, config.Pixel(pair.Sel))
	}
	return p
}

// Setup builds the monitors and bars, publishes the EWMH hints, grabs the
// key table and adopts the windows that already exist.
func (s *State) Setup() error {
	s.updateGeom()
	s.updateBars()
	for _, m := range s.mons {
		s.updateBarPos(m)
		s.resizeBar(m)
	}
	if err := s.d.SetupEWMH(Name, s.cfg.Tags); err != nil {
		return fmt.Errorf("failed to publish EWMH hints: %w", err)
	}
	s.d.SetClientList(nil)
	s.updateStatus()
	s.keys = hotkeys.NewMachine(s.d, s.cfg.Keys, s.logger)
	s.keys.Grab()
	s.updateCurrentDesktop()
	s.focus(nil)
	if err := s.scan(); err != nil {
		return err
	}
	s.arrange(nil)
	return nil
}

// Cleanup releases every client at its last geometry, drops the key grabs
// and returns the focus to the root. Call it after Run returns.
func (s *State) Cleanup() {
	for _, m := range s.mons {
		for len(m.stack) > 0 {
			c := s.clients[m.stack[0]]
			if c.Swallowing == nil {
				s.d.MoveResize(c.Win, c.rect())
			}
			s.unmanage(c, false)
		}
	}
	s.d.UngrabKeys()
	s.d.FocusRoot()
	s.d.SetClientList(nil)
	s.d.Sync()
}

// Restart reports whether the last quit asked for an in-place restart.
func (s *State) Restart() bool { return s.restart }

// Running reports whether the event loop should keep going.
func (s *State) Running() bool { return s.running }

// Selected returns the selected monitor.
func (s *State) Selected() *Monitor { return s.selmon }

// Monitors returns the monitors in order.
func (s *State) Monitors() []*Monitor { return s.mons }

// Clients returns the clients of m in tiling order.
func (s *State) Clients(m *Monitor) []*Client { return s.list(m) }

// Status returns the current status text.
func (s *State) Status() string { return s.status }

// spawnDetached starts argv in its own session and reaps it in the
// background.
func spawnDetached(argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = nil
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn %s: %w", argv[0], err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (s *State) run(argv []string) {
	if err := s.spawn(argv); err != nil {
		s.logger.Error("spawn failed", "argv", argv, "error", err)
	}
}
