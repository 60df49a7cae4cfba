package wm

import (
	"errors"
	"testing"

	"github.com/1broseidon/dwn/internal/config"
	"github.com/1broseidon/dwn/internal/platform/platformtest"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"all", ^uint32(0), false},
		{"~0", ^uint32(0), false},
		{"3", 1 << 2, false},
		{"1,3", 1 | 1<<2, false},
		{" 2 , 9", 1<<1 | 1<<8, false},
		{"10", 0, true},
		{"-1", 0, true},
		{"x", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTags(tt.in, 9)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTags(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseTags(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestFormatTags(t *testing.T) {
	tests := []struct {
		mask uint32
		want string
	}{
		{0, ""},
		{1, "1"},
		{1 | 1<<2, "1,3"},
		{0x1FF, "all"},
		{1<<8 | 1<<9, "9"},
	}
	for _, tt := range tests {
		if got := FormatTags(tt.mask, 9); got != tt.want {
			t.Errorf("FormatTags(%#x) = %q, want %q", tt.mask, got, tt.want)
		}
	}
}

func TestParseMoveResize(t *testing.T) {
	tests := []struct {
		in      string
		want    geometry
		wantErr bool
	}{
		{"0x 25y 0w 0h", geometry{Y: 25}, false},
		{"-25x 0y 0w 0h", geometry{X: -25}, false},
		{"0X 0Y 800W 600H", geometry{W: 800, H: 600, AbsX: true, AbsY: true, AbsW: true, AbsH: true}, false},
		{"0x 0y 25w", geometry{}, true},
		{"0y 0x 0w 0h", geometry{}, true},
		{"ax 0y 0w 0h", geometry{}, true},
	}
	for _, tt := range tests {
		got, err := parseMoveResize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMoveResize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseMoveResize(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseArg(t *testing.T) {
	cfg := config.DefaultConfig()
	monocle, _ := cfg.LayoutIndex("monocle")
	tests := []struct {
		name    string
		kind    ArgKind
		args    []string
		want    Arg
		wantErr bool
	}{
		{"none", ArgNone, nil, Arg{}, false},
		{"none with args", ArgNone, []string{"1"}, Arg{}, true},
		{"int", ArgInt, []string{"-1"}, Arg{I: -1}, false},
		{"int default", ArgInt, nil, Arg{}, false},
		{"int bad", ArgInt, []string{"one"}, Arg{}, true},
		{"int too many", ArgInt, []string{"1", "2"}, Arg{}, true},
		{"float", ArgFloat, []string{"-0.05"}, Arg{F: -0.05}, false},
		{"tags", ArgTags, []string{"2"}, Arg{UI: 2}, false},
		{"tags empty", ArgTags, nil, Arg{}, false},
		{"layout", ArgLayout, []string{"monocle"}, Arg{I: monocle}, false},
		{"layout default", ArgLayout, nil, Arg{I: -1}, false},
		{"layout unknown", ArgLayout, []string{"stairs"}, Arg{}, true},
		{"scratch name", ArgScratch, []string{"spmus"}, Arg{I: 1}, false},
		{"scratch index", ArgScratch, []string{"2"}, Arg{I: 2}, false},
		{"scratch unknown", ArgScratch, []string{"9"}, Arg{}, true},
		{"geometry", ArgGeometry, []string{"0x", "25y", "0w", "0h"}, Arg{S: "0x 25y 0w 0h"}, false},
		{"geometry bad", ArgGeometry, []string{"25"}, Arg{}, true},
		{"list empty", ArgList, nil, Arg{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArg(cfg, tt.kind, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseArg error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.I != tt.want.I || got.UI != tt.want.UI || got.F != tt.want.F || got.S != tt.want.S {
				t.Fatalf("parseArg = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDefaultBindingsValidate(t *testing.T) {
	if err := ValidateCommands(config.DefaultConfig()); err != nil {
		t.Fatalf("default bindings: %v", err)
	}
}

func TestValidateCommands_ReportsPath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Buttons = append(cfg.Buttons, config.ButtonBinding{Click: config.ClickTagBar, Button: 2, Command: "view", Args: config.StringList{"eleven"}})
	err := ValidateCommands(cfg)
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path == "" {
		t.Fatalf("expected a path on %v", verr)
	}
}

func TestSignalNamesAreCommands(t *testing.T) {
	for _, name := range SignalNames() {
		if _, ok := Commands[name]; !ok {
			t.Errorf("signal %q has no command", name)
		}
	}
}

func TestRunCommand(t *testing.T) {
	h := newHarness(t, nil)
	if err := h.s.RunCommand("viewex", []string{"4"}); err != nil {
		t.Fatalf("RunCommand: %v", err)
	}
	if got := h.s.Selected().tagset(); got != 1<<4 {
		t.Fatalf("expected tag 5 viewed, got %#x", got)
	}
	if err := h.s.RunCommand("nosuch", nil); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if err := h.s.RunCommand("setmfact", []string{"big"}); err == nil {
		t.Fatalf("expected argument error")
	}
}

func TestView_CollapsesToEmpty(t *testing.T) {
	h := newHarness(t, nil)
	m := h.s.Selected()
	c := h.mapWindow(t, platformtest.Window{Class: "App"})

	h.s.view(2)
	if m.tagset() != 2 {
		t.Fatalf("expected view 2, got %#x", m.tagset())
	}
	if h.d.Win(c.Win).Rect.X >= 0 {
		t.Fatalf("expected hidden client moved off screen, got %+v", h.d.Win(c.Win).Rect)
	}
	if m.Sel() != nil || h.d.Focused != h.d.Root() {
		t.Fatalf("expected focus on root with no visible clients")
	}
	if h.d.CurrentDesktop != 1 {
		t.Fatalf("expected current desktop 1, got %d", h.d.CurrentDesktop)
	}

	h.s.view(1)
	h.s.setMFact(Arg{F: 0.1})
	h.s.view(1)
	if m.tagset() != 0 {
		t.Fatalf("expected viewing the active tag to empty the view, got %#x", m.tagset())
	}
	if c.visible() || h.d.Win(c.Win).Rect.X >= 0 {
		t.Fatalf("expected no visible clients on the empty view")
	}

	h.s.view(0)
	if m.tagset() != 1 {
		t.Fatalf("expected view 0 to return to tag 1, got %#x", m.tagset())
	}
	if m.Sel() != c || h.d.Win(c.Win).Rect.X < 0 {
		t.Fatalf("expected client shown and focused again")
	}
	if !approx(m.MFact, 0.6) {
		t.Fatalf("expected tag 1 mfact back, got %v", m.MFact)
	}
}

func TestToggleView_AddsAndRemovesTags(t *testing.T) {
	h := newHarness(t, nil)
	m := h.s.Selected()
	h.s.toggleView(4)
	if m.tagset() != 5 {
		t.Fatalf("expected tags 1 and 3, got %#x", m.tagset())
	}
	h.s.toggleView(1)
	if m.tagset() != 4 {
		t.Fatalf("expected tag 3, got %#x", m.tagset())
	}
}

func TestToggleTag_NeverEmpty(t *testing.T) {
	h := newHarness(t, nil)
	c := h.mapWindow(t, platformtest.Window{Class: "App"})

	h.s.toggleTag(1)
	if c.Tags != 1 {
		t.Fatalf("expected the last tag kept, got %#x", c.Tags)
	}
	h.s.toggleTag(2)
	if c.Tags != 3 {
		t.Fatalf("expected tags 1 and 2, got %#x", c.Tags)
	}
	h.s.toggleTag(1)
	if c.Tags != 2 || c.visible() {
		t.Fatalf("expected client moved off the view, tags %#x", c.Tags)
	}
	if h.s.Selected().Sel() == c {
		t.Fatalf("hidden client must not stay selected")
	}
}

func TestTag_IgnoresEmptyMask(t *testing.T) {
	h := newHarness(t, nil)
	c := h.mapWindow(t, platformtest.Window{Class: "App"})
	h.s.tag(0)
	if c.Tags != 1 {
		t.Fatalf("expected tag unchanged, got %#x", c.Tags)
	}
	h.s.tag(1 << 3)
	if c.Tags != 1<<3 || c.visible() {
		t.Fatalf("expected client on tag 4 and hidden")
	}
}

func TestTagWith_Follows(t *testing.T) {
	h := newHarness(t, nil)
	c := h.mapWindow(t, platformtest.Window{Class: "App"})
	h.s.tagWith(1 << 2)
	if c.Tags != 1<<2 || h.s.Selected().tagset() != 1<<2 {
		t.Fatalf("expected client and view on tag 3")
	}
	if h.s.Selected().Sel() != c {
		t.Fatalf("expected client still selected")
	}
}

func TestSwapTags(t *testing.T) {
	h := newHarness(t, nil)
	a := h.mapWindow(t, platformtest.Window{Class: "A"})
	h.s.view(2)
	b := h.mapWindow(t, platformtest.Window{Class: "B"})
	h.s.view(1)

	h.s.swapTags(2)
	if a.Tags != 2 || b.Tags != 1 {
		t.Fatalf("expected tags swapped, got a=%#x b=%#x", a.Tags, b.Tags)
	}
	if h.s.Selected().tagset() != 2 {
		t.Fatalf("expected view on tag 2")
	}
}

func TestPertag_RemembersLayoutAndFactors(t *testing.T) {
	h := newHarness(t, nil)
	m := h.s.Selected()
	monocle, _ := h.cfg.LayoutIndex("monocle")

	h.s.setLayout(monocle)
	h.s.setMFact(Arg{F: 0.1})
	h.s.incNMaster(Arg{I: 1})

	h.s.view(2)
	if m.Lt[m.SelLt] != 0 || m.MFact != 0.5 || m.NMaster != 1 {
		t.Fatalf("expected defaults on tag 2, got layout=%d mfact=%v nmaster=%d", m.Lt[m.SelLt], m.MFact, m.NMaster)
	}

	h.s.view(1)
	if m.Lt[m.SelLt] != monocle || !approx(m.MFact, 0.6) || m.NMaster != 2 {
		t.Fatalf("expected tag 1 values back, got layout=%d mfact=%v nmaster=%d", m.Lt[m.SelLt], m.MFact, m.NMaster)
	}
	if m.LtSymbol != "[M]" {
		t.Fatalf("expected monocle symbol, got %q", m.LtSymbol)
	}
}

func TestSetLayout_TogglesSlots(t *testing.T) {
	h := newHarness(t, nil)
	m := h.s.Selected()
	deck, _ := h.cfg.LayoutIndex("deck")

	h.s.setLayout(deck)
	if m.Lt[m.SelLt] != deck {
		t.Fatalf("expected deck, got %d", m.Lt[m.SelLt])
	}
	h.s.setLayout(-1)
	if m.Lt[m.SelLt] != 0 {
		t.Fatalf("expected the previous layout back, got %d", m.Lt[m.SelLt])
	}
	h.s.setLayout(len(h.cfg.Layouts))
	if m.Lt[m.SelLt] != 0 {
		t.Fatalf("out of range layout must be ignored")
	}
}

func TestCycleLayout_Wraps(t *testing.T) {
	h := newHarness(t, nil)
	m := h.s.Selected()
	h.s.cycleLayout(Arg{I: -1})
	if want := len(h.cfg.Layouts) - 1; m.Lt[m.SelLt] != want {
		t.Fatalf("expected layout %d, got %d", want, m.Lt[m.SelLt])
	}
	h.s.cycleLayout(Arg{I: 1})
	if m.Lt[m.SelLt] != 0 {
		t.Fatalf("expected wrap to layout 0, got %d", m.Lt[m.SelLt])
	}
}

func TestSetMFact_Bounds(t *testing.T) {
	tests := []struct {
		name string
		f    float64
		want float64
	}{
		{"relative", 0.1, 0.6},
		{"absolute", 1.3, 0.3},
		{"reset", 0, 0.5},
		{"too large", 0.5, 0.5},
		{"too small", -0.5, 0.5},
		{"absolute too large", 1.99, 0.5},
	}
	h := newHarness(t, nil)
	m := h.s.Selected()
	for _, tt := range tests {
		m.MFact = 0.5
		h.s.setMFact(Arg{F: tt.f})
		if !approx(m.MFact, tt.want) {
			t.Errorf("%s: mfact = %v, want %v", tt.name, m.MFact, tt.want)
		}
	}

	floating, _ := h.cfg.LayoutIndex("floating")
	h.s.setLayout(floating)
	m.MFact = 0.5
	h.s.setMFact(Arg{F: 0.1})
	if m.MFact != 0.5 {
		t.Fatalf("expected mfact untouched without a tiling layout")
	}
}

func TestSetCFact_Bounds(t *testing.T) {
	h := newHarness(t, nil)
	c := h.mapWindow(t, platformtest.Window{Class: "App"})
	tests := []struct {
		f    float64
		want float64
	}{
		{0.5, 1.5},
		{3.5, 1},
		{-0.8, 1},
		{-0.75, 0.25},
		{0, 1},
	}
	for _, tt := range tests {
		c.CFact = 1
		h.s.setCFact(Arg{F: tt.f})
		if !approx(c.CFact, tt.want) {
			t.Errorf("setCFact(%v) = %v, want %v", tt.f, c.CFact, tt.want)
		}
	}
}

func TestIncNMaster_ClampsAtZero(t *testing.T) {
	h := newHarness(t, nil)
	m := h.s.Selected()
	h.s.incNMaster(Arg{I: -5})
	if m.NMaster != 0 {
		t.Fatalf("expected nmaster 0, got %d", m.NMaster)
	}
	h.s.incNMaster(Arg{I: 2})
	if m.NMaster != 2 {
		t.Fatalf("expected nmaster 2, got %d", m.NMaster)
	}
	h.s.resetNMaster(Arg{})
	if m.NMaster != 1 {
		t.Fatalf("expected nmaster reset to 1, got %d", m.NMaster)
	}
}

func TestGaps(t *testing.T) {
	h := newHarness(t, nil)
	m := h.s.Selected()
	h.s.incrGaps(Arg{I: 3})
	if m.Gaps.InnerH != 8 || m.Gaps.OuterH != 3 {
		t.Fatalf("unexpected gaps %+v", m.Gaps)
	}
	h.s.incrOGaps(Arg{I: -10})
	if m.Gaps.OuterH != 0 || m.Gaps.OuterV != 0 {
		t.Fatalf("expected outer gaps clamped at zero, got %+v", m.Gaps)
	}
	h.s.toggleGaps(Arg{})
	if m.Gaps.Enabled {
		t.Fatalf("expected gaps disabled")
	}
	h.s.defaultGaps(Arg{})
	if m.Gaps.InnerH != 5 || m.Gaps.OuterH != 0 {
		t.Fatalf("expected default gaps, got %+v", m.Gaps)
	}
}

func TestToggleBar_ResizesWorkArea(t *testing.T) {
	h := newHarness(t, nil)
	m := h.s.Selected()
	h.s.toggleBar(Arg{})
	if m.ShowBar || m.W != m.M {
		t.Fatalf("expected full work area without bar, got %+v", m.W)
	}
	h.s.toggleBar(Arg{})
	if !m.ShowBar || m.W.Height != m.M.Height-h.cfg.Appearance.BarHeight {
		t.Fatalf("expected bar back, got %+v", m.W)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
