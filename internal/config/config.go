package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/1broseidon/dwn/internal/tiling"
	"gopkg.in/yaml.v3"
)

// Click regions a button binding can target.
const (
	ClickTagBar     = "tagbar"
	ClickLtSymbol   = "ltsymbol"
	ClickStatusText = "status"
	ClickWinTitle   = "wintitle"
	ClickClientWin  = "clientwin"
	ClickRootWin    = "rootwin"
)

var clickRegions = map[string]struct{}{
	ClickTagBar:     {},
	ClickLtSymbol:   {},
	ClickStatusText: {},
	ClickWinTitle:   {},
	ClickClientWin:  {},
	ClickRootWin:    {},
}

// BorderPair is the unfocused/focused border colour pair for one state.
type BorderPair struct {
	Norm string `yaml:"norm"`
	Sel  string `yaml:"sel"`
}

// Colors holds every colour as a "#rrggbb" string.
type Colors struct {
	NormFg     string `yaml:"norm_fg"`
	NormBg     string `yaml:"norm_bg"`
	SelFg      string `yaml:"sel_fg"`
	SelBg      string `yaml:"sel_bg"`
	OccupiedFg string `yaml:"occupied_fg"`
	OccupiedBg string `yaml:"occupied_bg"`
	InvFg      string `yaml:"inv_fg"`
	InvBg      string `yaml:"inv_bg"`
	StatusFg   string `yaml:"status_fg"`
	StatusBg   string `yaml:"status_bg"`
	LtSymbolFg string `yaml:"ltsymbol_fg"`
	LtSymbolBg string `yaml:"ltsymbol_bg"`
	UrgentFg   string `yaml:"urgent_fg"`
	UrgentBg   string `yaml:"urgent_bg"`

	Floating       BorderPair `yaml:"floating"`
	Sticky         BorderPair `yaml:"sticky"`
	FakeFullscreen BorderPair `yaml:"fake_fullscreen"`
	// Layouts maps a layout name to the border colours of tiled clients
	// while that layout is active.
	Layouts map[string]BorderPair `yaml:"layouts"`
}

type Appearance struct {
	Font      string `yaml:"font"`
	BarHeight int    `yaml:"bar_height"`
	// TagFormat is used for a tag holding clients; the arguments are the
	// tag name and the class of its first client.
	TagFormat      string `yaml:"tag_format"`
	EmptyTagFormat string `yaml:"empty_tag_format"`
	LowercaseLabel bool   `yaml:"lowercase_label"`
	Colors         Colors `yaml:"colors"`
}

type Behaviour struct {
	ResizeHints     bool `yaml:"resize_hints"`
	AttachBelow     bool `yaml:"attach_below"`
	ForceVSplit     bool `yaml:"force_vsplit"`
	Snap            int  `yaml:"snap"`
	SwallowFloating bool `yaml:"swallow_floating"`
	StartOnTag      bool `yaml:"start_on_tag"`
	DecorHints      bool `yaml:"decor_hints"`
	FocusOnWheel    bool `yaml:"focus_on_wheel"`
	// PaddingToggle is the bar padding applied by togglepadding.
	PaddingToggle Padding `yaml:"padding_toggle"`
}

type Padding struct {
	Vertical int `yaml:"vertical"`
	Side     int `yaml:"side"`
}

type Gaps struct {
	InnerH int `yaml:"inner_h"`
	InnerV int `yaml:"inner_v"`
	OuterH int `yaml:"outer_h"`
	OuterV int `yaml:"outer_v"`
}

// TagRule is the initial per-tag state of a monitor.
type TagRule struct {
	Layout     string  `yaml:"layout"`
	MFact      float64 `yaml:"mfact"`
	NMaster    int     `yaml:"nmaster"`
	ShowBar    bool    `yaml:"show_bar"`
	TopBar     bool    `yaml:"top_bar"`
	HideVacant bool    `yaml:"hide_vacant"`
	Gaps       Gaps    `yaml:"gaps"`
	EnableGaps bool    `yaml:"enable_gaps"`
	SmartGaps  bool    `yaml:"smart_gaps"`
	Padding    Padding `yaml:"padding"`
	TPadding   bool    `yaml:"toggle_padding"`
	BorderPx   int     `yaml:"border_px"`
}

// TagRuleOverride patches TagDefaults for one monitor and/or tag. A nil
// Monitor or Tag matches every monitor or tag. Tag is 1-based.
type TagRuleOverride struct {
	Monitor    *int     `yaml:"monitor,omitempty"`
	Tag        *int     `yaml:"tag,omitempty"`
	Layout     *string  `yaml:"layout,omitempty"`
	MFact      *float64 `yaml:"mfact,omitempty"`
	NMaster    *int     `yaml:"nmaster,omitempty"`
	ShowBar    *bool    `yaml:"show_bar,omitempty"`
	TopBar     *bool    `yaml:"top_bar,omitempty"`
	HideVacant *bool    `yaml:"hide_vacant,omitempty"`
	Gaps       *Gaps    `yaml:"gaps,omitempty"`
	EnableGaps *bool    `yaml:"enable_gaps,omitempty"`
	SmartGaps  *bool    `yaml:"smart_gaps,omitempty"`
	Padding    *Padding `yaml:"padding,omitempty"`
	TPadding   *bool    `yaml:"toggle_padding,omitempty"`
	BorderPx   *int     `yaml:"border_px,omitempty"`
}

// Rule matches new clients. Class, Instance and Title are substring
// matches; WindowType is an exact atom name. Empty fields match anything.
type Rule struct {
	Class      string `yaml:"class,omitempty"`
	Instance   string `yaml:"instance,omitempty"`
	Title      string `yaml:"title,omitempty"`
	WindowType string `yaml:"window_type,omitempty"`
	// Tags are 1-based tag numbers.
	Tags       []int  `yaml:"tags,omitempty"`
	Scratchpad string `yaml:"scratchpad,omitempty"`
	SwitchTag  int    `yaml:"switch_tag,omitempty"`
	Floating   bool   `yaml:"floating,omitempty"`
	Centered   bool   `yaml:"centered,omitempty"`
	Permanent  bool   `yaml:"permanent,omitempty"`
	Terminal   bool   `yaml:"terminal,omitempty"`
	NoSwallow  bool   `yaml:"noswallow,omitempty"`
	Monitor    *int   `yaml:"monitor,omitempty"`
}

type Scratchpad struct {
	Name    string   `yaml:"name"`
	Command []string `yaml:"command"`
}

// KeyBinding runs Command once every key in the chord was pressed in order.
type KeyBinding struct {
	Keys    StringList `yaml:"keys"`
	Command string     `yaml:"command"`
	Args    StringList `yaml:"args,omitempty"`
}

type ButtonBinding struct {
	Click   string     `yaml:"click"`
	Mods    string     `yaml:"mods,omitempty"`
	Button  int        `yaml:"button"`
	Command string     `yaml:"command"`
	Args    StringList `yaml:"args,omitempty"`
}

// Config holds the window manager configuration.
type Config struct {
	LogLevel    string            `yaml:"log_level"`
	Appearance  Appearance        `yaml:"appearance"`
	Behaviour   Behaviour         `yaml:"behaviour"`
	Tags        []string          `yaml:"tags"`
	Layouts     []string          `yaml:"layouts"`
	TagDefaults TagRule           `yaml:"tag_defaults"`
	TagRules    []TagRuleOverride `yaml:"tag_rules"`
	Rules       []Rule            `yaml:"rules"`
	Scratchpads []Scratchpad      `yaml:"scratchpads"`
	Keys        []KeyBinding      `yaml:"keys"`
	Buttons     []ButtonBinding   `yaml:"buttons"`
}

// MaxTagBits bounds tags plus scratchpads so every mask fits the 32-bit
// client tag property with bit 31 free.
const MaxTagBits = 31

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Appearance: Appearance{
			Font:           "fixed",
			BarHeight:      24,
			TagFormat:      "[%s:%s]",
			EmptyTagFormat: "%s",
			Colors:         defaultColors(),
		},
		Behaviour: Behaviour{
			AttachBelow:     true,
			ForceVSplit:     true,
			SwallowFloating: true,
			StartOnTag:      true,
			DecorHints:      true,
			PaddingToggle:   Padding{Vertical: 10, Side: 10},
		},
		Tags:    []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		Layouts: append([]string(nil), tiling.DefaultOrder...),
		TagDefaults: TagRule{
			Layout:     tiling.DefaultOrder[0],
			MFact:      0.5,
			NMaster:    1,
			ShowBar:    true,
			TopBar:     true,
			Gaps:       Gaps{InnerH: 5, InnerV: 5},
			EnableGaps: true,
			SmartGaps:  true,
			BorderPx:   2,
		},
		TagRules: []TagRuleOverride{
			// The second monitor starts in bottom-stack.
			{Monitor: intPtr(1), Layout: strPtr("bstack")},
		},
		Rules:       defaultRules(),
		Scratchpads: defaultScratchpads(),
		Keys:        defaultKeys(),
		Buttons:     defaultButtons(),
	}
}

func defaultColors() Colors {
	layouts := make(map[string]BorderPair, len(tiling.DefaultOrder))
	for _, name := range tiling.DefaultOrder {
		layouts[name] = BorderPair{Norm: "#1E1C31", Sel: "#ff5370"}
	}
	layouts["floating"] = BorderPair{Norm: "#1E1C31", Sel: "#16cc31"}
	layouts["bstack"] = BorderPair{Norm: "#1E1C31", Sel: "#c678dd"}

	return Colors{
		NormFg:         "#4E5579",
		NormBg:         "#1E1C31",
		SelFg:          "#ff5370",
		SelBg:          "#1E1C31",
		OccupiedFg:     "#7986E7",
		OccupiedBg:     "#1E1C31",
		InvFg:          "#ffffff",
		InvBg:          "#3071db",
		StatusFg:       "#7986E7",
		StatusBg:       "#1E1C31",
		LtSymbolFg:     "#ff5370",
		LtSymbolBg:     "#1E1C31",
		UrgentFg:       "#1E1C31",
		UrgentBg:       "#ff5370",
		Floating:       BorderPair{Norm: "#000000", Sel: "#ffffff"},
		Sticky:         BorderPair{Norm: "#000000", Sel: "#98be65"},
		FakeFullscreen: BorderPair{Norm: "#408ab2", Sel: "#b869e5"},
		Layouts:        layouts,
	}
}

// TagRuleFor returns the initial state of tag (0-based) on monitor mon.
// Overrides apply in order on top of TagDefaults.
func (c *Config) TagRuleFor(mon, tag int) TagRule {
	out := c.TagDefaults
	for _, o := range c.TagRules {
		if o.Monitor != nil && *o.Monitor != mon {
			continue
		}
		if o.Tag != nil && *o.Tag != tag+1 {
			continue
		}
		out = applyTagOverride(out, o)
	}
	return out
}

func applyTagOverride(base TagRule, o TagRuleOverride) TagRule {
	out := base
	if o.Layout != nil {
		out.Layout = *o.Layout
	}
	if o.MFact != nil {
		out.MFact = *o.MFact
	}
	if o.NMaster != nil {
		out.NMaster = *o.NMaster
	}
	if o.ShowBar != nil {
		out.ShowBar = *o.ShowBar
	}
	if o.TopBar != nil {
		out.TopBar = *o.TopBar
	}
	if o.HideVacant != nil {
		out.HideVacant = *o.HideVacant
	}
	if o.Gaps != nil {
		out.Gaps = *o.Gaps
	}
	if o.EnableGaps != nil {
		out.EnableGaps = *o.EnableGaps
	}
	if o.SmartGaps != nil {
		out.SmartGaps = *o.SmartGaps
	}
	if o.Padding != nil {
		out.Padding = *o.Padding
	}
	if o.TPadding != nil {
		out.TPadding = *o.TPadding
	}
	if o.BorderPx != nil {
		out.BorderPx = *o.BorderPx
	}
	return out
}

// LayoutIndex returns the position of name in the configured layout list.
func (c *Config) LayoutIndex(name string) (int, bool) {
	for i, n := range c.Layouts {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// ScratchpadIndex returns the 0-based index of the named scratchpad.
func (c *Config) ScratchpadIndex(name string) (int, bool) {
	for i, sp := range c.Scratchpads {
		if sp.Name == name {
			return i, true
		}
	}
	return 0, false
}

// TagMask has one bit per workspace tag.
func (c *Config) TagMask() uint32 {
	return uint32(1)<<uint(len(c.Tags)) - 1
}

// ScratchTag is the reserved tag bit of scratchpad i.
func (c *Config) ScratchTag(i int) uint32 {
	return uint32(1) << uint(len(c.Tags)+i)
}

// ParseColor converts "#rrggbb" into a 24-bit pixel value.
func ParseColor(s string) (uint32, error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}

// Pixel is ParseColor for values that already passed Validate.
func Pixel(s string) uint32 {
	v, _ := ParseColor(s)
	return v
}

func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "dwn", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "dwn", "config.yaml"), nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks ranges and cross references. Command names are checked by
// the window manager, which owns the command table.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if len(c.Tags) == 0 {
		return &ValidationError{Path: "tags", Err: fmt.Errorf("tags must not be empty")}
	}
	if len(c.Tags)+len(c.Scratchpads) > MaxTagBits {
		return &ValidationError{Path: "scratchpads", Err: fmt.Errorf("tags plus scratchpads must not exceed %d", MaxTagBits)}
	}
	if c.Appearance.BarHeight < 1 {
		return &ValidationError{Path: "appearance.bar_height", Err: fmt.Errorf("bar_height must be >= 1")}
	}
	if err := c.validateColors(); err != nil {
		return err
	}
	if c.Behaviour.Snap < 0 {
		return &ValidationError{Path: "behaviour.snap", Err: fmt.Errorf("snap must be >= 0")}
	}

	if len(c.Layouts) == 0 {
		return &ValidationError{Path: "layouts", Err: fmt.Errorf("layouts must not be empty")}
	}
	if len(c.Layouts) > 16 {
		return &ValidationError{Path: "layouts", Err: fmt.Errorf("at most 16 layouts are supported")}
	}
	for i, name := range c.Layouts {
		if _, err := tiling.Lookup(name); err != nil {
			return &ValidationError{Path: fmt.Sprintf("layouts.%d", i), Err: fmt.Errorf("%w (known: %s)", err, strings.Join(tiling.Names(), ", "))}
		}
	}

	if err := c.validateTagRule("tag_defaults", c.TagDefaults); err != nil {
		return err
	}
	for i, o := range c.TagRules {
		path := fmt.Sprintf("tag_rules.%d", i)
		if o.Tag != nil && (*o.Tag < 1 || *o.Tag > len(c.Tags)) {
			return &ValidationError{Path: path + ".tag", Err: fmt.Errorf("tag must be between 1 and %d", len(c.Tags))}
		}
		if err := c.validateTagRule(path, applyTagOverride(c.TagDefaults, o)); err != nil {
			return err
		}
	}

	for i, r := range c.Rules {
		path := fmt.Sprintf("rules.%d", i)
		for _, t := range r.Tags {
			if t < 1 || t > len(c.Tags) {
				return &ValidationError{Path: path + ".tags", Err: fmt.Errorf("tag %d out of range 1..%d", t, len(c.Tags))}
			}
		}
		if r.SwitchTag < 0 || r.SwitchTag > 4 {
			return &ValidationError{Path: path + ".switch_tag", Err: fmt.Errorf("switch_tag must be between 0 and 4")}
		}
		if r.Scratchpad != "" {
			if _, ok := c.ScratchpadIndex(r.Scratchpad); !ok {
				return &ValidationError{Path: path + ".scratchpad", Err: fmt.Errorf("unknown scratchpad %q", r.Scratchpad)}
			}
		}
	}

	seen := make(map[string]struct{}, len(c.Scratchpads))
	for i, sp := range c.Scratchpads {
		path := fmt.Sprintf("scratchpads.%d", i)
		if strings.TrimSpace(sp.Name) == "" {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("name is required")}
		}
		if _, dup := seen[sp.Name]; dup {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("duplicate scratchpad %q", sp.Name)}
		}
		seen[sp.Name] = struct{}{}
		if len(sp.Command) == 0 {
			return &ValidationError{Path: path + ".command", Err: fmt.Errorf("command must not be empty")}
		}
	}

	for i, k := range c.Keys {
		path := fmt.Sprintf("keys.%d", i)
		if len(k.Keys) == 0 {
			return &ValidationError{Path: path + ".keys", Err: fmt.Errorf("keys must not be empty")}
		}
		if strings.TrimSpace(k.Command) == "" {
			return &ValidationError{Path: path + ".command", Err: fmt.Errorf("command is required")}
		}
	}
	for i, b := range c.Buttons {
		path := fmt.Sprintf("buttons.%d", i)
		if _, ok := clickRegions[b.Click]; !ok {
			return &ValidationError{Path: path + ".click", Err: fmt.Errorf("unknown click region %q", b.Click)}
		}
		if b.Button < 1 || b.Button > 5 {
			return &ValidationError{Path: path + ".button", Err: fmt.Errorf("button must be between 1 and 5")}
		}
		if strings.TrimSpace(b.Command) == "" {
			return &ValidationError{Path: path + ".command", Err: fmt.Errorf("command is required")}
		}
	}
	return nil
}

func (c *Config) validateTagRule(path string, r TagRule) error {
	if _, ok := c.LayoutIndex(r.Layout); !ok {
		return &ValidationError{Path: path + ".layout", Err: fmt.Errorf("layout %q is not in layouts", r.Layout)}
	}
	if r.MFact < 0.05 || r.MFact > 0.95 {
		return &ValidationError{Path: path + ".mfact", Err: fmt.Errorf("mfact must be between 0.05 and 0.95")}
	}
	if r.NMaster < 0 || r.NMaster > 15 {
		return &ValidationError{Path: path + ".nmaster", Err: fmt.Errorf("nmaster must be between 0 and 15")}
	}
	if r.BorderPx < 0 || r.BorderPx > 63 {
		return &ValidationError{Path: path + ".border_px", Err: fmt.Errorf("border_px must be between 0 and 63")}
	}
	for _, g := range []int{r.Gaps.InnerH, r.Gaps.InnerV, r.Gaps.OuterH, r.Gaps.OuterV, r.Padding.Vertical, r.Padding.Side} {
		if g < 0 || g > 127 {
			return &ValidationError{Path: path, Err: fmt.Errorf("gaps and padding must be between 0 and 127")}
		}
	}
	return nil
}

func (c *Config) validateColors() error {
	col := c.Appearance.Colors
	named := map[string]string{
		"norm_fg": col.NormFg, "norm_bg": col.NormBg,
		"sel_fg": col.SelFg, "sel_bg": col.SelBg,
		"occupied_fg": col.OccupiedFg, "occupied_bg": col.OccupiedBg,
		"inv_fg": col.InvFg, "inv_bg": col.InvBg,
		"status_fg": col.StatusFg, "status_bg": col.StatusBg,
		"ltsymbol_fg": col.LtSymbolFg, "ltsymbol_bg": col.LtSymbolBg,
		"urgent_fg": col.UrgentFg, "urgent_bg": col.UrgentBg,
		"floating.norm": col.Floating.Norm, "floating.sel": col.Floating.Sel,
		"sticky.norm": col.Sticky.Norm, "sticky.sel": col.Sticky.Sel,
		"fake_fullscreen.norm": col.FakeFullscreen.Norm, "fake_fullscreen.sel": col.FakeFullscreen.Sel,
	}
	for name, pair := range col.Layouts {
		named["layouts."+name+".norm"] = pair.Norm
		named["layouts."+name+".sel"] = pair.Sel
	}
	for _, key := range sortedKeys(named) {
		if _, err := ParseColor(named[key]); err != nil {
			return &ValidationError{Path: "appearance.colors." + key, Err: err}
		}
	}
	return nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
