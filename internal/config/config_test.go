package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if len(cfg.Tags) != 9 {
		t.Fatalf("expected 9 tags, got %d", len(cfg.Tags))
	}
	if cfg.TagMask() != 0x1FF {
		t.Fatalf("expected tag mask 0x1ff, got %#x", cfg.TagMask())
	}
	if cfg.ScratchTag(0) != 1<<9 || cfg.ScratchTag(2) != 1<<11 {
		t.Fatalf("unexpected scratch tags %#x %#x", cfg.ScratchTag(0), cfg.ScratchTag(2))
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
	if res.Config.Appearance.BarHeight != 24 {
		t.Fatalf("expected default bar height, got %d", res.Config.Appearance.BarHeight)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.TagDefaults.Layout != "tile" {
		t.Fatalf("expected default layout tile, got %q", res.Config.TagDefaults.Layout)
	}
}

func TestLoadFromPath_PartialOverrideKeepsSiblings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"appearance:",
		"  bar_height: 30",
		"  colors:",
		"    sel_fg: \"#00ff00\"",
		"    layouts:",
		"      tile: {norm: \"#111111\", sel: \"#222222\"}",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	app := res.Config.Appearance
	if app.BarHeight != 30 {
		t.Fatalf("expected bar height 30, got %d", app.BarHeight)
	}
	if app.Colors.SelFg != "#00ff00" {
		t.Fatalf("expected sel_fg override, got %q", app.Colors.SelFg)
	}
	if app.Colors.NormFg != "#4E5579" {
		t.Fatalf("expected norm_fg default to survive, got %q", app.Colors.NormFg)
	}
	if app.Colors.Layouts["tile"].Sel != "#222222" {
		t.Fatalf("expected tile border override, got %+v", app.Colors.Layouts["tile"])
	}
	if _, ok := app.Colors.Layouts["bstack"]; !ok {
		t.Fatalf("expected other layout borders to survive")
	}
}

func TestLoadFromPath_KeysAcceptScalarOrList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"keys:",
		"  - keys: Mod1-Return",
		"    command: spawn",
		"    args: [st]",
		"  - keys: [Mod1-e, e]",
		"    command: spawn",
		"    args: emacs",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	keys := res.Config.Keys
	if len(keys) != 2 {
		t.Fatalf("expected the key table to be replaced, got %d entries", len(keys))
	}
	if len(keys[0].Keys) != 1 || keys[0].Keys[0] != "Mod1-Return" {
		t.Fatalf("unexpected first chord %v", keys[0].Keys)
	}
	if len(keys[1].Keys) != 2 || keys[1].Keys[1] != "e" {
		t.Fatalf("unexpected second chord %v", keys[1].Keys)
	}
	if len(keys[1].Args) != 1 || keys[1].Args[0] != "emacs" {
		t.Fatalf("unexpected args %v", keys[1].Args)
	}
}

func TestLoadFromPath_IncludesApplyBeforeFile(t *testing.T) {
	dir := t.TempDir()
	incDir := filepath.Join(dir, "conf.d")
	if err := os.Mkdir(incDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(incDir, "10-log.yaml"), "log_level: debug\nbehaviour:\n  snap: 8\n")
	writeFile(t, filepath.Join(incDir, "20-bar.yaml"), "appearance:\n  bar_height: 18\n")
	writeFile(t, filepath.Join(incDir, "notes.txt"), "ignored")

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: conf.d\nbehaviour:\n  snap: 16\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected included log_level, got %q", cfg.LogLevel)
	}
	if cfg.Appearance.BarHeight != 18 {
		t.Fatalf("expected included bar height, got %d", cfg.Appearance.BarHeight)
	}
	if cfg.Behaviour.Snap != 16 {
		t.Fatalf("expected main file to win, got snap %d", cfg.Behaviour.Snap)
	}
	if !cfg.Behaviour.AttachBelow {
		t.Fatalf("expected untouched defaults to survive includes")
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files loaded, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, b, "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestLoadFromPath_UnknownFieldRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "appearance:\n  bar_hieght: 10\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestLoadFromPath_ValidationErrorCarriesSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "behaviour:\n  snap: -1\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "behaviour.snap" {
		t.Fatalf("expected path behaviour.snap, got %q", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("expected source line 2, got %d", verr.Source.Line)
	}
	if !strings.Contains(err.Error(), "config.yaml:2:") {
		t.Fatalf("expected file position in %q", err.Error())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"no tags", func(c *Config) { c.Tags = nil }, "tags"},
		{"too many bits", func(c *Config) {
			for i := 0; i < 25; i++ {
				c.Tags = append(c.Tags, "x")
			}
		}, "scratchpads"},
		{"bad color", func(c *Config) { c.Appearance.Colors.StatusFg = "red" }, "appearance.colors.status_fg"},
		{"unknown layout", func(c *Config) { c.Layouts = append(c.Layouts, "spiralgrid") }, "layouts.9"},
		{"default layout missing", func(c *Config) { c.TagDefaults.Layout = "dwindle" }, "tag_defaults.layout"},
		{"mfact", func(c *Config) { c.TagDefaults.MFact = 0.99 }, "tag_defaults.mfact"},
		{"nmaster", func(c *Config) { c.TagDefaults.NMaster = 16 }, "tag_defaults.nmaster"},
		{"gaps", func(c *Config) { c.TagDefaults.Gaps.OuterH = 200 }, "tag_defaults"},
		{"tag rule tag", func(c *Config) { c.TagRules = []TagRuleOverride{{Tag: intPtr(10)}} }, "tag_rules.0.tag"},
		{"rule tag", func(c *Config) { c.Rules = []Rule{{Class: "x", Tags: []int{0}}} }, "rules.0.tags"},
		{"rule switchtag", func(c *Config) { c.Rules = []Rule{{Class: "x", SwitchTag: 5}} }, "rules.0.switch_tag"},
		{"rule scratchpad", func(c *Config) { c.Rules = []Rule{{Class: "x", Scratchpad: "nope"}} }, "rules.0.scratchpad"},
		{"scratchpad dup", func(c *Config) { c.Scratchpads = append(c.Scratchpads, c.Scratchpads[0]) }, "scratchpads.3.name"},
		{"empty chord", func(c *Config) { c.Keys = []KeyBinding{{Command: "zoom"}} }, "keys.0.keys"},
		{"click", func(c *Config) { c.Buttons = []ButtonBinding{{Click: "tabbar", Button: 1, Command: "zoom"}} }, "buttons.0.click"},
		{"button", func(c *Config) { c.Buttons = []ButtonBinding{{Click: ClickRootWin, Button: 9, Command: "zoom"}} }, "buttons.0.button"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q (%v)", tt.path, verr.Path, err)
			}
		})
	}
}

func TestTagRuleFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TagRules = append(cfg.TagRules,
		TagRuleOverride{Tag: intPtr(3), NMaster: intPtr(2)},
		TagRuleOverride{Monitor: intPtr(0), Tag: intPtr(3), MFact: floatPtr(0.6)},
	)

	if got := cfg.TagRuleFor(0, 0).Layout; got != "tile" {
		t.Fatalf("monitor 0 tag 1: expected tile, got %q", got)
	}
	if got := cfg.TagRuleFor(1, 0).Layout; got != "bstack" {
		t.Fatalf("monitor 1 tag 1: expected bstack, got %q", got)
	}
	r := cfg.TagRuleFor(0, 2)
	if r.NMaster != 2 || r.MFact != 0.6 {
		t.Fatalf("monitor 0 tag 3: expected nmaster 2 mfact 0.6, got %d %v", r.NMaster, r.MFact)
	}
	r = cfg.TagRuleFor(1, 2)
	if r.NMaster != 2 || r.MFact != 0.5 || r.Layout != "bstack" {
		t.Fatalf("monitor 1 tag 3: unexpected %+v", r)
	}
}

func TestParseColor(t *testing.T) {
	v, err := ParseColor("#ff5370")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v != 0xff5370 {
		t.Fatalf("expected 0xff5370, got %#x", v)
	}
	for _, bad := range []string{"", "ff5370", "#ff537", "#gg0000"} {
		if _, err := ParseColor(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestExplain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "tags: [web, dev, chat]\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "tags.1")
	if err != nil {
		t.Fatalf("explain tags.1: %v", err)
	}
	if val != "dev" {
		t.Fatalf("expected dev, got %v", val)
	}
	if src.Kind != SourceFile || src.Line != 1 {
		t.Fatalf("expected file source on line 1, got %+v", src)
	}

	val, src, err = Explain(res, "tag_defaults.gaps.inner_h")
	if err != nil {
		t.Fatalf("explain gaps: %v", err)
	}
	if val != 5 {
		t.Fatalf("expected 5, got %v", val)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %+v", src)
	}

	if _, _, err := Explain(res, "tag_defaults.nope"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestDefaultConfigPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if path != filepath.Join(dir, "dwn", "config.yaml") {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Behaviour.Snap = 12
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Behaviour.Snap != 12 {
		t.Fatalf("expected snap 12, got %d", res.Config.Behaviour.Snap)
	}
	if len(res.Config.Keys) != len(cfg.Keys) {
		t.Fatalf("expected %d keys, got %d", len(cfg.Keys), len(res.Config.Keys))
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestLoad_ShortTagListTrimsBuiltins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "tags: [web, dev, chat]\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	for i, r := range cfg.Rules {
		for _, tag := range r.Tags {
			if tag > 3 {
				t.Fatalf("rules.%d keeps tag %d", i, tag)
			}
		}
		if len(r.Tags) == 0 && r.SwitchTag != 0 {
			t.Fatalf("rules.%d keeps switch_tag without tags", i)
		}
	}
	views := 0
	for _, k := range cfg.Keys {
		if k.Command != "comboview" {
			continue
		}
		views++
		if k.Args[0] > "3" {
			t.Fatalf("unexpected binding for tag %s", k.Args[0])
		}
	}
	if views != 3 {
		t.Fatalf("expected three comboview bindings, got %d", views)
	}
}

func TestLoad_UserRulesStillValidated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "tags: [a, b]\nrules:\n  - class: Foo\n    tags: [5]\n")

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "rules.0.tags") {
		t.Fatalf("expected rules.0.tags error, got %v", err)
	}
}
