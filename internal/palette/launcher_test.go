package palette

import (
	"slices"
	"strings"
	"testing"
)

func TestRofiFormatItem_UsesSingleNullSeparator(t *testing.T) {
	b := newRofi()

	out := b.formatItem(Item{
		Label:    "Header",
		IsHeader: true,
		Icon:     "folder",
		Meta:     "meta",
	})

	if got := strings.Count(out, "\x00"); got != 1 {
		t.Fatalf("expected exactly 1 NUL separator, got %d (%q)", got, out)
	}
	if !strings.HasPrefix(out, "<b>Header</b>\x00nonselectable\x1ftrue") {
		t.Fatalf("expected bold non-selectable header, got %q", out)
	}
	if !strings.Contains(out, "icon\x1ffolder") || !strings.Contains(out, "meta\x1fmeta") {
		t.Fatalf("expected icon/meta attributes, got %q", out)
	}
}

func TestRofiFormatItem_EscapesMarkup(t *testing.T) {
	out := newRofi().formatItem(Item{Label: "[1] a <b> & c"})
	if out != "[1] a &lt;b&gt; &amp; c" {
		t.Fatalf("formatItem = %q", out)
	}
}

func TestRofiBuildArgs(t *testing.T) {
	b := newRofi()

	_, states := b.formatInput([]Item{
		{Label: "h", IsHeader: true},
		{Label: "a"},
		{Label: "b", IsActive: true},
		{Label: "c", IsUrgent: true},
	})
	args := b.buildArgs("dwn", "status <text>", 4, states)

	for _, pair := range [][2]string{
		{"-format", "i"},
		{"-p", "dwn"},
		{"-a", "2"},
		{"-u", "3"},
		{"-selected-row", "2"},
		{"-mesg", "status &lt;text&gt;"},
	} {
		if !containsArgs(args, pair[0], pair[1]) {
			t.Errorf("expected %s %s in args, got %v", pair[0], pair[1], args)
		}
	}
	if !slices.Contains(args, "-no-custom") {
		t.Errorf("expected -no-custom in args, got %v", args)
	}
}

func TestDmenuBuildArgs_UsesStyle(t *testing.T) {
	b := newDmenu(Style{Font: "fixed", NormBg: "#222222", SelBg: "#005577"})
	args := b.buildArgs("dwn", "ignored", 40, rowStates{})

	for _, pair := range [][2]string{
		{"-l", "20"},
		{"-p", "dwn"},
		{"-fn", "fixed"},
		{"-nb", "#222222"},
		{"-sb", "#005577"},
	} {
		if !containsArgs(args, pair[0], pair[1]) {
			t.Errorf("expected %s %s in args, got %v", pair[0], pair[1], args)
		}
	}
	if slices.Contains(args, "-nf") || slices.Contains(args, "-mesg") {
		t.Errorf("unexpected flags in %v", args)
	}
}

func TestParseSelection(t *testing.T) {
	items := []Item{
		{Label: "a", Action: "view 1"},
		{Label: "b", Action: "view 2"},
	}

	got, err := newRofi().parseSelection("1", items)
	if err != nil || got.Action != "view 2" {
		t.Fatalf("rofi index: got %+v, %v", got, err)
	}
	if _, err := newRofi().parseSelection("7", items); err == nil {
		t.Fatal("expected out of range error")
	}
	got, err = newDmenu(Style{}).parseSelection("a", items)
	if err != nil || got.Action != "view 1" {
		t.Fatalf("dmenu label: got %+v, %v", got, err)
	}
}

func TestFormatInput_DisambiguatesDmenuLabels(t *testing.T) {
	items := []Item{
		{Label: "[1] st", Action: "activate 1"},
		{Label: "[1] st", Action: "activate 2"},
	}
	newDmenu(Style{}).formatInput(items)
	if items[0].Label != "[1] st" || items[1].Label != "[1] st (2)" {
		t.Fatalf("labels = %q, %q", items[0].Label, items[1].Label)
	}

	rofiItems := []Item{{Label: "Dup"}, {Label: "Dup"}}
	newRofi().formatInput(rofiItems)
	if rofiItems[1].Label != "Dup" {
		t.Fatalf("expected labels unchanged for rofi, got %q", rofiItems[1].Label)
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	if _, err := NewBackend("wofi", Style{}); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func containsArgs(args []string, a string, b string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == a && args[i+1] == b {
			return true
		}
	}
	return false
}
