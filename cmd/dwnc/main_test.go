package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/1broseidon/dwn/internal/ipc"
	"github.com/1broseidon/dwn/internal/palette"
	"github.com/1broseidon/dwn/internal/wm"
)

type fakeBackend struct {
	ran  [][]string
	snap wm.Snapshot
	err  error
}

func (f *fakeBackend) Run(name string, args ...string) error {
	if f.err != nil {
		return f.err
	}
	f.ran = append(f.ran, append([]string{name}, args...))
	return nil
}

func (f *fakeBackend) State() (*wm.Snapshot, error) { return &f.snap, f.err }

func (f *fakeBackend) Monitors() (*ipc.MonitorsData, error) {
	return &ipc.MonitorsData{Monitors: f.snap.Monitors}, f.err
}

func (f *fakeBackend) Ping() (*ipc.PingData, error) {
	return &ipc.PingData{Version: "dwn-test"}, f.err
}

func useFake(t *testing.T, f *fakeBackend) *bytes.Buffer {
	t.Helper()
	oldBackend, oldRoot := newBackend, setRootName
	t.Cleanup(func() {
		newBackend, setRootName = oldBackend, oldRoot
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		rootCmd.PersistentFlags().Set("format", "")
	})
	newBackend = func() backend { return f }
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	return &out
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range []string{"run", "commands", "signal", "state", "monitors", "ping", "menu", "mcp"} {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRun(t *testing.T) {
	f := &fakeBackend{}
	useFake(t, f)

	rootCmd.SetArgs([]string{"run", "view", "3"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("run view: %v", err)
	}
	if want := [][]string{{"view", "3"}}; !reflect.DeepEqual(f.ran, want) {
		t.Fatalf("ran %v, want %v", f.ran, want)
	}

	rootCmd.SetArgs([]string{"run", "frobnicate"})
	if err := rootCmd.Execute(); !errors.Is(err, wm.ErrUnknownCommand) {
		t.Fatalf("unknown command err = %v", err)
	}
	if len(f.ran) != 1 {
		t.Errorf("unknown command reached the backend")
	}
}

func TestState_JSON(t *testing.T) {
	f := &fakeBackend{snap: wm.Snapshot{Status: "dwn", Monitors: []wm.MonitorInfo{{Num: 0, Tags: "1"}}}}
	out := useFake(t, f)

	rootCmd.SetArgs([]string{"state", "--format", "json"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("state: %v", err)
	}
	var snap wm.Snapshot
	if err := json.Unmarshal(out.Bytes(), &snap); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if snap.Status != "dwn" || len(snap.Monitors) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestFormat_Rejected(t *testing.T) {
	useFake(t, &fakeBackend{})
	rootCmd.SetArgs([]string{"ping", "--format", "xml"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestSignalText(t *testing.T) {
	tests := []struct {
		args    []string
		want    string
		wantErr bool
	}{
		{args: []string{"togglebar"}, want: "fsignal:togglebar"},
		{args: []string{"viewex", "2"}, want: "fsignal:viewex i 2"},
		{args: []string{"setmfact", "0.25"}, want: "fsignal:setmfact f 0.25"},
		{args: []string{"view", "ui", "4"}, want: "fsignal:view ui 4"},
		{args: []string{"focusstack", "i", "-1"}, want: "fsignal:focusstack i -1"},
		{args: []string{"spawn"}, wantErr: true},
		{args: []string{"view", "x", "4"}, wantErr: true},
		{args: []string{"view", "ui", "four"}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := signalText(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("signalText(%v) err = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("signalText(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestSignal_SetsRootName(t *testing.T) {
	useFake(t, &fakeBackend{})
	var name string
	setRootName = func(s string) error { name = s; return nil }

	rootCmd.SetArgs([]string{"signal", "tag", "ui", "8"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("signal: %v", err)
	}
	if name != "fsignal:tag ui 8" {
		t.Fatalf("root name = %q", name)
	}
}

type pickFirst struct{ picks []string }

func (p *pickFirst) Show(prompt string, items []palette.Item, message string) (palette.Item, error) {
	if len(p.picks) == 0 {
		return palette.Item{}, palette.ErrCancelled
	}
	pick := p.picks[0]
	p.picks = p.picks[1:]
	for _, it := range items {
		if it.Label == pick {
			return it, nil
		}
	}
	return palette.Item{}, errors.New("missing " + pick)
}

func TestMenu_RunsSelection(t *testing.T) {
	f := &fakeBackend{snap: wm.Snapshot{
		Tags:     []string{"1", "2", "3"},
		Layouts:  []string{"tile", "monocle"},
		Monitors: []wm.MonitorInfo{{Num: 0, Tags: "1", Layout: "tile", Selected: true}},
	}}
	useFake(t, f)
	oldPalette := newPalette
	t.Cleanup(func() { newPalette = oldPalette })
	newPalette = func(name string, style palette.Style) (palette.Backend, error) {
		return &pickFirst{picks: []string{"Tags →", "View 3"}}, nil
	}

	rootCmd.SetArgs([]string{"menu"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("menu: %v", err)
	}
	if want := [][]string{{"view", "3"}}; !reflect.DeepEqual(f.ran, want) {
		t.Fatalf("ran %v, want %v", f.ran, want)
	}
}

func TestConfigCommands(t *testing.T) {
	out := useFake(t, &fakeBackend{})
	t.Cleanup(func() { configCmd.PersistentFlags().Set("path", "") })
	path := filepath.Join(t.TempDir(), "dwn", "config.yaml")

	rootCmd.SetArgs([]string{"config", "init", "--path", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	rootCmd.SetArgs([]string{"config", "init", "--path", path})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}

	out.Reset()
	rootCmd.SetArgs([]string{"config", "validate", "--path", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if got := out.String(); got != "config: ok\n" {
		t.Fatalf("validate output = %q", got)
	}

	out.Reset()
	rootCmd.SetArgs([]string{"config", "explain", "--path", path, "--format", "json", "log_level"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config explain: %v", err)
	}
	var res explainResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("explain output is not JSON: %v\n%s", err, out.String())
	}
	if res.Value != "info" || res.Path != "log_level" {
		t.Errorf("explain = %+v", res)
	}
}
