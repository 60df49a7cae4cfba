package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		version    bool
		status     string
		hasStatus  bool
		configPath string
	}{
		{name: "none", args: nil},
		{name: "version", args: []string{"-v"}, version: true},
		{name: "status", args: []string{"-s", "fsignal:togglebar"}, status: "fsignal:togglebar", hasStatus: true},
		{name: "empty status", args: []string{"-s", ""}, hasStatus: true},
		{name: "config", args: []string{"-c", "/tmp/dwn.yaml"}, configPath: "/tmp/dwn.yaml"},
		{name: "unknown flag", args: []string{"-x"}, wantErr: true},
		{name: "stray argument", args: []string{"foo"}, wantErr: true},
		{name: "missing value", args: []string{"-s"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if opts.version != tt.version || opts.configPath != tt.configPath {
				t.Errorf("opts = %+v", opts)
			}
			if (opts.status != nil) != tt.hasStatus {
				t.Fatalf("status set = %v, want %v", opts.status != nil, tt.hasStatus)
			}
			if tt.hasStatus && *opts.status != tt.status {
				t.Errorf("status = %q, want %q", *opts.status, tt.status)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		configured, env string
		want            slog.Level
	}{
		{"info", "", slog.LevelInfo},
		{"debug", "", slog.LevelDebug},
		{"info", "WARN", slog.LevelWarn},
		{"error", "bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := logLevel(tt.configured, tt.env); got != tt.want {
			t.Errorf("logLevel(%q, %q) = %v, want %v", tt.configured, tt.env, got, tt.want)
		}
	}
}

func TestLoadConfig_FallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := loadConfig(filepath.Join(dir, "missing.yaml"))
	if err != nil || cfg == nil {
		t.Fatalf("missing file: cfg=%v err=%v", cfg, err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("log_level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig(bad)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if cfg == nil || cfg.LogLevel != "info" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	data := "keys:\n  - keys: [Mod4-q]\n    command: frobnicate\n"
	if err := os.WriteFile(unknown, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(unknown); err == nil {
		t.Fatal("expected unknown command error")
	}
}

func TestLoadConfig_ShortTagList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tags: [web, dev, chat]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if len(cfg.Tags) != 3 {
		t.Fatalf("expected the user tag list, got %v", cfg.Tags)
	}
}
