package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/dwn/internal/wm"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"yaml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve_NonTerminalIsJSON(t *testing.T) {
	var buf bytes.Buffer
	if got := FormatAuto.Resolve(&buf); got != FormatJSON {
		t.Fatalf("Resolve = %q, want json", got)
	}
	if got := FormatYAML.Resolve(&buf); got != FormatYAML {
		t.Fatalf("explicit format changed to %q", got)
	}
}

func TestFprint_JSON(t *testing.T) {
	snap := wm.Snapshot{Status: "a<b", Tags: []string{"1", "2"}}
	var buf bytes.Buffer
	if err := Fprint(&buf, FormatAuto, snap); err != nil {
		t.Fatal(err)
	}
	if bytes.Count(buf.Bytes(), []byte("\n")) != 1 {
		t.Errorf("json output should be a single line, got:\n%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("a<b")) {
		t.Errorf("html should not be escaped: %s", buf.String())
	}
	var decoded wm.Snapshot
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Status != "a<b" || len(decoded.Tags) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestFprint_YAML(t *testing.T) {
	snap := wm.Snapshot{
		Status:   "dwn",
		Monitors: []wm.MonitorInfo{{Num: 0, Tags: "1", Layout: "tile"}},
	}
	var buf bytes.Buffer
	if err := Fprint(&buf, FormatYAML, snap); err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if m["status"] != "dwn" {
		t.Errorf("status = %v", m["status"])
	}
	mons, ok := m["monitors"].([]any)
	if !ok || len(mons) != 1 {
		t.Fatalf("monitors = %#v", m["monitors"])
	}
	if _, ok := mons[0].(map[string]any)["clients"]; ok {
		t.Error("empty clients should be omitted")
	}
}
