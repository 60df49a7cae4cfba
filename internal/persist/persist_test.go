package persist

import "testing"

func TestMainWordRoundTrip(t *testing.T) {
	in := TagState{
		NMaster:    3,
		MFact:      0.55,
		ShowBar:    true,
		TopBar:     false,
		EnableGaps: true,
		SmartGaps:  true,
		TPadding:   false,
		VacTag:     true,
		BorderPX:   4,
		Layout:     7,
	}
	var out TagState
	if !DecodeMain(EncodeMain(in), &out) {
		t.Fatalf("expected encoded word to decode as saved state")
	}
	if out != in {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestMainWordBitLayout(t *testing.T) {
	v := EncodeMain(TagState{NMaster: 1, MFact: 0.5, ShowBar: true, TopBar: true, BorderPX: 2})
	want := uint32(1) | 50<<4 | 1<<11 | 1<<12 | 2<<17
	if v != want {
		t.Fatalf("expected %#x, got %#x", want, v)
	}
	if v>>27&1 != 0 {
		t.Fatalf("saved-state bit must be clear")
	}
}

func TestMissingPropertyIsNotSavedState(t *testing.T) {
	s := TagState{NMaster: 2}
	if DecodeMain(Missing, &s) {
		t.Fatalf("expected missing property to report no saved state")
	}
	if s.NMaster != 2 {
		t.Fatalf("expected state untouched, got %+v", s)
	}
}

func TestPaddingAndGapsRoundTrip(t *testing.T) {
	in := TagState{VP: 10, SP: 127, OuterH: 1, OuterV: 2, InnerH: 5, InnerV: 100}
	var out TagState
	DecodePadding(EncodePadding(in), &out)
	DecodeGaps(EncodeGaps(in), &out)
	if out != in {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
	if got := EncodeGaps(TagState{OuterV: 1}); got != 1<<7 {
		t.Fatalf("expected outer vertical gap at bit 7, got %#x", got)
	}
}

func TestCFact(t *testing.T) {
	tests := []struct {
		v    uint32
		want float64
		ok   bool
	}{
		{100, 1.0, true},
		{25, 0.25, true},
		{400, 4.0, true},
		{24, 0, false},
		{401, 0, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		got, ok := DecodeCFact(tt.v)
		if ok != tt.ok || got != tt.want {
			t.Errorf("DecodeCFact(%d) = %v, %v; want %v, %v", tt.v, got, ok, tt.want, tt.ok)
		}
	}
	if EncodeCFact(1.5) != 150 {
		t.Fatalf("expected 150, got %d", EncodeCFact(1.5))
	}
}

func TestPropNames(t *testing.T) {
	if got := MonitorTagsProp(1); got != "_DWN_MONITOR_TAGS_1" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := PertagProp(3, 0, "GAPS"); got != "_DWN_MONITOR_PERTAG_3_0_GAPS" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := PertagAllProp(1, "2"); got != "_DWN_MONITOR_PERTAG_ALL_1_2" {
		t.Fatalf("unexpected name %q", got)
	}
}
