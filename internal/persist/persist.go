// Package persist encodes the per-monitor and per-client state that survives
// an in-place restart. Values are stored as 32-bit CARDINAL properties on the
// root window and on client windows; the bit layout is fixed.
package persist

import (
	"fmt"
	"math"
)

// Missing is what a property reads as when it was never written. Bit 27 of
// the first pertag word is always written as 0, so Missing marks "no saved
// state".
const Missing uint32 = math.MaxUint32

const savedBit = 27

// Client property names.
const (
	ClientTags       = "_DWN_CLIENT_TAGS"
	ClientFloating   = "_DWN_CLIENT_FLOATING"
	ClientSticky     = "_DWN_CLIENT_STICKY"
	ClientFullscreen = "_DWN_CLIENT_FULLSCREEN"
	ClientCFact      = "_DWN_CLIENT_CFACT"
	ClientScratchKey = "_DWN_CLIENT_SCRATCHKEY"
)

// TagState is one pertag slot as it is persisted.
type TagState struct {
	NMaster    int
	MFact      float64
	ShowBar    bool
	TopBar     bool
	EnableGaps bool
	SmartGaps  bool
	TPadding   bool
	VacTag     bool
	BorderPX   int
	Layout     int

	VP int
	SP int

	OuterH int
	OuterV int
	InnerH int
	InnerV int
}

// MonitorTagsProp names the root property holding a monitor's tag set.
func MonitorTagsProp(mon int) string {
	return fmt.Sprintf("_DWN_MONITOR_TAGS_%d", mon)
}

// PertagProp names one of the three root properties of tag i on mon.
// suffix is "1", "2" or "GAPS".
func PertagProp(tag, mon int, suffix string) string {
	return fmt.Sprintf("_DWN_MONITOR_PERTAG_%d_%d_%s", tag, mon, suffix)
}

// PertagAllProp names the properties of the all-tags view on mon.
func PertagAllProp(mon int, suffix string) string {
	return fmt.Sprintf("_DWN_MONITOR_PERTAG_ALL_%d_%s", mon, suffix)
}

func bit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// EncodeMain packs the first pertag word.
func EncodeMain(s TagState) uint32 {
	mfact := uint32(math.Round(s.MFact*100)) & 0x7F
	return uint32(s.NMaster)&0xF |
		mfact<<4 |
		bit(s.ShowBar)<<11 |
		bit(s.TopBar)<<12 |
		bit(s.EnableGaps)<<13 |
		bit(s.SmartGaps)<<14 |
		bit(s.TPadding)<<15 |
		bit(s.VacTag)<<16 |
		(uint32(s.BorderPX)&0x3F)<<17 |
		(uint32(s.Layout)&0xF)<<23
}

// DecodeMain unpacks the first pertag word into s. It reports false and
// leaves s alone when v carries no saved state.
func DecodeMain(v uint32, s *TagState) bool {
	if v>>savedBit&1 == 1 {
		return false
	}
	s.NMaster = int(v & 0xF)
	s.MFact = float64(v>>4&0x7F) / 100
	s.ShowBar = v>>11&1 == 1
	s.TopBar = v>>12&1 == 1
	s.EnableGaps = v>>13&1 == 1
	s.SmartGaps = v>>14&1 == 1
	s.TPadding = v>>15&1 == 1
	s.VacTag = v>>16&1 == 1
	s.BorderPX = int(v >> 17 & 0x3F)
	s.Layout = int(v >> 23 & 0xF)
	return true
}

// EncodePadding packs the bar padding word.
func EncodePadding(s TagState) uint32 {
	return uint32(s.VP)&0x7F | (uint32(s.SP)&0x7F)<<7
}

// DecodePadding unpacks the bar padding word into s.
func DecodePadding(v uint32, s *TagState) {
	s.VP = int(v & 0x7F)
	s.SP = int(v >> 7 & 0x7F)
}

// EncodeGaps packs the four gap sizes, 7 bits each.
func EncodeGaps(s TagState) uint32 {
	return uint32(s.OuterH)&0x7F |
		(uint32(s.OuterV)&0x7F)<<7 |
		(uint32(s.InnerH)&0x7F)<<14 |
		(uint32(s.InnerV)&0x7F)<<21
}

// DecodeGaps unpacks the gap word into s.
func DecodeGaps(v uint32, s *TagState) {
	s.OuterH = int(v & 0x7F)
	s.OuterV = int(v >> 7 & 0x7F)
	s.InnerH = int(v >> 14 & 0x7F)
	s.InnerV = int(v >> 21 & 0x7F)
}

// EncodeCFact stores a client weight as a percentage.
func EncodeCFact(cfact float64) uint32 {
	return uint32(math.Round(cfact * 100))
}

// DecodeCFact returns the stored weight when it lies in [0.25, 4.0].
func DecodeCFact(v uint32) (float64, bool) {
	if v < 25 || v > 400 {
		return 0, false
	}
	return float64(v) / 100, true
}
