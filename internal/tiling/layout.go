package tiling

import (
	"fmt"
	"sort"

	"github.com/1broseidon/dwn/internal/platform"
)

// Gaps holds the vanity gap sizes of a monitor.
type Gaps struct {
	OuterH int
	OuterV int
	InnerH int
	InnerV int
	// Enabled turns all gaps on or off.
	Enabled bool
	// Smart drops the outer gaps when a single client is tiled.
	Smart bool
}

// Params is everything a layout needs to know about the monitor it arranges.
type Params struct {
	Area        platform.Rect
	MFact       float64
	NMaster     int
	Gaps        Gaps
	BarHeight   int
	ForceVSplit bool
}

// Tile describes one tiled client in list order.
type Tile struct {
	CFact  float64
	Border int
}

// PlaceFunc resizes tile i to r (border excluded) and returns the geometry that
// was actually applied after size-hint resolution.
type PlaceFunc func(i int, r platform.Rect) platform.Rect

// Layout assigns geometry to the tiled, visible clients of a monitor.
type Layout interface {
	Name() string
	Symbol() string
	// Arrange places every tile and returns a symbol override, or "".
	Arrange(p Params, tiles []Tile, place PlaceFunc) string
}

// Floating is the layout without an arrange step.
type Floating struct{}

func (Floating) Name() string                             { return "floating" }
func (Floating) Symbol() string                           { return "><>" }
func (Floating) Arrange(Params, []Tile, PlaceFunc) string { return "" }

// IsFloating reports whether l leaves every client where it is.
func IsFloating(l Layout) bool {
	_, ok := l.(Floating)
	return ok || l == nil
}

var registry = map[string]Layout{
	"tile":                   MasterStack{},
	"monocle":                Monocle{},
	"deck":                   Deck{},
	"spiral":                 Fibonacci{Dwindle: false},
	"dwindle":                Fibonacci{Dwindle: true},
	"bstack":                 BStack{},
	"centeredmaster":         CenteredMaster{},
	"centeredfloatingmaster": CenteredFloatingMaster{},
	"nrowgrid":               NRowGrid{},
	"gaplessgrid":            GaplessGrid{},
	"floating":               Floating{},
}

// Lookup returns the layout registered under name.
func Lookup(name string) (Layout, error) {
	l, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout %q", name)
	}
	return l, nil
}

// Names returns every registered layout name, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DefaultOrder is the built-in layout table order.
var DefaultOrder = []string{
	"tile",
	"spiral",
	"floating",
	"deck",
	"nrowgrid",
	"bstack",
	"centeredmaster",
	"monocle",
	"gaplessgrid",
}
