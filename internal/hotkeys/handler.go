package hotkeys

import (
	"fmt"
	"strings"

	"github.com/1broseidon/dwn/internal/config"
	"github.com/1broseidon/dwn/internal/platform"
)

// realMods are the modifiers a binding can match on.
const realMods = platform.ModShift | platform.ModControl | platform.Mod1 | platform.Mod2 |
	platform.Mod3 | platform.Mod4 | platform.Mod5

// CleanMask drops the lock modifiers from an event state.
func CleanMask(state, numLock, scrollLock uint16) uint16 {
	return state &^ (numLock | scrollLock | platform.ModLock) & realMods
}

// IgnoreMasks returns every combination of the lock modifiers. Each passive
// grab is repeated once per entry so bindings work with CapsLock or NumLock on.
func IgnoreMasks(numLock, scrollLock uint16) []uint16 {
	base := []uint16{platform.ModLock}
	if numLock != 0 && numLock != platform.ModLock {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != platform.ModLock && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	out := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		out = append(out, mask)
	}
	return out
}

var modifierNames = map[string]uint16{
	"shift":   platform.ModShift,
	"lock":    platform.ModLock,
	"control": platform.ModControl,
	"ctrl":    platform.ModControl,
	"mod1":    platform.Mod1,
	"alt":     platform.Mod1,
	"mod2":    platform.Mod2,
	"mod3":    platform.Mod3,
	"mod4":    platform.Mod4,
	"super":   platform.Mod4,
	"mod5":    platform.Mod5,
}

// ParseMods parses a modifier list such as "Mod1-Shift". The empty string
// means no modifiers.
func ParseMods(s string) (uint16, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	var mods uint16
	for _, part := range strings.Split(s, "-") {
		m, ok := modifierNames[strings.ToLower(strings.TrimSpace(part))]
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", part)
		}
		mods |= m
	}
	return mods, nil
}

// ButtonBinding is a parsed mouse binding.
type ButtonBinding struct {
	Click   string
	Mods    uint16
	Button  byte
	Command string
	Args    []string
}

// ParseButtons converts the configured button table.
func ParseButtons(bindings []config.ButtonBinding) ([]ButtonBinding, error) {
	out := make([]ButtonBinding, 0, len(bindings))
	for i, b := range bindings {
		mods, err := ParseMods(b.Mods)
		if err != nil {
			return nil, fmt.Errorf("buttons.%d: %w", i, err)
		}
		out = append(out, ButtonBinding{
			Click:   b.Click,
			Mods:    mods,
			Button:  byte(b.Button),
			Command: b.Command,
			Args:    b.Args,
		})
	}
	return out, nil
}

// ClientGrabs returns the passive grabs a focused client window needs,
// expanded over the lock modifiers.
func ClientGrabs(buttons []ButtonBinding, numLock, scrollLock uint16) []platform.ButtonGrab {
	var grabs []platform.ButtonGrab
	for _, b := range buttons {
		if b.Click != config.ClickClientWin {
			continue
		}
		for _, ignore := range IgnoreMasks(numLock, scrollLock) {
			grabs = append(grabs, platform.ButtonGrab{Mods: b.Mods | ignore, Button: b.Button})
		}
	}
	return grabs
}
