package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/dwn/internal/platform"
)

// ParseKey resolves a binding such as "Mod4-Shift-Return".
func (d *Display) ParseKey(spec string) (uint16, []platform.Keycode, error) {
	mods, codes, err := keybind.ParseString(d.XUtil, spec)
	if err != nil {
		return 0, nil, fmt.Errorf("parse key %q: %w", spec, err)
	}
	out := make([]platform.Keycode, len(codes))
	for i, c := range codes {
		out[i] = platform.Keycode(c)
	}
	return mods, out, nil
}

// GrabKey grabs exactly one modifier combination on the root window. The
// caller expands lock-key variants.
func (d *Display) GrabKey(mods uint16, code platform.Keycode) {
	xproto.GrabKey(d.conn(), true, d.root, mods, xproto.Keycode(code),
		xproto.GrabModeAsync, xproto.GrabModeAsync)
}

func (d *Display) UngrabKeys() {
	xproto.UngrabKey(d.conn(), xproto.GrabAny, d.root, xproto.ModMaskAny)
}

func (d *Display) NumLockMask() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.numLock
}

func (d *Display) ScrollLockMask() uint16 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrollLock
}

// updateLockMasks finds the modifiers Num_Lock and Scroll_Lock are bound to.
func (d *Display) updateLockMasks() {
	num := d.modifierFor("Num_Lock")
	scroll := d.modifierFor("Scroll_Lock")
	d.mu.Lock()
	d.numLock, d.scrollLock = num, scroll
	d.mu.Unlock()
}

func (d *Display) modifierFor(keysym string) uint16 {
	codes := keybind.StrToKeycodes(d.XUtil, keysym)
	if len(codes) == 0 {
		return 0
	}
	mm, err := xproto.GetModifierMapping(d.conn()).Reply()
	if err != nil {
		return 0
	}
	per := int(mm.KeycodesPerModifier)
	for mod := 0; mod < 8; mod++ {
		for j := 0; j < per; j++ {
			kc := mm.Keycodes[mod*per+j]
			for _, c := range codes {
				if kc == c {
					return 1 << uint(mod)
				}
			}
		}
	}
	return 0
}
