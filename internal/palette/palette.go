// Package palette shows dwn's command menu through a dmenu-style launcher.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without selecting an item.
var ErrCancelled = errors.New("palette cancelled")

// Item is a single selectable entry in a palette menu.
type Item struct {
	Label    string // Display text
	Action   string // Command line returned on selection
	Icon     string // Icon name for rofi -show-icons
	Meta     string // Hidden search keywords (rofi meta field)
	IsHeader bool   // Non-selectable section header
	IsActive bool   // Highlighted as current
	IsUrgent bool   // Highlighted as urgent
}

// Backend shows a palette to the user and returns the selected item.
type Backend interface {
	// Show displays items under prompt. message is an optional context
	// line; backends without a message bar ignore it.
	Show(prompt string, items []Item, message string) (Item, error)
}

// Style carries the bar colors and font so the launcher matches the bar.
// Empty fields leave the launcher defaults alone.
type Style struct {
	Font           string
	NormFg, NormBg string
	SelFg, SelBg   string
}

// NewBackend creates a backend by name: auto, rofi or dmenu. auto prefers
// rofi when both are installed.
func NewBackend(name string, style Style) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		for _, candidate := range []string{"rofi", "dmenu"} {
			if _, err := exec.LookPath(candidate); err == nil {
				return NewBackend(candidate, style)
			}
		}
		return nil, fmt.Errorf("no palette backend found in PATH (looked for: rofi, dmenu)")
	case "rofi":
		if _, err := exec.LookPath("rofi"); err != nil {
			return nil, fmt.Errorf("palette backend %q not found in PATH", "rofi")
		}
		return newRofi(), nil
	case "dmenu":
		if _, err := exec.LookPath("dmenu"); err != nil {
			return nil, fmt.Errorf("palette backend %q not found in PATH", "dmenu")
		}
		return newDmenu(style), nil
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, rofi, dmenu)", name)
	}
}
