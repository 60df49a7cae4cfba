package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MenuItem represents an item in the menu hierarchy.
type MenuItem struct {
	Label    string
	Action   string // Command line, empty for parent items
	Icon     string
	Meta     string
	IsHeader bool
	IsActive bool
	IsUrgent bool
	Submenu  []MenuItem
}

// IsParent returns true if this item has a submenu.
func (m MenuItem) IsParent() bool {
	return len(m.Submenu) > 0
}

// Menu handles hierarchical menu navigation using a palette backend.
type Menu struct {
	backend Backend
	root    []MenuItem
	prompt  string
	message string
}

// NewMenu creates a new hierarchical menu with the given backend and root items.
func NewMenu(backend Backend, items []MenuItem) *Menu {
	return &Menu{
		backend: backend,
		root:    items,
		prompt:  "dwn",
	}
}

// SetMessage sets a context line, shown by backends with a message bar.
func (m *Menu) SetMessage(msg string) {
	m.message = msg
}

// Show displays the menu and handles navigation through submenus. It
// returns the action of the selected leaf item, or ErrCancelled.
func (m *Menu) Show() (string, error) {
	return m.showLevel(m.root, nil)
}

const (
	backAction    = "__back__"
	submenuPrefix = "__submenu__:"
)

func (m *Menu) showLevel(items []MenuItem, breadcrumb []string) (string, error) {
	if len(items) == 0 {
		return "", fmt.Errorf("menu: no items to show")
	}

	for {
		paletteItems := make([]Item, 0, len(items)+1)
		if len(breadcrumb) > 0 {
			paletteItems = append(paletteItems, Item{Label: "← Back", Action: backAction, Icon: "go-previous"})
		}
		for i, item := range items {
			label, icon, action := item.Label, item.Icon, item.Action
			if item.IsParent() {
				label += " →"
				if icon == "" {
					icon = "folder"
				}
				action = submenuPrefix + strconv.Itoa(i)
			}
			paletteItems = append(paletteItems, Item{
				Label:    label,
				Action:   action,
				Icon:     icon,
				Meta:     item.Meta,
				IsHeader: item.IsHeader,
				IsActive: item.IsActive,
				IsUrgent: item.IsUrgent,
			})
		}

		prompt := m.prompt
		if len(breadcrumb) > 0 {
			prompt = breadcrumb[len(breadcrumb)-1]
		}

		selected, err := m.backend.Show(prompt, paletteItems, m.message)
		if err != nil {
			return "", err
		}

		// dmenu cannot make headers non-selectable.
		if selected.IsHeader || strings.TrimSpace(selected.Action) == "" {
			continue
		}
		if selected.Action == backAction {
			return "", ErrCancelled
		}

		if rest, ok := strings.CutPrefix(selected.Action, submenuPrefix); ok {
			idx, err := strconv.Atoi(rest)
			if err != nil || idx < 0 || idx >= len(items) || !items[idx].IsParent() {
				continue
			}
			action, err := m.showLevel(items[idx].Submenu, append(breadcrumb, items[idx].Label))
			if errors.Is(err, ErrCancelled) {
				continue
			}
			return action, err
		}
		return selected.Action, nil
	}
}
