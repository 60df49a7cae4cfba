package palette

import (
	"fmt"
	"strconv"

	"github.com/1broseidon/dwn/internal/wm"
)

// quickCommands are the argument-free commands offered at the top level.
var quickCommands = []struct{ label, action, icon string }{
	{"Toggle bar", "togglebar", "view-restore"},
	{"Toggle floating", "togglefloating", "window-new"},
	{"Toggle sticky", "togglesticky", "window-pin"},
	{"Toggle fullscreen", "togglefullscr", "view-fullscreen"},
	{"Zoom", "zoom", "go-top"},
	{"Toggle gaps", "togglegaps", "view-grid"},
	{"Reorganize tags", "reorganizetags", "view-sort-ascending"},
	{"Close window", "killclient", "window-close"},
	{"Restart dwn", "quit 1", "view-refresh"},
	{"Quit dwn", "quit", "application-exit"},
}

// BuildMenu lays out the dwn menu for snap: windows, tags, layouts, then the
// quick commands. Every leaf action is a command line for the IPC run
// request.
func BuildMenu(snap *wm.Snapshot) []MenuItem {
	var sel *wm.MonitorInfo
	for i := range snap.Monitors {
		if snap.Monitors[i].Selected {
			sel = &snap.Monitors[i]
		}
	}

	var items []MenuItem
	if windows := windowItems(snap); len(windows) > 0 {
		items = append(items, MenuItem{Label: "Windows", Icon: "preferences-system-windows", Submenu: windows})
	}

	tags := make([]MenuItem, 0, len(snap.Tags))
	for i, name := range snap.Tags {
		n := strconv.Itoa(i + 1)
		tags = append(tags, MenuItem{
			Label:    fmt.Sprintf("View %s", name),
			Action:   "view " + n,
			Meta:     "tag " + n,
			IsActive: sel != nil && sel.Tags == n,
		})
	}
	if len(tags) > 0 {
		items = append(items, MenuItem{Label: "Tags", Icon: "tag", Submenu: tags})
	}

	layouts := make([]MenuItem, 0, len(snap.Layouts))
	for _, name := range snap.Layouts {
		layouts = append(layouts, MenuItem{
			Label:    name,
			Action:   "setlayout " + name,
			IsActive: sel != nil && sel.Layout == name,
		})
	}
	if len(layouts) > 0 {
		items = append(items, MenuItem{Label: "Layouts", Icon: "view-grid", Submenu: layouts})
	}

	for _, c := range quickCommands {
		items = append(items, MenuItem{Label: c.label, Action: c.action, Icon: c.icon})
	}
	return items
}

func windowItems(snap *wm.Snapshot) []MenuItem {
	var out []MenuItem
	multi := len(snap.Monitors) > 1
	for _, m := range snap.Monitors {
		if multi && len(m.Clients) > 0 {
			out = append(out, MenuItem{Label: fmt.Sprintf("Monitor %d", m.Num), IsHeader: true})
		}
		for _, c := range m.Clients {
			label := fmt.Sprintf("[%s] %s", c.Tags, c.Title)
			if c.Title == "" {
				label = fmt.Sprintf("[%s] %s", c.Tags, c.Class)
			}
			out = append(out, MenuItem{
				Label:    label,
				Action:   fmt.Sprintf("activate %d", c.Window),
				Icon:     c.Instance,
				Meta:     c.Class,
				IsActive: c.Focused && m.Selected,
				IsUrgent: c.Urgent,
			})
		}
	}
	return out
}
