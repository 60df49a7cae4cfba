package wm

import (
	"fmt"
	"sort"

	"github.com/1broseidon/dwn/internal/fsignal"
)

// signals lists the commands reachable through an fsignal written to the
// root window name. Their argument comes straight from the signal.
var signals = map[string]bool{
	"togglebar":      true,
	"focusmon":       true,
	"tagmon":         true,
	"quit":           true,
	"viewex":         true,
	"toggleviewex":   true,
	"tagex":          true,
	"toggletagex":    true,
	"tagwithex":      true,
	"setlayoutex":    true,
	"setmfact":       true,
	"setcfact":       true,
	"incnmaster":     true,
	"focusstack":     true,
	"killclient":     true,
	"zoom":           true,
	"togglefloating": true,
	"view":           true,
	"toggleview":     true,
	"tag":            true,
	"toggletag":      true,
}

// SignalNames returns the names accepted as fsignals, sorted.
func SignalNames() []string {
	out := make([]string, 0, len(signals))
	for name := range signals {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// signal runs sig. Names outside the signal table are reported as
// fsignal.ErrNotSignal so the text is shown as status instead.
func (s *State) signal(sig fsignal.Signal) error {
	if !signals[sig.Name] {
		return fmt.Errorf("%w: unknown signal %q", fsignal.ErrNotSignal, sig.Name)
	}
	cmd := Commands[sig.Name]
	s.logger.Debug("fsignal", "name", sig.Name, "kind", sig.Kind.String())
	cmd.Run(s, Arg{I: sig.I, UI: sig.UI, F: sig.F})
	return nil
}
