package hotkeys

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/dwn/internal/config"
	"github.com/1broseidon/dwn/internal/platform"
)

// State is the keychord machine state.
type State int

const (
	Idle State = iota
	AwaitingChainKey
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingChainKey:
		return "awaiting-chain-key"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type key struct {
	mods  uint16
	codes []platform.Keycode
}

func (k key) matches(code platform.Keycode, mods uint16) bool {
	if k.mods != mods {
		return false
	}
	for _, c := range k.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Chord is a resolved key binding.
type Chord struct {
	Index   int
	Command string
	Args    []string
	keys    []key
}

// Machine matches key presses against multi-key chords. A partial match
// grabs only the keys that can continue it, plus Escape; completion or any
// mismatch returns to Idle and regrabs the whole table.
type Machine struct {
	kb       platform.Keyboard
	logger   *slog.Logger
	bindings []config.KeyBinding
	chords   []Chord
	escape   []platform.Keycode

	state      State
	depth      int
	candidates []int
}

// NewMachine resolves bindings against the keyboard. Bindings whose keys do
// not resolve are skipped and logged to logger.
func NewMachine(kb platform.Keyboard, bindings []config.KeyBinding, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Machine{kb: kb, logger: logger, bindings: bindings}
	m.resolve()
	return m
}

func (m *Machine) resolve() {
	m.chords = m.chords[:0]
	for i, b := range m.bindings {
		c := Chord{Index: i, Command: b.Command, Args: b.Args}
		ok := true
		for _, spec := range b.Keys {
			mods, codes, err := m.kb.ParseKey(spec)
			if err != nil || len(codes) == 0 {
				m.logger.Warn("skipping key binding", "keys", []string(b.Keys), "command", b.Command, "error", err)
				ok = false
				break
			}
			c.keys = append(c.keys, key{mods: mods, codes: codes})
		}
		if ok && len(c.keys) > 0 {
			m.chords = append(m.chords, c)
		}
	}
	if _, codes, err := m.kb.ParseKey("Escape"); err == nil {
		m.escape = codes
	}
	m.reset()
}

// Remap re-resolves keycodes after a keyboard mapping change and regrabs.
func (m *Machine) Remap() {
	m.resolve()
	m.Grab()
}

// State returns the current machine state.
func (m *Machine) State() State { return m.state }

// Chords returns the resolved chords.
func (m *Machine) Chords() []Chord { return m.chords }

func (m *Machine) reset() {
	m.state = Idle
	m.depth = 0
	m.candidates = m.candidates[:0]
	for i := range m.chords {
		m.candidates = append(m.candidates, i)
	}
}

// Grab replaces the root key grabs with the keys valid at the current depth.
func (m *Machine) Grab() {
	m.kb.UngrabKeys()
	ignore := IgnoreMasks(m.kb.NumLockMask(), m.kb.ScrollLockMask())
	for _, idx := range m.candidates {
		k := m.chords[idx].keys[m.depth]
		for _, code := range k.codes {
			for _, extra := range ignore {
				m.kb.GrabKey(k.mods|extra, code)
			}
		}
	}
	if m.depth > 0 {
		for _, code := range m.escape {
			m.kb.GrabKey(platform.ModAny, code)
		}
	}
}

// Press feeds one key press. It returns the chords completed by it, which is
// empty while a chord is still in progress or after a mismatch.
func (m *Machine) Press(code platform.Keycode, state uint16) []Chord {
	mods := CleanMask(state, m.kb.NumLockMask(), m.kb.ScrollLockMask())

	var done []Chord
	var next []int
	for _, idx := range m.candidates {
		c := m.chords[idx]
		if !c.keys[m.depth].matches(code, mods) {
			continue
		}
		if len(c.keys) == m.depth+1 {
			done = append(done, c)
		} else {
			next = append(next, idx)
		}
	}

	if len(done) > 0 || len(next) == 0 {
		wasIdle := m.state == Idle
		m.reset()
		if !wasIdle {
			m.Grab()
		}
		return done
	}

	m.state = AwaitingChainKey
	m.depth++
	m.candidates = append(m.candidates[:0], next...)
	m.Grab()
	return nil
}
