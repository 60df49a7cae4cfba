// Package fsignal parses the "fsignal:" commands that external scripts write
// into the root window name.
package fsignal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prefix marks a root window name as a signal rather than status text.
const Prefix = "fsignal:"

// ErrNotSignal is returned for text that should be shown as status instead.
var ErrNotSignal = errors.New("not an fsignal")

// Kind is the argument type tag of a signal.
type Kind int

const (
	None Kind = iota
	Int
	Uint
	Float
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "i"
	case Uint:
		return "ui"
	case Float:
		return "f"
	default:
		return ""
	}
}

// ParseKind maps a type tag to its Kind.
func ParseKind(tag string) (Kind, error) {
	switch tag {
	case "i":
		return Int, nil
	case "ui":
		return Uint, nil
	case "f":
		return Float, nil
	default:
		return None, fmt.Errorf("unknown signal type %q", tag)
	}
}

// Signal is one parsed fsignal.
type Signal struct {
	Name string
	Kind Kind
	I    int
	UI   uint32
	F    float64
}

// Parse reads "fsignal:<name>" or "fsignal:<name> <type> <value>".
func Parse(text string) (Signal, error) {
	rest, ok := strings.CutPrefix(text, Prefix)
	if !ok {
		return Signal{}, ErrNotSignal
	}
	fields := strings.Fields(rest)
	switch len(fields) {
	case 1:
		return Signal{Name: fields[0]}, nil
	case 3:
	default:
		return Signal{}, ErrNotSignal
	}

	sig := Signal{Name: fields[0]}
	kind, err := ParseKind(fields[1])
	if err != nil {
		return Signal{}, ErrNotSignal
	}
	sig.Kind = kind
	value := fields[2]
	switch kind {
	case Int:
		v, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return Signal{}, ErrNotSignal
		}
		sig.I = int(v)
	case Uint:
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return Signal{}, ErrNotSignal
		}
		sig.UI = uint32(v)
	case Float:
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return Signal{}, ErrNotSignal
		}
		sig.F = v
	}
	return sig, nil
}

// Format builds the root window name that delivers sig.
func Format(sig Signal) string {
	switch sig.Kind {
	case Int:
		return fmt.Sprintf("%s%s i %d", Prefix, sig.Name, sig.I)
	case Uint:
		return fmt.Sprintf("%s%s ui %d", Prefix, sig.Name, sig.UI)
	case Float:
		return fmt.Sprintf("%s%s f %s", Prefix, sig.Name, strconv.FormatFloat(sig.F, 'f', -1, 64))
	default:
		return Prefix + sig.Name
	}
}
