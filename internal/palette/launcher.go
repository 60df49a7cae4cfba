package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

// launcher drives rofi in dmenu mode or dmenu itself. rofi reports the
// selected row index; dmenu echoes the label, so dmenu labels are made
// unique before they are shown.
type launcher struct {
	command string
	rofi    bool
	style   Style
}

func newRofi() *launcher {
	return &launcher{command: "rofi", rofi: true}
}

func newDmenu(style Style) *launcher {
	return &launcher{command: "dmenu", style: style}
}

type rowStates struct {
	active      []int
	urgent      []int
	selectedRow int
}

func (b *launcher) Show(prompt string, items []Item, message string) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	displayItems := make([]Item, len(items))
	copy(displayItems, items)

	input, states := b.formatInput(displayItems)
	cmd := exec.Command(b.command, b.buildArgs(prompt, message, len(displayItems), states)...)
	cmd.Stdin = strings.NewReader(input)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Item{}, fmt.Errorf("%s failed: %s", b.command, msg)
		}
		return Item{}, fmt.Errorf("%s failed: %w", b.command, err)
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return b.parseSelection(selection, displayItems)
}

func (b *launcher) buildArgs(prompt, message string, rows int, states rowStates) []string {
	if !b.rofi {
		args := []string{"-i", "-l", strconv.Itoa(min(rows, 20))}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		for _, opt := range [][2]string{
			{"-fn", b.style.Font},
			{"-nb", b.style.NormBg},
			{"-nf", b.style.NormFg},
			{"-sb", b.style.SelBg},
			{"-sf", b.style.SelFg},
		} {
			if opt[1] != "" {
				args = append(args, opt[0], opt[1])
			}
		}
		return args
	}

	args := []string{"-dmenu", "-i"}
	if prompt != "" {
		args = append(args, "-p", prompt)
	}
	// Output only the index; labels may contain markup.
	args = append(args, "-format", "i", "-no-custom", "-markup-rows", "-show-icons")
	if len(states.active) > 0 {
		args = append(args, "-a", formatIndices(states.active))
	}
	if len(states.urgent) > 0 {
		args = append(args, "-u", formatIndices(states.urgent))
	}
	args = append(args, "-selected-row", strconv.Itoa(states.selectedRow))
	if message != "" {
		args = append(args, "-mesg", html.EscapeString(message))
	}
	return args
}

func (b *launcher) formatInput(items []Item) (string, rowStates) {
	if !b.rofi {
		seen := make(map[string]int)
		for i := range items {
			key := sanitizeLabel(items[i].Label)
			if key == "" || items[i].IsHeader {
				continue
			}
			if count := seen[key]; count > 0 {
				items[i].Label = fmt.Sprintf("%s (%d)", key, count+1)
			}
			seen[key]++
		}
	}

	lines := make([]string, 0, len(items))
	states := rowStates{selectedRow: -1}
	firstSelectable := -1
	for i, item := range items {
		lines = append(lines, b.formatItem(item))
		if item.IsHeader {
			continue
		}
		if firstSelectable == -1 {
			firstSelectable = i
		}
		if item.IsActive {
			states.active = append(states.active, i)
			if states.selectedRow == -1 {
				states.selectedRow = i
			}
		}
		if item.IsUrgent {
			states.urgent = append(states.urgent, i)
		}
	}
	if states.selectedRow == -1 {
		states.selectedRow = max(firstSelectable, 0)
	}
	return strings.Join(lines, "\n"), states
}

func (b *launcher) formatItem(item Item) string {
	display := sanitizeLabel(item.Label)
	if !b.rofi {
		return display
	}
	display = html.EscapeString(display)
	if item.IsHeader {
		display = "<b>" + display + "</b>"
	}

	// rofi row properties: one NUL, then key/value pairs split by \x1f.
	var attrs []string
	if item.IsHeader {
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Icon != "" {
		attrs = append(attrs, "icon", sanitizeRofiField(item.Icon))
	}
	if item.Meta != "" {
		attrs = append(attrs, "meta", sanitizeRofiField(item.Meta))
	}
	if len(attrs) == 0 {
		return display
	}
	return display + "\x00" + strings.Join(attrs, "\x1f")
}

func (b *launcher) parseSelection(selection string, items []Item) (Item, error) {
	if b.rofi {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}
	for _, item := range items {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeRofiField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

func formatIndices(indices []int) string {
	parts := make([]string, 0, len(indices))
	for _, i := range indices {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, ",")
}

// isCancelExit matches the exit codes of Escape (1) and Ctrl+C (130).
func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	default:
		return false
	}
}
