// Package proc answers process-ancestry questions from the /proc filesystem.
package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ParentFunc returns the parent pid of pid, or 0 when it cannot be found.
type ParentFunc func(pid int) int

// Table reads process information below Root.
type Table struct {
	Root string
}

// System is the table of the running kernel.
var System = Table{Root: "/proc"}

// ParentPID returns the parent of pid, or 0 on any error.
func (t Table) ParentPID(pid int) int {
	ppid, err := t.parent(pid)
	if err != nil {
		return 0
	}
	return ppid
}

func (t Table) parent(pid int) (int, error) {
	data, err := os.ReadFile(filepath.Join(t.Root, strconv.Itoa(pid), "stat"))
	if err != nil {
		return 0, err
	}
	return parseStat(string(data))
}

// parseStat extracts the ppid field. The command name is wrapped in
// parentheses and may itself contain spaces or parentheses.
func parseStat(stat string) (int, error) {
	end := strings.LastIndexByte(stat, ')')
	if end < 0 {
		return 0, fmt.Errorf("malformed stat line")
	}
	fields := strings.Fields(stat[end+1:])
	if len(fields) < 2 {
		return 0, fmt.Errorf("malformed stat line")
	}
	ppid, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("parse ppid: %w", err)
	}
	return ppid, nil
}

// IsDescendant reports whether ancestor appears on the parent chain of pid.
func IsDescendant(parent ParentFunc, ancestor, pid int) bool {
	for pid != ancestor && pid != 0 {
		pid = parent(pid)
	}
	return pid != 0
}
