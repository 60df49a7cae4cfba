package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/dwn/internal/fsignal"
	"github.com/1broseidon/dwn/internal/wm"
)

var signalCmd = &cobra.Command{
	Use:   "signal <name> [type] [value]",
	Short: "Send a signal through the root window name",
	Long: `Send a signal the way a status bar script would, by setting the root window
name to "fsignal:<name> [i|ui|f <value>]". This works without the IPC socket.

When the type is omitted it is inferred from the value: integers are sent as i,
anything else as f.
  dwnc signal togglebar
  dwnc signal viewex 2
  dwnc signal view ui 4
  dwnc signal setmfact f 0.6`,
	Args: cobra.RangeArgs(1, 3),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return wm.SignalNames(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := signalText(args)
		if err != nil {
			return err
		}
		return setRootName(text)
	},
}

func init() {
	rootCmd.AddCommand(signalCmd)
}

// signalText validates args and renders the root window name for them.
func signalText(args []string) (string, error) {
	name := args[0]
	if !slices.Contains(wm.SignalNames(), name) {
		return "", fmt.Errorf("unknown signal %q (valid: %s)", name, strings.Join(wm.SignalNames(), ", "))
	}
	fields := []string{name}
	switch len(args) {
	case 2:
		kind := "f"
		if _, err := strconv.ParseInt(args[1], 0, 32); err == nil {
			kind = "i"
		}
		fields = append(fields, kind, args[1])
	case 3:
		fields = append(fields, args[1], args[2])
	}
	sig, err := fsignal.Parse(fsignal.Prefix + strings.Join(fields, " "))
	if err != nil {
		return "", fmt.Errorf("invalid signal %q: type must be i, ui or f followed by a number", strings.Join(args, " "))
	}
	return fsignal.Format(sig), nil
}
