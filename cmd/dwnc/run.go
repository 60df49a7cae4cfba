package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/dwn/internal/wm"
)

var runCmd = &cobra.Command{
	Use:   "run <command> [args...]",
	Short: "Run a window manager command",
	Long: `Run a window manager command on the selected monitor, as a key binding would.

Tags are 1-based and comma separated, or "all":
  dwnc run view 3
  dwnc run tag 1,2
  dwnc run setlayout monocle
  dwnc run setmfact +0.05`,
	Args: cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return wm.CommandNames(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runRun,
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the command names accepted by run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range wm.CommandNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(commandsCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	name := args[0]
	if _, ok := wm.Commands[name]; !ok {
		return fmt.Errorf("%w %q (see dwnc commands)", wm.ErrUnknownCommand, name)
	}
	if err := newBackend().Run(name, args[1:]...); err != nil {
		return fmt.Errorf("%s: %w", strings.Join(args, " "), err)
	}
	return nil
}
