package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/dwn/internal/ipc"
	"github.com/1broseidon/dwn/internal/mcp"
	"github.com/1broseidon/dwn/internal/output"
	"github.com/1broseidon/dwn/internal/wm"
	"github.com/1broseidon/dwn/internal/x11"
)

// backend is the slice of *ipc.Client the commands use.
type backend interface {
	mcp.Backend
	Ping() (*ipc.PingData, error)
}

var (
	newBackend  = func() backend { return ipc.NewClient() }
	setRootName = x11.SetRootNameStandalone

	outputFormat = output.FormatAuto
)

var rootCmd = &cobra.Command{
	Use:          "dwnc",
	Short:        "Control a running dwn window manager",
	Long:         "dwnc runs window manager commands, sends status signals and reports state over the dwn IPC socket.",
	Version:      wm.Name + "-" + wm.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		outputFormat = f
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml or json (default: yaml on a terminal, json otherwise)")
}

func printResult(cmd *cobra.Command, v any) error {
	return output.Fprint(cmd.OutOrStdout(), outputFormat, v)
}
