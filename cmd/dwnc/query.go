package main

import (
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print monitors, tags, layouts and windows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := newBackend().State()
		if err != nil {
			return err
		}
		return printResult(cmd, snap)
	},
}

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "Print monitor geometry, tags and layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := newBackend().Monitors()
		if err != nil {
			return err
		}
		return printResult(cmd, data)
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that dwn is answering",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := newBackend().Ping()
		if err != nil {
			return err
		}
		return printResult(cmd, data)
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(monitorsCmd)
	rootCmd.AddCommand(pingCmd)
}
