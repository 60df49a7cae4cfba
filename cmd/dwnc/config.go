package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1broseidon/dwn/internal/config"
	"github.com/1broseidon/dwn/internal/wm"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Validate, print and explain the dwn configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file and its includes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfigFlag(cmd); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "config: ok")
		return nil
	},
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective config, or the built-in defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if defaults, _ := cmd.Flags().GetBool("defaults"); defaults {
			return printResult(cmd, config.DefaultConfig())
		}
		res, err := loadConfigFlag(cmd)
		if err != nil {
			return err
		}
		return printResult(cmd, res.Config)
	},
}

// explainResult is the output of config explain.
type explainResult struct {
	Path   string `json:"path" yaml:"path"`
	Value  any    `json:"value" yaml:"value"`
	Source string `json:"source" yaml:"source"`
}

var configExplainCmd = &cobra.Command{
	Use:   "explain <yaml.path>",
	Short: "Show a config value and the file that set it",
	Long: `Show the effective value at a dotted YAML path and where it came from.
  dwnc config explain appearance.colors.sel_bg
  dwnc config explain rules.0.class`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadConfigFlag(cmd)
		if err != nil {
			return err
		}
		value, src, err := config.Explain(res, args[0])
		if err != nil {
			return err
		}
		where := string(src.Kind)
		if src.Kind == config.SourceFile {
			where = fmt.Sprintf("%s:%d:%d", src.File, src.Line, src.Column)
		}
		return printResult(cmd, explainResult{Path: args[0], Value: value, Source: where})
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in defaults to the config path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configCmd.PersistentFlags().String("path", "", "Config file path (default: $XDG_CONFIG_HOME/dwn/config.yaml)")
	configPrintCmd.Flags().Bool("defaults", false, "Print built-in defaults (no files)")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(configValidateCmd, configPrintCmd, configExplainCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func configPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("path"); path != "" {
		return path, nil
	}
	return config.DefaultConfigPath()
}

// loadConfigFlag loads the --path config and checks its bindings against the
// command table.
func loadConfigFlag(cmd *cobra.Command) (*config.LoadResult, error) {
	path, err := configPath(cmd)
	if err != nil {
		return nil, err
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	if err := wm.ValidateCommands(res.Config); err != nil {
		return nil, err
	}
	return res, nil
}
