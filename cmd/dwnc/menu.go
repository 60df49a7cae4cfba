package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/dwn/internal/config"
	"github.com/1broseidon/dwn/internal/palette"
)

var newPalette = palette.NewBackend

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a window, tag, layout or command from rofi or dmenu",
	Long: `Show the dwn menu in rofi or dmenu and run the selection.

Bind it to a key in the dwn config:
  - keys: [Mod4-x]
    command: spawn
    args: [dwnc, menu]`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().String("backend", "auto", "Launcher: auto, rofi or dmenu")
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("backend")
	launcher, err := newPalette(name, menuStyle())
	if err != nil {
		return err
	}

	b := newBackend()
	snap, err := b.State()
	if err != nil {
		return err
	}

	menu := palette.NewMenu(launcher, palette.BuildMenu(snap))
	menu.SetMessage(snap.Status)
	action, err := menu.Show()
	if errors.Is(err, palette.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	fields := strings.Fields(action)
	if len(fields) == 0 {
		return nil
	}
	if err := b.Run(fields[0], fields[1:]...); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

// menuStyle matches dmenu to the bar. A broken config falls back to the
// launcher defaults.
func menuStyle() palette.Style {
	res, err := config.Load()
	if err != nil {
		return palette.Style{}
	}
	a := res.Config.Appearance
	return palette.Style{
		Font:   a.Font,
		NormFg: a.Colors.NormFg,
		NormBg: a.Colors.NormBg,
		SelFg:  a.Colors.SelFg,
		SelBg:  a.Colors.SelBg,
	}
}
