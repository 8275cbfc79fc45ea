package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/decompose/internal/games/decompose"
	"github.com/vovakirdan/decompose/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the level picker",
	Long: `Start Decompose in interactive menu mode.

Pick a level, play it, and return to the picker when you leave the board.
Unfinished boards are saved and can be continued from the picker.

Controls:
  Up/Down/j/k  - Choose level
  Left/Right   - Switch pack
  Enter/Space  - Play level
  C            - Continue saved attempt
  Tab          - Best times
  Q/Esc        - Quit

Examples:
  decompose menu
  decompose menu --fps 30
  decompose menu --pack my-pack --catalog ./my-pack.yaml`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	if _, _, err := loadPack(flagPack); err != nil {
		fail("%v", err)
	}

	store := openStore()

	err := tui.RunApp(tui.AppConfig{
		Store:   store,
		Theme:   tui.ThemeByName(appConfig.Display.Theme),
		Options: decompose.OptionsFromConfig(appConfig),
		Runtime: runtimeConfig(),
		Pack:    flagPack,
	})

	closeStore(store)

	if err != nil {
		fail("%v", err)
	}
}
