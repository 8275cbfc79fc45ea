package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/decompose/internal/games/decompose"
	"github.com/vovakirdan/decompose/internal/platform/tui"
	"github.com/vovakirdan/decompose/internal/puzzle"
	"github.com/vovakirdan/decompose/internal/registry"
	"github.com/vovakirdan/decompose/internal/storage"
)

var (
	flagResume    bool
	flagSessionID string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a level of the selected pack. The level is a 1-based number
or a level ID. Without a level the level picker opens instead.

Controls:
  Arrows/WASD/hjkl  - Move cursor
  Space/Enter       - Apply pattern (mouse click works too)
  Tab/Shift+Tab/1-9 - Choose pattern
  U                 - Undo
  R                 - Restart level
  N                 - Next level (after a clear)
  P                 - Pause
  Esc/Ctrl+C        - Quit (an unfinished board is saved)

Examples:
  decompose play 1
  decompose play 07
  decompose play --resume
  decompose play --session 3f2a9c1e-...
  decompose play 2 --pack my-pack --catalog ./my-pack.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the latest saved attempt")
	playCmd.Flags().StringVar(&flagSessionID, "session", "", "Continue a specific saved attempt (see 'decompose sessions')")
}

func runPlay(_ *cobra.Command, args []string) {
	if len(args) == 0 && !flagResume && flagSessionID == "" {
		runMenu(nil, nil)
		return
	}

	store := openStore()

	var saved *storage.SavedSession
	pack, scope := flagPack, ""
	if flagSessionID != "" {
		if store == nil {
			fail("saved attempts need the progress database")
		}
		ss, err := store.SessionByID(flagSessionID)
		if err != nil {
			store.Close()
			fail("%v", err)
		}
		saved = ss
		scope = ss.Pack

		// Attempts saved over SSH are keyed user@pack
		pack = scope
		if !registry.Exists(pack) {
			_, pack = tui.SplitScopeKey(scope)
		}
	}

	info, catalog, err := loadPack(pack)
	if err != nil {
		closeStore(store)
		fail("%v", err)
	}
	if scope == "" {
		scope = info.ID
	}

	game := decompose.New(info.ID, info.Title, catalog, packProgress(store, scope, catalog.LevelCount()), decompose.OptionsFromConfig(appConfig))

	switch {
	case saved != nil:
		err = tui.ResumeSession(game, saved)
	case flagResume:
		var ok bool
		ok, err = tui.ResumeSaved(game, store, info.ID)
		if err == nil && !ok {
			logger.Warn("no saved attempt, starting fresh", "pack", info.ID)
		}
	}
	if err == nil && len(args) == 1 && saved == nil && !flagResume {
		var index int
		if index, err = levelIndex(catalog, args[0]); err == nil {
			err = game.SetLevel(index)
		}
	}
	if err != nil {
		closeStore(store)
		fail("%v", err)
	}

	runErr := tui.Run(game, store, scope, runtimeConfig(), tui.ThemeByName(appConfig.Display.Theme))

	// Close store before potential exit
	closeStore(store)

	if runErr != nil {
		fail("running game: %v", runErr)
	}
}

// levelIndex accepts a 1-based level number or a level ID.
func levelIndex(c *puzzle.Catalog, arg string) (int, error) {
	if i := c.IndexOf(arg); i >= 0 {
		return i, nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > c.LevelCount() {
		return 0, puzzle.ErrLevelNotFound
	}
	return n - 1, nil
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
