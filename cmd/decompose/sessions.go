package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/decompose/internal/config"
	"github.com/vovakirdan/decompose/internal/progress"
	"github.com/vovakirdan/decompose/internal/storage"
)

var flagSessionLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List saved attempts",
	Long: `Lists the unfinished boards saved for the selected pack, newest first.
Continue one with 'decompose play --session <id>'.

Examples:
  decompose sessions
  decompose sessions --limit 5`,
	Args: cobra.NoArgs,
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionLimit, "limit", 10, "Maximum number of attempts to show")
}

func runSessions(_ *cobra.Command, _ []string) {
	info, catalog, err := loadPack(flagPack)
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(config.ExpandHome(appConfig.Storage.DBPath))
	if err != nil {
		fail("opening progress database: %v", err)
	}
	defer store.Close()

	sessions, err := store.ListSessions(info.ID, flagSessionLimit)
	if err != nil {
		store.Close()
		fail("retrieving sessions: %v", err)
	}

	fmt.Printf("Saved attempts - %s\n", info.Title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No saved attempts.")
		return
	}

	fmt.Printf("  %-36s  %-12s  %-5s  %-5s  %-8s  %s\n", "ID", "Level", "Lit", "Moves", "Time", "Saved")
	fmt.Printf("  %-36s  %-12s  %-5s  %-5s  %-8s  %s\n", "--", "-----", "---", "-----", "----", "-----")

	for _, ss := range sessions {
		level := fmt.Sprintf("%d", ss.Level+1)
		if lvl, err := catalog.Level(ss.Level); err == nil {
			level = fmt.Sprintf("%d (%s)", ss.Level+1, lvl.ID())
		}
		fmt.Printf("  %-36s  %-12s  %-5d  %-5d  %-8s  %s\n",
			ss.ID, level, lit(ss.Board.States), ss.Moves,
			progress.FormatTime(ss.ElapsedMS), ss.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func lit(states []bool) int {
	n := 0
	for _, on := range states {
		if on {
			n++
		}
	}
	return n
}
