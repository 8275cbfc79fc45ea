package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/decompose/internal/config"
	"github.com/vovakirdan/decompose/internal/platform/tui"
	"github.com/vovakirdan/decompose/internal/progress"
	"github.com/vovakirdan/decompose/internal/storage"
)

var flagResetTimes bool

var timesCmd = &cobra.Command{
	Use:   "times",
	Short: "Show best times for a pack",
	Long: `Display the best time, clear count and fewest moves for every level of
the selected pack. --reset forgets the pack's progress, times and saved attempts.

Examples:
  decompose times
  decompose times --pack my-pack --catalog ./my-pack.yaml
  decompose times --reset`,
	Args: cobra.NoArgs,
	Run:  runTimes,
}

func init() {
	timesCmd.Flags().BoolVar(&flagResetTimes, "reset", false, "Clear progress for the pack")
}

func runTimes(_ *cobra.Command, _ []string) {
	info, catalog, err := loadPack(flagPack)
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(config.ExpandHome(appConfig.Storage.DBPath))
	if err != nil {
		fail("opening progress database: %v", err)
	}
	defer store.Close()

	if flagResetTimes {
		if err := store.ClearProgress(info.ID); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Progress for %s cleared.\n", info.Title)
		return
	}

	p, err := store.LoadProgress(info.ID, catalog.LevelCount())
	if err != nil {
		store.Close()
		fail("retrieving progress: %v", err)
	}
	stats, err := store.PackStats(info.ID)
	if err != nil {
		store.Close()
		fail("retrieving clear history: %v", err)
	}
	best, err := store.BestTimes(info.ID)
	if err != nil {
		store.Close()
		fail("retrieving best times: %v", err)
	}
	setOn := make(map[int]string, len(best))
	for _, bt := range best {
		setOn[bt.Level] = bt.UpdatedAt.Format("2006-01-02")
	}

	fmt.Printf("Best Times - %s\n", info.Title)
	fmt.Println()

	if p.Cleared() == 0 {
		fmt.Println("No levels cleared yet.")
		fmt.Println()
		fmt.Println("Play 'decompose play 1' to set the first time!")
		return
	}

	fmt.Printf("  %-3s  %-16s  %-5s  %-8s  %-8s  %-6s  %-5s  %s\n", "#", "Level", "Size", "Best", "Avg", "Clears", "Moves", "Set")
	fmt.Printf("  %-3s  %-16s  %-5s  %-8s  %-8s  %-6s  %-5s  %s\n", "-", "-----", "----", "----", "---", "------", "-----", "---")

	for _, row := range tui.BuildTimeRows(catalog, p, stats) {
		name := row.Name
		if name == "" {
			name = row.ID
		}
		if row.Locked {
			fmt.Printf("  %-3d  %-16s  %-5s  %s\n", row.Level+1, name, row.Size, "locked")
			continue
		}

		moves := "-"
		if row.Fewest > 0 {
			moves = fmt.Sprintf("%d", row.Fewest)
		}
		date := setOn[row.Level]
		if date == "" {
			date = "-"
		}

		fmt.Printf("  %-3d  %-16s  %-5s  %-8s  %-8s  %-6d  %-5s  %s\n",
			row.Level+1, name, row.Size,
			progress.FormatTime(row.Best), progress.FormatTime(row.AvgMS),
			row.Clears, moves, date)
	}

	fmt.Println()
	fmt.Printf("Cleared %d/%d, total %s\n", p.Cleared(), catalog.LevelCount(), progress.FormatTime(p.Total()))
}
