package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/decompose/internal/progress"
	"github.com/vovakirdan/decompose/internal/puzzle"
	"github.com/vovakirdan/decompose/internal/registry"
	"github.com/vovakirdan/decompose/internal/storage"
)

var flagListAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List level packs and their levels",
	Long: `Shows every registered level pack. Levels of the selected pack are listed
with their size, patterns, lock state and best time; --all lists every pack's levels.

Examples:
  decompose list
  decompose list --all
  decompose list --pack my-pack --catalog ./my-pack.yaml`,
	Run: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListAll, "all", false, "List levels of every pack")
}

func runList(_ *cobra.Command, _ []string) {
	packs := registry.List()

	if len(packs) == 0 {
		fmt.Println("No level packs available.")
		return
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	fmt.Println("Level packs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %-6s  %-8s  %s\n", maxIDLen, "ID", "Levels", "Cleared", "Title")
	fmt.Printf("  %-*s  %-6s  %-8s  %s\n", maxIDLen, "--", "------", "-------", "-----")

	for _, p := range packs {
		catalog, err := registry.Load(p.ID)
		if err != nil {
			fmt.Printf("  %-*s  %-6s  %-8s  %s (%v)\n", maxIDLen, p.ID, "-", "-", p.Title, err)
			continue
		}
		pr := packProgress(store, p.ID, catalog.LevelCount())
		cleared := fmt.Sprintf("%d", pr.Cleared())
		fmt.Printf("  %-*s  %-6d  %-8s  %s\n", maxIDLen, p.ID, catalog.LevelCount(), cleared, p.Title)
	}

	for _, p := range packs {
		if !flagListAll && p.ID != flagPack {
			continue
		}
		catalog, err := registry.Load(p.ID)
		if err != nil {
			continue
		}
		fmt.Println()
		printLevels(p, catalog, packProgress(store, p.ID, catalog.LevelCount()))
	}

	fmt.Println()
	fmt.Println("Run 'decompose play <level>' to play a level.")
}

func packProgress(store *storage.Store, pack string, levelCount int) *progress.Progress {
	p := progress.New(levelCount)
	if store != nil {
		if loaded, err := store.LoadProgress(pack, levelCount); err == nil {
			p = loaded
		}
	}
	return p
}

func printLevels(info registry.PackInfo, c *puzzle.Catalog, p *progress.Progress) {
	fmt.Printf("%s (%s)\n", info.Title, info.ID)
	fmt.Println()
	fmt.Printf("  %-3s  %-16s  %-5s  %-8s  %s\n", "#", "Level", "Size", "Best", "Patterns")
	fmt.Printf("  %-3s  %-16s  %-5s  %-8s  %s\n", "-", "-----", "----", "----", "--------")

	for i, lvl := range c.Levels() {
		name := lvl.Name()
		if name == "" {
			name = lvl.ID()
		}

		best := progress.FormatTime(p.Best(i))
		if !appConfig.Gameplay.UnlockAll && !p.Unlocked(i) {
			best = "locked"
		}

		names := make([]string, 0, len(lvl.Patterns()))
		for _, pat := range lvl.Patterns() {
			names = append(names, pat.Name())
		}

		size := fmt.Sprintf("%dx%d", lvl.Width(), lvl.Height())
		fmt.Printf("  %-3d  %-16s  %-5s  %-8s  %s\n", i+1, name, size, best, strings.Join(names, ", "))
	}
}
