// decompose is a tile-toggling puzzle game for the terminal.
//
// Usage:
//
//	decompose list              - List level packs and their levels
//	decompose play [level]      - Play a level of a pack
//	decompose menu              - Level picker loop
//	decompose times             - Show best times for a pack
//	decompose sessions          - List saved attempts
//	decompose verify            - Check that every level can be solved
//	decompose serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path>         - Set database path (default: ~/.decompose/decompose.db)
//	--config <path>     - Use a custom config YAML
//	--pack <id>         - Select the level pack (default: classic)
//	--catalog <path>    - Load an extra pack file
//	--log-level <lvl>   - debug, info, warn or error
//	--assist <preset>   - relaxed, standard or strict
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/decompose/internal/config"
	"github.com/vovakirdan/decompose/internal/levels"
	"github.com/vovakirdan/decompose/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagConfig   string
	flagPack     string
	flagCatalog  string
	flagLogLevel string
	flagAssist   string
)

var (
	appConfig config.DecomposeConfig
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "decompose",
	Short: "Decompose - clear the board by stamping patterns",
	Long: `Decompose is a puzzle game played in the terminal. Every level starts
with some tiles lit. Stamping a pattern flips the tiles it covers; clear the
whole board to finish the level.

Available commands:
  list      - Show level packs and levels
  play      - Play a level directly
  menu      - Interactive level picker
  times     - View best times
  sessions  - View saved attempts
  verify    - Check a pack's levels
  serve     - Start SSH server for remote play

Examples:
  decompose list
  decompose play 3
  decompose play --resume
  decompose menu --assist relaxed
  decompose verify --catalog ./my-pack.yaml
  decompose serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPack, "pack", registry.DefaultPack, "Level pack ID")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to an extra level pack YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagAssist, "assist", "", "Assist preset: relaxed, standard, strict")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(timesCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads config, builds the logger and registers extra packs. Runs
// before every subcommand.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadDecompose(flagConfig)
	if err != nil {
		return err
	}

	preset, err := config.ParseAssistPreset(flagAssist)
	if err != nil {
		return err
	}
	config.ApplyAssistPreset(&cfg, preset)

	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	appConfig = cfg

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "decompose",
		Level:           cfg.Log.ParsedLevel(),
	})

	dir := config.ExpandHome(cfg.Gameplay.PacksDir)
	ids, skipped, err := levels.NewLoader(dir).RegisterAll()
	if err != nil {
		logger.Warn("could not scan packs directory", "dir", dir, "error", err)
	}
	for file, skipErr := range skipped {
		logger.Warn("skipped pack", "file", file, "error", skipErr)
	}
	if len(ids) > 0 {
		logger.Debug("registered packs", "dir", dir, "packs", ids)
	}

	if flagCatalog != "" {
		id, err := levels.RegisterFile(flagCatalog)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		logger.Debug("registered catalog", "file", flagCatalog, "pack", id)

		// A custom catalog is what the player wants unless --pack says otherwise
		if !cmd.Flags().Changed("pack") {
			flagPack = id
		}
	}

	return nil
}
