package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/decompose/internal/config"
	"github.com/vovakirdan/decompose/internal/core"
	"github.com/vovakirdan/decompose/internal/puzzle"
	"github.com/vovakirdan/decompose/internal/registry"
	"github.com/vovakirdan/decompose/internal/storage"
)

// openStore opens the progress database. Interactive commands keep going
// without it, so failures are only logged.
func openStore() *storage.Store {
	store, err := storage.Open(config.ExpandHome(appConfig.Storage.DBPath))
	if err != nil {
		logger.Warn("could not open progress database", "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// loadPack resolves a pack ID and builds its catalog.
func loadPack(id string) (registry.PackInfo, *puzzle.Catalog, error) {
	info, ok := registry.Info(id)
	if !ok {
		return registry.PackInfo{}, nil, fmt.Errorf("unknown pack %q (run 'decompose list' to see packs)", id)
	}
	catalog, err := registry.Load(id)
	if err != nil {
		return info, nil, fmt.Errorf("loading pack %s: %w", id, err)
	}
	return info, catalog, nil
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
