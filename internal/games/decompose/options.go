package decompose

import (
	"github.com/vovakirdan/decompose/internal/config"
)

// Options are the player-facing settings a game runs with.
type Options struct {
	OnGlyph      rune
	OffGlyph     rune
	CellWidth    int // Screen columns per tile
	ShowPreview  bool
	AllowUndo    bool
	UnlockAll    bool
	AutoAdvance  bool
	AdvanceDelay int // Ticks after a clear before auto advance
}

// DefaultOptions returns the options of the default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultDecomposeConfig())
}

// OptionsFromConfig extracts game options from a loaded configuration.
func OptionsFromConfig(cfg config.DecomposeConfig) Options {
	return Options{
		OnGlyph:      firstRune(cfg.Display.OnGlyph, '#'),
		OffGlyph:     firstRune(cfg.Display.OffGlyph, '.'),
		CellWidth:    max(cfg.Display.CellWidth, 1),
		ShowPreview:  cfg.Display.ShowPreview,
		AllowUndo:    cfg.Gameplay.AllowUndo,
		UnlockAll:    cfg.Gameplay.UnlockAll,
		AutoAdvance:  cfg.Gameplay.AutoAdvance,
		AdvanceDelay: cfg.Gameplay.AdvanceDelay,
	}
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
