package config

import (
	_ "embed"
)

//go:embed defaults/decompose.yaml
var defaultDecomposeYAML []byte

// DefaultDecomposeConfig returns the default configuration.
func DefaultDecomposeConfig() DecomposeConfig {
	return DecomposeConfig{
		Display: DisplayConfig{
			OnGlyph:     "█",
			OffGlyph:    "·",
			CellWidth:   2,
			ShowPreview: true,
			Theme:       ThemeClassic,
		},
		Gameplay: GameplayConfig{
			UnlockAll:    false,
			AllowUndo:    true,
			AutoAdvance:  false,
			AdvanceDelay: 90,
			PacksDir:     "~/.decompose/packs",
		},
		Storage: StorageConfig{
			DBPath: "~/.decompose/decompose.db",
		},
		Server: ServerConfig{
			Address:            ":2222",
			HostKeyPath:        ".ssh/decompose_ed25519",
			IdleTimeoutMinutes: 30,
			MaxSessions:        0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
