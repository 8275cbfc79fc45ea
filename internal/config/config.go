// Package config provides YAML-based configuration loading and assist
// presets for Decompose.
package config

import (
	"strings"

	"github.com/charmbracelet/log"
)

// DecomposeConfig contains all configuration for the game and its frontends.
type DecomposeConfig struct {
	Display  DisplayConfig  `yaml:"display"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// DisplayConfig defines how the board is drawn.
type DisplayConfig struct {
	OnGlyph     string `yaml:"on_glyph"`
	OffGlyph    string `yaml:"off_glyph"`
	CellWidth   int    `yaml:"cell_width"` // Screen columns per tile
	ShowPreview bool   `yaml:"show_preview"`
	Theme       string `yaml:"theme"` // "classic" or "mono"
}

// GameplayConfig defines rules that sit around the puzzle itself.
type GameplayConfig struct {
	UnlockAll    bool   `yaml:"unlock_all"`
	AllowUndo    bool   `yaml:"allow_undo"`
	AutoAdvance  bool   `yaml:"auto_advance"`
	AdvanceDelay int    `yaml:"advance_delay"` // Ticks before auto advance
	PacksDir     string `yaml:"packs_dir"`     // Extra YAML packs, scanned at startup
}

// StorageConfig defines where progress is persisted.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines the SSH server.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
	MaxSessions        int    `yaml:"max_sessions"`
}

// LogConfig defines diagnostics output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ParsedLevel returns the configured log level, falling back to info.
func (c LogConfig) ParsedLevel() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Known theme names.
const (
	ThemeClassic = "classic"
	ThemeMono    = "mono"
)

// Validate replaces nonsense values with defaults.
func (c *DecomposeConfig) Validate() {
	def := DefaultDecomposeConfig()

	if len([]rune(c.Display.OnGlyph)) != 1 {
		c.Display.OnGlyph = def.Display.OnGlyph
	}
	if len([]rune(c.Display.OffGlyph)) != 1 {
		c.Display.OffGlyph = def.Display.OffGlyph
	}
	if c.Display.CellWidth < 1 || c.Display.CellWidth > 4 {
		c.Display.CellWidth = def.Display.CellWidth
	}
	if c.Display.Theme != ThemeClassic && c.Display.Theme != ThemeMono {
		c.Display.Theme = def.Display.Theme
	}

	if c.Gameplay.AdvanceDelay < 0 {
		c.Gameplay.AdvanceDelay = def.Gameplay.AdvanceDelay
	}

	if c.Storage.DBPath == "" {
		c.Storage.DBPath = def.Storage.DBPath
	}

	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.HostKeyPath == "" {
		c.Server.HostKeyPath = def.Server.HostKeyPath
	}
	if c.Server.IdleTimeoutMinutes <= 0 {
		c.Server.IdleTimeoutMinutes = def.Server.IdleTimeoutMinutes
	}
	if c.Server.MaxSessions < 0 {
		c.Server.MaxSessions = 0
	}

	if _, err := log.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		c.Log.Level = def.Log.Level
	}
}
