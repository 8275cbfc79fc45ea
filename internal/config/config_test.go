package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadDecompose("")
	if err != nil {
		t.Fatalf("LoadDecompose failed: %v", err)
	}

	if cfg != DefaultDecomposeConfig() {
		t.Errorf("embedded config differs from defaults:\n%+v\n%+v", cfg, DefaultDecomposeConfig())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom.yaml")
	content := "display:\n  cell_width: 3\ngameplay:\n  unlock_all: true\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDecompose(p)
	if err != nil {
		t.Fatalf("LoadDecompose failed: %v", err)
	}
	if cfg.Display.CellWidth != 3 || !cfg.Gameplay.UnlockAll {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Storage.DBPath != DefaultDecomposeConfig().Storage.DBPath {
		t.Errorf("missing keys should keep defaults, got db_path %q", cfg.Storage.DBPath)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadDecompose(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	p := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(p, []byte("display: [oops"), 0o644)
	if _, err := LoadDecompose(p); err == nil {
		t.Error("expected error for malformed custom config")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	write := func(dir, theme string) {
		t.Helper()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		data := []byte("display:\n  theme: " + theme + "\n")
		if err := os.WriteFile(filepath.Join(dir, "decompose.yaml"), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write(filepath.Join(work, "configs"), ThemeMono)
	cfg, _ := LoadDecompose("")
	if cfg.Display.Theme != ThemeMono {
		t.Errorf("local config not used: theme %q", cfg.Display.Theme)
	}

	write(filepath.Join(home, ".decompose", "configs"), ThemeClassic)
	cfg, _ = LoadDecompose("")
	if cfg.Display.Theme != ThemeClassic {
		t.Errorf("user config should win over local: theme %q", cfg.Display.Theme)
	}
}

func TestValidate(t *testing.T) {
	cfg := DecomposeConfig{
		Display: DisplayConfig{OnGlyph: "##", OffGlyph: "", CellWidth: 9, Theme: "neon"},
		Gameplay: GameplayConfig{
			AdvanceDelay: -5,
		},
		Server: ServerConfig{IdleTimeoutMinutes: -1, MaxSessions: -2},
		Log:    LogConfig{Level: "chatty"},
	}
	cfg.Validate()

	def := DefaultDecomposeConfig()
	if cfg.Display.OnGlyph != def.Display.OnGlyph || cfg.Display.OffGlyph != def.Display.OffGlyph {
		t.Errorf("glyphs not reset: %q %q", cfg.Display.OnGlyph, cfg.Display.OffGlyph)
	}
	if cfg.Display.CellWidth != def.Display.CellWidth {
		t.Errorf("CellWidth = %d", cfg.Display.CellWidth)
	}
	if cfg.Display.Theme != def.Display.Theme {
		t.Errorf("Theme = %q", cfg.Display.Theme)
	}
	if cfg.Gameplay.AdvanceDelay != def.Gameplay.AdvanceDelay {
		t.Errorf("AdvanceDelay = %d", cfg.Gameplay.AdvanceDelay)
	}
	if cfg.Storage.DBPath == "" || cfg.Server.Address == "" || cfg.Server.HostKeyPath == "" {
		t.Error("empty paths should be defaulted")
	}
	if cfg.Server.IdleTimeoutMinutes != def.Server.IdleTimeoutMinutes || cfg.Server.MaxSessions != 0 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Log.Level != "info" || cfg.Log.ParsedLevel() != log.InfoLevel {
		t.Errorf("log level = %q", cfg.Log.Level)
	}
}

func TestParsedLevel(t *testing.T) {
	if got := (LogConfig{Level: "DEBUG"}).ParsedLevel(); got != log.DebugLevel {
		t.Errorf("ParsedLevel = %v, want debug", got)
	}
}

func TestAssistPresets(t *testing.T) {
	if p, err := ParseAssistPreset(""); err != nil || p != AssistStandard {
		t.Errorf("empty preset = %q, %v", p, err)
	}
	if _, err := ParseAssistPreset("cheat"); err == nil {
		t.Error("expected error for unknown preset")
	}

	cfg := DefaultDecomposeConfig()
	ApplyAssistPreset(&cfg, AssistStrict)
	if cfg.Display.ShowPreview || cfg.Gameplay.AllowUndo {
		t.Error("strict should disable preview and undo")
	}

	ApplyAssistPreset(&cfg, AssistRelaxed)
	if !cfg.Display.ShowPreview || !cfg.Gameplay.AllowUndo || !cfg.Gameplay.UnlockAll {
		t.Error("relaxed should enable every aid")
	}

	before := cfg
	ApplyAssistPreset(&cfg, AssistStandard)
	if cfg != before {
		t.Error("standard should not change the config")
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome changed an absolute path: %q", got)
	}
}
