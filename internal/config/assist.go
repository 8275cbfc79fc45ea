package config

import "fmt"

// AssistPreset is a named bundle of player aids.
type AssistPreset string

const (
	AssistRelaxed  AssistPreset = "relaxed"
	AssistStandard AssistPreset = "standard"
	AssistStrict   AssistPreset = "strict"
)

// ParseAssistPreset validates a preset name. Empty means standard.
func ParseAssistPreset(s string) (AssistPreset, error) {
	switch AssistPreset(s) {
	case "":
		return AssistStandard, nil
	case AssistRelaxed, AssistStandard, AssistStrict:
		return AssistPreset(s), nil
	default:
		return "", fmt.Errorf("unknown assist preset %q (want relaxed, standard or strict)", s)
	}
}

// ApplyAssistPreset modifies the config based on an assist preset.
// Standard leaves the loaded config untouched.
func ApplyAssistPreset(cfg *DecomposeConfig, preset AssistPreset) {
	switch preset {
	case AssistRelaxed:
		cfg.Display.ShowPreview = true
		cfg.Gameplay.AllowUndo = true
		cfg.Gameplay.UnlockAll = true
	case AssistStrict:
		cfg.Display.ShowPreview = false
		cfg.Gameplay.AllowUndo = false
	}
}
