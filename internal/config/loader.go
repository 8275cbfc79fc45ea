package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDecompose loads the game configuration.
// Search order: customPath -> ~/.decompose/configs/decompose.yaml -> ./configs/decompose.yaml -> embedded default
// Keys missing from a file keep their default values.
func LoadDecompose(customPath string) (DecomposeConfig, error) {
	cfg := DefaultDecomposeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Validate()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("decompose.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "decompose.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultDecomposeYAML, &cfg); err != nil {
		return DefaultDecomposeConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Validate()
	return cfg, nil
}

// tryLoad reads an optional config file. Missing or unparsable files are
// skipped so the next location in the search order is tried.
func tryLoad(path string) (DecomposeConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DecomposeConfig{}, false
	}
	cfg := DefaultDecomposeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DecomposeConfig{}, false
	}
	cfg.Validate()
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".decompose", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
