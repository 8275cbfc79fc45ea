// Package formats provides pluggable level pack file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/decompose/internal/puzzle"
	"gopkg.in/yaml.v3"
)

// YAMLPack represents the YAML structure for a level pack file.
type YAMLPack struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Patterns    []YAMLPattern `yaml:"patterns"`
	Levels      []YAMLLevel   `yaml:"levels"`
}

// YAMLPattern is a named click-pattern. Shape rows use '#' for flipped
// cells and '.' for untouched ones.
type YAMLPattern struct {
	Name   string     `yaml:"name"`
	Origin YAMLOrigin `yaml:"origin"`
	Shape  []string   `yaml:"shape"`
}

// YAMLOrigin is the pattern cell that lands on the clicked tile.
type YAMLOrigin struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLLevel is one level. Patterns lists allowed pattern names in selection
// order; each recipe step is [x, y, patternIndex].
type YAMLLevel struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Size     YAMLSize `yaml:"size"`
	Patterns []string `yaml:"patterns"`
	Recipe   [][]int  `yaml:"recipe"`
}

// YAMLSize represents board dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Pack is the metadata of a parsed pack.
type Pack struct {
	ID          string
	Name        string
	Description string
	Levels      int
}

// ParseYAML parses a YAML pack file and builds its catalog.
// Problems in the level data are reported as *puzzle.ConfigError.
func ParseYAML(data []byte) (*puzzle.Catalog, Pack, error) {
	var yp YAMLPack
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return nil, Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return Build(yp)
}

// Build turns a decoded pack into a catalog.
func Build(yp YAMLPack) (*puzzle.Catalog, Pack, error) {
	pack := Pack{
		ID:          yp.ID,
		Name:        yp.Name,
		Description: yp.Description,
		Levels:      len(yp.Levels),
	}

	patterns := make([]*puzzle.Pattern, 0, len(yp.Patterns))
	byName := make(map[string]*puzzle.Pattern, len(yp.Patterns))
	for _, ypat := range yp.Patterns {
		p, err := puzzle.NewPattern(ypat.Name, ypat.Shape, ypat.Origin.X, ypat.Origin.Y)
		if err != nil {
			return nil, pack, &puzzle.ConfigError{Code: puzzle.CodeBadPattern, Message: err.Error()}
		}
		patterns = append(patterns, p)
		byName[p.Name()] = p
	}

	defs := make([]puzzle.LevelDef, 0, len(yp.Levels))
	for i, yl := range yp.Levels {
		id := yl.ID
		if id == "" {
			id = fmt.Sprintf("%d", i+1)
		}

		def := puzzle.LevelDef{
			ID:       id,
			Name:     yl.Name,
			Width:    yl.Size.W,
			Height:   yl.Size.H,
			Patterns: make([]*puzzle.Pattern, 0, len(yl.Patterns)),
			Recipe:   make([]puzzle.Step, 0, len(yl.Recipe)),
		}

		for _, name := range yl.Patterns {
			p, ok := byName[name]
			if !ok {
				return nil, pack, &puzzle.ConfigError{
					Code:    puzzle.CodeUnknownPattern,
					Level:   id,
					Message: fmt.Sprintf("pattern %q is not defined in the pack", name),
				}
			}
			def.Patterns = append(def.Patterns, p)
		}

		for j, step := range yl.Recipe {
			if len(step) != 3 {
				return nil, pack, &puzzle.ConfigError{
					Code:    puzzle.CodeInvalidStep,
					Level:   id,
					Message: fmt.Sprintf("step %d has %d values, want [x, y, pattern]", j, len(step)),
				}
			}
			def.Recipe = append(def.Recipe, puzzle.Step{X: step[0], Y: step[1], Pattern: step[2]})
		}

		defs = append(defs, def)
	}

	c, err := puzzle.NewCatalog(patterns, defs)
	if err != nil {
		return nil, pack, err
	}
	return c, pack, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
