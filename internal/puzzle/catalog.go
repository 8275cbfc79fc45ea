package puzzle

import "fmt"

// Catalog is the ordered, read-only collection of levels plus the named
// patterns they draw from. It is built once and may be shared by any number of
// concurrent sessions.
type Catalog struct {
	patterns []*Pattern
	byName   map[string]*Pattern
	levels   []*Level
}

// NewCatalog generates every level and returns the catalog, or the first
// *ConfigError encountered.
func NewCatalog(patterns []*Pattern, defs []LevelDef) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, &ConfigError{Code: CodeEmptyCatalog, Message: "catalog has no levels"}
	}

	c := &Catalog{
		patterns: make([]*Pattern, 0, len(patterns)),
		byName:   make(map[string]*Pattern, len(patterns)),
		levels:   make([]*Level, 0, len(defs)),
	}

	for _, p := range patterns {
		if _, dup := c.byName[p.Name()]; dup {
			return nil, &ConfigError{
				Code:    CodeDuplicateID,
				Message: fmt.Sprintf("pattern %q defined twice", p.Name()),
			}
		}
		c.byName[p.Name()] = p
		c.patterns = append(c.patterns, p)
	}

	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if def.ID != "" {
			if seen[def.ID] {
				return nil, &ConfigError{
					Code:    CodeDuplicateID,
					Level:   def.ID,
					Message: "level defined twice",
				}
			}
			seen[def.ID] = true
		}

		lvl, err := NewLevel(def)
		if err != nil {
			return nil, err
		}
		c.levels = append(c.levels, lvl)
	}

	return c, nil
}

// LevelCount returns the number of levels.
func (c *Catalog) LevelCount() int {
	return len(c.levels)
}

// Level returns the level at the given 0-based index.
func (c *Catalog) Level(index int) (*Level, error) {
	if index < 0 || index >= len(c.levels) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrLevelNotFound, index, len(c.levels))
	}
	return c.levels[index], nil
}

// Levels returns all levels in order.
func (c *Catalog) Levels() []*Level {
	return append([]*Level(nil), c.levels...)
}

// LevelBoardSize returns the board dimensions of a level.
func (c *Catalog) LevelBoardSize(index int) (w, h int, err error) {
	lvl, err := c.Level(index)
	if err != nil {
		return 0, 0, err
	}
	return lvl.Width(), lvl.Height(), nil
}

// LevelAllowedPatterns returns a level's allowed patterns in selection order.
func (c *Catalog) LevelAllowedPatterns(index int) ([]*Pattern, error) {
	lvl, err := c.Level(index)
	if err != nil {
		return nil, err
	}
	return lvl.Patterns(), nil
}

// NewPlayBoard returns a fresh copy of a level's starting board.
func (c *Catalog) NewPlayBoard(index int) (*Board, error) {
	lvl, err := c.Level(index)
	if err != nil {
		return nil, err
	}
	return lvl.NewBoard(), nil
}

// Patterns returns the catalog's named patterns in definition order.
func (c *Catalog) Patterns() []*Pattern {
	return append([]*Pattern(nil), c.patterns...)
}

// Pattern looks up a pattern by name.
func (c *Catalog) Pattern(name string) (*Pattern, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// IndexOf returns the index of the level with the given ID, or -1.
func (c *Catalog) IndexOf(id string) int {
	for i, lvl := range c.levels {
		if lvl.ID() == id {
			return i
		}
	}
	return -1
}
