package puzzle

import "fmt"

// Step is one click of a generation recipe: apply the level's allowed pattern
// at index Pattern with its origin on (X, Y).
type Step struct {
	X       int
	Y       int
	Pattern int
}

// LevelDef is the authored data a Level is generated from.
type LevelDef struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Patterns []*Pattern // Allowed patterns, in selection order
	Recipe   []Step
}

// Level is an immutable problem instance. Its starting board is produced once,
// by replaying the recipe against an all-off board with the same Apply the
// player uses, so replaying the recipe again always clears it.
type Level struct {
	id       string
	name     string
	w, h     int
	patterns []*Pattern
	recipe   []Step
	start    *Board
}

// NewLevel validates def and generates the level's starting board.
// Any step that does not fit on the board is a *ConfigError.
func NewLevel(def LevelDef) (*Level, error) {
	if def.Width < 1 || def.Height < 1 {
		return nil, &ConfigError{
			Code:    CodeBadSize,
			Level:   def.ID,
			Message: fmt.Sprintf("board size %dx%d must be positive", def.Width, def.Height),
		}
	}
	if len(def.Patterns) == 0 {
		return nil, &ConfigError{
			Code:    CodeBadPattern,
			Level:   def.ID,
			Message: "no allowed patterns",
		}
	}
	for i, p := range def.Patterns {
		if p == nil {
			return nil, &ConfigError{
				Code:    CodeBadPattern,
				Level:   def.ID,
				Message: fmt.Sprintf("allowed pattern %d is nil", i),
			}
		}
	}

	l := &Level{
		id:       def.ID,
		name:     def.Name,
		w:        def.Width,
		h:        def.Height,
		patterns: append([]*Pattern(nil), def.Patterns...),
		recipe:   append([]Step(nil), def.Recipe...),
	}

	board := NewBoard(l.w, l.h)
	for i, step := range l.recipe {
		if step.Pattern < 0 || step.Pattern >= len(l.patterns) {
			return nil, &ConfigError{
				Code:  CodeInvalidStep,
				Level: def.ID,
				Message: fmt.Sprintf("step %d uses pattern index %d, level allows %d",
					i, step.Pattern, len(l.patterns)),
			}
		}
		p := l.patterns[step.Pattern]
		if !board.Apply(p, step.X, step.Y) {
			return nil, &ConfigError{
				Code:  CodeInvalidStep,
				Level: def.ID,
				Message: fmt.Sprintf("step %d: %s at (%d,%d) does not fit a %dx%d board",
					i, p, step.X, step.Y, l.w, l.h),
			}
		}
	}
	l.start = board

	return l, nil
}

// ID returns the level's stable identifier.
func (l *Level) ID() string {
	return l.id
}

// Name returns the display name.
func (l *Level) Name() string {
	return l.name
}

// Width returns the board width.
func (l *Level) Width() int {
	return l.w
}

// Height returns the board height.
func (l *Level) Height() int {
	return l.h
}

// Patterns returns the allowed patterns in selection order.
// The slice is a copy; the patterns themselves are shared and immutable.
func (l *Level) Patterns() []*Pattern {
	return append([]*Pattern(nil), l.patterns...)
}

// Recipe returns a copy of the generation recipe.
func (l *Level) Recipe() []Step {
	return append([]Step(nil), l.recipe...)
}

// NewBoard returns a fresh playable copy of the starting board.
func (l *Level) NewBoard() *Board {
	return l.start.Clone()
}

// Solve replays the recipe against b, which clears a board that is in the
// level's starting state. Returns the number of steps that applied.
func (l *Level) Solve(b *Board) int {
	applied := 0
	for _, step := range l.recipe {
		if b.Apply(l.patterns[step.Pattern], step.X, step.Y) {
			applied++
		}
	}
	return applied
}
