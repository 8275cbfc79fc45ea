package levels

import (
	"fmt"

	"github.com/vovakirdan/decompose/internal/puzzle"
)

// Report describes one level as checked by Verify.
type Report struct {
	Index   int
	ID      string
	Width   int
	Height  int
	Steps   int
	OnCount int // Tiles lit on the starting board
	Start   string
	Err     error
}

// OK reports whether the level passed every check.
func (r Report) OK() bool {
	return r.Err == nil
}

// Verify replays every level's recipe against two fresh boards. Each must end
// cleared, the two starting boards must match, and a trivially solved level
// (nothing lit at start) is reported as a failure.
func Verify(c *puzzle.Catalog) []Report {
	reports := make([]Report, 0, c.LevelCount())

	for i, lvl := range c.Levels() {
		start := lvl.NewBoard()
		r := Report{
			Index:   i,
			ID:      lvl.ID(),
			Width:   lvl.Width(),
			Height:  lvl.Height(),
			Steps:   len(lvl.Recipe()),
			OnCount: start.OnCount(),
			Start:   start.String(),
		}

		switch {
		case r.OnCount == 0:
			r.Err = fmt.Errorf("level %s starts cleared", r.ID)
		case !lvl.NewBoard().Equal(start):
			r.Err = fmt.Errorf("level %s starting boards differ", r.ID)
		default:
			for pass := 1; pass <= 2; pass++ {
				b := lvl.NewBoard()
				if n := lvl.Solve(b); n != r.Steps {
					r.Err = fmt.Errorf("level %s pass %d: %d of %d steps applied", r.ID, pass, n, r.Steps)
					break
				}
				if !b.IsCleared() {
					r.Err = fmt.Errorf("level %s pass %d: recipe leaves %d tiles lit", r.ID, pass, b.OnCount())
					break
				}
			}
		}

		reports = append(reports, r)
	}

	return reports
}
