package puzzle

import (
	"fmt"
	"strings"
)

// Coord is a tile position. X is the column, Y the row; (0,0) is top-left.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Board is a mutable width×height grid of on/off tiles.
// Cells are stored in row-major order: index = y*W + x.
// Apply is the only mutator.
type Board struct {
	w      int
	h      int
	states []bool
}

// NewBoard creates an all-off board. It panics on non-positive dimensions;
// level definitions are validated before boards are built from them.
func NewBoard(w, h int) *Board {
	if w < 1 || h < 1 {
		panic(fmt.Sprintf("puzzle: NewBoard(%d, %d): dimensions must be positive", w, h))
	}
	return &Board{
		w:      w,
		h:      h,
		states: make([]bool, w*h),
	}
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.w
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.h
}

// InBounds returns true if the coordinate is on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.w && y >= 0 && y < b.h
}

// At returns the state of the tile at (x, y). Off-board tiles read as off.
func (b *Board) At(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.states[y*b.w+x]
}

// CanApply reports whether the whole pattern fits on the board when its origin
// is placed on (x, y).
func (b *Board) CanApply(p *Pattern, x, y int) bool {
	bd := p.Bounds()
	return x+bd.MinX >= 0 &&
		y+bd.MinY >= 0 &&
		x+bd.MaxX < b.w &&
		y+bd.MaxY < b.h
}

// Apply clicks (x, y) with the pattern, toggling every tile the pattern flips.
// If any part of the pattern would fall off the board nothing changes and
// false is returned.
func (b *Board) Apply(p *Pattern, x, y int) bool {
	if !b.CanApply(p, x, y) {
		return false
	}

	bd := p.Bounds()
	for dy := bd.MinY; dy <= bd.MaxY; dy++ {
		for dx := bd.MinX; dx <= bd.MaxX; dx++ {
			if p.FlipsAt(dx, dy) {
				i := (y+dy)*b.w + (x + dx)
				b.states[i] = !b.states[i]
			}
		}
	}
	return true
}

// Affected returns the tiles an application at (x, y) would toggle, in
// row-major order. Returns nil when the application is invalid.
func (b *Board) Affected(p *Pattern, x, y int) []Coord {
	if !b.CanApply(p, x, y) {
		return nil
	}

	bd := p.Bounds()
	coords := make([]Coord, 0, p.Size())
	for dy := bd.MinY; dy <= bd.MaxY; dy++ {
		for dx := bd.MinX; dx <= bd.MaxX; dx++ {
			if p.FlipsAt(dx, dy) {
				coords = append(coords, C(x+dx, y+dy))
			}
		}
	}
	return coords
}

// IsCleared returns true if every tile is off.
func (b *Board) IsCleared() bool {
	for _, on := range b.states {
		if on {
			return false
		}
	}
	return true
}

// OnCount returns the number of tiles that are on.
func (b *Board) OnCount() int {
	n := 0
	for _, on := range b.states {
		if on {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	states := make([]bool, len(b.states))
	copy(states, b.states)
	return &Board{
		w:      b.w,
		h:      b.h,
		states: states,
	}
}

// Equal returns true if two boards have the same dimensions and tiles.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.w != other.w || b.h != other.h {
		return false
	}
	for i, on := range b.states {
		if on != other.states[i] {
			return false
		}
	}
	return true
}

// String renders the board as rows of '#' (on) and '.' (off).
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.w + 1) * b.h)
	for y := 0; y < b.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < b.w; x++ {
			if b.states[y*b.w+x] {
				sb.WriteRune(GlyphFlip)
			} else {
				sb.WriteRune(GlyphKeep)
			}
		}
	}
	return sb.String()
}
