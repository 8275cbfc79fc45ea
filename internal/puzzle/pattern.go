// Package puzzle provides the state engine for the Decompose tile-toggling puzzle.
// It is UI-agnostic and deterministic: patterns, boards, levels and the catalog
// they are built into. Nothing here knows about terminals, timing or storage.
package puzzle

import (
	"fmt"
	"strings"
)

// Glyphs used in the text form of a pattern shape.
const (
	GlyphFlip = '#'
	GlyphKeep = '.'
)

// Bounds is the inclusive offset envelope of a pattern, relative to its origin.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
}

// Contains reports whether the relative offset (dx, dy) lies inside the envelope.
func (b Bounds) Contains(dx, dy int) bool {
	return dx >= b.MinX && dx <= b.MaxX && dy >= b.MinY && dy <= b.MaxY
}

// Pattern is an immutable click-field: a rectangular shape of cells that get
// flipped when the pattern is applied, anchored at an origin cell that lands on
// the clicked tile. Patterns are shared read-only between levels and sessions.
type Pattern struct {
	name   string
	w, h   int
	cells  []bool // row-major: index = y*w + x
	ox, oy int
}

// NewPattern builds a pattern from rows of '#' (flip) and '.' (keep) glyphs.
// The origin (ox, oy) is given in shape coordinates, (0, 0) being the top-left cell.
func NewPattern(name string, rows []string, ox, oy int) (*Pattern, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q has no rows", ErrInvalidPattern, name)
	}

	w := len(rows[0])
	h := len(rows)
	cells := make([]bool, 0, w*h)

	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: %q row %d has width %d, want %d",
				ErrInvalidPattern, name, y, len(row), w)
		}
		for x, ch := range row {
			switch ch {
			case GlyphFlip:
				cells = append(cells, true)
			case GlyphKeep:
				cells = append(cells, false)
			default:
				return nil, fmt.Errorf("%w: %q has unknown glyph %q at (%d,%d)",
					ErrInvalidPattern, name, ch, x, y)
			}
		}
	}

	return NewPatternFromCells(name, w, h, cells, ox, oy)
}

// NewPatternFromCells builds a pattern from a flat row-major cell slice.
// The slice is copied.
func NewPatternFromCells(name string, w, h int, cells []bool, ox, oy int) (*Pattern, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %q has size %dx%d", ErrInvalidPattern, name, w, h)
	}
	if len(cells) != w*h {
		return nil, fmt.Errorf("%w: %q has %d cells, want %d", ErrInvalidPattern, name, len(cells), w*h)
	}
	if ox < 0 || ox >= w || oy < 0 || oy >= h {
		return nil, fmt.Errorf("%w: %q origin (%d,%d) outside %dx%d shape",
			ErrInvalidPattern, name, ox, oy, w, h)
	}

	p := &Pattern{
		name:  name,
		w:     w,
		h:     h,
		cells: make([]bool, len(cells)),
		ox:    ox,
		oy:    oy,
	}
	copy(p.cells, cells)

	if p.Size() == 0 {
		return nil, fmt.Errorf("%w: %q flips no cells", ErrInvalidPattern, name)
	}
	return p, nil
}

// MustPattern is like NewPattern but panics on error.
// Intended for literal shapes in tests and package-level tables.
func MustPattern(name string, rows []string, ox, oy int) *Pattern {
	p, err := NewPattern(name, rows, ox, oy)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the pattern's catalog name.
func (p *Pattern) Name() string {
	return p.name
}

// Width returns the number of shape columns.
func (p *Pattern) Width() int {
	return p.w
}

// Height returns the number of shape rows.
func (p *Pattern) Height() int {
	return p.h
}

// Origin returns the origin cell in shape coordinates.
func (p *Pattern) Origin() (x, y int) {
	return p.ox, p.oy
}

// Bounds returns the inclusive offset envelope relative to the origin.
func (p *Pattern) Bounds() Bounds {
	return Bounds{
		MinX: -p.ox,
		MaxX: p.w - 1 - p.ox,
		MinY: -p.oy,
		MaxY: p.h - 1 - p.oy,
	}
}

// InRange reports whether (dx, dy) may be passed to FlipsAt.
func (p *Pattern) InRange(dx, dy int) bool {
	return p.Bounds().Contains(dx, dy)
}

// FlipsAt reports whether the cell at offset (dx, dy) from the clicked tile is
// flipped by this pattern.
//
// Offsets outside Bounds are a caller bug and cause a panic; check InRange first.
func (p *Pattern) FlipsAt(dx, dy int) bool {
	x := p.ox + dx
	y := p.oy + dy
	if x < 0 || x >= p.w || y < 0 || y >= p.h {
		panic(fmt.Sprintf("puzzle: FlipsAt(%d,%d) out of range for pattern %q %+v",
			dx, dy, p.name, p.Bounds()))
	}
	return p.cells[y*p.w+x]
}

// Size returns the number of cells the pattern flips.
func (p *Pattern) Size() int {
	n := 0
	for _, c := range p.cells {
		if c {
			n++
		}
	}
	return n
}

// Rows returns the shape in its '#'/'.' text form.
func (p *Pattern) Rows() []string {
	rows := make([]string, p.h)
	var sb strings.Builder
	for y := 0; y < p.h; y++ {
		sb.Reset()
		for x := 0; x < p.w; x++ {
			if p.cells[y*p.w+x] {
				sb.WriteRune(GlyphFlip)
			} else {
				sb.WriteRune(GlyphKeep)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

// String returns a compact description, e.g. `square2 2x2@(0,0)`.
func (p *Pattern) String() string {
	return fmt.Sprintf("%s %dx%d@(%d,%d)", p.name, p.w, p.h, p.ox, p.oy)
}
