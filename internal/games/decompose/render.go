package decompose

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/decompose/internal/core"
	"github.com/vovakirdan/decompose/internal/progress"
	"github.com/vovakirdan/decompose/internal/puzzle"
)

const (
	hudHeight    = 3 // Title, status line, spacer
	footerHeight = 3 // Palette, message, controls
)

// layout is where everything goes on the current screen.
type layout struct {
	fits  bool
	box   core.Rect // Board frame
	cellW int
	shape core.Rect // Selected pattern preview, zero when it does not fit
}

func (g *Game) layout() layout {
	if g.session == nil {
		return layout{fits: true}
	}

	b := g.session.Board()
	cellW := max(g.opts.CellWidth, 1)
	boxW := b.Width()*cellW + 2
	boxH := b.Height() + 2

	shapeH := 0
	for _, p := range g.session.Level().Patterns() {
		shapeH = max(shapeH, p.Height())
	}

	l := layout{cellW: cellW}
	needH := hudHeight + boxH + footerHeight
	if g.screenW < boxW || g.screenH < needH {
		return l
	}
	l.fits = true

	x := (g.screenW - boxW) / 2
	l.box = core.NewRect(x, hudHeight, boxW, boxH)

	// Shape goes right of the board if there is room, below it otherwise.
	shapeW := 0
	for _, p := range g.session.Level().Patterns() {
		shapeW = max(shapeW, p.Width()*cellW)
	}
	switch {
	case l.box.Right()+2+shapeW <= g.screenW:
		l.shape = core.NewRect(l.box.Right()+2, l.box.Y+1, shapeW, shapeH)
	case needH+shapeH <= g.screenH:
		l.shape = core.NewRect((g.screenW-shapeW)/2, l.box.Bottom(), shapeW, shapeH)
	}
	return l
}

// tileAt maps a screen position to a board tile.
func (l layout) tileAt(px, py int) (x, y int, ok bool) {
	if !l.fits || l.box.W == 0 {
		return 0, 0, false
	}
	inner := l.box.Inset(1)
	if !inner.Contains(px, py) {
		return 0, 0, false
	}
	return (px - inner.X) / l.cellW, py - inner.Y, true
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		return
	}

	l := g.layout()
	if !l.fits {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst, l)
	g.renderShape(dst, l)
	g.renderFooter(dst)

	switch {
	case g.cleared:
		g.renderCleared(dst, l)
	case g.paused:
		g.renderBanner(dst, l, "PAUSED", "P to resume", core.ColorWarning)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	b := g.session.Board()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorWarning)
	need := fmt.Sprintf("Need %dx%d", b.Width()*max(g.opts.CellWidth, 1)+2, hudHeight+b.Height()+2+footerHeight)
	dst.DrawTextCentered(y, need, core.ColorMuted)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorMuted)
}

func (g *Game) renderHUD(dst *core.Screen) {
	lvl := g.session.Level()
	title := fmt.Sprintf("DECOMPOSE · %s", g.title)
	dst.DrawTextCentered(0, title, core.ColorAccent)

	name := lvl.ID()
	if lvl.Name() != "" {
		name = lvl.Name()
	}
	status := fmt.Sprintf("Level %d/%d %s | Moves: %d | Time: %s | Best: %s",
		g.level+1, g.catalog.LevelCount(), name,
		g.session.Moves(),
		clock(g.ElapsedMS()),
		progress.FormatTime(g.progress.Best(g.level)),
	)
	dst.DrawTextCentered(1, status, core.ColorDefault)
}

// clock renders a running timer with tenths, e.g. "12.3".
func clock(ms int) string {
	ms = max(ms, 0)
	return fmt.Sprintf("%d.%d", ms/1000, ms%1000/100)
}

func (g *Game) renderBoard(dst *core.Screen, l layout) {
	dst.DrawBox(l.box, core.ColorFrame)

	b := g.session.Board()
	inner := l.box.Inset(1)
	hl := g.highlight()

	for y := range b.Height() {
		for x := range b.Width() {
			c := core.Cell{Rune: g.opts.OffGlyph, Fg: core.ColorTileOff}
			if b.At(x, y) {
				c = core.Cell{Rune: g.opts.OnGlyph, Fg: core.ColorTileOn}
			}
			if bg, ok := hl[puzzle.C(x, y)]; ok {
				c.Bg = bg
			}
			if x == g.cursorX && y == g.cursorY && !g.cleared {
				c.Bg = core.ColorCursor
			}
			for i := range l.cellW {
				dst.SetCell(inner.X+x*l.cellW+i, inner.Y+y, c)
			}
		}
	}
}

// highlight returns the tiles the selected pattern would touch from the
// cursor. Blocked placements mark only the tiles that are on the board.
func (g *Game) highlight() map[puzzle.Coord]core.Color {
	if !g.opts.ShowPreview || g.cleared {
		return nil
	}

	b := g.session.Board()
	p := g.session.SelectedPattern()
	bg := core.ColorPreview
	if !b.CanApply(p, g.cursorX, g.cursorY) {
		bg = core.ColorBlocked
	}

	hl := make(map[puzzle.Coord]core.Color, p.Size())
	bd := p.Bounds()
	for dy := bd.MinY; dy <= bd.MaxY; dy++ {
		for dx := bd.MinX; dx <= bd.MaxX; dx++ {
			x, y := g.cursorX+dx, g.cursorY+dy
			if p.FlipsAt(dx, dy) && b.InBounds(x, y) {
				hl[puzzle.C(x, y)] = bg
			}
		}
	}
	return hl
}

// renderShape draws the selected pattern with its origin marked.
func (g *Game) renderShape(dst *core.Screen, l layout) {
	if l.shape.W == 0 {
		return
	}

	p := g.session.SelectedPattern()
	ox, oy := p.Origin()
	for y, row := range p.Rows() {
		for x, r := range row {
			c := core.Cell{Rune: ' '}
			if r == puzzle.GlyphFlip {
				c = core.Cell{Rune: g.opts.OnGlyph, Fg: core.ColorAccent}
			}
			if x == ox && y == oy {
				c.Bg = core.ColorCursor
				if c.Rune == ' ' {
					c.Rune = '+'
					c.Fg = core.ColorMuted
				}
			}
			for i := range l.cellW {
				dst.SetCell(l.shape.X+x*l.cellW+i, l.shape.Y+y, c)
			}
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := g.screenH - footerHeight

	sel := g.session.Selected()
	parts := make([]string, 0, len(g.session.Level().Patterns()))
	for i, p := range g.session.Level().Patterns() {
		label := fmt.Sprintf(" %d %s ", i+1, p.Name())
		if i == sel {
			label = fmt.Sprintf("[%d %s]", i+1, p.Name())
		}
		parts = append(parts, label)
	}
	line := strings.Join(parts, " ")
	x := max((g.screenW-core.TextWidth(line))/2, 0)
	for i, part := range parts {
		fg := core.ColorMuted
		if i == sel {
			fg = core.ColorAccent
		}
		dst.DrawTextWithColor(x, y, part, fg)
		x += core.TextWidth(part) + 1
	}

	if g.messageLeft > 0 && g.message != "" {
		dst.DrawTextCentered(y+1, g.message, g.messageColor)
	}
	dst.DrawTextCentered(y+2, g.Controls(), core.ColorMuted)
}

func (g *Game) renderCleared(dst *core.Screen, l layout) {
	title := "CLEARED!"
	fg := core.ColorSuccess
	hint := "Enter/N: next level | R: replay | Esc: menu"
	if g.finished {
		title = "PACK COMPLETE!"
		hint = "R: replay | Esc: menu"
	}

	detail := fmt.Sprintf("%d moves in %s", g.session.Moves(), progress.FormatTime(g.clearMS))
	if g.newBest {
		detail += " · new best!"
	}
	g.renderBanner(dst, l, title, detail, fg)

	y := l.box.Y + l.box.H/2 + 2
	if y < g.screenH {
		dst.DrawTextCentered(y, hint, core.ColorMuted)
	}
}

// renderBanner draws a boxed two-line message over the middle of the board.
func (g *Game) renderBanner(dst *core.Screen, l layout, title, detail string, fg core.Color) {
	w := max(core.TextWidth(title), core.TextWidth(detail)) + 4
	w = min(w, g.screenW)
	r := core.NewRect(0, l.box.Y, g.screenW, l.box.H).Centered(w, 4)

	dst.DrawRect(r, core.Cell{Rune: ' '})
	dst.DrawBox(r, fg)
	dst.DrawTextCentered(r.Y+1, title, fg)
	if detail != "" {
		dst.DrawTextCentered(r.Y+2, detail, core.ColorDefault)
	}
}
