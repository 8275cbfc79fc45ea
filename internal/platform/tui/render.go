package tui

import (
	"strings"

	"github.com/vovakirdan/decompose/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Fg != first.Fg || cell.Bg != first.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if first.Fg == core.ColorDefault && first.Bg == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(theme.Style(first.Fg, first.Bg).Render(run.String()))
		}
	}
	return sb.String()
}
