package core

// Color is a semantic color for a screen cell. Games pick meanings, the
// platform theme maps each meaning to a terminal color.
type Color uint8

// Semantic colors.
const (
	ColorDefault Color = iota
	ColorTileOn        // Lit tile
	ColorTileOff       // Dark tile
	ColorCursor        // Tile under the cursor
	ColorPreview       // Tile the selected pattern would flip
	ColorBlocked       // Placement that does not fit the board
	ColorFrame         // Board border and chrome
	ColorAccent        // Titles, selected pattern
	ColorMuted         // Hints and secondary text
	ColorSuccess       // Cleared, new best
	ColorWarning       // Pause banner
)

// String returns the color's name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorTileOn:
		return "tile-on"
	case ColorTileOff:
		return "tile-off"
	case ColorCursor:
		return "cursor"
	case ColorPreview:
		return "preview"
	case ColorBlocked:
		return "blocked"
	case ColorFrame:
		return "frame"
	case ColorAccent:
		return "accent"
	case ColorMuted:
		return "muted"
	case ColorSuccess:
		return "success"
	case ColorWarning:
		return "warning"
	default:
		return "unknown"
	}
}
