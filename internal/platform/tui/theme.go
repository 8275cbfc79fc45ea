package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/decompose/internal/config"
	"github.com/vovakirdan/decompose/internal/core"
)

// Theme maps semantic screen colors to terminal styles and holds the styles
// of the menu screens.
type Theme struct {
	Name string

	// Foreground per semantic color; the zero color renders unstyled.
	Fg map[core.Color]lipgloss.Color
	// Background per semantic color, used for cursor and preview highlights.
	Bg map[core.Color]lipgloss.Color

	// Menu and times board
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemLocked  lipgloss.Style
	MenuDescription lipgloss.Style
	TableSelected   lipgloss.Style
	Border          lipgloss.Color
}

// ClassicTheme returns the default colored theme.
func ClassicTheme() Theme {
	return Theme{
		Name: config.ThemeClassic,
		Fg: map[core.Color]lipgloss.Color{
			core.ColorTileOn:  lipgloss.Color("226"), // Bright yellow
			core.ColorTileOff: lipgloss.Color("238"), // Dark gray
			core.ColorFrame:   lipgloss.Color("245"),
			core.ColorAccent:  lipgloss.Color("51"), // Bright cyan
			core.ColorMuted:   lipgloss.Color("245"),
			core.ColorSuccess: lipgloss.Color("46"), // Lime green
			core.ColorWarning: lipgloss.Color("208"),
			core.ColorBlocked: lipgloss.Color("196"),
		},
		Bg: map[core.Color]lipgloss.Color{
			core.ColorCursor:  lipgloss.Color("57"), // Purple
			core.ColorPreview: lipgloss.Color("24"), // Deep blue
			core.ColorBlocked: lipgloss.Color("88"), // Dark red
		},

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		TableSelected:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Border:          lipgloss.Color("240"),
	}
}

// MonoTheme returns a grayscale theme for terminals without color.
func MonoTheme() Theme {
	theme := ClassicTheme()
	theme.Name = config.ThemeMono
	theme.Fg = map[core.Color]lipgloss.Color{
		core.ColorTileOn:  lipgloss.Color("255"),
		core.ColorTileOff: lipgloss.Color("240"),
		core.ColorFrame:   lipgloss.Color("245"),
		core.ColorAccent:  lipgloss.Color("255"),
		core.ColorMuted:   lipgloss.Color("245"),
		core.ColorSuccess: lipgloss.Color("255"),
		core.ColorWarning: lipgloss.Color("250"),
		core.ColorBlocked: lipgloss.Color("250"),
	}
	theme.Bg = map[core.Color]lipgloss.Color{
		core.ColorCursor:  lipgloss.Color("244"),
		core.ColorPreview: lipgloss.Color("238"),
		core.ColorBlocked: lipgloss.Color("235"),
	}
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.TableSelected = lipgloss.NewStyle().Reverse(true)
	return theme
}

// ThemeByName returns the named theme, falling back to classic.
func ThemeByName(name string) Theme {
	if name == config.ThemeMono {
		return MonoTheme()
	}
	return ClassicTheme()
}

// Style returns the style for a cell with the given colors.
func (t Theme) Style(fg, bg core.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c, ok := t.Fg[fg]; ok {
		s = s.Foreground(c)
	}
	if c, ok := t.Bg[bg]; ok {
		s = s.Background(c)
	}
	return s
}
