package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/decompose/internal/core"
	"github.com/vovakirdan/decompose/internal/progress"
	"github.com/vovakirdan/decompose/internal/puzzle"
	"github.com/vovakirdan/decompose/internal/registry"
)

// MenuSelection is what the player picked in the level menu.
type MenuSelection struct {
	Pack     string
	Level    int
	Continue bool // Resume the latest saved attempt instead
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	profile   *profile
	packs     []registry.PackInfo
	packIdx   int
	catalog   *puzzle.Catalog
	progress  *progress.Progress
	hasSave   bool
	loadErr   error
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  *MenuSelection
	openTimes bool
	quitting  bool
}

// NewMenuModel creates a level menu opened on the given pack.
func NewMenuModel(p *profile, pack string, width, height int) MenuModel {
	m := MenuModel{
		profile:   p,
		packs:     registry.List(),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	for i, info := range m.packs {
		if info.ID == pack {
			m.packIdx = i
		}
	}
	m.loadPack()
	return m
}

// loadPack builds the current pack and puts the cursor on the furthest
// unlocked level.
func (m *MenuModel) loadPack() {
	m.catalog, m.progress, m.hasSave, m.loadErr = nil, nil, false, nil
	m.cursor = 0
	if len(m.packs) == 0 {
		m.loadErr = fmt.Errorf("no level packs registered")
		return
	}

	id := m.packs[m.packIdx].ID
	catalog, err := registry.Load(id)
	if err != nil {
		m.loadErr = err
		return
	}
	m.catalog = catalog
	m.progress = m.profile.progress(id, catalog.LevelCount())
	m.cursor = min(m.progress.MaxLevel, catalog.LevelCount()-1)

	if store := m.profile.cfg.Store; store != nil {
		_, err := store.LatestSession(m.profile.scope(id))
		m.hasSave = err == nil
	}
}

func (m MenuModel) withError(err error) MenuModel {
	m.loadErr = err
	m.selected = nil
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.catalog != nil && m.cursor < m.catalog.LevelCount()-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if len(m.packs) > 1 {
			m.packIdx = core.Wrap(m.packIdx-1, len(m.packs))
			m.loadPack()
		}

	case MenuActionRight:
		if len(m.packs) > 1 {
			m.packIdx = core.Wrap(m.packIdx+1, len(m.packs))
			m.loadPack()
		}

	case MenuActionSelect:
		if m.catalog != nil && m.profile.unlocked(m.progress, m.cursor) {
			m.selected = &MenuSelection{Pack: m.Pack(), Level: m.cursor}
		}

	case MenuActionContinue:
		if m.hasSave {
			m.selected = &MenuSelection{Pack: m.Pack(), Continue: true}
		}

	case MenuActionTimes:
		if m.catalog != nil {
			m.openTimes = true
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	theme := m.profile.cfg.Theme
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("D E C O M P O S E"), m.width))
	b.WriteString("\n\n")

	if len(m.packs) > 0 {
		title := m.packs[m.packIdx].Title
		if len(m.packs) > 1 {
			title = fmt.Sprintf("< %s >", title)
		}
		b.WriteString(centerText(theme.MenuDescription.Render(title), m.width))
		b.WriteString("\n\n")
	}

	if m.loadErr != nil {
		b.WriteString(centerText(theme.MenuItemLocked.Render(m.loadErr.Error()), m.width))
		b.WriteString("\n\n")
	}

	if m.catalog != nil {
		b.WriteString(m.renderLevels(theme))
		b.WriteString("\n")
		summary := fmt.Sprintf("%d/%d cleared", m.progress.Cleared(), m.catalog.LevelCount())
		if total := m.progress.Total(); total > 0 {
			summary += " | total " + progress.FormatTime(total)
		}
		b.WriteString(centerText(theme.MenuDescription.Render(summary), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "↑/↓: Level  ←/→: Pack  Enter: Play  Tab: Times  Q: Quit"
	if m.hasSave {
		controls = "↑/↓: Level  ←/→: Pack  Enter: Play  C: Continue  Tab: Times  Q: Quit"
	}
	b.WriteString(centerText(theme.MenuDescription.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// renderLevels lists the levels around the cursor that fit the screen.
func (m MenuModel) renderLevels(theme Theme) string {
	n := m.catalog.LevelCount()
	visible := max(m.height-12, 3)
	start := 0
	if n > visible {
		start = min(max(m.cursor-visible/2, 0), n-visible)
	}
	end := min(start+visible, n)

	var b strings.Builder
	for i := start; i < end; i++ {
		lvl := m.catalog.Levels()[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		name := lvl.Name()
		if name == "" {
			name = lvl.ID()
		}
		size := fmt.Sprintf("%dx%d", lvl.Width(), lvl.Height())

		var style lipgloss.Style
		var status string
		switch {
		case !m.profile.unlocked(m.progress, i):
			style = theme.MenuItemLocked
			status = "locked"
		case m.progress.Best(i) > 0:
			status = "best " + progress.FormatTime(m.progress.Best(i))
			style = theme.MenuItemNormal
		default:
			status = "new"
			style = theme.MenuItemNormal
		}
		if i == m.cursor {
			style = theme.MenuItemActive
		}

		line := fmt.Sprintf("%s%2d. %-16s %5s  %-12s", cursor, i+1, truncate(name, 16), size, status)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *MenuSelection {
	return m.selected
}

// Pack returns the ID of the pack on screen.
func (m MenuModel) Pack() string {
	if len(m.packs) == 0 {
		return ""
	}
	return m.packs[m.packIdx].ID
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsTimes returns true if user requested the best-times board.
func (m MenuModel) WantsTimes() bool {
	return m.openTimes
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
