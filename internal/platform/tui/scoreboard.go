package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/decompose/internal/core"
	"github.com/vovakirdan/decompose/internal/progress"
	"github.com/vovakirdan/decompose/internal/puzzle"
	"github.com/vovakirdan/decompose/internal/registry"
	"github.com/vovakirdan/decompose/internal/storage"
)

// Times board layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the pack list sidebar
	sidebarWidth       = 22 // Width of pack list sidebar
)

// ScoreboardKeyMap defines the key bindings for the times board.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPack key.Binding
	PrevPack key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPack, k.PrevPack, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPack, k.PrevPack},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPack: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next pack"),
		),
		PrevPack: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev pack"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// TimeRow is one level's line on the times board.
type TimeRow struct {
	Level   int
	ID      string
	Name    string
	Size    string
	Best    int // ms, 0 when never cleared
	Clears  int
	AvgMS   int
	Fewest  int // Fewest moves in a clear, 0 when never cleared
	Locked  bool
	Updated string
}

// BuildTimeRows joins a pack's levels with its progress and clear history.
func BuildTimeRows(c *puzzle.Catalog, p *progress.Progress, stats map[int]*storage.LevelStats) []TimeRow {
	rows := make([]TimeRow, 0, c.LevelCount())
	for i, lvl := range c.Levels() {
		row := TimeRow{
			Level:  i,
			ID:     lvl.ID(),
			Name:   lvl.Name(),
			Size:   fmt.Sprintf("%dx%d", lvl.Width(), lvl.Height()),
			Best:   p.Best(i),
			Locked: !p.Unlocked(i),
		}
		if s, ok := stats[i]; ok {
			row.Clears = s.Clears
			row.AvgMS = int(s.AvgMillis)
			row.Fewest = s.FewestMoves
			if !s.LastPlayed.IsZero() {
				row.Updated = s.LastPlayed.Format("Jan 02 15:04")
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// ScoreboardModel is the Bubble Tea model for the best-times board.
type ScoreboardModel struct {
	profile     *profile
	packs       []registry.PackInfo
	packCursor  int
	rows        []TimeRow
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show pack list sidebar
}

// NewScoreboardModel creates a times board opened on the given pack.
func NewScoreboardModel(p *profile, pack string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		profile:     p,
		packs:       registry.List(),
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, info := range m.packs {
		if info.ID == pack {
			m.packCursor = i
		}
	}

	m.table = m.createTable()
	m.loadTimes()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Level", Width: 16},
		{Title: "Size", Width: 5},
		{Title: "Best", Width: 9},
		{Title: "Clears", Width: 6},
		{Title: "Avg", Width: 9},
		{Title: "Moves", Width: 5},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Give spare room to the level name and the date
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := tableWidth - used; spare > 14 {
		columns = append(columns, table.Column{Title: "Last", Width: 12})
		columns[1].Width += min(spare-14, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	theme := m.profile.cfg.Theme
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.TableSelected
	t.SetStyles(s)

	return t
}

// loadTimes loads rows for the pack under the cursor.
func (m *ScoreboardModel) loadTimes() {
	m.rows, m.loadErr = nil, nil
	if len(m.packs) == 0 {
		m.updateTableRows()
		return
	}

	id := m.packs[m.packCursor].ID
	catalog, err := registry.Load(id)
	if err != nil {
		m.loadErr = err
		m.updateTableRows()
		return
	}

	var stats map[int]*storage.LevelStats
	if store := m.profile.cfg.Store; store != nil {
		stats, err = store.PackStats(m.profile.scope(id))
		if err != nil {
			m.loadErr = err
		}
	}
	m.rows = BuildTimeRows(catalog, m.profile.progress(id, catalog.LevelCount()), stats)
	m.updateTableRows()
}

// updateTableRows updates the table with current rows.
func (m *ScoreboardModel) updateTableRows() {
	withDate := len(m.table.Columns()) > 7

	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		name := r.Name
		if name == "" {
			name = r.ID
		}
		if r.Locked {
			name += " (locked)"
		}
		fewest := "-"
		if r.Fewest > 0 {
			fewest = fmt.Sprintf("%d", r.Fewest)
		}
		row := table.Row{
			fmt.Sprintf("%d", r.Level+1),
			name,
			r.Size,
			progress.FormatTime(r.Best),
			fmt.Sprintf("%d", r.Clears),
			progress.FormatTime(r.AvgMS),
			fewest,
		}
		if withDate {
			row = append(row, r.Updated)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the times board.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the times board.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextPack):
			if len(m.packs) > 0 {
				m.packCursor = core.Wrap(m.packCursor+1, len(m.packs))
				m.loadTimes()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPack):
			if len(m.packs) > 0 {
				m.packCursor = core.Wrap(m.packCursor-1, len(m.packs))
				m.loadTimes()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the times board.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	theme := m.profile.cfg.Theme
	var b strings.Builder

	title := "BEST TIMES"
	if len(m.packs) > 0 {
		title = fmt.Sprintf("BEST TIMES - %s", m.packs[m.packCursor].Title)
	}
	b.WriteString(centerText(theme.MenuTitle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	if m.loadErr != nil {
		b.WriteString("\n")
		b.WriteString(theme.MenuItemLocked.Render(m.loadErr.Error()))
	}

	b.WriteString("\n")
	b.WriteString(theme.MenuDescription.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar for pack selection.
func (m ScoreboardModel) renderWideLayout() string {
	theme := m.profile.cfg.Theme
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Packs\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.packs {
		cursor := "  "
		style := theme.MenuItemNormal
		if i == m.packCursor {
			cursor = "> "
			style = theme.MenuItemActive
		}
		sidebar.WriteString(style.Render(cursor + truncate(p.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the board with the pack name above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	theme := m.profile.cfg.Theme
	var b strings.Builder

	if len(m.packs) > 1 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.packs[m.packCursor].Title), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No levels in this pack.")
	}
	return m.table.View()
}

// Pack returns the ID of the pack on screen.
func (m ScoreboardModel) Pack() string {
	if len(m.packs) == 0 {
		return ""
	}
	return m.packs[m.packCursor].ID
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
