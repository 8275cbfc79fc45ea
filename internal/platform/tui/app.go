package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/decompose/internal/core"
	"github.com/vovakirdan/decompose/internal/games/decompose"
	"github.com/vovakirdan/decompose/internal/progress"
	"github.com/vovakirdan/decompose/internal/registry"
	"github.com/vovakirdan/decompose/internal/storage"
)

// AppConfig is what a menu session needs: storage, look and game options.
type AppConfig struct {
	Store   *storage.Store
	Theme   Theme
	Options decompose.Options
	Runtime core.RuntimeConfig
	User    string // Empty for local play
	Pack    string // Pack selected when the menu opens
}

// profile is one player's view of the packs. Progress is loaded once per pack
// and shared by the menu and the game, which updates it in place.
type profile struct {
	cfg   AppConfig
	cache map[string]*progress.Progress
}

func newProfile(cfg AppConfig) *profile {
	if cfg.Pack == "" {
		cfg.Pack = registry.DefaultPack
	}
	return &profile{cfg: cfg, cache: make(map[string]*progress.Progress)}
}

func (p *profile) scope(pack string) string {
	return ScopeKey(p.cfg.User, pack)
}

func (p *profile) progress(pack string, levelCount int) *progress.Progress {
	if pr, ok := p.cache[pack]; ok {
		return pr
	}

	var pr *progress.Progress
	if p.cfg.Store != nil {
		if loaded, err := p.cfg.Store.LoadProgress(p.scope(pack), levelCount); err == nil {
			pr = loaded
		}
	}
	if pr == nil {
		pr = progress.New(levelCount)
	}
	p.cache[pack] = pr
	return pr
}

// unlocked applies the unlock-all assist on top of the stored record.
func (p *profile) unlocked(pr *progress.Progress, level int) bool {
	return p.cfg.Options.UnlockAll || pr.Unlocked(level)
}

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenTimes
)

// AppModel manages the full session flow: menu -> game -> menu, with the
// best-times board on the side. It is the top-level model for both local
// play and SSH sessions.
type AppModel struct {
	profile  *profile
	config   core.RuntimeConfig
	screen   appScreen
	menu     MenuModel
	game     *Model
	times    ScoreboardModel
	quitting bool
	err      error
}

// NewAppModel creates a new session model.
func NewAppModel(cfg AppConfig) AppModel {
	p := newProfile(cfg)
	return AppModel{
		profile: p,
		config:  cfg.Runtime,
		menu:    NewMenuModel(p, cfg.Pack, cfg.Runtime.ScreenW, cfg.Runtime.ScreenH),
	}
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenTimes:
		return m.updateTimes(msg)
	}
	return m.updateMenu(msg)
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsTimes():
		m.times = NewScoreboardModel(m.profile, m.menu.Pack(), m.config.ScreenW, m.config.ScreenH)
		m.screen = screenTimes
		return m, m.times.Init()

	case m.menu.Selected() != nil:
		sel := *m.menu.Selected()
		if err := m.startGame(sel); err != nil {
			m.err = err
			m.menu = m.menu.withError(err)
			return m, nil
		}
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// startGame builds the game model for a menu selection.
func (m *AppModel) startGame(sel MenuSelection) error {
	info, ok := registry.Info(sel.Pack)
	if !ok {
		return fmt.Errorf("unknown pack %q", sel.Pack)
	}
	catalog, err := registry.Load(sel.Pack)
	if err != nil {
		return err
	}

	cfg := m.profile.cfg
	pr := m.profile.progress(sel.Pack, catalog.LevelCount())
	game := decompose.New(sel.Pack, info.Title, catalog, pr, cfg.Options)

	if sel.Continue {
		ok, err := ResumeSaved(game, cfg.Store, m.profile.scope(sel.Pack))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no saved game for %s", info.Title)
		}
	} else if err := game.SetLevel(sel.Level); err != nil {
		return err
	}

	model := NewModel(game, cfg.Store, m.config, cfg.Theme).WithScope(m.profile.scope(sel.Pack))
	m.game = &model
	return nil
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = &game
	}

	if err := m.game.Err(); err != nil {
		m.err = err
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		pack := m.game.game.Pack()
		m.game = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.profile, pack, m.config.ScreenW, m.config.ScreenH)
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m AppModel) updateTimes(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.times.Update(msg)
	if times, ok := next.(ScoreboardModel); ok {
		m.times = times
	}

	switch {
	case m.times.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.times.IsGoingBack():
		m.screen = screenMenu
		m.menu = NewMenuModel(m.profile, m.times.Pack(), m.config.ScreenW, m.config.ScreenH)
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenTimes:
		return m.times.View()
	}
	return m.menu.View()
}

// Err returns the last error the session hit.
func (m AppModel) Err() error {
	return m.err
}

// RunApp runs the menu-driven session in the local terminal.
func RunApp(cfg AppConfig) error {
	p := tea.NewProgram(
		NewAppModel(cfg),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(AppModel); ok {
		return m.Err()
	}
	return nil
}
