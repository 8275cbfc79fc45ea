package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/decompose/internal/core"
	"github.com/vovakirdan/decompose/internal/games/decompose"
	"github.com/vovakirdan/decompose/internal/storage"
)

// ScopeKey returns the storage key progress is kept under. Local play keys by
// pack; SSH users get their own records.
func ScopeKey(user, pack string) string {
	if user == "" {
		return pack
	}
	return user + "@" + pack
}

// SplitScopeKey is the inverse of ScopeKey. User names may contain '@', so
// the pack is whatever follows the last one.
func SplitScopeKey(scope string) (user, pack string) {
	i := strings.LastIndex(scope, "@")
	if i < 0 {
		return "", scope
	}
	return scope[:i], scope[i+1:]
}

// Model is the Bubble Tea model for playing a level pack.
type Model struct {
	game       *decompose.Game
	screen     *core.Screen
	store      *storage.Store
	scope      string
	config     core.RuntimeConfig
	theme      Theme
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	standalone bool // Back quits instead of returning to a menu
	quitting   bool
	backToMenu bool
	err        error // Last persistence failure
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *decompose.Game, store *storage.Store, cfg core.RuntimeConfig, theme Theme) Model {
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		scope:      game.Pack(),
		config:     cfg,
		theme:      theme,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// WithScope sets the storage key progress and saves go under.
func (m Model) WithScope(scope string) Model {
	m.scope = scope
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
	case core.ActionQuit:
		m.saveCheckpoint()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.saveCheckpoint()
		m.backToMenu = true
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize keeps the attempt and only re-lays out the screen.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.JustCleared {
		m.recordClear(result.State)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordClear persists progress, the clear itself, and drops the saved
// attempt for the level.
func (m *Model) recordClear(st core.GameState) {
	if m.store == nil {
		return
	}
	m.err = errors.Join(
		m.store.SaveProgress(m.scope, m.game.Progress()),
		m.store.RecordClear(m.scope, st.Level, st.ElapsedMS, st.Moves),
		m.store.DeleteSessions(m.scope, st.Level),
	)
}

// saveCheckpoint stores the unfinished attempt so it can be resumed.
// Untouched boards are not saved.
func (m *Model) saveCheckpoint() {
	if m.store == nil {
		return
	}
	cp, ok := m.game.Checkpoint()
	if !ok || cp.Session.Moves == 0 {
		return
	}
	_, err := m.store.SaveSession(storage.SavedSession{
		Pack:      m.scope,
		Level:     cp.Session.Level,
		Board:     cp.Session.Board,
		Selected:  cp.Session.Selected,
		Moves:     cp.Session.Moves,
		ElapsedMS: cp.ElapsedMS,
		CursorX:   cp.CursorX,
		CursorY:   cp.CursorY,
	})
	if err != nil {
		m.err = err
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".decompose", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%02d_%s.txt", m.game.Pack(), m.game.Level()+1, timestamp)
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen, m.theme)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Err returns the last error hit while saving, if any.
func (m Model) Err() error {
	return m.err
}

// ResumeSaved queues the latest saved attempt of a scope on the game.
// Returns false when there is nothing to resume.
func ResumeSaved(game *decompose.Game, store *storage.Store, scope string) (bool, error) {
	if store == nil {
		return false, nil
	}
	ss, err := store.LatestSession(scope)
	if errors.Is(err, storage.ErrNoSession) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, ResumeSession(game, ss)
}

// ResumeSession queues a specific saved attempt on the game.
func ResumeSession(game *decompose.Game, ss *storage.SavedSession) error {
	return game.Resume(decompose.Checkpoint{
		Session:   ss.State(),
		ElapsedMS: ss.ElapsedMS,
		CursorX:   ss.CursorX,
		CursorY:   ss.CursorY,
	})
}

// Run plays a single game until the player quits. Progress and saves go under
// scope, or under the game's pack when scope is empty.
func Run(game *decompose.Game, store *storage.Store, scope string, cfg core.RuntimeConfig, theme Theme) error {
	model := NewModel(game, store, cfg, theme)
	if scope != "" {
		model = model.WithScope(scope)
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
