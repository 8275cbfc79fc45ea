package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/decompose/internal/core"
	"github.com/vovakirdan/decompose/internal/games/decompose"
	"github.com/vovakirdan/decompose/internal/progress"
	"github.com/vovakirdan/decompose/internal/puzzle"
	"github.com/vovakirdan/decompose/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runes("a"), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionApply},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionNextPattern},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, core.ActionPrevPattern},
		{runes("3"), core.PickAction(2)},
		{runes("u"), core.ActionUndo},
		{runes("r"), core.ActionRestart},
		{runes("p"), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runes("x"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := km.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestMapKeyToFrameSkipsQuit(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if a := km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyCtrlC}, &frame); a != core.ActionQuit {
		t.Errorf("action = %v", a)
	}
	if !frame.Empty() {
		t.Error("quit should not reach the game")
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapMouseToFrame(tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	if !frame.Pointer.Active || !frame.Pointer.Click || frame.Pointer.X != 4 || frame.Pointer.Y != 7 {
		t.Errorf("pointer = %+v", frame.Pointer)
	}

	frame.Clear()
	km.MapMouseToFrame(tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion}, &frame)
	if !frame.Pointer.Active || frame.Pointer.Click {
		t.Errorf("motion pointer = %+v", frame.Pointer)
	}
}

func testCatalog(t *testing.T) *puzzle.Catalog {
	t.Helper()
	square := puzzle.MustPattern("square", []string{"##", "##"}, 0, 0)
	c, err := puzzle.NewCatalog([]*puzzle.Pattern{square}, []puzzle.LevelDef{
		{ID: "01", Width: 4, Height: 4,
			Patterns: []*puzzle.Pattern{square},
			Recipe:   []puzzle.Step{{X: 1, Y: 1}}},
		{ID: "02", Width: 4, Height: 4,
			Patterns: []*puzzle.Pattern{square},
			Recipe:   []puzzle.Step{{X: 0, Y: 0}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func testGame(t *testing.T) *decompose.Game {
	t.Helper()
	return decompose.New("test", "Test", testCatalog(t), nil, decompose.DefaultOptions())
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func TestModelPersistsClear(t *testing.T) {
	store := openStore(t)
	m := NewModel(testGame(t), store, core.DefaultConfig(), ClassicTheme())
	m.Init()

	m = update(t, m,
		tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyUp}, TickMsg{},
		tea.KeyMsg{Type: tea.KeySpace}, TickMsg{},
	)
	if err := m.Err(); err != nil {
		t.Fatalf("persistence failed: %v", err)
	}
	if !m.gameState.Cleared {
		t.Fatalf("level not cleared: %+v", m.gameState)
	}

	p, err := store.LoadProgress("test", 2)
	if err != nil {
		t.Fatal(err)
	}
	if p.MaxLevel != 1 || p.Best(0) <= 0 {
		t.Errorf("stored progress = %+v", p)
	}

	stats, _ := store.PackStats("test")
	if s, ok := stats[0]; !ok || s.Clears != 1 || s.FewestMoves != 1 {
		t.Errorf("clear not recorded: %+v", stats)
	}
}

func TestUnlockAllNotPersisted(t *testing.T) {
	square := puzzle.MustPattern("square", []string{"##", "##"}, 0, 0)
	defs := make([]puzzle.LevelDef, 0, 3)
	for _, id := range []string{"01", "02", "03"} {
		defs = append(defs, puzzle.LevelDef{ID: id, Width: 4, Height: 4,
			Patterns: []*puzzle.Pattern{square},
			Recipe:   []puzzle.Step{{X: 1, Y: 1}}})
	}
	c, err := puzzle.NewCatalog([]*puzzle.Pattern{square}, defs)
	if err != nil {
		t.Fatal(err)
	}

	store := openStore(t)
	opts := decompose.DefaultOptions()
	opts.UnlockAll = true

	p := newProfile(AppConfig{Store: store, Options: opts, Pack: "test"})
	pr := p.progress("test", c.LevelCount())
	if pr.MaxLevel != 0 || !p.unlocked(pr, 2) {
		t.Fatalf("profile progress: MaxLevel = %d, unlocked(2) = %v", pr.MaxLevel, p.unlocked(pr, 2))
	}

	m := NewModel(decompose.New("test", "Test", c, pr, opts), store, core.DefaultConfig(), ClassicTheme())
	m.Init()
	m = update(t, m,
		tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyUp}, TickMsg{},
		tea.KeyMsg{Type: tea.KeySpace}, TickMsg{},
	)
	if !m.gameState.Cleared {
		t.Fatalf("level not cleared: %+v", m.gameState)
	}

	stored, err := store.LoadProgress("test", c.LevelCount())
	if err != nil {
		t.Fatal(err)
	}
	if stored.MaxLevel != 1 || stored.Unlocked(2) {
		t.Errorf("stored MaxLevel = %d, want 1", stored.MaxLevel)
	}
}

func TestModelSavesAttemptOnBack(t *testing.T) {
	store := openStore(t)
	m := NewModel(testGame(t), store, core.DefaultConfig(), ClassicTheme()).WithScope(ScopeKey("ann", "test"))
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace}, TickMsg{}, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Fatalf("back = %v, quitting = %v", m.BackToMenu(), m.IsQuitting())
	}

	ss, err := store.LatestSession("ann@test")
	if err != nil {
		t.Fatalf("no saved attempt: %v", err)
	}
	if ss.Level != 0 || ss.Moves != 1 {
		t.Errorf("saved attempt = %+v", ss)
	}

	g := testGame(t)
	ok, err := ResumeSaved(g, store, "ann@test")
	if err != nil || !ok {
		t.Fatalf("ResumeSaved = %v, %v", ok, err)
	}
	g.Reset(core.DefaultConfig())
	if g.Session().Moves() != 1 {
		t.Errorf("resumed moves = %d", g.Session().Moves())
	}
}

func TestModelSkipsUntouchedBoard(t *testing.T) {
	store := openStore(t)
	m := NewModel(testGame(t), store, core.DefaultConfig(), ClassicTheme())
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.IsQuitting() {
		t.Fatal("ctrl+c should quit")
	}
	if ok, _ := ResumeSaved(testGame(t), store, "test"); ok {
		t.Error("untouched board was saved")
	}
}

func TestModelResizeKeepsAttempt(t *testing.T) {
	m := NewModel(testGame(t), nil, core.DefaultConfig(), ClassicTheme())
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace}, TickMsg{}, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.game.Session().Moves() != 1 {
		t.Error("resize reset the attempt")
	}
	if !strings.Contains(m.View(), "Moves: 1") {
		t.Error("view missing move count")
	}
}

func TestScopeKey(t *testing.T) {
	if got := ScopeKey("", "classic"); got != "classic" {
		t.Errorf("local scope = %q", got)
	}
	if got := ScopeKey("ann", "classic"); got != "ann@classic" {
		t.Errorf("user scope = %q", got)
	}
}

func TestSplitScopeKey(t *testing.T) {
	tests := []struct {
		scope, user, pack string
	}{
		{"classic", "", "classic"},
		{"ann@classic", "ann", "classic"},
		{"ann@corp@classic", "ann@corp", "classic"},
	}

	for _, tt := range tests {
		t.Run(tt.scope, func(t *testing.T) {
			user, pack := SplitScopeKey(tt.scope)
			if user != tt.user || pack != tt.pack {
				t.Errorf("SplitScopeKey(%q) = %q, %q", tt.scope, user, pack)
			}
			if got := ScopeKey(user, pack); got != tt.scope {
				t.Errorf("ScopeKey round trip = %q", got)
			}
		})
	}
}

func TestResumeRestoresCursor(t *testing.T) {
	store := openStore(t)
	m := NewModel(testGame(t), store, core.DefaultConfig(), ClassicTheme()).WithScope(ScopeKey("ann", "test"))
	m.Init()

	m = update(t, m,
		tea.KeyMsg{Type: tea.KeyLeft}, TickMsg{},
		tea.KeyMsg{Type: tea.KeySpace}, TickMsg{},
		tea.KeyMsg{Type: tea.KeyEsc},
	)

	ss, err := store.LatestSession("ann@test")
	if err != nil {
		t.Fatalf("no saved attempt: %v", err)
	}
	if ss.CursorX != 1 || ss.CursorY != 2 {
		t.Errorf("saved cursor = (%d,%d), want (1,2)", ss.CursorX, ss.CursorY)
	}

	g := testGame(t)
	if err := ResumeSession(g, ss); err != nil {
		t.Fatal(err)
	}
	g.Reset(core.DefaultConfig())
	if s := g.Snapshot(); s.CursorX != 1 || s.CursorY != 2 || s.Moves != 1 {
		t.Errorf("resumed snapshot = %+v", s)
	}
}

func TestBuildTimeRows(t *testing.T) {
	p := progress.New(2)
	p.Complete(0, 1500)

	stats := map[int]*storage.LevelStats{0: {Level: 0, Clears: 3, AvgMillis: 2000, FewestMoves: 1}}
	rows := BuildTimeRows(testCatalog(t), p, stats)
	if len(rows) != 2 {
		t.Fatalf("rows = %d", len(rows))
	}
	if r := rows[0]; r.Best != 1500 || r.Clears != 3 || r.AvgMS != 2000 || r.Locked || r.Size != "4x4" {
		t.Errorf("row 0 = %+v", r)
	}
	if r := rows[1]; r.Locked || r.Clears != 0 || r.Best != 0 {
		t.Errorf("row 1 = %+v", r)
	}
}
