// Package decompose is the playable front end of the puzzle engine: cursor,
// pattern selection, timer and level progression on top of a puzzle.Session.
package decompose

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/decompose/internal/core"
	"github.com/vovakirdan/decompose/internal/progress"
	"github.com/vovakirdan/decompose/internal/puzzle"
)

// GameID is the identifier the platform uses for this game.
const GameID = "decompose"

// ErrLocked is returned when starting a level that is not unlocked yet.
var ErrLocked = errors.New("decompose: level is locked")

var (
	_ core.Game    = (*Game)(nil)
	_ core.Resizer = (*Game)(nil)
)

// messageTicks is how long a status message stays on screen at 60 fps.
const messageTicks = 90

// Game plays one level pack. Each Game owns its own session, cursor and
// selected pattern; the catalog is shared read-only.
type Game struct {
	pack     string
	title    string
	catalog  *puzzle.Catalog
	progress *progress.Progress
	opts     Options

	level   int
	session *puzzle.Session
	resume  *Checkpoint

	cursorX int
	cursorY int

	tick     uint64
	ticks    int // Unpaused ticks on the current level
	baseMS   int // Time carried over from a resumed session
	tickRate int

	screenW int
	screenH int

	paused     bool
	cleared    bool
	finished   bool
	tooSmall   bool
	clearTicks int
	clearMS    int
	newBest    bool
	prevBest   int

	message      string
	messageColor core.Color
	messageLeft  int
}

// New creates a game over a pack's catalog. Progress is updated in place when
// levels are cleared; the caller persists it. Options.UnlockAll only lifts the
// lock check and is never written into p.
func New(pack, title string, c *puzzle.Catalog, p *progress.Progress, opts Options) *Game {
	if p == nil {
		p = progress.New(c.LevelCount())
	}
	if title == "" {
		title = pack
	}
	return &Game{
		pack:     pack,
		title:    title,
		catalog:  c,
		progress: p,
		opts:     opts,
		level:    p.MaxLevel,
		tickRate: 60,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Pack returns the level pack ID.
func (g *Game) Pack() string {
	return g.pack
}

// Progress returns the live progress record.
func (g *Game) Progress() *progress.Progress {
	return g.progress
}

// Level returns the 0-based index of the current level.
func (g *Game) Level() int {
	return g.level
}

// Session returns the current attempt, nil before Reset.
func (g *Game) Session() *puzzle.Session {
	return g.session
}

// Unlocked reports whether a level may be played.
func (g *Game) Unlocked(index int) bool {
	return g.opts.UnlockAll || g.progress.Unlocked(index)
}

// SetLevel chooses the level the next Reset starts. Locked levels are refused.
func (g *Game) SetLevel(index int) error {
	if _, err := g.catalog.Level(index); err != nil {
		return err
	}
	if !g.Unlocked(index) {
		return fmt.Errorf("%w: level %d", ErrLocked, index+1)
	}
	g.level = index
	g.resume = nil
	return nil
}

// Resume makes the next Reset continue a saved attempt instead of starting
// the level fresh.
func (g *Game) Resume(cp Checkpoint) error {
	if _, err := puzzle.RestoreSession(g.catalog, cp.Session); err != nil {
		return err
	}
	if !g.Unlocked(cp.Session.Level) {
		return fmt.Errorf("%w: level %d", ErrLocked, cp.Session.Level+1)
	}
	g.level = cp.Session.Level
	g.resume = &cp
	return nil
}

// Reset starts the selected level, or the pending resumed attempt.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.tick = 0
	g.paused = false

	if cp := g.resume; cp != nil {
		g.resume = nil
		if s, err := puzzle.RestoreSession(g.catalog, cp.Session); err == nil {
			g.startSession(s)
			g.baseMS = max(cp.ElapsedMS, 0)
			g.cursorX = core.Clamp(cp.CursorX, 0, s.Board().Width()-1)
			g.cursorY = core.Clamp(cp.CursorY, 0, s.Board().Height()-1)
			g.Resize(cfg.ScreenW, cfg.ScreenH)
			return
		}
	}

	g.loadLevel(g.level)
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// loadLevel starts a fresh attempt at a level.
func (g *Game) loadLevel(index int) {
	s, err := puzzle.NewSession(g.catalog, index)
	if err != nil {
		// Only reachable with an index SetLevel rejected.
		s, _ = puzzle.NewSession(g.catalog, 0)
	}
	g.startSession(s)
	g.cursorX = s.Board().Width() / 2
	g.cursorY = s.Board().Height() / 2
}

func (g *Game) startSession(s *puzzle.Session) {
	g.session = s
	g.level = s.LevelIndex()
	g.ticks = 0
	g.baseMS = 0
	g.cleared = false
	g.finished = false
	g.clearTicks = 0
	g.clearMS = 0
	g.newBest = false
	g.prevBest = g.progress.Best(g.level)
	g.message = ""
	g.messageLeft = 0
}

// Resize adapts the layout to a new screen size without touching the attempt.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = !g.layout().fits
}

// ElapsedMS returns the play time on the current level.
func (g *Game) ElapsedMS() int {
	if g.cleared {
		return g.clearMS
	}
	return g.baseMS + core.TicksToMillis(g.ticks, g.tickRate)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.messageLeft > 0 {
		g.messageLeft--
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.cleared {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		if g.cleared {
			g.loadLevel(g.level)
		} else {
			g.session.Restart()
		}
		g.say("Board reset", core.ColorMuted)
		return core.StepResult{State: g.State()}
	}

	if g.cleared {
		g.stepCleared(in)
		return core.StepResult{State: g.State()}
	}

	g.handleSelection(in)
	apply := g.handleCursor(in)

	if in.Has(core.ActionUndo) {
		switch {
		case !g.opts.AllowUndo:
			g.say("Undo is disabled", core.ColorMuted)
		case !g.session.Undo():
			g.say("Nothing to undo", core.ColorMuted)
		}
	}

	if apply || in.Has(core.ActionApply) || in.Has(core.ActionConfirm) {
		if !g.session.Click(g.cursorX, g.cursorY) {
			g.say("Pattern does not fit here", core.ColorBlocked)
		}
	}

	g.ticks++

	if g.session.Cleared() {
		return g.finishLevel()
	}
	return core.StepResult{State: g.State()}
}

// handleSelection changes the selected pattern.
func (g *Game) handleSelection(in core.InputFrame) {
	if i, ok := in.Pick(); ok {
		if !g.session.Select(i) {
			g.say(fmt.Sprintf("Only %d patterns here", len(g.session.Level().Patterns())), core.ColorMuted)
		}
		return
	}
	switch {
	case in.Has(core.ActionNextPattern):
		g.session.SelectNext()
	case in.Has(core.ActionPrevPattern):
		g.session.SelectPrev()
	}
}

// handleCursor moves the cursor from keys or the pointer. Reports whether the
// pointer clicked a tile.
func (g *Game) handleCursor(in core.InputFrame) bool {
	b := g.session.Board()

	switch {
	case in.Has(core.ActionUp):
		g.cursorY--
	case in.Has(core.ActionDown):
		g.cursorY++
	}
	switch {
	case in.Has(core.ActionLeft):
		g.cursorX--
	case in.Has(core.ActionRight):
		g.cursorX++
	}
	g.cursorX = core.Clamp(g.cursorX, 0, b.Width()-1)
	g.cursorY = core.Clamp(g.cursorY, 0, b.Height()-1)

	if !in.Pointer.Active {
		return false
	}
	x, y, ok := g.layout().tileAt(in.Pointer.X, in.Pointer.Y)
	if !ok {
		return false
	}
	g.cursorX, g.cursorY = x, y
	return in.Pointer.Click
}

// finishLevel records the clear and reports it to the platform.
func (g *Game) finishLevel() core.StepResult {
	g.clearMS = g.baseMS + core.TicksToMillis(g.ticks, g.tickRate)
	g.prevBest = g.progress.Best(g.level)
	g.newBest = g.progress.Complete(g.level, g.clearMS)
	g.cleared = true
	g.clearTicks = 0
	g.finished = g.level == g.catalog.LevelCount()-1

	return core.StepResult{
		State:       g.State(),
		JustCleared: true,
		NewBest:     g.newBest,
	}
}

// stepCleared waits on the clear screen for the player to move on.
func (g *Game) stepCleared(in core.InputFrame) {
	g.clearTicks++

	if g.finished {
		return
	}

	next := in.Has(core.ActionNext) || in.Has(core.ActionConfirm) || in.Has(core.ActionApply) ||
		(g.opts.AutoAdvance && g.clearTicks >= g.opts.AdvanceDelay)
	if next {
		g.loadLevel(g.level + 1)
	}
}

// say shows a status message for a short while.
func (g *Game) say(msg string, color core.Color) {
	g.message = msg
	g.messageColor = color
	g.messageLeft = messageTicks * g.tickRate / 60
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Level:     g.level,
		ElapsedMS: g.ElapsedMS(),
		Cleared:   g.cleared,
		Paused:    g.paused || g.tooSmall,
		Finished:  g.finished,
	}
	if g.session != nil {
		st.Moves = g.session.Moves()
	}
	return st
}

// Checkpoint captures the attempt for saving. Returns false when there is
// nothing worth saving: no attempt yet, or the board is already cleared.
func (g *Game) Checkpoint() (Checkpoint, bool) {
	if g.session == nil || g.cleared {
		return Checkpoint{}, false
	}
	return Checkpoint{
		Session:   g.session.State(),
		ElapsedMS: g.ElapsedMS(),
		CursorX:   g.cursorX,
		CursorY:   g.cursorY,
	}, true
}

// Checkpoint is a resumable attempt.
type Checkpoint struct {
	Session   puzzle.SessionState
	ElapsedMS int
	CursorX   int
	CursorY   int
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	if g.opts.AllowUndo {
		return "Arrows Move  Space Apply  Tab/1-9 Pattern  U Undo  R Restart  P Pause  Esc Menu"
	}
	return "Arrows Move  Space Apply  Tab/1-9 Pattern  R Restart  P Pause  Esc Menu"
}
