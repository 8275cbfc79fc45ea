package decompose

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateCleared     GameStateType = "cleared"
	StateComplete    GameStateType = "pack_complete"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Tick      uint64
	Pack      string
	Level     int // 1-indexed for display
	LevelID   string
	Board     string // Board.String() form
	OnCount   int
	Selected  string // Selected pattern name
	CursorX   int
	CursorY   int
	Moves     int
	ElapsedMS int
	State     GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.finished:
		state = StateComplete
	case g.cleared:
		state = StateCleared
	case g.paused:
		state = StatePaused
	}

	s := Snapshot{
		Tick:      g.tick,
		Pack:      g.pack,
		Level:     g.level + 1,
		CursorX:   g.cursorX,
		CursorY:   g.cursorY,
		ElapsedMS: g.ElapsedMS(),
		State:     state,
	}
	if g.session != nil {
		b := g.session.Board()
		s.LevelID = g.session.Level().ID()
		s.Board = b.String()
		s.OnCount = b.OnCount()
		s.Selected = g.session.SelectedPattern().Name()
		s.Moves = g.session.Moves()
	}
	return s
}
