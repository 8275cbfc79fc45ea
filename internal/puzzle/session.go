package puzzle

import "fmt"

// Move is one applied click.
type Move struct {
	X       int
	Y       int
	Pattern int // Index into the level's allowed patterns
}

// Session is one player's attempt at a level: a live board cloned from the
// level, the currently selected pattern and the history of valid clicks.
// A Session is not safe for concurrent use; give each player their own.
type Session struct {
	index    int
	level    *Level
	board    *Board
	selected int
	history  []Move
	moves    int
}

// SessionState is the persisted form of a session.
type SessionState struct {
	Level    int // 0-based catalog index
	Board    Snapshot
	Selected int
	Moves    int
}

// NewSession starts a fresh attempt at the level with the given index.
func NewSession(c *Catalog, index int) (*Session, error) {
	lvl, err := c.Level(index)
	if err != nil {
		return nil, err
	}
	return &Session{
		index: index,
		level: lvl,
		board: lvl.NewBoard(),
	}, nil
}

// RestoreSession resumes a saved attempt. The snapshot must match the level's
// board size. Undo history is not persisted, so a restored session starts with
// an empty history but keeps its move count.
func RestoreSession(c *Catalog, st SessionState) (*Session, error) {
	lvl, err := c.Level(st.Level)
	if err != nil {
		return nil, err
	}
	if st.Board.Width != lvl.Width() || st.Board.Height != lvl.Height() {
		return nil, fmt.Errorf("%w: %dx%d snapshot for %dx%d level %q",
			ErrInvalidSnapshot, st.Board.Width, st.Board.Height, lvl.Width(), lvl.Height(), lvl.ID())
	}
	b, err := RestoreBoard(st.Board)
	if err != nil {
		return nil, err
	}

	s := &Session{
		index: st.Level,
		level: lvl,
		board: b,
		moves: max(st.Moves, 0),
	}
	s.Select(st.Selected)
	return s, nil
}

// LevelIndex returns the 0-based catalog index of the session's level.
func (s *Session) LevelIndex() int {
	return s.index
}

// Level returns the level being played.
func (s *Session) Level() *Level {
	return s.level
}

// Board returns the live board. Callers must not mutate it except through
// Click and Undo.
func (s *Session) Board() *Board {
	return s.board
}

// Selected returns the index of the selected pattern.
func (s *Session) Selected() int {
	return s.selected
}

// SelectedPattern returns the pattern the next click will apply.
func (s *Session) SelectedPattern() *Pattern {
	return s.level.patterns[s.selected]
}

// Select chooses an allowed pattern by index. Out-of-range indices are ignored.
func (s *Session) Select(i int) bool {
	if i < 0 || i >= len(s.level.patterns) {
		return false
	}
	s.selected = i
	return true
}

// SelectNext cycles forward through the allowed patterns.
func (s *Session) SelectNext() {
	s.selected = (s.selected + 1) % len(s.level.patterns)
}

// SelectPrev cycles backward through the allowed patterns.
func (s *Session) SelectPrev() {
	n := len(s.level.patterns)
	s.selected = (s.selected - 1 + n) % n
}

// Click applies the selected pattern at (x, y). Invalid clicks change nothing
// and are not counted.
func (s *Session) Click(x, y int) bool {
	if !s.board.Apply(s.SelectedPattern(), x, y) {
		return false
	}
	s.history = append(s.history, Move{X: x, Y: y, Pattern: s.selected})
	s.moves++
	return true
}

// Undo reverts the last click by applying it again.
// Returns false if there is nothing to undo.
func (s *Session) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.board.Apply(s.level.patterns[last.Pattern], last.X, last.Y)
	s.moves--
	return true
}

// CanUndo reports whether there is history to undo.
func (s *Session) CanUndo() bool {
	return len(s.history) > 0
}

// Restart puts the board back in the level's starting state.
// The selected pattern is kept.
func (s *Session) Restart() {
	s.board = s.level.NewBoard()
	s.history = s.history[:0]
	s.moves = 0
}

// Moves returns the number of valid clicks on the board as it stands.
func (s *Session) Moves() int {
	return s.moves
}

// History returns a copy of the undoable moves, oldest first.
func (s *Session) History() []Move {
	return append([]Move(nil), s.history...)
}

// Cleared reports whether every tile is off.
func (s *Session) Cleared() bool {
	return s.board.IsCleared()
}

// State captures the session for persistence.
func (s *Session) State() SessionState {
	return SessionState{
		Level:    s.index,
		Board:    s.board.Snapshot(),
		Selected: s.selected,
		Moves:    s.moves,
	}
}
