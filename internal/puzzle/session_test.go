package puzzle_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/decompose/internal/puzzle"
)

func TestSessionSolveWithClicks(t *testing.T) {
	c := newTestCatalog(t)
	s, err := puzzle.NewSession(c, 3)
	if err != nil {
		t.Fatal(err)
	}

	s.Select(1)
	if !s.Click(1, 1) {
		t.Fatal("pair at (1,1) should apply")
	}
	s.Select(0)
	s.Click(2, 1)
	s.Click(0, 1)

	if !s.Cleared() {
		t.Errorf("expected cleared board:\n%s", s.Board())
	}
	if s.Moves() != 3 {
		t.Errorf("Moves = %d, want 3", s.Moves())
	}
}

func TestSessionInvalidClickNotCounted(t *testing.T) {
	c := newTestCatalog(t)
	s, _ := puzzle.NewSession(c, 0)
	before := s.Board().Clone()

	if s.Click(3, 3) {
		t.Error("square at (3,3) should not fit a 4x4 board")
	}
	if s.Moves() != 0 || s.CanUndo() {
		t.Errorf("invalid click recorded: moves=%d", s.Moves())
	}
	if !s.Board().Equal(before) {
		t.Error("invalid click changed the board")
	}
}

func TestSessionUndo(t *testing.T) {
	c := newTestCatalog(t)
	s, _ := puzzle.NewSession(c, 4)
	start := s.Board().Clone()

	s.Click(3, 3)
	s.SelectNext()
	s.Click(5, 5)
	if s.Moves() != 2 {
		t.Fatalf("Moves = %d, want 2", s.Moves())
	}

	if !s.Undo() || !s.Undo() {
		t.Fatal("Undo should succeed twice")
	}
	if s.Undo() {
		t.Error("Undo with empty history should fail")
	}
	if !s.Board().Equal(start) {
		t.Errorf("undo did not restore the start board:\n%s", s.Board())
	}
	if s.Moves() != 0 {
		t.Errorf("Moves = %d, want 0", s.Moves())
	}
}

func TestSessionSelectionCycles(t *testing.T) {
	c := newTestCatalog(t)
	s, _ := puzzle.NewSession(c, 3)

	if s.SelectedPattern() != square {
		t.Fatal("first pattern should be selected")
	}
	s.SelectNext()
	if s.SelectedPattern() != pair {
		t.Error("SelectNext should pick pair")
	}
	s.SelectNext()
	if s.Selected() != 0 {
		t.Errorf("SelectNext should wrap, got %d", s.Selected())
	}
	s.SelectPrev()
	if s.Selected() != 1 {
		t.Errorf("SelectPrev should wrap, got %d", s.Selected())
	}
	if s.Select(2) || s.Select(-1) {
		t.Error("Select out of range should fail")
	}
	if s.Selected() != 1 {
		t.Error("failed Select must keep the selection")
	}
}

func TestSessionsDoNotShareSelection(t *testing.T) {
	c := newTestCatalog(t)
	a, _ := puzzle.NewSession(c, 3)
	b, _ := puzzle.NewSession(c, 3)

	a.Select(1)
	if b.Selected() != 0 {
		t.Error("selection leaked between sessions")
	}
}

func TestSessionRestart(t *testing.T) {
	c := newTestCatalog(t)
	s, _ := puzzle.NewSession(c, 1)

	s.Click(0, 0)
	s.Click(2, 2)
	s.Restart()

	if s.Moves() != 0 || s.CanUndo() {
		t.Error("Restart should reset moves and history")
	}
	if s.Board().OnCount() != 6 {
		t.Errorf("OnCount = %d, want 6", s.Board().OnCount())
	}
}

func TestSessionStateRoundTrip(t *testing.T) {
	c := newTestCatalog(t)
	s, _ := puzzle.NewSession(c, 4)
	s.SelectNext()
	s.Click(3, 3)

	st := s.State()
	r, err := puzzle.RestoreSession(c, st)
	if err != nil {
		t.Fatalf("RestoreSession failed: %v", err)
	}

	if !r.Board().Equal(s.Board()) {
		t.Error("restored board differs")
	}
	if r.Selected() != 1 || r.Moves() != 1 || r.LevelIndex() != 4 {
		t.Errorf("restored selected=%d moves=%d level=%d", r.Selected(), r.Moves(), r.LevelIndex())
	}
	if r.CanUndo() {
		t.Error("restored session should have no undo history")
	}
}

func TestRestoreSessionRejectsMismatch(t *testing.T) {
	c := newTestCatalog(t)

	st := puzzle.SessionState{
		Level: 0,
		Board: puzzle.Snapshot{Width: 8, Height: 8, States: make([]bool, 64)},
	}
	if _, err := puzzle.RestoreSession(c, st); !errors.Is(err, puzzle.ErrInvalidSnapshot) {
		t.Errorf("expected ErrInvalidSnapshot, got %v", err)
	}

	st.Level = 9
	if _, err := puzzle.RestoreSession(c, st); !errors.Is(err, puzzle.ErrLevelNotFound) {
		t.Errorf("expected ErrLevelNotFound, got %v", err)
	}
}
