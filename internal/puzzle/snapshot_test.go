package puzzle_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/vovakirdan/decompose/internal/puzzle"
)

func TestSnapshotRoundTrip(t *testing.T) {
	b := puzzle.NewBoard(5, 3)
	b.Apply(hole, 1, 1)
	b.Apply(pair, 3, 2)

	snap := b.Snapshot()
	if snap.Width != 5 || snap.Height != 3 || len(snap.States) != 15 {
		t.Fatalf("unexpected snapshot shape %dx%d/%d", snap.Width, snap.Height, len(snap.States))
	}

	encoded := puzzle.EncodeStates(snap.States)
	if encoded != "111001010011111" {
		t.Errorf("EncodeStates = %q", encoded)
	}

	states, err := puzzle.DecodeStates(encoded)
	if err != nil {
		t.Fatal(err)
	}
	r, err := puzzle.RestoreBoard(puzzle.Snapshot{Width: 5, Height: 3, States: states})
	if err != nil {
		t.Fatal(err)
	}
	if !r.Equal(b) {
		t.Errorf("restored board:\n%s\nwant\n%s", r, b)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	b := puzzle.NewBoard(2, 2)
	snap := b.Snapshot()
	snap.States[0] = true

	if !b.IsCleared() {
		t.Error("mutating a snapshot changed the board")
	}
}

func TestRestoreBoardRejects(t *testing.T) {
	const huge = 1 << (strconv.IntSize / 2) // huge*huge wraps to 0

	testCases := []struct {
		name string
		snap puzzle.Snapshot
	}{
		{"zero width", puzzle.Snapshot{Width: 0, Height: 2, States: nil}},
		{"too few states", puzzle.Snapshot{Width: 2, Height: 2, States: make([]bool, 3)}},
		{"too many states", puzzle.Snapshot{Width: 2, Height: 2, States: make([]bool, 5)}},
		{"size overflows to zero", puzzle.Snapshot{Width: huge, Height: huge, States: nil}},
		{"width beyond states", puzzle.Snapshot{Width: 8, Height: 1, States: make([]bool, 4)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := puzzle.RestoreBoard(tc.snap); !errors.Is(err, puzzle.ErrInvalidSnapshot) {
				t.Errorf("expected ErrInvalidSnapshot, got %v", err)
			}
		})
	}
}

func TestDecodeStatesRejectsGarbage(t *testing.T) {
	if _, err := puzzle.DecodeStates("0102"); !errors.Is(err, puzzle.ErrInvalidSnapshot) {
		t.Errorf("expected ErrInvalidSnapshot, got %v", err)
	}
}
