package puzzle

import "fmt"

// Snapshot is the persisted form of a board: its dimensions plus the tile
// states as one flat row-major sequence. The byte layout on disk belongs to
// whoever stores it.
type Snapshot struct {
	Width  int
	Height int
	States []bool
}

// Snapshot captures the board's current tiles.
func (b *Board) Snapshot() Snapshot {
	states := make([]bool, len(b.states))
	copy(states, b.states)
	return Snapshot{
		Width:  b.w,
		Height: b.h,
		States: states,
	}
}

// Consistent reports whether States holds exactly Width*Height tiles.
// Checked by division so huge dimensions cannot overflow.
func (s Snapshot) Consistent() bool {
	if s.Width < 1 || s.Height < 1 {
		return false
	}
	n := len(s.States)
	return n%s.Width == 0 && n/s.Width == s.Height
}

// RestoreBoard rebuilds a board from a snapshot.
func RestoreBoard(s Snapshot) (*Board, error) {
	if s.Width < 1 || s.Height < 1 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidSnapshot, s.Width, s.Height)
	}
	if !s.Consistent() {
		return nil, fmt.Errorf("%w: %d states for %dx%d board",
			ErrInvalidSnapshot, len(s.States), s.Width, s.Height)
	}

	b := NewBoard(s.Width, s.Height)
	copy(b.states, s.States)
	return b, nil
}

// EncodeStates packs states into a string of '0' and '1' characters.
func EncodeStates(states []bool) string {
	buf := make([]byte, len(states))
	for i, on := range states {
		if on {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// DecodeStates is the inverse of EncodeStates.
func DecodeStates(s string) ([]bool, error) {
	states := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			states[i] = true
		case '0':
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrInvalidSnapshot, s[i], i)
		}
	}
	return states, nil
}
