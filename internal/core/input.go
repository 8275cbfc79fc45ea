package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // Up arrow, W, K - move cursor up
	ActionDown               // Down arrow, S, J - move cursor down
	ActionLeft               // Left arrow, A, H - move cursor left
	ActionRight              // Right arrow, D, L - move cursor right
	ActionApply              // Space - click the tile under the cursor
	ActionNextPattern        // Tab - select the next allowed pattern
	ActionPrevPattern        // Shift+Tab - select the previous allowed pattern
	ActionUndo               // U, Backspace - revert the last click
	ActionRestart            // R - reset the board to the level start
	ActionNext               // N - go to the next level after a clear
	ActionConfirm            // Enter - apply while playing, next level after a clear
	ActionBack               // Escape - go back to the menu
	ActionQuit               // Q, Ctrl+C - exit game/session
	ActionPause              // P - pause/unpause
	ActionPick1              // 1..9 - select a pattern directly
	ActionPick2
	ActionPick3
	ActionPick4
	ActionPick5
	ActionPick6
	ActionPick7
	ActionPick8
	ActionPick9
)

// PickAction returns the direct-selection action for pattern index i (0-based).
func PickAction(i int) Action {
	if i < 0 || i > 8 {
		return ActionNone
	}
	return ActionPick1 + Action(i)
}

// PickIndex returns the pattern index for a direct-selection action.
func (a Action) PickIndex() (int, bool) {
	if a < ActionPick1 || a > ActionPick9 {
		return 0, false
	}
	return int(a - ActionPick1), true
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if i, ok := a.PickIndex(); ok {
		return "Pick" + string(rune('1'+i))
	}

	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionApply:
		return "Apply"
	case ActionNextPattern:
		return "NextPattern"
	case ActionPrevPattern:
		return "PrevPattern"
	case ActionUndo:
		return "Undo"
	case ActionRestart:
		return "Restart"
	case ActionNext:
		return "Next"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Pointer is the mouse state reported during a frame, in screen cells.
type Pointer struct {
	X, Y   int
	Active bool // Pointer moved or clicked this frame
	Click  bool // Left button released this frame
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer holds the latest mouse position, if any.
	Pointer Pointer
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf builds a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetPointer records a mouse position. A click sticks for the rest of the
// frame even if later motion is reported.
func (f *InputFrame) SetPointer(x, y int, click bool) {
	f.Pointer.X = x
	f.Pointer.Y = y
	f.Pointer.Active = true
	f.Pointer.Click = f.Pointer.Click || click
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Pick returns the pattern index of a direct-selection action in this frame.
// With several set, the lowest index wins.
func (f InputFrame) Pick() (int, bool) {
	for i := 0; i < 9; i++ {
		if f.Has(PickAction(i)) {
			return i, true
		}
	}
	return 0, false
}

// Empty reports whether no action or pointer event is set.
func (f InputFrame) Empty() bool {
	if f.Pointer.Active {
		return false
	}
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = Pointer{}
}
