package core

// Game is the contract between a puzzle front end and the platform.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this game, used for storage keys.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame) StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *Screen)

	// State returns the current game state.
	State() GameState
}

// Resizer is implemented by games that can adapt to a new screen size
// without losing state.
type Resizer interface {
	Resize(w, h int)
}
