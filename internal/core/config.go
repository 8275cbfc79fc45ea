package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TicksToMillis converts a tick count to milliseconds at the given rate.
func TicksToMillis(ticks, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return ticks * 1000 / tickRate
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level     int  // 0-based level index in the pack
	Moves     int  // Valid clicks on the current board
	ElapsedMS int  // Unpaused play time on this level
	Cleared   bool // Every tile is off
	Paused    bool
	Finished  bool // Last level of the pack cleared
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState

	// JustCleared is set on the tick the board became clear. The platform
	// persists progress when it sees it.
	JustCleared bool

	// NewBest is set together with JustCleared when the clear time beat the
	// previous record.
	NewBest bool
}
