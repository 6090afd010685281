// Package game provides the main game loop and input handling.
package game

// State represents the current input mode.
type State int

const (
	// StateExplore is the default mode where movement keys walk the maze.
	StateExplore State = iota
	// StateTrade selects a vendor at the current cell and buys or sells.
	StateTrade
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateTrade:
		return "trade"
	default:
		return "unknown"
	}
}
