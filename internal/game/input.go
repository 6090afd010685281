package game

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazebroker/internal/world"
)

// Action is a single player intent decoded from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionBack // leave trade mode, or quit from explore
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionToggleTrade
	ActionBuy
	ActionSell
)

// keyAction maps a key event to an action. In trade mode the controller
// reads the vertical moves as vendor selection instead.
func keyAction(key tcell.Key, ch rune) Action {
	switch key {
	case tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyEscape:
		return ActionBack
	case tcell.KeyUp:
		return ActionMoveUp
	case tcell.KeyDown:
		return ActionMoveDown
	case tcell.KeyLeft:
		return ActionMoveLeft
	case tcell.KeyRight:
		return ActionMoveRight
	case tcell.KeyRune:
		switch ch {
		case 'q', 'Q':
			return ActionQuit
		case 'w', 'W':
			return ActionMoveUp
		case 's', 'S':
			return ActionMoveDown
		case 'a', 'A':
			return ActionMoveLeft
		case 'd', 'D':
			return ActionMoveRight
		case 't', 'T':
			return ActionToggleTrade
		case 'b', 'B':
			return ActionBuy
		case 'x', 'X':
			return ActionSell
		}
	}
	return ActionNone
}

// direction returns the maze direction of a move action.
func (a Action) direction() (world.Direction, bool) {
	switch a {
	case ActionMoveUp:
		return world.DirUp, true
	case ActionMoveDown:
		return world.DirDown, true
	case ActionMoveLeft:
		return world.DirLeft, true
	case ActionMoveRight:
		return world.DirRight, true
	default:
		return world.DirNone, false
	}
}
