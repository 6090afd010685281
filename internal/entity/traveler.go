// Package entity provides the player's traveler.
package entity

import "github.com/samdwyer/mazebroker/internal/world"

// Traveler is the player's position inside a maze.
type Traveler struct {
	Position world.Coord
	maze     *world.Maze
}

// NewTraveler places a traveler at a uniformly random cell of the maze.
func NewTraveler(maze *world.Maze) *Traveler {
	return &Traveler{
		Position: maze.RandomPosition(),
		maze:     maze,
	}
}

// MaybeMove moves one cell in direction d if no wall is in the way.
// A blocked move leaves the position unchanged and returns false.
func (t *Traveler) MaybeMove(d world.Direction) bool {
	next, ok := t.maze.Adjacent(t.Position)[d]
	if !ok {
		return false
	}
	t.Position = next
	return true
}

// CanTrade reports whether a vendor for name is at the current cell.
func (t *Traveler) CanTrade(name string) bool {
	return t.maze.HasVendor(t.Position, name)
}

// VendorsHere returns the vendors at the current cell, sorted.
func (t *Traveler) VendorsHere() []string {
	return t.maze.Vendors(t.Position)
}
