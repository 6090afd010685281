package session

import (
	"github.com/samdwyer/mazebroker/internal/market"
	"github.com/samdwyer/mazebroker/internal/world"
)

// FarCell holds the vendors of the neighbouring cell in one direction.
// It is known only when that neighbour is open.
type FarCell struct {
	Known   bool
	Vendors []string
}

// View is everything a front end needs to draw after an action.
type View struct {
	Position world.Coord
	// Near is the 3x3 neighbourhood indexed [dRow+1][dCol+1]. Diagonals are
	// always wall and the centre is the traveler.
	Near      [3][3]world.Tile
	Far       map[world.Direction]FarCell
	Here      []string          // vendors at the current cell
	Names     map[string]string // display names of the vendors in Here
	Cash      int64
	Holdings  []market.Holding
	Quotes    []market.Quote
	Objective market.Objective
	Completed int
	Moves     int
}

// View snapshots the current session state.
func (s *Session) View() View {
	pos := s.Traveler.Position
	adj := s.Maze.Adjacent(pos)

	v := View{
		Position:  pos,
		Far:       make(map[world.Direction]FarCell, len(world.AllDirections)),
		Here:      s.Traveler.VendorsHere(),
		Cash:      s.Portfolio.Cash(),
		Holdings:  s.Portfolio.Holdings(),
		Quotes:    s.Market.Quotes(),
		Objective: s.Task.Current(),
		Completed: s.Task.Completed(),
		Moves:     s.moves,
	}
	if len(v.Here) > 0 {
		v.Names = make(map[string]string, len(v.Here))
		for _, sym := range v.Here {
			if n, ok := s.names[sym]; ok {
				v.Names[sym] = n
			}
		}
	}

	for r := range v.Near {
		for c := range v.Near[r] {
			v.Near[r][c] = world.TileWall
		}
	}
	v.Near[1][1] = world.TilePlayer

	for _, d := range world.AllDirections {
		delta := d.Delta()
		next, open := adj[d]
		if !open {
			v.Far[d] = FarCell{}
			continue
		}
		v.Near[delta.Row+1][delta.Col+1] = world.TileOpen
		v.Far[d] = FarCell{Known: true, Vendors: s.Maze.Vendors(next)}
	}
	return v
}
