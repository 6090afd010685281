package session

import (
	"testing"

	"github.com/samdwyer/mazebroker/internal/world"
)

func TestViewNeighbourhood(t *testing.T) {
	s := newTestSession(t, defaultConfig(17))

	for step := 0; step < 100; step++ {
		v := s.View()
		adj := s.Maze.Adjacent(v.Position)

		if v.Near[1][1] != world.TilePlayer {
			t.Fatalf("centre = %q, want player", v.Near[1][1])
		}
		for _, corner := range [][2]int{{0, 0}, {0, 2}, {2, 0}, {2, 2}} {
			if v.Near[corner[0]][corner[1]] != world.TileWall {
				t.Fatalf("corner %v = %q, want wall", corner, v.Near[corner[0]][corner[1]])
			}
		}
		for _, d := range world.AllDirections {
			delta := d.Delta()
			next, open := adj[d]
			tile := v.Near[delta.Row+1][delta.Col+1]
			if open != (tile == world.TileOpen) {
				t.Fatalf("at %v %v open=%v but tile %q", v.Position, d, open, tile)
			}
			far := v.Far[d]
			if far.Known != open {
				t.Fatalf("at %v far %v known=%v, want %v", v.Position, d, far.Known, open)
			}
			if open && len(far.Vendors) != len(s.Maze.Vendors(next)) {
				t.Fatalf("far %v vendors = %v, want %v", d, far.Vendors, s.Maze.Vendors(next))
			}
		}

		// Wander using the first open direction in fixed order.
		for _, d := range world.AllDirections {
			if _, ok := adj[d]; ok && (step+int(d))%2 == 0 {
				s.Traveler.MaybeMove(d)
				break
			}
		}
	}
}

func TestViewPortfolioState(t *testing.T) {
	s := newTestSession(t, defaultConfig(4))
	v := s.View()

	if v.Cash != 100000 {
		t.Errorf("Cash = %d, want 100000", v.Cash)
	}
	if len(v.Holdings) != 4 || len(v.Quotes) != 4 {
		t.Errorf("Holdings/Quotes = %d/%d, want 4/4", len(v.Holdings), len(v.Quotes))
	}
	if v.Objective != s.Task.Current() {
		t.Errorf("Objective = %v, want %v", v.Objective, s.Task.Current())
	}
	if v.Moves != 0 || v.Completed != 0 {
		t.Errorf("Moves/Completed = %d/%d, want 0/0", v.Moves, v.Completed)
	}
}

func TestViewNames(t *testing.T) {
	cfg := defaultConfig(8)
	cfg.Width, cfg.Height = 1, 1
	cfg.AssetNames = map[string]string{"FOO": "Foo Holdings", "ZZZ": "Not Listed"}
	s := newTestSession(t, cfg)

	// The session keeps its own copy.
	cfg.AssetNames["FOO"] = "Changed"

	v := s.View()
	if len(v.Names) != 1 || v.Names["FOO"] != "Foo Holdings" {
		t.Errorf("Names = %v, want only FOO named", v.Names)
	}
}

func TestViewSingleCell(t *testing.T) {
	cfg := defaultConfig(8)
	cfg.Width, cfg.Height = 1, 1
	s := newTestSession(t, cfg)
	v := s.View()

	if len(v.Here) != 4 {
		t.Errorf("Here = %v, want all four vendors", v.Here)
	}
	if v.Names != nil {
		t.Errorf("Names = %v, want nil without configured names", v.Names)
	}
	for _, d := range world.AllDirections {
		if v.Far[d].Known {
			t.Errorf("far %v known in a 1x1 maze", d)
		}
	}
}
