package entity

import (
	"context"
	"math/rand"
	"testing"

	"github.com/samdwyer/mazebroker/internal/world"
)

func newTestMaze(t *testing.T, width, height int, seed int64) *world.Maze {
	t.Helper()
	m, err := world.NewMaze(context.Background(), width, height, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewMaze() error = %v", err)
	}
	return m
}

func TestNewTravelerInBounds(t *testing.T) {
	m := newTestMaze(t, 6, 6, 42)
	for i := 0; i < 50; i++ {
		tr := NewTraveler(m)
		if !m.InBounds(tr.Position) {
			t.Fatalf("NewTraveler() position %v out of bounds", tr.Position)
		}
	}
}

func TestTravelerMaybeMove(t *testing.T) {
	m := newTestMaze(t, 6, 6, 42)
	tr := NewTraveler(m)

	for step := 0; step < 200; step++ {
		before := tr.Position
		adj := m.Adjacent(before)
		for _, d := range world.AllDirections {
			next, open := adj[d]
			tr.Position = before
			moved := tr.MaybeMove(d)
			if moved != open {
				t.Fatalf("MaybeMove(%v) from %v = %v, want %v", d, before, moved, open)
			}
			if open && tr.Position != next {
				t.Fatalf("MaybeMove(%v) from %v landed at %v, want %v", d, before, tr.Position, next)
			}
			if !open && tr.Position != before {
				t.Fatalf("blocked MaybeMove(%v) changed position %v -> %v", d, before, tr.Position)
			}
		}
		// Walk on through a random open direction.
		tr.Position = before
		for _, next := range adj {
			tr.Position = next
			break
		}
	}
}

func TestTravelerSingleCell(t *testing.T) {
	m := newTestMaze(t, 1, 1, 1)
	m.AddVendor("FOO")
	tr := NewTraveler(m)

	for _, d := range world.AllDirections {
		if tr.MaybeMove(d) {
			t.Errorf("MaybeMove(%v) in a 1x1 maze = true, want false", d)
		}
	}
	if !tr.CanTrade("FOO") {
		t.Error("CanTrade(FOO) = false, want true")
	}
	if tr.CanTrade("BAR") {
		t.Error("CanTrade(BAR) = true, want false")
	}
	if got := tr.VendorsHere(); len(got) != 1 || got[0] != "FOO" {
		t.Errorf("VendorsHere() = %v, want [FOO]", got)
	}
}
