package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazebroker/internal/telemetry"
)

const (
	// Default maze dimensions
	DefaultWidth  = 6
	DefaultHeight = 6

	// shuffleFactor root-shift steps are taken per cell when generating.
	shuffleFactor = 5
)

var (
	// ErrInvalidDimensions is returned for a maze with no cells.
	ErrInvalidDimensions = errors.New("maze dimensions must be at least 1x1")
	// ErrBrokenTree is returned when the parent pointers do not form a
	// spanning tree rooted at the recorded root.
	ErrBrokenTree = errors.New("maze parent pointers do not form a spanning tree")
)

// Maze is a width x height grid whose cells are linked into a spanning tree
// by per-cell parent directions. Two cells are adjacent (no wall between
// them) iff one is the parent of the other.
type Maze struct {
	Width  int
	Height int
	cells  []Cell // row-major
	root   Coord
	rng    *rand.Rand
}

// NewMaze builds a maze and randomises its shape with shuffleFactor
// root-shift steps per cell.
func NewMaze(ctx context.Context, width, height int, rng *rand.Rand) (*Maze, error) {
	m, err := newRasterMaze(width, height, rng)
	if err != nil {
		return nil, err
	}
	m.generate(ctx)
	return m, nil
}

// newRasterMaze links every cell to its left neighbour, or to the cell above
// when in column 0, leaving (0,0) as the root.
func newRasterMaze(width, height int, rng *rand.Rand) (*Maze, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m := &Maze{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
		root:   InvalidCoord,
		rng:    rng,
	}
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			cell := &m.cells[r*width+c]
			switch {
			case c > 0:
				cell.Parent = DirLeft
			case r > 0:
				cell.Parent = DirUp
			default:
				cell.Parent = DirNone
				m.root = Coord{Row: r, Col: c}
			}
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// generate performs the fixed shuffle budget of root-shift steps.
func (m *Maze) generate(ctx context.Context) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "maze.generate")
	defer span.End()

	startTime := time.Now()

	steps := 0
	// A single cell has nowhere to move its root.
	if len(m.cells) > 1 {
		steps = shuffleFactor * len(m.cells)
		for i := 0; i < steps; i++ {
			m.stepRoot()
		}
	}

	span.SetAttributes(
		attribute.Int("maze.width", m.Width),
		attribute.Int("maze.height", m.Height),
		attribute.Int("maze.shift_steps", steps),
		attribute.Int64("maze.generation_us", time.Since(startTime).Microseconds()),
	)
}

// stepRoot moves the root one cell in a random valid direction. The old root
// becomes a child of the new one, which keeps the tree spanning.
// Requires more than one cell.
func (m *Maze) stepRoot() {
	var (
		dir     Direction
		newRoot = InvalidCoord
	)
	for !m.InBounds(newRoot) {
		dir = AllDirections[m.rng.Intn(len(AllDirections))]
		newRoot = m.root.Step(dir)
	}
	m.cell(m.root).Parent = dir
	m.cell(newRoot).Parent = DirNone
	m.root = newRoot
}

// Root returns the current root coordinate.
func (m *Maze) Root() Coord {
	return m.root
}

// InBounds reports whether c lies inside the grid.
func (m *Maze) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < m.Height && c.Col >= 0 && c.Col < m.Width
}

// Parent returns the stored parent direction of c, or DirNone when out of bounds.
func (m *Maze) Parent(c Coord) Direction {
	if !m.InBounds(c) {
		return DirNone
	}
	return m.cell(c).Parent
}

func (m *Maze) cell(c Coord) *Cell {
	return &m.cells[c.Row*m.Width+c.Col]
}

// isAdjacent reports whether a and b share a tree edge.
func (m *Maze) isAdjacent(a, b Coord) bool {
	if !m.InBounds(a) || !m.InBounds(b) {
		return false
	}
	return a.Step(m.cell(a).Parent) == b || b.Step(m.cell(b).Parent) == a
}

// Adjacent returns the open neighbours of c keyed by direction.
// The map is empty for an out-of-bounds coordinate.
func (m *Maze) Adjacent(c Coord) map[Direction]Coord {
	adj := make(map[Direction]Coord, len(AllDirections))
	for _, d := range AllDirections {
		n := c.Step(d)
		if m.isAdjacent(c, n) {
			adj[d] = n
		}
	}
	return adj
}

// IsOpen reports whether the traveler can go from c in direction d.
func (m *Maze) IsOpen(c Coord, d Direction) bool {
	return m.isAdjacent(c, c.Step(d))
}

// AddVendor places name at a uniformly random cell and returns that cell.
func (m *Maze) AddVendor(name string) Coord {
	pos := m.RandomPosition()
	m.cell(pos).addVendor(name)
	return pos
}

// Vendors returns the sorted vendor names at c.
func (m *Maze) Vendors(c Coord) []string {
	if !m.InBounds(c) {
		return nil
	}
	return m.cell(c).Vendors()
}

// HasVendor reports whether name trades at c.
func (m *Maze) HasVendor(c Coord, name string) bool {
	if !m.InBounds(c) {
		return false
	}
	return m.cell(c).HasVendor(name)
}

// RandomPosition returns a uniformly random cell coordinate.
func (m *Maze) RandomPosition() Coord {
	i := m.rng.Intn(len(m.cells))
	return Coord{Row: i / m.Width, Col: i % m.Width}
}

// Validate checks the construction invariants: the cell count matches the
// dimensions, exactly one cell is the root, and every cell's parent chain
// stays in bounds and reaches the root without a cycle.
func (m *Maze) Validate() error {
	if len(m.cells) != m.Width*m.Height {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrBrokenTree, len(m.cells), m.Width, m.Height)
	}
	if !m.InBounds(m.root) || m.cell(m.root).Parent != DirNone {
		return fmt.Errorf("%w: root %v has a parent", ErrBrokenTree, m.root)
	}

	roots := 0
	for i := range m.cells {
		if m.cells[i].Parent == DirNone {
			roots++
		}
	}
	if roots != 1 {
		return fmt.Errorf("%w: %d roots", ErrBrokenTree, roots)
	}

	const (
		unknown = iota
		visiting
		reaches
	)
	state := make([]uint8, len(m.cells))
	state[m.root.Row*m.Width+m.root.Col] = reaches

	for i := range m.cells {
		var path []int
		cur := Coord{Row: i / m.Width, Col: i % m.Width}
		for {
			idx := cur.Row*m.Width + cur.Col
			if state[idx] == reaches {
				break
			}
			if state[idx] == visiting {
				return fmt.Errorf("%w: cycle through %v", ErrBrokenTree, cur)
			}
			state[idx] = visiting
			path = append(path, idx)
			next := cur.Step(m.cells[idx].Parent)
			if !m.InBounds(next) {
				return fmt.Errorf("%w: %v points outside the grid", ErrBrokenTree, cur)
			}
			cur = next
		}
		for _, idx := range path {
			state[idx] = reaches
		}
	}
	return nil
}

// String renders the maze with two characters per cell (cell glyph and right
// wall) and two rows per maze row (cells and bottom walls), inside an outer wall.
func (m *Maze) String() string {
	var b strings.Builder
	wall := TileWall.Rune()
	open := TileOpen.Rune()

	b.WriteString(strings.Repeat(string(wall), 2*m.Width+1))
	b.WriteByte('\n')
	for r := 0; r < m.Height; r++ {
		b.WriteRune(wall)
		for c := 0; c < m.Width; c++ {
			pos := Coord{Row: r, Col: c}
			if len(m.cell(pos).vendors) > 0 {
				b.WriteRune(TileVendor.Rune())
			} else {
				b.WriteRune(open)
			}
			if m.IsOpen(pos, DirRight) {
				b.WriteRune(open)
			} else {
				b.WriteRune(wall)
			}
		}
		b.WriteByte('\n')
		b.WriteRune(wall)
		for c := 0; c < m.Width; c++ {
			if m.IsOpen(Coord{Row: r, Col: c}, DirDown) {
				b.WriteRune(open)
			} else {
				b.WriteRune(wall)
			}
			b.WriteRune(wall)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
