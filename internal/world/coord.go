package world

// Direction is one of the four cardinal moves, or DirNone.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
	DirUp
	DirDown
)

// AllDirections lists the cardinal directions in a fixed order.
// Random choices over directions index into this slice so a seeded
// source always picks the same sequence.
var AllDirections = []Direction{DirLeft, DirRight, DirUp, DirDown}

// Delta returns the row/column offset of the direction.
func (d Direction) Delta() Coord {
	switch d {
	case DirLeft:
		return Coord{Row: 0, Col: -1}
	case DirRight:
		return Coord{Row: 0, Col: 1}
	case DirUp:
		return Coord{Row: -1, Col: 0}
	case DirDown:
		return Coord{Row: 1, Col: 0}
	default:
		return Coord{}
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	default:
		return DirNone
	}
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "none"
	}
}

// Coord is a (row, column) cell position.
type Coord struct {
	Row, Col int
}

// InvalidCoord is never a cell of any maze.
var InvalidCoord = Coord{Row: -1, Col: -1}

// Add returns the coordinate offset by other.
func (c Coord) Add(other Coord) Coord {
	return Coord{Row: c.Row + other.Row, Col: c.Col + other.Col}
}

// Step returns the neighbouring coordinate in direction d.
func (c Coord) Step(d Direction) Coord {
	return c.Add(d.Delta())
}
