// Package world provides maze generation and map queries.
package world

// Tile represents a single glyph in a rendered maze.
type Tile rune

const (
	// TileWall represents an impassable wall.
	TileWall Tile = '#'
	// TileOpen represents an open passage or an empty cell.
	TileOpen Tile = '.'
	// TileVendor marks a cell holding at least one vendor.
	TileVendor Tile = '$'
	// TileUnknown is used for cells the player cannot see.
	TileUnknown Tile = ' '
	// TilePlayer marks the traveler's own cell.
	TilePlayer Tile = '@'
)

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
