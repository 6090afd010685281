package world

import "sort"

// Cell is a single maze position. Parent points along the cell's
// spanning-tree edge; it is DirNone only for the root.
type Cell struct {
	Parent  Direction
	vendors []string // sorted, unique
}

// Vendors returns a copy of the vendor names held at the cell, sorted.
func (c *Cell) Vendors() []string {
	out := make([]string, len(c.vendors))
	copy(out, c.vendors)
	return out
}

// HasVendor reports whether name trades at this cell.
func (c *Cell) HasVendor(name string) bool {
	i := sort.SearchStrings(c.vendors, name)
	return i < len(c.vendors) && c.vendors[i] == name
}

// addVendor inserts name keeping the slice sorted. Duplicates are ignored.
func (c *Cell) addVendor(name string) {
	i := sort.SearchStrings(c.vendors, name)
	if i < len(c.vendors) && c.vendors[i] == name {
		return
	}
	c.vendors = append(c.vendors, "")
	copy(c.vendors[i+1:], c.vendors[i:])
	c.vendors[i] = name
}
