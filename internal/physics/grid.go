package physics

import "math"

// SpatialGrid is a uniform hash grid for broad-phase overlap detection in an
// unbounded world. Items are inserted by bounds and index, then candidate
// items for a query box are collected from the cells the box covers.
//
// Cell size should be on the order of the largest shape so that each item
// lands in a handful of cells.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cells       map[cellKey][]int

	// Reused between queries to deduplicate items spanning several cells
	seen   map[int]struct{}
	result []int
}

type cellKey struct {
	col, row int
}

// NewSpatialGrid creates an empty grid with the given cell size.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cells:       make(map[cellKey][]int),
		seen:        make(map[int]struct{}),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for k, items := range g.cells {
		g.cells[k] = items[:0]
	}
}

// Insert adds an item (identified by index) covering the given bounds.
func (g *SpatialGrid) Insert(box AABB, index int) {
	c0, r0 := g.posToCell(box.Min)
	c1, r1 := g.posToCell(box.Max)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			k := cellKey{col: c, row: r}
			g.cells[k] = append(g.cells[k], index)
		}
	}
}

// Query returns the indices of all items sharing a cell with box, each once.
// The returned slice is only valid until the next call to Query.
func (g *SpatialGrid) Query(box AABB) []int {
	clear(g.seen)
	g.result = g.result[:0]

	c0, r0 := g.posToCell(box.Min)
	c1, r1 := g.posToCell(box.Max)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			for _, idx := range g.cells[cellKey{col: c, row: r}] {
				if _, dup := g.seen[idx]; dup {
					continue
				}
				g.seen[idx] = struct{}{}
				g.result = append(g.result, idx)
			}
		}
	}
	return g.result
}

// posToCell converts world coordinates to grid cell coordinates.
func (g *SpatialGrid) posToCell(p Vec2) (col, row int) {
	return int(math.Floor(p.X * g.invCellSize)), int(math.Floor(p.Y * g.invCellSize))
}
