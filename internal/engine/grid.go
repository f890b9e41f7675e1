package engine

import (
	"math"

	"github.com/piwi3910/patterngen/internal/model"
)

// Neighbor scan radii in cells. The wrapping radius is wider because a
// collider near one tile edge can be the nearest periodic neighbor of a
// candidate near the opposite edge while sitting two rows or columns
// away in plain cell coordinates (the cell size rarely divides the tile
// dimension evenly). Both values are part of the reproducibility
// contract and are never re-derived.
const (
	finiteScanRadius = 1 // 3x3 block
	wrapScanRadius   = 2 // 5x5 block
)

// spatialGrid is the broad-phase index: a uniform bucket grid over the
// tile that maps cells to collider indices in the run's arena. The cell
// size is chosen so two colliders in non-adjacent cells cannot possibly
// touch. The grid stores indices, never pointers, so arena growth can
// never invalidate it.
type spatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	width    float64
	height   float64
	wrap     bool
	cells    [][]int
}

// newSpatialGrid builds a grid for the tile. cellSize should be
// max(2*maxBoundingRadius + minimumSpacing, 1); the constructor clamps
// it to at least 1.
func newSpatialGrid(width, height, cellSize float64, wrap bool) *spatialGrid {
	if cellSize < 1 {
		cellSize = 1
	}
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &spatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		width:    width,
		height:   height,
		wrap:     wrap,
		cells:    make([][]int, cols*rows),
	}
}

// cellIndex maps a point to its bucket. Wrapping mode uses a true
// mathematical modulo (always non-negative); finite mode clamps.
// Insertion and queries share this function, so every collider lands in
// exactly one bucket consistent with lookups.
func (g *spatialGrid) cellIndex(p model.Point2D) int {
	col := int(math.Floor(p.X / g.cellSize))
	row := int(math.Floor(p.Y / g.cellSize))
	if g.wrap {
		col = wrapIndex(col, g.cols)
		row = wrapIndex(row, g.rows)
	} else {
		col = clampIndex(col, g.cols)
		row = clampIndex(row, g.rows)
	}
	return row*g.cols + col
}

// insert registers a collider index under the cell containing p.
func (g *spatialGrid) insert(collider int, p model.Point2D) {
	idx := g.cellIndex(p)
	g.cells[idx] = append(g.cells[idx], collider)
}

// neighbors appends the collider indices of all cells within the scan
// radius of p to out and returns it. With wrapping on a small grid the
// modulo can revisit a cell, so visited buckets are deduplicated.
func (g *spatialGrid) neighbors(p model.Point2D, out []int) []int {
	radius := finiteScanRadius
	if g.wrap {
		radius = wrapScanRadius
	}

	col := int(math.Floor(p.X / g.cellSize))
	row := int(math.Floor(p.Y / g.cellSize))

	var visited [(2*wrapScanRadius + 1) * (2*wrapScanRadius + 1)]int
	seen := 0

	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			r := row + dr
			c := col + dc
			if g.wrap {
				r = wrapIndex(r, g.rows)
				c = wrapIndex(c, g.cols)
			} else if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
				continue
			}
			idx := r*g.cols + c

			dup := false
			for i := 0; i < seen; i++ {
				if visited[i] == idx {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			visited[seen] = idx
			seen++

			out = append(out, g.cells[idx]...)
		}
	}
	return out
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
