package systems

import (
	"slices"

	"github.com/pthm-cable/neurosoup/components"
)

// SpatialGrid buckets boxes into fixed cells so overlap candidates can be
// found without testing every pair. A box is listed in every cell it covers.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]int // collider indices per cell

	// seen stamps dedupe indices listed in several cells.
	seen  []uint32
	stamp uint32
}

// NewSpatialGrid creates a grid covering a square arena of the given size.
func NewSpatialGrid(arenaSize, cellSize float32) *SpatialGrid {
	cols := int(arenaSize/cellSize) + 1
	cells := make([][]int, cols*cols)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     cols,
		cells:    cells,
	}
}

// Reset empties the grid and prepares it for n indices.
func (g *SpatialGrid) Reset(n int) {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	if cap(g.seen) < n {
		g.seen = make([]uint32, n)
		g.stamp = 0
	}
	g.seen = g.seen[:n]
}

// Insert lists idx in every cell r covers. Inserting the same index again
// with a larger box is how growth is recorded.
func (g *SpatialGrid) Insert(idx int, r components.Rect) {
	c0, r0, c1, r1 := g.cellRange(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cell := row*g.cols + col
			if n := len(g.cells[cell]); n > 0 && g.cells[cell][n-1] == idx {
				continue
			}
			g.cells[cell] = append(g.cells[cell], idx)
		}
	}
}

// QueryInto appends to dst, in ascending order, every index greater than
// after that shares a cell with r. The result is a superset of the boxes
// overlapping r.
func (g *SpatialGrid) QueryInto(dst []int, r components.Rect, after int) []int {
	g.stamp++
	if g.stamp == 0 {
		clear(g.seen)
		g.stamp = 1
	}

	start := len(dst)
	c0, r0, c1, r1 := g.cellRange(r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			for _, idx := range g.cells[row*g.cols+col] {
				if idx <= after || g.seen[idx] == g.stamp {
					continue
				}
				g.seen[idx] = g.stamp
				dst = append(dst, idx)
			}
		}
	}
	slices.Sort(dst[start:])
	return dst
}

// cellRange returns the inclusive cell span of r, clamped to the grid.
func (g *SpatialGrid) cellRange(r components.Rect) (c0, r0, c1, r1 int) {
	c0 = g.clampCol(int(r.X / g.cellSize))
	c1 = g.clampCol(int((r.X + r.W) / g.cellSize))
	r0 = g.clampRow(int(r.Y / g.cellSize))
	r1 = g.clampRow(int((r.Y + r.H) / g.cellSize))
	return
}

func (g *SpatialGrid) clampCol(c int) int {
	return min(max(c, 0), g.cols-1)
}

func (g *SpatialGrid) clampRow(r int) int {
	return min(max(r, 0), g.rows-1)
}
