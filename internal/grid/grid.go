package grid

import (
	"iter"
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

var (
	// ErrCellOccupied is returned by Insert if the target cell already holds a point.
	// With a cell size of r/√2 this cannot happen for two points at least r apart.
	ErrCellOccupied = errors.New("grid cell already occupied")
)

// Grid is a uniform grid laid over [0,width) x [0,height) where each cell
// holds at most one point.
//
// Points are stored in a flat slice indexed col + row * cols. Whether a cell
// holds anything is tracked in a separate bitmap so that a legitimate point
// at the origin is never confused with an empty cell.
type Grid struct {
	cols     int
	rows     int
	cellSize float64

	cells    []r2.Point
	occupied bitmap.Bitmap
	count    int
}

// New returns an empty grid covering width x height with square cells of cellSize.
func New(width, height, cellSize float64) *Grid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &Grid{
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		cells:    make([]r2.Point, cols*rows),
		occupied: bitmap.New(cols * rows),
	}
}

// Cols returns the number of columns (x axis)
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the number of rows (y axis)
func (g *Grid) Rows() int {
	return g.rows
}

// CellSize returns the side length of a cell
func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Len returns how many cells are occupied
func (g *Grid) Len() int {
	return g.count
}

// CellFor returns the (col, row) of the cell containing p, clamped to the grid.
// Clamping only matters for points sitting a rounding error away from the
// far edges; callers must not pass points outside the covered area.
func (g *Grid) CellFor(p r2.Point) (int, int) {
	col := clamp(int(math.Floor(p.X/g.cellSize)), 0, g.cols-1)
	row := clamp(int(math.Floor(p.Y/g.cellSize)), 0, g.rows-1)
	return col, row
}

// Insert stores p in its cell.
func (g *Grid) Insert(p r2.Point) error {
	col, row := g.CellFor(p)
	i := g.index(col, row)
	if g.occupied.Get(i) {
		return errors.Wrapf(ErrCellOccupied, "(%d,%d) holds %v, cannot insert %v", col, row, g.cells[i], p)
	}
	g.cells[i] = p
	g.occupied.Set(i, true)
	g.count++
	return nil
}

// At returns the point held by cell (col, row), if any.
func (g *Grid) At(col, row int) (r2.Point, bool) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return r2.Point{}, false
	}
	i := g.index(col, row)
	if !g.occupied.Get(i) {
		return r2.Point{}, false
	}
	return g.cells[i], true
}

// Neighbours yields every stored point whose cell lies within n cells of the
// cell containing p (a (2n+1) x (2n+1) window clipped to the grid).
func (g *Grid) Neighbours(p r2.Point, n int) iter.Seq[r2.Point] {
	return func(yield func(r2.Point) bool) {
		col, row := g.CellFor(p)

		xmin := maxint(col-n, 0)
		ymin := maxint(row-n, 0)
		xmax := minint(col+n, g.cols-1)
		ymax := minint(row+n, g.rows-1)

		for y := ymin; y <= ymax; y++ {
			for x := xmin; x <= xmax; x++ {
				i := g.index(x, y)
				if !g.occupied.Get(i) {
					continue
				}
				if !yield(g.cells[i]) {
					return
				}
			}
		}
	}
}

// index flattens (col, row)
func (g *Grid) index(col, row int) int {
	return col + row*g.cols
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxint(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minint(a, b int) int {
	if a < b {
		return a
	}
	return b
}
