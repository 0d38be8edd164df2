package grid

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/golang/geo/r2"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name          string
		width, height float64
		cellSize      float64
		cols, rows    int
	}{
		{"exact fit", 10, 5, 1, 10, 5},
		{"rounds up", 10, 10, 1 / math.Sqrt2, 15, 15},
		{"cell larger than area", 1, 1, 4, 1, 1},
		{"narrow", 0.5, 20, 2, 1, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := New(tc.width, tc.height, tc.cellSize)
			assert.Equal(t, tc.cols, g.Cols())
			assert.Equal(t, tc.rows, g.Rows())
			assert.Equal(t, tc.cellSize, g.CellSize())
			assert.Equal(t, 0, g.Len())

			for row := 0; row < g.Rows(); row++ {
				for col := 0; col < g.Cols(); col++ {
					_, ok := g.At(col, row)
					assert.False(t, ok)
				}
			}
		})
	}
}

func TestCellFor(t *testing.T) {
	g := New(10, 10, 2)

	col, row := g.CellFor(r2.Point{X: 0, Y: 0})
	assert.Equal(t, [2]int{0, 0}, [2]int{col, row})

	col, row = g.CellFor(r2.Point{X: 3.9, Y: 4})
	assert.Equal(t, [2]int{1, 2}, [2]int{col, row})

	// a hair under the far edge still lands in the last cell
	col, row = g.CellFor(r2.Point{X: math.Nextafter(10, 0), Y: 9.999})
	assert.Equal(t, [2]int{4, 4}, [2]int{col, row})

	// the far edge itself is clamped rather than indexing past the grid
	col, row = g.CellFor(r2.Point{X: 10, Y: 10})
	assert.Equal(t, [2]int{4, 4}, [2]int{col, row})
}

func TestInsertOrigin(t *testing.T) {
	g := New(4, 4, 1)

	_, ok := g.At(0, 0)
	require.False(t, ok)

	require.NoError(t, g.Insert(r2.Point{}))

	p, ok := g.At(0, 0)
	require.True(t, ok)
	assert.Equal(t, r2.Point{}, p)
	assert.Equal(t, 1, g.Len())

	got := slices.Collect(g.Neighbours(r2.Point{X: 1.5, Y: 1.5}, 2))
	assert.Equal(t, []r2.Point{{}}, got)
}

func TestInsertOccupied(t *testing.T) {
	g := New(4, 4, 1)

	require.NoError(t, g.Insert(r2.Point{X: 2.1, Y: 3.2}))
	err := g.Insert(r2.Point{X: 2.9, Y: 3.9})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCellOccupied))
	assert.Equal(t, ErrCellOccupied, pkgerrors.Cause(err))
	assert.Contains(t, err.Error(), "(2,3)")

	// the original occupant is untouched
	p, ok := g.At(2, 3)
	require.True(t, ok)
	assert.Equal(t, r2.Point{X: 2.1, Y: 3.2}, p)
	assert.Equal(t, 1, g.Len())
}

func TestNeighbours(t *testing.T) {
	g := New(10, 10, 1)

	pts := []r2.Point{
		{X: 0.5, Y: 0.5}, // (0,0)
		{X: 2.5, Y: 2.5}, // (2,2)
		{X: 4.5, Y: 4.5}, // (4,4)
		{X: 5.5, Y: 5.5}, // (5,5)
		{X: 9.5, Y: 9.5}, // (9,9)
	}
	for _, p := range pts {
		require.NoError(t, g.Insert(p))
	}

	t.Run("window clipped at the corner", func(t *testing.T) {
		got := slices.Collect(g.Neighbours(r2.Point{X: 0.1, Y: 0.1}, 2))
		assert.ElementsMatch(t, []r2.Point{{X: 0.5, Y: 0.5}, {X: 2.5, Y: 2.5}}, got)
	})

	t.Run("5x5 window in the middle", func(t *testing.T) {
		got := slices.Collect(g.Neighbours(r2.Point{X: 3.5, Y: 3.5}, 2))
		assert.ElementsMatch(t, []r2.Point{{X: 2.5, Y: 2.5}, {X: 4.5, Y: 4.5}, {X: 5.5, Y: 5.5}}, got)
	})

	t.Run("nothing nearby", func(t *testing.T) {
		got := slices.Collect(g.Neighbours(r2.Point{X: 8.5, Y: 1.5}, 2))
		assert.Empty(t, got)
	})

	t.Run("stops early", func(t *testing.T) {
		seen := 0
		for range g.Neighbours(r2.Point{X: 3.5, Y: 3.5}, 2) {
			seen++
			break
		}
		assert.Equal(t, 1, seen)
	})
}
