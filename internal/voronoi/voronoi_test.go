package voronoi

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model2d"
)

func TestCellsSingleSite(t *testing.T) {
	d := Cells(model2d.Coord{}, model2d.Coord{X: 4, Y: 2}, []model2d.Coord{{X: 1, Y: 1}})
	require.Len(t, d, 1)
	assert.Equal(t, model2d.Coord{X: 1, Y: 1}, d[0].Center)
	assert.Len(t, d[0].Edges, 4)
	assert.InDelta(t, 8.0, d[0].Area(), 1e-9)
}

func TestCellsSplitEvenly(t *testing.T) {
	sites := []model2d.Coord{{X: 1, Y: 1}, {X: 3, Y: 1}}
	d := Cells(model2d.Coord{}, model2d.Coord{X: 4, Y: 2}, sites)
	d.Repair(1e-8)

	require.Len(t, d, 2)
	for _, c := range d {
		assert.InDelta(t, 4.0, c.Area(), 1e-9)
		for _, e := range c.Edges {
			for _, p := range e {
				// nothing crosses the bisector x = 2
				if c.Center.X < 2 {
					assert.LessOrEqual(t, p.X, 2+1e-9)
				} else {
					assert.GreaterOrEqual(t, p.X, 2-1e-9)
				}
			}
		}
	}
}

func TestRepairCoversArea(t *testing.T) {
	sites := []model2d.Coord{
		{X: 1, Y: 1}, {X: 4, Y: 1.5}, {X: 8, Y: 0.5},
		{X: 2, Y: 5}, {X: 6, Y: 4}, {X: 9, Y: 6},
		{X: 0.5, Y: 9}, {X: 5, Y: 8}, {X: 8.5, Y: 9.5},
	}
	d := Cells(model2d.Coord{}, model2d.Coord{X: 10, Y: 10}, sites)
	d.Repair(1e-8)

	total := 0.0
	for _, c := range d {
		assert.NotEmpty(t, c.Edges)
		total += c.Area()
	}
	assert.InDelta(t, 100.0, total, 1e-6)
	assert.NotEmpty(t, d.Vertices())
}

func TestRender(t *testing.T) {
	sites := []model2d.Coord{{X: 2, Y: 2}, {X: 7, Y: 3}, {X: 4, Y: 8}}
	d := Cells(model2d.Coord{}, model2d.Coord{X: 10, Y: 10}, sites)
	d.Repair(1e-8)

	fpath := filepath.Join(t.TempDir(), "voronoi.png")
	require.NoError(t, d.Render(fpath, 20))

	info, err := os.Stat(fpath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.False(t, math.IsNaN(d[0].Area()))
}

func TestVerticesDistinct(t *testing.T) {
	d := Cells(model2d.Coord{}, model2d.Coord{X: 4, Y: 2}, []model2d.Coord{{X: 1, Y: 1}, {X: 3, Y: 1}})
	d.Repair(1e-8)

	got := d.Vertices()
	seen := map[model2d.Coord]bool{}
	for _, v := range got {
		assert.False(t, seen[v], "vertex %v repeated", v)
		seen[v] = true
	}
	// the rectangle's four corners plus the two ends of the shared edge
	assert.Len(t, got, 6)
}

func TestCellsDuplicateSite(t *testing.T) {
	sites := []model2d.Coord{{X: 1, Y: 1}, {X: 1, Y: 1}}
	d := Cells(model2d.Coord{}, model2d.Coord{X: 2, Y: 2}, sites)
	require.Len(t, d, 2)
	for _, c := range d {
		assert.InDelta(t, 4.0, c.Area(), 1e-9)
	}
}

func TestWithin(t *testing.T) {
	coords := []model2d.Coord{
		{X: 0, Y: 0}, {X: 1e-9, Y: 0}, {X: 0, Y: 2e-9},
		{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 5, Y: 5},
	}
	tree := model2d.NewCoordTree(coords)

	got := within(tree, model2d.Coord{}, 1e-8)
	assert.ElementsMatch(t, coords[:3], got)
	assert.Equal(t, model2d.Coord{}, got[0])

	assert.Len(t, within(tree, model2d.Coord{}, 10), len(coords))
	assert.Empty(t, within(tree, model2d.Coord{X: 3, Y: -3}, 0.5))
}
