package poissondisc

import (
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/poissondisc/internal/voronoi"
)

// Cell is the part of the sampled area closer to Site than to any other sample.
type Cell struct {
	Site  Point
	Edges [][2]Point
	Area  float64
}

// Diagram is the voronoi diagram of a set of samples, clipped to the sampled area.
type Diagram struct {
	vg voronoi.Diagram
}

// Voronoi computes the voronoi diagram with the samples as sites.
// Cost grows quadratically with the number of samples; fine for the
// thousands, not the millions.
func (s *Samples) Voronoi() *Diagram {
	coords := make([]model2d.Coord, len(s.Points))
	for i, p := range s.Points {
		coords[i] = model2d.Coord{X: p.X, Y: p.Y}
	}

	vg := voronoi.Cells(model2d.Coord{}, model2d.Coord{X: s.Width, Y: s.Height}, coords)
	vg.Repair(1e-8)

	return &Diagram{vg: vg}
}

// Cells returns the cells in the same order as the samples they belong to.
func (d *Diagram) Cells() []*Cell {
	cells := make([]*Cell, len(d.vg))
	for i, vc := range d.vg {
		c := &Cell{
			Site:  Point{X: vc.Center.X, Y: vc.Center.Y},
			Edges: make([][2]Point, len(vc.Edges)),
			Area:  vc.Area(),
		}
		for j, e := range vc.Edges {
			c.Edges[j] = [2]Point{{X: e[0].X, Y: e[0].Y}, {X: e[1].X, Y: e[1].Y}}
		}
		cells[i] = c
	}
	return cells
}

// SavePNG renders the diagram, scale pixels per unit.
func (d *Diagram) SavePNG(fpath string, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	return d.vg.Render(fpath, scale)
}
