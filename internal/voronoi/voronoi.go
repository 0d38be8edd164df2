package voronoi

import (
	"image/color"
	"math"
	"sort"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

// Voronoi cells over a clipped rectangle using model2d convex polytopes,
// after https://github.com/unixpickle/voronoi-glass/blob/main/voronoi.go

// Cell is the region of the plane closer to Center than to any other site.
type Cell struct {
	Center model2d.Coord
	Edges  []*model2d.Segment
}

// Area of the cell. Cells are convex & contain their centre so we sum the
// triangle fan about it.
func (c *Cell) Area() float64 {
	total := 0.0
	for _, e := range c.Edges {
		a := e[0].Sub(c.Center)
		b := e[1].Sub(c.Center)
		total += math.Abs(a.X*b.Y-a.Y*b.X) / 2
	}
	return total
}

// Diagram is a set of cells, one per site.
type Diagram []*Cell

// Cells computes one cell per site, each clipped to the rectangle min, max.
// Sites are expected inside the rectangle; for a sample set that is the
// sampled area, so the cells tile it with no gaps.
//
// A cell starts as the whole rectangle and is cut by the half plane nearer
// its site for every other site. O(n²) in the number of sites.
//
// Neighbouring cells compute their shared edge separately so the vertices
// can disagree in the last few bits; Repair merges them.
func Cells(min, max model2d.Coord, sites []model2d.Coord) Diagram {
	d := make(Diagram, len(sites))
	for i, site := range sites {
		region := model2d.NewConvexPolytopeRect(min, max)
		for j, other := range sites {
			if i == j || other == site {
				continue
			}
			region = append(region, bisector(site, other))
		}
		d[i] = &Cell{Center: site, Edges: region.Mesh().SegmentSlice()}
	}
	return d
}

// bisector is the half plane of points at least as close to site as to other.
func bisector(site, other model2d.Coord) *model2d.LinearConstraint {
	normal := other.Sub(site).Normalize()
	return &model2d.LinearConstraint{
		Normal: normal,
		Max:    normal.Dot(site.Mid(other)),
	}
}

// Vertices returns each distinct edge end point once, in the order first seen.
func (d Diagram) Vertices() []model2d.Coord {
	seen := map[model2d.Coord]struct{}{}
	var out []model2d.Coord
	for _, cell := range d {
		for _, e := range cell.Edges {
			for _, p := range e {
				if _, ok := seen[p]; ok {
					continue
				}
				seen[p] = struct{}{}
				out = append(out, p)
			}
		}
	}
	return out
}

// Repair merges nearly identical coordinates to make a well-connected graph,
// then orders each cell's edges end to start where possible.
func (d Diagram) Repair(epsilon float64) {
	coordSlice := d.Vertices()
	if len(coordSlice) == 0 {
		return
	}
	coordSet := make(map[model2d.Coord]bool, len(coordSlice))
	for _, c := range coordSlice {
		coordSet[c] = true
	}
	tree := model2d.NewCoordTree(coordSlice)

	mapping := map[model2d.Coord]model2d.Coord{}
	for _, c := range coordSlice {
		if !coordSet[c] {
			continue
		}
		for _, n := range within(tree, c, epsilon) {
			if coordSet[n] {
				coordSet[n] = false
				mapping[n] = c
			}
		}
	}

	for _, cell := range d {
		starts := map[model2d.Coord]*model2d.Segment{}

		for i := 0; i < len(cell.Edges); i++ {
			edge := cell.Edges[i]
			for j, c := range edge {
				edge[j] = mapping[c]
			}
			if edge[0] == edge[1] {
				// This was almost a singular edge.
				essentials.UnorderedDelete(&cell.Edges, i)
				i--
			} else {
				starts[edge[0]] = edge
			}
		}

		if len(cell.Edges) == 0 {
			continue
		}

		// now to sort the edges, leaving them be if they don't form a loop
		ordered := make([]*model2d.Segment, 1, len(cell.Edges))
		ordered[0] = cell.Edges[0]
		for len(ordered) < len(cell.Edges) {
			next, ok := starts[ordered[len(ordered)-1][1]]
			if !ok || next == ordered[0] {
				break
			}
			ordered = append(ordered, next)
		}
		if len(ordered) == len(cell.Edges) {
			cell.Edges = ordered
		}
	}
}

var (
	backgroundColour = color.Gray{Y: 0xff}
	siteColour       = color.RGBA{B: 0xff, A: 0xff}
	edgeColour       = color.RGBA{R: 0xff, A: 0xff}
)

// Render rasterizes the diagram to path (format by extension), scale pixels
// per unit. The frame is the bounding box of the edges, which for a diagram
// from Cells is the clip rectangle. Sites are drawn as dots at least two
// pixels across.
func (d Diagram) Render(path string, scale float64) error {
	edges := model2d.NewMesh()
	for _, cell := range d {
		edges.AddMesh(model2d.NewMeshSegments(cell.Edges))
	}
	frame := model2d.NewRect(edges.Min(), edges.Max())

	extent := frame.Max().Sub(frame.Min())
	dot := math.Max(2/scale, math.Max(extent.X, extent.Y)/200)
	sites := make(model2d.JoinedSolid, 0, len(d))
	for _, cell := range d {
		sites = append(sites, &model2d.Circle{Center: cell.Center, Radius: dot})
	}

	return model2d.RasterizeColor(
		path,
		[]interface{}{frame, model2d.IntersectedSolid{sites.Optimize(), frame}, edges},
		[]color.Color{backgroundColour, siteColour, edgeColour},
		scale,
	)
}

// within returns every coord in tree no further than epsilon from c, nearest
// first. c itself is included if it is in the tree.
func within(tree *model2d.CoordTree, c model2d.Coord, epsilon float64) []model2d.Coord {
	for k := 4; ; k *= 2 {
		found := tree.KNN(k, c)
		if len(found) == k && found[k-1].Dist(c) <= epsilon {
			continue
		}
		n := sort.Search(len(found), func(i int) bool {
			return found[i].Dist(c) > epsilon
		})
		return found[:n]
	}
}
