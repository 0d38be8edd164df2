package poissondisc

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SampleStats holds generic stats about a set of samples
type SampleStats struct {
	Count int

	// nearest neighbour distances over all samples
	// (all zero if there are fewer than two samples)
	MinNearest    float64
	MaxNearest    float64
	MeanNearest   float64
	StdDevNearest float64

	// Density is samples per radius² of area. Poisson-disc sets usually land
	// somewhere around 0.6-0.7.
	Density float64
}

// Stats computes nearest neighbour statistics for the samples.
func (s *Samples) Stats() *SampleStats {
	st := &SampleStats{Count: len(s.Points)}
	if s.Width > 0 && s.Height > 0 {
		st.Density = float64(len(s.Points)) * s.Radius * s.Radius / (s.Width * s.Height)
	}

	nearest := s.nearestDistances()
	if len(nearest) == 0 {
		return st
	}

	st.MinNearest = floats.Min(nearest)
	st.MaxNearest = floats.Max(nearest)
	st.MeanNearest, st.StdDevNearest = stat.MeanStdDev(nearest, nil)
	if math.IsNaN(st.StdDevNearest) { // single value
		st.StdDevNearest = 0
	}
	return st
}

// nearestDistances returns, for each sample, the distance to its closest
// other sample. Nil if there are fewer than two samples.
func (s *Samples) nearestDistances() []float64 {
	if len(s.Points) < 2 {
		return nil
	}

	coords := make([]model2d.Coord, len(s.Points))
	for i, p := range s.Points {
		coords[i] = model2d.Coord{X: p.X, Y: p.Y}
	}
	tree := model2d.NewCoordTree(coords)

	out := make([]float64, len(coords))
	for i, c := range coords {
		// the closest match is the sample itself
		knn := tree.KNN(2, c)
		out[i] = knn[len(knn)-1].Dist(c)
	}
	return out
}

// SaveHistogram plots a histogram of nearest neighbour distances as a PNG
// (or any format gonum/plot infers from the file extension).
func (s *Samples) SaveHistogram(fpath string, bins int) error {
	nearest := s.nearestDistances()
	if len(nearest) == 0 {
		return errors.New("at least two samples are required for a histogram")
	}
	if bins < 1 {
		bins = 16
	}

	p := plot.New()
	p.Title.Text = "Nearest neighbour distance"
	p.X.Label.Text = "distance"
	p.Y.Label.Text = "samples"

	h, err := plotter.NewHist(plotter.Values(nearest), bins)
	if err != nil {
		return errors.Wrap(err, "building histogram")
	}
	p.Add(h)

	// mark the minimum separation
	line, err := plotter.NewLine(plotter.XYs{{X: s.Radius, Y: 0}, {X: s.Radius, Y: float64(len(nearest))}})
	if err != nil {
		return errors.Wrap(err, "building radius marker")
	}
	line.Width = vg.Points(1)
	p.Add(line)

	return p.Save(8*vg.Inch, 4*vg.Inch, fpath)
}
