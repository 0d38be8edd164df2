package poissondisc

import (
	"encoding/json"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"
)

// ColourScheme defines how samples are drawn.
type ColourScheme struct {
	Background color.Color
	Markers    color.Color

	// Discs, if set, outlines the r/2 disc around each sample.
	// Discs of neighbouring samples may touch but never overlap.
	Discs color.Color

	// MarkerSize is the marker diameter as a fraction of the radius, [0,1]
	MarkerSize float64
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background: colornames.White,
		Markers:    colornames.Black,
		Discs:      colornames.Lightsteelblue,
		MarkerSize: 0.2,
	}
}

// Image draws the samples, scale pixels per unit of distance.
func (s *Samples) Image(scheme *ColourScheme, scale float64) image.Image {
	if scheme == nil {
		scheme = DefaultScheme()
	}
	if scale <= 0 {
		scale = 1
	}

	w := int(math.Ceil(s.Width * scale))
	h := int(math.Ceil(s.Height * scale))
	ctx := gg.NewContext(maxint(w, 1), maxint(h, 1))

	if scheme.Background != nil {
		ctx.SetColor(scheme.Background)
		ctx.Clear()
	}

	if scheme.Discs != nil {
		ctx.SetColor(scheme.Discs)
		ctx.SetLineWidth(1)
		for _, p := range s.Points {
			ctx.DrawCircle(p.X*scale, p.Y*scale, s.Radius/2*scale)
			ctx.Stroke()
		}
	}

	size := math.Min(math.Max(scheme.MarkerSize, 0), 1) * s.Radius / 2 * scale
	if scheme.Markers != nil && size > 0 {
		ctx.SetColor(scheme.Markers)
		for _, p := range s.Points {
			ctx.DrawCircle(p.X*scale, p.Y*scale, size)
			ctx.Fill()
		}
	}

	return ctx.Image()
}

// SavePNG writes the samples as drawn by Image to disk.
func (s *Samples) SavePNG(fpath string, scheme *ColourScheme, scale float64) error {
	return gg.SavePNG(fpath, s.Image(scheme, scale))
}

// JSON returns the samples as json.
func (s *Samples) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// SaveJSON writes a json file to the given path.
func (s *Samples) SaveJSON(fpath string) error {
	data, err := s.JSON()
	if err != nil {
		return err
	}
	return writeFile(fpath, data)
}

// maxint returns the highest of two ints
func maxint(a, b int) int {
	if a > b {
		return a
	}
	return b
}
