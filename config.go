package poissondisc

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// DefaultAttempts is how many candidates are tried around an active
	// sample before it is retired.
	DefaultAttempts = 30

	// MaxGridCells is the most acceleration grid cells a run may allocate.
	// Each cell costs a Point plus a bit, so this is ~512MiB.
	MaxGridCells = 1 << 25

	// neighbourCells is the half width of the grid window searched for
	// conflicting samples. With cells of radius/√2 anything within radius
	// lies inside a 5x5 window.
	neighbourCells = 2
)

// SamplerConfig holds settings for a single sampling run.
// Width, Height and Radius are required, everything else has a default.
type SamplerConfig struct {
	// Width & Height of the area to fill, samples fall in [0,Width) x [0,Height)
	Width  float64
	Height float64

	// Radius is the minimum distance between any two samples
	Radius float64

	// Attempts is the number of candidates tried around an active sample
	// before giving up on it. DefaultAttempts if 0.
	Attempts int

	// Seed for rng (random number chosen by New if not set).
	// A Sampler given a Source directly does not use it, it is copied to the
	// result as is so callers can record how they seeded their Source.
	Seed int64

	// MaxSamples caps how many samples we'll accept (ignored if 0).
	// Tiny radii over large areas can take a long time & a lot of memory,
	// hitting the cap stops early and marks the result Truncated.
	MaxSamples int
}

// validate checks the config for values we cannot work with.
// Nothing is clamped, bad input is the callers problem.
func (c *SamplerConfig) validate() error {
	if c == nil {
		return errors.Wrap(ErrInvalidArgument, "nil config")
	}
	if err := positive("width", c.Width); err != nil {
		return err
	}
	if err := positive("height", c.Height); err != nil {
		return err
	}
	if err := positive("radius", c.Radius); err != nil {
		return err
	}
	if c.Attempts < 0 {
		return errors.Wrapf(ErrInvalidArgument, "attempts must be >= 0, got %d", c.Attempts)
	}
	if c.MaxSamples < 0 {
		return errors.Wrapf(ErrInvalidArgument, "max samples must be >= 0, got %d", c.MaxSamples)
	}
	if cells := c.gridCells(); cells > MaxGridCells {
		return errors.Wrapf(ErrTooLarge, "%vx%v at radius %v needs %.4g grid cells, limit %d",
			c.Width, c.Height, c.Radius, cells, MaxGridCells)
	}
	return nil
}

// withDefaults returns a copy of the config with unset fields filled in.
func (c *SamplerConfig) withDefaults() *SamplerConfig {
	cfg := *c
	if cfg.Attempts == 0 {
		cfg.Attempts = DefaultAttempts
	}
	return &cfg
}

// cellSize returns the grid spacing; a cell's diagonal is the radius.
// Rounded down if need be so the diagonal never exceeds the radius.
func (c *SamplerConfig) cellSize() float64 {
	size := c.Radius / math.Sqrt2
	if size*math.Sqrt2 > c.Radius {
		size = math.Nextafter(size, 0)
	}
	return size
}

// gridCells is how many cells the grid for this config holds. Computed in
// floating point, it may be far beyond what an int can count.
func (c *SamplerConfig) gridCells() float64 {
	size := c.cellSize()
	cols := math.Max(math.Ceil(c.Width/size), 1)
	rows := math.Max(math.Ceil(c.Height/size), 1)
	return cols * rows
}

// capacityHint roughly estimates how many samples the area can hold.
func (c *SamplerConfig) capacityHint() int {
	n := math.Ceil(c.Width * c.Height / (c.Radius * c.Radius))
	if n > 1<<20 { // don't preallocate silly amounts up front
		n = 1 << 20
	}
	if c.MaxSamples > 0 && n > float64(c.MaxSamples) {
		n = float64(c.MaxSamples)
	}
	return int(n) + 1
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Wrapf(ErrInvalidArgument, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return errors.Wrapf(ErrInvalidArgument, "%s must be > 0, got %v", name, v)
	}
	return nil
}
