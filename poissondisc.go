package poissondisc

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"

	"github.com/voidshard/poissondisc/internal/grid"
)

var (
	// ErrInvalidArgument implies the width, height or radius (or other setting)
	// is not something we can sample with.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSamplerUsed is returned if Generate is called on a Sampler that has
	// already run. Samplers are single use.
	ErrSamplerUsed = errors.New("sampler has already been run")

	// ErrTooLarge means the area is too big for the radius; the grid would
	// need more than MaxGridCells cells. It is also an ErrInvalidArgument.
	ErrTooLarge = errors.Wrap(ErrInvalidArgument, "area too large for radius")
)

// Sampler fills a rectangle with Poisson-disc (blue noise) samples using
// grid accelerated dart throwing.
//
// A Sampler owns its grid, active list and output for the duration of one
// run and is discarded afterwards. Independent Samplers (each with their own
// Source) may run concurrently.
type Sampler struct {
	cfg *SamplerConfig
	src Source

	state  State
	grid   *grid.Grid
	active []Point
	output []Point
}

// Generate is sugar for a single run over width x height with the given
// radius, drawing all randomness from src.
func Generate(width, height, radius float64, src Source) ([]Point, error) {
	s, err := NewWithSource(&SamplerConfig{Width: width, Height: height, Radius: radius}, src)
	if err != nil {
		return nil, err
	}
	out, err := s.Generate()
	if err != nil {
		return nil, err
	}
	return out.Points, nil
}

// New creates a Sampler seeded from cfg.Seed (random if not set).
func New(cfg *SamplerConfig) (*Sampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Sampler{cfg: cfg, src: rand.New(rand.NewSource(cfg.Seed))}, nil
}

// NewWithSource creates a Sampler that draws from the given Source.
// cfg.Seed is not used, it is recorded on the result exactly as given
// (so 0, omitted from json, unless the caller sets it).
func NewWithSource(cfg *SamplerConfig, src Source) (*Sampler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil source")
	}
	return &Sampler{cfg: cfg.withDefaults(), src: src}, nil
}

// State returns where the sampler is in its lifecycle.
func (s *Sampler) State() State {
	return s.state
}

// Generate runs the sampler to completion.
func (s *Sampler) Generate() (*Samples, error) {
	return s.GenerateContext(context.Background())
}

// GenerateContext runs the sampler to completion, checking ctx once per
// active sample visited. A cancelled run returns no samples.
func (s *Sampler) GenerateContext(ctx context.Context) (*Samples, error) {
	if s.state != Seeding || s.grid != nil {
		return nil, ErrSamplerUsed
	}

	s.init()
	log := Logger().With("width", s.cfg.Width, "height", s.cfg.Height, "radius", s.cfg.Radius)
	log.Debug("sampling", "cols", s.grid.Cols(), "rows", s.grid.Rows(), "cellSize", s.grid.CellSize())

	// first sample is anywhere in the area
	seed := Point{
		X: s.src.Float64() * s.cfg.Width,
		Y: s.src.Float64() * s.cfg.Height,
	}
	seed.X = below(seed.X, s.cfg.Width)
	seed.Y = below(seed.Y, s.cfg.Height)
	if err := s.accept(seed); err != nil {
		return nil, err
	}
	s.state = Growing

	truncated := false
	for len(s.active) > 0 {
		if err := ctx.Err(); err != nil {
			s.state = Done
			return nil, errors.Wrap(err, "sampling cancelled")
		}
		if s.cfg.MaxSamples > 0 && len(s.output) >= s.cfg.MaxSamples {
			truncated = true
			log.Warn("sample cap reached, coverage incomplete", "max", s.cfg.MaxSamples, "active", len(s.active))
			break
		}

		index := randomIndex(s.src, len(s.active))
		candidate, ok := s.grow(s.active[index])
		if !ok {
			// nothing fits around this sample any more, retire it
			essentials.UnorderedDelete(&s.active, index)
			continue
		}
		if err := s.accept(candidate); err != nil {
			return nil, err
		}
	}

	s.state = Done
	log.Debug("sampling complete", "samples", len(s.output), "truncated", truncated)

	out := &Samples{
		Points:    s.output,
		Width:     s.cfg.Width,
		Height:    s.cfg.Height,
		Radius:    s.cfg.Radius,
		Seed:      s.cfg.Seed,
		Truncated: truncated,
	}
	s.grid = nil
	s.active = nil
	s.output = nil
	return out, nil
}

// init allocates the grid & lists for a run.
func (s *Sampler) init() {
	hint := s.cfg.capacityHint()
	s.grid = grid.New(s.cfg.Width, s.cfg.Height, s.cfg.cellSize())
	s.active = make([]Point, 0, hint)
	s.output = make([]Point, 0, hint)
}

// grow tries up to Attempts candidates in the annulus [radius, 2*radius)
// around from, returning the first that fits.
func (s *Sampler) grow(from Point) (Point, bool) {
	for j := 0; j < s.cfg.Attempts; j++ {
		theta := between(s.src, 0, 2*math.Pi)
		magnitude := between(s.src, s.cfg.Radius, 2*s.cfg.Radius)

		candidate := from.Add(Point{X: math.Cos(theta), Y: math.Sin(theta)}.Mul(magnitude))
		if s.contains(candidate) && s.farEnough(candidate) {
			return candidate, true
		}
	}
	return Point{}, false
}

// accept records p as a sample. An error here means the grid already held a
// sample in p's cell, which the cell size should make impossible.
func (s *Sampler) accept(p Point) error {
	if err := s.grid.Insert(p); err != nil {
		return errors.Wrap(err, "grid invariant violated")
	}
	s.active = append(s.active, p)
	s.output = append(s.output, p)
	return nil
}

// contains returns if p is within the half open area [0,Width) x [0,Height)
func (s *Sampler) contains(p Point) bool {
	return p.X >= 0 && p.X < s.cfg.Width && p.Y >= 0 && p.Y < s.cfg.Height
}

// farEnough returns if no existing sample is strictly closer than radius to p
func (s *Sampler) farEnough(p Point) bool {
	for n := range s.grid.Neighbours(p, neighbourCells) {
		if calculateDist(n, p) < s.cfg.Radius {
			return false
		}
	}
	return true
}
