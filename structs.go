package poissondisc

import (
	"github.com/golang/geo/r2"
)

// Point is a sample location, X & Y within [0,Width) x [0,Height).
type Point = r2.Point

// State is where a Sampler is in its (one way) lifecycle.
type State int

const (
	// Seeding means nothing has been placed yet
	Seeding State = iota
	// Growing means there are active samples to grow from
	Growing
	// Done means the active list is empty (or the run stopped early)
	Done
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case Seeding:
		return "seeding"
	case Growing:
		return "growing"
	case Done:
		return "done"
	}
	return "unknown"
}

// Samples is the result of a sampling run.
type Samples struct {
	// Points in the order they were accepted, the first is the seed
	Points []Point

	// settings the run used
	Width  float64
	Height float64
	Radius float64
	Seed   int64 `json:",omitempty"`

	// Truncated is set if the run stopped at MaxSamples rather than running
	// out of active samples, in which case the area is not fully covered.
	Truncated bool `json:",omitempty"`
}

// Count returns the number of samples
func (s *Samples) Count() int {
	return len(s.Points)
}

// At returns the i'th accepted sample
func (s *Samples) At(i int) Point {
	return s.Points[i]
}
