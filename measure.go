package poissondisc

import (
	"math"

	"github.com/golang/geo/r3"
)

// AreaFromCorners returns the width & height of a rectangle lying on the XZ
// ground plane given its corners in order v0, v1, v2, v3 (v0-v1 along X,
// v0-v3 along Z). Y (height above the plane) is ignored, as is v2.
//
// Handy for sizing a SamplerConfig from four markers placed in a scene.
func AreaFromCorners(v0, v1, v2, v3 r3.Vector) (float64, float64) {
	width := math.Abs(v0.X - v1.X)
	height := math.Abs(v0.Z - v3.Z)
	return width, height
}

// Lift places a sample on the XZ ground plane at height y.
func Lift(p Point, y float64) r3.Vector {
	return r3.Vector{X: p.X, Y: y, Z: p.Y}
}
