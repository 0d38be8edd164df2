package poissondisc

import (
	"math"
	"os"
)

// calculateDist standard pythag.
func calculateDist(a, b Point) float64 {
	return a.Sub(b).Norm()
}

// below keeps v strictly under limit; u * limit can round up to limit
// when u is the largest float64 under 1.
func below(v, limit float64) float64 {
	if v >= limit {
		return math.Nextafter(limit, 0)
	}
	return v
}

// writeFile to disk
func writeFile(fpath string, data []byte) error {
	return os.WriteFile(fpath, data, 0644)
}
