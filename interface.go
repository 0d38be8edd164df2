package poissondisc

// Source supplies the randomness a Sampler consumes.
// Float64 must return uniformly distributed values in [0, 1).
//
// *math/rand.Rand satisfies this. A Source is used by exactly one run at a
// time; sharing one between concurrent runs is not safe unless the Source
// itself is.
type Source interface {
	Float64() float64
}

// between returns a value uniformly distributed in [lo, hi).
func between(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// randomIndex picks an index in [0, n) uniformly.
// The fraction is scaled before truncation; a value a rounding error below 1
// is clamped to the last index.
func randomIndex(src Source, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
