package utils

import (
	"math"
)

// RandomSource maps a seed to a float64 in [0, 1).
// Implementations are stateless: the same seed always yields the same value.
type RandomSource interface {
	Float(seed int) float64
	Name() string
}

// SineSource is the sine-hash generator the shop has always used.
// It is stable for a given Go build but relies on math.Sin rounding.
type SineSource struct{}

func (SineSource) Float(seed int) float64 {
	return SeededRandom(seed)
}

func (SineSource) Name() string { return RandomSourceSine }

// SplitMixSource is an integer-only generator (splitmix64 finalizer).
// Its output is bit-identical on every platform.
type SplitMixSource struct{}

func (SplitMixSource) Float(seed int) float64 {
	z := uint64(int64(seed)) + splitMixGamma
	z = (z ^ (z >> 30)) * splitMixMul1
	z = (z ^ (z >> 27)) * splitMixMul2
	z ^= z >> 31
	return float64(z>>11) / float64(uint64(1)<<53)
}

func (SplitMixSource) Name() string { return RandomSourceSplitMix }

// NewRandomSource returns the source registered under name, defaulting to SineSource
func NewRandomSource(name string) RandomSource {
	if name == RandomSourceSplitMix {
		return SplitMixSource{}
	}
	return SineSource{}
}

// SeededRandom returns a deterministic pseudo-random value in [0, 1) for seed.
// Not suitable for anything security related.
func SeededRandom(seed int) float64 {
	x := math.Sin(float64(seed)) * sineScale
	return x - math.Floor(x)
}

// ShuffleWithSeed returns a Fisher-Yates permutation of items using SineSource.
// The input slice is not modified.
func ShuffleWithSeed[T any](items []T, seed int) []T {
	return ShuffleWith(SineSource{}, items, seed)
}

// ShuffleWith is ShuffleWithSeed with an explicit source.
// The draw at position i uses seed+i.
func ShuffleWith[T any](src RandomSource, items []T, seed int) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := int(math.Floor(src.Float(seed+i) * float64(i+1)))
		if j > i { // guards against a source returning exactly 1.0
			j = i
		}
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// CeilDiv returns ceil(a/b) for positive b
func CeilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// MinInt returns the smaller of a and b
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
