package gacha

import "errors"

var (
	ErrInvalidProb   = errors.New("invalid probability p; must be 0..1")
	ErrInvalidTarget = errors.New("target index out of range")
)

// PickIndex maps r onto the weight table using a running cumulative sum.
// Weights are visited in slice order; the first index where r < cumulative wins.
// When float drift leaves r at or above the final sum, the last index is returned.
// Returns -1 only for an empty table.
func PickIndex(weights []float64, r float64) int {
	if len(weights) == 0 {
		return -1
	}
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if r < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// DrawIndex draws r in [0, 1) from rng and picks an index with PickIndex.
func DrawIndex(weights []float64, rng RandomSource) (int, error) {
	if len(weights) == 0 {
		return -1, ErrEmptyWeights
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return PickIndex(weights, rng.Float64()), nil
}

// Tally performs n draws and counts how often each index came up.
func Tally(weights []float64, rng RandomSource, n int) ([]int, error) {
	if len(weights) == 0 {
		return nil, ErrEmptyWeights
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	counts := make([]int, len(weights))
	for i := 0; i < n; i++ {
		counts[PickIndex(weights, rng.Float64())]++
	}
	return counts, nil
}
