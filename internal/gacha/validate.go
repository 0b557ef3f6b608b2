package gacha

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyWeights = errors.New("weight table is empty")
	ErrWeightSum    = errors.New("weights must sum to 1")
)

// WeightSumTolerance bounds how far a weight table may drift from 1.0.
const WeightSumTolerance = 1e-9

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// ValidateWeights checks every weight is a probability and that they sum to 1.
func ValidateWeights(weights []float64) error {
	if len(weights) == 0 {
		return ErrEmptyWeights
	}
	var sum float64
	for i, w := range weights {
		if err := validateProb(w); err != nil {
			return fmt.Errorf("weight[%d]=%v: %w", i, w, err)
		}
		sum += w
	}
	if math.Abs(sum-1) > WeightSumTolerance {
		return fmt.Errorf("%w; got %v", ErrWeightSum, sum)
	}
	return nil
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}
