package gacha

import (
	"math"
	"sort"
)

// TrialGoal selects what the simulation measures per trial.
type TrialGoal string

const (
	// Draws until the target index first comes up.
	GoalFirstHit TrialGoal = "first_hit"
	// Given a fixed budget N, count how many draws landed on the target index.
	GoalFixedBudget TrialGoal = "fixed_budget"
)

// SimParams describes one simulation run over a weight table.
type SimParams struct {
	Weights []float64
	Target  int // index into Weights being measured

	// MaxDraws caps GoalFirstHit trials so a zero-weight target cannot loop forever.
	// <=0 means 1_000_000.
	MaxDraws int
}

// SimBudget controls the number of draws used in GoalFixedBudget.
type SimBudget struct {
	NumDraws int // number of draws in one trial
}

// Stats summarizes simulation results.
type Stats struct {
	Mean   float64
	Var    float64
	StdDev float64
	P50    float64
	P90    float64
	P99    float64
	// Optional: raw samples if caller needs histograms/exports
	Samples []int `json:"-"`
}

// calcStats computes mean/variance/percentiles for integer samples.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	// variance (population)
	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)
	stddev := math.Sqrt(variance)

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		if n == 1 || p <= 0 {
			return float64(cp[0])
		}
		if p >= 1 {
			return float64(cp[n-1])
		}
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		f := pos - float64(i)
		if i+1 >= n {
			return float64(cp[i])
		}
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:    mean,
		Var:     variance,
		StdDev:  stddev,
		P50:     percentile(0.50),
		P90:     percentile(0.90),
		P99:     percentile(0.99),
		Samples: xs,
	}
}

// simulateOne returns the primary metric for one trial depending on the goal.
// - GoalFirstHit: number of draws until the target index (capped at MaxDraws)
// - GoalFixedBudget: number of target hits within budget.NumDraws
func simulateOne(p SimParams, goal TrialGoal, budget *SimBudget, rng RandomSource) int {
	switch goal {
	case GoalFirstHit:
		limit := p.MaxDraws
		if limit <= 0 {
			limit = 1_000_000
		}
		draws := 0
		for draws < limit {
			draws++
			if PickIndex(p.Weights, rng.Float64()) == p.Target {
				return draws
			}
		}
		return draws

	case GoalFixedBudget:
		if budget == nil || budget.NumDraws <= 0 {
			return 0
		}
		count := 0
		for i := 0; i < budget.NumDraws; i++ {
			if PickIndex(p.Weights, rng.Float64()) == p.Target {
				count++
			}
		}
		return count
	}

	return 0
}

// RunMonteCarlo repeats trials and returns summary stats.
// goal determines what metric is recorded per trial.
func RunMonteCarlo(p SimParams, goal TrialGoal, trials int, budget *SimBudget, rng RandomSource) (Stats, error) {
	if len(p.Weights) == 0 {
		return Stats{}, ErrEmptyWeights
	}
	if p.Target < 0 || p.Target >= len(p.Weights) {
		return Stats{}, ErrInvalidTarget
	}
	if trials <= 0 {
		return Stats{}, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	samples := make([]int, trials)
	for i := 0; i < trials; i++ {
		samples[i] = simulateOne(p, goal, budget, rng)
	}
	return calcStats(samples), nil
}
