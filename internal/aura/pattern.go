package aura

import (
	"math"

	"github.com/xtding233/aura-gacha/internal/gacha"
)

// ParticlePattern is one particle's fixed motion signature.
type ParticlePattern struct {
	Index           int     `json:"index"`
	Angle           float64 `json:"angle"`           // [0, 2π)
	RadiusFactor    float64 `json:"radius"`          // [0.5, 1.0] of BaseRadius
	SpeedFactor     float64 `json:"speed"`           // [0.75, 1.25] × tier speed
	Phase           float64 `json:"phase"`           // [0, 2π), wobble offset
	RadiusVariation float64 `json:"radiusVariation"` // [0, 0.2) of BaseRadius
}

// Generator builds randomized particle patterns.
type Generator struct {
	rng gacha.RandomSource
}

// NewGenerator returns a generator drawing from rng (crypto RNG when nil).
func NewGenerator(rng gacha.RandomSource) *Generator {
	if rng == nil {
		rng = gacha.DefaultRNG()
	}
	return &Generator{rng: rng}
}

// Generate returns cfg.ParticleCount patterns, index-stable.
func (g *Generator) Generate(cfg TierConfig) []ParticlePattern {
	if cfg.ParticleCount <= 0 {
		return nil
	}
	out := make([]ParticlePattern, cfg.ParticleCount)
	for i := range out {
		out[i] = ParticlePattern{
			Index:           i,
			Angle:           gacha.Uniform(g.rng, 0, 2*math.Pi),
			RadiusFactor:    gacha.Uniform(g.rng, 0.5, 1.0),
			SpeedFactor:     gacha.Uniform(g.rng, 0.75, 1.25) * cfg.Speed,
			Phase:           gacha.Uniform(g.rng, 0, 2*math.Pi),
			RadiusVariation: gacha.Uniform(g.rng, 0, 0.2),
		}
	}
	return out
}
