package aura

import "math"

// Point is a position inside the [0, 2*BaseRadius] box of an aura.
type Point struct {
	X, Y float64
}

// Center is where collapsed particles sit.
func Center(cfg TierConfig) Point {
	return Point{X: cfg.BaseRadius, Y: cfg.BaseRadius}
}

// PositionAt places particle p at t seconds of continuous clock time.
func PositionAt(p ParticlePattern, cfg TierConfig, t float64) Point {
	r := cfg.BaseRadius
	wobble := r*p.RadiusFactor + math.Sin(t+p.Phase)*p.RadiusVariation*r
	angle := p.Angle + t*p.SpeedFactor
	return Point{
		X: math.Cos(angle)*wobble + r,
		Y: math.Sin(angle)*wobble + r,
	}
}

// ParticleFrame is everything a surface needs to paint one particle.
type ParticleFrame struct {
	Index   int
	X, Y    float64
	Size    float64
	Color   Color
	Scale   float64
	Opacity float64
}
