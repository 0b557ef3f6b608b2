package aura

import "fmt"

// Easing specifies how a particle grows during its reveal transition.
type Easing string

const (
	EaseLinear     Easing = "linear"
	EaseOutQuad    Easing = "easeOutQuad"
	EaseInOutCubic Easing = "easeInOutCubic"
)

// ParseEasing accepts the known easing names; empty means linear.
func ParseEasing(s string) (Easing, error) {
	switch e := Easing(s); e {
	case "":
		return EaseLinear, nil
	case EaseLinear, EaseOutQuad, EaseInOutCubic:
		return e, nil
	default:
		return "", fmt.Errorf("unknown easing %q", s)
	}
}

// Apply maps progress t in [0,1] through the easing curve.
func (e Easing) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e {
	case EaseOutQuad:
		// f(t) = 1 - (1 - t)^2
		return 1 - (1-t)*(1-t)
	case EaseInOutCubic:
		// accelerate then decelerate
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - (-2*t+2)*(-2*t+2)*(-2*t+2)/2
	default:
		return t
	}
}
