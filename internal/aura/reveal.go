package aura

import "time"

// Reveal is the staggered "explosion" that plays while a fresh roll is locked out.
//
// Particle i stays collapsed until i*Stagger, then grows over Transition.
// Once Window has passed every particle is shown in full, even ones whose
// stagger has not come up yet: with 70 particles at 20ms the last ones pop in
// when a 1000ms window closes.
type Reveal struct {
	Stagger    time.Duration
	Transition time.Duration
	Window     time.Duration
	Easing     Easing
}

func DefaultReveal() Reveal {
	return Reveal{
		Stagger:    20 * time.Millisecond,
		Transition: 500 * time.Millisecond,
		Window:     1000 * time.Millisecond,
		Easing:     EaseOutQuad,
	}
}

// Duration is how long the full choreography would take for n particles.
func (r Reveal) Duration(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * r.Stagger
}

// At reports whether particle index has left the center and its current scale.
func (r Reveal) At(index int, elapsed time.Duration) (released bool, scale float64) {
	if elapsed >= r.Window {
		return true, 1
	}
	delay := time.Duration(index) * r.Stagger
	if elapsed < delay {
		return false, 0
	}
	if r.Transition <= 0 {
		return true, 1
	}
	progress := float64(elapsed-delay) / float64(r.Transition)
	return true, r.Easing.Apply(progress)
}
