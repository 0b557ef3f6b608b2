package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/xtding233/aura-gacha/internal/aura"
	"github.com/xtding233/aura-gacha/internal/gacha"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// tiers
	if len(cfg.Tiers) == 0 {
		errs = append(errs, "tiers must declare at least one tier")
	}
	seen := make(map[string]bool, len(cfg.Tiers))
	var sum float64
	for i, t := range cfg.Tiers {
		at := fmt.Sprintf("tiers[%d]", i)
		if t.Name == "" {
			errs = append(errs, at+".name is required")
		} else if seen[t.Name] {
			errs = append(errs, fmt.Sprintf("%s.name %q is declared twice", at, t.Name))
		}
		seen[t.Name] = true

		if t.Color != aura.Rainbow {
			if _, err := colorful.Hex(t.Color); err != nil {
				errs = append(errs, fmt.Sprintf("%s.color must be \"rainbow\" or #rrggbb; got %q", at, t.Color))
			}
		}
		if t.Particles == nil {
			errs = append(errs, at+".particles is required")
		} else if *t.Particles <= 0 {
			errs = append(errs, at+".particles must be >= 1")
		}
		if t.Speed == nil {
			errs = append(errs, at+".speed is required")
		} else if !(*t.Speed > 0) {
			errs = append(errs, at+".speed must be > 0")
		}
		if t.Size == nil {
			errs = append(errs, at+".size is required")
		} else if !(*t.Size > 0) {
			errs = append(errs, at+".size must be > 0")
		}
		if t.Radius != nil && !(*t.Radius > 0) {
			errs = append(errs, at+".radius must be > 0")
		}
		if t.Weight == nil {
			errs = append(errs, at+".weight is required")
		} else if w := *t.Weight; math.IsNaN(w) || w < 0 || w > 1 {
			errs = append(errs, at+".weight must be in [0,1]")
		} else {
			sum += w
		}
	}
	if len(cfg.Tiers) > 0 && math.Abs(sum-1) > gacha.WeightSumTolerance {
		errs = append(errs, fmt.Sprintf("tiers weights must sum to 1; got %v", sum))
	}

	// timing
	checkPositive := func(v *int, name string) {
		if v != nil && *v <= 0 {
			errs = append(errs, name+" must be > 0")
		}
	}
	checkPositive(cfg.Timing.LockoutMS, "timing.lockout_ms")
	checkPositive(cfg.Timing.TickMS, "timing.tick_ms")
	checkPositive(cfg.Timing.TransitionMS, "timing.reveal_transition_ms")
	if cfg.Timing.StaggerMS != nil && *cfg.Timing.StaggerMS < 0 {
		errs = append(errs, "timing.reveal_stagger_ms must be >= 0")
	}
	if _, err := aura.ParseEasing(cfg.Timing.Easing); err != nil {
		errs = append(errs, "timing.reveal_easing must be one of: linear, easeOutQuad, easeInOutCubic")
	}

	// storage (optional)
	if cfg.Storage != nil {
		switch cfg.Storage.Backend {
		case "", "file", "sqlite", "memory":
		default:
			errs = append(errs, "storage.backend must be one of: file, sqlite, memory")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
