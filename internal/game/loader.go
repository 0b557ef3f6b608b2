package game

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/aura-gacha/internal/aura"
	"github.com/xtding233/aura-gacha/internal/inventory"
)

// Defaults returns the built-in config: the reference tier table and timings.
func Defaults() RawConfig {
	lockout, tick, stagger, transition := 1000, 50, 20, 500
	ref := aura.ReferenceTable()
	tiers := make([]TierCfg, len(ref))
	for i, c := range ref {
		particles, speed, size, weight, radius := c.ParticleCount, c.Speed, c.Size, c.Weight, c.BaseRadius
		tiers[i] = TierCfg{
			Name:      c.Name,
			Color:     c.Color,
			Starlight: c.IsStarlight,
			Particles: &particles,
			Speed:     &speed,
			Size:      &size,
			Weight:    &weight,
			Glow:      c.Glow,
			Radius:    &radius,
		}
	}
	return RawConfig{
		Version: "builtin",
		Tiers:   tiers,
		Timing: TimingCfg{
			LockoutMS:    &lockout,
			TickMS:       &tick,
			StaggerMS:    &stagger,
			TransitionMS: &transition,
			Easing:       string(aura.EaseOutQuad),
		},
		Storage: &StorageCfg{Backend: "file", Path: "data", Key: inventory.DefaultKey},
	}
}

// Loader reads a YAML file and merges it over Defaults.
type Loader struct {
	path string

	mu     sync.RWMutex
	cached *RawConfig
}

// NewLoader creates a loader for path. An empty path means defaults only.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Path() string { return l.path }

// Load returns the merged RawConfig (without validation), cached until Invalidate.
func (l *Loader) Load() (RawConfig, error) {
	l.mu.RLock()
	if l.cached != nil {
		cfg := *l.cached
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	merged := Defaults()
	if l.path != "" {
		fileCfg, err := readYAML(l.path)
		if err != nil {
			return RawConfig{}, fmt.Errorf("read %s: %w", l.path, err)
		}
		merged = mergeRaw(merged, fileCfg)
	}

	l.mu.Lock()
	l.cached = &merged
	l.mu.Unlock()
	return merged, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw lays 'b' over 'a': scalars and pointers in b win when set.
// A non-empty tier list in b replaces a's list whole, since order decides draws.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}
	if len(b.Tiers) > 0 {
		out.Tiers = append([]TierCfg(nil), b.Tiers...)
	}

	// timing
	if b.Timing.LockoutMS != nil {
		out.Timing.LockoutMS = b.Timing.LockoutMS
	}
	if b.Timing.TickMS != nil {
		out.Timing.TickMS = b.Timing.TickMS
	}
	if b.Timing.StaggerMS != nil {
		out.Timing.StaggerMS = b.Timing.StaggerMS
	}
	if b.Timing.TransitionMS != nil {
		out.Timing.TransitionMS = b.Timing.TransitionMS
	}
	if b.Timing.Easing != "" {
		out.Timing.Easing = b.Timing.Easing
	}

	// storage
	switch {
	case out.Storage == nil && b.Storage != nil:
		c := *b.Storage
		out.Storage = &c
	case out.Storage != nil && b.Storage != nil:
		c := *out.Storage
		if b.Storage.Backend != "" {
			c.Backend = b.Storage.Backend
		}
		if b.Storage.Path != "" {
			c.Path = b.Storage.Path
		}
		if b.Storage.Key != "" {
			c.Key = b.Storage.Key
		}
		out.Storage = &c
	}

	return out
}
