// resolve.go
package game

import (
	"time"

	"github.com/xtding233/aura-gacha/internal/aura"
	"github.com/xtding233/aura-gacha/internal/inventory"
)

// Settings is the validated, normalized config the rest of the program runs on.
type Settings struct {
	Version string
	Table   aura.Table
	Lockout time.Duration
	Tick    time.Duration
	Reveal  aura.Reveal
	Storage StorageCfg
}

// Resolve validates raw and turns it into Settings.
// Fields left unset fall back to the built-in defaults.
func Resolve(raw RawConfig) (Settings, error) {
	raw = mergeRaw(Defaults(), raw)
	if err := ValidateRaw(raw); err != nil {
		return Settings{}, err
	}

	table := make(aura.Table, len(raw.Tiers))
	for i, t := range raw.Tiers {
		radius := aura.DefaultBaseRadius
		if t.Radius != nil {
			radius = *t.Radius
		}
		table[i] = aura.TierConfig{
			Name:          t.Name,
			Color:         t.Color,
			IsStarlight:   t.Starlight,
			ParticleCount: *t.Particles,
			Speed:         *t.Speed,
			Size:          *t.Size,
			Weight:        *t.Weight,
			Glow:          t.Glow,
			BaseRadius:    radius,
		}
	}
	if err := table.Validate(); err != nil {
		return Settings{}, err
	}

	easing, _ := aura.ParseEasing(raw.Timing.Easing)
	lockout := ms(*raw.Timing.LockoutMS)
	storage := StorageCfg{Backend: "file", Key: inventory.DefaultKey}
	if raw.Storage != nil {
		storage = *raw.Storage
		if storage.Backend == "" {
			storage.Backend = "file"
		}
		if storage.Key == "" {
			storage.Key = inventory.DefaultKey
		}
	}

	return Settings{
		Version: raw.Version,
		Table:   table,
		Lockout: lockout,
		Tick:    ms(*raw.Timing.TickMS),
		Reveal: aura.Reveal{
			Stagger:    ms(*raw.Timing.StaggerMS),
			Transition: ms(*raw.Timing.TransitionMS),
			Window:     lockout,
			Easing:     easing,
		},
		Storage: storage,
	}, nil
}

// LoadSettings loads path over the defaults and resolves it.
func LoadSettings(l *Loader) (Settings, error) {
	raw, err := l.Load()
	if err != nil {
		return Settings{}, err
	}
	return Resolve(raw)
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }
