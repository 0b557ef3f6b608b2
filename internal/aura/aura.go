package aura

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Aura is one rolled result. It is never mutated after New.
type Aura struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Tier      string            `json:"rarity"`
	Config    TierConfig        `json:"config"`
	Pattern   []ParticlePattern `json:"pattern"`
}

// New snapshots cfg and generates a fresh pattern for it.
// IDs are UUIDv7 so they sort by creation time.
func New(cfg TierConfig, gen *Generator, now time.Time) (Aura, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Aura{}, fmt.Errorf("aura id: %w", err)
	}
	return Aura{
		ID:        id.String(),
		CreatedAt: now,
		Tier:      cfg.Name,
		Config:    cfg,
		Pattern:   gen.Generate(cfg),
	}, nil
}

// Validate reports whether a stored aura can still be rendered.
func (a Aura) Validate() error {
	if a.ID == "" {
		return errors.New("aura has no id")
	}
	if a.Tier == "" {
		return fmt.Errorf("aura %s has no tier", a.ID)
	}
	if len(a.Pattern) != a.Config.ParticleCount {
		return fmt.Errorf("aura %s: pattern has %d particles, config wants %d", a.ID, len(a.Pattern), a.Config.ParticleCount)
	}
	for i, p := range a.Pattern {
		if p.Index != i {
			return fmt.Errorf("aura %s: pattern[%d] carries index %d", a.ID, i, p.Index)
		}
	}
	return nil
}
