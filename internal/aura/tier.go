package aura

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/xtding233/aura-gacha/internal/gacha"
)

// Rainbow is the color sentinel for tiers whose hue cycles over time.
const Rainbow = "rainbow"

// DefaultBaseRadius is the orbit radius every reference tier uses.
const DefaultBaseRadius = 80.0

var ErrEmptyTable = errors.New("tier table is empty")

// TierConfig describes how one rarity tier looks and how often it is drawn.
type TierConfig struct {
	Name          string  `json:"name"`
	Color         string  `json:"color"` // "#rrggbb" or Rainbow
	IsStarlight   bool    `json:"isStarlight,omitempty"`
	ParticleCount int     `json:"particleCount"`
	Speed         float64 `json:"speed"`
	Size          float64 `json:"size"`
	Weight        float64 `json:"weight"`
	Glow          string  `json:"glow"`
	BaseRadius    float64 `json:"baseRadius"`
}

func (c TierConfig) IsRainbow() bool { return c.Color == Rainbow }

// Table is the ordered list of tiers. Order decides draw boundaries.
type Table []TierConfig

// ReferenceTable returns the stock six-tier table.
func ReferenceTable() Table {
	return Table{
		{Name: "common", Color: "#ffffff", ParticleCount: 20, Speed: 1, Size: 2, Weight: 0.70, Glow: "0px 0px 5px", BaseRadius: DefaultBaseRadius},
		{Name: "rare", Color: "#4287f5", ParticleCount: 30, Speed: 1.5, Size: 3, Weight: 0.20, Glow: "0px 0px 8px", BaseRadius: DefaultBaseRadius},
		{Name: "epic", Color: "#9b42f5", ParticleCount: 40, Speed: 2, Size: 4, Weight: 0.06, Glow: "0px 0px 12px", BaseRadius: DefaultBaseRadius},
		{Name: "legendary", Color: "#f5a742", ParticleCount: 50, Speed: 2.5, Size: 5, Weight: 0.025, Glow: "0px 0px 15px", BaseRadius: DefaultBaseRadius},
		{Name: "chroma", Color: Rainbow, ParticleCount: 60, Speed: 3, Size: 6, Weight: 0.01, Glow: "0px 0px 20px", BaseRadius: DefaultBaseRadius},
		{Name: "starlight", Color: "#ffffff", IsStarlight: true, ParticleCount: 70, Speed: 3.5, Size: 4, Weight: 0.005, Glow: "0px 0px 25px", BaseRadius: DefaultBaseRadius},
	}
}

// Clone returns a copy that shares no backing array with t.
func (t Table) Clone() Table {
	return append(Table(nil), t...)
}

func (t Table) Weights() []float64 {
	ws := make([]float64, len(t))
	for i, c := range t {
		ws[i] = c.Weight
	}
	return ws
}

func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, c := range t {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named tier, or -1.
func (t Table) Index(name string) int {
	for i, c := range t {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (t Table) Lookup(name string) (TierConfig, bool) {
	if i := t.Index(name); i >= 0 {
		return t[i], true
	}
	return TierConfig{}, false
}

// Validate checks the table is usable for drawing and rendering.
// All problems are reported together.
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTable
	}
	var errs []string
	seen := make(map[string]bool, len(t))
	for i, c := range t {
		label := fmt.Sprintf("tiers[%d]", i)
		if c.Name == "" {
			errs = append(errs, label+".name must not be empty")
		} else {
			label = fmt.Sprintf("tiers[%d](%s)", i, c.Name)
			if seen[c.Name] {
				errs = append(errs, label+" is declared twice")
			}
			seen[c.Name] = true
		}
		if c.ParticleCount <= 0 {
			errs = append(errs, label+".particleCount must be >= 1")
		}
		if !(c.Speed > 0) || math.IsInf(c.Speed, 0) {
			errs = append(errs, label+".speed must be > 0")
		}
		if !(c.Size > 0) || math.IsInf(c.Size, 0) {
			errs = append(errs, label+".size must be > 0")
		}
		if !(c.BaseRadius > 0) || math.IsInf(c.BaseRadius, 0) {
			errs = append(errs, label+".baseRadius must be > 0")
		}
		if !c.IsRainbow() {
			if _, err := colorful.Hex(c.Color); err != nil {
				errs = append(errs, fmt.Sprintf("%s.color %q is neither %q nor #rrggbb", label, c.Color, Rainbow))
			}
		}
	}
	if err := gacha.ValidateWeights(t.Weights()); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("tier table invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

// PickAt maps r in [0, 1) onto a tier in declared order.
// r at or past the full cumulative sum lands on the last tier.
func (t Table) PickAt(r float64) (TierConfig, error) {
	if len(t) == 0 {
		return TierConfig{}, ErrEmptyTable
	}
	return t[gacha.PickIndex(t.Weights(), r)], nil
}

// Draw picks a tier using one draw from rng.
func (t Table) Draw(rng gacha.RandomSource) (TierConfig, error) {
	i, err := gacha.DrawIndex(t.Weights(), rng)
	if err != nil {
		return TierConfig{}, ErrEmptyTable
	}
	return t[i], nil
}
