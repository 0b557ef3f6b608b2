package aura

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/xtding233/aura-gacha/internal/gacha"
)

// HueDegreesPerSecond is one degree per 50ms tick, an 18s full cycle.
const HueDegreesPerSecond = 20.0

type colorKind uint8

const (
	kindSolid colorKind = iota
	kindRainbow
	kindStarlight
)

// Color is a particle color plus its own alpha.
type Color struct {
	colorful.Color
	Alpha float64
	Hue   float64 // set for rainbow colors only

	kind colorKind
}

var white = colorful.Color{R: 1, G: 1, B: 1}

// BaseColor parses cfg.Color, falling back to white for the rainbow sentinel or bad input.
func BaseColor(cfg TierConfig) colorful.Color {
	if cfg.IsRainbow() {
		return white
	}
	c, err := colorful.Hex(cfg.Color)
	if err != nil {
		return white
	}
	return c
}

// ColorAt returns the particle color t seconds into a view.
// hue0 is the particle's starting hue; rng drives starlight flicker.
func ColorAt(cfg TierConfig, hue0, t float64, rng gacha.RandomSource) Color {
	switch {
	case cfg.IsRainbow():
		h := math.Mod(hue0+t*HueDegreesPerSecond, 360)
		if h < 0 {
			h += 360
		}
		return Color{Color: colorful.Hsl(h, 1, 0.5), Alpha: 1, Hue: h, kind: kindRainbow}
	case cfg.IsStarlight:
		return Color{Color: white, Alpha: gacha.Uniform(rng, 0.5, 1.0), kind: kindStarlight}
	default:
		return Color{Color: BaseColor(cfg), Alpha: 1, kind: kindSolid}
	}
}

// CSS formats the color the way a browser surface expects it.
func (c Color) CSS() string {
	switch c.kind {
	case kindRainbow:
		return fmt.Sprintf("hsl(%.2f, 100%%, 50%%)", c.Hue)
	case kindStarlight:
		r, g, b := c.RGB255()
		return fmt.Sprintf("rgba(%d, %d, %d, %.3f)", r, g, b, c.Alpha)
	default:
		return c.Hex()
	}
}
