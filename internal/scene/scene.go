// Package scene animates every on-screen aura from one shared tick.
package scene

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xtding233/aura-gacha/internal/aura"
	"github.com/xtding233/aura-gacha/internal/clock"
	"github.com/xtding233/aura-gacha/internal/gacha"
	"github.com/xtding233/aura-gacha/internal/logging"
)

// DefaultTick is the reference animation interval.
const DefaultTick = 50 * time.Millisecond

// View is one mounted aura.
type View struct {
	id        uint64
	aura      aura.Aura
	mountedAt time.Time
	reveal    bool
	hue0      []float64
}

func (v *View) ID() uint64 { return v.id }
func (v *View) Aura() aura.Aura { return v.aura }
func (v *View) MountedAt() time.Time { return v.mountedAt }

// Frame is the computed state of one view at one instant.
type Frame struct {
	ViewID    uint64
	AuraID    string
	Tier      string
	Config    aura.TierConfig
	Elapsed   time.Duration
	Revealing bool
	Particles []aura.ParticleFrame
}

type Options struct {
	Clock  clock.Clock
	RNG    gacha.RandomSource // starting hues and starlight flicker
	Reveal aura.Reveal
	Tick   time.Duration
}

// Scene owns the mounted views and steps them all together.
type Scene struct {
	mu     sync.Mutex
	clock  clock.Clock
	rng    gacha.RandomSource
	reveal aura.Reveal
	tick   time.Duration
	views  map[uint64]*View
	nextID uint64
}

func New(opts Options) *Scene {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.RNG == nil {
		opts.RNG = gacha.DefaultRNG()
	}
	if opts.Reveal == (aura.Reveal{}) {
		opts.Reveal = aura.DefaultReveal()
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	return &Scene{
		clock:  opts.Clock,
		rng:    opts.RNG,
		reveal: opts.Reveal,
		tick:   opts.Tick,
		views:  make(map[uint64]*View),
	}
}

func (s *Scene) Tick() time.Duration { return s.tick }

// Mount starts animating a. With reveal set, particles burst out of the center.
func (s *Scene) Mount(a aura.Aura, reveal bool) *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	v := &View{
		id:        s.nextID,
		aura:      a,
		mountedAt: s.clock.Now(),
		reveal:    reveal,
		hue0:      make([]float64, len(a.Pattern)),
	}
	if a.Config.IsRainbow() {
		for i := range v.hue0 {
			v.hue0[i] = gacha.Uniform(s.rng, 0, 360)
		}
	}
	s.views[v.id] = v
	logging.Debug("view mounted", logging.Fields{"view": v.id, "aura": a.ID, "tier": a.Tier, "particles": len(a.Pattern)})
	return v
}

// Unmount stops animating v. It reports false if v was not mounted.
func (s *Scene) Unmount(v *View) bool {
	if v == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.views[v.id]; !ok {
		return false
	}
	delete(s.views, v.id)
	logging.Debug("view unmounted", logging.Fields{"view": v.id, "aura": v.aura.ID})
	return true
}

// Active is the number of mounted views.
func (s *Scene) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Close unmounts everything.
func (s *Scene) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.views = make(map[uint64]*View)
}

// Step computes a frame for every mounted view, ordered by mount.
func (s *Scene) Step() []Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	ids := make([]uint64, 0, len(s.views))
	for id := range s.views {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	frames := make([]Frame, 0, len(ids))
	for _, id := range ids {
		frames = append(frames, s.frame(s.views[id], now))
	}
	return frames
}

// Render computes the frame of a single view; ok is false if v is not mounted.
func (s *Scene) Render(v *View) (Frame, bool) {
	if v == nil {
		return Frame{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.views[v.id]; !ok {
		return Frame{}, false
	}
	return s.frame(v, s.clock.Now()), true
}

func (s *Scene) frame(v *View, now time.Time) Frame {
	elapsed := now.Sub(v.mountedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	cfg := v.aura.Config
	t := elapsed.Seconds()
	revealing := v.reveal && elapsed < s.reveal.Window
	f := Frame{
		ViewID:    v.id,
		AuraID:    v.aura.ID,
		Tier:      v.aura.Tier,
		Config:    cfg,
		Elapsed:   elapsed,
		Revealing: revealing,
		Particles: make([]aura.ParticleFrame, len(v.aura.Pattern)),
	}
	for i, p := range v.aura.Pattern {
		pf := aura.ParticleFrame{
			Index:   p.Index,
			Size:    cfg.Size,
			Color:   aura.ColorAt(cfg, v.hue0[i], t, s.rng),
			Scale:   1,
			Opacity: 1,
		}
		released := true
		if revealing {
			released, pf.Scale = s.reveal.At(p.Index, elapsed)
			pf.Opacity = pf.Scale
		}
		pt := aura.Center(cfg)
		if released {
			pt = aura.PositionAt(p, cfg, t)
		}
		pf.X, pf.Y = pt.X, pt.Y
		f.Particles[i] = pf
	}
	return f
}

// Run steps the scene every tick and hands frames to sink until ctx ends.
func (s *Scene) Run(ctx context.Context, sink func([]Frame)) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sink(s.Step())
		}
	}
}
