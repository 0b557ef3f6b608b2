// Package controller runs the roll → reveal → keep cycle.
package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/xtding233/aura-gacha/internal/aura"
	"github.com/xtding233/aura-gacha/internal/clock"
	"github.com/xtding233/aura-gacha/internal/gacha"
	"github.com/xtding233/aura-gacha/internal/inventory"
	"github.com/xtding233/aura-gacha/internal/logging"
	"github.com/xtding233/aura-gacha/internal/scene"
)

// DefaultLockout is how long a roll blocks the next one.
const DefaultLockout = 1000 * time.Millisecond

type State int

const (
	Idle     State = iota // no current aura
	Rolling               // reveal in progress, rolls ignored
	Revealed              // current aura waits for keep or a new roll
)

func (s State) String() string {
	switch s {
	case Rolling:
		return "rolling"
	case Revealed:
		return "revealed"
	default:
		return "idle"
	}
}

type Options struct {
	Table      aura.Table
	Store      inventory.Store
	Scene      *scene.Scene // optional; views are mounted only when set
	Clock      clock.Clock
	TierRNG    gacha.RandomSource
	PatternRNG gacha.RandomSource
	Lockout    time.Duration
}

// Controller owns the current aura and the inventory.
type Controller struct {
	mu sync.Mutex

	table   aura.Table
	store   inventory.Store
	scene   *scene.Scene
	clock   clock.Clock
	tierRNG gacha.RandomSource
	gen     *aura.Generator
	lockout time.Duration

	current     *aura.Aura
	currentView *scene.View
	rolledAt    time.Time
	rolling     bool

	inventory      []aura.Aura
	inventoryViews []*scene.View
}

// New validates the table and restores the inventory from the store.
// A missing or unreadable inventory starts empty.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if err := opts.Table.Validate(); err != nil {
		return nil, err
	}
	if opts.Store == nil {
		return nil, errors.New("controller: store is required")
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Lockout <= 0 {
		opts.Lockout = DefaultLockout
	}
	c := &Controller{
		table:   opts.Table.Clone(),
		store:   opts.Store,
		scene:   opts.Scene,
		clock:   opts.Clock,
		tierRNG: opts.TierRNG,
		gen:     aura.NewGenerator(opts.PatternRNG),
		lockout: opts.Lockout,
	}
	if c.tierRNG == nil {
		c.tierRNG = gacha.DefaultRNG()
	}

	auras, found, err := opts.Store.Load(ctx)
	switch {
	case errors.Is(err, inventory.ErrCorruptBlob):
		logging.Warn("inventory blob corrupt, starting empty", err, nil)
	case err != nil:
		logging.Error("inventory load failed, starting empty", err, nil)
	case found:
		c.inventory = auras
	}
	logging.Info("inventory restored", logging.Fields{"count": len(c.inventory)})
	return c, nil
}

// settle ends the lockout once it has run its course. Caller holds mu.
func (c *Controller) settle() {
	if c.rolling && !c.clock.Now().Before(c.rolledAt.Add(c.lockout)) {
		c.rolling = false
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

func (c *Controller) state() State {
	c.settle()
	switch {
	case c.rolling:
		return Rolling
	case c.current != nil:
		return Revealed
	default:
		return Idle
	}
}

// Roll draws a new aura and starts its reveal. Any unkept current aura is discarded.
// ok is false when a roll is already in progress.
func (c *Controller) Roll() (a aura.Aura, ok bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state() == Rolling {
		return aura.Aura{}, false, nil
	}

	cfg, err := c.table.Draw(c.tierRNG)
	if err != nil {
		return aura.Aura{}, false, err
	}
	now := c.clock.Now()
	a, err = aura.New(cfg, c.gen, now)
	if err != nil {
		return aura.Aura{}, false, err
	}

	if c.current != nil {
		logging.Debug("unkept aura discarded", logging.Fields{"aura": c.current.ID, "tier": c.current.Tier})
	}
	c.unmountCurrent()
	c.current = &a
	c.rolledAt = now
	c.rolling = true
	if c.scene != nil {
		c.currentView = c.scene.Mount(a, true)
	}
	logging.Info("aura rolled", logging.Fields{"aura": a.ID, "tier": a.Tier, "particles": len(a.Pattern)})
	return a, true, nil
}

// Keep moves the current aura into the inventory and saves it.
// ok is false when nothing was kept (rolling, or no current aura).
// Save failures are logged; the in-memory inventory still grows.
func (c *Controller) Keep(ctx context.Context) (aura.Aura, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state() != Revealed {
		return aura.Aura{}, false
	}
	a := *c.current
	c.inventory = append(c.inventory, a)
	c.unmountCurrent()
	c.current = nil
	if c.scene != nil && c.inventoryViews != nil {
		c.inventoryViews = append(c.inventoryViews, c.scene.Mount(a, false))
	}

	if err := c.store.Save(ctx, c.inventory); err != nil {
		logging.Error("inventory save failed", err, logging.Fields{"count": len(c.inventory)})
	}
	logging.Info("aura kept", logging.Fields{"aura": a.ID, "tier": a.Tier, "count": len(c.inventory)})
	return a, true
}

func (c *Controller) unmountCurrent() {
	if c.scene != nil && c.currentView != nil {
		c.scene.Unmount(c.currentView)
	}
	c.currentView = nil
}

func (c *Controller) Current() (aura.Aura, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return aura.Aura{}, false
	}
	return *c.current, true
}

func (c *Controller) CurrentView() *scene.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentView
}

// Inventory returns a copy of the kept auras in keep order.
func (c *Controller) Inventory() []aura.Aura {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]aura.Aura(nil), c.inventory...)
}

// SetTable swaps the tier table for future rolls. Kept and current auras
// carry their own config snapshot and are unaffected.
func (c *Controller) SetTable(t aura.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = t.Clone()
	return nil
}

func (c *Controller) Table() aura.Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.Clone()
}

// ShowInventory mounts a looping view for every kept aura.
func (c *Controller) ShowInventory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scene == nil || c.inventoryViews != nil {
		return
	}
	c.inventoryViews = make([]*scene.View, 0, len(c.inventory))
	for _, a := range c.inventory {
		c.inventoryViews = append(c.inventoryViews, c.scene.Mount(a, false))
	}
}

// HideInventory unmounts the inventory views.
func (c *Controller) HideInventory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideInventory()
}

func (c *Controller) hideInventory() {
	for _, v := range c.inventoryViews {
		c.scene.Unmount(v)
	}
	c.inventoryViews = nil
}

func (c *Controller) InventoryVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inventoryViews != nil
}

// Close unmounts every view this controller started.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unmountCurrent()
	c.hideInventory()
}
