package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xtding233/aura-gacha/internal/aura"
	"github.com/xtding233/aura-gacha/internal/clock"
	"github.com/xtding233/aura-gacha/internal/gacha"
	"github.com/xtding233/aura-gacha/internal/inventory"
	"github.com/xtding233/aura-gacha/internal/scene"
)

type harness struct {
	ctrl  *Controller
	clock *clock.Mock
	scene *scene.Scene
	store *inventory.KeyedStore
	blobs *inventory.MemoryBlobs
}

func newHarness(t *testing.T, tierRNG gacha.RandomSource) *harness {
	t.Helper()
	clk := clock.NewMock(time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC))
	blobs := inventory.NewMemoryBlobs()
	store := inventory.NewKeyedStore(blobs, "")
	sc := scene.New(scene.Options{Clock: clk, RNG: gacha.NewSeededRNG(3)})
	ctrl, err := New(context.Background(), Options{
		Table:      aura.ReferenceTable(),
		Store:      store,
		Scene:      sc,
		Clock:      clk,
		TierRNG:    tierRNG,
		PatternRNG: gacha.NewSeededRNG(2),
	})
	if err != nil {
		t.Fatal(err)
	}
	return &harness{ctrl: ctrl, clock: clk, scene: sc, store: store, blobs: blobs}
}

func TestRollRevealKeep(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, gacha.NewFixedRNG(0.92))
	if h.ctrl.State() != Idle || len(h.ctrl.Inventory()) != 0 {
		t.Fatalf("fresh controller not idle and empty")
	}

	a, ok, err := h.ctrl.Roll()
	if err != nil || !ok {
		t.Fatalf("roll: ok=%v err=%v", ok, err)
	}
	if a.Tier != "epic" {
		t.Fatalf("r=0.92 should draw epic; got %s", a.Tier)
	}
	if h.ctrl.State() != Rolling {
		t.Fatalf("state after roll = %s", h.ctrl.State())
	}
	if _, ok := h.ctrl.Keep(ctx); ok {
		t.Fatalf("keep during the lockout should be ignored")
	}

	h.clock.Advance(DefaultLockout)
	if h.ctrl.State() != Revealed {
		t.Fatalf("state after lockout = %s", h.ctrl.State())
	}
	cur, ok := h.ctrl.Current()
	if !ok || cur.ID != a.ID {
		t.Fatalf("current aura lost after lockout")
	}

	kept, ok := h.ctrl.Keep(ctx)
	if !ok || kept.ID != a.ID {
		t.Fatalf("keep failed")
	}
	inv := h.ctrl.Inventory()
	if len(inv) != 1 || inv[0].Tier != "epic" {
		t.Fatalf("inventory = %+v", inv)
	}
	if h.ctrl.State() != Idle {
		t.Fatalf("state after keep = %s", h.ctrl.State())
	}

	if _, ok := h.ctrl.Keep(ctx); ok {
		t.Fatalf("keep with no current aura should be a no-op")
	}
	if len(h.ctrl.Inventory()) != 1 {
		t.Fatalf("inventory changed on empty keep")
	}

	saved, found, err := h.store.Load(ctx)
	if err != nil || !found || len(saved) != 1 || saved[0].ID != a.ID {
		t.Fatalf("inventory not flushed: %v %v %v", saved, found, err)
	}
}

func TestRollIgnoredWhileRolling(t *testing.T) {
	h := newHarness(t, gacha.NewSeededRNG(1))
	first, ok, _ := h.ctrl.Roll()
	if !ok {
		t.Fatal("first roll refused")
	}
	h.clock.Advance(DefaultLockout - time.Millisecond)
	if _, ok, err := h.ctrl.Roll(); ok || err != nil {
		t.Fatalf("second roll inside the lockout: ok=%v err=%v", ok, err)
	}
	cur, _ := h.ctrl.Current()
	if cur.ID != first.ID {
		t.Fatalf("current replaced during lockout")
	}
}

func TestRerollDiscardsUnkept(t *testing.T) {
	h := newHarness(t, gacha.NewSeededRNG(1))
	first, _, _ := h.ctrl.Roll()
	firstView := h.ctrl.CurrentView()
	h.clock.Advance(DefaultLockout)

	second, ok, _ := h.ctrl.Roll()
	if !ok || second.ID == first.ID {
		t.Fatalf("reroll did not replace the aura")
	}
	if _, ok := h.scene.Render(firstView); ok {
		t.Fatalf("discarded aura still rendered")
	}
	if h.scene.Active() != 1 {
		t.Fatalf("active views = %d", h.scene.Active())
	}
	if len(h.ctrl.Inventory()) != 0 {
		t.Fatalf("discarded aura reached the inventory")
	}
}

func TestInventoryKeepsDrawOrder(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, gacha.NewFixedRNG(0.1, 0.8, 0.999))
	var want []string
	for i := 0; i < 3; i++ {
		a, _, _ := h.ctrl.Roll()
		h.clock.Advance(DefaultLockout)
		h.ctrl.Keep(ctx)
		want = append(want, a.Tier)
	}
	inv := h.ctrl.Inventory()
	for i, a := range inv {
		if a.Tier != want[i] {
			t.Fatalf("slot %d holds %s want %s", i, a.Tier, want[i])
		}
	}
	if want[0] != "common" || want[1] != "rare" || want[2] != "starlight" {
		t.Fatalf("draws = %v", want)
	}
}

func TestViewsReleased(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, gacha.NewSeededRNG(4))
	h.ctrl.Roll()
	if h.scene.Active() != 1 {
		t.Fatalf("roll should mount one view")
	}
	h.clock.Advance(DefaultLockout)
	h.ctrl.Keep(ctx)
	if h.scene.Active() != 0 {
		t.Fatalf("keep should unmount the current view")
	}

	h.ctrl.ShowInventory()
	if h.scene.Active() != 1 || !h.ctrl.InventoryVisible() {
		t.Fatalf("inventory view not mounted")
	}
	h.ctrl.Roll()
	h.clock.Advance(DefaultLockout)
	h.ctrl.Keep(ctx)
	if h.scene.Active() != 2 {
		t.Fatalf("kept aura should join the open inventory; active=%d", h.scene.Active())
	}
	h.ctrl.HideInventory()
	if h.scene.Active() != 0 {
		t.Fatalf("hide left %d views", h.scene.Active())
	}

	h.ctrl.Roll()
	h.ctrl.ShowInventory()
	h.ctrl.Close()
	if h.scene.Active() != 0 {
		t.Fatalf("close left %d views", h.scene.Active())
	}
}

func TestCorruptInventoryStartsEmpty(t *testing.T) {
	ctx := context.Background()
	blobs := inventory.NewMemoryBlobs()
	_ = blobs.Put(ctx, inventory.DefaultKey, []byte("]]garbage"))
	ctrl, err := New(ctx, Options{
		Table: aura.ReferenceTable(),
		Store: inventory.NewKeyedStore(blobs, ""),
		Clock: clock.NewMock(time.Unix(0, 0)),
	})
	if err != nil {
		t.Fatalf("corrupt blob must not fail startup: %v", err)
	}
	if len(ctrl.Inventory()) != 0 {
		t.Fatalf("inventory should be empty")
	}
}

type failingStore struct{ saves int }

func (f *failingStore) Load(context.Context) ([]aura.Aura, bool, error) {
	return nil, false, errors.New("disk gone")
}

func (f *failingStore) Save(context.Context, []aura.Aura) error {
	f.saves++
	return errors.New("disk gone")
}

func TestSaveFailureKeepsInMemory(t *testing.T) {
	clk := clock.NewMock(time.Unix(0, 0))
	fs := &failingStore{}
	ctrl, err := New(context.Background(), Options{Table: aura.ReferenceTable(), Store: fs, Clock: clk})
	if err != nil {
		t.Fatal(err)
	}
	ctrl.Roll()
	clk.Advance(DefaultLockout)
	if _, ok := ctrl.Keep(context.Background()); !ok {
		t.Fatalf("keep refused")
	}
	if fs.saves != 1 || len(ctrl.Inventory()) != 1 {
		t.Fatalf("saves=%d inventory=%d", fs.saves, len(ctrl.Inventory()))
	}
}

func TestRestoresInventory(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, gacha.NewSeededRNG(8))
	h.ctrl.Roll()
	h.clock.Advance(DefaultLockout)
	kept, _ := h.ctrl.Keep(ctx)

	again, err := New(ctx, Options{Table: aura.ReferenceTable(), Store: h.store, Clock: h.clock})
	if err != nil {
		t.Fatal(err)
	}
	inv := again.Inventory()
	if len(inv) != 1 || inv[0].ID != kept.ID {
		t.Fatalf("restored inventory = %+v", inv)
	}
}

func TestInvalidTableFailsFast(t *testing.T) {
	bad := aura.ReferenceTable()
	bad[0].Weight = 0.1
	_, err := New(context.Background(), Options{Table: bad, Store: inventory.NewKeyedStore(inventory.NewMemoryBlobs(), "")})
	if err == nil {
		t.Fatalf("weights summing to 0.4 accepted")
	}
}

func TestSetTableLeavesSnapshots(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, gacha.NewFixedRNG(0))
	h.ctrl.Roll()
	h.clock.Advance(DefaultLockout)
	h.ctrl.Keep(ctx)

	edited := aura.ReferenceTable()
	edited[0].Color = "#ff0000"
	edited[0].ParticleCount = 5
	if err := h.ctrl.SetTable(edited); err != nil {
		t.Fatal(err)
	}
	if inv := h.ctrl.Inventory(); inv[0].Config.Color != "#ffffff" || len(inv[0].Pattern) != 20 {
		t.Fatalf("kept aura changed with the table")
	}
	a, _, _ := h.ctrl.Roll()
	if a.Config.Color != "#ff0000" || len(a.Pattern) != 5 {
		t.Fatalf("new roll ignores the new table: %+v", a.Config)
	}

	broken := aura.ReferenceTable()
	broken[1].Weight = 0
	if err := h.ctrl.SetTable(broken); err == nil {
		t.Fatalf("broken table accepted")
	}
}
