package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/xtding233/aura-gacha/internal/aura"
	"github.com/xtding233/aura-gacha/internal/clock"
	"github.com/xtding233/aura-gacha/internal/gacha"
	"github.com/xtding233/aura-gacha/internal/scene"
)

func TestSlotCell(t *testing.T) {
	s := Slot{X: 10, Y: 5, W: 41, H: 21}
	cases := []struct {
		x, y   float64
		cx, cy int
	}{
		{0, 0, 10, 5},
		{80, 80, 30, 15},
		{160, 160, 50, 25},
	}
	for _, c := range cases {
		cx, cy, ok := s.Cell(c.x, c.y, 80)
		if !ok || cx != c.cx || cy != c.cy {
			t.Errorf("Cell(%v,%v) = %d,%d,%v want %d,%d", c.x, c.y, cx, cy, ok, c.cx, c.cy)
		}
	}
	if _, _, ok := s.Cell(170, 80, 80); ok {
		t.Errorf("wobble past the box should be clipped")
	}
	if _, _, ok := (Slot{}).Cell(1, 1, 80); ok {
		t.Errorf("empty slot accepted a particle")
	}
}

func TestLayoutWrapsInventory(t *testing.T) {
	cur, items := Layout(70, 80, 5)
	if cur.W != 40 || cur.H != 20 {
		t.Fatalf("current slot %+v", cur)
	}
	if len(items) != 5 {
		t.Fatalf("placed %d of 5", len(items))
	}
	if items[3].Y <= items[0].Y || items[3].X != 1 {
		t.Fatalf("fourth item should wrap to a new row: %+v", items[3])
	}
	for _, it := range items {
		if it.Y < cur.Y+cur.H {
			t.Fatalf("item overlaps current slot: %+v", it)
		}
	}

	_, items = Layout(70, 40, 50)
	if len(items) >= 50 {
		t.Fatalf("layout ignored screen height")
	}
}

func TestDrawOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	s, err := NewSurfaceWithScreen(screen)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	screen.SetSize(80, 40)

	clk := clock.NewMock(time.Unix(0, 0))
	sc := scene.New(scene.Options{Clock: clk, RNG: gacha.NewSeededRNG(1)})
	a, err := aura.New(aura.ReferenceTable()[1], aura.NewGenerator(gacha.NewSeededRNG(2)), clk.Now())
	if err != nil {
		t.Fatal(err)
	}
	v := sc.Mount(a, false)
	clk.Advance(time.Second)
	f, _ := sc.Render(v)
	s.Draw(&f, []scene.Frame{f}, "status")
	s.Draw(nil, nil, "empty")
}

func TestCellColorDimsByAlpha(t *testing.T) {
	p := aura.ParticleFrame{
		Color:   aura.ColorAt(aura.ReferenceTable()[5], 0, 0, gacha.NewFixedRNG(0)),
		Opacity: 1,
		Scale:   1,
	}
	want := tcell.NewRGBColor(127, 127, 127)
	if got := cellColor(p); got != want {
		t.Fatalf("half-alpha white = %v want %v", got, want)
	}
	if glyph(aura.ParticleFrame{Scale: 0.2}) != '·' || glyph(aura.ParticleFrame{Scale: 1, Size: 6}) != '●' {
		t.Fatalf("glyph choice wrong")
	}
}
