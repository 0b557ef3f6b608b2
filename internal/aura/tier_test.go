package aura

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/xtding233/aura-gacha/internal/gacha"
)

func TestReferenceTableValid(t *testing.T) {
	ref := ReferenceTable()
	if err := ref.Validate(); err != nil {
		t.Fatalf("reference table invalid: %v", err)
	}
	want := []string{"common", "rare", "epic", "legendary", "chroma", "starlight"}
	if got := strings.Join(ref.Names(), ","); got != strings.Join(want, ",") {
		t.Fatalf("declared order changed: %s", got)
	}
	for _, c := range ref {
		if c.BaseRadius != DefaultBaseRadius {
			t.Fatalf("%s radius = %v", c.Name, c.BaseRadius)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(Table) Table{
		"weights off": func(t Table) Table { t[0].Weight = 0.5; return t },
		"negative":    func(t Table) Table { t[0].Weight = -0.1; t[1].Weight = 0.4; return t },
		"duplicate":   func(t Table) Table { t[1].Name = "common"; return t },
		"no name":     func(t Table) Table { t[2].Name = ""; return t },
		"bad color":   func(t Table) Table { t[3].Color = "orange"; return t },
		"no count":    func(t Table) Table { t[0].ParticleCount = 0; return t },
		"no speed":    func(t Table) Table { t[0].Speed = 0; return t },
		"no radius":   func(t Table) Table { t[0].BaseRadius = math.Inf(1); return t },
	}
	for name, mutate := range cases {
		if err := mutate(ReferenceTable()).Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
	if err := (Table{}).Validate(); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("empty table: %v", err)
	}
}

func TestPickAtBoundaries(t *testing.T) {
	ref := ReferenceTable()
	cases := []struct {
		r    float64
		want string
	}{
		{0, "common"},
		{0.92, "epic"},
		{math.Nextafter(0.995, 0), "chroma"},
		{1, "starlight"},
	}
	for _, c := range cases {
		got, err := ref.PickAt(c.r)
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != c.want {
			t.Errorf("PickAt(%v)=%s want %s", c.r, got.Name, c.want)
		}
	}
	if _, err := (Table{}).PickAt(0); !errors.Is(err, ErrEmptyTable) {
		t.Fatalf("empty: %v", err)
	}
}

func TestDrawWeightConformance(t *testing.T) {
	ref := ReferenceTable()
	rng := gacha.NewSeededRNG(2024)
	const n = 100000
	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		c, err := ref.Draw(rng)
		if err != nil {
			t.Fatal(err)
		}
		counts[c.Name]++
	}
	for _, c := range ref {
		freq := float64(counts[c.Name]) / n
		if math.Abs(freq-c.Weight) > 0.01 {
			t.Errorf("%s: freq %.4f vs weight %.4f", c.Name, freq, c.Weight)
		}
	}
}

func TestLookupAndClone(t *testing.T) {
	ref := ReferenceTable()
	c, ok := ref.Lookup("chroma")
	if !ok || !c.IsRainbow() {
		t.Fatalf("chroma lookup: %+v %v", c, ok)
	}
	if _, ok := ref.Lookup("mythic"); ok {
		t.Fatalf("unknown tier found")
	}
	cp := ref.Clone()
	cp[0].Name = "changed"
	if ref[0].Name != "common" {
		t.Fatalf("clone shares storage")
	}
}
