// Package term paints scene frames onto a terminal with tcell.
package term

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/xtding233/aura-gacha/internal/aura"
	"github.com/xtding233/aura-gacha/internal/scene"
)

// Slot is a rectangle of cells one aura is drawn into.
type Slot struct {
	X, Y, W, H int
}

// Cell maps a particle position inside the [0, 2r] box onto a cell of the slot.
// ok is false for positions outside the box.
func (s Slot) Cell(x, y, r float64) (cx, cy int, ok bool) {
	if r <= 0 || s.W <= 0 || s.H <= 0 {
		return 0, 0, false
	}
	fx := x / (2 * r)
	fy := y / (2 * r)
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}
	cx = int(fx * float64(s.W-1))
	cy = int(fy * float64(s.H-1))
	return s.X + cx, s.Y + cy, true
}

// Layout places the current aura on top and inventory auras in rows under it.
// Terminal cells are about twice as tall as wide, so slots are twice as wide.
func Layout(width, height, inventory int) (current Slot, items []Slot) {
	current = Slot{X: 1, Y: 2, W: 40, H: 20}
	if current.W > width-2 {
		current.W = width - 2
	}
	const itemW, itemH = 20, 10
	x, y := 1, current.Y+current.H+2
	for i := 0; i < inventory; i++ {
		if x+itemW > width {
			x = 1
			y += itemH + 2
		}
		if y+itemH > height {
			break
		}
		items = append(items, Slot{X: x, Y: y, W: itemW, H: itemH})
		x += itemW + 2
	}
	return current, items
}

// Surface is a tcell screen showing aura frames.
type Surface struct {
	screen tcell.Screen
}

// NewSurface takes over the terminal.
func NewSurface() (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewSurfaceWithScreen(screen)
}

// NewSurfaceWithScreen wraps an existing screen, e.g. a simulation screen in tests.
func NewSurfaceWithScreen(screen tcell.Screen) (*Surface, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	return &Surface{screen: screen}, nil
}

// Events delivers terminal events until the screen is finalized.
func (s *Surface) Events() <-chan tcell.Event {
	ch := make(chan tcell.Event, 100)
	go func() {
		defer close(ch)
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			ch <- ev
		}
	}()
	return ch
}

// Draw repaints the screen. current is the frame of the rolled aura, if any.
func (s *Surface) Draw(current *scene.Frame, inventory []scene.Frame, status string) {
	s.screen.Clear()
	width, height := s.screen.Size()
	s.text(1, 0, status, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	curSlot, itemSlots := Layout(width, height, len(inventory))
	if current != nil {
		s.frame(curSlot, *current)
		if !current.Revealing {
			s.text(curSlot.X+curSlot.W/2-len(current.Tier)/2, curSlot.Y+curSlot.H, strings.ToUpper(current.Tier), tcell.StyleDefault.Bold(true))
		}
	}
	for i, slot := range itemSlots {
		s.frame(slot, inventory[i])
		s.text(slot.X+slot.W/2-len(inventory[i].Tier)/2, slot.Y+slot.H, strings.ToUpper(inventory[i].Tier), tcell.StyleDefault)
	}
	s.screen.Show()
}

func (s *Surface) frame(slot Slot, f scene.Frame) {
	for _, p := range f.Particles {
		if p.Opacity <= 0 {
			continue
		}
		cx, cy, ok := slot.Cell(p.X, p.Y, f.Config.BaseRadius)
		if !ok {
			continue
		}
		s.screen.SetContent(cx, cy, glyph(p), nil, tcell.StyleDefault.Foreground(cellColor(p)))
	}
}

func (s *Surface) text(x, y int, msg string, style tcell.Style) {
	for i, r := range msg {
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Close restores the terminal.
func (s *Surface) Close() {
	s.screen.Fini()
}

func glyph(p aura.ParticleFrame) rune {
	switch {
	case p.Scale < 0.5:
		return '·'
	case p.Size >= 5:
		return '●'
	default:
		return '•'
	}
}

// cellColor dims the particle color by its alpha and opacity over black.
func cellColor(p aura.ParticleFrame) tcell.Color {
	k := p.Color.Alpha * p.Opacity
	r, g, b := p.Color.RGB255()
	return tcell.NewRGBColor(int32(float64(r)*k), int32(float64(g)*k), int32(float64(b)*k))
}
