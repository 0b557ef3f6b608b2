package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/xtding233/aura-gacha/internal/controller"
	"github.com/xtding233/aura-gacha/internal/game"
	"github.com/xtding233/aura-gacha/internal/logging"
	"github.com/xtding233/aura-gacha/internal/scene"
	"github.com/xtding233/aura-gacha/internal/term"
)

func newWatchCmd(f *rootFlags) *cobra.Command {
	var reload time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Animated terminal view: r rolls, k keeps, i toggles inventory, q quits",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.logFile == "" {
				// the screen owns the terminal
				logging.SetOutput(io.Discard)
			}
			a, err := newApp(cmd.Context(), f)
			if err != nil {
				return err
			}
			defer a.Close()

			if f.configPath != "" && reload > 0 {
				w := game.WatchSettings(a.loader, reload, func(s game.Settings) {
					if err := a.ctrl.SetTable(s.Table); err != nil {
						logging.Warn("reloaded table rejected", err, nil)
					}
				})
				defer w.Stop()
			}

			surface, err := term.NewSurface()
			if err != nil {
				return err
			}
			defer surface.Close()
			return runWatch(cmd.Context(), a, surface)
		},
	}
	cmd.Flags().DurationVar(&reload, "reload", 2*time.Second, "config poll interval for hot reload; 0 disables")
	return cmd
}

func runWatch(ctx context.Context, a *app, surface *term.Surface) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := surface.Events()
	done := make(chan error, 1)
	go func() {
		done <- a.scene.Run(ctx, func(frames []scene.Frame) {
			current, items := splitFrames(frames, a.ctrl.CurrentView())
			surface.Draw(current, items, status(a.ctrl))
		})
	}()

	for {
		select {
		case <-ctx.Done():
			<-done
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				cancel()
				continue
			}
			if !handleKey(ctx, a.ctrl, ev) {
				cancel()
			}
		}
	}
}

// handleKey applies one terminal event; false means quit.
func handleKey(ctx context.Context, ctrl *controller.Controller, ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}
	if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC {
		return false
	}
	if key.Key() != tcell.KeyRune {
		return true
	}
	switch key.Rune() {
	case 'q':
		return false
	case 'r':
		if _, _, err := ctrl.Roll(); err != nil {
			logging.Error("roll failed", err, nil)
		}
	case 'k':
		ctrl.Keep(ctx)
	case 'i':
		if ctrl.InventoryVisible() {
			ctrl.HideInventory()
		} else {
			ctrl.ShowInventory()
		}
	}
	return true
}

// splitFrames separates the rolled aura's frame from inventory frames.
func splitFrames(frames []scene.Frame, current *scene.View) (*scene.Frame, []scene.Frame) {
	var cur *scene.Frame
	items := make([]scene.Frame, 0, len(frames))
	for i := range frames {
		if current != nil && frames[i].ViewID == current.ID() {
			cur = &frames[i]
			continue
		}
		items = append(items, frames[i])
	}
	return cur, items
}

func status(ctrl *controller.Controller) string {
	label := "Roll New Aura"
	if ctrl.State() == controller.Rolling {
		label = "Rolling..."
	}
	return fmt.Sprintf("[r] %s   [k] Keep Aura   [i] Inventory (%d)   [q] Quit", label, len(ctrl.Inventory()))
}
