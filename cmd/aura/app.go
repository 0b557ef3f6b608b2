package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xtding233/aura-gacha/internal/clock"
	"github.com/xtding233/aura-gacha/internal/controller"
	"github.com/xtding233/aura-gacha/internal/gacha"
	"github.com/xtding233/aura-gacha/internal/game"
	"github.com/xtding233/aura-gacha/internal/inventory"
	"github.com/xtding233/aura-gacha/internal/logging"
	"github.com/xtding233/aura-gacha/internal/scene"
)

type rootFlags struct {
	configPath string
	store      string
	data       string
	seed       uint64
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:           "aura",
		Short:         "Roll, keep and watch particle auras",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if f.logFile != "" {
				w, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				logging.SetOutput(w)
			}
			return logging.SetLevel(f.logLevel)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML config laid over the built-in tier table")
	pf.StringVar(&f.store, "store", "", "inventory backend: file, sqlite or memory (default from config)")
	pf.StringVar(&f.data, "data", "", "data directory (file) or database path (sqlite)")
	pf.Uint64Var(&f.seed, "seed", 0, "seed for reproducible rolls; 0 uses crypto randomness")
	pf.StringVar(&f.logLevel, "log-level", "info", "debug, info, warn or error")
	pf.StringVar(&f.logFile, "log-file", "", "append logs to this file instead of stderr")

	root.AddCommand(
		newRollCmd(f),
		newInventoryCmd(f),
		newSimulateCmd(f),
		newWatchCmd(f),
	)
	return root
}

// app bundles everything a command needs.
type app struct {
	loader     *game.Loader
	settings   game.Settings
	scene      *scene.Scene
	ctrl       *controller.Controller
	closeStore func() error
}

func (f *rootFlags) rng(stream uint64) gacha.RandomSource {
	if f.seed == 0 {
		return gacha.DefaultRNG()
	}
	return gacha.NewSeededRNG(f.seed + stream)
}

func (f *rootFlags) loadSettings() (*game.Loader, game.Settings, error) {
	loader := game.NewLoader(f.configPath)
	s, err := game.LoadSettings(loader)
	if err != nil {
		return nil, game.Settings{}, err
	}
	if f.store != "" {
		s.Storage.Backend = f.store
	}
	if f.data != "" {
		s.Storage.Path = f.data
	}
	return loader, s, nil
}

func openStore(cfg game.StorageCfg) (inventory.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case "memory":
		return inventory.NewKeyedStore(inventory.NewMemoryBlobs(), cfg.Key), noop, nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "data"
		}
		if !strings.HasSuffix(path, ".db") {
			path = filepath.Join(path, "aura.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, err
		}
		blobs, err := inventory.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return inventory.NewKeyedStore(blobs, cfg.Key), blobs.Close, nil
	case "file", "":
		dir := cfg.Path
		if dir == "" {
			dir = "data"
		}
		return inventory.NewKeyedStore(inventory.NewFileBlobs(dir), cfg.Key), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func newApp(ctx context.Context, f *rootFlags) (*app, error) {
	loader, settings, err := f.loadSettings()
	if err != nil {
		return nil, err
	}
	store, closeStore, err := openStore(settings.Storage)
	if err != nil {
		return nil, err
	}
	clk := clock.System{}
	sc := scene.New(scene.Options{
		Clock:  clk,
		RNG:    f.rng(2),
		Reveal: settings.Reveal,
		Tick:   settings.Tick,
	})
	ctrl, err := controller.New(ctx, controller.Options{
		Table:      settings.Table,
		Store:      store,
		Scene:      sc,
		Clock:      clk,
		TierRNG:    f.rng(0),
		PatternRNG: f.rng(1),
		Lockout:    settings.Lockout,
	})
	if err != nil {
		closeStore()
		return nil, err
	}
	logging.Debug("app ready", logging.Fields{
		"config":  settings.Version,
		"store":   settings.Storage.Backend,
		"tiers":   len(settings.Table),
		"lockout": settings.Lockout.String(),
	})
	return &app{loader: loader, settings: settings, scene: sc, ctrl: ctrl, closeStore: closeStore}, nil
}

func (a *app) Close() {
	a.ctrl.Close()
	a.scene.Close()
	if err := a.closeStore(); err != nil {
		logging.Error("close store", err, nil)
	}
}
