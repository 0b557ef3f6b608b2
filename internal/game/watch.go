package game

import (
	"os"
	"sync"
	"time"

	"github.com/xtding233/aura-gacha/internal/logging"
)

// FileWatcher polls file modification times and triggers a callback on change.
type FileWatcher struct {
	Paths    []string
	Interval time.Duration

	onChange  func(string) // called with path that changed
	stopCh    chan struct{}
	stopOnce  sync.Once
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start primes the mtime cache and begins polling in a goroutine.
func (w *FileWatcher) Start() {
	w.scan(true)
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher. Safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// scan invokes onChange for files whose mtime moved since the last scan.
// A file that appears after priming counts as a change.
func (w *FileWatcher) scan(prime bool) {
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if prime {
			continue
		}
		if (!ok || mt.After(last)) && w.onChange != nil {
			w.onChange(p)
		}
	}
}

// WatchSettings reloads the loader's file on change and hands valid settings to apply.
// Invalid edits are logged and ignored; the previous settings stay in force.
func WatchSettings(l *Loader, interval time.Duration, apply func(Settings)) *FileWatcher {
	w := NewFileWatcher([]string{l.Path()}, interval, func(path string) {
		l.Invalidate()
		s, err := LoadSettings(l)
		if err != nil {
			logging.Warn("config reload rejected", err, logging.Fields{"path": path})
			return
		}
		logging.Info("config reloaded", logging.Fields{"path": path, "version": s.Version, "tiers": len(s.Table)})
		apply(s)
	})
	w.Start()
	return w
}
