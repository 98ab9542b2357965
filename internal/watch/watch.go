// Package watch reruns a build whenever files below a content directory change.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
	"git.home.luguber.info/inful/curriculumgen/internal/logfields"
	"git.home.luguber.info/inful/curriculumgen/internal/observability"
)

// DefaultDebounce coalesces bursts of editor writes into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// BuildFunc performs one full regeneration.
type BuildFunc func(ctx context.Context) error

// Watcher triggers BuildFunc on content changes. A failed build is logged and
// recorded in Status; the watcher keeps running.
type Watcher struct {
	root     string
	build    BuildFunc
	debounce time.Duration

	mu           sync.RWMutex
	lastErr      error
	hasGoodBuild bool
	builds       int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// New creates a watcher for root.
func New(root string, build BuildFunc, opts ...Option) *Watcher {
	w := &Watcher{root: root, build: build, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Status reports the outcome of the most recent build, whether any build has
// succeeded and how many builds ran.
func (w *Watcher) Status() (lastErr error, hasGoodBuild bool, builds int) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr, w.hasGoodBuild, w.builds
}

// Run performs an initial build and then rebuilds on every debounced change
// until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.root)
	if err != nil || !info.IsDir() {
		return ferrors.ScanError("watch root is not a directory").WithContext("path", w.root).Build()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return ferrors.InternalError("failed to create file watcher").WithCause(err).Build()
	}
	defer func() { _ = fw.Close() }()
	addDirsRecursive(fw, w.root)

	w.runBuild(ctx)

	rebuildReq, trigger := w.debouncer()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(ctx, rebuildReq)
	}()
	defer wg.Wait()

	slog.Info("Watching for content changes", logfields.Path(w.root))
	for {
		select {
		case <-ctx.Done():
			slog.Info("Stopping watcher")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, ev, trigger)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) debouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

// worker runs builds one at a time; requests arriving during a build
// coalesce into a single follow-up build.
func (w *Watcher) worker(ctx context.Context, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			slog.Info("Change detected; regenerating curriculum")
			w.runBuild(ctx)
		}
	}
}

func (w *Watcher) runBuild(ctx context.Context) {
	err := w.build(ctx)
	w.mu.Lock()
	w.builds++
	n := w.builds
	w.lastErr = err
	if err == nil {
		w.hasGoodBuild = true
	}
	w.mu.Unlock()
	if err != nil && ctx.Err() == nil {
		observability.WarnContext(ctx, "Regeneration failed; previous artifact kept",
			slog.Int("build", n), logfields.Error(err))
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			addDirsRecursive(fw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func addDirsRecursive(fw *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if err := fw.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters hidden files and editor swap/backup files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."),
		strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasSuffix(base, ".tmp"),
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return base == "Thumbs.db"
}
