package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"writings/internal/build"
	"writings/internal/ingest"
	"writings/internal/logfields"
)

// Runner is one full build.
type Runner interface {
	Run(ctx context.Context) (*build.Result, error)
}

// Watcher reruns a build whenever a markdown file in Dir changes. Bursts of
// events within Delay collapse into one build, and builds never overlap.
type Watcher struct {
	Dir    string
	Delay  time.Duration
	Runner Runner
	Logger *slog.Logger
	// OnBuild, if set, is called after every triggered build.
	OnBuild func(*build.Result, error)

	buildMu sync.Mutex
	stopped bool // guarded by buildMu
	ready   chan struct{}
	once    sync.Once
}

func (w *Watcher) readyChan() chan struct{} {
	w.once.Do(func() { w.ready = make(chan struct{}) })
	return w.ready
}

// Ready is closed once the directory is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.readyChan()
}

// Watch blocks until ctx is done. Failed rebuilds are logged and watching
// continues.
func (w *Watcher) Watch(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	delay := w.Delay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.Dir, err)
	}

	w.buildMu.Lock()
	w.stopped = false
	w.buildMu.Unlock()

	// builds run to completion even after ctx is cancelled
	buildCtx := context.WithoutCancel(ctx)
	deb := NewDebouncer(delay, func() { w.rebuild(buildCtx, logger) })
	defer func() {
		deb.Stop()
		// waits for a running build; a timer that already fired sees stopped
		w.buildMu.Lock()
		w.stopped = true
		w.buildMu.Unlock()
	}()

	close(w.readyChan())
	logger.Info("watching for changes", logfields.Path(w.Dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ingest.IsMarkdown(filepath.Base(ev.Name)) {
				continue
			}
			logger.Debug("change detected", logfields.File(filepath.Base(ev.Name)), logfields.Event(ev.Op.String()))
			deb.Trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context, logger *slog.Logger) {
	w.buildMu.Lock()
	defer w.buildMu.Unlock()
	if w.stopped {
		return
	}

	logger.Info("rebuilding")
	res, err := w.Runner.Run(ctx)
	if err != nil {
		logger.Error("rebuild failed", logfields.Error(err))
	}
	if w.OnBuild != nil {
		w.OnBuild(res, err)
	}
}
