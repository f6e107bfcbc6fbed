// Package watch re-runs roster jobs when the source workbook changes on
// disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	// defaultSettle is how long the workbook must sit unchanged before a
	// re-run; spreadsheet editors save in bursts.
	defaultSettle = 500 * time.Millisecond
	tickInterval  = 100 * time.Millisecond
)

// Watcher triggers a callback once writes to a workbook settle. The parent
// directory is watched, not the file itself, so editors that save via a
// temp-file rename still trigger.
type Watcher struct {
	// Settle overrides the settle window when set before Start.
	Settle time.Duration

	path     string
	onChange func(context.Context)
	logger   *zap.Logger

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	pending time.Time
	running bool
	events  int
	runs    int

	stopCh chan struct{}
	doneCh chan struct{}
}

// New builds a watcher for the workbook at path. onChange runs on the
// watcher's goroutine after each settled burst of changes.
func New(path string, log *zap.Logger, onChange func(context.Context)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		Settle:   defaultSettle,
		path:     abs,
		onChange: onChange,
		logger:   log,
		fsw:      fsw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking and idempotent.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.fsw.Add(dir); err != nil {
		// Stop no-ops before a successful Start, so release the
		// watcher here.
		if cerr := w.fsw.Close(); cerr != nil {
			w.logger.Warn("close watcher", zap.Error(cerr))
		}
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	w.logger.Info("watching workbook", zap.String("path", w.path))

	go w.run(ctx)
	return nil
}

// Stop halts the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.fsw.Close(); err != nil {
		w.logger.Warn("close watcher", zap.Error(err))
	}
}

// Stats reports how many relevant events arrived and how many re-runs fired.
func (w *Watcher) Stats() (events, runs int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.events, w.runs
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(tickInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-tick.C:
			w.fire(ctx)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	w.mu.Lock()
	w.pending = time.Now()
	w.events++
	w.mu.Unlock()
	w.logger.Debug("workbook changed", zap.String("op", ev.Op.String()))
}

// fire runs the callback once the last change is older than the settle
// window.
func (w *Watcher) fire(ctx context.Context) {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.Settle {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.runs++
	w.mu.Unlock()

	w.logger.Info("workbook settled, rerunning", zap.String("path", w.path))
	w.onChange(ctx)
}
