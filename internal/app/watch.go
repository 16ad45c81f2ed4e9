package app

import (
	"os"
	"sync"
	"time"
)

// PlanWatcher watches the loaded floorplan document for changes and triggers
// a callback when a newer version is written. Keeps an edited plan in sync
// with the viewer without a manual re-open.
type PlanWatcher struct {
	mu            sync.Mutex
	path          string
	baseline      time.Time
	checkInterval time.Duration
	stopCh        chan struct{}
	running       bool
	onChange      func(path string) // called from the watcher goroutine
}

// NewPlanWatcher creates a watcher with the given poll interval. It watches
// nothing until Watch is called with a path.
func NewPlanWatcher(checkInterval time.Duration) *PlanWatcher {
	return &PlanWatcher{checkInterval: checkInterval}
}

// OnChange sets the callback to invoke when the watched file changes.
// The callback runs on a background goroutine - use appropriate
// synchronization if updating UI.
func (w *PlanWatcher) OnChange(callback func(path string)) {
	w.mu.Lock()
	w.onChange = callback
	w.mu.Unlock()
}

// Watch points the watcher at a new file, resetting the baseline to the
// file's current modification time.
func (w *PlanWatcher) Watch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.path = path
	w.baseline = time.Time{}
	if info, err := os.Stat(path); err == nil {
		w.baseline = info.ModTime()
	}
}

// Start begins polling in a background goroutine. Calling Start on a
// running watcher is a no-op.
func (w *PlanWatcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	go w.watchLoop(w.stopCh)
}

// Stop stops the watcher goroutine.
func (w *PlanWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
}

// watchLoop periodically checks whether the plan file has been modified.
func (w *PlanWatcher) watchLoop(stopCh chan struct{}) {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if path, changed := w.checkForUpdate(); changed {
				w.mu.Lock()
				callback := w.onChange
				w.mu.Unlock()
				if callback != nil {
					callback(path)
				}
			}
		}
	}
}

// checkForUpdate returns the watched path and true if the file has been
// modified since the baseline. The baseline advances so one edit triggers
// one callback.
func (w *PlanWatcher) checkForUpdate() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.path == "" {
		return "", false
	}
	info, err := os.Stat(w.path)
	if err != nil {
		return "", false
	}
	if !info.ModTime().After(w.baseline) {
		return "", false
	}
	w.baseline = info.ModTime()
	return w.path, true
}
