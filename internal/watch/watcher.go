// Package watch triages files as they arrive in the selected directory.
// It wraps fsnotify: newly created files are given a settle period to
// finish writing, then run through the same classification and plan as a
// one-shot run.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"delrest/internal/classify"
	"delrest/internal/config"
	"delrest/internal/keepfile"
	"delrest/internal/log"
	"delrest/internal/run"
)

// DefaultSettle is how long a new file may keep changing before it is
// triaged.
const DefaultSettle = 500 * time.Millisecond

// Triage bundles the read-only run inputs the watcher applies to every
// arriving file.
type Triage struct {
	// Root is the watched directory.
	Root string
	// Config and Keep drive classification; both are read-only and safe
	// to share with the event goroutine.
	Config *config.Config
	Keep   *keepfile.KeepSet
	// Exec applies the resolved plan to Act files.
	Exec *run.Executor
	// OnReport, if set, receives the report of every triaged file.
	OnReport func(*run.Report)
}

// Watcher monitors a directory and triages files as they appear.
type Watcher struct {
	triage    Triage
	settle    time.Duration
	fsWatcher *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New creates a watcher for the triage's root directory.
func New(triage Triage) (*Watcher, error) {
	info, err := os.Stat(triage.Root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, os.ErrInvalid
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(triage.Root); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return &Watcher{
		triage:    triage,
		settle:    DefaultSettle,
		fsWatcher: fsWatcher,
		pending:   make(map[string]*time.Timer),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}, nil
}

// SetSettle overrides the settle period, mainly for tests.
func (w *Watcher) SetSettle(d time.Duration) {
	w.settle = d
}

// Start begins watching. It returns immediately; events are handled on a
// background goroutine until Stop is called.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return
	}
	w.running = true

	log.LogWithFields(log.F("directory", w.triage.Root)).Info("Watching directory")
	go w.loop()
}

// Stop ends the watch and waits for the event goroutine to exit. Files
// still inside their settle period are not triaged.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	for _, timer := range w.pending {
		timer.Stop()
	}
	w.mu.Unlock()

	close(w.stop)
	w.fsWatcher.Close()
	<-w.done
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.schedule(event.Name)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Error("Watch error: %v", err)
		}
	}
}

// schedule (re)arms the settle timer for a path; repeated writes push the
// triage back until the file goes quiet.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.triageFile(path)
	})
}

func (w *Watcher) triageFile(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return
	}

	rel, err := filepath.Rel(w.triage.Root, path)
	if err != nil {
		return
	}

	result := classify.File(rel, filepath.Base(rel), w.triage.Config, w.triage.Keep)
	log.LogWithFields(log.F("path", rel), log.F("label", result.Label.String())).Debug("Arrived")

	report := w.triage.Exec.Execute(w.triage.Root, []classify.Result{result})
	if w.triage.OnReport != nil {
		w.triage.OnReport(report)
	}
}
