// Package watcher re-runs the mining pipeline when the source transaction
// file changes on disk. Every change triggers a full re-import and
// recompute; there is no incremental update model.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits after the last write event
// before firing. Spreadsheet exports and copies arrive as bursts of writes;
// debouncing avoids re-mining a half-written file.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches one file and invokes a callback after changes settle.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func() error

	fw     *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a watcher for path. onChange runs once per settled burst of
// write/create events; its error is reported to stderr, not fatal, so a
// single bad export does not stop the watch.
func New(path string, debounce time.Duration, onChange func() error) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback cannot be nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the parent directory: editors and exporters typically replace
	// the file (rename + create), which drops a watch on the file itself.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		fw:       fw,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					<-timerCh
				}
				timer.Reset(w.debounce)
			}

		case <-timerCh:
			timer = nil
			timerCh = nil
			if err := w.onChange(); err != nil {
				fmt.Fprintf(os.Stderr, "watcher: %v\n", err)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: fsnotify error: %v\n", err)

		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant reports whether an fsnotify event concerns the watched file and
// describes a content change.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Stop halts the watcher and waits for the background goroutine to exit.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}
