// Package watcher watches template sources for changes with debouncing, so
// a burst of editor writes triggers one re-render.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent represents one file change.
type ChangeEvent struct {
	Type    EventType
	Path    string
	ModTime time.Time
}

// EventType represents the type of file change.
type EventType int

const (
	EventTypeCreated EventType = iota
	EventTypeModified
	EventTypeDeleted
	EventTypeRenamed
)

// String returns the string representation of the EventType.
func (e EventType) String() string {
	switch e {
	case EventTypeCreated:
		return "created"
	case EventTypeModified:
		return "modified"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileFilter reports whether a changed path is interesting.
type FileFilter func(path string) bool

// ChangeHandler receives one debounced batch of events.
type ChangeHandler func(events []ChangeEvent) error

// TemplateWatcher watches template files and delivers debounced change
// batches to registered handlers.
type TemplateWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	filters   []FileFilter
	handlers  []ChangeHandler
	mutex     sync.RWMutex
}

// New creates a watcher that groups changes arriving within debounceDelay.
func New(debounceDelay time.Duration) (*TemplateWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &TemplateWatcher{
		watcher: fsw,
		debouncer: &debouncer{
			delay:  debounceDelay,
			events: make(chan ChangeEvent, 100),
			output: make(chan []ChangeEvent, 10),
		},
	}, nil
}

// AddFilter adds a path filter; a path must pass every filter to be
// delivered.
func (w *TemplateWatcher) AddFilter(filter FileFilter) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.filters = append(w.filters, filter)
}

// AddHandler adds a change handler.
func (w *TemplateWatcher) AddHandler(handler ChangeHandler) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.handlers = append(w.handlers, handler)
}

// AddPath watches one file or directory.
func (w *TemplateWatcher) AddPath(path string) error {
	return w.watcher.Add(filepath.Clean(path))
}

// Start launches the watch loop and debouncer; both stop when ctx is done.
func (w *TemplateWatcher) Start(ctx context.Context) {
	go w.debouncer.run(ctx)
	go w.deliver(ctx)
	go w.watchLoop(ctx)
}

// Stop closes the underlying fsnotify watcher.
func (w *TemplateWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *TemplateWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; keep watching.
		}
	}
}

func (w *TemplateWatcher) handleEvent(event fsnotify.Event) {
	w.mutex.RLock()
	filters := w.filters
	w.mutex.RUnlock()

	for _, filter := range filters {
		if !filter(event.Name) {
			return
		}
	}

	change := ChangeEvent{Path: event.Name, Type: eventType(event.Op)}
	if info, err := os.Stat(event.Name); err == nil {
		change.ModTime = info.ModTime()
	}

	select {
	case w.debouncer.events <- change:
	default:
		// Channel full; the pending batch already forces a re-render.
	}
}

func eventType(op fsnotify.Op) EventType {
	switch {
	case op&fsnotify.Create != 0:
		return EventTypeCreated
	case op&fsnotify.Remove != 0:
		return EventTypeDeleted
	case op&fsnotify.Rename != 0:
		return EventTypeRenamed
	default:
		return EventTypeModified
	}
}

func (w *TemplateWatcher) deliver(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-w.debouncer.output:
			if !ok {
				return
			}
			w.mutex.RLock()
			handlers := w.handlers
			w.mutex.RUnlock()
			for _, handler := range handlers {
				// Handler errors are the handler's concern; delivery
				// continues so one failing render does not stop the watch.
				_ = handler(batch)
			}
		}
	}
}

// debouncer groups rapid events into one batch per quiet period.
type debouncer struct {
	delay   time.Duration
	events  chan ChangeEvent
	output  chan []ChangeEvent
	pending []ChangeEvent
}

func (d *debouncer) run(ctx context.Context) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event := <-d.events:
			d.pending = append(d.pending, event)
			if timer == nil {
				timer = time.NewTimer(d.delay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(d.delay)
			}
			fire = timer.C
		case <-fire:
			if len(d.pending) > 0 {
				batch := d.pending
				d.pending = nil
				select {
				case d.output <- batch:
				case <-ctx.Done():
					return
				}
			}
			fire = nil
		}
	}
}

// TemplateFilter passes JSON template files and directories (so directory
// events keep recursive watches alive).
func TemplateFilter(path string) bool {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return true
	}
	return filepath.Ext(path) == ".json"
}
