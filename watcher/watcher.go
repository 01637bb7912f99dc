// Copyright © ZManager Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package watcher detects file system changes under watched
// directories and reports them as debounced events, so a listing view
// can refresh without re-querying the file system on every single
// notification a directory churns out.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/PerkyZZ999/ZManager/zerr"
)

// DefaultDebounce is how long a directory must go quiet before its
// pending changes are flushed as one Event.
const DefaultDebounce = 300 * time.Millisecond

const pollInterval = 50 * time.Millisecond

// EventKind classifies the change that triggered an Event.
type EventKind int

const (
	KindCreated EventKind = iota
	KindModified
	KindDeleted
	KindRenamed
	KindChanged
)

func (k EventKind) Label() string {
	switch k {
	case KindCreated:
		return "Created"
	case KindModified:
		return "Modified"
	case KindDeleted:
		return "Deleted"
	case KindRenamed:
		return "Renamed"
	case KindChanged:
		return "Changed"
	default:
		return "Unknown"
	}
}

func kindFromOp(op fsnotify.Op) EventKind {
	switch {
	case op&fsnotify.Create != 0:
		return KindCreated
	case op&fsnotify.Remove != 0:
		return KindDeleted
	case op&fsnotify.Rename != 0:
		return KindRenamed
	case op&fsnotify.Write != 0:
		return KindModified
	default:
		return KindChanged
	}
}

// Event is a debounced, aggregated report of changes under Directory.
type Event struct {
	Directory string
	Kind      EventKind
	Paths     []string
}

// Config tunes a Watcher's debounce window and directory budget.
type Config struct {
	Debounce      time.Duration
	MaxWatchedDirs int
	Recursive     bool
}

// DefaultConfig matches the original desktop client's tuning: a
// 300ms debounce, a budget of 10 simultaneously watched directories,
// and non-recursive watches (the listing view only cares about its
// own directory, not its descendants).
func DefaultConfig() Config {
	return Config{Debounce: DefaultDebounce, MaxWatchedDirs: 10, Recursive: false}
}

type pendingChange struct {
	lastEvent time.Time
	kind      EventKind
	paths     map[string]struct{}
}

// Watcher watches a bounded set of directories and emits one debounced
// Event per directory once its change stream goes quiet.
type Watcher struct {
	config Config
	fsw    *fsnotify.Watcher

	mu      sync.Mutex
	watched map[string]struct{}
	pending map[string]*pendingChange

	subMu       sync.Mutex
	subscribers []chan Event

	stop   chan struct{}
	stopped chan struct{}
}

// New creates a Watcher with DefaultConfig.
func New() (*Watcher, error) {
	return WithConfig(DefaultConfig())
}

// WithConfig creates a Watcher with a custom Config.
func WithConfig(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Internal("failed to create file system watcher: " + err.Error())
	}
	return &Watcher{
		config:  config,
		fsw:     fsw,
		watched: make(map[string]struct{}),
		pending: make(map[string]*pendingChange),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Subscribe returns a channel receiving every flushed Event from this
// point forward. A slow subscriber has its oldest unread event dropped
// rather than blocking the watcher's debounce loop.
func (w *Watcher) Subscribe() <-chan Event {
	ch := make(chan Event, 256)
	w.subMu.Lock()
	w.subscribers = append(w.subscribers, ch)
	w.subMu.Unlock()
	return ch
}

func (w *Watcher) emit(ev Event) {
	w.subMu.Lock()
	defer w.subMu.Unlock()
	for _, ch := range w.subscribers {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// Start launches the background goroutine that drains raw fsnotify
// events into per-directory debounce state and periodically flushes
// directories that have gone quiet.
func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) run() {
	defer close(w.stopped)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleRawEvent(ev)
		case <-w.fsw.Errors:
			// Surfacing watcher-internal errors is not actionable for a
			// caller mid-debounce; they are swallowed like the original.
		case <-ticker.C:
			w.flushStale()
		}
	}
}

func (w *Watcher) handleRawEvent(ev fsnotify.Event) {
	dir := filepath.Dir(ev.Name)
	kind := kindFromOp(ev.Op)

	w.mu.Lock()
	defer w.mu.Unlock()

	change, ok := w.pending[dir]
	if !ok {
		change = &pendingChange{kind: kind, paths: make(map[string]struct{})}
		w.pending[dir] = change
	}
	change.lastEvent = time.Now()
	change.paths[ev.Name] = struct{}{}
	if kind != KindModified {
		change.kind = kind
	}
}

func (w *Watcher) flushStale() {
	now := time.Now()

	w.mu.Lock()
	var toFlush []Event
	for dir, change := range w.pending {
		if now.Sub(change.lastEvent) < w.config.Debounce {
			continue
		}
		paths := make([]string, 0, len(change.paths))
		for p := range change.paths {
			paths = append(paths, p)
		}
		toFlush = append(toFlush, Event{Directory: dir, Kind: change.kind, Paths: paths})
		delete(w.pending, dir)
	}
	w.mu.Unlock()

	for _, ev := range toFlush {
		w.emit(ev)
	}
}

// Stop halts the debounce loop and closes the underlying fsnotify
// watcher. Stop is idempotent.
func (w *Watcher) Stop() {
	select {
	case <-w.stop:
		return
	default:
		close(w.stop)
	}
	_ = w.fsw.Close()
	<-w.stopped

	w.mu.Lock()
	w.watched = make(map[string]struct{})
	w.mu.Unlock()
}

// Watch adds path to the set of watched directories, resolving
// symlinks so the same directory reached two ways is only counted
// once against MaxWatchedDirs.
func (w *Watcher) Watch(path string) error {
	resolved, err := filepath.Abs(path)
	if err != nil {
		resolved = path
	}
	if real, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = real
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, already := w.watched[resolved]; already {
		return nil
	}
	if len(w.watched) >= w.config.MaxWatchedDirs {
		return zerr.InvalidOperation("watch", "maximum watched directories reached")
	}

	if err := w.fsw.Add(resolved); err != nil {
		return zerr.IO(resolved, err)
	}
	w.watched[resolved] = struct{}{}
	return nil
}

// Unwatch removes path from the watched set, if present.
func (w *Watcher) Unwatch(path string) error {
	resolved, err := filepath.Abs(path)
	if err != nil {
		resolved = path
	}
	if real, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = real
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.watched[resolved]; !ok {
		return nil
	}
	_ = w.fsw.Remove(resolved)
	delete(w.watched, resolved)
	delete(w.pending, resolved)
	return nil
}

// WatchedDirs returns every directory currently being watched.
func (w *Watcher) WatchedDirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	dirs := make([]string, 0, len(w.watched))
	for d := range w.watched {
		dirs = append(dirs, d)
	}
	return dirs
}

// IsWatching reports whether path is currently watched.
func (w *Watcher) IsWatching(path string) bool {
	resolved, err := filepath.Abs(path)
	if err != nil {
		resolved = path
	}
	if real, err := filepath.EvalSymlinks(resolved); err == nil {
		resolved = real
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watched[resolved]
	return ok
}
