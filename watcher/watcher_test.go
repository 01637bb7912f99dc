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

package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventKindLabels(t *testing.T) {
	a := assert.New(t)
	a.Equal("Created", KindCreated.Label())
	a.Equal("Modified", KindModified.Label())
	a.Equal("Deleted", KindDeleted.Label())
	a.Equal("Renamed", KindRenamed.Label())
	a.Equal("Changed", KindChanged.Label())
}

func TestDefaultConfig(t *testing.T) {
	a := assert.New(t)
	c := DefaultConfig()
	a.Equal(DefaultDebounce, c.Debounce)
	a.Equal(10, c.MaxWatchedDirs)
	a.False(c.Recursive)
}

func TestNewWatcher(t *testing.T) {
	a := assert.New(t)
	w, err := New()
	a.NoError(err)
	a.NotNil(w)
}

func TestWatchAndUnwatch(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	w, err := New()
	a.NoError(err)
	w.Start()
	defer w.Stop()

	a.NoError(w.Watch(dir))
	a.True(w.IsWatching(dir))
	a.Len(w.WatchedDirs(), 1)

	a.NoError(w.Unwatch(dir))
	a.False(w.IsWatching(dir))
	a.Empty(w.WatchedDirs())
}

func TestWatchIsIdempotent(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	w, err := New()
	a.NoError(err)
	w.Start()
	defer w.Stop()

	a.NoError(w.Watch(dir))
	a.NoError(w.Watch(dir))
	a.Len(w.WatchedDirs(), 1)
}

func TestWatchLimitEnforced(t *testing.T) {
	a := assert.New(t)
	w, err := WithConfig(Config{Debounce: DefaultDebounce, MaxWatchedDirs: 2})
	a.NoError(err)
	w.Start()
	defer w.Stop()

	dirs := []string{t.TempDir(), t.TempDir(), t.TempDir()}
	a.NoError(w.Watch(dirs[0]))
	a.NoError(w.Watch(dirs[1]))
	a.Error(w.Watch(dirs[2]))
}

func TestStopIsIdempotent(t *testing.T) {
	a := assert.New(t)
	w, err := New()
	a.NoError(err)
	w.Start()
	w.Stop()
	a.NotPanics(func() { w.Stop() })
}

func TestWatchEventDetection(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	w, err := WithConfig(Config{Debounce: 80 * time.Millisecond, MaxWatchedDirs: 10})
	a.NoError(err)

	events := w.Subscribe()
	w.Start()
	defer w.Stop()
	a.NoError(w.Watch(dir))

	expectedDir := dir
	if real, err := filepath.EvalSymlinks(dir); err == nil {
		expectedDir = real
	}

	time.Sleep(60 * time.Millisecond)
	a.NoError(os.WriteFile(filepath.Join(dir, "test.txt"), []byte("hello"), 0o644))

	select {
	case ev := <-events:
		a.Equal(expectedDir, ev.Directory)
		a.NotEmpty(ev.Paths)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}
