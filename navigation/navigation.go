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

// Package navigation holds per-pane navigation state: current path,
// bounded back/forward history, active sort/filter, and a cached
// listing invalidated on any state change (spec §4.2).
package navigation

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/PerkyZZ999/ZManager/entry"
	"github.com/PerkyZZ999/ZManager/listing"
	"github.com/PerkyZZ999/ZManager/sortfilter"
)

// MaxHistorySize bounds the back/forward stacks (spec §4.2) to prevent
// unbounded memory growth across a long-lived session.
const MaxHistorySize = 100

// State is a single pane's navigation state. The zero value is not
// usable; construct with New or AtHome.
type State struct {
	currentPath   string
	backStack     []string
	forwardStack  []string
	sort          sortfilter.SortSpec
	filter        sortfilter.FilterSpec
	cachedListing *entry.Listing
}

// New starts navigation at startPath.
func New(startPath string) *State {
	return &State{
		currentPath: startPath,
		sort:        sortfilter.DefaultSort(),
		filter:      sortfilter.NewFilter(),
	}
}

// AtHome starts navigation at the user's home directory, falling back
// to "." if it cannot be determined.
func AtHome() *State {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = "."
	}
	return New(home)
}

// DefaultStart starts at C:\ on Windows, at the home directory
// elsewhere, matching the Rust original's platform split.
func DefaultStart() *State {
	if runtime.GOOS == "windows" {
		return New(`C:\`)
	}
	return AtHome()
}

func (s *State) CurrentPath() string { return s.currentPath }

func (s *State) CanGoBack() bool    { return len(s.backStack) > 0 }
func (s *State) CanGoForward() bool { return len(s.forwardStack) > 0 }

// CanGoUp reports whether the current path has a parent distinct from
// itself (filepath.Dir is idempotent at a root).
func (s *State) CanGoUp() bool {
	return filepath.Dir(s.currentPath) != s.currentPath
}

// NavigateTo moves to path, pushing the current path onto the back
// stack and clearing the forward stack (a fresh navigation branch). A
// no-op if path equals the current path.
func (s *State) NavigateTo(path string) {
	if path == s.currentPath {
		return
	}
	s.backStack = pushBounded(s.backStack, s.currentPath)
	s.forwardStack = nil
	s.currentPath = path
	s.invalidate()
}

// GoBack pops the back stack onto the forward stack and returns the
// new current path. The second return is false if there was no
// history to go back to.
func (s *State) GoBack() (string, bool) {
	if !s.CanGoBack() {
		return "", false
	}
	prev := s.backStack[len(s.backStack)-1]
	s.backStack = s.backStack[:len(s.backStack)-1]
	s.forwardStack = pushBounded(s.forwardStack, s.currentPath)
	s.currentPath = prev
	s.invalidate()
	return s.currentPath, true
}

// GoForward is GoBack's mirror image.
func (s *State) GoForward() (string, bool) {
	if !s.CanGoForward() {
		return "", false
	}
	next := s.forwardStack[len(s.forwardStack)-1]
	s.forwardStack = s.forwardStack[:len(s.forwardStack)-1]
	s.backStack = pushBounded(s.backStack, s.currentPath)
	s.currentPath = next
	s.invalidate()
	return s.currentPath, true
}

// GoUp navigates to the parent directory via NavigateTo (so it
// participates in history the same way any other navigation does).
func (s *State) GoUp() (string, bool) {
	if !s.CanGoUp() {
		return "", false
	}
	s.NavigateTo(filepath.Dir(s.currentPath))
	return s.currentPath, true
}

// Refresh forces a fresh listing on the next GetListing call.
func (s *State) Refresh() (entry.Listing, error) {
	s.invalidate()
	return s.GetListing()
}

// GetListing returns the cached listing if present, otherwise invokes
// the listing engine and caches the result.
func (s *State) GetListing() (entry.Listing, error) {
	if s.cachedListing == nil {
		l, err := listing.ListDirectory(s.currentPath, listing.Options{
			Sort:   &s.sort,
			Filter: &s.filter,
		})
		if err != nil {
			return entry.Listing{}, err
		}
		s.cachedListing = &l
	}
	return *s.cachedListing, nil
}

func (s *State) invalidate() {
	s.cachedListing = nil
}

func (s *State) SetSort(spec sortfilter.SortSpec) {
	s.sort = spec
	s.invalidate()
}

func (s *State) SetFilter(spec sortfilter.FilterSpec) {
	s.filter = spec
	s.invalidate()
}

func (s *State) ToggleSort(field sortfilter.SortField) {
	s.sort.ToggleOrSet(field)
	s.invalidate()
}

func (s *State) ToggleHidden() {
	s.filter.ToggleHidden()
	s.invalidate()
}

func (s *State) SetPattern(pattern string) {
	s.filter.SetPattern(pattern)
	s.invalidate()
}

func (s *State) Sort() sortfilter.SortSpec     { return s.sort }
func (s *State) Filter() sortfilter.FilterSpec { return s.filter }

// BackHistory and ForwardHistory return read-only snapshots for
// display (e.g. a history dropdown).
func (s *State) BackHistory() []string    { return append([]string(nil), s.backStack...) }
func (s *State) ForwardHistory() []string { return append([]string(nil), s.forwardStack...) }

// ClearHistory empties both stacks without affecting the current path.
func (s *State) ClearHistory() {
	s.backStack = nil
	s.forwardStack = nil
}

// pushBounded appends v to stack, trimming the oldest entry once the
// stack exceeds MaxHistorySize (spec §4.2).
func pushBounded(stack []string, v string) []string {
	stack = append(stack, v)
	if len(stack) > MaxHistorySize {
		stack = stack[1:]
	}
	return stack
}
