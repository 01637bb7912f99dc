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

// Package selection implements the cursor/anchor/selected-set model
// for a directory listing pane (spec §4.3): keyboard cursor movement,
// range extension, and the mouse click-modifier table.
package selection

import "github.com/PerkyZZ999/ZManager/entry"

// Selection tracks which entries in a listing are selected, plus the
// keyboard cursor and range-selection anchor.
type Selection struct {
	selected   map[string]struct{}
	cursor     int
	anchor     *int
	entryCount int
}

// New returns an empty selection over zero entries.
func New() *Selection {
	return &Selection{selected: map[string]struct{}{}}
}

// WithCount returns an empty selection sized to entryCount entries.
func WithCount(entryCount int) *Selection {
	s := New()
	s.entryCount = entryCount
	return s
}

// SetEntryCount updates the entry count after a listing refresh,
// clamping the cursor and dropping an out-of-range anchor. Stale
// selected paths for entries that no longer exist are not proactively
// purged here; a lookup against a missing path simply never matches a
// display row.
func (s *Selection) SetEntryCount(count int) {
	s.entryCount = count
	if s.cursor >= count && count > 0 {
		s.cursor = count - 1
	}
	if s.anchor != nil && *s.anchor >= count {
		s.anchor = nil
	}
}

func (s *Selection) Cursor() int { return s.cursor }

func (s *Selection) IsCursor(index int) bool { return s.cursor == index }

func (s *Selection) IsSelected(path string) bool {
	_, ok := s.selected[path]
	return ok
}

func (s *Selection) IsIndexSelected(index int, entries []entry.Meta) bool {
	if index < 0 || index >= len(entries) {
		return false
	}
	return s.IsSelected(entries[index].AbsolutePath)
}

func (s *Selection) Count() int { return len(s.selected) }

func (s *Selection) IsEmpty() bool { return len(s.selected) == 0 }

// SelectedPaths returns the selected paths in no particular order.
func (s *Selection) SelectedPaths() []string {
	out := make([]string, 0, len(s.selected))
	for p := range s.selected {
		out = append(out, p)
	}
	return out
}

// SelectedEntries returns the subset of entries whose path is selected.
func (s *Selection) SelectedEntries(entries []entry.Meta) []entry.Meta {
	out := make([]entry.Meta, 0, len(s.selected))
	for _, e := range entries {
		if s.IsSelected(e.AbsolutePath) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Selection) MoveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
	s.anchor = nil
}

func (s *Selection) MoveDown() {
	if s.cursor+1 < s.entryCount {
		s.cursor++
	}
	s.anchor = nil
}

// MoveUpExtend is Shift+Up: move the cursor and extend the range
// selection from the anchor (set to the pre-move cursor if absent).
func (s *Selection) MoveUpExtend(entries []entry.Meta) {
	s.ensureAnchor()
	if s.cursor > 0 {
		s.cursor--
		s.updateRangeSelection(entries)
	}
}

func (s *Selection) MoveDownExtend(entries []entry.Meta) {
	s.ensureAnchor()
	if s.cursor+1 < s.entryCount {
		s.cursor++
		s.updateRangeSelection(entries)
	}
}

func (s *Selection) ensureAnchor() {
	if s.anchor == nil {
		a := s.cursor
		s.anchor = &a
	}
}

func (s *Selection) MoveToFirst() {
	s.cursor = 0
	s.anchor = nil
}

func (s *Selection) MoveToLast() {
	if s.entryCount > 0 {
		s.cursor = s.entryCount - 1
	}
	s.anchor = nil
}

func (s *Selection) PageUp(pageSize int) {
	s.cursor -= pageSize
	if s.cursor < 0 {
		s.cursor = 0
	}
	s.anchor = nil
}

func (s *Selection) PageDown(pageSize int) {
	max := s.entryCount - 1
	if max < 0 {
		max = 0
	}
	s.cursor += pageSize
	if s.cursor > max {
		s.cursor = max
	}
	s.anchor = nil
}

func (s *Selection) SetCursor(index int) {
	if index >= 0 && index < s.entryCount {
		s.cursor = index
		s.anchor = nil
	}
}

func (s *Selection) ToggleAtCursor(entries []entry.Meta) {
	if s.cursor < len(entries) {
		s.Toggle(entries[s.cursor].AbsolutePath)
	}
}

func (s *Selection) Toggle(path string) {
	if _, ok := s.selected[path]; ok {
		delete(s.selected, path)
	} else {
		s.selected[path] = struct{}{}
	}
}

// SelectSingle clears the selection and selects only path.
func (s *Selection) SelectSingle(path string) {
	s.selected = map[string]struct{}{path: {}}
}

func (s *Selection) SelectAtCursor(entries []entry.Meta) {
	if s.cursor < len(entries) {
		s.SelectSingle(entries[s.cursor].AbsolutePath)
	}
}

func (s *Selection) Add(path string) {
	s.selected[path] = struct{}{}
}

func (s *Selection) Remove(path string) {
	delete(s.selected, path)
}

func (s *Selection) SelectAll(entries []entry.Meta) {
	s.selected = make(map[string]struct{}, len(entries))
	for _, e := range entries {
		s.selected[e.AbsolutePath] = struct{}{}
	}
}

func (s *Selection) Clear() {
	s.selected = map[string]struct{}{}
	s.anchor = nil
}

func (s *Selection) Invert(entries []entry.Meta) {
	next := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if !s.IsSelected(e.AbsolutePath) {
			next[e.AbsolutePath] = struct{}{}
		}
	}
	s.selected = next
}

// SelectRange selects entries[min(from,to) .. max(from,to)] inclusive.
func (s *Selection) SelectRange(entries []entry.Meta, from, to int) {
	start, end := from, to
	if start > end {
		start, end = end, start
	}
	for i := start; i <= end && i < len(entries); i++ {
		if i < 0 {
			continue
		}
		s.selected[entries[i].AbsolutePath] = struct{}{}
	}
}

func (s *Selection) updateRangeSelection(entries []entry.Meta) {
	if s.anchor == nil {
		return
	}
	s.selected = map[string]struct{}{}
	s.SelectRange(entries, *s.anchor, s.cursor)
}

// ClickModifiers mirrors the modifier keys held during a mouse click.
type ClickModifiers struct {
	Ctrl  bool
	Shift bool
	Alt   bool
}

func NoModifiers() ClickModifiers    { return ClickModifiers{} }
func CtrlModifier() ClickModifiers   { return ClickModifiers{Ctrl: true} }
func ShiftModifier() ClickModifiers  { return ClickModifiers{Shift: true} }
func CtrlShift() ClickModifiers      { return ClickModifiers{Ctrl: true, Shift: true} }

// Click implements the click-modifier table from spec §4.3:
//
//	Ctrl (no Shift):        toggle the clicked entry, move cursor.
//	Shift (no Ctrl):        replace selection with the range from the
//	                        anchor (or current cursor) to the clicked index.
//	Ctrl+Shift:             add that same range to the existing selection.
//	Plain click:            replace selection with just the clicked
//	                        entry; cursor and anchor both move there.
func (s *Selection) Click(index int, entries []entry.Meta, mods ClickModifiers) {
	if index < 0 || index >= len(entries) {
		return
	}
	path := entries[index].AbsolutePath

	switch {
	case mods.Ctrl && !mods.Shift:
		s.Toggle(path)
		s.cursor = index
	case mods.Shift && !mods.Ctrl:
		anchor := s.cursorOrAnchor()
		s.selected = map[string]struct{}{}
		s.SelectRange(entries, anchor, index)
		s.cursor = index
	case mods.Ctrl && mods.Shift:
		anchor := s.cursorOrAnchor()
		s.SelectRange(entries, anchor, index)
		s.cursor = index
	default:
		s.selected = map[string]struct{}{path: {}}
		s.cursor = index
		a := index
		s.anchor = &a
	}
}

func (s *Selection) cursorOrAnchor() int {
	if s.anchor != nil {
		return *s.anchor
	}
	return s.cursor
}

// CursorEntry returns the entry at the cursor, if any.
func (s *Selection) CursorEntry(entries []entry.Meta) (entry.Meta, bool) {
	if s.cursor < 0 || s.cursor >= len(entries) {
		return entry.Meta{}, false
	}
	return entries[s.cursor], true
}

// OperationTargets returns the entries an operation (copy/move/delete)
// should act on: the selection if non-empty, otherwise the entry at
// the cursor (spec §4.3).
func (s *Selection) OperationTargets(entries []entry.Meta) []entry.Meta {
	if s.IsEmpty() {
		if e, ok := s.CursorEntry(entries); ok {
			return []entry.Meta{e}
		}
		return nil
	}
	return s.SelectedEntries(entries)
}
