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

package sortfilter

import (
	"strings"

	"github.com/PerkyZZ999/ZManager/entry"
)

// FilterSpec is the serializable filter configuration. A zero-value
// FilterSpec hides hidden/system entries and admits everything else.
type FilterSpec struct {
	Pattern     string
	ShowHidden  bool
	ShowSystem  bool
	Extensions  map[string]struct{}
	MinSize     *uint64
	MaxSize     *uint64
}

// NewFilter returns the default filter (hides hidden/system).
func NewFilter() FilterSpec {
	return FilterSpec{}
}

// ShowAll returns a filter that admits hidden and system entries too.
func ShowAll() FilterSpec {
	return FilterSpec{ShowHidden: true, ShowSystem: true}
}

func (f *FilterSpec) ToggleHidden() {
	f.ShowHidden = !f.ShowHidden
}

func (f *FilterSpec) SetPattern(pattern string) {
	f.Pattern = pattern
}

func (f *FilterSpec) ClearPattern() {
	f.Pattern = ""
}

func (f *FilterSpec) AddExtension(ext string) {
	if f.Extensions == nil {
		f.Extensions = map[string]struct{}{}
	}
	f.Extensions[strings.ToLower(ext)] = struct{}{}
}

// Matches implements spec §3's FilterSpec semantics: pattern is a
// case-insensitive substring match on name; size bounds and the
// extension set apply only to files; directories are admitted unless
// excluded by the hidden/system checks.
func (f FilterSpec) Matches(e entry.Meta) bool {
	if !f.ShowHidden && e.IsHidden() {
		return false
	}
	if !f.ShowSystem && e.Attributes.System {
		return false
	}
	if f.Pattern != "" {
		if !strings.Contains(strings.ToLower(e.Name), strings.ToLower(f.Pattern)) {
			return false
		}
	}
	if e.Kind.IsFile() {
		if len(f.Extensions) > 0 {
			if _, ok := f.Extensions[e.Extension]; !ok {
				return false
			}
		}
		if f.MinSize != nil && e.SizeBytes < *f.MinSize {
			return false
		}
		if f.MaxSize != nil && e.SizeBytes > *f.MaxSize {
			return false
		}
	}
	return true
}

// Filter returns the subset of entries that match f.
func (f FilterSpec) Filter(entries []entry.Meta) []entry.Meta {
	out := make([]entry.Meta, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
