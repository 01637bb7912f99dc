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

// Package entry holds the immutable metadata record produced by the
// listing engine, plus its attribute and directory-listing carriers.
package entry

import (
	"strings"
	"time"
)

// Kind is the tagged entry-kind variant from spec §3.
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
	KindJunction
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "File"
	case KindDirectory:
		return "Directory"
	case KindSymlink:
		return "Symlink"
	case KindJunction:
		return "Junction"
	default:
		return "Unknown"
	}
}

// IsDir reports whether k is exactly KindDirectory. Junctions are
// link-like, not directory-like, for sort/filter/count purposes (they
// group with plain links, matching original_source's EntryKind::is_directory).
func (k Kind) IsDir() bool {
	return k == KindDirectory
}

func (k Kind) IsFile() bool {
	return k == KindFile
}

func (k Kind) IsLink() bool {
	return k == KindSymlink || k == KindJunction
}

// Attributes are the Windows-style attribute flags from spec §3,
// preserved cross-platform per the POSIX dot-file convention.
type Attributes struct {
	Hidden   bool
	System   bool
	ReadOnly bool
	Archive  bool
}

// Meta is the immutable per-entry metadata record.
//
// Invariants (spec §3): Extension != "" implies Kind == KindFile;
// LinkTarget != "" implies Kind is Symlink or Junction.
type Meta struct {
	Name         string
	AbsolutePath string
	Kind         Kind
	SizeBytes    uint64
	Created      *time.Time
	Modified     *time.Time
	Accessed     *time.Time
	Attributes   Attributes
	LinkTarget   string
	IsBrokenLink bool
	Extension    string
}

// IsHidden reports whether the entry should be treated as hidden,
// honoring both the native attribute bit and the POSIX dot-file
// convention (spec §3: "Hidden is also true for names beginning .").
func (m Meta) IsHidden() bool {
	return m.Attributes.Hidden || strings.HasPrefix(m.Name, ".")
}

// Validate checks the two invariants named in spec §3 and §8. It is
// used by tests and by callers constructing Meta values outside the
// listing engine (e.g. serialization round-trips).
func (m Meta) Validate() bool {
	if m.Extension != "" && m.Kind != KindFile {
		return false
	}
	if m.LinkTarget != "" && !m.Kind.IsLink() {
		return false
	}
	return true
}

// ExtensionOf extracts the lowercase, dot-free extension used by the
// listing engine (spec §4.1 step 7): the suffix after the final '.' in
// name, or "" if there is none or name starts with '.' and has no
// further dot (e.g. ".gitignore" has no extension).
func ExtensionOf(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// Listing is the result of listing one directory's direct children.
type Listing struct {
	Path      string
	Entries   []Meta
	FileCount int
	DirCount  int
	TotalSize uint64
}

// IsEmpty reports whether the listing has no entries.
func (l Listing) IsEmpty() bool {
	return len(l.Entries) == 0
}

// NewListing aggregates FileCount/DirCount/TotalSize from entries, the
// invariant quantified in spec §8:
// |{e : e.is_file}| = file_count, Σ{e.size : e.is_file} = total_size.
func NewListing(path string, entries []Meta) Listing {
	l := Listing{Path: path, Entries: entries}
	for _, e := range entries {
		switch {
		case e.Kind.IsFile():
			l.FileCount++
			l.TotalSize += e.SizeBytes
		case e.Kind.IsDir():
			l.DirCount++
		}
	}
	return l
}
