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

// Package listing implements the directory listing engine (spec §4.1):
// directory enumeration with long-path support, symlink/junction
// classification, attribute extraction, sorting and filtering.
package listing

import (
	"os"
	"path/filepath"

	"github.com/PerkyZZ999/ZManager/entry"
	"github.com/PerkyZZ999/ZManager/sortfilter"
	"github.com/PerkyZZ999/ZManager/winpath"
	"github.com/PerkyZZ999/ZManager/zlog"
)

// Options configure a single ListDirectory call. A nil Sort defaults
// to sortfilter.DefaultSort(); a nil Filter admits every entry.
type Options struct {
	Sort   *sortfilter.SortSpec
	Filter *sortfilter.FilterSpec
	Logger zlog.Logger
}

func (o Options) logger() zlog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zlog.Default()
}

// ListDirectory implements spec §4.1: it enumerates path's direct
// children, classifies each (file/directory/symlink/junction),
// extracts attributes and timestamps, applies filter, then sorts.
// Per-entry errors are logged and skipped; root-level errors (bad
// path, permission denied on the directory itself) propagate.
func ListDirectory(path string, opts Options) (entry.Listing, error) {
	readPath := winpath.ForAPI(path)

	info, err := os.Stat(readPath)
	if err != nil {
		return entry.Listing{}, fromStatError(path, err)
	}
	if !info.IsDir() {
		return entry.Listing{}, notADirectory(path)
	}

	dirEntries, err := os.ReadDir(readPath)
	if err != nil {
		return entry.Listing{}, fromStatError(path, err)
	}

	log := opts.logger()
	entries := make([]entry.Meta, 0, len(dirEntries))
	for _, de := range dirEntries {
		childPath := filepath.Join(path, de.Name())
		meta, err := getEntryMetaNoFollow(childPath, de.Name())
		if err != nil {
			log.Logf(zlog.LevelWarn, "skipping entry %q: %v", childPath, err)
			continue
		}
		entries = append(entries, meta)
	}

	if opts.Filter != nil {
		entries = opts.Filter.Filter(entries)
	}

	sortSpec := sortfilter.DefaultSort()
	if opts.Sort != nil {
		sortSpec = *opts.Sort
	}
	sortSpec.Sort(entries)

	return entry.NewListing(path, entries), nil
}

// GetEntryMeta mirrors the per-entry classification logic of
// ListDirectory for a single path, using lstat semantics (it does not
// follow links), per spec §4.1's final paragraph.
func GetEntryMeta(path string) (entry.Meta, error) {
	name := filepath.Base(path)
	meta, err := getEntryMetaNoFollow(path, name)
	if err != nil {
		return entry.Meta{}, err
	}
	return meta, nil
}
