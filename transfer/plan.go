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

package transfer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/PerkyZZ999/ZManager/zerr"
)

// Item is a single unit of work in a transfer plan: one file or one
// directory, with its computed destination path.
type Item struct {
	Source      string
	Destination string
	IsDir       bool
	Size        uint64
	Depth       int
	HasConflict bool
}

func newItem(source, destination string, isDir bool, size uint64, depth int) Item {
	_, err := os.Stat(destination)
	return Item{
		Source:      source,
		Destination: destination,
		IsDir:       isDir,
		Size:        size,
		Depth:       depth,
		HasConflict: err == nil,
	}
}

// Stats aggregates totals across a Plan.
type Stats struct {
	TotalFiles uint64
	TotalDirs  uint64
	TotalBytes uint64
	Conflicts  uint64
	Skipped    uint64
}

func (s Stats) TotalItems() uint64 { return s.TotalFiles + s.TotalDirs }

// Plan is a fully enumerated transfer: every item to create or copy, in
// creation order (directories before files, shallower directories
// first), plus aggregate stats.
type Plan struct {
	Items           []Item
	Stats           Stats
	IsMove          bool
	SourceRoots     []string
	DestinationRoot string
}

func (p *Plan) Directories() []Item {
	out := make([]Item, 0, p.Stats.TotalDirs)
	for _, it := range p.Items {
		if it.IsDir {
			out = append(out, it)
		}
	}
	return out
}

func (p *Plan) Files() []Item {
	out := make([]Item, 0, p.Stats.TotalFiles)
	for _, it := range p.Items {
		if !it.IsDir {
			out = append(out, it)
		}
	}
	return out
}

func (p *Plan) Conflicts() []Item {
	var out []Item
	for _, it := range p.Items {
		if it.HasConflict {
			out = append(out, it)
		}
	}
	return out
}

func (p *Plan) HasConflicts() bool { return p.Stats.Conflicts > 0 }

// Builder assembles a Plan from one or more source paths against a
// single destination, enumerating directory trees with godirwalk.
type Builder struct {
	sources        []string
	destination    string
	isMove         bool
	followSymlinks bool
}

func NewBuilder(destination string) *Builder {
	return &Builder{destination: destination}
}

func (b *Builder) AddSource(source string) *Builder {
	b.sources = append(b.sources, source)
	return b
}

func (b *Builder) AddSources(sources []string) *Builder {
	b.sources = append(b.sources, sources...)
	return b
}

func (b *Builder) SetMove(isMove bool) *Builder {
	b.isMove = isMove
	return b
}

func (b *Builder) SetFollowSymlinks(follow bool) *Builder {
	b.followSymlinks = follow
	return b
}

// Build enumerates every source and returns the completed Plan.
// Directory trees are walked concurrently (one goroutine per source
// root) via errgroup, then merged and sorted deterministically.
func (b *Builder) Build() (*Plan, error) {
	if len(b.sources) == 0 {
		return nil, zerr.Internal("no sources provided for transfer plan")
	}

	destIsDir := false
	if info, err := os.Stat(b.destination); err == nil {
		destIsDir = info.IsDir()
	}
	if len(b.sources) > 1 {
		destIsDir = true
	} else if info, err := os.Stat(b.sources[0]); err == nil && info.IsDir() {
		destIsDir = true
	}

	results := make([][]Item, len(b.sources))
	var g errgroup.Group
	for i, source := range b.sources {
		i, source := i, source
		g.Go(func() error {
			items, err := b.enumerateSource(source, destIsDir)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var items []Item
	var stats Stats
	for _, group := range results {
		for _, it := range group {
			if it.HasConflict {
				stats.Conflicts++
			}
			if it.IsDir {
				stats.TotalDirs++
			} else {
				stats.TotalFiles++
				stats.TotalBytes += it.Size
			}
			items = append(items, it)
		}
	}

	sort.SliceStable(items, func(i, k int) bool {
		a, c := items[i], items[k]
		if a.IsDir != c.IsDir {
			return a.IsDir // directories sort before files
		}
		if a.IsDir {
			return a.Depth < c.Depth
		}
		return a.Source < c.Source
	})

	return &Plan{
		Items:           items,
		Stats:           stats,
		IsMove:          b.isMove,
		SourceRoots:     b.sources,
		DestinationRoot: b.destination,
	}, nil
}

func (b *Builder) enumerateSource(source string, destIsDir bool) ([]Item, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, zerr.FromOSError(source, err)
	}

	if !info.IsDir() {
		destPath := b.destination
		if destIsDir {
			destPath = filepath.Join(b.destination, filepath.Base(source))
		}
		return []Item{newItem(source, destPath, false, uint64(info.Size()), 0)}, nil
	}

	sourceParent := filepath.Dir(source)
	var items []Item
	walkErr := godirwalk.Walk(source, &godirwalk.Options{
		FollowSymbolicLinks: b.followSymlinks,
		Unsorted:            true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			rel, relErr := filepath.Rel(sourceParent, path)
			if relErr != nil {
				return errors.Wrapf(relErr, "computing relative path for %s", path)
			}
			destPath := filepath.Join(b.destination, rel)
			depth := len(splitPath(rel)) - 1

			isDir, typeErr := de.IsDirOrSymlinkToDir()
			if typeErr != nil {
				isDir = de.IsDir()
			}

			var size uint64
			if !isDir {
				if st, statErr := os.Stat(path); statErr == nil {
					size = uint64(st.Size())
				}
			}

			items = append(items, newItem(path, destPath, isDir, size, depth))
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			return godirwalk.SkipNode
		},
	})
	if walkErr != nil {
		return nil, zerr.FromOSError(source, walkErr)
	}
	return items, nil
}

func splitPath(rel string) []string {
	if rel == "." || rel == "" {
		return nil
	}
	return strings.Split(filepath.ToSlash(rel), "/")
}
