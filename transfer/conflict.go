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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Conflict describes a destination path that already exists for a
// planned transfer item.
type Conflict struct {
	Source         string
	Destination    string
	SourceSize     uint64
	DestSize       uint64
	SourceModified *time.Time
	DestModified   *time.Time
	IsDir          bool
}

// DetectConflict stats source and destination and returns a Conflict
// if destination exists, nil if there is nothing to resolve.
func DetectConflict(source, destination string) (*Conflict, error) {
	destInfo, err := os.Stat(destination)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	srcInfo, err := os.Stat(source)
	if err != nil {
		return nil, err
	}

	srcMod := srcInfo.ModTime()
	dstMod := destInfo.ModTime()
	return &Conflict{
		Source:         source,
		Destination:    destination,
		SourceSize:     uint64(srcInfo.Size()),
		DestSize:       uint64(destInfo.Size()),
		SourceModified: &srcMod,
		DestModified:   &dstMod,
		IsDir:          srcInfo.IsDir(),
	}, nil
}

// SourceIsNewer reports whether the source is strictly newer than the
// destination. The second return is false if either timestamp is
// unavailable.
func (c Conflict) SourceIsNewer() (bool, bool) {
	if c.SourceModified == nil || c.DestModified == nil {
		return false, false
	}
	return c.SourceModified.After(*c.DestModified), true
}

func (c Conflict) SameSize() bool { return c.SourceSize == c.DestSize }

func (c Conflict) Description() string {
	kind := "File"
	if c.IsDir {
		kind = "Directory"
	}
	return fmt.Sprintf("%s already exists: %s", kind, c.Destination)
}

// Policy selects how a conflict of a given kind should be handled.
type Policy int

const (
	PolicyAsk Policy = iota
	PolicyOverwrite
	PolicySkip
	PolicyRename
	PolicyKeepNewer
	PolicyKeepLarger
)

func (p Policy) Label() string {
	switch p {
	case PolicyOverwrite:
		return "Overwrite"
	case PolicySkip:
		return "Skip"
	case PolicyRename:
		return "Rename"
	case PolicyKeepNewer:
		return "Keep Newer"
	case PolicyKeepLarger:
		return "Keep Larger"
	default:
		return "Ask"
	}
}

func (p Policy) Description() string {
	switch p {
	case PolicyOverwrite:
		return "Replace existing files with source files"
	case PolicySkip:
		return "Keep existing files, don't copy conflicting sources"
	case PolicyRename:
		return "Rename source files to avoid conflicts (e.g., file (1).txt)"
	case PolicyKeepNewer:
		return "Keep the file with the most recent modification time"
	case PolicyKeepLarger:
		return "Keep the larger file"
	default:
		return "Ask for each conflict"
	}
}

// Resolution is the outcome of resolving a conflict.
type Resolution int

const (
	ResolutionOverwrite Resolution = iota
	ResolutionSkip
	ResolutionRename
	ResolutionCancel
)

// Settings configures a Resolver: separate policies for file vs.
// directory conflicts (directories default to Overwrite, which reads
// as "merge", since most callers expect copying into an existing
// folder to merge its contents).
type Settings struct {
	FilePolicy  Policy
	DirPolicy   Policy
	ApplyToAll  bool
}

func DefaultSettings() Settings {
	return Settings{FilePolicy: PolicyAsk, DirPolicy: PolicyOverwrite}
}

// Resolver applies Settings to Conflicts, optionally caching a single
// resolution to reuse across an entire operation ("apply to all").
type Resolver struct {
	settings Settings
	cached   *Resolution
}

func NewResolver() *Resolver {
	return NewResolverWithSettings(DefaultSettings())
}

func NewResolverWithSettings(s Settings) *Resolver {
	return &Resolver{settings: s}
}

func OverwriteAllResolver() *Resolver {
	return NewResolverWithSettings(Settings{FilePolicy: PolicyOverwrite, DirPolicy: PolicyOverwrite, ApplyToAll: true})
}

func SkipAllResolver() *Resolver {
	return NewResolverWithSettings(Settings{FilePolicy: PolicySkip, DirPolicy: PolicySkip, ApplyToAll: true})
}

func (r *Resolver) Settings() Settings { return r.settings }

func (r *Resolver) SetSettings(s Settings) {
	r.settings = s
	r.cached = nil
}

// ApplyToAll caches resolution for every remaining conflict in the
// current operation — the response to an interactive "apply to all
// remaining" choice (spec §9 Open Question 2).
func (r *Resolver) ApplyToAll(resolution Resolution) {
	r.settings.ApplyToAll = true
	r.cached = &resolution
}

func (r *Resolver) ResetApplyToAll() {
	r.settings.ApplyToAll = false
	r.cached = nil
}

// Resolve returns the resolution for conflict, or (zero, false) if the
// active policy is Ask (or KeepNewer without usable timestamps) and a
// caller must decide interactively.
func (r *Resolver) Resolve(c Conflict) (Resolution, bool) {
	if r.settings.ApplyToAll && r.cached != nil {
		return *r.cached, true
	}

	policy := r.settings.FilePolicy
	if c.IsDir {
		policy = r.settings.DirPolicy
	}

	switch policy {
	case PolicyOverwrite:
		return ResolutionOverwrite, true
	case PolicySkip:
		return ResolutionSkip, true
	case PolicyRename:
		return ResolutionRename, true
	case PolicyKeepNewer:
		newer, ok := c.SourceIsNewer()
		if !ok {
			return 0, false
		}
		if newer {
			return ResolutionOverwrite, true
		}
		return ResolutionSkip, true
	case PolicyKeepLarger:
		if c.SourceSize > c.DestSize {
			return ResolutionOverwrite, true
		}
		return ResolutionSkip, true
	default: // PolicyAsk
		return 0, false
	}
}

// GenerateRenamePath returns the next "name (N).ext" sibling of path
// that does not already exist, falling back to a unix-timestamp
// suffix after 10000 attempts (spec-mandated safety limit).
func GenerateRenamePath(path string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	nameWithCounter := func(counter int) string {
		if ext != "" {
			return fmt.Sprintf("%s (%d)%s", stem, counter, ext)
		}
		return fmt.Sprintf("%s (%d)", stem, counter)
	}

	for counter := 1; counter <= 10000; counter++ {
		candidate := filepath.Join(dir, nameWithCounter(counter))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}

	timestamp := time.Now().Unix()
	var fallback string
	if ext != "" {
		fallback = fmt.Sprintf("%s_%d%s", stem, timestamp, ext)
	} else {
		fallback = fmt.Sprintf("%s_%d", stem, timestamp)
	}
	return filepath.Join(dir, fallback)
}
