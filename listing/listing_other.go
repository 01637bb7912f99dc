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

//go:build !windows

package listing

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PerkyZZ999/ZManager/entry"
	"github.com/PerkyZZ999/ZManager/zerr"
)

// getEntryMetaNoFollow implements spec §4.1 step 3's POSIX fallback:
// lstat metadata, symlink target read without the absolute/directory
// distinction ("all links are Symlink"), and no system-attribute bit
// (POSIX has no system-file concept).
func getEntryMetaNoFollow(path, name string) (entry.Meta, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return entry.Meta{}, zerr.FromOSError(path, err)
	}

	attributes := entry.Attributes{
		Hidden:   strings.HasPrefix(name, "."),
		ReadOnly: info.Mode().Perm()&0o200 == 0,
	}

	var kind entry.Kind
	var linkTarget string
	var isBroken bool

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		kind = entry.KindSymlink
		if target, err := os.Readlink(path); err == nil {
			linkTarget = target
			resolved := target
			if !filepath.IsAbs(target) {
				resolved = filepath.Join(filepath.Dir(path), target)
			}
			if _, statErr := os.Stat(resolved); statErr != nil {
				isBroken = true
			}
		} else {
			isBroken = true
		}
	case info.IsDir():
		kind = entry.KindDirectory
	default:
		kind = entry.KindFile
	}

	size := uint64(0)
	if kind.IsFile() {
		size = uint64(info.Size())
	}

	ext := ""
	if kind.IsFile() {
		ext = entry.ExtensionOf(name)
	}

	modTime := info.ModTime().UTC().Truncate(time.Second)

	return entry.Meta{
		Name:         name,
		AbsolutePath: path,
		Kind:         kind,
		SizeBytes:    size,
		Modified:     &modTime,
		Attributes:   attributes,
		LinkTarget:   linkTarget,
		IsBrokenLink: isBroken,
		Extension:    ext,
	}, nil
}
