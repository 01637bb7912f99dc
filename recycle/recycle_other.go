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

package recycle

import (
	"os"
	"path/filepath"

	"github.com/PerkyZZ999/ZManager/zerr"
)

// There is no Recycle Bin on non-Windows platforms. This fallback
// moves the path into a trash directory under the system temp dir so
// the rest of the codebase (and its tests) can exercise the delete
// path; it is test-only and not a real user-facing trash
// implementation (it doesn't follow the freedesktop.org trash spec).
func moveToRecycleBinPlatform(path string) error {
	trashDir := filepath.Join(os.TempDir(), ".zmanager_trash")
	if err := os.MkdirAll(trashDir, 0o755); err != nil {
		return zerr.IO(trashDir, err)
	}

	dest := filepath.Join(trashDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return zerr.FromOSError(path, err)
	}
	return nil
}
