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

package properties

import (
	"context"
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"

	"github.com/PerkyZZ999/ZManager/job"
	"github.com/PerkyZZ999/ZManager/zerr"
)

// FolderSize is the result of walking a directory tree to completion.
type FolderSize struct {
	TotalBytes  uint64
	FileCount   int
	FolderCount int
}

// CalculateFolderSize walks path recursively, summing file sizes. It
// checks ctx and cancel between every directory entry so a caller can
// abort a walk over a very large tree without waiting for it to
// finish.
func CalculateFolderSize(ctx context.Context, path string, cancel *job.CancellationToken) (FolderSize, error) {
	var result FolderSize
	root := filepath.Clean(path)
	var aborted error

	err := godirwalk.Walk(path, &godirwalk.Options{
		Unsorted: true,
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			select {
			case <-ctx.Done():
				aborted = ctx.Err()
				return aborted
			default:
			}
			if cancel != nil && cancel.IsCancelled() {
				aborted = zerr.Cancelled()
				return aborted
			}
			if osPathname == root {
				return nil
			}

			isDir, err := de.IsDirOrSymlinkToDir()
			if err != nil {
				isDir = de.IsDir()
			}
			if isDir {
				result.FolderCount++
				return nil
			}

			result.FileCount++
			info, err := os.Stat(osPathname)
			if err == nil {
				result.TotalBytes += uint64(info.Size())
			}
			return nil
		},
		ErrorCallback: func(_ string, _ error) godirwalk.ErrorAction {
			if aborted != nil {
				return godirwalk.Halt
			}
			return godirwalk.SkipNode
		},
	})

	if err != nil {
		return result, zerr.Wrap(err, "calculate folder size")
	}
	return result, nil
}
