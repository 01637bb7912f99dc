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

// Package recycle moves files and directories to the Windows Recycle
// Bin instead of deleting them permanently, so a user can recover from
// an accidental delete the same way Explorer lets them.
package recycle

import (
	"os"

	"github.com/PerkyZZ999/ZManager/zerr"
)

// MoveToRecycleBin moves path to the Recycle Bin. It returns
// zerr.KindNotFound if path does not exist.
func MoveToRecycleBin(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return zerr.NotFound(path)
		}
		return zerr.FromOSError(path, err)
	}
	return moveToRecycleBinPlatform(path)
}

// MoveMultipleToRecycleBin moves every path to the Recycle Bin,
// returning one result per input path in order so a caller can report
// partial failures without aborting the whole batch.
func MoveMultipleToRecycleBin(paths []string) []error {
	results := make([]error, len(paths))
	for i, p := range paths {
		results[i] = MoveToRecycleBin(p)
	}
	return results
}
