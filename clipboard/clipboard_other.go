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

package clipboard

import "sync"

// CF_HDROP has no POSIX equivalent, so non-Windows builds fall back to
// an in-process clipboard. It lets the rest of the codebase (and its
// tests) exercise cut/copy/paste without a real Explorer to interop
// with; it is not meant to interoperate with any desktop environment's
// clipboard.
var (
	fallbackMu      sync.Mutex
	fallbackPaths   []string
	fallbackEffect  DropEffect
	fallbackHasData bool
)

func writeFiles(paths []string, effect DropEffect) error {
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	fallbackPaths = append([]string(nil), paths...)
	fallbackEffect = effect
	fallbackHasData = true
	return nil
}

func readFiles() (Content, error) {
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	if !fallbackHasData {
		return Content{Effect: DropEffectCopy}, nil
	}
	return Content{Paths: append([]string(nil), fallbackPaths...), Effect: fallbackEffect}, nil
}

func hasFiles() bool {
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	return fallbackHasData && len(fallbackPaths) > 0
}

func clearClipboard() error {
	fallbackMu.Lock()
	defer fallbackMu.Unlock()
	fallbackPaths = nil
	fallbackHasData = false
	return nil
}
