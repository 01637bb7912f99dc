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

//go:build windows

package transfer

import (
	"strings"
)

// SameVolume reports whether path1 and path2 resolve to the same
// drive letter or UNC share, the precondition for an atomic
// same-volume rename instead of copy+delete.
func SameVolume(path1, path2 string) bool {
	root1, ok1 := volumeRoot(path1)
	root2, ok2 := volumeRoot(path2)
	if !ok1 || !ok2 {
		return false
	}
	return strings.EqualFold(root1, root2)
}

func volumeRoot(path string) (string, bool) {
	if strings.HasPrefix(path, `\\`) {
		parts := strings.SplitN(strings.TrimPrefix(path, `\\`), `\`, 3)
		if len(parts) >= 2 {
			return `\\` + parts[0] + `\` + parts[1], true
		}
		return "", false
	}

	if len(path) >= 2 && path[1] == ':' {
		return strings.ToUpper(path[:1]) + ":", true
	}

	return "", false
}
