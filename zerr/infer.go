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

package zerr

import (
	"errors"
	"os"
)

// FromOSError maps a raw os/io error for path into the closest Kind,
// falling back to a generic KindIO wrap. This is the "I/O-kind
// inference" named in spec §2 row 1.
func FromOSError(path string, err error) *Error {
	if err == nil {
		return nil
	}
	if existing, ok := As(err); ok {
		return existing
	}
	switch {
	case os.IsNotExist(err):
		return NotFound(path)
	case os.IsPermission(err):
		return PermissionDenied(path)
	case errors.Is(err, os.ErrExist):
		return AlreadyExists(path)
	default:
		return IO(path, err)
	}
}
