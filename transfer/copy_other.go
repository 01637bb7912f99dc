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

package transfer

import (
	"io"
	"os"

	"github.com/PerkyZZ999/ZManager/zerr"
)

const copyChunkSize = 1 << 20 // 1 MiB, matches CopyFileExW's default chunking cadence closely enough for progress granularity

// copyFileImpl is the non-Windows fallback: a chunked read/write loop
// that checks cancel.IsCancelled() and reports progress once per
// chunk, mirroring the cadence of the Windows CopyFileExW callback.
func copyFileImpl(source, destination string, totalBytes uint64, state *copyState) (uint64, error) {
	in, err := os.Open(source)
	if err != nil {
		return 0, zerr.FromOSError(source, err)
	}
	defer in.Close()

	out, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, zerr.FromOSError(destination, err)
	}

	buf := make([]byte, copyChunkSize)
	var copied uint64

	for {
		if state.cancel.IsCancelled() {
			out.Close()
			os.Remove(destination)
			return copied, zerr.Cancelled()
		}

		n, readErr := in.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				out.Close()
				os.Remove(destination)
				return copied, zerr.FromOSError(destination, writeErr)
			}
			copied += uint64(n)
			state.report(copied, totalBytes)
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			out.Close()
			os.Remove(destination)
			return copied, zerr.FromOSError(source, readErr)
		}
	}

	if err := out.Close(); err != nil {
		return copied, zerr.FromOSError(destination, err)
	}
	return copied, nil
}
