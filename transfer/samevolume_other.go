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
	"os"
	"syscall"
)

// SameVolume reports whether path1 and path2 share a device number,
// the POSIX precondition for an atomic same-volume rename. Equal
// st_dev values are only an approximation: bind mounts and overlay
// filesystems can report equal or different device numbers for paths
// that a rename treats otherwise.
func SameVolume(path1, path2 string) bool {
	info1, err := os.Stat(path1)
	if err != nil {
		return false
	}
	info2, err := os.Stat(path2)
	if err != nil {
		return false
	}
	dev1, ok1 := deviceNumber(info1)
	dev2, ok2 := deviceNumber(info2)
	return ok1 && ok2 && dev1 == dev2
}

func deviceNumber(info os.FileInfo) (uint64, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return uint64(stat.Dev), true
}
