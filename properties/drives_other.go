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

package properties

import (
	"os"

	"golang.org/x/sys/unix"
)

// ListDrives has no drive-letter concept on POSIX; it reports the
// common mount points that exist on this machine, with free/total
// space from statfs where available.
func ListDrives() ([]DriveInfo, error) {
	candidates := []string{"/", "/home", "/tmp", "/mnt", "/media"}

	var drives []DriveInfo
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		info := DriveInfo{Path: path, Label: path, Type: DriveTypeFixed, IsReady: true}

		var stat unix.Statfs_t
		if err := unix.Statfs(path, &stat); err == nil {
			total := uint64(stat.Blocks) * uint64(stat.Bsize)
			free := uint64(stat.Bavail) * uint64(stat.Bsize)
			info.TotalBytes = &total
			info.FreeBytes = &free
		}

		drives = append(drives, info)
	}

	return drives, nil
}
