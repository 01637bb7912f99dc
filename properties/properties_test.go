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
	"testing"

	"github.com/stretchr/testify/assert"
)

func uint64p(v uint64) *uint64 { return &v }

func TestDriveTypeDescriptions(t *testing.T) {
	a := assert.New(t)
	a.Equal("Local Disk", DriveTypeFixed.Description())
	a.Equal("Removable", DriveTypeRemovable.Description())
	a.Equal("Network Drive", DriveTypeNetwork.Description())
}

func TestDriveInfoDisplayName(t *testing.T) {
	a := assert.New(t)
	labeled := DriveInfo{
		Path: `C:\`, Label: "Windows", Type: DriveTypeFixed,
		TotalBytes: uint64p(500 * 1024 * 1024 * 1024),
		FreeBytes:  uint64p(100 * 1024 * 1024 * 1024),
		IsReady:    true,
	}
	a.Equal("Windows (C:)", labeled.DisplayName())

	unlabeled := DriveInfo{Path: `D:\`, Type: DriveTypeFixed}
	a.Equal("Local Disk (D:)", unlabeled.DisplayName())
}

func TestDriveInfoUsage(t *testing.T) {
	a := assert.New(t)
	d := DriveInfo{TotalBytes: uint64p(1000), FreeBytes: uint64p(400)}
	used, ok := d.UsedBytes()
	a.True(ok)
	a.EqualValues(600, used)

	pct, ok := d.UsagePercent()
	a.True(ok)
	a.InDelta(0.6, pct, 0.001)
}

func TestDriveInfoUsageUnknown(t *testing.T) {
	a := assert.New(t)
	d := DriveInfo{}
	_, ok := d.UsedBytes()
	a.False(ok)
	_, ok = d.UsagePercent()
	a.False(ok)
}

func TestFormatBytesDisplay(t *testing.T) {
	a := assert.New(t)
	a.Equal("500 B", DriveInfo{FreeBytes: uint64p(500)}.FreeSpaceDisplay())
	a.Equal("1.00 KB", DriveInfo{FreeBytes: uint64p(1024)}.FreeSpaceDisplay())
	a.Equal("N/A", DriveInfo{}.FreeSpaceDisplay())
}
