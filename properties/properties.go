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

// Package properties enumerates drives/volumes and calculates folder
// sizes for the properties panel, the two facts a directory listing
// alone cannot answer cheaply.
package properties

import (
	"fmt"
	"strings"
)

// DriveType classifies a volume the way Explorer's drive icons do.
type DriveType int

const (
	DriveTypeUnknown DriveType = iota
	DriveTypeNoRootDir
	DriveTypeRemovable
	DriveTypeFixed
	DriveTypeNetwork
	DriveTypeCdRom
	DriveTypeRamDisk
)

func (d DriveType) Description() string {
	switch d {
	case DriveTypeNoRootDir:
		return "Not Mounted"
	case DriveTypeRemovable:
		return "Removable"
	case DriveTypeFixed:
		return "Local Disk"
	case DriveTypeNetwork:
		return "Network Drive"
	case DriveTypeCdRom:
		return "CD/DVD Drive"
	case DriveTypeRamDisk:
		return "RAM Disk"
	default:
		return "Unknown"
	}
}

func (d DriveType) Icon() string {
	switch d {
	case DriveTypeRemovable:
		return "usb"
	case DriveTypeFixed:
		return "hard-drive"
	case DriveTypeNetwork:
		return "network"
	case DriveTypeCdRom:
		return "disc"
	case DriveTypeRamDisk:
		return "memory"
	default:
		return "drive"
	}
}

// DriveInfo describes one enumerated volume.
type DriveInfo struct {
	Path       string
	Label      string
	Type       DriveType
	FileSystem string
	TotalBytes *uint64
	FreeBytes  *uint64
	IsReady    bool
}

// DisplayName renders "Label (C:)" or, for an unlabeled drive,
// "Local Disk (C:)".
func (d DriveInfo) DisplayName() string {
	letter := strings.TrimSuffix(strings.TrimSuffix(d.Path, `\`), "/")
	if d.Label == "" {
		return fmt.Sprintf("%s (%s)", d.Type.Description(), letter)
	}
	return fmt.Sprintf("%s (%s)", d.Label, letter)
}

// UsedBytes returns TotalBytes minus FreeBytes when both are known.
func (d DriveInfo) UsedBytes() (uint64, bool) {
	if d.TotalBytes == nil || d.FreeBytes == nil {
		return 0, false
	}
	total, free := *d.TotalBytes, *d.FreeBytes
	if free > total {
		return 0, true
	}
	return total - free, true
}

// UsagePercent returns used/total in [0,1] when total is known and
// nonzero.
func (d DriveInfo) UsagePercent() (float64, bool) {
	if d.TotalBytes == nil || *d.TotalBytes == 0 {
		return 0, false
	}
	used, ok := d.UsedBytes()
	if !ok {
		return 0, false
	}
	return float64(used) / float64(*d.TotalBytes), true
}

func formatBytes(bytes uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
		tb = gb * 1024
	)
	switch {
	case bytes >= tb:
		return fmt.Sprintf("%.2f TB", float64(bytes)/tb)
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FreeSpaceDisplay renders FreeBytes as a human-readable string, or
// "N/A" when unknown.
func (d DriveInfo) FreeSpaceDisplay() string {
	if d.FreeBytes == nil {
		return "N/A"
	}
	return formatBytes(*d.FreeBytes)
}

// TotalSpaceDisplay renders TotalBytes as a human-readable string, or
// "N/A" when unknown.
func (d DriveInfo) TotalSpaceDisplay() string {
	if d.TotalBytes == nil {
		return "N/A"
	}
	return formatBytes(*d.TotalBytes)
}

// GetDriveInfo returns the drive that contains path, if any.
func GetDriveInfo(path string) (DriveInfo, bool) {
	drives, err := ListDrives()
	if err != nil {
		return DriveInfo{}, false
	}
	for _, d := range drives {
		if strings.HasPrefix(path, d.Path) {
			return d, true
		}
	}
	return DriveInfo{}, false
}
