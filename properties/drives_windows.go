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

package properties

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	driveUnknown   = 0
	driveNoRootDir = 1
	driveRemovable = 2
	driveFixed     = 3
	driveRemote    = 4
	driveCdRom     = 5
	driveRamDisk   = 6
)

var (
	modkernel32            = windows.NewLazySystemDLL("kernel32.dll")
	procGetLogicalDrives    = modkernel32.NewProc("GetLogicalDrives")
	procGetDriveTypeW       = modkernel32.NewProc("GetDriveTypeW")
	procGetVolumeInformationW = modkernel32.NewProc("GetVolumeInformationW")
	procGetDiskFreeSpaceExW = modkernel32.NewProc("GetDiskFreeSpaceExW")
)

func driveTypeFromRaw(raw uintptr) DriveType {
	switch raw {
	case driveNoRootDir:
		return DriveTypeNoRootDir
	case driveRemovable:
		return DriveTypeRemovable
	case driveFixed:
		return DriveTypeFixed
	case driveRemote:
		return DriveTypeNetwork
	case driveCdRom:
		return DriveTypeCdRom
	case driveRamDisk:
		return DriveTypeRamDisk
	default:
		return DriveTypeUnknown
	}
}

// ListDrives enumerates every mounted drive letter using
// GetLogicalDrives, then fills in volume label, file system and free
// space via GetVolumeInformationW/GetDiskFreeSpaceExW.
func ListDrives() ([]DriveInfo, error) {
	bitmask, _, _ := procGetLogicalDrives.Call()

	var drives []DriveInfo
	for i := 0; i < 26; i++ {
		if bitmask&(1<<uint(i)) == 0 {
			continue
		}

		root := fmt.Sprintf("%c:\\", 'A'+i)
		rootPtr, err := windows.UTF16PtrFromString(root)
		if err != nil {
			continue
		}

		rawType, _, _ := procGetDriveTypeW.Call(uintptr(unsafe.Pointer(rootPtr)))
		driveType := driveTypeFromRaw(rawType)
		if driveType == DriveTypeNoRootDir {
			continue
		}

		label, fileSystem, isReady := volumeInfo(rootPtr)

		var totalBytes, freeBytes *uint64
		if isReady {
			if total, free, ok := diskFreeSpace(rootPtr); ok {
				totalBytes, freeBytes = &total, &free
			}
		}

		drives = append(drives, DriveInfo{
			Path:       root,
			Label:      label,
			Type:       driveType,
			FileSystem: fileSystem,
			TotalBytes: totalBytes,
			FreeBytes:  freeBytes,
			IsReady:    isReady,
		})
	}

	return drives, nil
}

func volumeInfo(rootPtr *uint16) (label, fileSystem string, isReady bool) {
	var labelBuf, fsBuf [256]uint16
	var serial, maxComponent, fsFlags uint32

	ret, _, _ := procGetVolumeInformationW.Call(
		uintptr(unsafe.Pointer(rootPtr)),
		uintptr(unsafe.Pointer(&labelBuf[0])),
		uintptr(len(labelBuf)),
		uintptr(unsafe.Pointer(&serial)),
		uintptr(unsafe.Pointer(&maxComponent)),
		uintptr(unsafe.Pointer(&fsFlags)),
		uintptr(unsafe.Pointer(&fsBuf[0])),
		uintptr(len(fsBuf)),
	)
	if ret == 0 {
		return "", "", false
	}
	return windows.UTF16ToString(labelBuf[:]), windows.UTF16ToString(fsBuf[:]), true
}

func diskFreeSpace(rootPtr *uint16) (total, free uint64, ok bool) {
	var freeCaller, totalBytes, totalFree uint64
	ret, _, _ := procGetDiskFreeSpaceExW.Call(
		uintptr(unsafe.Pointer(rootPtr)),
		uintptr(unsafe.Pointer(&freeCaller)),
		uintptr(unsafe.Pointer(&totalBytes)),
		uintptr(unsafe.Pointer(&totalFree)),
	)
	if ret == 0 {
		return 0, 0, false
	}
	return totalBytes, totalFree, true
}
