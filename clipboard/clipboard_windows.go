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

package clipboard

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/PerkyZZ999/ZManager/zerr"
)

const (
	cfHDrop = 15

	gmemMoveable = 0x0002
	gmemZeroinit = 0x0040
	ghnd         = gmemMoveable | gmemZeroinit
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")

	procOpenClipboard             = user32.NewProc("OpenClipboard")
	procCloseClipboard            = user32.NewProc("CloseClipboard")
	procEmptyClipboard             = user32.NewProc("EmptyClipboard")
	procGetClipboardData          = user32.NewProc("GetClipboardData")
	procSetClipboardData          = user32.NewProc("SetClipboardData")
	procRegisterClipboardFormatW  = user32.NewProc("RegisterClipboardFormatW")
	procIsClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
	procGlobalSize   = kernel32.NewProc("GlobalSize")

	procDragQueryFileW = shell32.NewProc("DragQueryFileW")
)

// dropFiles mirrors the Win32 DROPFILES header that precedes the
// double-null-terminated wide-string path list in a CF_HDROP payload.
type dropFiles struct {
	pFiles uint32
	ptX    int32
	ptY    int32
	fNC    int32
	fWide  int32
}

func openClipboard() error {
	r, _, err := procOpenClipboard.Call(0)
	if r == 0 {
		return zerr.Windows(0, "OpenClipboard failed: "+err.Error())
	}
	return nil
}

func closeClipboardSafe() {
	_, _, _ = procCloseClipboard.Call()
}

func dropEffectFormat() uint32 {
	name, err := windows.UTF16PtrFromString("Preferred DropEffect")
	if err != nil {
		return 0
	}
	r, _, _ := procRegisterClipboardFormatW.Call(uintptr(unsafe.Pointer(name)))
	return uint32(r)
}

func writeFiles(paths []string, effect DropEffect) error {
	if err := openClipboard(); err != nil {
		return err
	}

	if r, _, err := procEmptyClipboard.Call(); r == 0 {
		closeClipboardSafe()
		return zerr.Windows(0, "EmptyClipboard failed: "+err.Error())
	}

	hglobal, err := buildHDrop(paths)
	if err != nil {
		closeClipboardSafe()
		return err
	}

	if r, _, _ := procSetClipboardData.Call(cfHDrop, hglobal); r == 0 {
		closeClipboardSafe()
		return zerr.Internal("failed to set CF_HDROP clipboard data")
	}

	if err := setDropEffect(effect); err != nil {
		// Non-fatal: Explorer falls back to "copy" without this hint.
		_ = err
	}

	closeClipboardSafe()
	return nil
}

func buildHDrop(paths []string) (uintptr, error) {
	wide := make([][]uint16, len(paths))
	pathsSize := 0
	for i, p := range paths {
		w, err := windows.UTF16FromString(p)
		if err != nil {
			return 0, zerr.Internal("invalid path for clipboard: " + p)
		}
		wide[i] = w
		pathsSize += len(w) * 2
	}

	headerSize := int(unsafe.Sizeof(dropFiles{}))
	totalSize := headerSize + pathsSize + 2

	hglobal, _, err := procGlobalAlloc.Call(ghnd, uintptr(totalSize))
	if hglobal == 0 {
		return 0, zerr.Internal("failed to allocate clipboard memory: " + err.Error())
	}

	ptr, _, _ := procGlobalLock.Call(hglobal)
	if ptr == 0 {
		return 0, zerr.Internal("failed to lock clipboard memory")
	}

	header := (*dropFiles)(unsafe.Pointer(ptr))
	header.pFiles = uint32(headerSize)
	header.fWide = 1

	dest := ptr + uintptr(headerSize)
	for _, w := range wide {
		for _, c := range w {
			*(*uint16)(unsafe.Pointer(dest)) = c
			dest += 2
		}
	}
	*(*uint16)(unsafe.Pointer(dest)) = 0

	procGlobalUnlock.Call(hglobal)
	return hglobal, nil
}

func setDropEffect(effect DropEffect) error {
	format := dropEffectFormat()
	if format == 0 {
		return zerr.Internal("failed to register drop effect format")
	}

	hglobal, _, err := procGlobalAlloc.Call(gmemMoveable, 4)
	if hglobal == 0 {
		return zerr.Internal("failed to allocate drop effect memory: " + err.Error())
	}

	ptr, _, _ := procGlobalLock.Call(hglobal)
	if ptr == 0 {
		return zerr.Internal("failed to lock drop effect memory")
	}
	*(*uint32)(unsafe.Pointer(ptr)) = effect.Value()
	procGlobalUnlock.Call(hglobal)

	if r, _, _ := procSetClipboardData.Call(uintptr(format), hglobal); r == 0 {
		return zerr.Internal("failed to set drop effect")
	}
	return nil
}

func readFiles() (Content, error) {
	if err := openClipboard(); err != nil {
		return Content{}, err
	}
	defer closeClipboardSafe()

	handle, _, _ := procGetClipboardData.Call(cfHDrop)
	if handle == 0 {
		return Content{Effect: DropEffectCopy}, nil
	}

	paths := parseHDrop(handle)
	effect := DropEffectCopy
	if e, ok := readDropEffect(); ok {
		effect = e
	}

	return Content{Paths: paths, Effect: effect}, nil
}

func parseHDrop(hdrop uintptr) []string {
	count, _, _ := procDragQueryFileW.Call(hdrop, 0xFFFFFFFF, 0, 0)
	if count == 0 {
		return nil
	}

	paths := make([]string, 0, count)
	for i := uintptr(0); i < count; i++ {
		length, _, _ := procDragQueryFileW.Call(hdrop, i, 0, 0)
		if length == 0 {
			continue
		}
		buf := make([]uint16, length+1)
		actual, _, _ := procDragQueryFileW.Call(hdrop, i, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
		if actual == 0 {
			continue
		}
		paths = append(paths, windows.UTF16ToString(buf[:actual]))
	}
	return paths
}

func readDropEffect() (DropEffect, bool) {
	format := dropEffectFormat()
	if format == 0 {
		return 0, false
	}

	handle, _, _ := procGetClipboardData.Call(uintptr(format))
	if handle == 0 {
		return 0, false
	}

	size, _, _ := procGlobalSize.Call(handle)
	if size < 4 {
		return 0, false
	}

	ptr, _, _ := procGlobalLock.Call(handle)
	if ptr == 0 {
		return 0, false
	}
	value := *(*uint32)(unsafe.Pointer(ptr))
	procGlobalUnlock.Call(handle)

	return DropEffectFromValue(value)
}

func hasFiles() bool {
	r, _, _ := procIsClipboardFormatAvailable.Call(cfHDrop)
	return r != 0
}

func clearClipboard() error {
	if err := openClipboard(); err != nil {
		return err
	}
	defer closeClipboardSafe()

	if r, _, err := procEmptyClipboard.Call(); r == 0 {
		return zerr.Windows(0, "EmptyClipboard failed: "+err.Error())
	}
	return nil
}
