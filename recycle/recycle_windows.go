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

package recycle

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/PerkyZZ999/ZManager/zerr"
)

const (
	foDelete          = 0x0003
	fofAllowUndo      = 0x0040
	fofNoConfirmation = 0x0010
	fofNoErrorUI      = 0x0400
	fofSilent         = 0x0004
)

// shFileOpStruct mirrors Win32's SHFILEOPSTRUCTW on amd64. The blank
// uint16 after fFlags keeps fAnyOperationsAborted on a 4-byte boundary,
// as in the C layout; Go's field alignment supplies the other padding.
type shFileOpStruct struct {
	hwnd                  uintptr
	wFunc                 uint32
	pFrom                 *uint16
	pTo                   *uint16
	fFlags                uint16
	_                     uint16
	fAnyOperationsAborted int32
	hNameMappings         uintptr
	lpszProgressTitle     *uint16
}

var (
	shell32            = windows.NewLazySystemDLL("shell32.dll")
	procSHFileOperationW = shell32.NewProc("SHFileOperationW")
)

func moveToRecycleBinPlatform(path string) error {
	wide, err := windows.UTF16FromString(path)
	if err != nil {
		return zerr.InvalidPath(path)
	}
	// SHFileOperationW requires the source list to be double-null
	// terminated.
	wide = append(wide, 0)

	op := shFileOpStruct{
		wFunc:  foDelete,
		pFrom:  &wide[0],
		fFlags: fofAllowUndo | fofNoConfirmation | fofNoErrorUI | fofSilent,
	}

	ret, _, _ := procSHFileOperationW.Call(uintptr(unsafe.Pointer(&op)))
	if ret != 0 {
		return zerr.Windows(uint32(ret), "SHFileOperationW failed")
	}
	if op.fAnyOperationsAborted != 0 {
		return zerr.Cancelled()
	}
	return nil
}
