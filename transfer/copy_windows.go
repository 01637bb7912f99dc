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
	"os"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/PerkyZZ999/ZManager/winpath"
	"github.com/PerkyZZ999/ZManager/zerr"
)

var (
	modkernel32       = windows.NewLazySystemDLL("kernel32.dll")
	procCopyFileExW   = modkernel32.NewProc("CopyFileExW")
	copyProgressStub  = syscall.NewCallback(copyProgressRouter)
	callbackStates    sync.Map // uintptr(token) -> *copyState
	callbackStateSeq  uintptr
	callbackStatesMux sync.Mutex
)

const (
	progressContinue = 0
	progressCancel   = 1

	copyFileFailIfExists = 0x00000001
)

// copyProgressRouter is the single stdcall-compatible entry point
// CopyFileExW invokes; the real *copyState is looked up by the token
// passed through lpData since Go cannot closure-capture across a
// syscall.NewCallback boundary.
func copyProgressRouter(
	totalFileSize int64,
	totalBytesTransferred int64,
	_streamSize int64,
	_streamBytesTransferred int64,
	_streamNumber uint32,
	_callbackReason uint32,
	_srcHandle windows.Handle,
	_dstHandle windows.Handle,
	lpData uintptr,
) uintptr {
	v, ok := callbackStates.Load(lpData)
	if !ok {
		return progressContinue
	}
	entry := v.(*copyStateEntry)

	if entry.state.cancel.IsCancelled() {
		return progressCancel
	}

	entry.state.report(uint64(totalBytesTransferred), uint64(totalFileSize))
	return progressContinue
}

type copyStateEntry struct {
	state *copyState
}

func registerCallbackState(state *copyState) (uintptr, func()) {
	callbackStatesMux.Lock()
	callbackStateSeq++
	token := callbackStateSeq
	callbackStatesMux.Unlock()

	callbackStates.Store(token, &copyStateEntry{state: state})
	return token, func() { callbackStates.Delete(token) }
}

// copyFileImpl copies source to destination via the native
// CopyFileExW API, wiring cancellation and progress reporting through
// the LPPROGRESS_ROUTINE callback.
func copyFileImpl(source, destination string, totalBytes uint64, state *copyState) (uint64, error) {
	srcPtr, err := windows.UTF16PtrFromString(winpath.ForAPI(source))
	if err != nil {
		return 0, zerr.InvalidPath(source)
	}
	dstPtr, err := windows.UTF16PtrFromString(winpath.ForAPI(destination))
	if err != nil {
		return 0, zerr.InvalidPath(destination)
	}

	token, unregister := registerCallbackState(state)
	defer unregister()

	flags := uintptr(0)
	var cancelFlag int32
	ret, _, callErr := procCopyFileExW.Call(
		uintptr(unsafe.Pointer(srcPtr)),
		uintptr(unsafe.Pointer(dstPtr)),
		copyProgressStub,
		uintptr(token),
		uintptr(unsafe.Pointer(&cancelFlag)),
		flags,
	)

	if ret != 0 {
		return totalBytes, nil
	}

	if state.cancel.IsCancelled() {
		os.Remove(destination)
		return 0, zerr.Cancelled()
	}

	errno, _ := callErr.(syscall.Errno)
	switch errno {
	case windows.ERROR_ACCESS_DENIED:
		return 0, zerr.PermissionDenied(destination)
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_PATH_NOT_FOUND:
		return 0, zerr.NotFound(source)
	case windows.ERROR_FILE_EXISTS:
		return 0, zerr.AlreadyExists(destination)
	case windows.ERROR_DISK_FULL:
		return 0, zerr.TransferFailed("disk full", callErr)
	default:
		return 0, zerr.Windows(uint32(errno), callErr.Error())
	}
}
