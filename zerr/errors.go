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

// Package zerr implements the single failure sum type shared by every
// core component: listing, navigation, transfer, scheduling, watching
// and clipboard I/O all return *zerr.Error rather than ad-hoc errors.
package zerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the failure categories of the core. Every I/O or
// invariant failure produced by this module maps onto exactly one of
// these.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindNotADirectory
	KindNotAFile
	KindAlreadyExists
	KindDirectoryNotEmpty
	KindPermissionDenied
	KindInvalidPath
	KindIO
	KindLinkResolutionFailed
	KindTransferFailed
	KindCancelled
	KindInvalidOperation
	KindWindows
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindNotADirectory:
		return "NotADirectory"
	case KindNotAFile:
		return "NotAFile"
	case KindAlreadyExists:
		return "AlreadyExists"
	case KindDirectoryNotEmpty:
		return "DirectoryNotEmpty"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindInvalidPath:
		return "InvalidPath"
	case KindIO:
		return "Io"
	case KindLinkResolutionFailed:
		return "LinkResolutionFailed"
	case KindTransferFailed:
		return "TransferFailed"
	case KindCancelled:
		return "Cancelled"
	case KindInvalidOperation:
		return "InvalidOperation"
	case KindWindows:
		return "Windows"
	case KindInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is the one sum type that spans the core, per spec §7. Path is
// the offending filesystem path, when one is known. Op names the
// operation for KindInvalidOperation; Reason carries its explanation.
// Code/Message carry a native error code for KindWindows. Cause wraps
// an underlying error (e.g. the raw os.PathError for KindIO).
type Error struct {
	Kind    Kind
	Path    string
	Op      string
	Reason  string
	Code    uint32
	Message string
	Cause   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		if e.Path != "" {
			return fmt.Sprintf("io error on %q: %v", e.Path, e.Cause)
		}
		return fmt.Sprintf("io error: %v", e.Cause)
	case KindTransferFailed:
		if e.Cause != nil {
			return fmt.Sprintf("transfer failed: %s: %v", e.Reason, e.Cause)
		}
		return fmt.Sprintf("transfer failed: %s", e.Reason)
	case KindInvalidOperation:
		return fmt.Sprintf("invalid operation %q: %s", e.Op, e.Reason)
	case KindWindows:
		return fmt.Sprintf("windows error %d: %s", e.Code, e.Message)
	case KindInternal:
		return fmt.Sprintf("internal error: %s", e.Reason)
	default:
		if e.Path != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Path)
		}
		return e.Kind.String()
	}
}

// Unwrap lets errors.Is/errors.As and github.com/pkg/errors.Cause see
// through to the wrapped native error.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target has the same Kind, the comparison used
// throughout the core and its tests (e.g. errors.Is(err, zerr.NotFound(""))).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func NotFound(path string) *Error {
	return &Error{Kind: KindNotFound, Path: path}
}

func NotADirectory(path string) *Error {
	return &Error{Kind: KindNotADirectory, Path: path}
}

func NotAFile(path string) *Error {
	return &Error{Kind: KindNotAFile, Path: path}
}

func AlreadyExists(path string) *Error {
	return &Error{Kind: KindAlreadyExists, Path: path}
}

func DirectoryNotEmpty(path string) *Error {
	return &Error{Kind: KindDirectoryNotEmpty, Path: path}
}

func PermissionDenied(path string) *Error {
	return &Error{Kind: KindPermissionDenied, Path: path}
}

func InvalidPath(path string) *Error {
	return &Error{Kind: KindInvalidPath, Path: path}
}

// IO wraps a native error together with the path that produced it,
// always as KindIO. FromOSError is the constructor that infers a more
// precise Kind (NotFound, PermissionDenied, ...) from the cause.
func IO(path string, cause error) *Error {
	return &Error{Kind: KindIO, Path: path, Cause: cause}
}

func LinkResolutionFailed(path string, cause error) *Error {
	return &Error{Kind: KindLinkResolutionFailed, Path: path, Cause: cause}
}

func TransferFailed(reason string, cause error) *Error {
	return &Error{Kind: KindTransferFailed, Reason: reason, Cause: cause}
}

func Cancelled() *Error {
	return &Error{Kind: KindCancelled}
}

func InvalidOperation(op, reason string) *Error {
	return &Error{Kind: KindInvalidOperation, Op: op, Reason: reason}
}

func Windows(code uint32, message string) *Error {
	return &Error{Kind: KindWindows, Code: code, Message: message}
}

func Internal(reason string) *Error {
	return &Error{Kind: KindInternal, Reason: reason}
}

// Wrap attaches additional context to err using github.com/pkg/errors
// so a stack trace survives for logs while zerr.As still recovers the
// original *Error.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, context)
}

// As recovers the *Error from err, unwrapping any github.com/pkg/errors
// wrapping applied by Wrap.
func As(err error) (*Error, bool) {
	cause := errors.Cause(err)
	e, ok := cause.(*Error)
	return e, ok
}

// OfKind reports whether err is a *Error of the given Kind, looking
// through Wrap.
func OfKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}
