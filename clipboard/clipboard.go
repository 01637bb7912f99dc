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

// Package clipboard bridges cut/copy/paste between ZManager and the
// Windows shell, using the same CF_HDROP format Explorer reads and
// writes so files cut in one can be pasted in the other.
package clipboard

import "github.com/PerkyZZ999/ZManager/zerr"

// DropEffect records whether a clipboard write represents a copy or a
// cut, mirroring the "Preferred DropEffect" format Explorer consults.
type DropEffect int

const (
	DropEffectCopy DropEffect = 1
	DropEffectMove DropEffect = 2
)

func (e DropEffect) Value() uint32 { return uint32(e) }

func DropEffectFromValue(value uint32) (DropEffect, bool) {
	switch value {
	case 1:
		return DropEffectCopy, true
	case 2:
		return DropEffectMove, true
	default:
		return 0, false
	}
}

// Content is the result of reading the clipboard: the file paths it
// held and which operation they were cut/copied for.
type Content struct {
	Paths  []string
	Effect DropEffect
}

func (c Content) HasFiles() bool { return len(c.Paths) > 0 }
func (c Content) IsCut() bool    { return c.Effect == DropEffectMove }
func (c Content) IsCopy() bool   { return c.Effect == DropEffectCopy }

var errNoFiles = zerr.InvalidOperation("clipboard write", "no files to copy")

// Copy writes paths to the clipboard tagged as a copy operation.
func Copy(paths []string) error {
	if len(paths) == 0 {
		return errNoFiles
	}
	return writeFiles(paths, DropEffectCopy)
}

// Cut writes paths to the clipboard tagged as a move operation.
func Cut(paths []string) error {
	if len(paths) == 0 {
		return errNoFiles
	}
	return writeFiles(paths, DropEffectMove)
}

// Paste reads the current clipboard contents.
func Paste() (Content, error) {
	return readFiles()
}

// HasFiles reports whether the clipboard currently holds a CF_HDROP
// payload, without reading it.
func HasFiles() bool {
	return hasFiles()
}

// Clear empties the clipboard.
func Clear() error {
	return clearClipboard()
}
