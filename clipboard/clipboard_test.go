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

package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDropEffectValues(t *testing.T) {
	a := assert.New(t)
	a.EqualValues(1, DropEffectCopy.Value())
	a.EqualValues(2, DropEffectMove.Value())
}

func TestDropEffectFromValue(t *testing.T) {
	a := assert.New(t)
	e, ok := DropEffectFromValue(1)
	a.True(ok)
	a.Equal(DropEffectCopy, e)

	e, ok = DropEffectFromValue(2)
	a.True(ok)
	a.Equal(DropEffectMove, e)

	_, ok = DropEffectFromValue(99)
	a.False(ok)
}

func TestContentHelpers(t *testing.T) {
	a := assert.New(t)
	copyContent := Content{Paths: []string{"test.txt"}, Effect: DropEffectCopy}
	a.True(copyContent.HasFiles())
	a.True(copyContent.IsCopy())
	a.False(copyContent.IsCut())

	cutContent := Content{Paths: []string{"test.txt"}, Effect: DropEffectMove}
	a.True(cutContent.IsCut())
	a.False(cutContent.IsCopy())

	empty := Content{}
	a.False(empty.HasFiles())
}

func TestWriteEmptyFails(t *testing.T) {
	a := assert.New(t)
	a.Error(Copy(nil))
	a.Error(Cut([]string{}))
}

func TestClipboardRoundTrip(t *testing.T) {
	a := assert.New(t)
	paths := []string{"a.txt", "b.txt"}

	a.NoError(Copy(paths))
	content, err := Paste()
	a.NoError(err)
	a.True(content.HasFiles())
	a.True(content.IsCopy())

	a.NoError(Cut(paths))
	content, err = Paste()
	a.NoError(err)
	a.True(content.IsCut())

	a.NoError(Clear())
}
