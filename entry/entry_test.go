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

package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindIsDirExcludesJunction(t *testing.T) {
	a := assert.New(t)
	a.True(KindDirectory.IsDir())
	a.False(KindJunction.IsDir())
	a.False(KindSymlink.IsDir())
	a.False(KindFile.IsDir())
}

func TestKindIsLink(t *testing.T) {
	a := assert.New(t)
	a.True(KindSymlink.IsLink())
	a.True(KindJunction.IsLink())
	a.False(KindDirectory.IsLink())
	a.False(KindFile.IsLink())
}

func TestExtensionOf(t *testing.T) {
	a := assert.New(t)
	a.Equal("txt", ExtensionOf("report.TXT"))
	a.Equal("", ExtensionOf(".gitignore"))
	a.Equal("", ExtensionOf("noext"))
	a.Equal("gz", ExtensionOf("archive.tar.gz"))
}

func TestMetaIsHidden(t *testing.T) {
	a := assert.New(t)
	a.True(Meta{Name: ".bashrc"}.IsHidden())
	a.True(Meta{Name: "secret", Attributes: Attributes{Hidden: true}}.IsHidden())
	a.False(Meta{Name: "visible.txt"}.IsHidden())
}

func TestMetaValidate(t *testing.T) {
	a := assert.New(t)
	a.True(Meta{Kind: KindFile, Extension: "txt"}.Validate())
	a.False(Meta{Kind: KindDirectory, Extension: "txt"}.Validate())
	a.True(Meta{Kind: KindSymlink, LinkTarget: "/x"}.Validate())
	a.False(Meta{Kind: KindFile, LinkTarget: "/x"}.Validate())
}

func TestNewListingAggregation(t *testing.T) {
	a := assert.New(t)
	entries := []Meta{
		{Name: "a.txt", Kind: KindFile, SizeBytes: 10},
		{Name: "b.txt", Kind: KindFile, SizeBytes: 20},
		{Name: "sub", Kind: KindDirectory},
		{Name: "link", Kind: KindSymlink},
		{Name: "mnt", Kind: KindJunction},
	}
	l := NewListing("/root", entries)
	a.Equal(2, l.FileCount)
	a.Equal(1, l.DirCount)
	a.Equal(uint64(30), l.TotalSize)
	a.False(l.IsEmpty())
}

func TestListingIsEmpty(t *testing.T) {
	a := assert.New(t)
	a.True(NewListing("/root", nil).IsEmpty())
}
