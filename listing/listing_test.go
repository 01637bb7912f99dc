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

package listing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PerkyZZ999/ZManager/sortfilter"
	"github.com/stretchr/testify/assert"
)

func TestListDirectoryNotFound(t *testing.T) {
	a := assert.New(t)
	_, err := ListDirectory(filepath.Join(t.TempDir(), "missing"), Options{})
	a.Error(err)
}

func TestListDirectoryRejectsFile(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	a.NoError(os.WriteFile(file, []byte("x"), 0o644))

	_, err := ListDirectory(file, Options{})
	a.Error(err)
}

func TestListDirectoryBasic(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	a.NoError(os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hello"), 0o644))
	a.NoError(os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	a.NoError(os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	listing, err := ListDirectory(dir, Options{})
	a.NoError(err)
	a.Equal(3, len(listing.Entries))
	a.Equal(2, listing.FileCount)
	a.Equal(1, listing.DirCount)

	// Default sort: directories first, then case-insensitive name.
	a.Equal("sub", listing.Entries[0].Name)
	a.Equal("a.txt", listing.Entries[1].Name)
	a.Equal("b.txt", listing.Entries[2].Name)
}

func TestListDirectoryAppliesFilter(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	a.NoError(os.WriteFile(filepath.Join(dir, "keep.go"), []byte("x"), 0o644))
	a.NoError(os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("x"), 0o644))

	filter := sortfilter.NewFilter()
	filter.AddExtension("go")
	listing, err := ListDirectory(dir, Options{Filter: &filter})
	a.NoError(err)
	a.Equal(1, len(listing.Entries))
	a.Equal("keep.go", listing.Entries[0].Name)
}

func TestListDirectoryAppliesCustomSort(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	a.NoError(os.WriteFile(filepath.Join(dir, "small.txt"), []byte("x"), 0o644))
	a.NoError(os.WriteFile(filepath.Join(dir, "large.txt"), []byte("xxxxxxxxxx"), 0o644))

	sort := sortfilter.NewSort(sortfilter.FieldSize, sortfilter.OrderDesc)
	sort.DirectoriesFirst = false
	listing, err := ListDirectory(dir, Options{Sort: &sort})
	a.NoError(err)
	a.Equal("large.txt", listing.Entries[0].Name)
	a.Equal("small.txt", listing.Entries[1].Name)
}

func TestGetEntryMetaFile(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "x.txt")
	a.NoError(os.WriteFile(file, []byte("hello"), 0o644))

	meta, err := GetEntryMeta(file)
	a.NoError(err)
	a.Equal("x.txt", meta.Name)
	a.True(meta.Kind.IsFile())
	a.Equal(uint64(5), meta.SizeBytes)
	a.Equal("txt", meta.Extension)
}

func TestListDirectoryEmpty(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	listing, err := ListDirectory(dir, Options{})
	a.NoError(err)
	a.True(listing.IsEmpty())
}
