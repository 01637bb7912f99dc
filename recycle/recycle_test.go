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

package recycle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PerkyZZ999/ZManager/zerr"
)

func TestMoveToRecycleBinFile(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "to_delete.txt")
	a.NoError(os.WriteFile(path, []byte("content"), 0o644))

	a.NoError(MoveToRecycleBin(path))
	_, err := os.Stat(path)
	a.True(os.IsNotExist(err))
}

func TestMoveToRecycleBinDirectory(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "to_delete_dir")
	a.NoError(os.MkdirAll(target, 0o755))
	a.NoError(os.WriteFile(filepath.Join(target, "file.txt"), []byte("content"), 0o644))

	a.NoError(MoveToRecycleBin(target))
	_, err := os.Stat(target)
	a.True(os.IsNotExist(err))
}

func TestMoveToRecycleBinNotFound(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	err := MoveToRecycleBin(filepath.Join(dir, "nonexistent"))
	a.Error(err)
	a.True(zerr.OfKind(err, zerr.KindNotFound))
}

func TestMoveMultipleToRecycleBin(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	file1 := filepath.Join(dir, "file1.txt")
	file2 := filepath.Join(dir, "file2.txt")
	nonexistent := filepath.Join(dir, "nonexistent")

	a.NoError(os.WriteFile(file1, []byte("1"), 0o644))
	a.NoError(os.WriteFile(file2, []byte("2"), 0o644))

	results := MoveMultipleToRecycleBin([]string{file1, file2, nonexistent})
	a.Len(results, 3)
	a.NoError(results[0])
	a.NoError(results[1])
	a.Error(results[2])
	a.True(zerr.OfKind(results[2], zerr.KindNotFound))

	_, err := os.Stat(file1)
	a.True(os.IsNotExist(err))
	_, err = os.Stat(file2)
	a.True(os.IsNotExist(err))
}
