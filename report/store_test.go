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

package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/PerkyZZ999/ZManager/job"
)

func TestStorageSaveListLoad(t *testing.T) {
	a := assert.New(t)
	storage := NewStorage(t.TempDir())

	b := NewBuilder(1, OperationCopy)
	b.AddItem(NewSuccessItem("a", "b", 100))
	report := b.Build()

	path, err := storage.Save(report)
	a.NoError(err)
	_, statErr := os.Stat(path)
	a.NoError(statErr)

	list, err := storage.List()
	a.NoError(err)
	a.Len(list, 1)

	loaded, err := storage.Load(list[0])
	a.NoError(err)
	a.Equal(1, loaded.Summary.Succeeded)
	a.EqualValues(report.JobID, loaded.JobID)
}

func TestStorageListEmptyDirNoError(t *testing.T) {
	a := assert.New(t)
	storage := NewStorage(filepath.Join(t.TempDir(), "nonexistent"))
	list, err := storage.List()
	a.NoError(err)
	a.Empty(list)
}

func TestStorageCleanupKeepsMostRecent(t *testing.T) {
	a := assert.New(t)
	storage := NewStorage(t.TempDir())

	for i := 0; i < 5; i++ {
		b := NewBuilder(job.ID(i), OperationCopy)
		report := b.Build()
		_, err := storage.Save(report)
		a.NoError(err)
		time.Sleep(2 * time.Millisecond)
	}

	initial, err := storage.List()
	a.NoError(err)
	a.Len(initial, 5)

	deleted, err := storage.Cleanup(2)
	a.NoError(err)
	a.Equal(3, deleted)

	final, err := storage.List()
	a.NoError(err)
	a.Len(final, 2)
}

func TestStorageCleanupKeepCountExceedsTotal(t *testing.T) {
	a := assert.New(t)
	storage := NewStorage(t.TempDir())
	b := NewBuilder(1, OperationCopy)
	_, err := storage.Save(b.Build())
	a.NoError(err)

	deleted, err := storage.Cleanup(10)
	a.NoError(err)
	a.Equal(0, deleted)
}
