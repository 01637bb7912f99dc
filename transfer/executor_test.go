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

package transfer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func createExecutorTestTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "source")
	assert.NoError(t, os.MkdirAll(root, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(root, "file1.txt"), make([]byte, 100), 0o644))

	subdir := filepath.Join(root, "subdir")
	assert.NoError(t, os.MkdirAll(subdir, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(subdir, "file2.txt"), make([]byte, 200), 0o644))
	return root
}

func TestCopyFolderBasic(t *testing.T) {
	a := assert.New(t)
	source := createExecutorTestTree(t)
	dest := filepath.Join(filepath.Dir(source), "dest")
	a.NoError(os.MkdirAll(dest, 0o755))

	executor := NewExecutor()
	report, err := executor.CopyFolder([]string{source}, dest, OverwriteAllResolver(), nil)

	a.NoError(err)
	a.True(report.IsCompleteSuccess())
	a.GreaterOrEqual(report.Succeeded, 2)
	_, statErr := os.Stat(filepath.Join(dest, "source", "file1.txt"))
	a.NoError(statErr)
	_, statErr = os.Stat(filepath.Join(dest, "source", "subdir", "file2.txt"))
	a.NoError(statErr)
}

func TestCopyFolderWithConflictsSkipAll(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	source := filepath.Join(dir, "source.txt")
	dest := filepath.Join(dir, "dest")
	existing := filepath.Join(dest, "source.txt")

	a.NoError(os.WriteFile(source, []byte("new content"), 0o644))
	a.NoError(os.MkdirAll(dest, 0o755))
	a.NoError(os.WriteFile(existing, []byte("old content"), 0o644))

	executor := NewExecutor()
	report, err := executor.CopyFolder([]string{source}, dest, SkipAllResolver(), nil)

	a.NoError(err)
	a.Equal(1, report.Skipped)
	contents, _ := os.ReadFile(existing)
	a.Equal("old content", string(contents))
}

func TestCopyFolderOverwrite(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	source := filepath.Join(dir, "source.txt")
	dest := filepath.Join(dir, "dest")
	existing := filepath.Join(dest, "source.txt")

	a.NoError(os.WriteFile(source, []byte("new content"), 0o644))
	a.NoError(os.MkdirAll(dest, 0o755))
	a.NoError(os.WriteFile(existing, []byte("old content"), 0o644))

	executor := NewExecutor()
	report, err := executor.CopyFolder([]string{source}, dest, OverwriteAllResolver(), nil)

	a.NoError(err)
	a.Equal(1, report.Succeeded)
	contents, _ := os.ReadFile(existing)
	a.Equal("new content", string(contents))
}

func TestMoveFolder(t *testing.T) {
	a := assert.New(t)
	source := createExecutorTestTree(t)
	dest := filepath.Join(filepath.Dir(source), "dest")
	a.NoError(os.MkdirAll(dest, 0o755))

	executor := NewExecutor()
	report, err := executor.MoveFolder([]string{source}, dest, OverwriteAllResolver(), nil)

	a.NoError(err)
	a.True(report.IsCompleteSuccess())
	_, statErr := os.Stat(filepath.Join(dest, "source", "file1.txt"))
	a.NoError(statErr)
}

func TestReportAggregation(t *testing.T) {
	a := assert.New(t)
	r := Report{BytesTransferred: 1000, Succeeded: 5, Skipped: 2, Failed: 1}
	a.False(r.IsCompleteSuccess())
	a.True(r.HasTransfers())
}

func TestItemResultClassification(t *testing.T) {
	a := assert.New(t)
	success := ItemResult{Source: "src", Destination: "dst", Outcome: OutcomeSuccess, Bytes: 100}
	a.True(success.IsSuccess())
	a.False(success.IsFailed())
}

func TestExecutorEventSubscription(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	source := filepath.Join(dir, "a.txt")
	dest := filepath.Join(dir, "dest.txt")
	a.NoError(os.WriteFile(source, []byte("x"), 0o644))

	executor := NewExecutor()
	events := executor.Subscribe()

	_, err := executor.CopyFolder([]string{source}, dest, OverwriteAllResolver(), nil)
	a.NoError(err)

	sawStarted, sawCompleted := false, false
	for i := 0; i < 10; i++ {
		select {
		case ev := <-events:
			if ev.Kind == EventStarted {
				sawStarted = true
			}
			if ev.Kind == EventCompleted {
				sawCompleted = true
			}
		default:
		}
	}
	a.True(sawStarted)
	a.True(sawCompleted)
}
