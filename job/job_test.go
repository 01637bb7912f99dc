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

package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDsAreUnique(t *testing.T) {
	a := assert.New(t)
	id1, id2, id3 := nextID(), nextID(), nextID()
	a.NotEqual(id1, id2)
	a.NotEqual(id2, id3)
	a.NotEqual(id1, id3)
}

func TestIDDisplay(t *testing.T) {
	assert.Equal(t, "Job-42", ID(42).String())
}

func TestKindDescription(t *testing.T) {
	a := assert.New(t)
	copyKind := NewCopy([]string{"file.txt"}, "dest")
	a.Contains(copyKind.Description(), "Copying")
	a.Contains(copyKind.Description(), "file.txt")

	del := NewDelete([]string{"a", "b", "c"})
	a.Contains(del.Description(), "3 items")
}

func TestStateTransitionsClassification(t *testing.T) {
	a := assert.New(t)
	a.False(StatePending.IsTerminal())
	a.False(StateRunning.IsTerminal())
	a.False(StatePaused.IsTerminal())
	a.True(StateCompleted.IsTerminal())
	a.True(StateFailed.IsTerminal())
	a.True(StateCancelled.IsTerminal())

	a.False(StatePending.IsActive())
	a.True(StateRunning.IsActive())
	a.True(StatePaused.IsActive())
	a.False(StateCompleted.IsActive())
}

func TestProgressPercentage(t *testing.T) {
	a := assert.New(t)
	total := uint64(1000)
	p := NewProgress(10, &total)

	a.Equal(0.0, p.Percentage())
	a.Equal(uint8(0), p.PercentageInt())

	p.BytesDone = 500
	a.Equal(0.5, p.Percentage())
	a.Equal(uint8(50), p.PercentageInt())

	p.BytesDone = 1000
	a.Equal(1.0, p.Percentage())
	a.Equal(uint8(100), p.PercentageInt())
}

func TestProgressItemsFallback(t *testing.T) {
	a := assert.New(t)
	p := NewProgress(4, nil)
	p.ItemsDone = 2
	a.Equal(0.5, p.Percentage())
}

func TestCancellationToken(t *testing.T) {
	a := assert.New(t)
	tok := NewCancellationToken()
	a.False(tok.IsCancelled())
	tok.Cancel()
	a.True(tok.IsCancelled())
	tok.Reset()
	a.False(tok.IsCancelled())
}

func TestJobLifecycle(t *testing.T) {
	a := assert.New(t)
	j := New(NewDelete([]string{"test"}))

	a.Equal(StatePending, j.State)
	a.Nil(j.StartedAt)

	j.Start()
	a.Equal(StateRunning, j.State)
	a.NotNil(j.StartedAt)

	j.Pause()
	a.Equal(StatePaused, j.State)

	j.Resume()
	a.Equal(StateRunning, j.State)

	j.Complete()
	a.Equal(StateCompleted, j.State)
	a.NotNil(j.FinishedAt)
}

func TestJobFailure(t *testing.T) {
	a := assert.New(t)
	j := New(NewCalculateSize("test"))
	j.Start()
	j.Fail("something went wrong")

	a.Equal(StateFailed, j.State)
	a.Equal("something went wrong", j.Error)
}

func TestJobCancel(t *testing.T) {
	a := assert.New(t)
	j := New(NewCalculateSize("test"))
	j.Start()
	j.CancelJob()

	a.Equal(StateCancelled, j.State)
	a.True(j.Cancel.IsCancelled())
}

func TestInfoOfJob(t *testing.T) {
	a := assert.New(t)
	j := New(NewCopy([]string{"src"}, "dst"))
	total := uint64(1000)
	j.Progress.TotalBytes = &total
	j.Progress.BytesDone = 500
	j.Start()

	info := InfoOf(j)
	a.Equal(j.ID, info.ID)
	a.Contains(info.Description, "Copying")
	a.Equal(StateRunning, info.State)
	a.Equal(uint8(50), info.ProgressPercent)
}

func TestStatsAggregation(t *testing.T) {
	a := assert.New(t)
	st := Stats{Pending: 2, Running: 1, Paused: 1, Completed: 5, Failed: 1}
	a.Equal(10, st.Total())
	a.Equal(4, st.Active())
}
