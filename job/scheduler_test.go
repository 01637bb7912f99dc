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
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func startScheduler(t *testing.T, s *Scheduler) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)
	return cancel
}

func TestSchedulerCreation(t *testing.T) {
	a := assert.New(t)
	s := NewSchedulerWithDefaults()
	a.Equal(0, s.JobStats().Total())
}

func TestSubmitJob(t *testing.T) {
	a := assert.New(t)
	s := NewSchedulerWithDefaults()
	cancel := startScheduler(t, s)
	defer cancel()

	j := s.Submit(NewDelete([]string{"test"}))
	time.Sleep(50 * time.Millisecond)

	got, ok := s.GetJob(j.ID)
	a.True(ok)
	a.Equal(j.ID, got.ID)
}

func TestListJobs(t *testing.T) {
	a := assert.New(t)
	s := NewSchedulerWithDefaults()
	cancel := startScheduler(t, s)
	defer cancel()

	j1 := s.Submit(NewDelete([]string{"a"}))
	j2 := s.Submit(NewDelete([]string{"b"}))
	time.Sleep(50 * time.Millisecond)

	jobs := s.ListJobs()
	a.Equal(2, len(jobs))

	ids := map[ID]bool{}
	for _, info := range jobs {
		ids[info.ID] = true
	}
	a.True(ids[j1.ID])
	a.True(ids[j2.ID])
}

func TestCancelJob(t *testing.T) {
	a := assert.New(t)
	s := NewSchedulerWithDefaults()
	cancel := startScheduler(t, s)
	defer cancel()

	j := s.Submit(NewDelete([]string{"test"}))
	time.Sleep(50 * time.Millisecond)

	a.True(s.Cancel(j.ID))
	time.Sleep(50 * time.Millisecond)

	got, ok := s.GetJob(j.ID)
	a.True(ok)
	a.Equal(StateCancelled, got.State)
}

func TestStatsRespectsConcurrencyLimit(t *testing.T) {
	a := assert.New(t)
	s := NewSchedulerWithDefaults() // max_concurrent_jobs = 2
	cancel := startScheduler(t, s)
	defer cancel()

	s.Submit(NewDelete([]string{"a"}))
	s.Submit(NewDelete([]string{"b"}))
	s.Submit(NewDelete([]string{"c"}))
	time.Sleep(100 * time.Millisecond)

	stats := s.JobStats()
	a.Equal(3, stats.Total())
	a.Equal(3, stats.Running+stats.Pending)
	a.LessOrEqual(stats.Running, 2)
}

func TestEventSubscription(t *testing.T) {
	a := assert.New(t)
	s := NewSchedulerWithDefaults()
	events := s.Subscribe()
	cancel := startScheduler(t, s)
	defer cancel()

	s.Submit(NewDelete([]string{"test"}))

	select {
	case ev := <-events:
		a.Equal(EventJobAdded, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for JobAdded")
	}

	select {
	case ev := <-events:
		a.Equal(EventJobStarted, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for JobStarted")
	}
}

func TestClearHistoryRemovesTerminalJobs(t *testing.T) {
	a := assert.New(t)
	s := NewSchedulerWithDefaults()
	cancel := startScheduler(t, s)
	defer cancel()

	j := s.Submit(NewDelete([]string{"test"}))
	time.Sleep(50 * time.Millisecond)
	s.Cancel(j.ID)
	time.Sleep(50 * time.Millisecond)

	s.ClearHistory()
	time.Sleep(50 * time.Millisecond)

	_, ok := s.GetJob(j.ID)
	a.False(ok)
}

func TestCompleteJobReleasesSlot(t *testing.T) {
	a := assert.New(t)
	cfg := DefaultConfig()
	cfg.MaxConcurrentJobs = 1
	s := NewScheduler(cfg)
	cancel := startScheduler(t, s)
	defer cancel()

	j1 := s.Submit(NewCalculateSize("a"))
	j2 := s.Submit(NewCalculateSize("b"))
	time.Sleep(50 * time.Millisecond)

	got1, _ := s.GetJob(j1.ID)
	got2, _ := s.GetJob(j2.ID)
	a.Equal(StateRunning, got1.State)
	a.Equal(StatePending, got2.State)

	s.CompleteJob(j1.ID)
	time.Sleep(50 * time.Millisecond)

	got2, _ = s.GetJob(j2.ID)
	a.Equal(StateRunning, got2.State)
}

func TestAwaitAdmissionBlocksUntilRunning(t *testing.T) {
	a := assert.New(t)
	cfg := DefaultConfig()
	cfg.MaxConcurrentJobs = 1
	s := NewScheduler(cfg)
	cancel := startScheduler(t, s)
	defer cancel()

	j1 := s.Submit(NewCalculateSize("a"))
	s.AwaitAdmission(j1.ID)
	got1, _ := s.GetJob(j1.ID)
	a.Equal(StateRunning, got1.State)

	j2 := s.Submit(NewCalculateSize("b"))
	done := make(chan struct{})
	go func() {
		s.AwaitAdmission(j2.ID)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("AwaitAdmission returned before the slot freed up")
	case <-time.After(50 * time.Millisecond):
	}

	s.CompleteJob(j1.ID)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for AwaitAdmission to return")
	}

	got2, _ := s.GetJob(j2.ID)
	a.Equal(StateRunning, got2.State)
}
