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
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Config tunes the scheduler's admission policy and history retention.
type Config struct {
	MaxConcurrentJobs   int
	ProgressChannelSize int
	MaxHistory          int
}

// DefaultConfig returns the scheduler's out-of-the-box admission policy.
func DefaultConfig() Config {
	return Config{MaxConcurrentJobs: 2, ProgressChannelSize: 256, MaxHistory: 100}
}

// Scheduler is an actor-style job queue: commands flow in over a
// channel, a single goroutine (Run) owns all mutation of the job
// table, and state reads go through a RWMutex for concurrent callers.
// Admission is bounded by a semaphore (golang.org/x/sync/semaphore)
// rather than an unbounded worker pool.
type Scheduler struct {
	config Config

	mu   sync.RWMutex
	jobs map[ID]*Job

	commands chan command
	sem      *semaphore.Weighted

	subMu       sync.Mutex
	subscribers []chan Event

	stopped chan struct{}
}

// NewScheduler constructs a scheduler; call Run in a goroutine to
// start processing.
func NewScheduler(config Config) *Scheduler {
	return &Scheduler{
		config:   config,
		jobs:     make(map[ID]*Job),
		commands: make(chan command, 64),
		sem:      semaphore.NewWeighted(int64(config.MaxConcurrentJobs)),
		stopped:  make(chan struct{}),
	}
}

// NewSchedulerWithDefaults uses DefaultConfig.
func NewSchedulerWithDefaults() *Scheduler {
	return NewScheduler(DefaultConfig())
}

// Run processes commands until Shutdown is requested or ctx is
// cancelled. It is meant to be called once, typically in its own
// goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	defer close(s.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-s.commands:
			if s.handle(cmd) {
				return
			}
			s.tryStartPending()
		}
	}
}

// Stopped reports when Run has returned.
func (s *Scheduler) Stopped() <-chan struct{} { return s.stopped }

func (s *Scheduler) handle(cmd command) (shutdown bool) {
	switch cmd.kind {
	case cmdAddJob:
		s.emit(Event{Kind: EventJobAdded, JobID: cmd.job.ID})
	case cmdCancelJob:
		s.handleCancel(cmd.id)
	case cmdPauseJob:
		s.handlePause(cmd.id)
	case cmdResumeJob:
		s.handleResume(cmd.id)
	case cmdClearHistory:
		s.handleClearHistory()
	case cmdShutdown:
		return true
	}
	return false
}

// Submit creates and queues a new job, returning it immediately (its
// state is visible to GetJob/ListJobs before the scheduler goroutine
// has processed the AddJob command, matching the original's
// add-to-local-state-first ordering).
func (s *Scheduler) Submit(kind Kind) *Job {
	j := New(kind)

	s.mu.Lock()
	s.jobs[j.ID] = j
	s.mu.Unlock()

	s.commands <- command{kind: cmdAddJob, id: j.ID, job: j}
	return j
}

// Cancel requests cancellation of a non-terminal job. Returns false if
// the job is unknown or already terminal.
func (s *Scheduler) Cancel(id ID) bool {
	s.mu.RLock()
	j, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok || j.State.IsTerminal() {
		return false
	}
	s.commands <- command{kind: cmdCancelJob, id: id}
	return true
}

func (s *Scheduler) Pause(id ID) bool {
	s.commands <- command{kind: cmdPauseJob, id: id}
	return true
}

func (s *Scheduler) Resume(id ID) bool {
	s.commands <- command{kind: cmdResumeJob, id: id}
	return true
}

func (s *Scheduler) ClearHistory() {
	s.commands <- command{kind: cmdClearHistory}
}

// Shutdown requests the Run loop to stop after draining in-flight
// commands.
func (s *Scheduler) Shutdown() {
	s.commands <- command{kind: cmdShutdown}
}

func (s *Scheduler) GetJob(id ID) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	return j, ok
}

func (s *Scheduler) ListJobs() []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Info, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, InfoOf(j))
	}
	return out
}

func (s *Scheduler) JobStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var st Stats
	for _, j := range s.jobs {
		switch j.State {
		case StatePending:
			st.Pending++
		case StateRunning:
			st.Running++
		case StatePaused:
			st.Paused++
		case StateCompleted:
			st.Completed++
		case StateFailed:
			st.Failed++
		case StateCancelled:
			st.Cancelled++
		}
	}
	return st
}

// Subscribe returns a channel that receives every scheduler event from
// this point forward. The channel is buffered to ProgressChannelSize;
// a subscriber that falls behind has the oldest unread event dropped
// rather than blocking the scheduler loop.
func (s *Scheduler) Subscribe() <-chan Event {
	ch := make(chan Event, s.config.ProgressChannelSize)
	s.subMu.Lock()
	s.subscribers = append(s.subscribers, ch)
	s.subMu.Unlock()
	return ch
}

func (s *Scheduler) emit(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			// Drop the oldest queued event to make room rather than
			// block the scheduler loop on a slow subscriber.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

func (s *Scheduler) handleCancel(id ID) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	if !ok || j.State.IsTerminal() {
		s.mu.Unlock()
		return
	}
	wasRunning := j.State == StateRunning
	j.CancelJob()
	s.mu.Unlock()

	if wasRunning {
		s.sem.Release(1)
	}
	s.emit(Event{Kind: EventJobCancelled, JobID: id})
}

func (s *Scheduler) handlePause(id ID) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	if !ok || j.State != StateRunning {
		s.mu.Unlock()
		return
	}
	j.Pause()
	s.mu.Unlock()

	s.sem.Release(1)
	s.emit(Event{Kind: EventJobPaused, JobID: id})
}

func (s *Scheduler) handleResume(id ID) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	if !ok || j.State != StatePaused {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if s.sem.TryAcquire(1) {
		s.mu.Lock()
		j.Resume()
		s.mu.Unlock()
		s.emit(Event{Kind: EventJobResumed, JobID: id})
		return
	}
	// No slot free right now: fall back to Pending so the next
	// tryStartPending sweep picks it up once a slot opens.
	s.mu.Lock()
	j.State = StatePending
	s.mu.Unlock()
}

func (s *Scheduler) handleClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, j := range s.jobs {
		if j.State.IsTerminal() {
			delete(s.jobs, id)
		}
	}

	if len(s.jobs) <= s.config.MaxHistory {
		return
	}

	type aged struct {
		id      ID
		created int64
	}
	var terminal []aged
	for id, j := range s.jobs {
		if j.State.IsTerminal() {
			terminal = append(terminal, aged{id, j.CreatedAt.UnixNano()})
		}
	}
	sort.Slice(terminal, func(i, k int) bool { return terminal[i].created < terminal[k].created })

	excess := len(s.jobs) - s.config.MaxHistory
	for i := 0; i < excess && i < len(terminal); i++ {
		delete(s.jobs, terminal[i].id)
	}
}

// tryStartPending admits pending jobs, oldest-first, up to the
// semaphore's remaining weight.
func (s *Scheduler) tryStartPending() {
	s.mu.Lock()
	var pending []*Job
	for _, j := range s.jobs {
		if j.State == StatePending {
			pending = append(pending, j)
		}
	}
	sort.Slice(pending, func(i, k int) bool { return pending[i].CreatedAt.Before(pending[k].CreatedAt) })
	s.mu.Unlock()

	for _, j := range pending {
		if !s.sem.TryAcquire(1) {
			break
		}
		s.mu.Lock()
		j.Start()
		s.mu.Unlock()
		s.emit(Event{Kind: EventJobStarted, JobID: j.ID})
	}
}

// UpdateProgress is called by a job executor to publish a progress
// snapshot.
func (s *Scheduler) UpdateProgress(id ID, p Progress) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	if ok {
		j.Progress = p
	}
	s.mu.Unlock()
	if ok {
		s.emit(Event{Kind: EventJobProgress, JobID: id, Progress: p})
	}
}

// stateOf reads a job's current state under the state lock.
func (s *Scheduler) stateOf(id ID) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return StatePending, false
	}
	return j.State, true
}

// AwaitAdmission blocks the calling goroutine until job id has been
// admitted past the concurrency semaphore (State reaches Running) or
// short-circuits to a terminal state without ever running. Callers
// that drive a job's work synchronously, such as the CLI commands,
// must wait here instead of assuming admission the way a bare
// Job.Start call would, or MaxConcurrentJobs is never enforced.
func (s *Scheduler) AwaitAdmission(id ID) {
	if state, ok := s.stateOf(id); ok && state != StatePending {
		return
	}
	events := s.Subscribe()
	// Re-check after subscribing: the job may have been admitted
	// between the first check and the subscription.
	if state, ok := s.stateOf(id); ok && state != StatePending {
		return
	}
	for ev := range events {
		if ev.JobID != id {
			continue
		}
		switch ev.Kind {
		case EventJobStarted, EventJobCompleted, EventJobFailed, EventJobCancelled:
			return
		}
	}
}

// CompleteJob is called by a job executor on success.
func (s *Scheduler) CompleteJob(id ID) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	if ok {
		j.Complete()
	}
	s.mu.Unlock()
	if ok {
		s.sem.Release(1)
		s.emit(Event{Kind: EventJobCompleted, JobID: id})
		s.tryStartPending()
	}
}

// FailJob is called by a job executor when it cannot continue.
func (s *Scheduler) FailJob(id ID, errMsg string) {
	s.mu.Lock()
	j, ok := s.jobs[id]
	if ok {
		j.Fail(errMsg)
	}
	s.mu.Unlock()
	if ok {
		s.sem.Release(1)
		s.emit(Event{Kind: EventJobFailed, JobID: id, Error: errMsg})
		s.tryStartPending()
	}
}
