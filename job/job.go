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

// Package job defines the long-running-operation model (spec §4.4):
// job kinds, lifecycle state, progress, cancellation, and the
// scheduler that admits pending jobs up to a concurrency limit.
package job

import (
	"fmt"
	"sync/atomic"
	"time"
)

// ID uniquely identifies a job. IDs are a monotonic counter, not a
// UUID — spec §3 keeps the job identity scheme simple and orderable.
type ID uint64

var idCounter atomic.Uint64

func nextID() ID {
	return ID(idCounter.Add(1))
}

func (id ID) String() string { return fmt.Sprintf("Job-%d", uint64(id)) }

// Kind is the sum type of operations a job can perform.
type Kind struct {
	Op              KindOp
	Sources         []string
	Destination     string
	Paths           []string
	CalculateTarget string
}

type KindOp int

const (
	OpCopy KindOp = iota
	OpMove
	OpDelete
	OpDeletePermanent
	OpCalculateSize
)

func (o KindOp) String() string {
	switch o {
	case OpCopy:
		return "Copy"
	case OpMove:
		return "Move"
	case OpDelete:
		return "Delete"
	case OpDeletePermanent:
		return "DeletePermanent"
	case OpCalculateSize:
		return "CalculateSize"
	default:
		return "Unknown"
	}
}

func NewCopy(sources []string, destination string) Kind {
	return Kind{Op: OpCopy, Sources: sources, Destination: destination}
}

func NewMove(sources []string, destination string) Kind {
	return Kind{Op: OpMove, Sources: sources, Destination: destination}
}

func NewDelete(paths []string) Kind {
	return Kind{Op: OpDelete, Paths: paths}
}

func NewDeletePermanent(paths []string) Kind {
	return Kind{Op: OpDeletePermanent, Paths: paths}
}

func NewCalculateSize(path string) Kind {
	return Kind{Op: OpCalculateSize, CalculateTarget: path}
}

// Description renders a short human-readable summary, as shown in a
// job list UI.
func (k Kind) Description() string {
	switch k.Op {
	case OpCopy:
		return describeItems("Copying", k.Sources)
	case OpMove:
		return describeItems("Moving", k.Sources)
	case OpDelete, OpDeletePermanent:
		return describeItems("Deleting", k.Paths)
	case OpCalculateSize:
		return fmt.Sprintf("Calculating size of %s", k.CalculateTarget)
	default:
		return "Unknown operation"
	}
}

func describeItems(verb string, items []string) string {
	switch len(items) {
	case 1:
		return fmt.Sprintf("%s %s", verb, items[0])
	default:
		return fmt.Sprintf("%s %d items", verb, len(items))
	}
}

// ItemCount is the total number of items the job will process.
func (k Kind) ItemCount() int {
	switch k.Op {
	case OpCopy, OpMove:
		return len(k.Sources)
	case OpDelete, OpDeletePermanent:
		return len(k.Paths)
	default:
		return 1
	}
}

// State is a job's lifecycle position.
type State int

const (
	StatePending State = iota
	StateRunning
	StatePaused
	StateCompleted
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateCompleted:
		return "Completed"
	case StateFailed:
		return "Failed"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether the job cannot transition further.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateCancelled
}

// IsActive reports whether the job is running or paused.
func (s State) IsActive() bool {
	return s == StateRunning || s == StatePaused
}

// Progress is a point-in-time snapshot of a job's advancement.
type Progress struct {
	TotalBytes        *uint64
	BytesDone         uint64
	TotalItems        int
	ItemsDone         int
	CurrentItem       string
	ETA               *time.Duration
	SpeedBytesPerSec  *uint64
}

func NewProgress(totalItems int, totalBytes *uint64) Progress {
	return Progress{TotalItems: totalItems, TotalBytes: totalBytes}
}

// Percentage returns completion in [0.0, 1.0], preferring byte-based
// progress when a total byte count is known, falling back to item
// counts otherwise.
func (p Progress) Percentage() float64 {
	if p.TotalBytes != nil && *p.TotalBytes > 0 {
		return float64(p.BytesDone) / float64(*p.TotalBytes)
	}
	if p.TotalItems > 0 {
		return float64(p.ItemsDone) / float64(p.TotalItems)
	}
	return 0.0
}

// PercentageInt rounds Percentage to an integer in [0, 100].
func (p Progress) PercentageInt() uint8 {
	return uint8(p.Percentage()*100.0 + 0.5)
}

// Job is one long-running operation tracked by the scheduler.
type Job struct {
	ID         ID
	Kind       Kind
	State      State
	Progress   Progress
	CreatedAt  time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
	Error      string
	Cancel     *CancellationToken
}

// New creates a pending job with a fresh ID and cancellation token.
func New(kind Kind) *Job {
	return &Job{
		ID:        nextID(),
		Kind:      kind,
		State:     StatePending,
		Progress:  NewProgress(kind.ItemCount(), nil),
		CreatedAt: time.Now(),
		Cancel:    NewCancellationToken(),
	}
}

func (j *Job) Start() {
	if j.State == StatePending {
		j.State = StateRunning
		now := time.Now()
		j.StartedAt = &now
	}
}

func (j *Job) Pause() {
	if j.State == StateRunning {
		j.State = StatePaused
	}
}

func (j *Job) Resume() {
	if j.State == StatePaused {
		j.State = StateRunning
	}
}

func (j *Job) Complete() {
	if !j.State.IsTerminal() {
		j.State = StateCompleted
		now := time.Now()
		j.FinishedAt = &now
	}
}

func (j *Job) Fail(err string) {
	if !j.State.IsTerminal() {
		j.State = StateFailed
		j.Error = err
		now := time.Now()
		j.FinishedAt = &now
	}
}

func (j *Job) CancelJob() {
	if !j.State.IsTerminal() {
		j.Cancel.Cancel()
		j.State = StateCancelled
		now := time.Now()
		j.FinishedAt = &now
	}
}

// Elapsed is the time since the job was created.
func (j *Job) Elapsed() time.Duration {
	return time.Since(j.CreatedAt)
}

// RunningTime is the span from start to finish (or now, if still
// running). Nil if the job has not started.
func (j *Job) RunningTime() *time.Duration {
	if j.StartedAt == nil {
		return nil
	}
	end := time.Now()
	if j.FinishedAt != nil {
		end = *j.FinishedAt
	}
	d := end.Sub(*j.StartedAt)
	return &d
}

// Info is the serializable snapshot of a Job for UI/report display,
// stripped of the mutable internal state.
type Info struct {
	ID               ID
	Description      string
	State            State
	ProgressPercent  uint8
	ItemsDone        int
	TotalItems       int
	BytesDone        uint64
	TotalBytes       *uint64
	CurrentItem      string
	SpeedBytesPerSec *uint64
	ETASeconds       *uint64
	Error            string
}

// InfoOf builds an Info snapshot from a Job.
func InfoOf(j *Job) Info {
	var etaSecs *uint64
	if j.Progress.ETA != nil {
		s := uint64(j.Progress.ETA.Seconds())
		etaSecs = &s
	}
	return Info{
		ID:               j.ID,
		Description:      j.Kind.Description(),
		State:            j.State,
		ProgressPercent:  j.Progress.PercentageInt(),
		ItemsDone:        j.Progress.ItemsDone,
		TotalItems:       j.Progress.TotalItems,
		BytesDone:        j.Progress.BytesDone,
		TotalBytes:       j.Progress.TotalBytes,
		CurrentItem:      j.Progress.CurrentItem,
		SpeedBytesPerSec: j.Progress.SpeedBytesPerSec,
		ETASeconds:       etaSecs,
		Error:            j.Error,
	}
}

// Stats tallies jobs by state.
type Stats struct {
	Pending   int
	Running   int
	Paused    int
	Completed int
	Failed    int
	Cancelled int
}

func (s Stats) Total() int {
	return s.Pending + s.Running + s.Paused + s.Completed + s.Failed + s.Cancelled
}

func (s Stats) Active() int {
	return s.Pending + s.Running + s.Paused
}
