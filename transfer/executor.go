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
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/karrick/godirwalk"

	"github.com/PerkyZZ999/ZManager/job"
	"github.com/PerkyZZ999/ZManager/zerr"
	"github.com/PerkyZZ999/ZManager/zlog"
)

// Outcome classifies how a single plan item was handled.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

// ItemResult is the outcome of transferring a single plan item.
type ItemResult struct {
	Source      string
	Destination string
	Outcome     Outcome
	Bytes       uint64
	Reason      string // set when Outcome == OutcomeSkipped
	Error       string // set when Outcome == OutcomeFailed
}

func (r ItemResult) IsSuccess() bool { return r.Outcome == OutcomeSuccess }
func (r ItemResult) IsFailed() bool  { return r.Outcome == OutcomeFailed }

// Report aggregates the results of an entire folder transfer.
type Report struct {
	Items            []ItemResult
	BytesTransferred uint64
	Succeeded        int
	Skipped          int
	Failed           int
	Duration         time.Duration
}

func (r Report) IsCompleteSuccess() bool { return r.Failed == 0 }
func (r Report) HasTransfers() bool      { return r.Succeeded > 0 }

func (r Report) AverageSpeedBytesPerSec() uint64 {
	switch {
	case r.Duration >= time.Second:
		return r.BytesTransferred / uint64(r.Duration.Seconds())
	case r.Duration > 0:
		return uint64(float64(r.BytesTransferred) / r.Duration.Seconds())
	default:
		return r.BytesTransferred
	}
}

// ExecutorConfig tunes a folder transfer run.
type ExecutorConfig struct {
	ContinueOnError       bool
	DeleteSourceOnMove    bool
	ProgressIntervalBytes uint64
}

func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{ContinueOnError: true, DeleteSourceOnMove: true, ProgressIntervalBytes: 1 << 20}
}

// EventKind identifies the shape of an Event.
type EventKind int

const (
	EventStarted EventKind = iota
	EventProgress
	EventConflictDetected
	EventItemCompleted
	EventCompleted
	EventFailed
	EventCancelled
)

// Event is a notification emitted during a folder transfer.
type Event struct {
	Kind     EventKind
	Stats    Stats
	Progress job.Progress
	Conflict *Conflict
	Item     *ItemResult
	Report   *Report
	Error    string
}

// Executor runs folder copy/move operations built from a Plan,
// applying a Resolver to every conflict and reporting progress to any
// subscribers. The subscriber broadcast uses the same buffered
// channel / drop-oldest-on-full pattern as job.Scheduler.
type Executor struct {
	config ExecutorConfig

	subMu       sync.Mutex
	subscribers []chan Event
}

func NewExecutor() *Executor {
	return NewExecutorWithConfig(DefaultExecutorConfig())
}

func NewExecutorWithConfig(cfg ExecutorConfig) *Executor {
	return &Executor{config: cfg}
}

func (e *Executor) Subscribe() <-chan Event {
	ch := make(chan Event, 256)
	e.subMu.Lock()
	e.subscribers = append(e.subscribers, ch)
	e.subMu.Unlock()
	return ch
}

func (e *Executor) emit(ev Event) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for _, ch := range e.subscribers {
		select {
		case ch <- ev:
		default:
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

// CopyFolder copies one or more sources into destination.
func (e *Executor) CopyFolder(sources []string, destination string, resolver *Resolver, cancel *job.CancellationToken) (Report, error) {
	return e.executeTransfer(sources, destination, false, resolver, cancel)
}

// MoveFolder moves one or more sources into destination, using an
// atomic rename when a single directory source shares a volume with
// destination, falling back to copy-then-delete-source otherwise.
func (e *Executor) MoveFolder(sources []string, destination string, resolver *Resolver, cancel *job.CancellationToken) (Report, error) {
	return e.executeTransfer(sources, destination, true, resolver, cancel)
}

func (e *Executor) executeTransfer(sources []string, destination string, isMove bool, resolver *Resolver, cancel *job.CancellationToken) (Report, error) {
	start := time.Now()

	if cancel == nil {
		cancel = job.NewCancellationToken()
	}

	plan, err := NewBuilder(destination).SetMove(isMove).AddSources(sources).Build()
	if err != nil {
		return Report{}, err
	}
	e.emit(Event{Kind: EventStarted, Stats: plan.Stats})

	if isMove && len(sources) == 1 {
		if info, statErr := os.Stat(sources[0]); statErr == nil && info.IsDir() && SameVolume(sources[0], destination) {
			if report, moveErr := e.tryAtomicMove(sources[0], destination, cancel); moveErr == nil {
				report.Duration = time.Since(start)
				e.emit(Event{Kind: EventCompleted, Report: &report})
				return report, nil
			}
			// Fall through to the general copy+delete path on any
			// atomic-move failure (cross-device link, conflict, etc).
		}
	}

	report, err := e.executePlan(plan, resolver, cancel)
	if err != nil {
		e.emit(Event{Kind: EventFailed, Error: err.Error()})
		return Report{}, err
	}

	if isMove && e.config.DeleteSourceOnMove && report.IsCompleteSuccess() {
		e.deleteSources(plan)
	}

	report.Duration = time.Since(start)
	e.emit(Event{Kind: EventCompleted, Report: &report})
	return report, nil
}

func (e *Executor) tryAtomicMove(source, destination string, cancel *job.CancellationToken) (Report, error) {
	if cancel.IsCancelled() {
		return Report{}, zerr.Cancelled()
	}

	destPath := filepath.Join(destination, filepath.Base(source))
	if _, err := os.Stat(destPath); err == nil {
		return Report{}, zerr.AlreadyExists(destPath)
	}

	if err := os.Rename(source, destPath); err != nil {
		return Report{}, zerr.FromOSError(source, err)
	}

	bytes := calculateDirSize(destPath)
	return Report{
		Items: []ItemResult{{
			Source:      source,
			Destination: destPath,
			Outcome:     OutcomeSuccess,
			Bytes:       bytes,
		}},
		BytesTransferred: bytes,
		Succeeded:        1,
	}, nil
}

func (e *Executor) executePlan(plan *Plan, resolver *Resolver, cancel *job.CancellationToken) (Report, error) {
	var report Report
	var bytesDone, itemsDone uint64
	totalBytes := plan.Stats.TotalBytes
	totalItems := int(plan.Stats.TotalItems())

	for _, item := range plan.Directories() {
		if cancel.IsCancelled() {
			e.emit(Event{Kind: EventCancelled})
			return Report{}, zerr.Cancelled()
		}

		result, err := e.createDirectory(item, resolver)
		if err != nil {
			if !e.config.ContinueOnError {
				return Report{}, err
			}
			report.Failed++
			report.Items = append(report.Items, ItemResult{Source: item.Source, Destination: item.Destination, Outcome: OutcomeFailed, Error: err.Error()})
			continue
		}

		atomic.AddUint64(&itemsDone, 1)
		e.emit(Event{Kind: EventProgress, Progress: progressSnapshot(itemsDone, bytesDone, totalItems, totalBytes)})

		switch result.Outcome {
		case OutcomeSuccess:
			report.Succeeded++
		default:
			report.Skipped++
		}
		report.Items = append(report.Items, result)
	}

	for _, item := range plan.Files() {
		if cancel.IsCancelled() {
			e.emit(Event{Kind: EventCancelled})
			return Report{}, zerr.Cancelled()
		}

		result, err := e.copyItem(item, resolver, cancel, &bytesDone)
		if err != nil {
			if !e.config.ContinueOnError {
				return Report{}, err
			}
			report.Failed++
			report.Items = append(report.Items, ItemResult{Source: item.Source, Destination: item.Destination, Outcome: OutcomeFailed, Error: err.Error()})
			continue
		}

		atomic.AddUint64(&itemsDone, 1)
		e.emit(Event{Kind: EventProgress, Progress: progressSnapshot(itemsDone, bytesDone, totalItems, totalBytes)})
		e.emit(Event{Kind: EventItemCompleted, Item: &result})

		switch result.Outcome {
		case OutcomeSuccess:
			report.Succeeded++
			report.BytesTransferred += result.Bytes
		case OutcomeSkipped:
			report.Skipped++
		case OutcomeFailed:
			report.Failed++
		}
		report.Items = append(report.Items, result)
	}

	return report, nil
}

func (e *Executor) createDirectory(item Item, resolver *Resolver) (ItemResult, error) {
	info, err := os.Stat(item.Destination)
	if err == nil {
		if info.IsDir() {
			return ItemResult{Source: item.Source, Destination: item.Destination, Outcome: OutcomeSkipped, Reason: "directory already exists"}, nil
		}

		conflict, cErr := DetectConflict(item.Source, item.Destination)
		if cErr != nil {
			return ItemResult{}, cErr
		}
		if conflict != nil {
			resolution, ok := resolver.Resolve(*conflict)
			if !ok {
				return ItemResult{}, zerr.AlreadyExists(item.Destination)
			}
			switch resolution {
			case ResolutionSkip:
				return ItemResult{Source: item.Source, Destination: item.Destination, Outcome: OutcomeSkipped, Reason: "skipped due to conflict"}, nil
			case ResolutionOverwrite:
				if rmErr := os.Remove(item.Destination); rmErr != nil {
					return ItemResult{}, zerr.FromOSError(item.Destination, rmErr)
				}
			default:
				return ItemResult{}, zerr.AlreadyExists(item.Destination)
			}
		}
	}

	if err := os.MkdirAll(item.Destination, 0o755); err != nil {
		return ItemResult{}, zerr.FromOSError(item.Destination, err)
	}
	return ItemResult{Source: item.Source, Destination: item.Destination, Outcome: OutcomeSuccess}, nil
}

func (e *Executor) copyItem(item Item, resolver *Resolver, cancel *job.CancellationToken, bytesDone *uint64) (ItemResult, error) {
	destination := item.Destination
	overwrite := false

	if item.HasConflict {
		conflict, err := DetectConflict(item.Source, item.Destination)
		if err != nil {
			return ItemResult{}, err
		}
		if conflict != nil {
			resolution, ok := resolver.Resolve(*conflict)
			if !ok {
				e.emit(Event{Kind: EventConflictDetected, Conflict: conflict})
				return ItemResult{Source: item.Source, Destination: item.Destination, Outcome: OutcomeSkipped, Reason: "awaiting user resolution"}, nil
			}
			switch resolution {
			case ResolutionSkip:
				return ItemResult{Source: item.Source, Destination: item.Destination, Outcome: OutcomeSkipped, Reason: "skipped due to conflict"}, nil
			case ResolutionOverwrite:
				overwrite = true
			case ResolutionRename:
				destination = GenerateRenamePath(item.Destination)
			case ResolutionCancel:
				return ItemResult{}, zerr.Cancelled()
			}
		}
	}

	var lastReported uint64
	callback := func(p CopyProgress) {
		if p.BytesCopied-lastReported >= e.config.ProgressIntervalBytes {
			delta := p.BytesCopied - lastReported
			lastReported = p.BytesCopied
			atomic.AddUint64(bytesDone, delta)
		}
	}

	result, err := CopyFileWithProgress(item.Source, destination, overwrite, cancel, callback)
	if err != nil {
		if zerr.OfKind(err, zerr.KindCancelled) {
			os.Remove(destination)
			return ItemResult{}, err
		}
		return ItemResult{Source: item.Source, Destination: destination, Outcome: OutcomeFailed, Error: err.Error()}, nil
	}

	return ItemResult{Source: item.Source, Destination: destination, Outcome: OutcomeSuccess, Bytes: result.BytesCopied}, nil
}

func (e *Executor) deleteSources(plan *Plan) {
	items := append([]Item(nil), plan.Items...)
	sort.SliceStable(items, func(i, k int) bool {
		a, b := items[i], items[k]
		if a.IsDir != b.IsDir {
			return !a.IsDir // files before directories
		}
		if a.IsDir {
			return a.Depth > b.Depth // deepest directories first
		}
		return false
	})

	for _, item := range items {
		// Best-effort: a node that cannot be removed (such as a directory
		// that still holds entries) is left in place and logged at Warn.
		if err := os.Remove(item.Source); err != nil {
			zlog.Default().Logf(zlog.LevelWarn, "move: source %q left in place: %v", item.Source, err)
		}
	}
}

func progressSnapshot(itemsDone, bytesDone uint64, totalItems int, totalBytes uint64) job.Progress {
	total := totalBytes
	return job.Progress{
		TotalBytes: &total,
		BytesDone:  bytesDone,
		TotalItems: totalItems,
		ItemsDone:  int(itemsDone),
	}
}

func calculateDirSize(path string) uint64 {
	var total uint64
	_ = godirwalk.Walk(path, &godirwalk.Options{
		Unsorted: true,
		Callback: func(p string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			if info, err := os.Stat(p); err == nil {
				total += uint64(info.Size())
			}
			return nil
		},
		ErrorCallback: func(string, error) godirwalk.ErrorAction { return godirwalk.SkipNode },
	})
	return total
}
