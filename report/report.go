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

// Package report builds, persists and exports detailed records of a
// completed transfer operation.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/PerkyZZ999/ZManager/job"
)

// Status classifies the outcome of a single reported item.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

func (s Status) Label() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusSkipped:
		return "Skipped"
	case StatusFailed:
		return "Failed"
	default:
		return string(s)
	}
}

func (s Status) Symbol() string {
	switch s {
	case StatusSuccess:
		return "✓"
	case StatusSkipped:
		return "○"
	case StatusFailed:
		return "✗"
	default:
		return "?"
	}
}

// Operation identifies the kind of transfer a report covers.
type Operation string

const (
	OperationCopy Operation = "copy"
	OperationMove Operation = "move"
)

func (o Operation) Label() string {
	switch o {
	case OperationCopy:
		return "Copy"
	case OperationMove:
		return "Move"
	default:
		return string(o)
	}
}

// ItemResult is the detailed, serializable record of one transferred
// item (spec §6's per-item schema).
type ItemResult struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	IsDirectory bool    `json:"is_directory"`
	SizeBytes   uint64  `json:"size_bytes"`
	Status      Status  `json:"status"`
	Reason      *string `json:"reason,omitempty"`
	DurationMs  *uint64 `json:"duration_ms,omitempty"`
}

func NewSuccessItem(source, destination string, sizeBytes uint64) ItemResult {
	return ItemResult{Source: source, Destination: destination, SizeBytes: sizeBytes, Status: StatusSuccess}
}

func NewSuccessDirItem(source, destination string) ItemResult {
	return ItemResult{Source: source, Destination: destination, IsDirectory: true, Status: StatusSuccess}
}

func NewSkippedItem(source, destination, reason string) ItemResult {
	return ItemResult{Source: source, Destination: destination, Status: StatusSkipped, Reason: &reason}
}

func NewFailedItem(source, destination, errMsg string) ItemResult {
	return ItemResult{Source: source, Destination: destination, Status: StatusFailed, Reason: &errMsg}
}

func (i ItemResult) WithDuration(d time.Duration) ItemResult {
	ms := uint64(d.Milliseconds())
	i.DurationMs = &ms
	return i
}

func (i ItemResult) IsSuccess() bool { return i.Status == StatusSuccess }
func (i ItemResult) IsFailed() bool  { return i.Status == StatusFailed }

// Summary aggregates totals across every item in a report.
type Summary struct {
	TotalItems          int    `json:"total_items"`
	Succeeded           int    `json:"succeeded"`
	Skipped             int    `json:"skipped"`
	Failed              int    `json:"failed"`
	BytesTransferred    uint64 `json:"bytes_transferred"`
	DurationMs          uint64 `json:"duration_ms"`
	DirectoriesCreated  int    `json:"directories_created"`
	FilesCopied         int    `json:"files_copied"`
}

func (s Summary) SuccessPercentage() float64 {
	if s.TotalItems == 0 {
		return 100.0
	}
	return float64(s.Succeeded) / float64(s.TotalItems) * 100.0
}

func (s Summary) IsCompleteSuccess() bool { return s.Failed == 0 }

func (s Summary) AverageSpeedBytesPerSec() uint64 {
	if s.DurationMs == 0 {
		return s.BytesTransferred
	}
	return s.BytesTransferred * 1000 / s.DurationMs
}

func (s Summary) DurationDisplay() string {
	secs := s.DurationMs / 1000
	ms := s.DurationMs % 1000
	switch {
	case secs >= 3600:
		return fmt.Sprintf("%dh %dm %ds", secs/3600, (secs%3600)/60, secs%60)
	case secs >= 60:
		return fmt.Sprintf("%dm %ds", secs/60, secs%60)
	case secs > 0:
		return fmt.Sprintf("%d.%03ds", secs, ms)
	default:
		return fmt.Sprintf("%dms", s.DurationMs)
	}
}

// Report is a complete, exportable record of one transfer operation.
type Report struct {
	JobID        job.ID       `json:"job_id"`
	Operation    Operation    `json:"operation"`
	StartedAt    time.Time    `json:"started_at"`
	CompletedAt  time.Time    `json:"completed_at"`
	Summary      Summary      `json:"summary"`
	Items        []ItemResult `json:"items"`
	WasCancelled bool         `json:"was_cancelled"`
}

// reportWire is Report's on-disk shape: StartedAt/CompletedAt as
// unix-millis integers rather than Go's default RFC3339 string
// encoding, matching the stable wire schema every other report
// consumer (and report/store.go's filename timestamp) is built around.
type reportWire struct {
	JobID        job.ID       `json:"job_id"`
	Operation    Operation    `json:"operation"`
	StartedAt    int64        `json:"started_at"`
	CompletedAt  int64        `json:"completed_at"`
	Summary      Summary      `json:"summary"`
	Items        []ItemResult `json:"items"`
	WasCancelled bool         `json:"was_cancelled"`
}

func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(reportWire{
		JobID:        r.JobID,
		Operation:    r.Operation,
		StartedAt:    r.StartedAt.UnixMilli(),
		CompletedAt:  r.CompletedAt.UnixMilli(),
		Summary:      r.Summary,
		Items:        r.Items,
		WasCancelled: r.WasCancelled,
	})
}

func (r *Report) UnmarshalJSON(data []byte) error {
	var w reportWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.JobID = w.JobID
	r.Operation = w.Operation
	r.StartedAt = time.UnixMilli(w.StartedAt)
	r.CompletedAt = time.UnixMilli(w.CompletedAt)
	r.Summary = w.Summary
	r.Items = w.Items
	r.WasCancelled = w.WasCancelled
	return nil
}

func (r *Report) itemsWithStatus(status Status) []ItemResult {
	var out []ItemResult
	for _, it := range r.Items {
		if it.Status == status {
			out = append(out, it)
		}
	}
	return out
}

func (r *Report) FailedItems() []ItemResult     { return r.itemsWithStatus(StatusFailed) }
func (r *Report) SuccessfulItems() []ItemResult { return r.itemsWithStatus(StatusSuccess) }
func (r *Report) SkippedItems() []ItemResult    { return r.itemsWithStatus(StatusSkipped) }

// ToText renders the report as plain text: a header, the summary
// totals, a notice when the operation was cancelled, then the failed
// and skipped items with their reasons.
func (r *Report) ToText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s Report ===\n", r.Operation.Label())
	fmt.Fprintf(&b, "Job ID: %d\n", r.JobID)
	fmt.Fprintf(&b, "Duration: %s\n\n", r.Summary.DurationDisplay())

	b.WriteString("--- Summary ---\n")
	fmt.Fprintf(&b, "Total items: %d\n", r.Summary.TotalItems)
	fmt.Fprintf(&b, "Succeeded: %d (%.1f%%)\n", r.Summary.Succeeded, r.Summary.SuccessPercentage())
	fmt.Fprintf(&b, "Skipped: %d\n", r.Summary.Skipped)
	fmt.Fprintf(&b, "Failed: %d\n", r.Summary.Failed)
	fmt.Fprintf(&b, "Bytes transferred: %s\n", humanize.IBytes(r.Summary.BytesTransferred))
	fmt.Fprintf(&b, "Average speed: %s/s\n", humanize.IBytes(r.Summary.AverageSpeedBytesPerSec()))

	if r.WasCancelled {
		b.WriteString("\n*** OPERATION WAS CANCELLED ***\n")
	}

	if failed := r.FailedItems(); len(failed) > 0 {
		b.WriteString("\n--- Failed Items ---\n")
		for _, item := range failed {
			reason := "Unknown error"
			if item.Reason != nil {
				reason = *item.Reason
			}
			fmt.Fprintf(&b, "✗ %s → %s\n  Error: %s\n", item.Source, item.Destination, reason)
		}
	}

	if skipped := r.SkippedItems(); len(skipped) > 0 {
		b.WriteString("\n--- Skipped Items ---\n")
		for _, item := range skipped {
			reason := "Unknown reason"
			if item.Reason != nil {
				reason = *item.Reason
			}
			fmt.Fprintf(&b, "○ %s → %s\n  Reason: %s\n", item.Source, item.Destination, reason)
		}
	}

	return b.String()
}

// Builder accumulates item results for one transfer and produces a
// finished Report with its Summary pre-computed.
type Builder struct {
	jobID        job.ID
	operation    Operation
	startedAt    time.Time
	items        []ItemResult
	wasCancelled bool
}

func NewBuilder(jobID job.ID, operation Operation) *Builder {
	return &Builder{jobID: jobID, operation: operation, startedAt: time.Now()}
}

func (b *Builder) AddItem(item ItemResult) *Builder {
	b.items = append(b.items, item)
	return b
}

func (b *Builder) SetCancelled(cancelled bool) *Builder {
	b.wasCancelled = cancelled
	return b
}

func (b *Builder) Build() Report {
	completedAt := time.Now()

	summary := Summary{
		TotalItems: len(b.items),
		DurationMs: uint64(completedAt.Sub(b.startedAt).Milliseconds()),
	}

	for _, item := range b.items {
		switch item.Status {
		case StatusSuccess:
			summary.Succeeded++
			summary.BytesTransferred += item.SizeBytes
			if item.IsDirectory {
				summary.DirectoriesCreated++
			} else {
				summary.FilesCopied++
			}
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
		}
	}

	return Report{
		JobID:        b.jobID,
		Operation:    b.operation,
		StartedAt:    b.startedAt,
		CompletedAt:  completedAt,
		Summary:      summary,
		Items:        b.items,
		WasCancelled: b.wasCancelled,
	}
}
