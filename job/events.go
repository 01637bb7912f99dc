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

// EventKind tags the variant carried by an Event.
type EventKind int

const (
	EventJobAdded EventKind = iota
	EventJobStarted
	EventJobProgress
	EventJobCompleted
	EventJobFailed
	EventJobCancelled
	EventJobPaused
	EventJobResumed
)

// Event is broadcast by the scheduler to every subscriber whenever a
// job transitions. Progress is only populated for EventJobProgress;
// Error only for EventJobFailed.
type Event struct {
	Kind     EventKind
	JobID    ID
	Progress Progress
	Error    string
}

// command is the scheduler's internal admission-queue message.
type command struct {
	kind commandKind
	id   ID
	job  *Job
}

type commandKind int

const (
	cmdAddJob commandKind = iota
	cmdCancelJob
	cmdPauseJob
	cmdResumeJob
	cmdClearHistory
	cmdShutdown
)
