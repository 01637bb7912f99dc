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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PerkyZZ999/ZManager/transfer"
)

func TestToReportItemSuccess(t *testing.T) {
	a := assert.New(t)
	item := transfer.ItemResult{Source: "a", Destination: "b", Outcome: transfer.OutcomeSuccess, Bytes: 42}
	r := toReportItem(item)
	a.True(r.IsSuccess())
	a.EqualValues(42, r.SizeBytes)
}

func TestToReportItemSkippedAndFailed(t *testing.T) {
	a := assert.New(t)

	skipped := toReportItem(transfer.ItemResult{Source: "a", Destination: "b", Outcome: transfer.OutcomeSkipped, Reason: "exists"})
	a.Equal("exists", *skipped.Reason)

	failed := toReportItem(transfer.ItemResult{Source: "a", Destination: "b", Outcome: transfer.OutcomeFailed, Error: "boom"})
	a.True(failed.IsFailed())
}

func TestDrainTransferEventsEmpty(t *testing.T) {
	ch := make(chan transfer.Event)
	drainTransferEvents(ch)
}
