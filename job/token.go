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

import "sync/atomic"

// CancellationToken is a shared cooperative-cancellation flag. A
// transfer executor polls IsCancelled periodically and unwinds
// gracefully rather than being killed outright.
type CancellationToken struct {
	cancelled atomic.Bool
}

// NewCancellationToken returns a token in the not-cancelled state.
func NewCancellationToken() *CancellationToken {
	return &CancellationToken{}
}

func (t *CancellationToken) Cancel()            { t.cancelled.Store(true) }
func (t *CancellationToken) IsCancelled() bool   { return t.cancelled.Load() }
func (t *CancellationToken) Reset()              { t.cancelled.Store(false) }
