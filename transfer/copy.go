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
	"time"

	"github.com/PerkyZZ999/ZManager/job"
	"github.com/PerkyZZ999/ZManager/zerr"
)

// ProgressCallback receives periodic progress snapshots during a copy.
type ProgressCallback func(CopyProgress)

// CopyProgress is a point-in-time snapshot of a single file copy.
type CopyProgress struct {
	TotalBytes       uint64
	BytesCopied      uint64
	Source           string
	Destination      string
	SpeedBytesPerSec uint64
	ETASeconds       *uint64
}

func (p CopyProgress) Percentage() float64 {
	if p.TotalBytes == 0 {
		return 100.0
	}
	return float64(p.BytesCopied) / float64(p.TotalBytes) * 100.0
}

func (p CopyProgress) PercentageInt() uint8 {
	return uint8(p.Percentage() + 0.5)
}

// CopyResult summarizes a completed copy for the job system.
type CopyResult struct {
	Source                  string
	Destination             string
	BytesCopied             uint64
	Duration                time.Duration
	AverageSpeedBytesPerSec uint64
}

// copyState is shared between a copy implementation and its progress
// reporting: it tracks the start time for speed/ETA math.
type copyState struct {
	source, destination string
	startedAt            time.Time
	cancel               *job.CancellationToken
	progress             ProgressCallback
}

func (s *copyState) speed(bytesTransferred uint64) uint64 {
	elapsed := time.Since(s.startedAt)
	if elapsed >= time.Second {
		return bytesTransferred / uint64(elapsed.Seconds())
	}
	if elapsed >= 100*time.Millisecond {
		return uint64(float64(bytesTransferred) / elapsed.Seconds())
	}
	return 0
}

func (s *copyState) eta(bytesTransferred, totalBytes uint64) *uint64 {
	speed := s.speed(bytesTransferred)
	if speed == 0 || bytesTransferred >= totalBytes {
		return nil
	}
	remaining := (totalBytes - bytesTransferred) / speed
	return &remaining
}

func (s *copyState) report(bytesCopied, totalBytes uint64) {
	if s.progress == nil {
		return
	}
	s.progress(CopyProgress{
		TotalBytes:       totalBytes,
		BytesCopied:      bytesCopied,
		Source:           s.source,
		Destination:      s.destination,
		SpeedBytesPerSec: s.speed(bytesCopied),
		ETASeconds:       s.eta(bytesCopied, totalBytes),
	})
}

// CopyFileWithProgress copies a single file, validating preconditions
// shared across platforms before delegating the actual data transfer
// to the platform-specific copyFileImpl (native CopyFileEx on
// Windows, a chunked read/write loop elsewhere).
func CopyFileWithProgress(source, destination string, overwrite bool, cancel *job.CancellationToken, progress ProgressCallback) (CopyResult, error) {
	srcInfo, err := os.Stat(source)
	if err != nil {
		return CopyResult{}, zerr.FromOSError(source, err)
	}
	if srcInfo.IsDir() {
		return CopyResult{}, zerr.NotAFile(source)
	}

	if !overwrite {
		if _, err := os.Stat(destination); err == nil {
			return CopyResult{}, zerr.AlreadyExists(destination)
		}
	}

	if parent := filepath.Dir(destination); parent != "" {
		if _, err := os.Stat(parent); os.IsNotExist(err) {
			if mkErr := os.MkdirAll(parent, 0o755); mkErr != nil {
				return CopyResult{}, zerr.FromOSError(parent, mkErr)
			}
		}
	}

	if cancel == nil {
		cancel = job.NewCancellationToken()
	}

	state := &copyState{
		source:      source,
		destination: destination,
		startedAt:   time.Now(),
		cancel:      cancel,
		progress:    progress,
	}

	bytesCopied, err := copyFileImpl(source, destination, uint64(srcInfo.Size()), state)
	duration := time.Since(state.startedAt)

	if err != nil {
		return CopyResult{}, err
	}

	var avgSpeed uint64
	if duration > 0 {
		avgSpeed = uint64(float64(bytesCopied) / duration.Seconds())
	}

	return CopyResult{
		Source:                  source,
		Destination:             destination,
		BytesCopied:             bytesCopied,
		Duration:                duration,
		AverageSpeedBytesPerSec: avgSpeed,
	}, nil
}
