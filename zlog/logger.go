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

// Package zlog is the core's leveled logging facility: a small
// leveled-writer interface rather than a structured logging library.
package zlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "NONE"
	}
}

// Logger is the interface every component logs through. Components
// accept a Logger rather than reaching for a package-level global,
// except where one is supplied a Default() for convenience at call
// sites with no logger of their own.
type Logger interface {
	ShouldLog(level Level) bool
	Log(level Level, msg string)
	Logf(level Level, format string, args ...interface{})
}

type writerLogger struct {
	mu       sync.Mutex
	min      Level
	prefix   string
	logger   *log.Logger
}

// New builds a Logger that writes lines at or above min to w, each
// tagged with prefix (typically a component or job name).
func New(w io.Writer, min Level, prefix string) Logger {
	return &writerLogger{
		min:    min,
		prefix: prefix,
		logger: log.New(w, "", log.LstdFlags|log.Lmicroseconds),
	}
}

func (l *writerLogger) ShouldLog(level Level) bool {
	if level == LevelNone {
		return false
	}
	return level <= l.min
}

func (l *writerLogger) Log(level Level, msg string) {
	if !l.ShouldLog(level) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.prefix != "" {
		l.logger.Printf("%s: [%s] %s", level, l.prefix, msg)
	} else {
		l.logger.Printf("%s: %s", level, msg)
	}
}

func (l *writerLogger) Logf(level Level, format string, args ...interface{}) {
	if !l.ShouldLog(level) {
		return
	}
	l.Log(level, fmt.Sprintf(format, args...))
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = New(os.Stderr, LevelWarn, "")
)

// SetDefault replaces the package default logger, used by call sites
// (e.g. the listing engine's per-entry warning log) that aren't handed
// a job-scoped Logger.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Discard is a Logger that drops everything, useful for tests that
// don't want log noise but still need a non-nil Logger.
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) ShouldLog(Level) bool                       { return false }
func (discardLogger) Log(Level, string)                          {}
func (discardLogger) Logf(Level, string, ...interface{})         {}
