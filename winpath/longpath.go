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

// Package winpath centralizes the `\\?\` long-path escape used by both
// the listing engine (§4.1 step 1) and the single-file copier
// (§4.5.3), since Windows doesn't by default accept paths over 260
// characters without it.
package winpath

import (
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

const (
	extendedPathPrefix    = `\\?\`
	extendedUNCPathPrefix = `\\?\UNC`
	// LongPathThreshold is the character-length at which a path needs
	// the long-path escape, per spec §4.1 step 1 and §4.5.3.
	LongPathThreshold = 240
)

var rootDriveRegex = regexp.MustCompile(`(?i)(^[A-Z]:/?$)`)

// NeedsEscape reports whether path is long enough to require the
// `\\?\` prefix before being handed to a Windows API call.
func NeedsEscape(path string) bool {
	return len(path) >= LongPathThreshold
}

// ToExtended converts a short path into its `\\?\`-escaped form. It is
// a no-op on non-Windows platforms.
func ToExtended(short string) string {
	if runtime.GOOS != "windows" {
		return short
	}
	if len(short) == 2 && rootDriveRegex.MatchString(short) {
		short += "/"
	}

	abs, err := filepath.Abs(short)
	if err != nil {
		return short
	}
	short = abs

	switch {
	case strings.HasPrefix(short, extendedPathPrefix):
		return strings.ReplaceAll(short, "/", `\`)
	case strings.HasPrefix(short, `\\`):
		return strings.ReplaceAll(extendedUNCPathPrefix+short[1:], "/", `\`)
	default:
		if len(short) >= 2 && rootDriveRegex.MatchString(short[:2]) {
			short = strings.ToUpper(short[:2]) + short[2:]
		}
		return strings.ReplaceAll(extendedPathPrefix+short, "/", `\`)
	}
}

// ToShort reverses ToExtended, used when surfacing a path back to the
// caller (e.g. in an Error or a report row).
func ToShort(long string) string {
	if runtime.GOOS != "windows" {
		return long
	}
	switch {
	case strings.HasPrefix(long, extendedUNCPathPrefix):
		return `\` + long[len(extendedUNCPathPrefix):]
	case strings.HasPrefix(long, extendedPathPrefix):
		return long[len(extendedPathPrefix):]
	default:
		return long
	}
}

// ForAPI returns the path ready to hand to a native Windows call: the
// extended form when the path is long enough to need it, the plain
// path otherwise. This matches spec §4.1 step 1 and §4.5.3's "if the
// path length >= 240, prefix with \\?\" rule precisely (rather than
// always escaping, which would also work but changes every path's
// on-disk appearance in logs/reports).
func ForAPI(path string) string {
	if NeedsEscape(path) {
		return ToExtended(path)
	}
	return path
}
