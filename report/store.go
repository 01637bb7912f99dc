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

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/PerkyZZ999/ZManager/zerr"
)

// Storage persists reports to a directory as individually named JSON
// files, one per completed transfer.
type Storage struct {
	reportsDir string
}

// NewStorage creates a storage rooted at reportsDir.
func NewStorage(reportsDir string) *Storage {
	return &Storage{reportsDir: reportsDir}
}

// DefaultDir returns the platform-conventional location for reports,
// falling back to the current directory when it cannot be resolved.
func DefaultDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".", "ZManager", "reports")
	}
	return filepath.Join(home, "AppData", "Local", "ZManager", "reports")
}

// NewDefaultStorage creates a storage rooted at DefaultDir().
func NewDefaultStorage() *Storage {
	return NewStorage(DefaultDir())
}

func (s *Storage) ensureDir() error {
	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return zerr.IO(s.reportsDir, err)
	}
	return nil
}

// Save writes report as a new JSON file named
// "<operation>_<started-at-epoch-ms>.json" and returns its path.
func (s *Storage) Save(report Report) (string, error) {
	if err := s.ensureDir(); err != nil {
		return "", err
	}

	timestampMs := report.StartedAt.UnixMilli()
	filename := fmt.Sprintf("%s_%d.json", strings.ToLower(string(report.Operation)), timestampMs)
	path := filepath.Join(s.reportsDir, filename)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", zerr.Internal(fmt.Sprintf("failed to serialize report: %v", err))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", zerr.IO(path, err)
	}
	return path, nil
}

// Load reads and parses the report stored under filename.
func (s *Storage) Load(filename string) (Report, error) {
	path := filepath.Join(s.reportsDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, zerr.IO(path, err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, zerr.Internal(fmt.Sprintf("failed to parse report: %v", err))
	}
	return report, nil
}

// List returns the filenames of every stored report, most recent
// first. An absent reports directory yields an empty list, not an
// error.
func (s *Storage) List() ([]string, error) {
	entries, err := os.ReadDir(s.reportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, zerr.IO(s.reportsDir, err)
	}

	var reports []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			reports = append(reports, entry.Name())
		}
	}

	// Filenames are "<operation>_<epoch-ms>.json"; order by the timestamp
	// so copy and move reports interleave by time.
	stamp := func(name string) string {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		return base[strings.LastIndex(base, "_")+1:]
	}
	sort.SliceStable(reports, func(i, j int) bool {
		si, sj := stamp(reports[i]), stamp(reports[j])
		if len(si) != len(sj) {
			return len(si) > len(sj)
		}
		if si != sj {
			return si > sj
		}
		return reports[i] > reports[j]
	})
	return reports, nil
}

// Cleanup deletes every stored report beyond the keepCount most
// recent, returning the number of files removed.
func (s *Storage) Cleanup(keepCount int) (int, error) {
	reports, err := s.List()
	if err != nil {
		return 0, err
	}
	if keepCount < 0 {
		keepCount = 0
	}
	if keepCount >= len(reports) {
		return 0, nil
	}

	deleted := 0
	for _, filename := range reports[keepCount:] {
		path := filepath.Join(s.reportsDir, filename)
		if err := os.Remove(path); err == nil {
			deleted++
		}
	}
	return deleted, nil
}
