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

package navigation

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupNavDirs(t *testing.T) (root, dirA, dirB, dirC string) {
	t.Helper()
	root = t.TempDir()
	dirA = filepath.Join(root, "dir_a")
	dirB = filepath.Join(root, "dir_b")
	dirC = filepath.Join(root, "dir_c")
	for _, d := range []string{dirA, dirB, dirC} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return
}

func TestNavigationBasic(t *testing.T) {
	a := assert.New(t)
	root, dirA, dirB, _ := setupNavDirs(t)
	nav := New(root)

	a.Equal(root, nav.CurrentPath())
	a.False(nav.CanGoBack())
	a.False(nav.CanGoForward())

	nav.NavigateTo(dirA)
	a.Equal(dirA, nav.CurrentPath())
	a.True(nav.CanGoBack())
	a.False(nav.CanGoForward())

	nav.NavigateTo(dirB)
	a.Equal(dirB, nav.CurrentPath())
	a.True(nav.CanGoBack())
}

func TestGoBackForward(t *testing.T) {
	a := assert.New(t)
	root, dirA, dirB, _ := setupNavDirs(t)
	nav := New(root)

	nav.NavigateTo(dirA)
	nav.NavigateTo(dirB)

	path, ok := nav.GoBack()
	a.True(ok)
	a.Equal(dirA, path)
	a.True(nav.CanGoForward())

	path, ok = nav.GoBack()
	a.True(ok)
	a.Equal(root, path)
	a.True(nav.CanGoForward())
	a.False(nav.CanGoBack())

	path, ok = nav.GoForward()
	a.True(ok)
	a.Equal(dirA, path)

	path, ok = nav.GoForward()
	a.True(ok)
	a.Equal(dirB, path)
	a.False(nav.CanGoForward())
}

func TestNavigateClearsForward(t *testing.T) {
	a := assert.New(t)
	root, dirA, dirB, dirC := setupNavDirs(t)
	nav := New(root)

	nav.NavigateTo(dirA)
	nav.NavigateTo(dirB)
	nav.GoBack() // now at dirA, can go forward to dirB

	a.True(nav.CanGoForward())

	nav.NavigateTo(dirC)
	a.False(nav.CanGoForward())
}

func TestGoUp(t *testing.T) {
	a := assert.New(t)
	root, dirA, _, _ := setupNavDirs(t)
	nav := New(dirA)

	a.True(nav.CanGoUp())

	parent, ok := nav.GoUp()
	a.True(ok)
	a.Equal(root, parent)
	a.True(nav.CanGoBack())
}

func TestNavigateToSamePath(t *testing.T) {
	a := assert.New(t)
	_, dirA, _, _ := setupNavDirs(t)
	nav := New(dirA)

	nav.NavigateTo(dirA)
	a.False(nav.CanGoBack())
}

func TestHistorySizeLimit(t *testing.T) {
	a := assert.New(t)
	root := t.TempDir()
	nav := New(root)

	for i := 0; i < 150; i++ {
		dir := filepath.Join(root, fmt.Sprintf("dir_%d", i))
		a.NoError(os.MkdirAll(dir, 0o755))
		nav.NavigateTo(dir)
	}

	a.LessOrEqual(len(nav.BackHistory()), MaxHistorySize)
}

func TestToggleHidden(t *testing.T) {
	a := assert.New(t)
	root, _, _, _ := setupNavDirs(t)
	nav := New(root)

	a.False(nav.Filter().ShowHidden)
	nav.ToggleHidden()
	a.True(nav.Filter().ShowHidden)
	nav.ToggleHidden()
	a.False(nav.Filter().ShowHidden)
}

func TestClearHistory(t *testing.T) {
	a := assert.New(t)
	root, dirA, dirB, _ := setupNavDirs(t)
	nav := New(root)

	nav.NavigateTo(dirA)
	nav.NavigateTo(dirB)
	nav.GoBack()
	a.True(nav.CanGoBack())
	a.True(nav.CanGoForward())

	nav.ClearHistory()
	a.False(nav.CanGoBack())
	a.False(nav.CanGoForward())
}

func TestGetListingCachesUntilInvalidated(t *testing.T) {
	a := assert.New(t)
	root, _, _, _ := setupNavDirs(t)
	nav := New(root)

	l1, err := nav.GetListing()
	a.NoError(err)
	a.Equal(3, len(l1.Entries))

	// Add a new directory on disk; cached listing should not see it.
	a.NoError(os.MkdirAll(filepath.Join(root, "dir_d"), 0o755))
	l2, err := nav.GetListing()
	a.NoError(err)
	a.Equal(3, len(l2.Entries))

	l3, err := nav.Refresh()
	a.NoError(err)
	a.Equal(4, len(l3.Entries))
}
