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
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/PerkyZZ999/ZManager/sortfilter"

	"github.com/PerkyZZ999/ZManager/listing"
)

var (
	listShowHidden bool
	listPattern    string
	listSortField  string
	listDescending bool
)

var listCmd = &cobra.Command{
	Use:     "list [path]",
	Aliases: []string{"ls"},
	Short:   "List the contents of a directory",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) == 1 {
			path = args[0]
		}

		filter := sortfilter.NewFilter()
		if listShowHidden {
			filter = sortfilter.ShowAll()
		}
		if listPattern != "" {
			filter.SetPattern(listPattern)
		}

		spec := sortfilter.DefaultSort()
		if field, ok := parseSortField(listSortField); ok {
			order := sortfilter.OrderAsc
			if listDescending {
				order = sortfilter.OrderDesc
			}
			spec = sortfilter.NewSort(field, order)
		}

		dirListing, err := listing.ListDirectory(path, listing.Options{Sort: &spec, Filter: &filter})
		if err != nil {
			return err
		}

		for _, e := range dirListing.Entries {
			marker := " "
			if e.Kind.IsDir() {
				marker = "d"
			}
			fmt.Printf("%s %10s  %s\n", marker, humanize.IBytes(e.SizeBytes), e.Name)
		}
		fmt.Printf("\n%d entries\n", len(dirListing.Entries))
		return nil
	},
}

func parseSortField(s string) (sortfilter.SortField, bool) {
	switch s {
	case "name":
		return sortfilter.FieldName, true
	case "size":
		return sortfilter.FieldSize, true
	case "modified":
		return sortfilter.FieldModified, true
	case "kind", "type":
		return sortfilter.FieldKind, true
	default:
		return 0, false
	}
}

func init() {
	listCmd.Flags().BoolVarP(&listShowHidden, "all", "a", false, "show hidden entries")
	listCmd.Flags().StringVar(&listPattern, "pattern", "", "case-insensitive substring to filter by name")
	listCmd.Flags().StringVar(&listSortField, "sort", "name", "sort field: name, size, modified, kind")
	listCmd.Flags().BoolVarP(&listDescending, "reverse", "r", false, "sort in descending order")
	rootCmd.AddCommand(listCmd)
}
