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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PerkyZZ999/ZManager/properties"
)

var drivesCmd = &cobra.Command{
	Use:   "drives",
	Short: "List mounted drives and their free space",
	RunE: func(cmd *cobra.Command, args []string) error {
		drives, err := properties.ListDrives()
		if err != nil {
			return err
		}
		for _, d := range drives {
			fmt.Printf("%-20s %-14s %10s free of %10s\n",
				d.DisplayName(), d.Type.Description(), d.FreeSpaceDisplay(), d.TotalSpaceDisplay())
		}
		return nil
	},
}

var sizeCmd = &cobra.Command{
	Use:   "size <path>",
	Short: "Calculate the total size of a directory tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := properties.CalculateFolderSize(context.Background(), args[0], nil)
		if err != nil {
			return err
		}
		fmt.Printf("%d file(s), %d folder(s), %d bytes\n", result.FileCount, result.FolderCount, result.TotalBytes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(drivesCmd)
	rootCmd.AddCommand(sizeCmd)
}
