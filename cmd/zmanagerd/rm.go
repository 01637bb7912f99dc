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
	"os"

	"github.com/spf13/cobra"

	"github.com/PerkyZZ999/ZManager/job"
	"github.com/PerkyZZ999/ZManager/recycle"
)

var permanent bool

var rmCmd = &cobra.Command{
	Use:   "rm <path>...",
	Short: "Delete files or directories, by default to the recycle bin",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := job.NewDelete(args)
		if permanent {
			kind = job.NewDeletePermanent(args)
		}
		j := scheduler.Submit(kind)
		scheduler.AwaitAdmission(j.ID)

		if permanent {
			return removePermanently(j, args)
		}
		return removeToRecycleBin(j, args)
	},
}

func removeToRecycleBin(j *job.Job, paths []string) error {
	errs := recycle.MoveMultipleToRecycleBin(paths)
	failed := 0
	for i, err := range errs {
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "failed to recycle %s: %v\n", paths[i], err)
		}
	}
	if failed > 0 {
		msg := fmt.Sprintf("%d of %d deletions failed", failed, len(paths))
		scheduler.FailJob(j.ID, msg)
		return fmt.Errorf("%d of %d deletions failed", failed, len(paths))
	}
	scheduler.CompleteJob(j.ID)
	fmt.Printf("moved %d item(s) to the recycle bin\n", len(paths))
	return nil
}

func removePermanently(j *job.Job, paths []string) error {
	var failed int
	for _, path := range paths {
		var err error
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			err = os.RemoveAll(path)
		} else {
			err = os.Remove(path)
		}
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "failed to delete %s: %v\n", path, err)
		}
	}
	if failed > 0 {
		msg := fmt.Sprintf("%d of %d deletions failed", failed, len(paths))
		scheduler.FailJob(j.ID, msg)
		return fmt.Errorf("%d of %d deletions failed", failed, len(paths))
	}
	scheduler.CompleteJob(j.ID)
	fmt.Printf("permanently deleted %d item(s)\n", len(paths))
	return nil
}

func init() {
	rmCmd.Flags().BoolVar(&permanent, "permanent", false, "delete permanently instead of using the recycle bin")
	rootCmd.AddCommand(rmCmd)
}
