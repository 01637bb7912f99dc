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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/PerkyZZ999/ZManager/job"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List tracked jobs and their progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := scheduler.ListJobs()
		if len(infos) == 0 {
			fmt.Println("no jobs")
			return nil
		}
		for _, info := range infos {
			fmt.Printf("%-10s %3d%%  %-10s %s\n", info.ID, info.ProgressPercent, info.State, info.Description)
		}
		stats := scheduler.JobStats()
		fmt.Printf("\n%d pending, %d running, %d completed, %d failed, %d cancelled\n",
			stats.Pending, stats.Running, stats.Completed, stats.Failed, stats.Cancelled)
		return nil
	},
}

var jobsCancelCmd = &cobra.Command{
	Use:   "cancel <job-id>",
	Short: "Cancel a pending or running job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid job id %q: %w", args[0], err)
		}
		if !scheduler.Cancel(job.ID(id)) {
			return fmt.Errorf("job %d is not cancellable (unknown or already finished)", id)
		}
		fmt.Printf("cancellation requested for job %d\n", id)
		return nil
	},
}

func init() {
	jobsCmd.AddCommand(jobsCancelCmd)
	rootCmd.AddCommand(jobsCmd)
}
