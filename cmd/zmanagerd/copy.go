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
	"github.com/PerkyZZ999/ZManager/report"
	"github.com/PerkyZZ999/ZManager/transfer"
)

var overwriteAll bool
var skipAll bool

var copyCmd = &cobra.Command{
	Use:   "copy <source>... <destination>",
	Short: "Copy one or more files or directories into a destination folder",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(job.OpCopy, args)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <source>... <destination>",
	Short: "Move one or more files or directories into a destination folder",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(job.OpMove, args)
	},
}

func runTransfer(op job.KindOp, args []string) error {
	sources := args[:len(args)-1]
	destination := args[len(args)-1]

	var kind job.Kind
	if op == job.OpCopy {
		kind = job.NewCopy(sources, destination)
	} else {
		kind = job.NewMove(sources, destination)
	}

	j := scheduler.Submit(kind)
	scheduler.AwaitAdmission(j.ID)

	resolver := transfer.NewResolver()
	switch {
	case overwriteAll:
		resolver = transfer.OverwriteAllResolver()
	case skipAll:
		resolver = transfer.SkipAllResolver()
	}

	events := executorForCmd.Subscribe()

	var (
		result transfer.Report
		err    error
	)
	if op == job.OpCopy {
		result, err = executorForCmd.CopyFolder(sources, destination, resolver, j.Cancel)
	} else {
		result, err = executorForCmd.MoveFolder(sources, destination, resolver, j.Cancel)
	}

	// executeTransfer emits every event synchronously before returning,
	// so by now they are all sitting in the subscriber's buffer.
	drainTransferEvents(events)

	if err != nil {
		scheduler.FailJob(j.ID, err.Error())
		return err
	}
	scheduler.CompleteJob(j.ID)

	operation := report.OperationCopy
	if op == job.OpMove {
		operation = report.OperationMove
	}
	builder := report.NewBuilder(j.ID, operation)
	for _, item := range result.Items {
		builder.AddItem(toReportItem(item))
	}
	rpt := builder.Build()
	fmt.Print(rpt.ToText())

	if path, err := report.NewDefaultStorage().Save(rpt); err == nil {
		fmt.Printf("report saved to %s\n", path)
	}

	return nil
}

func toReportItem(item transfer.ItemResult) report.ItemResult {
	switch item.Outcome {
	case transfer.OutcomeSuccess:
		if item.Bytes == 0 && item.Destination != "" {
			if info, statErr := os.Stat(item.Destination); statErr == nil && info.IsDir() {
				return report.NewSuccessDirItem(item.Source, item.Destination)
			}
		}
		return report.NewSuccessItem(item.Source, item.Destination, item.Bytes)
	case transfer.OutcomeSkipped:
		return report.NewSkippedItem(item.Source, item.Destination, item.Reason)
	default:
		return report.NewFailedItem(item.Source, item.Destination, item.Error)
	}
}

func drainTransferEvents(events <-chan transfer.Event) {
	for {
		select {
		case ev := <-events:
			printTransferEvent(ev)
		default:
			return
		}
	}
}

func printTransferEvent(ev transfer.Event) {
	switch ev.Kind {
	case transfer.EventProgress:
		fmt.Printf("\r%3d%%", ev.Progress.PercentageInt())
	case transfer.EventItemCompleted:
		if ev.Item != nil && ev.Item.IsFailed() {
			fmt.Printf("\nfailed: %s: %s\n", ev.Item.Source, ev.Item.Error)
		}
	case transfer.EventCompleted:
		fmt.Println()
	}
}

var executorForCmd = transfer.NewExecutor()

func init() {
	for _, c := range []*cobra.Command{copyCmd, moveCmd} {
		c.Flags().BoolVar(&overwriteAll, "overwrite", false, "overwrite every conflicting destination")
		c.Flags().BoolVar(&skipAll, "skip-existing", false, "skip every conflicting destination")
	}
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(moveCmd)
}
