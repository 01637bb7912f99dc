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

// Command zmanagerd is a headless front end over the core file-manager
// engine: it drives directory listing, copy/move, delete-to-recycle-bin,
// job tracking and directory watching entirely from cobra subcommands.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/PerkyZZ999/ZManager/job"
	"github.com/PerkyZZ999/ZManager/zlog"
)

var verbose bool

var scheduler = job.NewSchedulerWithDefaults()
var schedulerCtx, schedulerCancel = context.WithCancel(context.Background())

var rootCmd = &cobra.Command{
	Use:   "zmanagerd",
	Short: "ZManager command-line file manager",
	Long: "zmanagerd is a command-line front end for the ZManager core: directory\n" +
		"listing, copy/move with conflict handling, recycle-bin delete, background\n" +
		"job tracking and live directory watching.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zlog.LevelWarn
		if verbose {
			level = zlog.LevelDebug
		}
		zlog.SetDefault(zlog.New(os.Stderr, level, ""))
		go scheduler.Run(schedulerCtx)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		schedulerCancel()
		os.Exit(1)
	}
	scheduler.Shutdown()
	<-scheduler.Stopped()
	schedulerCancel()
}
