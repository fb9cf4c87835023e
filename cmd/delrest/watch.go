package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"delrest/internal/classify"
	"delrest/internal/log"
	"delrest/internal/plan"
	"delrest/internal/run"
	"delrest/internal/scan"
	"delrest/internal/watch"
)

// NewWatchCmd creates the watch subcommand: a full triage of the existing
// directory contents, then triage-on-arrival for new files until
// interrupted.
func NewWatchCmd() *cobra.Command {
	opts := &triageOptions{}

	watchCmd := &cobra.Command{
		Use:          "watch",
		Short:        "Watch a directory and triage files as they arrive",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetDebug(opts.verbose)

			cfg, keep, err := setup(opts)
			if err != nil {
				return err
			}

			p := plan.Resolve(opts.copyTo, opts.moveTo, opts.delete)
			if err := p.Validate(opts.path, opts.dryRun); err != nil {
				return err
			}

			executor := &run.Executor{Plan: p, DryRun: opts.dryRun, Verbose: opts.verbose}

			// Triage what is already there before watching for arrivals.
			files, err := scan.Files(opts.path)
			if err != nil {
				return err
			}
			report := executor.Execute(opts.path, classify.Partition(files, cfg, keep))
			renderReport(cmd.OutOrStdout(), report, opts.verbose)

			watcher, err := watch.New(watch.Triage{
				Root:   opts.path,
				Config: cfg,
				Keep:   keep,
				Exec:   executor,
			})
			if err != nil {
				return err
			}
			watcher.Start()
			defer watcher.Stop()

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
			<-interrupt

			log.Info("Stopping watch")
			return nil
		},
	}

	opts.register(watchCmd)

	return watchCmd
}
