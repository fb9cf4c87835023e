package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"delrest/internal/classify"
	"delrest/internal/config"
	"delrest/internal/errors"
	"delrest/internal/keepfile"
	"delrest/internal/log"
	"delrest/internal/plan"
	"delrest/internal/run"
	"delrest/internal/scan"
)

// triageOptions holds the flag values shared by the one-shot run and
// watch mode.
type triageOptions struct {
	path        string
	keepPath    string
	configPath  string
	copyTo      string
	moveTo      string
	delete      bool
	dryRun      bool
	verbose     bool
	printConfig bool
}

// register wires the triage flags onto a command.
func (o *triageOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.path, "path", "p", ".", "directory to search for files")
	flags.StringVarP(&o.keepPath, "keep", "k", "", "keepfile listing identifiers to retain (default <path>/keep.txt)")
	flags.StringVarP(&o.configPath, "config", "Y", "", "filter configuration file (default: discovered config.yaml)")
	flags.StringVar(&o.configPath, "cfg", "", "alias for --config")
	flags.StringVarP(&o.copyTo, "copy-to", "c", "", "copy unkept files to this directory")
	flags.StringVarP(&o.moveTo, "move-to", "m", "", "move unkept files to this directory")
	flags.BoolVarP(&o.delete, "delete", "d", false, "delete unkept files")
	flags.BoolVar(&o.dryRun, "dry-run", false, "only print what would be done, don't actually do anything")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "print every file with its label and action")
	_ = flags.MarkHidden("cfg")
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &triageOptions{}

	rootCmd := &cobra.Command{
		Use:     "delrest",
		Short:   "Triage camera files against a keepfile",
		Version: version,
		Long: `delrest sorts a directory of camera files into kept and unkept ones.

A filter configuration (config.yaml) describes the camera's filename
formats and the accepted extensions; the keepfile lists, one per line, the
numeric identifiers of the files to retain. Files matching the
configuration but absent from the keepfile are copied, moved, or deleted.

When several of -c, -m and -d are given, copy wins over move, and move
wins over delete. With no operation flag at all, unkept files are copied
into "` + plan.DefaultDest + `".`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.printConfig {
				cfg, err := resolveConfig(opts)
				if err != nil {
					return err
				}
				cmd.Print(cfg.String())
				return nil
			}
			// Invoked bare, the tool informs instead of defaulting to a
			// copy run.
			if cmd.Flags().NFlag() == 0 {
				return cmd.Help()
			}
			return runTriage(cmd, opts)
		},
	}

	opts.register(rootCmd)
	rootCmd.Flags().BoolVar(&opts.printConfig, "print-config", false, "print the resolved configuration and exit")

	rootCmd.AddCommand(NewWatchCmd())

	return rootCmd
}

// resolveConfig loads the explicitly requested configuration, or runs the
// discovery walk. Only an explicit path is fatal on errors.
func resolveConfig(opts *triageOptions) (*config.Config, error) {
	if opts.configPath != "" {
		return config.Load(opts.configPath)
	}
	return config.Discover(opts.path), nil
}

// setup validates the selected directory and loads the run's read-only
// inputs. All failures here are fatal, before any file is touched.
func setup(opts *triageOptions) (*config.Config, *keepfile.KeepSet, error) {
	info, err := os.Stat(opts.path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid directory %s", opts.path)
	}
	if !info.IsDir() {
		return nil, nil, errors.Newf("not a directory: %s", opts.path)
	}

	cfg, err := resolveConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	keepPath := opts.keepPath
	if keepPath == "" {
		keepPath = filepath.Join(opts.path, "keep.txt")
	}
	keep, err := keepfile.Load(keepPath)
	if err != nil {
		return nil, nil, err
	}

	return cfg, keep, nil
}

func runTriage(cmd *cobra.Command, opts *triageOptions) error {
	log.SetDebug(opts.verbose)

	cfg, keep, err := setup(opts)
	if err != nil {
		return err
	}

	files, err := scan.Files(opts.path)
	if err != nil {
		return err
	}

	results := classify.Partition(files, cfg, keep)

	p := plan.Resolve(opts.copyTo, opts.moveTo, opts.delete)
	if err := p.Validate(opts.path, opts.dryRun); err != nil {
		return err
	}

	executor := &run.Executor{Plan: p, DryRun: opts.dryRun}
	report := executor.Execute(opts.path, results)

	renderReport(cmd.OutOrStdout(), report, opts.verbose)

	if report.Failed() {
		return errors.Newf("%d file operations failed", len(report.Failures()))
	}
	return nil
}
