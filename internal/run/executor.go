// Package run executes a resolved triage plan over classified files and
// aggregates the per-file outcomes into a run report.
package run

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"delrest/internal/classify"
	"delrest/internal/errors"
	"delrest/internal/log"
	"delrest/internal/plan"
)

// Entry is the outcome for a single considered file. Every classified
// file gets an entry, acted upon or not, so verbose reporting and dry-run
// reporting are complete.
type Entry struct {
	// Path is the file's path relative to the scanned directory.
	Path string
	// Label is the file's classification.
	Label classify.Label
	// Action describes what happened ("copied", "would delete", "kept",
	// "skipped").
	Action string
	// Err holds the per-file failure, nil on success. A failed entry does
	// not stop the run.
	Err error
}

// Report is the aggregated outcome of one run. It is built incrementally
// during execution and owned solely by the caller afterwards; no state
// persists between runs.
type Report struct {
	Op      plan.Operation
	DryRun  bool
	Entries []Entry
	Counts  classify.Counts
}

// Failures returns the entries that recorded a per-file error.
func (r *Report) Failures() []Entry {
	var failed []Entry
	for _, e := range r.Entries {
		if e.Err != nil {
			failed = append(failed, e)
		}
	}
	return failed
}

// Failed reports whether any per-file failure occurred; it drives the
// process exit status.
func (r *Report) Failed() bool {
	return len(r.Failures()) > 0
}

// Executor applies a validated plan to classified files.
type Executor struct {
	Plan    plan.Plan
	DryRun  bool
	Verbose bool
}

// Execute runs the plan over the classification results. Only Act files
// are ever copied, moved, or deleted; Keep and Skip files are left
// untouched on disk under every operation. A per-file failure is recorded
// and execution continues with the next file.
func (e *Executor) Execute(root string, results []classify.Result) *Report {
	report := &Report{
		Op:      e.Plan.Op,
		DryRun:  e.DryRun,
		Entries: make([]Entry, 0, len(results)),
		Counts:  classify.Count(results),
	}

	for _, res := range results {
		entry := Entry{Path: res.Path, Label: res.Label}

		switch res.Label {
		case classify.Keep:
			entry.Action = "kept"
		case classify.Skip:
			entry.Action = "skipped"
		case classify.Act:
			entry.Action, entry.Err = e.apply(root, res.Path)
		}

		if e.Verbose {
			if entry.Err != nil {
				log.LogWithFields(log.F("path", entry.Path), log.F("label", entry.Label.String())).
					Warnf("%s failed: %v", e.Plan.Op, entry.Err)
			} else {
				log.LogWithFields(log.F("path", entry.Path), log.F("label", entry.Label.String())).
					Info(entry.Action)
			}
		}

		report.Entries = append(report.Entries, entry)
	}

	return report
}

// apply performs the resolved operation on one Act file and returns the
// action description for its report entry.
func (e *Executor) apply(root, rel string) (string, error) {
	if e.DryRun {
		return "would " + e.Plan.Op.String(), nil
	}

	src := filepath.Join(root, rel)

	switch e.Plan.Op {
	case plan.Delete:
		if err := os.Remove(src); err != nil {
			return "", errors.NewFileError("cannot delete", rel, errors.FileOperationFailed, err)
		}
	case plan.Copy, plan.Move:
		// The file's layout relative to the scanned root is preserved
		// under the destination.
		dest := filepath.Join(e.Plan.Dest, rel)
		if err := e.transfer(src, dest); err != nil {
			return "", errors.NewFileError(fmt.Sprintf("cannot %s", e.Plan.Op), rel, errors.FileOperationFailed, err)
		}
	}

	return e.Plan.Op.Past(), nil
}

// transfer copies or moves src to dest, creating parent directories as
// needed. An existing destination file is a per-file error, never an
// overwrite.
func (e *Executor) transfer(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("destination already exists: %s", dest)
	}

	if e.Plan.Op == plan.Move {
		return os.Rename(src, dest)
	}
	return copyFile(src, dest)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	return out.Close()
}
