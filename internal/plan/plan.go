// Package plan resolves the requested operation flags into the single
// filesystem action a run performs, and validates its setup before any
// file is touched.
package plan

import (
	"os"
	"path/filepath"

	"delrest/internal/errors"
)

// DefaultDest is the destination used when no operation flag is given at
// all: the run then defaults to copying into this directory, resolved
// relative to the scanned directory's parent.
const DefaultDest = "selected"

// Operation is the kind of filesystem action applied to Act files.
type Operation int

const (
	// Copy duplicates Act files into the destination directory.
	Copy Operation = iota
	// Move relocates Act files into the destination directory.
	Move
	// Delete removes Act files in place.
	Delete
)

// String returns the operation verb.
func (op Operation) String() string {
	switch op {
	case Move:
		return "move"
	case Delete:
		return "delete"
	default:
		return "copy"
	}
}

// Past returns the past-tense verb for report lines.
func (op Operation) Past() string {
	switch op {
	case Move:
		return "moved"
	case Delete:
		return "deleted"
	default:
		return "copied"
	}
}

// Plan is the resolved action for one run. Exactly one operation executes
// per run; Dest is empty for Delete.
type Plan struct {
	Op   Operation
	Dest string
}

// Resolve turns the operation flags into a plan under the fixed
// precedence: copy destination, then move destination, then delete. When
// none of the three was given the run defaults to copying into
// DefaultDest. Conflicting flags are never rejected; precedence decides.
func Resolve(copyTo, moveTo string, del bool) Plan {
	switch {
	case copyTo != "":
		return Plan{Op: Copy, Dest: copyTo}
	case moveTo != "":
		return Plan{Op: Move, Dest: moveTo}
	case del:
		return Plan{Op: Delete}
	default:
		return Plan{Op: Copy, Dest: DefaultDest}
	}
}

// Validate checks the plan's setup against the scanned directory root.
// For Copy and Move the destination directory is created if missing and
// probed for writability; any failure is fatal, raised before the executor
// touches a single file. The destination must not be the scanned directory
// itself.
//
// In dry-run mode only non-mutating checks run: the destination is neither
// created nor probed, since a dry run must leave the filesystem unchanged.
func (p Plan) Validate(root string, dryRun bool) error {
	if p.Op == Delete {
		return nil
	}
	if p.Dest == "" {
		return errors.NewPlanError("no destination directory", "", errors.InvalidDestination, nil)
	}

	dest := p.Dest
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return errors.NewPlanError("cannot resolve destination", dest, errors.InvalidDestination, err)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return errors.NewPlanError("cannot resolve source directory", root, errors.InvalidDestination, err)
	}
	if absDest == absRoot {
		return errors.NewPlanError("destination is the scanned directory", dest, errors.InvalidDestination, nil)
	}

	info, statErr := os.Stat(dest)
	if statErr == nil && !info.IsDir() {
		return errors.NewPlanError("destination is not a directory", dest, errors.InvalidDestination, nil)
	}

	if dryRun {
		return nil
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.NewPlanError("cannot create destination", dest, errors.InvalidDestination, err)
	}

	// Probe writability up front so a read-only destination fails the run
	// as one setup error instead of once per file.
	probe, err := os.CreateTemp(dest, ".delrest-probe-*")
	if err != nil {
		return errors.NewPlanError("destination is not writable", dest, errors.DestinationNotWritable, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	return nil
}
