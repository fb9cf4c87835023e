// Package classify labels filesystem entries for the triage run. A file is
// Keep when its extracted identifier appears in the keep-set, Act when it
// matches the configured format but is not kept, and Skip when it does not
// match the configuration at all. Skip files are never touched by any
// operation.
package classify

import (
	"path/filepath"

	"delrest/internal/config"
	"delrest/internal/identifier"
	"delrest/internal/keepfile"
)

// Label is the terminal classification of a single file.
type Label int

const (
	// Skip marks files that match no configured format or extension.
	Skip Label = iota
	// Keep marks files whose identifier is listed in the keepfile.
	Keep
	// Act marks files that match the configuration but are not kept;
	// they are the only targets of the resolved operation.
	Act
)

// String returns the lower-case label name.
func (l Label) String() string {
	switch l {
	case Keep:
		return "keep"
	case Act:
		return "act"
	default:
		return "skip"
	}
}

// Result is the classification of one filesystem entry.
type Result struct {
	// Path is the entry's path relative to the scanned directory.
	Path string
	// ID is the normalized extracted identifier, empty when Label is Skip.
	ID string
	// Label is the terminal state for this file.
	Label Label
}

// Extract applies the configured formats to a base name and returns the
// normalized identifier.
//
// The extension filter runs first: if the config lists extensions and the
// name carries none of them, no pattern is attempted. Formats are tried in
// declared order and the first one matching the entire name with a
// non-empty capture wins.
func Extract(name string, cfg *config.Config) (string, bool) {
	if !cfg.HasExtension(name) {
		return "", false
	}
	for _, format := range cfg.Formats {
		if id, ok := format.Extract(name); ok {
			return identifier.Normalize(id), true
		}
	}
	return "", false
}

// File classifies a single entry. The base name is the final path
// component of relPath. It is a pure function of its inputs; the shared
// config and keep-set are read-only, so classification may run from any
// number of goroutines.
func File(relPath, base string, cfg *config.Config, keep *keepfile.KeepSet) Result {
	if cfg.Excluded(base) {
		return Result{Path: relPath, Label: Skip}
	}
	id, ok := Extract(base, cfg)
	if !ok {
		return Result{Path: relPath, Label: Skip}
	}
	if keep.Contains(id) {
		return Result{Path: relPath, ID: id, Label: Keep}
	}
	return Result{Path: relPath, ID: id, Label: Act}
}

// Partition classifies every entry, preserving input order.
func Partition(relPaths []string, cfg *config.Config, keep *keepfile.KeepSet) []Result {
	results := make([]Result, 0, len(relPaths))
	for _, rel := range relPaths {
		results = append(results, File(rel, filepath.Base(rel), cfg, keep))
	}
	return results
}

// Counts tallies results per label.
type Counts struct {
	Keep int
	Act  int
	Skip int
}

// Count tallies the labels of a result set.
func Count(results []Result) Counts {
	var c Counts
	for _, r := range results {
		switch r.Label {
		case Keep:
			c.Keep++
		case Act:
			c.Act++
		default:
			c.Skip++
		}
	}
	return c
}
