// Package scan lists the candidate files of a triage run.
package scan

import (
	"os"
	"path/filepath"

	"delrest/internal/errors"
	"delrest/internal/log"
)

// Files walks root recursively and returns every regular file, as paths
// relative to root, in walk order. Directories themselves are never
// returned; the classifier only ever sees files.
func Files(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot access directory %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf("not a directory: %s", root)
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read directory %s", root)
	}

	log.Debug("Found %d files under %s", len(files), root)
	return files, nil
}
