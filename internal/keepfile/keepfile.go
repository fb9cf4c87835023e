// Package keepfile parses the user-supplied list of identifiers naming the
// files to retain. Parsing is fail-fast: a keepfile with any invalid line
// aborts the whole run before any file is touched.
package keepfile

import (
	"bufio"
	"io"
	"os"
	"strings"

	"delrest/internal/errors"
	"delrest/internal/identifier"
)

// KeepSet is the immutable set of identifiers to retain, built once per
// run. Membership tests are O(1). It is safe for concurrent readers.
type KeepSet struct {
	ids   map[string]struct{}
	order []string
}

// Load reads and parses the keepfile at path.
func Load(path string) (*KeepSet, error) {
	f, err := os.Open(path)
	if err != nil {
		kind := errors.KeepfileNotFound
		return nil, errors.NewKeepfileError("cannot read keepfile", path, kind, err)
	}
	defer f.Close()
	return parse(f, path)
}

// Parse parses keepfile contents: one identifier per non-blank line, order
// and blank-line placement irrelevant, duplicates collapsed silently.
func Parse(r io.Reader) (*KeepSet, error) {
	return parse(r, "keepfile")
}

func parse(r io.Reader, path string) (*KeepSet, error) {
	set := &KeepSet{ids: make(map[string]struct{})}
	var bad []errors.BadLine

	scanner := bufio.NewScanner(r)
	for num := 1; scanner.Scan(); num++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		id, ok := identifier.ParseDecimal(line)
		if !ok {
			bad = append(bad, errors.BadLine{Number: num, Content: line})
			continue
		}
		set.add(id)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewKeepfileError("cannot read keepfile", path, errors.KeepfileNotFound, err)
	}
	if len(bad) > 0 {
		return nil, errors.NewKeepfileFormatError(path, bad)
	}
	return set, nil
}

func (s *KeepSet) add(id string) {
	if _, dup := s.ids[id]; dup {
		return
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
}

// Contains reports whether the normalized identifier is in the set.
func (s *KeepSet) Contains(id string) bool {
	_, ok := s.ids[identifier.Normalize(id)]
	return ok
}

// Len returns the number of distinct identifiers.
func (s *KeepSet) Len() int {
	return len(s.ids)
}

// IDs returns the identifiers in the order they first appeared.
func (s *KeepSet) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
