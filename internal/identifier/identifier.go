// Package identifier defines the normalized form of a file identifier.
//
// Both the filename extractor and the keepfile parser normalize through
// this package, so "0016" extracted from IMG_0016.jpg and the keepfile
// line "16" compare equal.
package identifier

import "strings"

// Normalize returns the canonical form of an identifier: decimal strings
// lose their leading zeros ("0016" -> "16", "000" -> "0"); anything
// non-decimal is returned verbatim.
func Normalize(id string) string {
	if id == "" {
		return id
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return id
		}
	}
	trimmed := strings.TrimLeft(id, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// ParseDecimal validates that s is a plain decimal identifier and returns
// its normalized form. Keepfile lines must pass this check.
func ParseDecimal(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return Normalize(s), true
}
