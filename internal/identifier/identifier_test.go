package identifier_test

import (
	"testing"

	"delrest/internal/identifier"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"16", "16"},
		{"0016", "16"},
		{"0", "0"},
		{"000", "0"},
		{"10", "10"},
		{"", ""},
		{"abc", "abc"},   // non-decimal left verbatim
		{"0x10", "0x10"}, // not decimal, no trimming
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, identifier.Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestParseDecimal(t *testing.T) {
	id, ok := identifier.ParseDecimal("0016")
	assert.True(t, ok)
	assert.Equal(t, "16", id)

	for _, bad := range []string{"", "abc", "12x", "-4", "1.5", " 12"} {
		_, ok := identifier.ParseDecimal(bad)
		assert.False(t, ok, "ParseDecimal(%q) should fail", bad)
	}
}
