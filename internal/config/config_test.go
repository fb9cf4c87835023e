package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"delrest/internal/config"
	"delrest/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
name: test_cfg
extensions:
  - jpg
  - .PNG
formats:
  - 'IMG_(\d+)\.jpg'
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test_cfg", cfg.Name)
	// Extensions are lowercased and stored without the leading dot
	assert.Equal(t, []string{"jpg", "png"}, cfg.Extensions)
	require.Len(t, cfg.Formats, 1)
	assert.Equal(t, `IMG_(\d+)\.jpg`, cfg.Formats[0].String())
}

func TestLoadMissingConfigIsFatal(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestLoadMalformedConfigIsFatal(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "name: [unclosed")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestFormatRequiresExactlyOneCaptureGroup(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"one group", `IMG_(\d+)\.jpg`, false},
		{"no groups", `IMG_\d+\.jpg`, true},
		{"two groups", `(IMG)_(\d+)\.jpg`, true},
		{"non-capturing extra group", `(?:IMG|DSC)_(\d+)\.jpg`, false},
		{"invalid regex", `IMG_(\d+`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.CompileFormat(tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsConfigError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatMatchesEntireName(t *testing.T) {
	format, err := config.CompileFormat(`IMG_(\d+)\.jpg`)
	require.NoError(t, err)

	id, ok := format.Extract("IMG_0017.jpg")
	assert.True(t, ok)
	assert.Equal(t, "0017", id)

	// A partial match must not count
	_, ok = format.Extract("XIMG_0017.jpg")
	assert.False(t, ok)
	_, ok = format.Extract("IMG_0017.jpg.bak")
	assert.False(t, ok)
}

func TestFormatEmptyCaptureIsNoMatch(t *testing.T) {
	format, err := config.CompileFormat(`IMG_(\d*)\.jpg`)
	require.NoError(t, err)

	_, ok := format.Extract("IMG_.jpg")
	assert.False(t, ok, "an empty capture group should be treated as no match")
}

func TestHasExtension(t *testing.T) {
	cfg, err := config.Parse([]byte(`
name: ext
extensions: [jpg, png]
formats: ['(\d+)']
`), "test")
	require.NoError(t, err)

	assert.True(t, cfg.HasExtension("a.jpg"))
	assert.True(t, cfg.HasExtension("a.JPG"), "extension compare is case-insensitive")
	assert.True(t, cfg.HasExtension("a.png"))
	assert.False(t, cfg.HasExtension("a.txt"))
	assert.False(t, cfg.HasExtension("jpg"), "a file without an extension never matches a non-empty list")
}

func TestEmptyExtensionListAcceptsEverything(t *testing.T) {
	cfg, err := config.Parse([]byte(`
name: all
formats: ['(\d+)']
`), "test")
	require.NoError(t, err)

	assert.True(t, cfg.HasExtension("anything.xyz"))
	assert.True(t, cfg.HasExtension("no_extension"))
}

func TestExcludeGlobs(t *testing.T) {
	cfg, err := config.Parse([]byte(`
name: excl
formats: ['(\d+)']
exclude: ['.*', 'Thumbs.db']
`), "test")
	require.NoError(t, err)

	assert.True(t, cfg.Excluded(".DS_Store"))
	assert.True(t, cfg.Excluded("Thumbs.db"))
	assert.False(t, cfg.Excluded("IMG_0001.jpg"))
}

func TestDiscoverFallsBackToDefault(t *testing.T) {
	cfg := config.Discover(t.TempDir())
	require.NotNil(t, cfg)
	assert.Equal(t, "default", cfg.Name)
	assert.NotEmpty(t, cfg.Formats)
}

func TestDiscoverPrefersDirectoryConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
name: local
formats: ['(\d+)']
`)

	cfg := config.Discover(dir)
	require.NotNil(t, cfg)
	assert.Equal(t, "local", cfg.Name)
}

func TestStringRoundTrips(t *testing.T) {
	cfg, err := config.Parse([]byte(`
name: printable
extensions: [jpg]
formats: ['IMG_(\d+)\.jpg']
`), "test")
	require.NoError(t, err)

	printed := cfg.String()
	assert.Contains(t, printed, "printable")
	assert.Contains(t, printed, `IMG_(\d+)\.jpg`)

	reparsed, err := config.Parse([]byte(printed), "reparse")
	require.NoError(t, err)
	assert.Equal(t, cfg.Name, reparsed.Name)
	assert.Equal(t, cfg.Extensions, reparsed.Extensions)
}
