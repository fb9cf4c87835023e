package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"delrest/internal/scan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "IMG_0001.jpg"), []byte("a"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "IMG_0002.jpg"), []byte("b"), 0644))

	files, err := scan.Files(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"IMG_0001.jpg", filepath.Join("sub", "IMG_0002.jpg")}, files)
}

func TestFilesSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty", "nested"), 0755))

	files, err := scan.Files(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFilesRejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := scan.Files(file)
	assert.Error(t, err)

	_, err = scan.Files(filepath.Join(dir, "absent"))
	assert.Error(t, err)
}
