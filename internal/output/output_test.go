package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/mdsplit/internal/chunker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	files := []chunker.File{
		{Title: "doc-part1.md", Content: "one", Index: 1},
		{Title: "doc-part2.md", Content: "two", Index: 2},
		{Title: "doc-index.md", Content: "index", Index: 0},
	}

	paths, err := WriteFiles(dir, files)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for i, p := range paths {
		assert.Equal(t, filepath.Join(dir, files[i].Title), p)
		got, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, files[i].Content, string(got))

		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm()&0o644)
	}
}

func TestWriteFiles_Overwrites(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteFiles(dir, []chunker.File{{Title: "a.md", Content: "old"}})
	require.NoError(t, err)
	_, err = WriteFiles(dir, []chunker.File{{Title: "a.md", Content: "new"}})
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestWriteFiles_RejectsPathNames(t *testing.T) {
	_, err := WriteFiles(t.TempDir(), []chunker.File{{Title: "../escape.md"}})
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "../escape.md", we.Path)
}

func TestWriteFiles_UnwritableDir(t *testing.T) {
	// A regular file where the directory should be.
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := WriteFiles(filepath.Join(blocker, "sub"), []chunker.File{{Title: "a.md"}})
	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.True(t, errors.Unwrap(err) != nil)
}
