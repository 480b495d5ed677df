package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.pdf", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "c.pdf"), []byte("x"), 0644))

	found, err := Discover(dir, func(path string) bool {
		return strings.HasSuffix(path, ".pdf")
	})
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, "a.pdf", filepath.Base(found[0]))
	assert.Equal(t, "b.pdf", filepath.Base(found[1]))
	assert.Equal(t, "c.pdf", filepath.Base(found[2]))
}

func TestWriteUniqueAvoidsOverwrite(t *testing.T) {
	dir := t.TempDir()

	first, err := WriteUnique(dir, "out.xlsx", []byte("one"))
	require.NoError(t, err)
	assert.Equal(t, "out.xlsx", filepath.Base(first))

	second, err := WriteUnique(dir, "out.xlsx", []byte("two"))
	require.NoError(t, err)
	assert.Equal(t, "out_1.xlsx", filepath.Base(second))

	third, err := WriteUnique(dir, "out.xlsx", []byte("three"))
	require.NoError(t, err)
	assert.Equal(t, "out_2.xlsx", filepath.Base(third))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, EnsureDirectories(
		filepath.Join(base, "input"),
		filepath.Join(base, "output", "deep"),
	))

	info, err := os.Stat(filepath.Join(base, "output", "deep"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
