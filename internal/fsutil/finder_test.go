package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		return path
	}
	a := write("a.hcl")
	nested := write("sub/b.hcl")
	write("c.txt")

	t.Run("walks directories recursively", func(t *testing.T) {
		files, err := FindFilesByExtension([]string{dir}, ".hcl")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{a, nested}, files)
	})

	t.Run("accepts single files and deduplicates", func(t *testing.T) {
		files, err := FindFilesByExtension([]string{a, a, dir}, ".hcl")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{a, nested}, files)
	})

	t.Run("single file with the wrong extension yields nothing", func(t *testing.T) {
		files, err := FindFilesByExtension([]string{filepath.Join(dir, "c.txt")}, ".hcl")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing paths are skipped", func(t *testing.T) {
		files, err := FindFilesByExtension([]string{filepath.Join(dir, "nope")}, ".hcl")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("empty extension is rejected", func(t *testing.T) {
		_, err := FindFilesByExtension([]string{dir}, "")
		assert.Error(t, err)
	})
}
