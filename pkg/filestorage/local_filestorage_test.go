package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileStorageSaveAndDelete(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalFileStorage(base)
	require.NoError(t, err)

	stored, err := storage.Save(strings.NewReader("payload"), "report.PDF", "documents")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored, "documents/"))
	assert.True(t, strings.HasSuffix(stored, ".pdf"))

	onDisk := filepath.Join(base, filepath.FromSlash(stored))
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))

	// Delete accepts the public URL form too.
	require.NoError(t, storage.Delete("/uploads/"+stored))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// Deleting an already-missing file is not an error.
	require.NoError(t, storage.Delete(stored))
}

func TestLocalFileStorageSanitizesExtension(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalFileStorage(base)
	require.NoError(t, err)

	for _, name := range []string{"noext", "weird.p@th", "dotfile.", "x." + strings.Repeat("a", 20)} {
		stored, err := storage.Save(strings.NewReader("x"), name, "files")
		require.NoError(t, err, name)
		assert.Equal(t, stored, strings.TrimSuffix(stored, filepath.Ext(stored)), "extension should be dropped for %q", name)
	}

	stored, err := storage.Save(strings.NewReader("x"), "photo.JPeG", "files")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(stored, ".jpeg"))
}

func TestLocalFileStorageDeleteRejectsTraversal(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalFileStorage(base)
	require.NoError(t, err)

	outside := filepath.Join(filepath.Dir(base), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	err = storage.Delete("../victim.txt")
	require.NoError(t, err)

	// Traversal segments are stripped, never resolved outside the root.
	_, statErr := os.Stat(outside)
	assert.NoError(t, statErr)
}
