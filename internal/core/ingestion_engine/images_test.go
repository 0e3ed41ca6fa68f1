package ingestion_engine

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverImagesSortedByName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "figure-b.jpg"), []byte("second"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "figure-a.jpg"), []byte("first"), 0o644))

	blocks, err := DiscoverImages(dir)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "figure-a.jpg", blocks[0].Name)
	assert.Equal(t, "figure-b.jpg", blocks[1].Name)
	assert.Equal(t, []byte("first"), blocks[0].Data)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("first")), blocks[0].Base64)
}

func TestDiscoverImagesIgnoresNonImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.pdf"), []byte("doc"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("txt"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.JPEG"), []byte("pic"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.jpg"), 0o755))

	blocks, err := DiscoverImages(dir)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "photo.JPEG", blocks[0].Name)
}

func TestDiscoverImagesEmptyDir(t *testing.T) {
	blocks, err := DiscoverImages(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestDiscoverImagesMissingDir(t *testing.T) {
	_, err := DiscoverImages(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
}
