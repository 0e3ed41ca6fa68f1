package ingestion_engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkDirClearsStaleState(t *testing.T) {
	root := t.TempDir()
	stale := filepath.Join(root, "source-1", "leftover.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	wd, err := newWorkDir(root, "source-1")
	require.NoError(t, err)

	entries, err := os.ReadDir(wd.Path())
	require.NoError(t, err)
	assert.Empty(t, entries, "stale files must not survive a new run")
}

func TestWriteDocumentStripsPathComponents(t *testing.T) {
	wd, err := newWorkDir(t.TempDir(), "source-1")
	require.NoError(t, err)

	path, err := wd.WriteDocument("../../etc/report.pdf", []byte("content"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd.Path(), "report.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestRemoveDeletesEverything(t *testing.T) {
	wd, err := newWorkDir(t.TempDir(), "source-1")
	require.NoError(t, err)
	_, err = wd.WriteDocument("report.pdf", []byte("content"))
	require.NoError(t, err)

	require.NoError(t, wd.Remove())
	_, statErr := os.Stat(wd.Path())
	assert.True(t, os.IsNotExist(statErr))
}
