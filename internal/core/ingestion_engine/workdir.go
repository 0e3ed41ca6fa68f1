package ingestion_engine

import (
	"fmt"
	"os"
	"path/filepath"
)

// workDir is the scoped filesystem area for one sync run. Its path derives
// from the bot source ID, so a retried run lands on the same location; the
// constructor wipes any leftover directory to guarantee a clean slate.
type workDir struct {
	path string
}

func newWorkDir(root, botSourceID string) (*workDir, error) {
	path := filepath.Join(root, botSourceID)
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("clear stale working dir %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create working dir %s: %w", path, err)
	}
	return &workDir{path: path}, nil
}

func (w *workDir) Path() string {
	return w.path
}

// WriteDocument persists the fetched source bytes under the source's declared
// name and returns the full file path.
func (w *workDir) WriteDocument(name string, data []byte) (string, error) {
	filePath := filepath.Join(w.path, filepath.Base(name))
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return "", fmt.Errorf("write document %s: %w", filePath, err)
	}
	return filePath, nil
}

// Remove deletes the working directory and everything in it. The pipeline
// defers this right after creation so even an early stage failure cannot
// leak the directory.
func (w *workDir) Remove() error {
	return os.RemoveAll(w.path)
}
