package ingestion_engine

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ImageBlock is one rendered image emitted by the partitioner into the
// working directory. Base64 is the payload persisted as vector content.
type ImageBlock struct {
	Name   string
	Data   []byte
	Base64 string
}

// DiscoverImages reads back the .jpg files the partitioner dumped into dir,
// sorted by file name for a deterministic order. The document itself and any
// non-image files are ignored.
func DiscoverImages(dir string) ([]ImageBlock, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read working dir %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".jpg" || ext == ".jpeg" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	blocks := make([]ImageBlock, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read image %s: %w", name, err)
		}
		blocks = append(blocks, ImageBlock{
			Name:   name,
			Data:   data,
			Base64: base64.StdEncoding.EncodeToString(data),
		})
	}
	return blocks, nil
}
