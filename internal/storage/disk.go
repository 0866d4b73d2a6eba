package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore writes deliverables under a local directory and serves
// them from a configured base URL.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates a disk-backed blob store
func NewDiskStore(dir, baseURL string) *DiskStore {
	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Put stores data under name and returns its public URL
func (s *DiskStore) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	dst := filepath.Join(s.dir, filepath.FromSlash(name))

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", fmt.Errorf("failed to create deliverable directory: %w", err)
	}

	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write deliverable: %w", err)
	}

	return s.baseURL + "/" + name, nil
}
