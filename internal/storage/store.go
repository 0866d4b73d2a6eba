package storage

import "context"

// BlobStore persists deliverable audio and returns a fetchable URL
type BlobStore interface {
	// Put stores data under name and returns its public URL
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)
}
