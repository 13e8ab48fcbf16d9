package blobstore

import (
	"context"
	"io"
)

// PutResult describes one persisted report payload.
type PutResult struct {
	SHA256    string
	SizeBytes int64
	Key       string
}

// BlobStore is the byte-storage abstraction behind report uploads.
// Keys are server-derived content digests; user-supplied names never
// reach a BlobStore implementation.
type BlobStore interface {
	Put(ctx context.Context, r io.Reader) (PutResult, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
