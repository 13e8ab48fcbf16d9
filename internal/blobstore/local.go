package blobstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps report bytes in a local content-addressed tree:
// <root>/objects/<digest[0:2]>/<digest>. Writing goes through a temp
// file plus rename so a crashed upload never leaves a partial object.
type LocalStore struct {
	root string
}

// NewLocalStore creates a local blob store rooted at root.
func NewLocalStore(root string) (*LocalStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("blob root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	for _, dir := range []string{abs, filepath.Join(abs, "objects"), filepath.Join(abs, "tmp")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &LocalStore{root: abs}, nil
}

// Put streams bytes, computes SHA-256, and stores content by digest.
// Storing the same content twice is a no-op that returns the same key.
func (s *LocalStore) Put(ctx context.Context, r io.Reader) (PutResult, error) {
	var zero PutResult
	if s == nil {
		return zero, fmt.Errorf("blob store is not configured")
	}
	if r == nil {
		return zero, fmt.Errorf("reader is required")
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	tmp, err := os.CreateTemp(filepath.Join(s.root, "tmp"), "put-*")
	if err != nil {
		return zero, err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	h := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, h), r)
	if err != nil {
		cleanup()
		return zero, err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return zero, err
	}

	digest := hex.EncodeToString(h.Sum(nil))
	dst := s.objectPath(digest)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		cleanup()
		return zero, err
	}

	if _, err := os.Stat(dst); err == nil {
		_ = os.Remove(tmpPath)
		return PutResult{SHA256: digest, SizeBytes: n, Key: digest}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		cleanup()
		return zero, err
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		// Concurrent Put of identical content may win the rename race.
		if _, statErr := os.Stat(dst); statErr == nil {
			_ = os.Remove(tmpPath)
			return PutResult{SHA256: digest, SizeBytes: n, Key: digest}, nil
		}
		cleanup()
		return zero, err
	}

	return PutResult{SHA256: digest, SizeBytes: n, Key: digest}, nil
}

// Open returns a reader for stored content by key.
func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if s == nil {
		return nil, fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.pathFromKey(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes a stored object. Missing files are ignored.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	if s == nil {
		return fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.pathFromKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

var digestKeyPattern = "0123456789abcdef"

func (s *LocalStore) objectPath(digest string) string {
	return filepath.Join(s.root, "objects", digest[0:2], digest)
}

func (s *LocalStore) pathFromKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if len(key) != sha256.Size*2 {
		return "", fmt.Errorf("invalid blob key")
	}
	for _, r := range key {
		if !strings.ContainsRune(digestKeyPattern, r) {
			return "", fmt.Errorf("invalid blob key")
		}
	}
	return s.objectPath(key), nil
}
