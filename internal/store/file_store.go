package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"wtime/internal/domain"
)

const blobExt = ".dat"

// FileByteStore keeps one file per key under dir.
type FileByteStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileByteStore returns a FileByteStore rooted at dir.
func NewFileByteStore(dir string) *FileByteStore {
	return &FileByteStore{dir: dir}
}

// Get reads the blob for key.
func (s *FileByteStore) Get(ctx context.Context, key domain.StorageKey) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return readFile(s.path(key))
}

// Set atomically replaces the blob for key.
func (s *FileByteStore) Set(ctx context.Context, key domain.StorageKey, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	return writeFile(s.path(key), value, 0o600)
}

// Delete removes the blob for key.
func (s *FileByteStore) Delete(ctx context.Context, key domain.StorageKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return removeFile(s.path(key))
}

// Path returns the file backing key.
func (s *FileByteStore) Path(key domain.StorageKey) string { return s.path(key) }

func (s *FileByteStore) path(key domain.StorageKey) string {
	return filepath.Join(s.dir, fileName(key))
}

// fileName maps a key onto a portable file name.
func fileName(key domain.StorageKey) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, key.String())
	return name + blobExt
}

// Compile-time assertion that FileByteStore implements domain.ByteStore.
var _ domain.ByteStore = (*FileByteStore)(nil)
