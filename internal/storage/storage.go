package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// BlobStorage is the byte-addressable store shared by the intake and
// streaming pipelines. Paths returned by Write are opaque to callers and
// are the only way to address a blob afterwards.
type BlobStorage interface {
	Write(key string, r io.Reader) (string, error)
	Stat(path string) (int64, error)
	OpenRange(path string, start, end int64) (io.ReadCloser, error)
	Delete(path string) error
}

// LocalStorage keeps blobs as plain files under a base directory.
type LocalStorage struct {
	BaseDir string
}

var _ BlobStorage = (*LocalStorage)(nil)

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{BaseDir: baseDir}, nil
}

// MakeKey builds a collision-resistant storage key for an uploaded file.
// Uniqueness comes from the random suffix; the original filename is kept
// as a readable tail. Client-supplied directory components are stripped.
func MakeKey(filename string) string {
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), filepath.Base(filename))
}

func (s *LocalStorage) Write(key string, r io.Reader) (string, error) {
	path := filepath.Join(s.BaseDir, key)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create blob file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	// A close error means the blob may be truncated; treat it as a failed
	// write and clean up.
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}

	return path, nil
}

func (s *LocalStorage) Stat(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// OpenRange opens a reader over the inclusive byte window [start, end] of
// the blob at path. The caller owns the returned reader and must close it.
func (s *LocalStorage) OpenRange(path string, start, end int64) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(start, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	return &rangeReader{f: f, remaining: end - start + 1}, nil
}

func (s *LocalStorage) Delete(path string) error {
	return os.Remove(path)
}

// rangeReader stops after the window's byte budget so a ranged response
// can never read past its declared end.
type rangeReader struct {
	f         *os.File
	remaining int64
}

func (r *rangeReader) Read(p []byte) (int, error) {
	if r.remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > r.remaining {
		p = p[:r.remaining]
	}
	n, err := r.f.Read(p)
	r.remaining -= int64(n)
	return n, err
}

func (r *rangeReader) Close() error {
	return r.f.Close()
}
