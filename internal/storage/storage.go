// Package storage provides the image store the shop handlers upload photos
// to. Upload failures are non-fatal by contract: a shop is saved without an
// image rather than aborting the whole mutation.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// ImageStore saves an uploaded image and returns its public URL.
type ImageStore interface {
	Save(filename string, r io.Reader) (string, error)
}

// LocalImageStore writes images under a directory served as static files.
type LocalImageStore struct {
	Dir     string
	BaseURL string
}

// NewLocalImageStore creates the upload directory if needed.
func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalImageStore{Dir: dir, BaseURL: baseURL}, nil
}

// Save stores the image under a random name, keeping the original
// extension, and returns the URL it will be served from.
func (s *LocalImageStore) Save(filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)
	dst := filepath.Join(s.Dir, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(s.BaseURL, name), nil
}
