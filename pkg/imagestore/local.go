package imagestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps uploaded images on the local filesystem under a single
// directory and serves them through a static mount.
type LocalStore struct {
	dir     string
	baseURL string
}

// Config holds the local store settings.
type Config struct {
	Dir     string // directory objects are written to
	BaseURL string // public URL prefix the directory is mounted at, e.g. "/uploads"
}

// NewLocalStore creates the upload directory if needed and returns a store
// writing into it.
func NewLocalStore(cfg Config) (*LocalStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", cfg.Dir, err)
	}
	return &LocalStore{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// Save writes the object under a random name, keeping the original extension.
func (s *LocalStore) Save(filename string, r io.Reader) (Image, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return Image{}, fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return Image{}, fmt.Errorf("failed to write image file: %w", err)
	}

	return Image{
		URL: s.baseURL + "/" + name,
		ID:  name,
	}, nil
}

// Delete removes the object. A missing object is not an error; deletions are
// best-effort cleanup.
func (s *LocalStore) Delete(id string) error {
	if id == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image %s: %w", id, err)
	}
	return nil
}
