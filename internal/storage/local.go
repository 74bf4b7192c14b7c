package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes objects under a root directory that the HTTP server
// serves statically. PublicURL joins the configured base URL with the key.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates a store rooted at root, publishing under baseURL
// (e.g. "http://localhost:8080/media").
func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Put writes the object's bytes under key, creating parent directories as
// needed.
func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create object file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}

	return nil
}

// PublicURL returns the stable URL the stored object is served from.
func (s *LocalStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

// Root returns the directory objects are written under.
func (s *LocalStore) Root() string {
	return s.root
}
