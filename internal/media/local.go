package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Ensure LocalStore implements Store
var _ Store = (*LocalStore)(nil)

// LocalStore keeps objects on the local filesystem, served by the HTTP server
// under a public base URL (e.g. "/media/"). Suitable for single-node
// deployments and tests; S3Store covers everything else.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates the root directory if needed. baseURL is prepended to
// object names to form public URLs.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Root returns the directory objects live under, for static file serving.
func (s *LocalStore) Root() string {
	return s.root
}

// List returns object names under the prefix, sorted by name.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(prefix))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list media under %q: %w", prefix, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, prefix+entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

// Put stores an object and returns its public URL.
func (s *LocalStore) Put(_ context.Context, name string, data []byte, _ string) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create media subdirectory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write media object %q: %w", name, err)
	}

	return s.URL(name), nil
}

// Get fetches an object's bytes by name.
func (s *LocalStore) Get(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to read media object %q: %w", name, err)
	}
	return data, nil
}

// URL returns the public URL for an object name.
func (s *LocalStore) URL(name string) string {
	return s.baseURL + "/" + name
}
