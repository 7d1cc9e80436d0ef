// Package media abstracts the object store holding uploaded selfies and the
// pool of group photos. Images are keyed by name under a prefix and publicly
// readable by URL.
package media

import "context"

// Prefixes within the store.
const (
	// PoolPrefix holds the admin-provided images allocated to groups.
	PoolPrefix = "auto/"

	// SelfiePrefix holds user selfies captured at registration.
	SelfiePrefix = "selfies/"
)

// Store is the object-store boundary.
type Store interface {
	// List returns the object names under the given prefix, sorted by name.
	List(ctx context.Context, prefix string) ([]string, error)

	// Put stores an object and returns its public URL.
	Put(ctx context.Context, name string, data []byte, contentType string) (string, error)

	// Get fetches an object's bytes by name.
	Get(ctx context.Context, name string) ([]byte, error)

	// URL returns the public URL for an object name.
	URL(name string) string
}
