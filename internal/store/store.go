// Package store persists collection sets through one of two interchangeable
// backends: a flat key-value database or a directory of collection files.
// Exactly one backend is active per session and switching backends does not
// migrate data.
package store

import "github.com/haim4shekel213/apiforge/internal/collection"

const (
	// CollectionSuffix is the filename suffix of the directory backend.
	CollectionSuffix = ".collection.json"
	// ExportSuffix is the filename suffix of one-off exports.
	ExportSuffix = ".postman_collection.json"
)

// Fixed key-value keys. KeyWorkspace remembers the last granted workspace
// directory so the next launch can try to re-open it.
const (
	KeyCollections = "collections"
	KeyWorkspace   = "workspace"
)

type Store interface {
	// List enumerates the persisted collections.
	List() ([]*collection.Collection, error)
	// Save writes through one collection, creating or overwriting it.
	Save(col *collection.Collection) error
	// Delete removes the collection persisted under the given name.
	Delete(name string) error
	// Import parses raw file contents and immediately persists the result.
	Import(data []byte) (*collection.Collection, error)
}
