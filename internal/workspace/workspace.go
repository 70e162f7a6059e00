// Package workspace holds the in-memory collection set for one session and
// writes every mutation through to the active persistence backend. It is
// driven from a single event loop; methods are not safe for concurrent use.
package workspace

import (
	"errors"

	"github.com/haim4shekel213/apiforge/internal/collection"
	"github.com/haim4shekel213/apiforge/internal/store"
)

type Workspace struct {
	store store.Store
	cols  []*collection.Collection
}

func New(s store.Store) *Workspace {
	return &Workspace{store: s}
}

// Load pulls the persisted set, seeding the sample collection when nothing
// can be recovered.
func (w *Workspace) Load() error {
	cols, err := w.store.List()
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		sample := collection.Sample()
		cols = []*collection.Collection{sample}
		if err := w.store.Save(sample); err != nil {
			return err
		}
	}
	w.cols = cols
	return nil
}

func (w *Workspace) Collections() []*collection.Collection {
	return w.cols
}

func (w *Workspace) ByID(id string) *collection.Collection {
	return byID(w.cols, id)
}

// AddCollection creates and immediately persists an empty collection.
func (w *Workspace) AddCollection(name string) (*collection.Collection, error) {
	col := collection.New(name)
	if err := w.store.Save(col); err != nil {
		return nil, err
	}
	w.cols = append(w.cols, col)
	return col, nil
}

// AddItem appends a new leaf or folder at the collection root (empty path)
// or inside the folder at path. An unresolved target is a silent no-op.
func (w *Workspace) AddItem(id string, path []string, item *collection.Item) error {
	return w.apply(id, collection.AppendItem(w.cols, id, path, item))
}

// ReplaceRequest swaps the request payload of the leaf at path.
// An unresolved target is a silent no-op.
func (w *Workspace) ReplaceRequest(id string, path []string, req *collection.Request) error {
	return w.apply(id, collection.ReplaceRequest(w.cols, id, path, req))
}

// RemoveCollection drops the collection by id, in memory and on disk.
func (w *Workspace) RemoveCollection(id string) error {
	col := byID(w.cols, id)
	if col == nil {
		return nil
	}
	w.cols = collection.RemoveCollection(w.cols, id)
	return w.store.Delete(col.Info.Name)
}

// Import parses and persists raw collection file contents, then adds the
// result to the working set (replacing any collection with the same id).
func (w *Workspace) Import(data []byte) (*collection.Collection, error) {
	col, err := w.store.Import(data)
	if err != nil {
		return nil, err
	}
	replaced := false
	for i, existing := range w.cols {
		if existing.Info.ID == col.Info.ID {
			w.cols[i] = col
			replaced = true
			break
		}
	}
	if !replaced {
		w.cols = append(w.cols, col)
	}
	return col, nil
}

// Export writes the one-off export file for the collection into dir.
func (w *Workspace) Export(dir, id string) (string, error) {
	col := byID(w.cols, id)
	if col == nil {
		return "", errors.New("collection not found")
	}
	return store.ExportFile(dir, col)
}

// SaveAll writes every collection independently: a failure on one does not
// block the others, and there is no rollback. The joined error reports the
// partial failures.
func (w *Workspace) SaveAll() error {
	var errs []error
	for _, col := range w.cols {
		if err := w.store.Save(col); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// apply swaps in the mutated set and write-throughs the changed collection.
// Mutations are pure, so an unchanged pointer means the target did not
// resolve and there is nothing to persist.
func (w *Workspace) apply(id string, next []*collection.Collection) error {
	before := byID(w.cols, id)
	after := byID(next, id)
	w.cols = next
	if after == nil || after == before {
		return nil
	}
	return w.store.Save(after)
}

func byID(cols []*collection.Collection, id string) *collection.Collection {
	for _, c := range cols {
		if c.Info.ID == id {
			return c
		}
	}
	return nil
}
