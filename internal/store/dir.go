package store

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/haim4shekel213/apiforge/internal/collection"
	"github.com/haim4shekel213/apiforge/internal/errdef"
)

// DirStore persists each collection as its own pretty-printed JSON file,
// named after the sanitized collection name plus CollectionSuffix, inside a
// user-granted directory. Unlike the key-value backend, write and delete
// failures propagate to the caller.
type DirStore struct {
	dir  string
	logf func(format string, args ...any)
}

func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir, logf: log.Printf}
}

func (s *DirStore) Dir() string {
	return s.dir
}

// Available reports whether dir can back a DirStore. It is the capability
// check gating backend selection: when it fails, the key-value backend is
// the sole option.
func Available(dir string) bool {
	if strings.TrimSpace(dir) == "" {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// List reads every *.collection.json entry. A single corrupt or unreadable
// entry is logged and skipped; it never aborts enumeration of the rest.
func (s *DirStore) List() ([]*collection.Collection, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "list workspace %q", s.dir)
	}

	var cols []*collection.Collection
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), CollectionSuffix) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.logf("store: skip %s: %v", entry.Name(), err)
			continue
		}
		col, err := collection.Unmarshal(data)
		if err != nil {
			s.logf("store: skip %s: %v", entry.Name(), err)
			continue
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func (s *DirStore) Save(col *collection.Collection) error {
	data, err := collection.Marshal(col)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, collection.SanitizeName(col.Info.Name)+CollectionSuffix)
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write collection %q", col.Info.Name)
	}
	return nil
}

func (s *DirStore) Delete(name string) error {
	path := filepath.Join(s.dir, collection.SanitizeName(name)+CollectionSuffix)
	if err := os.Remove(path); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "delete collection %q", name)
	}
	return nil
}

func (s *DirStore) Import(data []byte) (*collection.Collection, error) {
	col, err := collection.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if err := s.Save(col); err != nil {
		return nil, err
	}
	return col, nil
}

// ExportFile writes the one-off export form of a collection into dir and
// returns the written path.
func ExportFile(dir string, col *collection.Collection) (string, error) {
	data, err := collection.Marshal(col)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, collection.SanitizeName(col.Info.Name)+ExportSuffix)
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return "", errdef.Wrap(errdef.CodeFilesystem, err, "export collection %q", col.Info.Name)
	}
	return path, nil
}

// write to temp file then rename so readers never see partial/corrupt data.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".apiforge-*.tmp")
	if err != nil {
		return err
	}

	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		closeErr := tmp.Close()
		if closeErr != nil {
			return errors.Join(err, closeErr)
		}
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		closeErr := tmp.Close()
		if closeErr != nil {
			return errors.Join(err, closeErr)
		}
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
