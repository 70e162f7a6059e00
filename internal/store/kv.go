package store

import (
	"database/sql"
	"encoding/json"
	"log"

	_ "modernc.org/sqlite"

	"github.com/haim4shekel213/apiforge/internal/collection"
	"github.com/haim4shekel213/apiforge/internal/errdef"
)

// KV is a flat string-keyed store backed by an embedded SQLite database, the
// stand-in for browser local storage. Put and Get follow local-storage error
// semantics: failures are logged and swallowed, never surfaced to the caller.
type KV struct {
	db   *sql.DB
	logf func(format string, args ...any)
}

func OpenKV(path string) (*KV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeStorage, err, "open key-value store")
	}
	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
	); err != nil {
		_ = db.Close()
		return nil, errdef.Wrap(errdef.CodeStorage, err, "init key-value schema")
	}
	return &KV{db: db, logf: log.Printf}, nil
}

func (s *KV) Close() error {
	return s.db.Close()
}

// Put stores value under key. A write failure is a logged no-op.
func (s *KV) Put(key, value string) {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		s.logf("kv: write %q failed: %v", key, err)
	}
}

// Get returns the value stored under key, or def when the key is absent or
// the read fails.
func (s *KV) Get(key, def string) string {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			s.logf("kv: read %q failed: %v", key, err)
		}
		return def
	}
	return value
}

// KVStore keeps the whole collection set serialized under a single fixed key.
type KVStore struct {
	kv *KV
}

func NewKVStore(kv *KV) *KVStore {
	return &KVStore{kv: kv}
}

// List never fails: an unreadable or unparsable set degrades to empty,
// mirroring the key-value load-with-default contract.
func (s *KVStore) List() ([]*collection.Collection, error) {
	raw := s.kv.Get(KeyCollections, "[]")
	var cols []*collection.Collection
	if err := json.Unmarshal([]byte(raw), &cols); err != nil {
		s.kv.logf("kv: stored collection set unparsable, starting empty: %v", err)
		return nil, nil
	}
	return cols, nil
}

func (s *KVStore) Save(col *collection.Collection) error {
	cols, _ := s.List()
	replaced := false
	for i, existing := range cols {
		if existing.Info.ID == col.Info.ID {
			cols[i] = col
			replaced = true
			break
		}
	}
	if !replaced {
		cols = append(cols, col)
	}
	return s.putAll(cols)
}

func (s *KVStore) Delete(name string) error {
	cols, _ := s.List()
	kept := cols[:0]
	for _, c := range cols {
		if c.Info.Name != name {
			kept = append(kept, c)
		}
	}
	return s.putAll(kept)
}

func (s *KVStore) Import(data []byte) (*collection.Collection, error) {
	col, err := collection.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	if err := s.Save(col); err != nil {
		return nil, err
	}
	return col, nil
}

func (s *KVStore) putAll(cols []*collection.Collection) error {
	if cols == nil {
		cols = []*collection.Collection{}
	}
	data, err := json.Marshal(cols)
	if err != nil {
		s.kv.logf("kv: encode collection set failed: %v", err)
		return nil
	}
	s.kv.Put(KeyCollections, string(data))
	return nil
}

// RememberWorkspace records the directory granted for the directory backend.
func (s *KV) RememberWorkspace(dir string) {
	s.Put(KeyWorkspace, dir)
}

func (s *KV) LastWorkspace() string {
	return s.Get(KeyWorkspace, "")
}
