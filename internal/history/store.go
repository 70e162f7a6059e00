package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haim4shekel213/apiforge/internal/errdef"
	"github.com/haim4shekel213/apiforge/internal/httpclient"
)

// Entry records one request execution. The response body is reduced to a
// snippet; full responses are ephemeral and never persisted.
type Entry struct {
	ID           string        `json:"id"`
	ExecutedAt   time.Time     `json:"executedAt"`
	CollectionID string        `json:"collectionId"`
	ItemPath     string        `json:"itemPath"`
	Method       string        `json:"method"`
	URL          string        `json:"url"`
	StatusCode   int           `json:"statusCode"`
	StatusText   string        `json:"statusText"`
	Duration     time.Duration `json:"duration"`
	Size         int64         `json:"sizeBytes"`
	BodySnippet  string        `json:"bodySnippet,omitempty"`
}

const snippetLimit = 512

// NewEntry builds an entry from an executed request and its normalized
// response. path is the item's location inside the collection tree.
func NewEntry(collectionID string, path []string, method, url string, resp *httpclient.Response) Entry {
	snippet := string(resp.Raw)
	if len(snippet) > snippetLimit {
		snippet = snippet[:snippetLimit]
	}
	return Entry{
		ID:           uuid.NewString(),
		ExecutedAt:   time.Now(),
		CollectionID: collectionID,
		ItemPath:     strings.Join(path, "/"),
		Method:       method,
		URL:          url,
		StatusCode:   resp.StatusCode,
		StatusText:   resp.StatusText,
		Duration:     resp.Duration,
		Size:         resp.Size,
		BodySnippet:  snippet,
	}
}

type Store struct {
	path       string
	maxEntries int
	entries    []Entry
	mu         sync.RWMutex
	loaded     bool
}

func NewStore(path string, maxEntries int) *Store {
	if maxEntries <= 0 {
		maxEntries = 200
	}
	return &Store{path: path, maxEntries: maxEntries}
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLoadedLocked()
}

func (s *Store) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return err
	}

	s.entries = append([]Entry{entry}, s.entries...)
	s.sortEntriesLocked()
	if len(s.entries) > s.maxEntries {
		s.entries = s.entries[:s.maxEntries]
	}

	return s.persist()
}

func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copies := make([]Entry, len(s.entries))
	copy(copies, s.entries)
	return copies
}

// ByItem returns the entries recorded for one item of one collection,
// newest first.
func (s *Store) ByItem(collectionID string, path []string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	joined := strings.Join(path, "/")
	var matched []Entry
	for _, entry := range s.entries {
		if entry.CollectionID == collectionID && entry.ItemPath == joined {
			matched = append(matched, entry)
		}
	}
	return matched
}

func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoadedLocked(); err != nil {
		return false, err
	}

	idx := -1
	for i, entry := range s.entries {
		if entry.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	copy(s.entries[idx:], s.entries[idx+1:])
	s.entries = s.entries[:len(s.entries)-1]

	if err := s.persist(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create history dir")
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "encode history")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write history tmp")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "replace history file")
	}
	return nil
}

func (s *Store) sortEntriesLocked() {
	if len(s.entries) < 2 {
		return
	}
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].ExecutedAt.After(s.entries[j].ExecutedAt)
	})
}

func (s *Store) ensureLoadedLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.entries = []Entry{}
			s.loaded = true
			return nil
		}
		return errdef.Wrap(errdef.CodeHistory, err, "read history")
	}

	if len(data) == 0 {
		s.entries = []Entry{}
		s.loaded = true
		return nil
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "parse history")
	}

	s.sortEntriesLocked()
	s.loaded = true
	return nil
}
