package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/haim4shekel213/apiforge/internal/collection"
)

func writeCollection(t *testing.T, dir, name string) *collection.Collection {
	t.Helper()
	s := NewDirStore(dir)
	col := collection.New(name)
	if err := s.Save(col); err != nil {
		t.Fatalf("save %s: %v", name, err)
	}
	return col
}

func TestDirStoreSaveAndList(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "Alpha")
	writeCollection(t, dir, "Beta")

	path := filepath.Join(dir, "Alpha"+CollectionSuffix)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
	if !strings.HasPrefix(string(data), "{\n") {
		t.Fatalf("expected pretty-printed file")
	}

	cols, err := NewDirStore(dir).List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cols) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(cols))
	}
}

func TestDirStoreSaveSanitizesFilename(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "My APIs/v2")

	if _, err := os.Stat(filepath.Join(dir, "My_APIs_v2"+CollectionSuffix)); err != nil {
		t.Fatalf("expected sanitized filename: %v", err)
	}
}

func TestDirStoreListSkipsCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "Good one")
	writeCollection(t, dir, "Good two")
	corrupt := filepath.Join(dir, "broken"+CollectionSuffix)
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt entry: %v", err)
	}

	var logged []string
	s := NewDirStore(dir)
	s.logf = func(format string, args ...any) {
		logged = append(logged, format)
	}

	cols, err := s.List()
	if err != nil {
		t.Fatalf("one corrupt entry must not abort listing: %v", err)
	}
	if len(cols) != 2 {
		t.Fatalf("expected the 2 valid collections, got %d", len(cols))
	}
	if len(logged) != 1 {
		t.Fatalf("expected the skipped entry to be logged")
	}
}

func TestDirStoreListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "Only")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("write foreign file: %v", err)
	}

	cols, err := NewDirStore(dir).List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cols) != 1 {
		t.Fatalf("expected foreign files to be ignored, got %d entries", len(cols))
	}
}

func TestDirStoreDelete(t *testing.T) {
	dir := t.TempDir()
	writeCollection(t, dir, "Doomed")

	s := NewDirStore(dir)
	if err := s.Delete("Doomed"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Doomed"+CollectionSuffix)); !os.IsNotExist(err) {
		t.Fatalf("expected file removed")
	}

	if err := s.Delete("Doomed"); err == nil {
		t.Fatalf("deleting a missing collection must surface the error")
	}
}

func TestDirStoreImport(t *testing.T) {
	dir := t.TempDir()
	col := collection.New("Imported")
	data, err := collection.Marshal(col)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	s := NewDirStore(dir)
	imported, err := s.Import(data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.Info.ID != col.Info.ID {
		t.Fatalf("unexpected imported collection: %#v", imported.Info)
	}
	if _, err := os.Stat(filepath.Join(dir, "Imported"+CollectionSuffix)); err != nil {
		t.Fatalf("import must persist immediately: %v", err)
	}

	if _, err := s.Import([]byte("{broken")); err == nil {
		t.Fatalf("import must surface parse errors")
	}
}

func TestExportFile(t *testing.T) {
	dir := t.TempDir()
	col := collection.New("Exported APIs")
	path, err := ExportFile(dir, col)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "Exported_APIs"+ExportSuffix {
		t.Fatalf("unexpected export filename %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected export file: %v", err)
	}
}

func TestAvailable(t *testing.T) {
	dir := t.TempDir()
	if !Available(dir) {
		t.Fatalf("existing directory must be available")
	}
	if Available(filepath.Join(dir, "missing")) {
		t.Fatalf("missing directory must not be available")
	}
	if Available("") {
		t.Fatalf("empty path must not be available")
	}
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if Available(file) {
		t.Fatalf("plain file must not be available")
	}
}
