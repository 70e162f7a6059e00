package collection

import (
	"reflect"
	"testing"
)

func deepCopySet(t *testing.T, cols []*Collection) []*Collection {
	t.Helper()
	out := make([]*Collection, len(cols))
	for i, c := range cols {
		data, err := Marshal(c)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		clone, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		out[i] = clone
	}
	return out
}

func TestAppendItemAtRoot(t *testing.T) {
	col := testTree()
	cols := []*Collection{col}
	snapshot := deepCopySet(t, cols)

	next := AppendItem(cols, col.Info.ID, nil, NewRequest("health"))
	if len(next[0].Items) != 3 || next[0].Items[2].Name != "health" {
		t.Fatalf("expected appended root item")
	}
	if !reflect.DeepEqual(cols, snapshot) {
		t.Fatalf("input set was mutated")
	}
}

func TestAppendItemInFolder(t *testing.T) {
	col := testTree()
	cols := []*Collection{col}

	next := AppendItem(cols, col.Info.ID, []string{"api", "v1"}, NewRequest("orders"))
	folder, ok := FindItemByPath(next[0], []string{"api", "v1"})
	if !ok || len(folder.Items) != 2 || folder.Items[1].Name != "orders" {
		t.Fatalf("expected item appended inside folder")
	}

	// the original tree keeps its shape
	folder, _ = FindItemByPath(col, []string{"api", "v1"})
	if len(folder.Items) != 1 {
		t.Fatalf("input folder was mutated")
	}

	// off-spine siblings are shared, not copied
	if next[0].Items[1] != col.Items[1] {
		t.Fatalf("expected untouched sibling to be shared")
	}
}

func TestAppendItemUnresolvedPathIsNoOp(t *testing.T) {
	col := testTree()
	cols := []*Collection{col}
	snapshot := deepCopySet(t, cols)

	next := AppendItem(cols, col.Info.ID, []string{"api", "missing"}, NewRequest("x"))
	if !reflect.DeepEqual(next, snapshot) {
		t.Fatalf("unresolved folder path must leave the set unchanged")
	}

	next = AppendItem(cols, col.Info.ID, []string{"ping"}, NewRequest("x"))
	if !reflect.DeepEqual(next, snapshot) {
		t.Fatalf("leaf target must leave the set unchanged")
	}

	next = AppendItem(cols, "no-such-id", nil, NewRequest("x"))
	if !reflect.DeepEqual(next, snapshot) {
		t.Fatalf("unknown collection id must leave the set unchanged")
	}
}

func TestReplaceRequest(t *testing.T) {
	col := testTree()
	cols := []*Collection{col}

	updated := NewRequest("users").Request
	updated.Method = "POST"
	updated.URL = URLFromString("https://example.com/users")

	next := ReplaceRequest(cols, col.Info.ID, []string{"api", "v1", "users"}, updated)
	it, _ := FindItemByPath(next[0], []string{"api", "v1", "users"})
	if it.Request.Method != "POST" {
		t.Fatalf("expected replaced request payload")
	}

	it, _ = FindItemByPath(col, []string{"api", "v1", "users"})
	if it.Request.Method != "GET" {
		t.Fatalf("input request was mutated")
	}
}

func TestReplaceRequestOnFolderIsNoOp(t *testing.T) {
	col := testTree()
	cols := []*Collection{col}
	snapshot := deepCopySet(t, cols)

	next := ReplaceRequest(cols, col.Info.ID, []string{"api", "v1"}, NewRequest("x").Request)
	if !reflect.DeepEqual(next, snapshot) {
		t.Fatalf("folder target must leave the set unchanged")
	}
}

func TestRemoveCollection(t *testing.T) {
	a, b, c := New("a"), New("b"), New("c")
	cols := []*Collection{a, b, c}

	next := RemoveCollection(cols, b.Info.ID)
	if len(next) != 2 || next[0] != a || next[1] != c {
		t.Fatalf("expected exactly b removed with order preserved")
	}
	if len(cols) != 3 {
		t.Fatalf("input set was mutated")
	}

	same := RemoveCollection(cols, "missing")
	if !reflect.DeepEqual(same, cols) {
		t.Fatalf("unknown id must be a no-op")
	}
}

func TestPassThroughCollectionsShareStructure(t *testing.T) {
	a := testTree()
	b := New("other")
	cols := []*Collection{a, b}

	next := AppendItem(cols, a.Info.ID, nil, NewFolder("f"))
	if next[1] != b {
		t.Fatalf("non-target collections must pass through by reference")
	}
}
