package collection

// Mutations never touch their input. The targeted collection gets a fresh
// spine from the root down to the changed node; siblings and every other
// collection are shared by reference. Targets that do not resolve are silent
// no-ops returning the input set unchanged.

// AppendItem adds item at the collection root when path is empty, or inside
// the folder located by path.
func AppendItem(cols []*Collection, id string, path []string, item *Item) []*Collection {
	idx := indexByID(cols, id)
	if idx < 0 {
		return cols
	}

	col := cols[idx]
	if len(path) == 0 {
		clone := *col
		clone.Items = append(append([]*Item{}, col.Items...), item)
		return replaceAt(cols, idx, &clone)
	}

	clone, target, ok := cloneSpine(col, path)
	if !ok || !target.IsFolder() {
		return cols
	}
	target.Items = append(target.Items, item)
	return replaceAt(cols, idx, clone)
}

// ReplaceRequest swaps the request payload of the leaf located by path.
func ReplaceRequest(cols []*Collection, id string, path []string, req *Request) []*Collection {
	idx := indexByID(cols, id)
	if idx < 0 || len(path) == 0 {
		return cols
	}

	clone, target, ok := cloneSpine(cols[idx], path)
	if !ok || !target.IsRequest() {
		return cols
	}
	target.Request = req
	return replaceAt(cols, idx, clone)
}

// RemoveCollection drops exactly the collection with the given id,
// preserving the order of the remainder.
func RemoveCollection(cols []*Collection, id string) []*Collection {
	idx := indexByID(cols, id)
	if idx < 0 {
		return cols
	}
	out := make([]*Collection, 0, len(cols)-1)
	out = append(out, cols[:idx]...)
	return append(out, cols[idx+1:]...)
}

func indexByID(cols []*Collection, id string) int {
	for i, c := range cols {
		if c != nil && c.Info.ID == id {
			return i
		}
	}
	return -1
}

func replaceAt(cols []*Collection, idx int, col *Collection) []*Collection {
	out := make([]*Collection, len(cols))
	copy(out, cols)
	out[idx] = col
	return out
}

// cloneSpine rebuilds the path from the collection root to the node the path
// resolves to, copying each node on the way. The returned target is the
// caller-owned copy of the located node; everything off the spine is shared.
func cloneSpine(col *Collection, path []string) (*Collection, *Item, bool) {
	clone := *col
	clone.Items = append([]*Item{}, col.Items...)

	siblings := clone.Items
	var target *Item
	for i, segment := range path {
		pos := -1
		for j, it := range siblings {
			if it.Name == segment {
				pos = j
				break
			}
		}
		if pos < 0 {
			return nil, nil, false
		}

		node := *siblings[pos]
		if node.Items != nil {
			node.Items = append([]*Item{}, node.Items...)
		}
		siblings[pos] = &node
		target = &node

		if node.IsFolder() {
			siblings = node.Items
			continue
		}
		if i != len(path)-1 {
			return nil, nil, false
		}
	}
	return &clone, target, true
}
