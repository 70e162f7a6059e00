package collection

// FindItemByPath walks the tree one name segment at a time, starting at the
// top-level items. Duplicate sibling names resolve to the first match. A leaf
// only terminates a path; any segment past a leaf fails the whole lookup.
// The empty path never resolves, not even to the collection root.
func FindItemByPath(c *Collection, path []string) (*Item, bool) {
	if c == nil || len(path) == 0 {
		return nil, false
	}

	items := c.Items
	var found *Item
	for i, segment := range path {
		found = nil
		for _, it := range items {
			if it.Name == segment {
				found = it
				break
			}
		}
		if found == nil {
			return nil, false
		}
		if found.IsFolder() {
			items = found.Items
			continue
		}
		if i != len(path)-1 {
			return nil, false
		}
	}
	return found, true
}
