package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/haim4shekel213/apiforge/internal/collection"
)

// treeEntry is one visible row of the sidebar: a collection root, a folder,
// or a request leaf. path holds the item names from the collection root down
// to the entry itself (empty for collection rows).
type treeEntry struct {
	col   *collection.Collection
	item  *collection.Item
	path  []string
	depth int
}

func (e treeEntry) isCollection() bool {
	return e.item == nil
}

func (e treeEntry) isFolder() bool {
	return e.item != nil && e.item.IsFolder()
}

func (e treeEntry) isRequest() bool {
	return e.item != nil && e.item.IsRequest()
}

// containerPath is where a new child of this entry belongs: collections and
// folders contain directly, a request's children go next to it.
func (e treeEntry) containerPath() []string {
	switch {
	case e.isCollection():
		return nil
	case e.isFolder():
		return e.path
	default:
		return e.path[:len(e.path)-1]
	}
}

func (e treeEntry) Title() string {
	indent := strings.Repeat("  ", e.depth)
	switch {
	case e.isCollection():
		return indent + "▣ " + e.col.Info.Name
	case e.isFolder():
		return indent + "▸ " + e.item.Name
	default:
		return fmt.Sprintf("%s%s %s", indent, e.item.Request.Method, e.item.Name)
	}
}

func (e treeEntry) Description() string {
	switch {
	case e.isCollection():
		return fmt.Sprintf("%d items", len(e.col.Items))
	case e.isFolder():
		return fmt.Sprintf("%d items", len(e.item.Items))
	default:
		return e.item.Request.URL.String()
	}
}

func (e treeEntry) FilterValue() string {
	if e.isCollection() {
		return e.col.Info.Name
	}
	return e.item.Name
}

// flattenCollections renders the collection trees into the flat row list the
// sidebar displays, depth first in document order.
func flattenCollections(cols []*collection.Collection) []list.Item {
	var rows []list.Item
	for _, col := range cols {
		rows = append(rows, treeEntry{col: col})
		rows = appendItems(rows, col, col.Items, nil, 1)
	}
	return rows
}

func appendItems(rows []list.Item, col *collection.Collection, items []*collection.Item, prefix []string, depth int) []list.Item {
	for _, item := range items {
		path := make([]string, 0, len(prefix)+1)
		path = append(path, prefix...)
		path = append(path, item.Name)
		rows = append(rows, treeEntry{col: col, item: item, path: path, depth: depth})
		if item.IsFolder() {
			rows = appendItems(rows, col, item.Items, path, depth+1)
		}
	}
	return rows
}
