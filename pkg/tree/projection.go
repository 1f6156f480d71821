package tree

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/docwell/docwell/pkg/models"
)

// PathSeparator joins ancestor names in a rendered hierarchy path.
const PathSeparator = " → "

var collator = collate.New(language.Und)

// RootItems returns every top-level section, sorted by name.
func (s *Store) RootItems() []*models.Item {
	return s.itemsUnder("")
}

// ChildrenOf returns the direct child sections of an item, sorted by name.
func (s *Store) ChildrenOf(id string) []*models.Item {
	return s.itemsUnder(id)
}

func (s *Store) itemsUnder(parentID string) []*models.Item {
	var out []*models.Item
	for _, item := range s.tree.Items {
		if item.ParentID == parentID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := collator.CompareString(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// PagesOf returns an item's pages in creation order. Pages whose entry has
// gone missing are skipped rather than reported; the mutation operations
// keep the two sides consistent.
func (s *Store) PagesOf(id string) []*models.Page {
	item, ok := s.tree.Items[id]
	if !ok {
		return nil
	}
	out := make([]*models.Page, 0, len(item.PageIDs))
	for _, pageID := range item.PageIDs {
		if page, ok := s.tree.Pages[pageID]; ok {
			out = append(out, page)
		}
	}
	return out
}

// RootPages returns pages that live at the tree root, sorted by title.
func (s *Store) RootPages() []*models.Page {
	var out []*models.Page
	for _, page := range s.tree.Pages {
		if page.ParentID == "" {
			out = append(out, page)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := collator.CompareString(out[i].Title, out[j].Title); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// PathOf renders the ancestor chain of an item from its root down to the
// item itself, e.g. "Academic → Projects". The walk is bounded: a parent
// chain longer than maxDepth means the forest invariant is broken and an
// IntegrityError is returned instead of looping.
func (s *Store) PathOf(id string) (string, error) {
	item, ok := s.tree.Items[id]
	if !ok {
		return "", &NotFoundError{Kind: "item", ID: id}
	}

	names := []string{item.Name}
	cur := item
	for depth := 0; cur.ParentID != ""; depth++ {
		if depth >= maxDepth {
			return "", &IntegrityError{Reason: "parent chain exceeds depth bound for " + id}
		}
		parent, ok := s.tree.Items[cur.ParentID]
		if !ok {
			return "", &IntegrityError{Reason: "dangling parent reference " + cur.ParentID}
		}
		names = append(names, parent.Name)
		cur = parent
	}

	// Reverse into root-first order.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSeparator), nil
}

// Depth returns how many ancestors an item has. Used by the exporter to
// materialize parent directories before their children.
func (s *Store) Depth(id string) (int, error) {
	item, ok := s.tree.Items[id]
	if !ok {
		return 0, &NotFoundError{Kind: "item", ID: id}
	}
	depth := 0
	for cur := item; cur.ParentID != ""; depth++ {
		if depth >= maxDepth {
			return 0, &IntegrityError{Reason: "parent chain exceeds depth bound for " + id}
		}
		parent, ok := s.tree.Items[cur.ParentID]
		if !ok {
			return 0, &IntegrityError{Reason: "dangling parent reference " + cur.ParentID}
		}
		cur = parent
	}
	return depth, nil
}
