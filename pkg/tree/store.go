// Package tree implements the in-memory document tree: sections (items),
// markdown pages, the mutation operations that keep the forest consistent,
// and read-only projections over it.
package tree

import (
	"fmt"
	"strings"

	"github.com/docwell/docwell/pkg/ident"
	"github.com/docwell/docwell/pkg/models"
)

// RootSentinel is the parent value commands use to target the tree root.
const RootSentinel = "root"

// maxDepth bounds parent-chain walks. A chain this long only occurs when the
// forest invariant has been violated.
const maxDepth = 1000

// DefaultPageContent returns the starter content for a newly created page.
func DefaultPageContent(title string) string {
	return fmt.Sprintf("# %s\n\nStart writing your content here...\n", title)
}

// Store owns a tree and applies mutations to it. Each operation validates
// its inputs fully before the first write, so a failed call leaves the tree
// untouched. The store is not safe for concurrent use; all mutations run on
// a single goroutine.
type Store struct {
	tree  *models.Tree
	idgen *ident.Generator
}

// NewStore creates a store over the given tree. A nil tree starts empty.
func NewStore(t *models.Tree) *Store {
	if t == nil {
		t = models.NewTree()
	}
	s := &Store{
		tree:  t,
		idgen: ident.NewGenerator(),
	}
	s.seedGenerator()
	return s
}

// Tree exposes the underlying tree for projections and persistence.
func (s *Store) Tree() *models.Tree {
	return s.tree
}

// Reset empties the tree, e.g. for a new project or before an import.
func (s *Store) Reset() {
	s.tree.Reset()
}

// Replace swaps in a different tree, e.g. one loaded from local persistence.
func (s *Store) Replace(t *models.Tree) {
	if t == nil {
		t = models.NewTree()
	}
	s.tree = t
	s.seedGenerator()
}

// seedGenerator advances the id counter past every suffix already present
// in the tree. Ids persisted by an earlier process would otherwise be
// minted again, and a colliding create silently overwrites the older
// record.
func (s *Store) seedGenerator() {
	for id := range s.tree.Items {
		if n, ok := ident.Suffix(id); ok {
			s.idgen.Bump(n)
		}
	}
	for id := range s.tree.Pages {
		if n, ok := ident.Suffix(id); ok {
			s.idgen.Bump(n)
		}
	}
}

// isRoot reports whether a parent value targets the tree root.
func isRoot(parentID string) bool {
	return parentID == "" || parentID == RootSentinel
}

// CreateItem adds a section under the given parent, or at the root when
// parentID is empty or the root sentinel.
func (s *Store) CreateItem(name, parentID string) (*models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Reason: "section name is empty"}
	}

	parent := ""
	if !isRoot(parentID) {
		if _, ok := s.tree.Items[parentID]; !ok {
			return nil, &NotFoundError{Kind: "item", ID: parentID}
		}
		parent = parentID
	}

	item := &models.Item{
		ID:       s.idgen.Generate(name),
		Name:     name,
		ParentID: parent,
		PageIDs:  []string{},
	}
	s.tree.Items[item.ID] = item
	return item, nil
}

// CreatePage adds a page under an existing section with the default starter
// content. parentID may be empty or the root sentinel for a root-level page.
func (s *Store) CreatePage(parentID, title string) (*models.Page, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &ValidationError{Reason: "page title is empty"}
	}
	if parentID == "" {
		return nil, &ValidationError{Reason: "no parent section selected"}
	}

	parent := ""
	if !isRoot(parentID) {
		if _, ok := s.tree.Items[parentID]; !ok {
			return nil, &NotFoundError{Kind: "item", ID: parentID}
		}
		parent = parentID
	}

	page := &models.Page{
		ID:       s.idgen.Generate(title),
		Title:    title,
		Content:  DefaultPageContent(title),
		ParentID: parent,
	}
	s.tree.Pages[page.ID] = page
	if parent != "" {
		owner := s.tree.Items[parent]
		owner.PageIDs = append(owner.PageIDs, page.ID)
	}
	return page, nil
}

// AddImportedPage registers a page with explicit content, used by the
// synchronizer when walking an external store. The parent must already
// exist unless the page is root-level (parentID "").
func (s *Store) AddImportedPage(parentID, title, content string) (*models.Page, error) {
	if title == "" {
		return nil, &ValidationError{Reason: "page title is empty"}
	}
	if parentID != "" {
		if _, ok := s.tree.Items[parentID]; !ok {
			return nil, &NotFoundError{Kind: "item", ID: parentID}
		}
	}

	page := &models.Page{
		ID:       s.idgen.Generate(title),
		Title:    title,
		Content:  content,
		ParentID: parentID,
	}
	s.tree.Pages[page.ID] = page
	if parentID != "" {
		owner := s.tree.Items[parentID]
		owner.PageIDs = append(owner.PageIDs, page.ID)
	}
	return page, nil
}

// RenameItem changes a section's display name. Pure rename: parent and pages
// are untouched.
func (s *Store) RenameItem(id, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return &ValidationError{Reason: "section name is empty"}
	}
	item, ok := s.tree.Items[id]
	if !ok {
		return &NotFoundError{Kind: "item", ID: id}
	}
	item.Name = newName
	return nil
}

// UpdatePage replaces a page's title and content.
func (s *Store) UpdatePage(id, title, content string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return &ValidationError{Reason: "page title is empty"}
	}
	page, ok := s.tree.Pages[id]
	if !ok {
		return &NotFoundError{Kind: "page", ID: id}
	}
	page.Title = title
	page.Content = content
	return nil
}

// DeleteItem removes a section, every descendant section, and every page any
// of them owns. It returns the ids of all removed pages so the caller can
// notice that a page it was displaying is gone.
func (s *Store) DeleteItem(id string) ([]string, error) {
	if _, ok := s.tree.Items[id]; !ok {
		return nil, &NotFoundError{Kind: "item", ID: id}
	}

	// Collect the subtree with an explicit stack; a visited set guards
	// against a corrupted parent chain so the walk always terminates.
	subtree := []string{}
	visited := map[string]bool{}
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		subtree = append(subtree, cur)
		for childID, child := range s.tree.Items {
			if child.ParentID == cur {
				stack = append(stack, childID)
			}
		}
	}

	var deletedPages []string
	for _, itemID := range subtree {
		item := s.tree.Items[itemID]
		for _, pageID := range item.PageIDs {
			if _, ok := s.tree.Pages[pageID]; ok {
				delete(s.tree.Pages, pageID)
				deletedPages = append(deletedPages, pageID)
			}
		}
		// Sweep pages that point at this item but were never linked into
		// PageIDs, so no orphan survives.
		for pageID, page := range s.tree.Pages {
			if page.ParentID == itemID {
				delete(s.tree.Pages, pageID)
				deletedPages = append(deletedPages, pageID)
			}
		}
		delete(s.tree.Items, itemID)
	}

	return deletedPages, nil
}

// DeletePage removes a single page and unlinks it from its owning section.
func (s *Store) DeletePage(id string) error {
	page, ok := s.tree.Pages[id]
	if !ok {
		return &NotFoundError{Kind: "page", ID: id}
	}
	if page.ParentID != "" {
		if owner, ok := s.tree.Items[page.ParentID]; ok {
			owner.PageIDs = removeID(owner.PageIDs, id)
		}
	}
	delete(s.tree.Pages, id)
	return nil
}

// MovePage re-homes a page under a different section, or to the root when
// newParentID is empty or the root sentinel.
func (s *Store) MovePage(id, newParentID string) error {
	page, ok := s.tree.Pages[id]
	if !ok {
		return &NotFoundError{Kind: "page", ID: id}
	}

	target := ""
	if !isRoot(newParentID) {
		if _, ok := s.tree.Items[newParentID]; !ok {
			return &NotFoundError{Kind: "item", ID: newParentID}
		}
		target = newParentID
	}

	if page.ParentID == target {
		return nil
	}
	if page.ParentID != "" {
		if owner, ok := s.tree.Items[page.ParentID]; ok {
			owner.PageIDs = removeID(owner.PageIDs, id)
		}
	}
	page.ParentID = target
	if target != "" {
		owner := s.tree.Items[target]
		owner.PageIDs = append(owner.PageIDs, id)
	}
	return nil
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
