package models

// Item is a section or subsection node in the document tree. Items form a
// strict forest: every non-root item has exactly one parent and no item is
// its own ancestor.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	ParentID string   `json:"parentId"` // "" means root
	PageIDs  []string `json:"pages"`    // owned pages, creation order
}

// Page is a leaf content unit holding Markdown source.
type Page struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	ParentID string `json:"parentId"` // "" means root-level page
}

// Tree is the aggregate root owning every Item and Page. All access goes
// through ids; nothing outside the tree package holds references into it.
type Tree struct {
	Items map[string]*Item
	Pages map[string]*Page
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{
		Items: make(map[string]*Item),
		Pages: make(map[string]*Page),
	}
}

// Reset empties the tree in place.
func (t *Tree) Reset() {
	t.Items = make(map[string]*Item)
	t.Pages = make(map[string]*Page)
}

// IsEmpty reports whether the tree holds no items and no pages.
func (t *Tree) IsEmpty() bool {
	return len(t.Items) == 0 && len(t.Pages) == 0
}
