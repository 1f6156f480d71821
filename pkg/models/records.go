package models

// ItemRecord is the persisted form of an Item. The field names and the fixed
// "section" type tag match the blob layout written by earlier versions, so old
// data files keep loading.
type ItemRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	ParentID string   `json:"parentId"`
	Pages    []string `json:"pages"`
}

// PageRecord is the persisted form of a Page.
type PageRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	ParentID string `json:"parentId"`
}

// Blob is the full persisted document: both mappings, keyed by id.
type Blob struct {
	Items map[string]ItemRecord `json:"items"`
	Pages map[string]PageRecord `json:"pages"`
}

// ToBlob converts the tree into its persisted representation. External store
// handles are owned by the synchronizer and never serialized.
func (t *Tree) ToBlob() *Blob {
	b := &Blob{
		Items: make(map[string]ItemRecord, len(t.Items)),
		Pages: make(map[string]PageRecord, len(t.Pages)),
	}
	for id, item := range t.Items {
		pages := make([]string, len(item.PageIDs))
		copy(pages, item.PageIDs)
		b.Items[id] = ItemRecord{
			ID:       item.ID,
			Name:     item.Name,
			Type:     "section",
			ParentID: item.ParentID,
			Pages:    pages,
		}
	}
	for id, page := range t.Pages {
		b.Pages[id] = PageRecord{
			ID:       page.ID,
			Title:    page.Title,
			Content:  page.Content,
			ParentID: page.ParentID,
		}
	}
	return b
}

// FromBlob reconstructs a tree from its persisted representation.
func FromBlob(b *Blob) *Tree {
	t := NewTree()
	if b == nil {
		return t
	}
	for id, rec := range b.Items {
		pages := make([]string, len(rec.Pages))
		copy(pages, rec.Pages)
		t.Items[id] = &Item{
			ID:       rec.ID,
			Name:     rec.Name,
			ParentID: rec.ParentID,
			PageIDs:  pages,
		}
	}
	for id, rec := range b.Pages {
		t.Pages[id] = &Page{
			ID:       rec.ID,
			Title:    rec.Title,
			Content:  rec.Content,
			ParentID: rec.ParentID,
		}
	}
	return t
}
