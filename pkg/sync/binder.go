package sync

// Binder is the side table of live external-store handles, keyed by tree
// id. Handles are acquired during import or export and intentionally kept
// out of the domain records: they are process-local capabilities, never
// serialized, and dropped wholesale when the tree is replaced.
type Binder struct {
	folders   map[string]Folder
	files     map[string]File
	fileNames map[string]string
}

// NewBinder returns an empty binder.
func NewBinder() *Binder {
	b := &Binder{}
	b.Reset()
	return b
}

// Reset drops every binding, e.g. when a new project is opened.
func (b *Binder) Reset() {
	b.folders = make(map[string]Folder)
	b.files = make(map[string]File)
	b.fileNames = make(map[string]string)
}

// BindFolder attaches a directory handle to an item id.
func (b *Binder) BindFolder(itemID string, f Folder) {
	b.folders[itemID] = f
}

// FolderFor returns the directory handle bound to an item, if any.
func (b *Binder) FolderFor(itemID string) (Folder, bool) {
	f, ok := b.folders[itemID]
	return f, ok
}

// BindFile attaches a file handle and its store-side name to a page id.
func (b *Binder) BindFile(pageID string, f File, name string) {
	b.files[pageID] = f
	b.fileNames[pageID] = name
}

// FileFor returns the file handle and name bound to a page, if any.
func (b *Binder) FileFor(pageID string) (File, string, bool) {
	f, ok := b.files[pageID]
	return f, b.fileNames[pageID], ok
}
