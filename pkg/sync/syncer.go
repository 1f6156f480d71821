package sync

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/docwell/docwell/pkg/tree"
)

// DefaultExtension is the recognized page file extension.
const DefaultExtension = ".md"

// Syncer walks the external store into the tree (import) and the tree out
// to the external store (export). It owns the handle binder. A syncer is
// not meant for concurrent invocation; commands run one operation at a
// time.
type Syncer struct {
	binder    *Binder
	extension string
	log       *logrus.Logger
}

// NewSyncer creates a syncer recognizing the given page extension
// (DefaultExtension when empty).
func NewSyncer(extension string, log *logrus.Logger) *Syncer {
	if extension == "" {
		extension = DefaultExtension
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return &Syncer{
		binder:    NewBinder(),
		extension: extension,
		log:       log,
	}
}

// Binder exposes the handle side table, mainly for tests.
func (s *Syncer) Binder() *Binder {
	return s.binder
}

// Reset drops all external handle bindings.
func (s *Syncer) Reset() {
	s.binder.Reset()
}

// Import resets the tree and rebuilds it from the external store. Ids are
// minted fresh on every import. A single unreadable entry is logged,
// counted, and skipped; the walk continues.
func (s *Syncer) Import(root Folder, st *tree.Store) (*Report, error) {
	st.Reset()
	s.binder.Reset()

	report := &Report{}
	s.importFolder(root, st, "", report)
	return report, nil
}

func (s *Syncer) importFolder(folder Folder, st *tree.Store, parentID string, report *Report) {
	entries, err := folder.Entries()
	if err != nil {
		s.log.Warnf("list %s: %v", folder.Name(), err)
		report.fail("list "+folder.Name(), err)
		return
	}

	for _, entry := range entries {
		switch entry.Kind {
		case KindFolder:
			sub, err := folder.Folder(entry.Name)
			if err != nil {
				s.log.Warnf("open directory %s: %v", entry.Name, err)
				report.fail("directory "+entry.Name, err)
				continue
			}
			item, err := st.CreateItem(entry.Name, parentID)
			if err != nil {
				s.log.Warnf("import directory %s: %v", entry.Name, err)
				report.fail("directory "+entry.Name, err)
				continue
			}
			s.binder.BindFolder(item.ID, sub)
			report.Items++
			s.importFolder(sub, st, item.ID, report)

		case KindFile:
			if !strings.HasSuffix(entry.Name, s.extension) {
				continue
			}
			if entry.Name == ManifestName {
				continue
			}
			file, err := folder.OpenFile(entry.Name)
			if err != nil {
				s.log.Warnf("open file %s: %v", entry.Name, err)
				report.fail("file "+entry.Name, err)
				continue
			}
			content, err := file.Read()
			if err != nil {
				s.log.Warnf("read file %s: %v", entry.Name, err)
				report.fail("file "+entry.Name, err)
				continue
			}
			title := strings.TrimSuffix(entry.Name, s.extension)
			page, err := st.AddImportedPage(parentID, title, content)
			if err != nil {
				s.log.Warnf("import file %s: %v", entry.Name, err)
				report.fail("file "+entry.Name, err)
				continue
			}
			s.binder.BindFile(page.ID, file, entry.Name)
			report.Pages++
		}
	}
}

// Export writes the tree out to the external store. Directories for items
// are materialized top-down before any page is placed under them; creation
// is idempotent, so re-exporting an unchanged tree rewrites identical bytes
// and creates nothing new. Single-entry failures are logged and skipped.
func (s *Syncer) Export(root Folder, st *tree.Store) (*Report, error) {
	report := &Report{}

	s.exportItems(root, st, report)
	s.exportPages(root, st, report)

	if err := WriteManifest(root, s.extension); err != nil {
		s.log.Warnf("write manifest: %v", err)
	}
	return report, nil
}

// exportItems ensures a bound directory for every item, parents first.
func (s *Syncer) exportItems(root Folder, st *tree.Store, report *Report) {
	t := st.Tree()

	type depthItem struct {
		id    string
		depth int
	}
	ordered := make([]depthItem, 0, len(t.Items))
	for id := range t.Items {
		depth, err := st.Depth(id)
		if err != nil {
			s.log.Errorf("resolve depth of %s: %v", id, err)
			report.fail("section "+id, err)
			continue
		}
		ordered = append(ordered, depthItem{id: id, depth: depth})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].depth != ordered[j].depth {
			return ordered[i].depth < ordered[j].depth
		}
		return ordered[i].id < ordered[j].id
	})

	for _, di := range ordered {
		item := t.Items[di.id]
		if _, ok := s.binder.FolderFor(item.ID); ok {
			report.Items++
			continue
		}
		parent := root
		if item.ParentID != "" {
			if bound, ok := s.binder.FolderFor(item.ParentID); ok {
				parent = bound
			}
		}
		folder, err := parent.Folder(item.Name)
		if err != nil {
			s.log.Warnf("create directory %s: %v", item.Name, err)
			report.fail("section "+item.Name, err)
			continue
		}
		s.binder.BindFolder(item.ID, folder)
		report.Items++
	}
}

// exportPages writes every page, creating and binding files as needed.
func (s *Syncer) exportPages(root Folder, st *tree.Store, report *Report) {
	t := st.Tree()

	ids := make([]string, 0, len(t.Pages))
	for id := range t.Pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		page := t.Pages[id]

		if file, _, ok := s.binder.FileFor(page.ID); ok {
			if err := file.Write(page.Content); err != nil {
				s.log.Warnf("write page %s: %v", page.Title, err)
				report.fail("page "+page.Title, err)
				continue
			}
			report.Pages++
			continue
		}

		parent := root
		if page.ParentID != "" {
			if bound, ok := s.binder.FolderFor(page.ParentID); ok {
				parent = bound
			}
		}
		name := page.Title + s.extension
		file, err := parent.File(name)
		if err != nil {
			s.log.Warnf("create page file %s: %v", name, err)
			report.fail("page "+page.Title, err)
			continue
		}
		if err := file.Write(page.Content); err != nil {
			s.log.Warnf("write page %s: %v", page.Title, err)
			report.fail("page "+page.Title, err)
			continue
		}
		s.binder.BindFile(page.ID, file, name)
		report.Pages++
	}
}
