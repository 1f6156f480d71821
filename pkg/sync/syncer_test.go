package sync

import (
	"fmt"
	"io"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docwell/docwell/pkg/tree"
)

// fakeFolder is an in-memory Folder used to drive the syncer and inject
// per-entry failures.
type fakeFolder struct {
	name       string
	folders    map[string]*fakeFolder
	files      map[string]*fakeFile
	entriesErr error
	folderErrs map[string]error
}

func newFakeFolder(name string) *fakeFolder {
	return &fakeFolder{
		name:    name,
		folders: map[string]*fakeFolder{},
		files:   map[string]*fakeFile{},
	}
}

func (f *fakeFolder) Name() string { return f.name }

func (f *fakeFolder) Entries() ([]Entry, error) {
	if f.entriesErr != nil {
		return nil, f.entriesErr
	}
	var entries []Entry
	for name := range f.folders {
		entries = append(entries, Entry{Name: name, Kind: KindFolder})
	}
	for name := range f.files {
		entries = append(entries, Entry{Name: name, Kind: KindFile})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (f *fakeFolder) Folder(name string) (Folder, error) {
	if err, ok := f.folderErrs[name]; ok {
		return nil, err
	}
	if sub, ok := f.folders[name]; ok {
		return sub, nil
	}
	sub := newFakeFolder(name)
	f.folders[name] = sub
	return sub, nil
}

func (f *fakeFolder) File(name string) (File, error) {
	if file, ok := f.files[name]; ok {
		return file, nil
	}
	file := &fakeFile{name: name}
	f.files[name] = file
	return file, nil
}

func (f *fakeFolder) OpenFile(name string) (File, error) {
	if file, ok := f.files[name]; ok {
		return file, nil
	}
	return nil, &ExternalStoreError{Path: name, Err: fmt.Errorf("no such file")}
}

type fakeFile struct {
	name     string
	content  string
	readErr  error
	writeErr error
	writes   int
}

func (f *fakeFile) Name() string { return f.name }

func (f *fakeFile) Read() (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.content, nil
}

func (f *fakeFile) Write(content string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.content = content
	f.writes++
	return nil
}

func testSyncer() *Syncer {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewSyncer("", log)
}

func TestImportSimple(t *testing.T) {
	root := newFakeFolder("project")
	a, _ := root.Folder("A")
	bf, _ := a.(*fakeFolder).File("b.md")
	require.NoError(t, bf.Write("hello"))

	s := testSyncer()
	st := tree.NewStore(nil)

	report, err := s.Import(root, st)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Items)
	assert.Equal(t, 1, report.Pages)
	assert.Zero(t, report.Failed)

	tr := st.Tree()
	require.Len(t, tr.Items, 1)
	require.Len(t, tr.Pages, 1)
	for _, item := range tr.Items {
		assert.Equal(t, "A", item.Name)
		assert.Equal(t, "", item.ParentID)
		for _, page := range tr.Pages {
			assert.Equal(t, "b", page.Title)
			assert.Equal(t, "hello", page.Content)
			assert.Equal(t, item.ID, page.ParentID)
		}
	}
}

func TestImportIgnoresUnrecognizedFiles(t *testing.T) {
	root := newFakeFolder("project")
	img, _ := root.File("diagram.png")
	require.NoError(t, img.(*fakeFile).Write("binary"))
	md, _ := root.File("notes.md")
	require.NoError(t, md.(*fakeFile).Write("# notes"))

	s := testSyncer()
	st := tree.NewStore(nil)

	report, err := s.Import(root, st)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pages)
	assert.Zero(t, report.Failed)
	require.Len(t, st.Tree().Pages, 1)
}

func TestImportResetsPreviousTree(t *testing.T) {
	st := tree.NewStore(nil)
	_, err := st.CreateItem("Stale", "")
	require.NoError(t, err)

	root := newFakeFolder("project")
	_, err = root.Folder("Fresh")
	require.NoError(t, err)

	s := testSyncer()
	_, err = s.Import(root, st)
	require.NoError(t, err)

	require.Len(t, st.Tree().Items, 1)
	for _, item := range st.Tree().Items {
		assert.Equal(t, "Fresh", item.Name)
	}
}

func TestImportSkipsUnreadableEntry(t *testing.T) {
	root := newFakeFolder("project")
	bad, _ := root.File("bad.md")
	bad.(*fakeFile).readErr = fmt.Errorf("disk error")
	good, _ := root.File("good.md")
	require.NoError(t, good.(*fakeFile).Write("fine"))

	s := testSyncer()
	st := tree.NewStore(nil)

	report, err := s.Import(root, st)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Pages)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "bad.md")
	require.Len(t, st.Tree().Pages, 1)
}

func TestImportReimportIsomorphic(t *testing.T) {
	root := newFakeFolder("project")
	a, _ := root.Folder("A")
	sub, _ := a.(*fakeFolder).Folder("Deep")
	f, _ := sub.(*fakeFolder).File("page.md")
	require.NoError(t, f.(*fakeFile).Write("content"))

	s := testSyncer()
	st1 := tree.NewStore(nil)
	_, err := s.Import(root, st1)
	require.NoError(t, err)

	s2 := testSyncer()
	st2 := tree.NewStore(nil)
	_, err = s2.Import(root, st2)
	require.NoError(t, err)

	// Ids may differ between imports, but names, nesting and contents match.
	shape := func(st *tree.Store) []string {
		var out []string
		for id := range st.Tree().Items {
			path, err := st.PathOf(id)
			require.NoError(t, err)
			out = append(out, path)
		}
		for _, page := range st.Tree().Pages {
			parentPath := ""
			if page.ParentID != "" {
				parentPath, err = st.PathOf(page.ParentID)
				require.NoError(t, err)
			}
			out = append(out, parentPath+"|"+page.Title+"|"+page.Content)
		}
		sort.Strings(out)
		return out
	}
	assert.Equal(t, shape(st1), shape(st2))
}

func TestExportCreatesStructure(t *testing.T) {
	st := tree.NewStore(nil)
	academic, err := st.CreateItem("Academic", "")
	require.NoError(t, err)
	projects, err := st.CreateItem("Projects", academic.ID)
	require.NoError(t, err)
	_, err = st.CreatePage(projects.ID, "Notes")
	require.NoError(t, err)

	root := newFakeFolder("out")
	s := testSyncer()

	report, err := s.Export(root, st)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Items)
	assert.Equal(t, 1, report.Pages)
	assert.Zero(t, report.Failed)

	acadDir := root.folders["Academic"]
	require.NotNil(t, acadDir)
	projDir := acadDir.folders["Projects"]
	require.NotNil(t, projDir)
	notes := projDir.files["Notes.md"]
	require.NotNil(t, notes)
	assert.Equal(t, tree.DefaultPageContent("Notes"), notes.content)
}

func TestExportRootLevelPage(t *testing.T) {
	st := tree.NewStore(nil)
	_, err := st.AddImportedPage("", "readme", "# top\n")
	require.NoError(t, err)

	root := newFakeFolder("out")
	s := testSyncer()

	_, err = s.Export(root, st)
	require.NoError(t, err)

	f := root.files["readme.md"]
	require.NotNil(t, f)
	assert.Equal(t, "# top\n", f.content)
}

func TestExportIdempotent(t *testing.T) {
	st := tree.NewStore(nil)
	item, err := st.CreateItem("Docs", "")
	require.NoError(t, err)
	_, err = st.CreatePage(item.ID, "Guide")
	require.NoError(t, err)

	root := newFakeFolder("out")
	s := testSyncer()

	_, err = s.Export(root, st)
	require.NoError(t, err)
	_, err = s.Export(root, st)
	require.NoError(t, err)

	// Same folder object, same single file, rewritten with identical bytes.
	require.Len(t, root.folders, 1)
	docs := root.folders["Docs"]
	require.Len(t, docs.files, 1)
	guide := docs.files["Guide.md"]
	assert.Equal(t, 2, guide.writes)
	assert.Equal(t, tree.DefaultPageContent("Guide"), guide.content)
}

func TestExportSkipsFailingEntries(t *testing.T) {
	st := tree.NewStore(nil)
	good, err := st.CreateItem("Good", "")
	require.NoError(t, err)
	_, err = st.CreateItem("Bad", "")
	require.NoError(t, err)
	_, err = st.CreatePage(good.ID, "Fine")
	require.NoError(t, err)
	_, err = st.CreatePage(good.ID, "Broken")
	require.NoError(t, err)

	root := newFakeFolder("out")
	root.folderErrs = map[string]error{"Bad": fmt.Errorf("permission denied")}
	goodDir, err := root.Folder("Good")
	require.NoError(t, err)
	goodDir.(*fakeFolder).files["Broken.md"] = &fakeFile{
		name:     "Broken.md",
		writeErr: fmt.Errorf("disk full"),
	}

	s := testSyncer()
	report, err := s.Export(root, st)
	require.NoError(t, err)

	// Siblings of a failing entry still export; each failure is counted.
	assert.Equal(t, 1, report.Items)
	assert.Equal(t, 1, report.Pages)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Errors, 2)

	fine := goodDir.(*fakeFolder).files["Fine.md"]
	require.NotNil(t, fine)
	assert.Equal(t, tree.DefaultPageContent("Fine"), fine.content)
	assert.Nil(t, root.folders["Bad"])
}

func TestExportThenImportRoundTrip(t *testing.T) {
	st := tree.NewStore(nil)
	work, err := st.CreateItem("Work", "")
	require.NoError(t, err)
	_, err = st.CreatePage(work.ID, "Plan")
	require.NoError(t, err)

	root := newFakeFolder("out")
	s := testSyncer()
	_, err = s.Export(root, st)
	require.NoError(t, err)

	st2 := tree.NewStore(nil)
	s2 := testSyncer()
	report, err := s2.Import(root, st2)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Items)
	assert.Equal(t, 1, report.Pages)

	for _, page := range st2.Tree().Pages {
		assert.Equal(t, "Plan", page.Title)
		assert.Equal(t, tree.DefaultPageContent("Plan"), page.Content)
	}
}

func TestExportWritesManifest(t *testing.T) {
	st := tree.NewStore(nil)
	root := newFakeFolder("myproject")
	s := testSyncer()

	_, err := s.Export(root, st)
	require.NoError(t, err)

	m := ReadManifest(root)
	require.NotNil(t, m)
	assert.Equal(t, "myproject", m.Name)
	assert.Equal(t, ".md", m.Extension)
	assert.False(t, m.ExportedAt.IsZero())
}

func TestReadManifestMissing(t *testing.T) {
	root := newFakeFolder("empty")
	assert.Nil(t, ReadManifest(root))
}
