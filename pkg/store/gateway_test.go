package store

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docwell/docwell/pkg/tree"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	g, err := NewGateway(filepath.Join(t.TempDir(), "data"), log)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

func TestLoadEmpty(t *testing.T) {
	g := newTestGateway(t)

	tr := g.Load()
	require.NotNil(t, tr)
	assert.True(t, tr.IsEmpty())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := newTestGateway(t)

	st := tree.NewStore(nil)
	item, err := st.CreateItem("Academic", "")
	require.NoError(t, err)
	sub, err := st.CreateItem("Projects", item.ID)
	require.NoError(t, err)
	page, err := st.CreatePage(sub.ID, "Notes")
	require.NoError(t, err)

	require.NoError(t, g.Save(st.Tree()))

	loaded := g.Load()
	require.Len(t, loaded.Items, 2)
	require.Len(t, loaded.Pages, 1)

	assert.Equal(t, "Academic", loaded.Items[item.ID].Name)
	assert.Equal(t, item.ID, loaded.Items[sub.ID].ParentID)
	assert.Equal(t, []string{page.ID}, loaded.Items[sub.ID].PageIDs)
	assert.Equal(t, "Notes", loaded.Pages[page.ID].Title)
	assert.Equal(t, page.Content, loaded.Pages[page.ID].Content)
	assert.Equal(t, sub.ID, loaded.Pages[page.ID].ParentID)
}

func TestSaveOverwrites(t *testing.T) {
	g := newTestGateway(t)

	st := tree.NewStore(nil)
	_, err := st.CreateItem("First", "")
	require.NoError(t, err)
	require.NoError(t, g.Save(st.Tree()))

	st.Reset()
	_, err = st.CreateItem("Second", "")
	require.NoError(t, err)
	require.NoError(t, g.Save(st.Tree()))

	loaded := g.Load()
	require.Len(t, loaded.Items, 1)
	for _, item := range loaded.Items {
		assert.Equal(t, "Second", item.Name)
	}
}

func TestLoadCorruptedBlob(t *testing.T) {
	g := newTestGateway(t)

	_, err := g.db.Exec(`INSERT INTO blobs (key, value) VALUES (?, ?)`, BlobKey, "{not json")
	require.NoError(t, err)

	tr := g.Load()
	assert.True(t, tr.IsEmpty())
}

func TestLoadBlobWithoutItems(t *testing.T) {
	g := newTestGateway(t)

	// A structurally valid JSON object that lacks the items mapping is
	// treated as absent data.
	_, err := g.db.Exec(`INSERT INTO blobs (key, value) VALUES (?, ?)`, BlobKey, `{"pages":{}}`)
	require.NoError(t, err)

	tr := g.Load()
	assert.True(t, tr.IsEmpty())
}

func TestClear(t *testing.T) {
	g := newTestGateway(t)

	st := tree.NewStore(nil)
	_, err := st.CreateItem("Doomed", "")
	require.NoError(t, err)
	require.NoError(t, g.Save(st.Tree()))

	require.NoError(t, g.Clear())
	assert.True(t, g.Load().IsEmpty())
}
