package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobRoundTrip(t *testing.T) {
	tr := NewTree()
	tr.Items["sec-1"] = &Item{ID: "sec-1", Name: "Docs", PageIDs: []string{"pg-1"}}
	tr.Pages["pg-1"] = &Page{ID: "pg-1", Title: "Guide", Content: "# Guide\n", ParentID: "sec-1"}

	blob := tr.ToBlob()
	require.Contains(t, blob.Items, "sec-1")
	assert.Equal(t, "section", blob.Items["sec-1"].Type)

	back := FromBlob(blob)
	require.Contains(t, back.Items, "sec-1")
	require.Contains(t, back.Pages, "pg-1")
	assert.Equal(t, tr.Items["sec-1"].Name, back.Items["sec-1"].Name)
	assert.Equal(t, tr.Items["sec-1"].PageIDs, back.Items["sec-1"].PageIDs)
	assert.Equal(t, tr.Pages["pg-1"].Content, back.Pages["pg-1"].Content)

	// The copies are independent: mutating the round-tripped tree must not
	// touch the original.
	back.Items["sec-1"].PageIDs[0] = "other"
	assert.Equal(t, "pg-1", tr.Items["sec-1"].PageIDs[0])
}

func TestFromBlobNil(t *testing.T) {
	tr := FromBlob(nil)
	require.NotNil(t, tr)
	assert.True(t, tr.IsEmpty())
}
