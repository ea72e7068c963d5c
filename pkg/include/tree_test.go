package include

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Diamond(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "c.md", "leaf")
	writeDoc(t, dir, "a.md", ":[](c.md)")
	writeDoc(t, dir, "b.md", ":[](c.md)")
	root := writeDoc(t, dir, "root.md", ":[](a.md)\n:[](b.md)")
	e := newTestExpander(DefaultSettings())

	tree, err := e.Tree(root)
	require.NoError(t, err)

	require.Len(t, tree.Children, 2)
	assert.Equal(t, filepath.Join(dir, "a.md"), tree.Children[0].Path)
	assert.Equal(t, filepath.Join(dir, "b.md"), tree.Children[1].Path)

	// Both branches descend into c.md; neither is flagged circular.
	for _, branch := range tree.Children {
		assert.Equal(t, StatusOK, branch.Status)
		require.Len(t, branch.Children, 1)
		assert.Equal(t, filepath.Join(dir, "c.md"), branch.Children[0].Path)
		assert.Equal(t, StatusOK, branch.Children[0].Status)
	}
}

func TestTree_Markers(t *testing.T) {
	dir := t.TempDir()
	root := writeDoc(t, dir, "root.md", ":[](root.md)\n:[](gone.md)")
	e := newTestExpander(DefaultSettings())

	tree, err := e.Tree(root)
	require.NoError(t, err)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, StatusCircular, tree.Children[0].Status)
	assert.Equal(t, StatusNotFound, tree.Children[1].Status)
	assert.Empty(t, tree.Children[0].Children)
}

func TestTree_RangeLimitsChildScan(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "deep.md", "deep")
	writeDoc(t, dir, "child.md", "plain first line\n:[](deep.md)")
	root := writeDoc(t, dir, "root.md", ":[](child.md#L1)")
	e := newTestExpander(DefaultSettings())

	tree, err := e.Tree(root)
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	// Only line 1 of child.md is included, so its directive on line 2 is
	// outside the slice and never resolved.
	assert.Empty(t, tree.Children[0].Children)
}

func TestRenderTree(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", ":[](missing.md)")
	writeDoc(t, dir, "b.md", "leaf")
	root := writeDoc(t, dir, "root.md", ":[](a.md)\n:[](b.md)")
	e := newTestExpander(DefaultSettings())

	tree, err := e.Tree(root)
	require.NoError(t, err)

	got := RenderTree(tree)
	want := root + "\n" +
		"├── a.md\n" +
		"│   └── missing.md (not found)\n" +
		"└── b.md\n"
	assert.Equal(t, want, got)
}

func TestTree_MissingRoot(t *testing.T) {
	e := newTestExpander(DefaultSettings())
	_, err := e.Tree(filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.True(t, os.IsNotExist(readErr.Err))
}
