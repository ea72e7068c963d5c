package include

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestExpander(settings Settings) *Expander {
	return NewExpander(settings, nil, nil)
}

func TestExpandDocument_CleanInputUnchanged(t *testing.T) {
	dir := t.TempDir()
	root := writeDoc(t, dir, "root.md", "")
	e := newTestExpander(DefaultSettings())

	content := "# Title\n\nJust prose, [a plain link](other.md), nothing more.\n"
	got, err := e.ExpandDocument(content, root)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestExpandDocument_NoActiveDocument(t *testing.T) {
	e := newTestExpander(DefaultSettings())

	content := ":[](never-resolved.md)"
	got, err := e.ExpandDocument(content, "")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestExpandDocument_SimpleInclude(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "child.md", "included text")
	root := writeDoc(t, dir, "root.md", "before :[](child.md) after")
	e := newTestExpander(DefaultSettings())

	got, err := e.ExpandDocument("before :[](child.md) after", root)
	require.NoError(t, err)
	assert.Equal(t, "before included text after", got)
}

func TestExpandDocument_NestedIncludes(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "grandchild.md", "deepest")
	writeDoc(t, dir, "child.md", "child(:[](grandchild.md))")
	root := writeDoc(t, dir, "root.md", "")
	e := newTestExpander(DefaultSettings())

	got, err := e.ExpandDocument(":[](child.md)", root)
	require.NoError(t, err)
	assert.Equal(t, "child(deepest)", got)
}

func TestExpandDocument_FixedPoint(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "child.md", "stable content")
	root := writeDoc(t, dir, "root.md", "")
	e := newTestExpander(DefaultSettings())

	once, err := e.ExpandDocument("x :[](child.md) y", root)
	require.NoError(t, err)

	twice, err := e.ExpandDocument(once, root)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestExpandDocument_RangeSelection(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "child.md", "a b c\nd e f\ng h i")
	root := writeDoc(t, dir, "root.md", "")
	e := newTestExpander(DefaultSettings())

	got, err := e.ExpandDocument(":[](child.md#L2)", root)
	require.NoError(t, err)
	assert.Equal(t, "d e f", got)

	got, err = e.ExpandDocument(":[](child.md#L1.1-1.2)", root)
	require.NoError(t, err)
	assert.Equal(t, "b", got)

	got, err = e.ExpandDocument(":[](child.md#L1-3)", root)
	require.NoError(t, err)
	assert.Equal(t, "a b c\nd e f", got)
}

func TestExpandDocument_NotFound(t *testing.T) {
	dir := t.TempDir()
	root := writeDoc(t, dir, "root.md", "")
	e := newTestExpander(DefaultSettings())

	got, err := e.ExpandDocument(":[](missing.md)", root)
	require.NoError(t, err)

	missing := filepath.Join(dir, "missing.md")
	assert.Equal(t, "!INCLUDE NOT FOUND: "+missing, got)
}

func TestExpandDocument_SelfReferenceIsCircular(t *testing.T) {
	dir := t.TempDir()
	root := writeDoc(t, dir, "root.md", ":[](root.md)")
	e := newTestExpander(DefaultSettings())

	got, err := e.ExpandDocument(":[](root.md)", root)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("!CIRCULAR INCLUDE: %s (included from %s)", root, root), got)
}

func TestExpandDocument_MutualInclusionIsCircular(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "a.md", "A[:[](b.md)]")
	writeDoc(t, dir, "b.md", "B[:[](a.md)]")
	e := newTestExpander(DefaultSettings())

	got, err := e.ExpandDocument("A[:[](b.md)]", a)
	require.NoError(t, err)

	b := filepath.Join(dir, "b.md")
	assert.Equal(t, fmt.Sprintf("A[B[!CIRCULAR INCLUDE: %s (included from %s)]]", a, b), got)
}

func TestExpandDocument_DiamondIsNotCircular(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "c.md", "shared")
	writeDoc(t, dir, "a.md", "A=:[](c.md)")
	writeDoc(t, dir, "b.md", "B=:[](c.md)")
	root := writeDoc(t, dir, "root.md", "")
	e := newTestExpander(DefaultSettings())

	got, err := e.ExpandDocument(":[](a.md)\n:[](b.md)", root)
	require.NoError(t, err)
	assert.Equal(t, "A=shared\nB=shared", got)
	assert.NotContains(t, got, "CIRCULAR")
}

func TestExpandDocument_QuoteOverrideForcesQuoting(t *testing.T) {
	dir := t.TempDir()
	child := writeDoc(t, dir, "child.md", "quoted line")
	root := writeDoc(t, dir, "root.md", "")

	settings := DefaultSettings()
	settings.QuoteFormatting = false
	e := newTestExpander(settings)

	got, err := e.ExpandDocument(":[](child.md){quote}", root)
	require.NoError(t, err)

	want := fmt.Sprintf("> quoted line\n>\n> [Source: child.md](editor://file/%s:1:1)",
		filepath.ToSlash(child))
	assert.Equal(t, want, got)
}

func TestExpandDocument_NoQuoteOverrideSuppressesQuoting(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "child.md", "plain line")
	root := writeDoc(t, dir, "root.md", "")

	settings := DefaultSettings()
	settings.QuoteFormatting = true
	e := newTestExpander(settings)

	got, err := e.ExpandDocument(":[](child.md){noquote}", root)
	require.NoError(t, err)
	assert.Equal(t, "plain line", got)
}

func TestExpandDocument_GlobalQuoteDefaultApplies(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "child.md", "first\nsecond")
	root := writeDoc(t, dir, "root.md", "")

	settings := DefaultSettings()
	settings.QuoteFormatting = true
	settings.QuoteIncludeSource = false
	e := newTestExpander(settings)

	got, err := e.ExpandDocument(":[](child.md)", root)
	require.NoError(t, err)
	assert.Equal(t, "> first\n> second", got)
}

func TestExpandDocument_TwoStylesCoexist(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "alpha")
	writeDoc(t, dir, "b.md", "beta")
	root := writeDoc(t, dir, "root.md", "")
	e := newTestExpander(DefaultSettings())

	got, err := e.ExpandDocument("!!!include(b.md)!!!\n:[](a.md)", root)
	require.NoError(t, err)
	assert.Equal(t, "beta\nalpha", got)
}

func TestExpandDocument_DisabledStyleIsLeftAlone(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "alpha")
	root := writeDoc(t, dir, "root.md", "")

	settings := DefaultSettings()
	settings.MarkdownItStyle = false
	e := newTestExpander(settings)

	got, err := e.ExpandDocument("!!!include(a.md)!!! :[](a.md)", root)
	require.NoError(t, err)
	assert.Equal(t, "!!!include(a.md)!!! alpha", got)
}

// A substitution message containing directive syntax is rescanned like any
// other text. This pins the observed restart-from-start behavior.
func TestExpandDocument_PlaceholderWithDirectiveSyntaxIsRescanned(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "note.md", "NOTE")
	root := writeDoc(t, dir, "root.md", "")

	settings := DefaultSettings()
	settings.NotFoundMessage = "missing {{FILE}} :[](note.md)"
	e := newTestExpander(settings)

	got, err := e.ExpandDocument(":[](gone.md)", root)
	require.NoError(t, err)
	assert.Equal(t, "missing "+filepath.Join(dir, "gone.md")+" NOTE", got)
}

// failingFS reports every path as existing but refuses to read it.
type failingFS struct{}

func (failingFS) ResolvePath(dir, ref string) string { return filepath.Join(dir, ref) }
func (failingFS) FileExists(string) bool             { return true }
func (failingFS) ReadFile(path string) (string, error) {
	return "", fmt.Errorf("read %s: permission denied", path)
}

func TestExpandDocument_ReadFailureAbortsExpansion(t *testing.T) {
	e := NewExpander(DefaultSettings(), failingFS{}, nil)

	got, err := e.ExpandDocument(":[](child.md)", "/docs/root.md")
	require.Error(t, err)
	assert.Empty(t, got)

	var readErr *ReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, filepath.Join("/docs", "child.md"), readErr.Path)
}
