package batch

import (
	"os"
	"path/filepath"
	"testing"

	"transclude/pkg/ignore"
	"transclude/pkg/include"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func zapNop() *zap.Logger { return zap.NewNop() }

func write(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestCollect_FiltersCandidates(t *testing.T) {
	dir := t.TempDir()
	keep := write(t, dir, "keep.md", []byte("text"))
	write(t, dir, "notes.log", []byte("not a document"))
	write(t, dir, "blob.md", []byte{0x00, 0x01, 0x02, 0x03})
	write(t, dir, "dropped.md", []byte("ignored by rules"))

	rules := ignore.NewRuleset(nil)
	rules.CompileLines("dropped.md")

	docs, err := Collect([]string{dir}, rules, Options{}, zapNop())
	require.NoError(t, err)
	assert.Equal(t, []string{keep}, docs)
}

func TestCollect_DirectFileBypassesExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	direct := write(t, dir, "page.rst", []byte("direct"))

	docs, err := Collect([]string{direct}, ignore.NewRuleset(nil), Options{}, zapNop())
	require.NoError(t, err)
	assert.Equal(t, []string{direct}, docs)
}

func TestCollect_SizeCap(t *testing.T) {
	dir := t.TempDir()
	big := make([]byte, 3*1024)
	for i := range big {
		big[i] = 'a'
	}
	write(t, dir, "big.md", big)
	small := write(t, dir, "small.md", []byte("fits"))

	docs, err := Collect([]string{dir}, ignore.NewRuleset(nil), Options{MaxFileSizeKB: 2}, zapNop())
	require.NoError(t, err)
	assert.Equal(t, []string{small}, docs)
}

func TestRun_ExpandsIntoOutputDir(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "snippet.md", []byte("from snippet"))
	write(t, dir, "a.md", []byte("A: :[](snippet.md)"))
	write(t, dir, "b.md", []byte("B: !!!include(snippet.md)!!!"))

	outDir := filepath.Join(t.TempDir(), "out")
	opts := Options{
		Paths:     []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "b.md")},
		OutputDir: outDir,
	}

	require.NoError(t, Run(opts, include.DefaultSettings(), zapNop()))

	a, err := os.ReadFile(filepath.Join(outDir, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "A: from snippet", string(a))

	b, err := os.ReadFile(filepath.Join(outDir, "b.md"))
	require.NoError(t, err)
	assert.Equal(t, "B: from snippet", string(b))
}

func TestRun_SingleDocumentToOutputFile(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "part.md", []byte("part content"))
	root := write(t, dir, "root.md", []byte(":[](part.md)"))

	out := filepath.Join(t.TempDir(), "expanded.md")
	opts := Options{Paths: []string{root}, Output: out}

	require.NoError(t, Run(opts, include.DefaultSettings(), zapNop()))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "part content", string(got))
}

func TestOutputPath_SiblingSuffix(t *testing.T) {
	got, err := outputPath(filepath.Join("docs", "page.md"), Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("docs", "page.out.md"), got)

	got, err = outputPath(filepath.Join("docs", "page.md"), Options{Suffix: ".expanded"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("docs", "page.expanded.md"), got)
}

func TestHasDocumentExtension(t *testing.T) {
	assert.True(t, hasDocumentExtension("a.md", nil))
	assert.True(t, hasDocumentExtension("a.MD", nil))
	assert.True(t, hasDocumentExtension("a.markdown", nil))
	assert.False(t, hasDocumentExtension("a.go", nil))
	assert.True(t, hasDocumentExtension("a.rst", []string{".rst"}))
	assert.False(t, hasDocumentExtension("a.md", []string{".rst"}))
}

func TestIsBinaryFile(t *testing.T) {
	dir := t.TempDir()
	text := write(t, dir, "text.md", []byte("plain text\nwith lines\n"))
	blob := write(t, dir, "blob.bin", []byte{0x7f, 0x00, 0x45, 0x4c, 0x46})
	empty := write(t, dir, "empty.md", nil)

	got, err := isBinaryFile(text)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = isBinaryFile(blob)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = isBinaryFile(empty)
	require.NoError(t, err)
	assert.False(t, got)
}
