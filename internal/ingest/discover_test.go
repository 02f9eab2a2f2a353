package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscoverSource_MarkdownOnlyLexicalNonRecursive(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.md", "a.md", "notes.txt", "C.MD"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "drafts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drafts", "d.md"), []byte("x"), 0o644))

	files, err := DiscoverSource(dir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
		require.Equal(t, filepath.Join(dir, f.Name), f.Path)
	}
	require.Equal(t, []string{"a.md", "b.md"}, names)
}

func TestDiscoverSource_MissingDir(t *testing.T) {
	_, err := DiscoverSource(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestSourceFile_Slug(t *testing.T) {
	require.Equal(t, "hello-world", SourceFile{Name: "hello-world.md"}.Slug())
	require.Equal(t, "v1.2", SourceFile{Name: "v1.2.md"}.Slug())
}

func TestIsMarkdown(t *testing.T) {
	require.True(t, IsMarkdown("a.md"))
	require.False(t, IsMarkdown("A.MD"))
	require.False(t, IsMarkdown("a.markdown"))
	require.False(t, IsMarkdown("a.md~"))
}
