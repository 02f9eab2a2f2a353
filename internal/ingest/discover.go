package ingest

import (
	"os"
	"path/filepath"
	"strings"
)

type SourceFile struct {
	Path string
	Name string
}

// Slug is the file name without its extension.
func (sf SourceFile) Slug() string {
	return strings.TrimSuffix(sf.Name, filepath.Ext(sf.Name))
}

// IsMarkdown matches the ".md" suffix exactly; "NOTES.MD" is not a source.
func IsMarkdown(name string) bool {
	return strings.HasSuffix(name, ".md")
}

// DiscoverSource lists the markdown files directly inside dir, sorted by name.
// Subdirectories are not descended into.
func DiscoverSource(dir string) ([]SourceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []SourceFile
	for _, e := range entries {
		if e.IsDir() || !IsMarkdown(e.Name()) {
			continue
		}
		out = append(out, SourceFile{
			Path: filepath.Join(dir, e.Name()),
			Name: e.Name(),
		})
	}
	return out, nil
}
