package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed static
var static embed.FS

var ErrExists = errors.New("file already exists")

const staticRoot = "static"

// Script is the client runtime copied next to the index page: the theme
// toggle and copyable heading anchors.
func Script() []byte {
	b, _ := static.ReadFile(path.Join(staticRoot, "script.js"))
	return b
}

func Stylesheet() []byte {
	b, _ := static.ReadFile(path.Join(staticRoot, "styles.css"))
	return b
}

// Files lists the starter site as slash separated paths relative to its root.
func Files() ([]string, error) {
	var out []string
	err := fs.WalkDir(static, staticRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		out = append(out, strings.TrimPrefix(p, staticRoot+"/"))
		return nil
	})
	return out, err
}

// Scaffold writes the starter site into dir and returns the written paths.
// Without force nothing is written if any target already exists.
func Scaffold(dir string, force bool) ([]string, error) {
	files, err := Files()
	if err != nil {
		return nil, err
	}

	if !force {
		for _, rel := range files {
			target := filepath.Join(dir, filepath.FromSlash(rel))
			if _, err := os.Stat(target); err == nil {
				return nil, fmt.Errorf("%w: %s", ErrExists, target)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	written := make([]string, 0, len(files))
	for _, rel := range files {
		data, err := static.ReadFile(path.Join(staticRoot, rel))
		if err != nil {
			return written, err
		}
		target := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return written, err
		}
		written = append(written, target)
	}
	return written, nil
}
