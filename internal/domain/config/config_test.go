package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	domainerr "writings/internal/domain/errors"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOrDefault_MissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrDefault(filepath.Join(dir, "site.yaml"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "content"), cfg.Build.ContentDir)
	require.Equal(t, filepath.Join(dir, "writings"), cfg.Build.OutputDir)
	require.Equal(t, filepath.Join(dir, "index.html"), cfg.Build.IndexPage)
	require.Equal(t, dir, cfg.SiteRoot())
	require.Equal(t, 100*time.Millisecond, cfg.Build.Debounce)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "site.yaml"))
	require.Error(t, err)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
site:
  title: "Jane's Notes"
  nav:
    - label: Home
      href: index.html
build:
  content_dir: posts
  debounce: 250ms
markdown:
  highlight_style: monokai
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Jane's Notes", cfg.Site.Title)
	require.Equal(t, []NavLink{{Label: "Home", Href: "index.html"}}, cfg.Site.Nav)
	require.Equal(t, filepath.Join(dir, "posts"), cfg.Build.ContentDir)
	require.Equal(t, filepath.Join(dir, "writings"), cfg.Build.OutputDir)
	require.Equal(t, 250*time.Millisecond, cfg.Build.Debounce)
	require.Equal(t, "monokai", cfg.Markdown.HighlightStyle)
	require.Equal(t, "<!-- WRITINGS:START -->", cfg.Build.StartMarker)
}

func TestLoad_DotEnvAndProcessEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  title: x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WRITINGS_CONTENT_DIR=drafts\nWRITINGS_OUTPUT_DIR=from-dotenv\n"), 0o644))
	t.Setenv("WRITINGS_OUTPUT_DIR", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "drafts"), cfg.Build.ContentDir)
	require.Equal(t, filepath.Join(dir, "from-env"), cfg.Build.OutputDir)
}

func TestApplyEnv_BadDebounce(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(key string) (string, bool) {
		if key == "WRITINGS_DEBOUNCE" {
			return "soon", true
		}
		return "", false
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, domainerr.ErrInvalid))
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Site.Title = " "
	cfg.Build.OutputDir = "."
	cfg.Build.EndMarker = cfg.Build.StartMarker
	cfg.Build.Debounce = 0
	cfg.Markdown.HighlightStyle = "no-such-style"

	err := cfg.Validate()
	require.Error(t, err)

	var ve domainerr.ValidationError
	require.True(t, errors.As(err, &ve))
	require.ElementsMatch(t, []string{
		"site.title",
		"build.output_dir",
		"build.end_marker",
		"build.debounce",
		"markdown.highlight_style",
	}, ve.Fields())
}

func TestValidate_OutputMustDifferFromContent(t *testing.T) {
	cfg := Default()
	cfg.Build.OutputDir = "content/"
	var ve domainerr.ValidationError
	require.True(t, errors.As(cfg.Validate(), &ve))
	require.Equal(t, []string{"build.output_dir"}, ve.Fields())
}

func TestLoad_OutputContainingSiteIsRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("build:\n  output_dir: .\n  index_page: public/index.html\n"), 0o644))

	_, err := Load(path)
	var ve domainerr.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, []string{"build.output_dir"}, ve.Fields())
}

func TestValidate_OutputMustNotContainProtectedDirs(t *testing.T) {
	elsewhere := t.TempDir()

	cases := []struct {
		name string
		edit func(c *Config)
	}{
		{"content dir below output", func(c *Config) {
			c.Build.OutputDir = "site"
			c.Build.ContentDir = "site/content"
		}},
		{"site root below output", func(c *Config) {
			c.Build.OutputDir = "public"
			c.Build.IndexPage = "public/www/index.html"
		}},
		{"config dir below output", func(c *Config) {
			c.Dir = filepath.Join(elsewhere, "conf")
			c.Build.OutputDir = elsewhere
			c.Build.ContentDir = t.TempDir()
			c.Build.IndexPage = filepath.Join(t.TempDir(), "index.html")
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.edit(&cfg)
			var ve domainerr.ValidationError
			require.True(t, errors.As(cfg.Validate(), &ve))
			require.Equal(t, []string{"build.output_dir"}, ve.Fields())
		})
	}
}

func TestValidate_SiblingOutputIsAllowed(t *testing.T) {
	cfg := Default()
	cfg.Dir = "."
	cfg.Build.OutputDir = "content-out"
	require.NoError(t, cfg.Validate())
}
