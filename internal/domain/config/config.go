package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	domainerr "writings/internal/domain/errors"
)

// EnvPrefix prefixes every environment override, e.g. WRITINGS_CONTENT_DIR.
const EnvPrefix = "WRITINGS_"

type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Build    BuildConfig    `yaml:"build"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Serve    ServeConfig    `yaml:"serve"`

	// Dir is the directory of the loaded config file, empty for Default().
	Dir string `yaml:"-"`
}

type SiteConfig struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Author      string    `yaml:"author"`
	Language    string    `yaml:"language"`
	Footer      string    `yaml:"footer"`
	Nav         []NavLink `yaml:"nav"`
}

// NavLink hrefs are relative to the site root (the index page's directory).
type NavLink struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type BuildConfig struct {
	ContentDir  string        `yaml:"content_dir"`
	OutputDir   string        `yaml:"output_dir"`
	IndexPage   string        `yaml:"index_page"`
	IndexDB     string        `yaml:"index_db"`
	StartMarker string        `yaml:"start_marker"`
	EndMarker   string        `yaml:"end_marker"`
	Debounce    time.Duration `yaml:"debounce"`
	ScriptName  string        `yaml:"script_name"`
	Stylesheet  string        `yaml:"stylesheet"`
}

type MarkdownConfig struct {
	HighlightStyle string `yaml:"highlight_style"`
	LineNumbers    bool   `yaml:"line_numbers"`
	HardWraps      bool   `yaml:"hard_wraps"`
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:       "My Site",
			Description: "Writing",
			Language:    "en",
			Nav: []NavLink{
				{Label: "Projects", Href: "index.html#projects"},
				{Label: "Things I've Written", Href: "index.html#writings"},
			},
		},
		Build: BuildConfig{
			ContentDir:  "content",
			OutputDir:   "writings",
			IndexPage:   "index.html",
			IndexDB:     ".writings/index.db",
			StartMarker: "<!-- WRITINGS:START -->",
			EndMarker:   "<!-- WRITINGS:END -->",
			Debounce:    100 * time.Millisecond,
			ScriptName:  "script.js",
			Stylesheet:  "styles.css",
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// SiteRoot is the directory holding the index page; output links and the
// client script are placed relative to it.
func (c Config) SiteRoot() string {
	return filepath.Dir(c.Build.IndexPage)
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}
	for i, n := range c.Site.Nav {
		if strings.TrimSpace(n.Label) == "" || strings.TrimSpace(n.Href) == "" {
			ve.Add("site.nav", "entry "+strconv.Itoa(i)+" needs both label and href")
		}
	}

	if strings.TrimSpace(c.Build.ContentDir) == "" {
		ve.Add("build.content_dir", "must not be empty")
	}
	// the output dir is deleted on every build
	out := strings.TrimSpace(c.Build.OutputDir)
	switch {
	case out == "":
		ve.Add("build.output_dir", "must not be empty")
	case within(out, c.SiteRoot()):
		ve.Add("build.output_dir", "must not contain the site root")
	case within(out, c.Build.ContentDir):
		ve.Add("build.output_dir", "must not contain build.content_dir")
	case within(out, c.Dir):
		ve.Add("build.output_dir", "must not contain the config file")
	}
	if strings.TrimSpace(c.Build.IndexPage) == "" {
		ve.Add("build.index_page", "must not be empty")
	}
	if strings.TrimSpace(c.Build.StartMarker) == "" {
		ve.Add("build.start_marker", "must not be empty")
	}
	if strings.TrimSpace(c.Build.EndMarker) == "" {
		ve.Add("build.end_marker", "must not be empty")
	}
	if c.Build.StartMarker == c.Build.EndMarker {
		ve.Add("build.end_marker", "must differ from build.start_marker")
	}
	if c.Build.Debounce <= 0 {
		ve.Add("build.debounce", "must be positive")
	}

	if hs := strings.ToLower(strings.TrimSpace(c.Markdown.HighlightStyle)); hs != "" {
		if _, ok := styles.Registry[hs]; !ok {
			ve.Add("markdown.highlight_style", "unknown chroma style "+c.Markdown.HighlightStyle)
		}
	}

	if strings.TrimSpace(c.Serve.Addr) == "" {
		ve.Add("serve.addr", "must not be empty")
	}

	if ve.HasAny() {
		ve.Subject = "config"
		return ve
	}
	return nil
}

// Load reads path over Default, applies .env and WRITINGS_* overrides,
// resolves relative paths against the config file's directory and validates.
func Load(path string) (Config, error) {
	return load(path, false)
}

// LoadOrDefault behaves like Load but treats a missing config file as empty.
func LoadOrDefault(path string) (Config, error) {
	return load(path, true)
}

func load(path string, allowMissing bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// fields present in the file override the defaults
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	case allowMissing && errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, err
	}

	baseDir := filepath.Dir(path)
	env, err := readDotEnv(filepath.Join(baseDir, ".env"))
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}); err != nil {
		return cfg, err
	}

	cfg.Resolve(baseDir)
	cfg.Dir = baseDir

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readDotEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return env, nil
}

// ApplyEnv overrides build and markdown settings from lookup. Process
// environment takes precedence over .env when Load builds the lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("CONTENT_DIR", &c.Build.ContentDir)
	str("OUTPUT_DIR", &c.Build.OutputDir)
	str("INDEX_PAGE", &c.Build.IndexPage)
	str("INDEX_DB", &c.Build.IndexDB)
	str("HIGHLIGHT_STYLE", &c.Markdown.HighlightStyle)
	str("SERVE_ADDR", &c.Serve.Addr)

	if v, ok := lookup(EnvPrefix + "DEBOUNCE"); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			var ve domainerr.ValidationError
			ve.Subject = "environment"
			ve.Add(EnvPrefix+"DEBOUNCE", err.Error())
			return ve
		}
		c.Build.Debounce = d
	}
	return nil
}

// within reports whether child is dir itself or lies below it.
func within(dir, child string) bool {
	if strings.TrimSpace(dir) == "" || strings.TrimSpace(child) == "" {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absChild, err := filepath.Abs(child)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absChild)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Resolve joins relative filesystem paths onto baseDir.
func (c *Config) Resolve(baseDir string) {
	if baseDir == "" || baseDir == "." {
		return
	}
	for _, p := range []*string{&c.Build.ContentDir, &c.Build.OutputDir, &c.Build.IndexPage, &c.Build.IndexDB} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(baseDir, *p)
		}
	}
}
