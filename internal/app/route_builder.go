package app

import (
	"fmt"
	"path"
	"path/filepath"

	"writings/internal/domain/config"
	"writings/internal/domain/content"
	"writings/internal/domain/site"
)

// RouteBuilder maps content to files under the output directory and to the
// links the index page and generated pages use for them.
type RouteBuilder struct {
	SiteRoot   string
	OutputDir  string
	IndexPage  string
	ScriptName string

	outRel  string // output dir seen from the site root, slash separated
	rootRel string // site root seen from the output dir
}

func NewRouteBuilder(cfg config.Config) (*RouteBuilder, error) {
	root, err := filepath.Abs(cfg.SiteRoot())
	if err != nil {
		return nil, err
	}
	out, err := filepath.Abs(cfg.Build.OutputDir)
	if err != nil {
		return nil, err
	}
	outRel, err := filepath.Rel(root, out)
	if err != nil {
		return nil, fmt.Errorf("output dir relative to site root: %w", err)
	}
	rootRel, err := filepath.Rel(out, root)
	if err != nil {
		return nil, fmt.Errorf("site root relative to output dir: %w", err)
	}
	return &RouteBuilder{
		SiteRoot:   cfg.SiteRoot(),
		OutputDir:  cfg.Build.OutputDir,
		IndexPage:  cfg.Build.IndexPage,
		ScriptName: cfg.Build.ScriptName,
		outRel:     filepath.ToSlash(outRel),
		rootRel:    filepath.ToSlash(rootRel),
	}, nil
}

// RootRel is the relative link prefix from a generated page back to the site
// root, e.g. "..".
func (rb *RouteBuilder) RootRel() string {
	return rb.rootRel
}

func (rb *RouteBuilder) PageRoute(slug string) site.Route {
	return site.Route{
		Kind:    site.RoutePage,
		Slug:    slug,
		OutPath: filepath.Join(rb.OutputDir, slug+".html"),
		Href:    path.Join(rb.outRel, slug+".html"),
	}
}

func (rb *RouteBuilder) BuildPageRoutes(items []content.Item) []site.Route {
	routes := make([]site.Route, 0, len(items))
	for _, it := range items {
		routes = append(routes, rb.PageRoute(it.Slug))
	}
	return routes
}

func (rb *RouteBuilder) IndexRoute() site.Route {
	return site.Route{
		Kind:    site.RouteIndex,
		OutPath: rb.IndexPage,
		Href:    filepath.Base(rb.IndexPage),
	}
}

func (rb *RouteBuilder) ScriptRoute() site.Route {
	return site.Route{
		Kind:    site.RouteScript,
		OutPath: filepath.Join(rb.SiteRoot, rb.ScriptName),
		Href:    rb.ScriptName,
	}
}
