package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"writings/internal/domain/config"
	"writings/internal/domain/content"
	"writings/internal/domain/site"
)

func TestRouteBuilder_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Resolve(dir)

	rb, err := NewRouteBuilder(cfg)
	require.NoError(t, err)
	require.Equal(t, "..", rb.RootRel())

	r := rb.PageRoute("a")
	require.Equal(t, site.RoutePage, r.Kind)
	require.Equal(t, filepath.Join(dir, "writings", "a.html"), r.OutPath)
	require.Equal(t, "writings/a.html", r.Href)

	require.Equal(t, filepath.Join(dir, "script.js"), rb.ScriptRoute().OutPath)
	require.Equal(t, "index.html", rb.IndexRoute().Href)
	require.Equal(t, "page slug=a out="+r.OutPath+" href=writings/a.html", r.String())
}

func TestRouteBuilder_NestedOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Build.OutputDir = "posts/2024"
	cfg.Resolve(dir)

	rb, err := NewRouteBuilder(cfg)
	require.NoError(t, err)
	require.Equal(t, "../..", rb.RootRel())

	routes := rb.BuildPageRoutes([]content.Item{{Slug: "x"}, {Slug: "y"}})
	require.Len(t, routes, 2)
	require.Equal(t, "posts/2024/x.html", routes[0].Href)
	require.Equal(t, "posts/2024/y.html", routes[1].Href)
}
