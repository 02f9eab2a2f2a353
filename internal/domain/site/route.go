package site

import (
	"strings"
)

type RouteKind string

const (
	RoutePage   RouteKind = "page"
	RouteIndex  RouteKind = "index"
	RouteScript RouteKind = "script"
)

// Route ties a generated file on disk to the link other pages use for it.
type Route struct {
	Kind    RouteKind
	Slug    string
	OutPath string // filesystem path of the written file
	Href    string // link relative to the index page's directory
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.OutPath != "" {
		parts = append(parts, "out="+r.OutPath)
	}
	if r.Href != "" {
		parts = append(parts, "href="+r.Href)
	}
	return strings.Join(parts, " ")
}
