package render

import (
	"strings"

	"writings/internal/domain/config"
	"writings/internal/domain/content"
)

type NavLink struct {
	Label string
	Href  string
}

// Chrome is the site frame shared by every generated page. All hrefs are
// already relative to the page being rendered.
type Chrome struct {
	SiteTitle   string
	Description string
	Language    string
	Footer      string
	HomeHref    string
	Stylesheet  string
	Script      string
	Nav         []NavLink
}

// NewChrome builds the frame for pages that live rootRel away from the site
// root, e.g. ".." for pages one directory below index.html.
func NewChrome(site config.SiteConfig, b config.BuildConfig, rootRel string) Chrome {
	c := Chrome{
		SiteTitle:   site.Title,
		Description: site.Description,
		Language:    site.Language,
		Footer:      site.Footer,
		HomeHref:    relHref(rootRel, baseName(b.IndexPage)),
		Stylesheet:  relHref(rootRel, b.Stylesheet),
		Script:      relHref(rootRel, b.ScriptName),
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if site.Author != "" && c.Description == "" {
		c.Description = "Writing by " + site.Author
	}
	for _, n := range site.Nav {
		c.Nav = append(c.Nav, NavLink{Label: n.Label, Href: relHref(rootRel, n.Href)})
	}
	return c
}

type PageView struct {
	Chrome   Chrome
	Title    string
	Date     string
	ReadTime string
	// Body is rendered markdown and is inserted without escaping.
	Body     string
	Headings []content.Heading
}

type ListingView struct {
	Items []content.Summary
}

// relHref prefixes a site-root relative href with rootRel. Absolute URLs,
// root paths and fragments are returned unchanged.
func relHref(rootRel, href string) string {
	switch {
	case href == "":
		return ""
	case strings.Contains(href, "://"),
		strings.HasPrefix(href, "/"),
		strings.HasPrefix(href, "#"),
		strings.HasPrefix(href, "mailto:"):
		return href
	case rootRel == "" || rootRel == ".":
		return href
	}
	return strings.TrimSuffix(rootRel, "/") + "/" + href
}

func baseName(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
