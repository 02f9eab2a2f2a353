package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"writings/internal/domain/config"
	"writings/internal/domain/content"
)

func testChrome() Chrome {
	cfg := config.Default()
	cfg.Site.Title = "Jane <Doe>"
	return NewChrome(cfg.Site, cfg.Build, "..")
}

func TestNewChrome_RelativeLinks(t *testing.T) {
	c := testChrome()
	require.Equal(t, "../index.html", c.HomeHref)
	require.Equal(t, "../styles.css", c.Stylesheet)
	require.Equal(t, "../script.js", c.Script)
	require.Equal(t, []NavLink{
		{Label: "Projects", Href: "../index.html#projects"},
		{Label: "Things I've Written", Href: "../index.html#writings"},
	}, c.Nav)
}

func TestRelHref(t *testing.T) {
	require.Equal(t, "https://example.com/x", relHref("..", "https://example.com/x"))
	require.Equal(t, "/abs", relHref("..", "/abs"))
	require.Equal(t, "#top", relHref("..", "#top"))
	require.Equal(t, "a.html", relHref(".", "a.html"))
	require.Equal(t, "../../a.html", relHref("../..", "a.html"))
}

func TestRenderPage(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	page := PageView{
		Chrome:   testChrome(),
		Title:    `Tom & "Jerry"`,
		Date:     "2024-01-02",
		ReadTime: "1 min read",
		Body:     "<h1 id=\"hi\">Hi</h1>\n<p>world</p>\n",
	}
	out, err := r.RenderPage(context.Background(), page)
	require.NoError(t, err)
	html := string(out)

	require.True(t, strings.HasPrefix(html, "<!DOCTYPE html>\n<html lang=\"en\">"))
	require.Contains(t, html, "<title>Tom &amp; &quot;Jerry&quot; - Jane &lt;Doe&gt;</title>")
	require.Contains(t, html, "<h1>Tom &amp; &quot;Jerry&quot;</h1>")
	require.Contains(t, html, `<time class="writing-date">2024-01-02</time>`)
	require.Contains(t, html, `<span class="writing-reading-time">1 min read</span>`)
	require.Contains(t, html, "<div class=\"writing-content\">\n                <h1 id=\"hi\">Hi</h1>\n<p>world</p>\n")
	require.Contains(t, html, `<a href="../index.html#projects" class="nav-link">Projects</a>`)
	require.Contains(t, html, `<link rel="stylesheet" href="../styles.css">`)
	require.Contains(t, html, `<script src="../script.js"></script>`)
	require.Contains(t, html, `filter id="rough-icon"`)
	require.Contains(t, html, "<footer/>")

	again, err := r.RenderPage(context.Background(), page)
	require.NoError(t, err)
	require.Equal(t, out, again)
}

func TestRenderPage_Footer(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	c := testChrome()
	c.Footer = "© me"
	out, err := r.RenderPage(context.Background(), PageView{Chrome: c, Title: "t"})
	require.NoError(t, err)
	require.Contains(t, string(out), "<footer>© me</footer>")
	require.NotContains(t, string(out), "<footer/>")
}

func TestRenderListing(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	out, err := r.RenderListing(context.Background(), ListingView{Items: []content.Summary{
		{Title: "Newer", Date: "2024-06-01", Excerpt: "x < y", Href: "writings/b.html"},
		{Title: "Older", Date: "2024-01-01", Href: `writings/"a".html`},
	}})
	require.NoError(t, err)

	want := `                <article class="writing">
                    <time class="writing-date">2024-06-01</time>
                    <h3><a href="writings/b.html" class="writing-link">Newer</a></h3>
                    <p class="writing-excerpt">
                        x &lt; y
                    </p>
                </article>
                <article class="writing">
                    <time class="writing-date">2024-01-01</time>
                    <h3><a href="writings/&quot;a&quot;.html" class="writing-link">Older</a></h3>
                    <p class="writing-excerpt">
                        
                    </p>
                </article>`
	require.Equal(t, want, string(out))
}

func TestRenderListing_Empty(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	out, err := r.RenderListing(context.Background(), ListingView{})
	require.NoError(t, err)
	require.Empty(t, out)
}
