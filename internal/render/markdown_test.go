package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"writings/internal/domain/content"
)

func TestMarkdownRenderer_HeadingIDs(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownOptions{})

	res, err := r.Render([]byte("# Hi\n\nworld"))
	require.NoError(t, err)
	require.Equal(t, "<h1 id=\"hi\">Hi</h1>\n<p>world</p>\n", string(res.HTML))
	require.Equal(t, []content.Heading{{Level: 1, ID: "hi", Text: "Hi"}}, res.Headings)
}

func TestMarkdownRenderer_HeadingTextIgnoresMarkup(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownOptions{})

	res, err := r.Render([]byte("## Using `go test` *Fast*\n\n### Same\n\n### Same\n"))
	require.NoError(t, err)
	html := string(res.HTML)
	require.Contains(t, html, `<h2 id="using-go-test-fast">Using <code>go test</code> <em>Fast</em></h2>`)
	require.Equal(t, 2, strings.Count(html, `<h3 id="same">`))
	require.Len(t, res.Headings, 3)
	require.Equal(t, "Using go test Fast", res.Headings[0].Text)
}

func TestMarkdownRenderer_EmptySlugHasNoID(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownOptions{})

	res, err := r.Render([]byte("# !!!\n"))
	require.NoError(t, err)
	require.Equal(t, "<h1>!!!</h1>\n", string(res.HTML))
	require.Equal(t, "", res.Headings[0].ID)
}

func TestMarkdownRenderer_GFMAndRawHTML(t *testing.T) {
	r := NewMarkdownRenderer(MarkdownOptions{})

	src := "| a | b |\n|---|---|\n| 1 | 2 |\n\n~~gone~~\n\n<div class=\"note\">kept</div>\n"
	res, err := r.Render([]byte(src))
	require.NoError(t, err)
	html := string(res.HTML)
	require.Contains(t, html, "<table>")
	require.Contains(t, html, "<del>gone</del>")
	require.Contains(t, html, `<div class="note">kept</div>`)
}

func TestMarkdownRenderer_HardWraps(t *testing.T) {
	src := []byte("one\ntwo\n")

	soft, err := NewMarkdownRenderer(MarkdownOptions{}).Render(src)
	require.NoError(t, err)
	require.Equal(t, "<p>one\ntwo</p>\n", string(soft.HTML))

	hard, err := NewMarkdownRenderer(MarkdownOptions{HardWraps: true}).Render(src)
	require.NoError(t, err)
	require.Equal(t, "<p>one<br>\ntwo</p>\n", string(hard.HTML))
}

func TestMarkdownRenderer_Highlighting(t *testing.T) {
	plain := NewMarkdownRenderer(MarkdownOptions{})
	styled := NewMarkdownRenderer(MarkdownOptions{HighlightStyle: "monokai"})
	src := []byte("```go\nfunc main() {}\n```\n")

	a, err := plain.Render(src)
	require.NoError(t, err)
	require.Contains(t, string(a.HTML), `<code class="language-go">`)

	b, err := styled.Render(src)
	require.NoError(t, err)
	require.Contains(t, string(b.HTML), "style=")
	require.NotContains(t, string(b.HTML), `class="language-go"`)
}
