package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplateRenderer executes the built-in page and listing templates. They are
// plain text templates: values are escaped explicitly with the escape func,
// and only PageView.Body is written raw.
type TemplateRenderer struct {
	tpl *template.Template
}

var _ Renderer = (*TemplateRenderer)(nil)

func NewTemplateRenderer() (*TemplateRenderer, error) {
	tpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"page.tmpl", "listing.tmpl"} {
		if tpl.Lookup(name) == nil {
			return nil, fmt.Errorf("missing template: %s", name)
		}
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"escape": Escape,
	}
}

func (r *TemplateRenderer) RenderPage(ctx context.Context, page PageView) ([]byte, error) {
	return r.exec("page.tmpl", page)
}

func (r *TemplateRenderer) RenderListing(ctx context.Context, listing ListingView) ([]byte, error) {
	return r.exec("listing.tmpl", listing)
}

func (r *TemplateRenderer) exec(name string, data any) ([]byte, error) {
	t := r.tpl.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
