package ingest

import (
	"fmt"
	"os"

	"writings/internal/domain/content"
	domainerr "writings/internal/domain/errors"
	"writings/internal/textutil"
)

// Document is one source file split into metadata and markdown body.
type Document struct {
	Source SourceFile
	Matter Matter
	Body   []byte
	Raw    []byte
}

// Load reads sf and parses its front matter. Parse failures wrap
// ErrInvalidFrontMatter.
func Load(sf SourceFile) (Document, error) {
	raw, err := os.ReadFile(sf.Path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", sf.Path, err)
	}

	m, body, err := ParseFrontMatter(raw)
	if err != nil {
		return Document{Source: sf, Raw: raw}, fmt.Errorf("%s: %w", sf.Path, err)
	}

	return Document{
		Source: sf,
		Matter: m,
		Body:   body,
		Raw:    raw,
	}, nil
}

// Item validates the required fields and builds the content item. Reading
// time and headings are filled in by the caller once the body is rendered.
func (d Document) Item() (content.Item, error) {
	var ve domainerr.ValidationError
	ve.Subject = d.Source.Path

	it := content.Item{
		Title:      d.Matter.Title(),
		Excerpt:    d.Matter.Excerpt(),
		Slug:       d.Source.Slug(),
		SourcePath: d.Source.Path,
	}

	if it.Title == "" {
		ve.Add("title", "is required")
	}
	if v, ok := d.Matter.Date(); !ok {
		ve.Add("date", "is required")
	} else if date, err := textutil.FormatDate(v); err != nil {
		ve.Add("date", err.Error())
	} else {
		it.Date = date
	}
	if it.Slug == "" {
		ve.Add("slug", "file name has no stem")
	}

	if err := ve.Err(); err != nil {
		return content.Item{}, err
	}
	it.Normalize()
	return it, nil
}
