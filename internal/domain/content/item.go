package content

import (
	"sort"
	"strings"
)

// Item is one content file after front matter validation. The rendered body
// is not kept here; it only lives long enough to be written out.
type Item struct {
	Title      string
	Date       string // YYYY-MM-DD
	Excerpt    string
	Slug       string
	SourcePath string
	ReadTime   string

	Headings []Heading
}

type Heading struct {
	Level int
	ID    string
	Text  string
}

// Summary is what the index page lists for an item.
type Summary struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Excerpt string `json:"excerpt"`
	Slug    string `json:"slug"`
	Href    string `json:"href"`
}

func (it *Item) Normalize() {
	it.Title = strings.TrimSpace(it.Title)
	it.Date = strings.TrimSpace(it.Date)
	it.Excerpt = strings.TrimSpace(it.Excerpt)
	it.Slug = strings.TrimSpace(it.Slug)
}

func (it Item) Summary(href string) Summary {
	return Summary{
		Title:   it.Title,
		Date:    it.Date,
		Excerpt: it.Excerpt,
		Slug:    it.Slug,
		Href:    href,
	}
}

// Listing is ordered newest first once sorted. Dates are compared as
// YYYY-MM-DD strings, which order the same way the calendar does.
type Listing []Summary

func (l Listing) SortByDateDesc() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Date > l[j].Date
	})
}

func (l Listing) IsSortedByDateDesc() bool {
	for i := 1; i < len(l); i++ {
		if l[i].Date > l[i-1].Date {
			return false
		}
	}
	return true
}
