package textutil

import (
	"regexp"
	"strings"
)

var (
	tagSpanRe = regexp.MustCompile(`<[^>]*>`)
	nonWordRe = regexp.MustCompile(`[^\w\s-]`)
	spaceRe   = regexp.MustCompile(`\s+`)
	dashRunRe = regexp.MustCompile(`-+`)
)

// Slugify turns heading text (which may still carry inline markup) into a
// lowercase identifier made of ASCII word characters and single dashes.
// Duplicates are not disambiguated.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = tagSpanRe.ReplaceAllString(s, "")
	s = nonWordRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(s, "-")
	s = dashRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
