package render

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Escape replaces the four characters that can break out of HTML text or a
// double-quoted attribute. Every dynamic value in the page and listing
// templates goes through it.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}
