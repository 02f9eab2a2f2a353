package logfields

import (
	"fmt"
	"log/slog"
)

// Log field names shared by the build, watch and serve packages.
const (
	KeyFile       = "file"
	KeySlug       = "slug"
	KeyPath       = "path"
	KeyPages      = "pages"
	KeySkipped    = "skipped"
	KeyBuildID    = "build_id"
	KeyDurationMS = "duration_ms"
	KeyHeadings   = "headings"
	KeyEvent      = "event"
	KeyAddr       = "addr"
	KeyRoute      = "route"
	KeyError      = "error"
)

func File(name string) slog.Attr      { return slog.String(KeyFile, name) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Skipped(n int) slog.Attr         { return slog.Int(KeySkipped, n) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Headings(n int) slog.Attr        { return slog.Int(KeyHeadings, n) }
func Event(op string) slog.Attr       { return slog.String(KeyEvent, op) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Route(r fmt.Stringer) slog.Attr  { return slog.String(KeyRoute, r.String()) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
