package build

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrMarkersNotFound = errors.New("markers not found")

// Markers delimit the generated region of the index page.
type Markers struct {
	Start string
	End   string
}

// SpliceBetween replaces everything strictly between the start marker and the
// first end marker after it with "\n" + fragment + "\n" + indent, where indent
// is the leading whitespace of the start marker's line. The markers are kept.
// When either marker is missing doc is returned unchanged with an error
// wrapping ErrMarkersNotFound.
func SpliceBetween(doc, fragment []byte, m Markers) ([]byte, error) {
	start := bytes.Index(doc, []byte(m.Start))
	if start < 0 {
		return doc, fmt.Errorf("%w: no %q", ErrMarkersNotFound, m.Start)
	}
	afterStart := start + len(m.Start)

	rel := bytes.Index(doc[afterStart:], []byte(m.End))
	if rel < 0 {
		if bytes.Contains(doc[:start], []byte(m.End)) {
			return doc, fmt.Errorf("%w: %q comes before %q", ErrMarkersNotFound, m.End, m.Start)
		}
		return doc, fmt.Errorf("%w: no %q", ErrMarkersNotFound, m.End)
	}
	end := afterStart + rel

	indent := lineIndent(doc, start)

	out := make([]byte, 0, len(doc)+len(fragment)+len(indent)+2)
	out = append(out, doc[:afterStart]...)
	out = append(out, '\n')
	out = append(out, fragment...)
	out = append(out, '\n')
	out = append(out, indent...)
	out = append(out, doc[end:]...)
	return out, nil
}

func lineIndent(doc []byte, pos int) []byte {
	lineStart := bytes.LastIndexByte(doc[:pos], '\n') + 1
	i := lineStart
	for i < pos && (doc[i] == ' ' || doc[i] == '\t') {
		i++
	}
	return doc[lineStart:i]
}
