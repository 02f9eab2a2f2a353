package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var ErrInvalidFrontMatter = errors.New("invalid front matter")

// Matter is the decoded front matter block. Keys are kept as written.
type Matter map[string]any

// String returns the value under key as trimmed text. Scalars other than
// strings are formatted; maps and lists yield "".
func (m Matter) String(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(x)
	default:
		return ""
	}
}

func (m Matter) Title() string   { return m.String("title") }
func (m Matter) Excerpt() string { return m.String("excerpt") }

// Date returns the raw date value, which may be a string or a time.Time
// depending on how the YAML scalar was written.
func (m Matter) Date() (any, bool) {
	v, ok := m["date"]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

// ParseFrontMatter splits a leading "---" delimited YAML block from the body.
// Documents without the opening delimiter return an empty Matter and the whole
// input as body.
func ParseFrontMatter(raw []byte) (Matter, []byte, error) {
	norm := bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	norm = bytes.ReplaceAll(norm, []byte("\r"), []byte("\n"))
	norm = bytes.TrimPrefix(norm, []byte("\ufeff"))

	const (
		sep      = "---"
		sepLine  = sep + "\n"
		closeMid = "\n" + sep + "\n"
	)

	if !bytes.HasPrefix(norm, []byte(sepLine)) {
		return Matter{}, norm, nil
	}

	rest := norm[len(sepLine):]

	var yamlPart, body []byte
	switch {
	case bytes.HasPrefix(rest, []byte(sepLine)):
		// "---\n---\n": empty block
		body = rest[len(sepLine):]
	case bytes.Equal(rest, []byte(sep)):
	default:
		if parts := bytes.SplitN(rest, []byte(closeMid), 2); len(parts) == 2 {
			yamlPart, body = parts[0], parts[1]
		} else if bytes.HasSuffix(rest, []byte("\n"+sep)) {
			yamlPart = rest[:len(rest)-len("\n"+sep)]
		} else {
			return nil, nil, fmt.Errorf("%w: unterminated block", ErrInvalidFrontMatter)
		}
	}

	m := Matter{}
	if len(bytes.TrimSpace(yamlPart)) > 0 {
		if err := yaml.Unmarshal(yamlPart, &m); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
		}
		if m == nil {
			m = Matter{}
		}
	}
	return m, body, nil
}
