package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFrontMatter_Basic(t *testing.T) {
	m, body, err := ParseFrontMatter([]byte("---\ntitle: \"Hello\"\ndate: \"2024-01-02\"\nexcerpt: short\n---\n# Hi\n\nworld"))
	require.NoError(t, err)
	require.Equal(t, "Hello", m.Title())
	require.Equal(t, "short", m.Excerpt())
	d, ok := m.Date()
	require.True(t, ok)
	require.Equal(t, "2024-01-02", d)
	require.Equal(t, "# Hi\n\nworld", string(body))
}

func TestParseFrontMatter_CRLF(t *testing.T) {
	m, body, err := ParseFrontMatter([]byte("---\r\ntitle: Hello\r\n---\r\nbody\r\n"))
	require.NoError(t, err)
	require.Equal(t, "Hello", m.Title())
	require.Equal(t, "body\n", string(body))
}

func TestParseFrontMatter_UnquotedDateStaysReadable(t *testing.T) {
	m, _, err := ParseFrontMatter([]byte("---\ntitle: x\ndate: 2024-06-01\n---\n"))
	require.NoError(t, err)
	d, ok := m.Date()
	require.True(t, ok)
	require.NotNil(t, d)
}

func TestParseFrontMatter_NoFrontMatter(t *testing.T) {
	raw := "# Just markdown\n\ntext\n"
	m, body, err := ParseFrontMatter([]byte(raw))
	require.NoError(t, err)
	require.Empty(t, m)
	require.Equal(t, raw, string(body))
	require.Equal(t, "", m.Title())
	_, ok := m.Date()
	require.False(t, ok)
}

func TestParseFrontMatter_EmptyBlock(t *testing.T) {
	m, body, err := ParseFrontMatter([]byte("---\n---\nbody"))
	require.NoError(t, err)
	require.Empty(t, m)
	require.Equal(t, "body", string(body))
}

func TestParseFrontMatter_NoBody(t *testing.T) {
	m, body, err := ParseFrontMatter([]byte("---\ntitle: only\n---"))
	require.NoError(t, err)
	require.Equal(t, "only", m.Title())
	require.Empty(t, body)
}

func TestParseFrontMatter_Unterminated(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("---\ntitle: x\nno closing line"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidFrontMatter))
}

func TestParseFrontMatter_BadYAML(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("---\ntitle: [unclosed\n---\nbody"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidFrontMatter))
}

func TestMatter_StringFormatsScalars(t *testing.T) {
	m := Matter{"n": 3, "b": true, "s": "  padded ", "list": []any{"a"}}
	require.Equal(t, "3", m.String("n"))
	require.Equal(t, "true", m.String("b"))
	require.Equal(t, "padded", m.String("s"))
	require.Equal(t, "", m.String("list"))
	require.Equal(t, "", m.String("missing"))
}

func TestMatter_BlankDateIsMissing(t *testing.T) {
	_, ok := Matter{"date": "  "}.Date()
	require.False(t, ok)
}
