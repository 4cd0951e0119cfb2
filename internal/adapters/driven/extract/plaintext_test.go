package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/passage/internal/core/domain"
)

func TestPlainText_Extract(t *testing.T) {
	result, err := NewPlainText().Extract(context.Background(), &domain.RawDocument{
		URI:      "/notes/readme.txt",
		FileType: "txt",
		Content:  []byte("Line one.\r\nLine two.\rLine three.\n"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Line one.\nLine two.\nLine three.\n", result.Content.FullText)
	assert.Empty(t, result.Content.Sections)
	assert.Equal(t, "readme", result.Document.Title)
	assert.Equal(t, domain.StatusPending, result.Document.Status)
}

func TestPlainText_FormFeedPages(t *testing.T) {
	result, err := NewPlainText().Extract(context.Background(), &domain.RawDocument{
		URI:      "/notes/export.txt",
		FileType: "txt",
		Content:  []byte("Page one body.\f\fPage three body.\n"),
	})
	require.NoError(t, err)

	sections := result.Content.Sections
	require.Len(t, sections, 2, "blank pages are skipped")
	assert.Equal(t, "Page one body.", sections[0].Content)
	assert.Equal(t, 1, sections[0].PageNumber)
	assert.Equal(t, "Page three body.", sections[1].Content)
	assert.Equal(t, 3, sections[1].PageNumber)
	assert.NotContains(t, result.Content.FullText, "\f")
}

func TestNormaliseNewlines(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a\r\nb", "a\nb"},
		{"a\rb", "a\nb"},
		{"a\nb", "a\nb"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normaliseNewlines(tt.in))
	}
}
