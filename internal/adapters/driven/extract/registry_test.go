package extract

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
)

func TestRegistry_ForFile_SelectsByExtension(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		fileType string
		want     string
	}{
		{"md", "*extract.Markdown"},
		{"markdown", "*extract.Markdown"},
		{"csv", "*extract.Spreadsheet"},
		{"tsv", "*extract.Spreadsheet"},
		{"txt", "*extract.PlainText"},
		{"log", "*extract.PlainText"},
		{"", "*extract.PlainText"},
		{"MD", "*extract.Markdown"},
		{".md", "*extract.Markdown"},
		// Unknown extensions fall back to plain text.
		{"adoc", "*extract.PlainText"},
		{"xyz", "*extract.PlainText"},
	}

	for _, tt := range tests {
		e, err := r.ForFile(tt.fileType)
		require.NoError(t, err, "fileType %q", tt.fileType)
		assert.Equal(t, tt.want, fmt.Sprintf("%T", e), "fileType %q", tt.fileType)
	}
}

func TestRegistry_ForFile_Unsupported(t *testing.T) {
	// With no fallback registered, an unknown extension is an error.
	r := NewRegistry()
	r.Register(NewMarkdown())

	_, err := r.ForFile("png")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_ForFile_PriorityWins(t *testing.T) {
	r := NewRegistry()
	r.Register(NewPlainText())
	r.Register(&txtOverride{})

	e, err := r.ForFile("txt")
	require.NoError(t, err)
	assert.Equal(t, 70, e.Priority(), "higher priority extractor must win")
}

// txtOverride claims txt with a higher priority than the fallback.
type txtOverride struct{}

func (e *txtOverride) SupportedExtensions() []string { return []string{"txt"} }
func (e *txtOverride) Priority() int                 { return 70 }
func (e *txtOverride) Extract(context.Context, *domain.RawDocument) (*driven.ExtractResult, error) {
	return &driven.ExtractResult{}, nil
}

func TestDocumentID_Deterministic(t *testing.T) {
	a := documentID("/docs/manual.md")
	b := documentID("/docs/manual.md")
	c := documentID("/docs/other.md")

	assert.Equal(t, a, b, "same URI must yield the same document ID")
	assert.NotEqual(t, a, c)
}

func TestTitleFromURI(t *testing.T) {
	assert.Equal(t, "manual", titleFromURI("/docs/manual.md"))
	assert.Equal(t, "pump-guide", titleFromURI("pump-guide"))
}
