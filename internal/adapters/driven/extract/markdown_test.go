package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/passage/internal/core/domain"
)

func extractMarkdown(t *testing.T, content string) *domain.ExtractedContent {
	t.Helper()
	result, err := NewMarkdown().Extract(context.Background(), &domain.RawDocument{
		URI:      "/docs/manual.md",
		FileType: "md",
		Content:  []byte(content),
	})
	require.NoError(t, err)
	return &result.Content
}

func TestMarkdown_SectionsFromHeadings(t *testing.T) {
	content := extractMarkdown(t, `# Pump Manual

## Overview

Covers routine maintenance.

## Safety

Isolate power first.

### Lockout

Apply the lockout tag.
`)

	require.Len(t, content.Sections, 4)
	assert.Equal(t, "Pump Manual", content.Sections[0].Title)
	assert.Equal(t, 1, content.Sections[0].Level)
	assert.Equal(t, "Overview", content.Sections[1].Title)
	assert.Equal(t, 2, content.Sections[1].Level)
	assert.Equal(t, "Covers routine maintenance.", content.Sections[1].Content)
	assert.Equal(t, "Lockout", content.Sections[3].Title)
	assert.Equal(t, 3, content.Sections[3].Level)
}

func TestMarkdown_FirstH1BecomesTitle(t *testing.T) {
	result, err := NewMarkdown().Extract(context.Background(), &domain.RawDocument{
		URI:      "/docs/anything.md",
		FileType: "md",
		Content:  []byte("# Pump Maintenance Manual\n\nBody.\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pump Maintenance Manual", result.Document.Title)
}

func TestMarkdown_TitleFallsBackToFilename(t *testing.T) {
	result, err := NewMarkdown().Extract(context.Background(), &domain.RawDocument{
		URI:      "/docs/pump-notes.md",
		FileType: "md",
		Content:  []byte("No headings here at all.\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "pump-notes", result.Document.Title)
}

func TestMarkdown_PreambleBecomesUntitledSection(t *testing.T) {
	content := extractMarkdown(t, `Introductory text before any heading.

## First Section

Body.
`)

	require.Len(t, content.Sections, 2)
	assert.Empty(t, content.Sections[0].Title)
	assert.Equal(t, "Introductory text before any heading.", content.Sections[0].Content)
}

func TestMarkdown_DetectsTableSections(t *testing.T) {
	content := extractMarkdown(t, `## Parts

| Part | Qty |
| --- | --- |
| Impeller | 2 |
| Seal | 4 |

## Notes

Prose only, with one | pipe character in the middle of text
spread across several lines of ordinary prose so the pipe
density stays too low to count as a table.
`)

	require.Len(t, content.Sections, 2)
	require.NotNil(t, content.Sections[0].Table, "pipe-dense section should carry TableData")
	assert.True(t, len(content.Sections[0].Table.Rows) >= 3)
	assert.Nil(t, content.Sections[1].Table, "prose section must not become a table")
	assert.True(t, content.Structure.HasTables)
}

func TestMarkdown_TableOfContentsFlag(t *testing.T) {
	content := extractMarkdown(t, `## Contents

1. Overview
2. Safety

## Overview

Body.
`)
	assert.True(t, content.Structure.HasTableOfContents)
}

func TestMarkdown_CRLFNormalised(t *testing.T) {
	content := extractMarkdown(t, "## A\r\n\r\nLine one.\r\nLine two.\r\n")

	require.Len(t, content.Sections, 1)
	assert.Equal(t, "Line one.\nLine two.", content.Sections[0].Content)
	assert.NotContains(t, content.FullText, "\r")
}

func TestParseHeading(t *testing.T) {
	tests := []struct {
		line      string
		wantLevel int
		wantText  string
	}{
		{"# Title", 1, "Title"},
		{"### Sub Section", 3, "Sub Section"},
		{"###### Deep", 6, "Deep"},
		{"####### Too deep", 0, ""},
		{"Plain text", 0, ""},
		{"#", 0, ""},
		{"  ## Indented", 2, "Indented"},
		{"## Trailing ##", 2, "Trailing"},
	}

	for _, tt := range tests {
		level, text := parseHeading(tt.line)
		assert.Equal(t, tt.wantLevel, level, "line %q", tt.line)
		assert.Equal(t, tt.wantText, text, "line %q", tt.line)
	}
}
