package domain

import "time"

// ProcessingStatus tracks a document through the ingestion pipeline.
type ProcessingStatus string

const (
	// StatusPending means the document is queued but untouched.
	StatusPending ProcessingStatus = "pending"

	// StatusProcessing means extraction or chunking is in progress.
	StatusProcessing ProcessingStatus = "processing"

	// StatusComplete means chunks have been produced and stored.
	StatusComplete ProcessingStatus = "complete"

	// StatusError means processing failed and should be retried or inspected.
	StatusError ProcessingStatus = "error"
)

// Document represents identity and provenance metadata for one source file.
// It is immutable once extraction starts: the chunking core reads it and
// never writes it back.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title.
	Title string

	// CourseID groups documents by course or organisational unit.
	CourseID string

	// FileType is the declared source format (e.g. "pdf", "md", "csv").
	FileType string

	// Classification is an optional marking carried through to citations.
	Classification string

	// Author is optional provenance metadata.
	Author string

	// URI is the original location (file path, URL, etc).
	URI string

	// Status tracks the document through the processing pipeline.
	Status ProcessingStatus

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the document was first seen.
	CreatedAt time.Time

	// UpdatedAt is when the document was last updated.
	UpdatedAt time.Time
}

// RawDocument represents opaque bytes handed to an extractor.
// It is the input to the extraction boundary, before any structure exists.
type RawDocument struct {
	// URI is the original location (file path, URL, etc).
	URI string

	// FileType is the lowercased extension without the dot (e.g. "md").
	FileType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains caller-specific key-value pairs.
	Metadata map[string]any
}

// TableData is the normalised representation of one detected table.
// Rows always includes the header row when one was recognised.
type TableData struct {
	// Caption is the table caption line, if one was found.
	Caption string

	// Rows holds the cell grid, one slice per row.
	Rows [][]string

	// Raw preserves the original textual form of the table.
	Raw string
}

// Section is one extracted region of a document, in reading order.
type Section struct {
	// Title is the section heading. May be empty for untitled regions.
	Title string

	// Content is the section body text, excluding the heading line.
	Content string

	// Level is the heading depth as reported by the extractor (1 = top).
	Level int

	// PageNumber is the page this section starts on (0 if unknown).
	PageNumber int

	// Table holds the section's table when the extractor detected one.
	Table *TableData
}

// StructureInfo carries the structure flags the extractor observed.
type StructureInfo struct {
	HasTableOfContents bool
	HasFootnotes       bool
	IsSpreadsheet      bool
	HasTables          bool
	DetectedLanguage   string
}

// ExtractedContent is the chunking core's sole input besides Document.
// It is produced once per document by an extractor and never mutated
// by the core.
type ExtractedContent struct {
	// FullText is the flat text of the entire document.
	FullText string

	// Sections is the ordered sequence of extracted sections.
	Sections []Section

	// Structure holds the flags observed during extraction.
	Structure StructureInfo
}

// IsEmpty reports whether there is anything at all to chunk.
func (c *ExtractedContent) IsEmpty() bool {
	if c == nil {
		return true
	}
	if len(c.Sections) > 0 {
		return false
	}
	return len(c.FullText) == 0
}

// TitledSectionCount returns the number of sections with a non-empty title.
func (c *ExtractedContent) TitledSectionCount() int {
	count := 0
	for _, s := range c.Sections {
		if s.Title != "" {
			count++
		}
	}
	return count
}

// TableSectionRatio returns the fraction of sections carrying a table.
// Returns 0 when there are no sections.
func (c *ExtractedContent) TableSectionRatio() float64 {
	if len(c.Sections) == 0 {
		return 0
	}
	withTable := 0
	for _, s := range c.Sections {
		if s.Table != nil {
			withTable++
		}
	}
	return float64(withTable) / float64(len(c.Sections))
}
