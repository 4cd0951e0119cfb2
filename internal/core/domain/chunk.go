package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ChunkType classifies the dominant content of a chunk.
type ChunkType string

const (
	ChunkText         ChunkType = "text"
	ChunkHeading      ChunkType = "heading"
	ChunkTable        ChunkType = "table"
	ChunkList         ChunkType = "list"
	ChunkProcedure    ChunkType = "procedure"
	ChunkImageCaption ChunkType = "image_caption"
	ChunkCode         ChunkType = "code"
	ChunkOther        ChunkType = "other"
)

// Chunk is the chunking core's sole output unit: a bounded, retrievable
// passage with enough structural metadata to build citations without
// re-reading the source document.
//
// For a fixed document, ChunkIndex values form the contiguous range
// [0, TotalChunks) and TotalChunks is identical across the whole batch.
// Chunks are single-shot: created during one chunking call and never
// mutated afterwards.
type Chunk struct {
	// ID is deterministic, derived from document ID and chunk index.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the trimmed text of this chunk, one semantic unit.
	Content string

	// ChunkIndex is the 0-based position within the document.
	ChunkIndex int

	// TotalChunks is the batch size, set once all chunks are produced.
	TotalChunks int

	// Type classifies the chunk content.
	Type ChunkType

	// Heading is the nearest heading for this chunk, if any.
	Heading string

	// SectionHierarchy lists ancestor headings root → immediate parent.
	SectionHierarchy []string

	// SectionNumber is the parsed section number (e.g. "3.4.2"), if any.
	SectionNumber string

	// HierarchyLevel is the depth of the source section (0 = root).
	HierarchyLevel int

	// PageNumber is the page the chunk's source text starts on (0 if unknown).
	PageNumber int

	// Keywords is a bounded list of salient terms for this chunk.
	Keywords []string

	// References lists detected cross-references to other sections,
	// figures, or tables.
	References []string

	// ContentHash is a deterministic fingerprint of Content, used for
	// idempotent re-indexing.
	ContentHash string

	// CreatedAt is when the chunk was produced. Metadata only; it never
	// influences chunking behaviour.
	CreatedAt time.Time

	// Metadata contains strategy-specific key-value pairs.
	Metadata map[string]any
}

// ChunkID derives the deterministic chunk identifier for a document
// and index. Re-chunking the same document yields the same IDs.
func ChunkID(documentID string, index int) string {
	return fmt.Sprintf("%s-chunk-%d", documentID, index)
}

// HashContent computes the content-addressed fingerprint of a chunk's
// text. It is a pure function: identical content always yields the
// identical hash.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
