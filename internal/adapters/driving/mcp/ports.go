package mcp

import (
	"github.com/quarry-labs/passage/internal/core/ports/driven"
	"github.com/quarry-labs/passage/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chunking runs analysis and chunking on text.
	Chunking driving.ChunkingService

	// Ingest runs the full file ingestion pipeline.
	Ingest driving.IngestService

	// Store exposes persisted documents and chunks as resources.
	Store driven.ChunkStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chunking == nil {
		return ErrMissingChunkingService
	}
	// Ingest and Store are optional; the matching tools and resources
	// degrade gracefully without them.
	return nil
}
