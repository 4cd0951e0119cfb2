// Package domain defines the core business entities for Passage.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: Identity and provenance for one source file
//   - ExtractedContent: Flat text plus sections produced by extraction
//   - DocumentSection: A reconstructed hierarchy node
//   - Chunk: A bounded, retrievable unit of document content
//   - StructureAnalysis: The classification that drives strategy selection
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
