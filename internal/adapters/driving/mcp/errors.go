// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Passage. It lets AI assistants chunk and analyse documents and
// browse stored chunk batches.
package mcp

import "errors"

// ErrMissingChunkingService is returned when the chunking service is not provided.
var ErrMissingChunkingService = errors.New("mcp: chunking service is required")
