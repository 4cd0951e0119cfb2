package chunkers

import (
	"github.com/quarry-labs/passage/internal/chunkers/structured"
	"github.com/quarry-labs/passage/internal/chunkers/table"
	"github.com/quarry-labs/passage/internal/chunkers/text"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
)

// RegisterDefaults registers all built-in chunking strategies.
// The builders ignore their config maps: strategy tuning lives in
// domain.ChunkingOptions passed at chunk time, not in construction.
func RegisterDefaults(r *Registry) {
	r.Register("plain_text", func(cfg map[string]any) (driven.Chunker, error) {
		return text.New(), nil
	})

	r.Register("table_only", func(cfg map[string]any) (driven.Chunker, error) {
		return table.New(), nil
	})

	r.Register("structured", func(cfg map[string]any) (driven.Chunker, error) {
		return structured.New(), nil
	})
}

// NewDefaultRegistry creates a registry with all built-in strategies.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
