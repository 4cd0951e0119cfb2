package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quarry-labs/passage/internal/adapters/driven/extract"
	"github.com/quarry-labs/passage/internal/adapters/driven/storage/memory"
	"github.com/quarry-labs/passage/internal/analysis"
	"github.com/quarry-labs/passage/internal/chunkers/structured"
	"github.com/quarry-labs/passage/internal/chunkers/table"
	"github.com/quarry-labs/passage/internal/chunkers/text"
	"github.com/quarry-labs/passage/internal/core/services"
)

func testChunkingService() *services.ChunkingService {
	return services.NewChunkingService(analysis.New(), structured.New(), table.New(), text.New())
}

func TestPorts_Validate(t *testing.T) {
	chunking := testChunkingService()

	tests := []struct {
		name    string
		ports   Ports
		wantErr error
	}{
		{
			name:    "missing chunking service",
			ports:   Ports{},
			wantErr: ErrMissingChunkingService,
		},
		{
			name:  "chunking only is enough",
			ports: Ports{Chunking: chunking},
		},
		{
			name: "all ports",
			ports: Ports{
				Chunking: chunking,
				Ingest:   services.NewIngestService(extract.NewDefaultRegistry(), chunking, nil),
				Store:    memory.NewChunkStore(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewServer_RequiresChunking(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingChunkingService)

	srv, err := NewServer(&Ports{Chunking: testChunkingService()})
	assert.NoError(t, err)
	assert.NotNil(t, srv)
}

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"passage://documents/doc-1/chunks", "doc-1"},
		{"passage://documents/abc-123-def/chunks", "abc-123-def"},
		{"passage://documents", ""},
		{"passage://documents//chunks", ""},
		{"passage://documents/doc-1/extra/chunks", ""},
		{"passage://other/doc-1/chunks", ""},
		{"http://documents/doc-1/chunks", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractDocumentID(tt.uri), "uri %q", tt.uri)
	}
}
