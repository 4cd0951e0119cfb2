package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quarry-labs/passage/internal/core/domain"
)

// ChunkTextInput is the input schema for the chunk_text tool.
type ChunkTextInput struct {
	Text        string `json:"text" jsonschema:"the document text to chunk"`
	FileType    string `json:"file_type,omitempty" jsonschema:"declared source format such as md or txt (default txt)"`
	TargetSize  int    `json:"target_size,omitempty" jsonschema:"preferred chunk length in characters"`
	MaxSize     int    `json:"max_size,omitempty" jsonschema:"maximum chunk length in characters"`
	OverlapSize int    `json:"overlap_size,omitempty" jsonschema:"approximate overlap between adjacent chunks in characters"`
}

// ChunkTextOutput is the output schema for the chunk_text tool.
type ChunkTextOutput struct {
	Chunks   []ChunkOutput `json:"chunks"`
	Count    int           `json:"count"`
	Strategy string        `json:"strategy"`
	FellBack bool          `json:"fell_back,omitempty"`
}

// ChunkOutput represents a single produced chunk.
type ChunkOutput struct {
	Index            int      `json:"index"`
	Content          string   `json:"content"`
	Type             string   `json:"type"`
	Heading          string   `json:"heading,omitempty"`
	SectionHierarchy []string `json:"section_hierarchy,omitempty"`
	SectionNumber    string   `json:"section_number,omitempty"`
	PageNumber       int      `json:"page_number,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	References       []string `json:"references,omitempty"`
	ContentHash      string   `json:"content_hash"`
}

// AnalyzeInput is the input schema for the analyze_structure tool.
type AnalyzeInput struct {
	Text     string `json:"text" jsonschema:"the document text to analyse"`
	FileType string `json:"file_type,omitempty" jsonschema:"declared source format such as md or csv (default txt)"`
}

// AnalyzeOutput is the output schema for the analyze_structure tool.
type AnalyzeOutput struct {
	HasHeadings       bool   `json:"has_headings"`
	HasTables         bool   `json:"has_tables"`
	HasLists          bool   `json:"has_lists"`
	IsTechnicalManual bool   `json:"is_technical_manual"`
	Complexity        string `json:"complexity"`
	DocumentType      string `json:"document_type"`
}

// IngestFileInput is the input schema for the ingest_file tool.
type IngestFileInput struct {
	Path string `json:"path" jsonschema:"local path of the file to ingest"`
}

// IngestFileOutput is the output schema for the ingest_file tool.
type IngestFileOutput struct {
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	ChunkCount int    `json:"chunk_count"`
	Strategy   string `json:"strategy"`
	Unchanged  bool   `json:"unchanged"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "chunk_text",
		Description: "Split document text into bounded, overlapping chunks with structural metadata",
	}, s.handleChunkText)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_structure",
		Description: "Classify document structure, complexity, and type without chunking",
	}, s.handleAnalyzeStructure)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest_file",
			Description: "Extract, chunk, and store a local file",
		}, s.handleIngestFile)
	}
}

// handleChunkText handles the chunk_text tool invocation.
func (s *Server) handleChunkText(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ChunkTextInput,
) (*mcp.CallToolResult, ChunkTextOutput, error) {
	fileType := input.FileType
	if fileType == "" {
		fileType = "txt"
	}

	opts := domain.DefaultChunkingOptions()
	if input.TargetSize > 0 {
		opts.TargetChunkSize = input.TargetSize
	}
	if input.MaxSize > 0 {
		opts.MaxChunkSize = input.MaxSize
	}
	if input.OverlapSize > 0 {
		opts.OverlapSize = input.OverlapSize
	}

	doc := &domain.Document{
		ID:       "mcp-inline",
		FileType: fileType,
	}
	content := &domain.ExtractedContent{FullText: input.Text}

	result, err := s.ports.Chunking.ChunkDocument(ctx, doc, content, opts)
	if err != nil {
		return nil, ChunkTextOutput{}, err
	}

	output := ChunkTextOutput{
		Chunks:   make([]ChunkOutput, len(result.Chunks)),
		Count:    len(result.Chunks),
		Strategy: string(result.Strategy),
		FellBack: result.FellBack,
	}
	for i, c := range result.Chunks {
		output.Chunks[i] = ChunkOutput{
			Index:            c.ChunkIndex,
			Content:          c.Content,
			Type:             string(c.Type),
			Heading:          c.Heading,
			SectionHierarchy: c.SectionHierarchy,
			SectionNumber:    c.SectionNumber,
			PageNumber:       c.PageNumber,
			Keywords:         c.Keywords,
			References:       c.References,
			ContentHash:      c.ContentHash,
		}
	}

	return nil, output, nil
}

// handleAnalyzeStructure handles the analyze_structure tool invocation.
func (s *Server) handleAnalyzeStructure(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	fileType := input.FileType
	if fileType == "" {
		fileType = "txt"
	}

	analysis := s.ports.Chunking.Analyze(input.Text, fileType)

	return nil, AnalyzeOutput{
		HasHeadings:       analysis.HasHeadings,
		HasTables:         analysis.HasTables,
		HasLists:          analysis.HasLists,
		IsTechnicalManual: analysis.IsTechnicalManual,
		Complexity:        string(analysis.Complexity),
		DocumentType:      string(analysis.DocumentType),
	}, nil
}

// handleIngestFile handles the ingest_file tool invocation.
func (s *Server) handleIngestFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestFileInput,
) (*mcp.CallToolResult, IngestFileOutput, error) {
	if input.Path == "" {
		return nil, IngestFileOutput{}, errors.New("path is required")
	}

	result, err := s.ports.Ingest.IngestFile(ctx, input.Path, domain.DefaultChunkingOptions())
	if err != nil {
		return nil, IngestFileOutput{}, err
	}

	return nil, IngestFileOutput{
		DocumentID: result.Document.ID,
		Title:      result.Document.Title,
		ChunkCount: len(result.Chunks),
		Strategy:   string(result.Strategy),
		Unchanged:  result.Unchanged,
	}, nil
}
