package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/passage/internal/core/domain"
)

var chunkJSON bool

var chunkCmd = &cobra.Command{
	Use:   "chunk [file]",
	Short: "Chunk a document and print the result",
	Long: `Extract and chunk a document without storing anything.

The chunking strategy is selected automatically from the document's
structure. Use --json for machine-readable output.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunk,
}

func init() {
	addChunkingFlags(chunkCmd)
	chunkCmd.Flags().BoolVar(&chunkJSON, "json", false, "Print chunks as JSON")
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, args []string) error {
	if chunkingService == nil || extractors == nil {
		return errors.New("chunking service not configured")
	}

	path := args[0]
	ctx := context.Background()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	fileType := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	extractor, err := extractors.ForFile(fileType)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	extracted, err := extractor.Extract(ctx, &domain.RawDocument{
		URI:      absPath,
		FileType: fileType,
		Content:  data,
	})
	if err != nil {
		return fmt.Errorf("extracting: %w", err)
	}

	result, err := chunkingService.ChunkDocument(ctx, &extracted.Document, &extracted.Content, resolveChunkingOptions())
	if err != nil {
		return fmt.Errorf("chunking: %w", err)
	}

	if chunkJSON {
		return printChunksJSON(cmd, result.Chunks)
	}

	cmd.Printf("Strategy: %s", result.Strategy)
	if result.FellBack {
		cmd.Printf(" (fallback)")
	}
	cmd.Println()
	cmd.Printf("Chunks: %d\n\n", len(result.Chunks))

	for i := range result.Chunks {
		printChunk(cmd, &result.Chunks[i])
	}
	return nil
}

func printChunk(cmd *cobra.Command, c *domain.Chunk) {
	cmd.Printf("--- chunk %d/%d [%s] ---\n", c.ChunkIndex+1, c.TotalChunks, c.Type)
	if c.Heading != "" {
		cmd.Printf("Heading: %s\n", c.Heading)
	}
	if len(c.SectionHierarchy) > 0 {
		cmd.Printf("Hierarchy: %s\n", strings.Join(c.SectionHierarchy, " > "))
	}
	if c.SectionNumber != "" {
		cmd.Printf("Section: %s\n", c.SectionNumber)
	}
	if len(c.Keywords) > 0 {
		cmd.Printf("Keywords: %s\n", strings.Join(c.Keywords, ", "))
	}
	cmd.Printf("%s\n\n", c.Content)
}

func printChunksJSON(cmd *cobra.Command, chunks []domain.Chunk) error {
	type chunkJSONOut struct {
		ID               string   `json:"id"`
		Index            int      `json:"index"`
		Total            int      `json:"total"`
		Type             string   `json:"type"`
		Content          string   `json:"content"`
		Heading          string   `json:"heading,omitempty"`
		SectionHierarchy []string `json:"section_hierarchy,omitempty"`
		SectionNumber    string   `json:"section_number,omitempty"`
		PageNumber       int      `json:"page_number,omitempty"`
		Keywords         []string `json:"keywords,omitempty"`
		References       []string `json:"references,omitempty"`
		ContentHash      string   `json:"content_hash"`
	}

	out := make([]chunkJSONOut, len(chunks))
	for i, c := range chunks {
		out[i] = chunkJSONOut{
			ID:               c.ID,
			Index:            c.ChunkIndex,
			Total:            c.TotalChunks,
			Type:             string(c.Type),
			Content:          c.Content,
			Heading:          c.Heading,
			SectionHierarchy: c.SectionHierarchy,
			SectionNumber:    c.SectionNumber,
			PageNumber:       c.PageNumber,
			Keywords:         c.Keywords,
			References:       c.References,
			ContentHash:      c.ContentHash,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling chunks: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
