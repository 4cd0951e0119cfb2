// Command passage is the adaptive document chunking CLI.
package main

import (
	"fmt"
	"os"

	"github.com/quarry-labs/passage/internal/adapters/driven/config/file"
	"github.com/quarry-labs/passage/internal/adapters/driven/extract"
	"github.com/quarry-labs/passage/internal/adapters/driven/storage/sqlite"
	"github.com/quarry-labs/passage/internal/adapters/driving/cli"
	"github.com/quarry-labs/passage/internal/analysis"
	"github.com/quarry-labs/passage/internal/chunkers"
	"github.com/quarry-labs/passage/internal/core/services"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	extractorRegistry := extract.NewDefaultRegistry()

	strategies := chunkers.NewDefaultRegistry()
	structuredChunker, err := strategies.Build("structured", nil)
	if err != nil {
		return fmt.Errorf("building structured chunker: %w", err)
	}
	tableChunker, err := strategies.Build("table_only", nil)
	if err != nil {
		return fmt.Errorf("building table chunker: %w", err)
	}
	plainChunker, err := strategies.Build("plain_text", nil)
	if err != nil {
		return fmt.Errorf("building plain text chunker: %w", err)
	}

	chunkingService := services.NewChunkingService(
		analysis.New(),
		structuredChunker,
		tableChunker,
		plainChunker,
	)
	ingestService := services.NewIngestService(extractorRegistry, chunkingService, store)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Chunking:   chunkingService,
		Ingest:     ingestService,
		Extractors: extractorRegistry,
		Store:      store,
		Config:     configStore,
	})

	return cli.Execute()
}
