// Package cli implements the passage command line interface using cobra.
// Commands receive their services through SetServices before Execute
// runs; commands that need an unconfigured service fail with a clear
// error instead of panicking.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/quarry-labs/passage/internal/core/ports/driven"
	"github.com/quarry-labs/passage/internal/core/ports/driving"
	"github.com/quarry-labs/passage/internal/logger"
)

// version is set via SetVersion from the build entrypoint.
var version = "dev"

// Services aggregates everything the commands need.
type Services struct {
	Chunking   driving.ChunkingService
	Ingest     driving.IngestService
	Extractors driven.ExtractorRegistry
	Store      driven.ChunkStore
	Config     driven.ConfigStore
}

var (
	chunkingService driving.ChunkingService
	ingestService   driving.IngestService
	extractors      driven.ExtractorRegistry
	chunkStore      driven.ChunkStore
	configStore     driven.ConfigStore
)

// verboseFlag enables debug logging on stderr.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "passage",
	Short: "Adaptive document chunking for retrieval pipelines",
	Long: `Passage splits documents into bounded, overlapping, metadata-rich
chunks suitable for embedding and retrieval.

It analyses each document's structure first and picks a chunking
strategy to match: hierarchical splitting for sectioned documents,
row-aware splitting for tables and spreadsheets, and plain paragraph
accumulation for everything else.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose debug output")
}

// SetServices injects the services the commands depend on.
func SetServices(s Services) {
	chunkingService = s.Chunking
	ingestService = s.Ingest
	extractors = s.Extractors
	chunkStore = s.Store
	configStore = s.Config
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
