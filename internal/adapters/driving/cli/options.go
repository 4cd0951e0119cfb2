package cli

import (
	"github.com/spf13/cobra"

	"github.com/quarry-labs/passage/internal/core/domain"
)

// Chunking option flags shared by the chunk, ingest, and watch commands.
var (
	flagTargetSize  int
	flagMinSize     int
	flagMaxSize     int
	flagOverlap     int
	flagSplitTables bool
	flagSplitLists  bool
	flagSplitCode   bool
)

// addChunkingFlags registers the shared chunking option flags on cmd.
func addChunkingFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagTargetSize, "target-size", 0, "Preferred chunk size in characters")
	cmd.Flags().IntVar(&flagMinSize, "min-size", 0, "Minimum chunk size in characters")
	cmd.Flags().IntVar(&flagMaxSize, "max-size", 0, "Maximum chunk size in characters")
	cmd.Flags().IntVar(&flagOverlap, "overlap", 0, "Approximate overlap between chunks in characters")
	cmd.Flags().BoolVar(&flagSplitTables, "split-tables", false, "Allow oversized tables to be split")
	cmd.Flags().BoolVar(&flagSplitLists, "split-lists", false, "Allow lists to be split mid-item")
	cmd.Flags().BoolVar(&flagSplitCode, "split-code", false, "Allow oversized code blocks to be split")
}

// resolveChunkingOptions layers flag overrides on top of config file
// values on top of defaults.
func resolveChunkingOptions() domain.ChunkingOptions {
	opts := domain.DefaultChunkingOptions()
	if configStore != nil {
		opts = configStore.ChunkingOptions()
	}

	if flagTargetSize > 0 {
		opts.TargetChunkSize = flagTargetSize
	}
	if flagMinSize > 0 {
		opts.MinChunkSize = flagMinSize
	}
	if flagMaxSize > 0 {
		opts.MaxChunkSize = flagMaxSize
	}
	if flagOverlap > 0 {
		opts.OverlapSize = flagOverlap
	}
	if flagSplitTables {
		opts.PreserveTables = false
	}
	if flagSplitLists {
		opts.PreserveLists = false
	}
	if flagSplitCode {
		opts.PreserveCode = false
	}

	return opts.Normalized()
}
