package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Extract, chunk, and store documents",
	Long: `Run the full ingestion pipeline for one or more files.

Files whose content is unchanged since the last ingestion are skipped;
changed files have their whole chunk batch replaced atomically.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	addChunkingFlags(ingestCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	opts := resolveChunkingOptions()

	failures := 0
	for _, path := range args {
		result, err := ingestService.IngestFile(ctx, path, opts)
		if err != nil {
			cmd.PrintErrf("FAIL %s: %v\n", path, err)
			failures++
			continue
		}
		if result.Unchanged {
			cmd.Printf("SKIP %s (unchanged)\n", filepath.Base(path))
			continue
		}
		cmd.Printf("OK   %s: %d chunks (%s)\n",
			filepath.Base(path), len(result.Chunks), result.Strategy)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, len(args))
	}
	return nil
}
