package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/passage/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and re-ingest changed files",
	Long: `Watch a directory for file changes and re-ingest files as they are
created or modified. Files whose content is unchanged are skipped.

The watch runs until interrupted with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addChunkingFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watcher.New(ingestService, resolveChunkingOptions())

	err := w.Watch(ctx, args[0])
	if errors.Is(err, context.Canceled) {
		cmd.Println("\nWatch stopped")
		return nil
	}
	return err
}
