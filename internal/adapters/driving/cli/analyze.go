package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyse a document's structure without chunking it",
	Long: `Print the structure classification for a document: detected
headings, tables, lists, complexity grade, and document type.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if chunkingService == nil {
		return errors.New("chunking service not configured")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	fileType := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	analysis := chunkingService.Analyze(string(data), fileType)

	cmd.Printf("Analysis for %s:\n\n", filepath.Base(path))
	cmd.Printf("  Headings:         %v\n", analysis.HasHeadings)
	cmd.Printf("  Tables:           %v\n", analysis.HasTables)
	cmd.Printf("  Lists:            %v\n", analysis.HasLists)
	cmd.Printf("  Technical manual: %v\n", analysis.IsTechnicalManual)
	cmd.Printf("  Complexity:       %s\n", analysis.Complexity)
	cmd.Printf("  Document type:    %s\n", analysis.DocumentType)
	return nil
}
