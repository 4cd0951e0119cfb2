package extract

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/quarry-labs/passage/internal/core/domain"
	"github.com/quarry-labs/passage/internal/core/ports/driven"
)

// Ensure Spreadsheet implements the interface.
var _ driven.Extractor = (*Spreadsheet)(nil)

// Spreadsheet extracts delimited spreadsheet files into a single
// table-bearing section and marks the content as a spreadsheet so the
// table-only strategy applies.
type Spreadsheet struct{}

// NewSpreadsheet creates the spreadsheet extractor.
func NewSpreadsheet() *Spreadsheet {
	return &Spreadsheet{}
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Spreadsheet) SupportedExtensions() []string {
	return []string{"csv", "tsv"}
}

// Priority returns the format-specific priority.
func (e *Spreadsheet) Priority() int {
	return 60
}

// Extract parses the delimited grid. The whole file becomes one
// section with TableData; FullText carries a pipe-serialised copy so
// analysis and fallbacks still have text to work with.
func (e *Spreadsheet) Extract(ctx context.Context, raw *domain.RawDocument) (*driven.ExtractResult, error) {
	reader := csv.NewReader(bytes.NewReader(raw.Content))
	if raw.FileType == "tsv" {
		reader.Comma = '\t'
	}
	// Spreadsheets in the wild have ragged rows.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", domain.ErrInvalidInput, raw.FileType, err)
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		cells := make([]string, len(rec))
		for i, cell := range rec {
			cells[i] = strings.TrimSpace(cell)
		}
		rows = append(rows, cells)
	}

	tableData := &domain.TableData{
		Rows: rows,
		Raw:  normaliseNewlines(string(raw.Content)),
	}

	doc := newDocument(raw, "")
	return &driven.ExtractResult{
		Document: doc,
		Content: domain.ExtractedContent{
			FullText: serialiseGrid(rows),
			Sections: []domain.Section{
				{Title: doc.Title, Table: tableData},
			},
			Structure: domain.StructureInfo{
				IsSpreadsheet: true,
				HasTables:     true,
			},
		},
	}, nil
}

// serialiseGrid renders the grid in pipe form, one line per row.
func serialiseGrid(rows [][]string) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString("| ")
		b.WriteString(strings.Join(row, " | "))
		b.WriteString(" |\n")
	}
	return b.String()
}
