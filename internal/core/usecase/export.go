package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/ports"
)

type ExportResultsUseCase struct {
	results ports.ResultRepository
	writer  ports.ResultSpreadsheetWriter
}

func NewExportResultsUseCase(results ports.ResultRepository, writer ports.ResultSpreadsheetWriter) *ExportResultsUseCase {
	return &ExportResultsUseCase{results: results, writer: writer}
}

// ExportResults writes the matching results as a spreadsheet and returns
// how many rows it exported. An empty match still produces a valid file
// with just the header row.
func (uc *ExportResultsUseCase) ExportResults(ctx context.Context, filter domain.ExportFilter, out io.Writer) (int, error) {
	results, err := uc.results.ListForExport(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("list results for export: %w", err)
	}
	if err := uc.writer.Write(results, out); err != nil {
		return 0, fmt.Errorf("render spreadsheet: %w", err)
	}
	return len(results), nil
}
