// Package excel renders extraction results as an XLSX workbook. The
// sheet carries a fixed block of run metadata followed by one column per
// extracted field, so a batch of mixed document types still lands in a
// single filterable table.
package excel

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tavalos/papeleo/internal/core/domain"
)

const sheetName = "Resultados"

var metadataHeaders = []string{
	"documento", "tipo", "metodo", "confianza",
	"proveedor_ocr", "costo", "valido", "creado",
}

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Write(results []*domain.ExtractionResult, out io.Writer) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	fieldColumns := collectFieldColumns(results)
	headers := make([]any, 0, len(metadataHeaders)+len(fieldColumns))
	for _, h := range metadataHeaders {
		headers = append(headers, h)
	}
	for _, h := range fieldColumns {
		headers = append(headers, h)
	}
	if err := writeRow(file, 1, headers); err != nil {
		return err
	}
	if err := styleHeader(file, len(headers)); err != nil {
		return err
	}

	for i, result := range results {
		row := make([]any, 0, len(headers))
		row = append(row,
			result.DocumentID,
			string(result.DocumentType),
			result.MethodUsed,
			result.Confidence,
			result.Acquisition.Provider,
			result.Acquisition.Cost,
			summaryVerdict(result.Summary),
			result.CreatedAt.UTC().Format(time.RFC3339),
		)
		fields := fieldMap(result)
		for _, column := range fieldColumns {
			row = append(row, renderValue(fields[column]))
		}
		if err := writeRow(file, i+2, row); err != nil {
			return err
		}
	}

	if err := file.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func collectFieldColumns(results []*domain.ExtractionResult) []string {
	seen := map[string]bool{}
	for _, result := range results {
		for key := range fieldMap(result) {
			seen[key] = true
		}
	}
	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}
	sort.Strings(columns)
	return columns
}

func fieldMap(result *domain.ExtractionResult) map[string]any {
	if result.Fields == nil {
		return map[string]any{}
	}
	return result.Fields.Map()
}

func writeRow(file *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("row %d cell name: %w", row, err)
	}
	if err := file.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func styleHeader(file *excelize.File, columns int) error {
	style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err := file.SetCellStyle(sheetName, "A1", last, style); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}
	return nil
}

func summaryVerdict(summary *domain.ValidationSummary) string {
	if summary == nil {
		return ""
	}
	if summary.Valid {
		return "si"
	}
	return "no"
}

// renderValue flattens one field for a spreadsheet cell. Lists join on
// "; " and anything structured falls back to compact JSON.
func renderValue(value any) any {
	switch v := value.(type) {
	case nil:
		return ""
	case string, int, int64, float64, bool:
		return v
	case []string:
		return strings.Join(v, "; ")
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}
