package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tavalos/papeleo/internal/core/domain"
)

func TestWriteRendersMetadataAndFieldColumns(t *testing.T) {
	created := time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC)
	results := []*domain.ExtractionResult{
		{
			DocumentID:   "doc-1",
			DocumentType: domain.TypeFactura,
			Fields: domain.RawFields{DocType: domain.TypeFactura, Values: map[string]any{
				"numero_factura": "0001-00001234",
				"cuit":           "20-12345678-6",
			}},
			Confidence: 82,
			MethodUsed: "regex",
			Acquisition: domain.Acquisition{
				Provider:   "tesseract",
				Confidence: 0.75,
			},
			Summary:   &domain.ValidationSummary{DetectedType: domain.TypeFactura, Valid: true},
			CreatedAt: created,
		},
		{
			DocumentID:   "doc-2",
			DocumentType: domain.TypeRecibo,
			Fields: domain.RawFields{DocType: domain.TypeRecibo, Values: map[string]any{
				"monto": "15.000,50",
			}},
			Confidence: 64,
			MethodUsed: "hybrid",
			Acquisition: domain.Acquisition{
				Provider:   "google_vision",
				Confidence: 0.95,
				Cost:       0.0015,
			},
			CreatedAt: created.Add(time.Hour),
		},
	}

	var buf bytes.Buffer
	if err := NewWriter().Write(results, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	workbook, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header plus 2 results", len(rows))
	}

	header := rows[0]
	wantHeader := []string{
		"documento", "tipo", "metodo", "confianza",
		"proveedor_ocr", "costo", "valido", "creado",
		"cuit", "monto", "numero_factura",
	}
	if len(header) != len(wantHeader) {
		t.Fatalf("header = %v", header)
	}
	for i, want := range wantHeader {
		if header[i] != want {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], want)
		}
	}

	cell := func(name string) string {
		value, err := workbook.GetCellValue(sheetName, name)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", name, err)
		}
		return value
	}

	if got := cell("A2"); got != "doc-1" {
		t.Fatalf("A2 = %q", got)
	}
	if got := cell("B2"); got != "factura" {
		t.Fatalf("B2 = %q", got)
	}
	if got := cell("G2"); got != "si" {
		t.Fatalf("G2 = %q, want si", got)
	}
	if got := cell("I2"); got != "20-12345678-6" {
		t.Fatalf("I2 = %q", got)
	}
	if got := cell("K2"); got != "0001-00001234" {
		t.Fatalf("K2 = %q", got)
	}

	if got := cell("C3"); got != "hybrid" {
		t.Fatalf("C3 = %q", got)
	}
	if got := cell("G3"); got != "" {
		t.Fatalf("G3 = %q, want empty without a summary", got)
	}
	if got := cell("J3"); got != "15.000,50" {
		t.Fatalf("J3 = %q", got)
	}
	if got := cell("K3"); got != "" {
		t.Fatalf("K3 = %q, absent field should leave the cell empty", got)
	}
}

func TestWriteEmptyBatchStillRendersHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter().Write(nil, &buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	workbook, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want header only", len(rows))
	}
	if rows[0][0] != "documento" {
		t.Fatalf("first header = %q", rows[0][0])
	}
}
