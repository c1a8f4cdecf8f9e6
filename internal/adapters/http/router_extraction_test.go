package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tavalos/papeleo/internal/config"
	"github.com/tavalos/papeleo/internal/core/domain"
)

func TestAnalyzeTextSuccess(t *testing.T) {
	fx, handler := newTestRouter(config.Config{})
	fx.analyzer.result = &domain.ExtractionResult{
		DocumentType: domain.TypeRecibo,
		Fields: domain.RawFields{DocType: domain.TypeRecibo, Values: map[string]any{
			"monto": "15.000,50",
		}},
		Confidence: 70,
		MethodUsed: "hybrid",
		Acquisition: domain.Acquisition{
			Provider:   "direct",
			Confidence: 1.0,
		},
		CreatedAt: time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC),
	}

	payload, _ := json.Marshal(map[string]string{
		"text":          "RECIBO Nº 0001 pagado en efectivo",
		"document_type": "recibo",
		"method":        "hybrid",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/extraction/text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}
	if fx.analyzer.gotType != domain.TypeRecibo {
		t.Fatalf("declared type = %q", fx.analyzer.gotType)
	}
	if fx.analyzer.gotMethod != domain.ExtractionHybrid {
		t.Fatalf("method = %q", fx.analyzer.gotMethod)
	}

	var resp struct {
		Fields      map[string]any `json:"fields"`
		Acquisition struct {
			Provider string `json:"provider"`
		} `json:"acquisition"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Fields["monto"] != "15.000,50" {
		t.Fatalf("fields = %v", resp.Fields)
	}
	if resp.Acquisition.Provider != "direct" {
		t.Fatalf("acquisition provider = %q", resp.Acquisition.Provider)
	}
}

func TestAnalyzeTextRequiresText(t *testing.T) {
	_, handler := newTestRouter(config.Config{})

	payload, _ := json.Marshal(map[string]string{"text": "   "})
	req := httptest.NewRequest(http.MethodPost, "/v1/extraction/text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestAnalyzeTextMapsInsufficientTextTo400(t *testing.T) {
	fx, handler := newTestRouter(config.Config{})
	fx.analyzer.err = domain.WrapError(domain.ErrInsufficientText, "analyze", errors.New("3 runes"))

	payload, _ := json.Marshal(map[string]string{"text": "abc"})
	req := httptest.NewRequest(http.MethodPost, "/v1/extraction/text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestAnalyzeTextRejectsUnknownMethod(t *testing.T) {
	_, handler := newTestRouter(config.Config{})

	payload, _ := json.Marshal(map[string]string{"text": "FACTURA A", "method": "quantum"})
	req := httptest.NewRequest(http.MethodPost, "/v1/extraction/text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}
}

func TestListMethodsEndpoint(t *testing.T) {
	fx, handler := newTestRouter(config.Config{})
	fx.catalog.catalog = &domain.MethodCatalog{
		OCR: []domain.MethodInfo{
			{Name: "tesseract", Confidence: 0.75, Available: true, Default: true},
		},
		Extraction: []domain.MethodInfo{
			{Name: "regex", Confidence: 0.65, Available: true, Default: true},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/extraction/methods", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var resp struct {
		OCR        []map[string]any `json:"ocr_methods"`
		Extraction []map[string]any `json:"extraction_methods"`
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.OCR) != 1 || resp.OCR[0]["name"] != "tesseract" {
		t.Fatalf("ocr methods = %v", resp.OCR)
	}
	if len(resp.Extraction) != 1 || resp.Extraction[0]["default"] != true {
		t.Fatalf("extraction methods = %v", resp.Extraction)
	}
}

func TestExportResultsStreamsWorkbook(t *testing.T) {
	fx, handler := newTestRouter(config.Config{})
	fx.exporter.rows = 3
	fx.exporter.payload = []byte("xlsx-bytes")

	req := httptest.NewRequest(http.MethodGet, "/v1/export/results.xlsx?document_type=factura&from=2024-01-01&to=2024-12-31", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if got := res.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("content type = %q", got)
	}
	if got := res.Header().Get("Content-Disposition"); got != `attachment; filename="results.xlsx"` {
		t.Fatalf("content disposition = %q", got)
	}
	if res.Body.String() != "xlsx-bytes" {
		t.Fatalf("body = %q", res.Body.String())
	}

	if fx.exporter.gotFilter.Type != domain.TypeFactura {
		t.Fatalf("filter type = %q", fx.exporter.gotFilter.Type)
	}
	if fx.exporter.gotFilter.From.IsZero() || fx.exporter.gotFilter.To.IsZero() {
		t.Fatalf("filter range = %+v", fx.exporter.gotFilter)
	}
}

func TestExportResultsRejectsBadDate(t *testing.T) {
	_, handler := newTestRouter(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/export/results.xlsx?from=yesterday", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestOpenAPISpecServesValidJSON(t *testing.T) {
	_, handler := newTestRouter(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var spec map[string]any
	if err := json.NewDecoder(res.Body).Decode(&spec); err != nil {
		t.Fatalf("decode spec: %v", err)
	}
	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi version = %v", spec["openapi"])
	}
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		t.Fatalf("paths missing: %v", spec)
	}
	if _, present := paths["/v1/documents"]; !present {
		t.Fatal("documents path missing from spec")
	}
}
