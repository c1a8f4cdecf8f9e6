package httpadapter

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tavalos/papeleo/internal/config"
	"github.com/tavalos/papeleo/internal/core/domain"
)

func multipartUpload(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "factura.pdf")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write([]byte("%PDF-1.4 test")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("WriteField(%s) error = %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestHealthzEndpoint(t *testing.T) {
	_, handler := newTestRouter(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if res.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header on every response")
	}
}

func TestUploadDocumentSuccess(t *testing.T) {
	fx, handler := newTestRouter(config.Config{})

	body, contentType := multipartUpload(t, map[string]string{
		"document_type":     "factura",
		"ocr_method":        "google_vision",
		"extraction_method": "hybrid",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", res.Code, res.Body.String())
	}

	if fx.ingestor.gotReq.Filename != "factura.pdf" {
		t.Fatalf("filename = %q", fx.ingestor.gotReq.Filename)
	}
	if fx.ingestor.gotReq.DeclaredType != domain.TypeFactura {
		t.Fatalf("declared type = %q", fx.ingestor.gotReq.DeclaredType)
	}
	if fx.ingestor.gotReq.OCRMethod != domain.OCRGoogleVision {
		t.Fatalf("ocr method = %q", fx.ingestor.gotReq.OCRMethod)
	}
	if fx.ingestor.gotReq.ExtractionMethod != domain.ExtractionHybrid {
		t.Fatalf("extraction method = %q", fx.ingestor.gotReq.ExtractionMethod)
	}

	var docResp map[string]any
	if err := json.NewDecoder(res.Body).Decode(&docResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if docResp["id"] != "doc-1" {
		t.Fatalf("unexpected response: %+v", docResp)
	}
}

func TestUploadDocumentMissingMultipartField(t *testing.T) {
	_, handler := newTestRouter(config.Config{})

	req := httptest.NewRequest(http.MethodPost, "/v1/documents", bytes.NewBufferString("plain-text"))
	req.Header.Set("Content-Type", "text/plain")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestUploadDocumentRejectsUnknownOCRMethod(t *testing.T) {
	_, handler := newTestRouter(config.Config{})

	body, contentType := multipartUpload(t, map[string]string{"ocr_method": "abbyy"})
	req := httptest.NewRequest(http.MethodPost, "/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", res.Code)
	}
}

func TestListDocumentsForwardsFilter(t *testing.T) {
	fx, handler := newTestRouter(config.Config{})
	fx.reader.docs = []*domain.Document{sampleDocument()}

	req := httptest.NewRequest(http.MethodGet, "/v1/documents?type=factura&status=ready&q=ejemplo&limit=10&offset=5", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if fx.reader.gotFilter.Type != domain.TypeFactura || fx.reader.gotFilter.Status != domain.StatusReady {
		t.Fatalf("filter = %+v", fx.reader.gotFilter)
	}
	if fx.reader.gotFilter.Query != "ejemplo" || fx.reader.gotFilter.Limit != 10 || fx.reader.gotFilter.Offset != 5 {
		t.Fatalf("filter = %+v", fx.reader.gotFilter)
	}

	var listResp struct {
		Documents []map[string]any `json:"documents"`
	}
	if err := json.NewDecoder(res.Body).Decode(&listResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listResp.Documents) != 1 {
		t.Fatalf("documents = %d, want 1", len(listResp.Documents))
	}
}

func TestListDocumentsRejectsBadLimit(t *testing.T) {
	_, handler := newTestRouter(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/documents?limit=many", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}
