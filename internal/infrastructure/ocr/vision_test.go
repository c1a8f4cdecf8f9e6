package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tavalos/papeleo/internal/core/domain"
)

func TestGoogleVisionRecognize(t *testing.T) {
	var captured visionRequest
	var capturedKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/images:annotate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		capturedKey = r.URL.Query().Get("key")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"responses": []map[string]any{
				{"fullTextAnnotation": map[string]any{"text": "FACTURA A\nCUIT: 20-12345678-6"}},
			},
		})
	}))
	defer server.Close()

	provider := NewGoogleVision(server.URL, "test-key", nil)
	doc := &domain.Document{ID: "doc-1", Filename: "scan.png", MimeType: "image/png"}
	recognized, err := provider.Recognize(context.Background(), doc, strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}

	if capturedKey != "test-key" {
		t.Fatalf("key query param = %q", capturedKey)
	}
	if len(captured.Requests) != 1 {
		t.Fatalf("annotate requests = %d, want 1", len(captured.Requests))
	}
	wantContent := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
	if captured.Requests[0].Image.Content != wantContent {
		t.Fatal("image content should be the base64 document bytes")
	}
	if len(captured.Requests[0].Features) != 1 || captured.Requests[0].Features[0].Type != "DOCUMENT_TEXT_DETECTION" {
		t.Fatalf("features = %+v", captured.Requests[0].Features)
	}

	if recognized.Text != "FACTURA A\nCUIT: 20-12345678-6" {
		t.Fatalf("text = %q", recognized.Text)
	}
	if recognized.Acquisition.Provider != string(domain.OCRGoogleVision) {
		t.Fatalf("provider = %q", recognized.Acquisition.Provider)
	}
	if recognized.Acquisition.Confidence != domain.OCRGoogleVision.NominalConfidence() {
		t.Fatalf("confidence = %v", recognized.Acquisition.Confidence)
	}
	if recognized.Acquisition.Cost != domain.OCRGoogleVision.CostPerPage() {
		t.Fatalf("cost = %v", recognized.Acquisition.Cost)
	}
}

func TestGoogleVisionRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"responses": []map[string]any{
				{"error": map[string]any{"code": 7, "message": "API key not authorized"}},
			},
		})
	}))
	defer server.Close()

	provider := NewGoogleVision(server.URL, "test-key", nil)
	doc := &domain.Document{ID: "doc-1", Filename: "scan.png", MimeType: "image/png"}
	_, err := provider.Recognize(context.Background(), doc, strings.NewReader("bytes"))
	if err == nil || !strings.Contains(err.Error(), "API key not authorized") {
		t.Fatalf("Recognize() error = %v, want remote error surfaced", err)
	}
}

func TestGoogleVisionServerErrorIsTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "backend overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewGoogleVision(server.URL, "test-key", nil)
	doc := &domain.Document{ID: "doc-1", Filename: "scan.png", MimeType: "image/png"}
	_, err := provider.Recognize(context.Background(), doc, strings.NewReader("bytes"))
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("Recognize() error = %v, want temporary kind", err)
	}
	if !strings.Contains(err.Error(), "backend overloaded") {
		t.Fatalf("error %q should include the response body", err)
	}
}
