package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tavalos/papeleo/internal/core/domain"
)

func completionBody(content string) string {
	raw, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(raw)
}

func TestExtractFieldsSendsHintedPrompt(t *testing.T) {
	var captured chatRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(completionBody(`{"numero_factura":"0001-00001234","cuit":"20-12345678-6"}`)))
	}))
	defer server.Close()

	client := New(server.URL, "sk-test", "gpt-4o-mini", nil)
	values, err := client.ExtractFields(context.Background(), domain.TypeFactura, "FACTURA A ...")
	if err != nil {
		t.Fatalf("ExtractFields() error = %v", err)
	}

	if authHeader != "Bearer sk-test" {
		t.Fatalf("authorization = %q", authHeader)
	}
	if captured.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", captured.Model)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("messages = %d", len(captured.Messages))
	}
	userPrompt := captured.Messages[1].Content
	if !strings.Contains(userPrompt, "numero_factura") || !strings.Contains(userPrompt, "condicion_iva") {
		t.Fatalf("prompt misses the field hints: %s", userPrompt)
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_object" {
		t.Fatalf("response format = %+v", captured.ResponseFormat)
	}

	if values["numero_factura"] != "0001-00001234" {
		t.Fatalf("values = %+v", values)
	}
}

func TestExtractFieldsUnwrapsFencedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		content := "```json\n{\"numero_recibo\": \"R-0042\"}\n```"
		_, _ = w.Write([]byte(completionBody(content)))
	}))
	defer server.Close()

	client := New(server.URL, "", "local-model", nil)
	values, err := client.ExtractFields(context.Background(), domain.TypeRecibo, "RECIBO ...")
	if err != nil {
		t.Fatalf("ExtractFields() error = %v", err)
	}
	if values["numero_recibo"] != "R-0042" {
		t.Fatalf("values = %+v", values)
	}
}

func TestExtractFieldsRejectsSchemaViolations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(completionBody(`{"numero_dni": 34567890}`)))
	}))
	defer server.Close()

	client := New(server.URL, "", "local-model", nil)
	_, err := client.ExtractFields(context.Background(), domain.TypeDNI, "DNI ...")
	if err == nil {
		t.Fatalf("non-string hinted field must fail validation")
	}
	if !strings.Contains(err.Error(), "validate extraction json") {
		t.Fatalf("err = %v", err)
	}
}

func TestExtractFieldsIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "", "local-model", nil)
	_, err := client.ExtractFields(context.Background(), domain.TypeFactura, "FACTURA ...")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("expected response body in error, got %v", err)
	}
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("503 must classify temporary, got %v", err)
	}
}
