package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tavalos/papeleo/internal/core/domain"
)

func readJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func (rt *Router) analyzeText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req struct {
		Text         string `json:"text"`
		DocumentType string `json:"document_type"`
		Method       string `json:"method"`
	}
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	var method domain.ExtractionMethod
	if raw := strings.TrimSpace(req.Method); raw != "" {
		parsed, err := domain.ParseExtractionMethod(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		method = parsed
	}

	result, err := rt.analyzer.Analyze(r.Context(), req.Text, domain.DocumentType(req.DocumentType), method)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.serverMetrics != nil {
		fallback := strings.HasSuffix(result.MethodUsed, "_fallback")
		rt.serverMetrics.RecordExtraction("api", "/v1/extraction/text", result.MethodUsed, string(result.DocumentType), result.Confidence, fallback)
		if result.Summary != nil && !result.Summary.Valid {
			rt.serverMetrics.RecordValidationFailure("api", string(result.DocumentType))
		}
	}

	writeJSON(w, http.StatusOK, renderResult(result))
}

func (rt *Router) listMethods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	catalog, err := rt.catalog.Methods(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (rt *Router) exportResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	query := r.URL.Query()
	filter := domain.ExportFilter{
		Type: domain.DocumentType(query.Get("document_type")),
	}
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from must be YYYY-MM-DD"})
			return
		}
		filter.From = from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "to must be YYYY-MM-DD"})
			return
		}
		filter.To = to
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "results.xlsx"))

	rows, err := rt.exporter.ExportResults(r.Context(), filter, w)
	if err != nil {
		// The workbook may be partially written at this point, so the
		// error can only be logged by the access log status.
		w.WriteHeader(mapErrorToHTTPStatus(err))
		return
	}

	if rt.serverMetrics != nil {
		rt.serverMetrics.RecordExport("api", rows)
	}
}
