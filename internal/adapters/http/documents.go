package httpadapter

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/ports"
)

// resultResponse is the wire shape of an extraction result. Fields is
// rendered through the field set's map view so absent fields stay absent
// instead of arriving as empty strings.
type resultResponse struct {
	DocumentID   string                            `json:"document_id,omitempty"`
	DocumentType domain.DocumentType               `json:"document_type"`
	Fields       map[string]any                    `json:"fields"`
	Confidence   int                               `json:"confidence"`
	MethodUsed   string                            `json:"method_used"`
	Acquisition  domain.Acquisition                `json:"acquisition"`
	Validation   map[string]domain.FieldValidation `json:"validation,omitempty"`
	Summary      *domain.ValidationSummary         `json:"summary,omitempty"`
	CreatedAt    time.Time                         `json:"created_at"`
}

func renderResult(result *domain.ExtractionResult) resultResponse {
	fields := map[string]any{}
	if result.Fields != nil {
		fields = result.Fields.Map()
	}
	return resultResponse{
		DocumentID:   result.DocumentID,
		DocumentType: result.DocumentType,
		Fields:       fields,
		Confidence:   result.Confidence,
		MethodUsed:   result.MethodUsed,
		Acquisition:  result.Acquisition,
		Validation:   result.Validation,
		Summary:      result.Summary,
		CreatedAt:    result.CreatedAt,
	}
}

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	req := ports.UploadRequest{
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Body:     file,
	}
	if declared := strings.TrimSpace(r.FormValue("document_type")); declared != "" {
		req.DeclaredType = domain.DocumentType(declared)
	}
	if raw := strings.TrimSpace(r.FormValue("ocr_method")); raw != "" {
		method, err := domain.ParseOCRMethod(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		req.OCRMethod = method
	}
	if raw := strings.TrimSpace(r.FormValue("extraction_method")); raw != "" {
		method, err := domain.ParseExtractionMethod(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		req.ExtractionMethod = method
	}

	doc, err := rt.ingestor.Upload(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ListFilter{
		Type:   domain.DocumentType(query.Get("type")),
		Status: domain.DocumentStatus(query.Get("status")),
		Query:  query.Get("q"),
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be an integer"})
			return
		}
		filter.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "offset must be an integer"})
			return
		}
		filter.Offset = offset
	}

	docs, err := rt.reader.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if docs == nil {
		docs = []*domain.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (rt *Router) documentSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if rest == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	id, action, _ := strings.Cut(rest, "/")
	switch action {
	case "":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		rt.getDocumentByID(w, r, id)
	case "result":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		rt.getDocumentResult(w, r, id)
	case "reprocess":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		rt.reprocessDocument(w, r, id)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
	}
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := rt.reader.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) getDocumentResult(w http.ResponseWriter, r *http.Request, id string) {
	result, err := rt.reader.GetResult(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderResult(result))
}

func (rt *Router) reprocessDocument(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		OCRMethod        string `json:"ocr_method"`
		ExtractionMethod string `json:"extraction_method"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := readJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
			return
		}
	}

	var ocr domain.OCRMethod
	if raw := strings.TrimSpace(req.OCRMethod); raw != "" {
		parsed, err := domain.ParseOCRMethod(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		ocr = parsed
	}
	var extraction domain.ExtractionMethod
	if raw := strings.TrimSpace(req.ExtractionMethod); raw != "" {
		parsed, err := domain.ParseExtractionMethod(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		extraction = parsed
	}

	doc, err := rt.reprocessor.Reprocess(r.Context(), id, ocr, extraction)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, doc)
}
