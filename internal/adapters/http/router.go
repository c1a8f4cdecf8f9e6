package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tavalos/papeleo/internal/config"
	"github.com/tavalos/papeleo/internal/core/ports"
	"github.com/tavalos/papeleo/internal/observability/metrics"
)

const backpressureWait = 50 * time.Millisecond

type Router struct {
	cfg config.Config

	ingestor    ports.DocumentIngestor
	reader      ports.DocumentReader
	reprocessor ports.DocumentReprocessor
	analyzer    ports.TextAnalyzer
	catalog     ports.MethodCatalogProvider
	exporter    ports.ResultExporter

	serverMetrics *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	ingestor ports.DocumentIngestor,
	reader ports.DocumentReader,
	reprocessor ports.DocumentReprocessor,
	analyzer ports.TextAnalyzer,
	catalog ports.MethodCatalogProvider,
	exporter ports.ResultExporter,
	serverMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:           cfg,
		ingestor:      ingestor,
		reader:        reader,
		reprocessor:   reprocessor,
		analyzer:      analyzer,
		catalog:       catalog,
		exporter:      exporter,
		serverMetrics: serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/openapi.json", rt.openapiSpec)
	if rt.serverMetrics != nil {
		mux.Handle("/metrics", rt.serverMetrics.Handler())
	}
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/", rt.documentSubtree)
	mux.HandleFunc("/v1/extraction/text", rt.analyzeText)
	mux.HandleFunc("/v1/extraction/methods", rt.listMethods)
	mux.HandleFunc("/v1/export/results.xlsx", rt.exportResults)

	var handler http.Handler = mux
	if rt.cfg.APIMaxConcurrent > 0 {
		handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, backpressureWait)
	}
	if rt.cfg.APIRateLimitRPS > 0 {
		handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	}
	if rt.serverMetrics != nil {
		handler = rt.serverMetrics.Middleware("api", handler)
	}
	handler = accessLogMiddleware(handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
