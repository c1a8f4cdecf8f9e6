package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	extractionTotal         *prometheus.CounterVec
	extractionFallbackTotal *prometheus.CounterVec
	extractionConfidence    *prometheus.HistogramVec
	validationFailuresTotal *prometheus.CounterVec
	ocrProviderTotal        *prometheus.CounterVec
	ocrCostTotal            *prometheus.CounterVec
	exportsTotal            *prometheus.CounterVec
	exportedRows            *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "papeleo",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "papeleo",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "papeleo",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	extractionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "papeleo",
			Subsystem: "extraction",
			Name:      "runs_total",
			Help:      "Total completed extraction runs by method and document type.",
		},
		[]string{"service", "endpoint", "method", "doc_type"},
	)
	extractionFallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "papeleo",
			Subsystem: "extraction",
			Name:      "fallback_total",
			Help:      "Total extraction runs resolved by the fallback method.",
		},
		[]string{"service", "method"},
	)
	extractionConfidence := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "papeleo",
			Subsystem: "extraction",
			Name:      "confidence",
			Help:      "Distribution of extraction confidence scores.",
			Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"service", "method"},
	)
	validationFailuresTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "papeleo",
			Subsystem: "extraction",
			Name:      "validation_failures_total",
			Help:      "Total extraction runs whose validation summary is invalid.",
		},
		[]string{"service", "doc_type"},
	)
	ocrProviderTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "papeleo",
			Subsystem: "ocr",
			Name:      "provider_total",
			Help:      "Total text acquisitions per provider.",
		},
		[]string{"service", "provider"},
	)
	ocrCostTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "papeleo",
			Subsystem: "ocr",
			Name:      "cost_usd_total",
			Help:      "Accumulated acquisition cost in USD per provider.",
		},
		[]string{"service", "provider"},
	)
	exportsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "papeleo",
			Subsystem: "export",
			Name:      "requests_total",
			Help:      "Total spreadsheet export requests.",
		},
		[]string{"service"},
	)
	exportedRows := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "papeleo",
			Subsystem: "export",
			Name:      "rows",
			Help:      "Distribution of rows per spreadsheet export.",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		extractionTotal,
		extractionFallbackTotal,
		extractionConfidence,
		validationFailuresTotal,
		ocrProviderTotal,
		ocrCostTotal,
		exportsTotal,
		exportedRows,
	)

	return &HTTPServerMetrics{
		registry:                registry,
		requestTotal:            requestTotal,
		requestDuration:         requestDuration,
		requestInFlight:         requestInFlight,
		extractionTotal:         extractionTotal,
		extractionFallbackTotal: extractionFallbackTotal,
		extractionConfidence:    extractionConfidence,
		validationFailuresTotal: validationFailuresTotal,
		ocrProviderTotal:        ocrProviderTotal,
		ocrCostTotal:            ocrCostTotal,
		exportsTotal:            exportsTotal,
		exportedRows:            exportedRows,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func normalizePath(path string) string {
	switch {
	case strings.HasPrefix(path, "/v1/documents/"):
		return "/v1/documents/{document_id}"
	default:
		return path
	}
}

// RecordExtraction tracks one finished engine run. The method label is
// the effective method, so a run resolved by the safety net arrives as
// "<primary>_fallback".
func (m *HTTPServerMetrics) RecordExtraction(service, endpoint, method, docType string, confidence int, fallback bool) {
	if method == "" {
		method = "unknown"
	}
	if docType == "" {
		docType = "unknown"
	}
	m.extractionTotal.WithLabelValues(service, endpoint, method, docType).Inc()
	m.extractionConfidence.WithLabelValues(service, method).Observe(float64(confidence))
	if fallback {
		m.extractionFallbackTotal.WithLabelValues(service, method).Inc()
	}
}

func (m *HTTPServerMetrics) RecordValidationFailure(service, docType string) {
	if docType == "" {
		docType = "unknown"
	}
	m.validationFailuresTotal.WithLabelValues(service, docType).Inc()
}

func (m *HTTPServerMetrics) RecordOCRUsage(service, provider string, cost float64) {
	if provider == "" {
		provider = "unknown"
	}
	m.ocrProviderTotal.WithLabelValues(service, provider).Inc()
	if cost > 0 {
		m.ocrCostTotal.WithLabelValues(service, provider).Add(cost)
	}
}

func (m *HTTPServerMetrics) RecordExport(service string, rows int) {
	m.exportsTotal.WithLabelValues(service).Inc()
	m.exportedRows.WithLabelValues(service).Observe(float64(rows))
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
