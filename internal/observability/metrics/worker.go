package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	processTotal    *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	processInFlight prometheus.Gauge
	queueLag        *prometheus.HistogramVec

	extractionTotal      *prometheus.CounterVec
	extractionFallback   *prometheus.CounterVec
	extractionConfidence *prometheus.HistogramVec
	acquisitionTotal     *prometheus.CounterVec
	acquisitionCost      *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "papeleo",
			Subsystem: "worker",
			Name:      "document_process_total",
			Help:      "Total processed documents by status.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "papeleo",
			Subsystem: "worker",
			Name:      "document_process_duration_seconds",
			Help:      "Document processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "papeleo",
			Subsystem: "worker",
			Name:      "document_process_in_flight",
			Help:      "Number of in-flight document processing tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "papeleo",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between document creation and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)

	extractionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "papeleo",
			Subsystem: "extraction",
			Name:      "runs_total",
			Help:      "Total completed extraction runs by method and document type.",
		},
		[]string{"service", "method", "doc_type"},
	)
	extractionFallback := prometheus.NewCounterVec(
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
	acquisitionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "papeleo",
			Subsystem: "ocr",
			Name:      "provider_total",
			Help:      "Total text acquisitions per provider.",
		},
		[]string{"service", "provider"},
	)
	acquisitionCost := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "papeleo",
			Subsystem: "ocr",
			Name:      "cost_usd_total",
			Help:      "Accumulated acquisition cost in USD per provider.",
		},
		[]string{"service", "provider"},
	)

	registry.MustRegister(
		processTotal,
		processDuration,
		processInFlight,
		queueLag,
		extractionTotal,
		extractionFallback,
		extractionConfidence,
		acquisitionTotal,
		acquisitionCost,
	)

	return &WorkerMetrics{
		registry:             registry,
		processTotal:         processTotal,
		processDuration:      processDuration,
		processInFlight:      processInFlight,
		queueLag:             queueLag,
		extractionTotal:      extractionTotal,
		extractionFallback:   extractionFallback,
		extractionConfidence: extractionConfidence,
		acquisitionTotal:     acquisitionTotal,
		acquisitionCost:      acquisitionCost,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishDocument(service string, duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.processTotal.WithLabelValues(service, status).Inc()
	m.processDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

// RecordExtractionOutcome tracks one stored result. The method label is
// the effective method, so fallback runs arrive as "<primary>_fallback".
func (m *WorkerMetrics) RecordExtractionOutcome(service, method, docType string, confidence int, fallback bool) {
	if method == "" {
		method = "unknown"
	}
	if docType == "" {
		docType = "unknown"
	}
	m.extractionTotal.WithLabelValues(service, method, docType).Inc()
	m.extractionConfidence.WithLabelValues(service, method).Observe(float64(confidence))
	if fallback {
		m.extractionFallback.WithLabelValues(service, method).Inc()
	}
}

func (m *WorkerMetrics) RecordAcquisition(service, provider string, cost float64) {
	if provider == "" {
		provider = "unknown"
	}
	m.acquisitionTotal.WithLabelValues(service, provider).Inc()
	if cost > 0 {
		m.acquisitionCost.WithLabelValues(service, provider).Add(cost)
	}
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
