package handlers

import (
	"encoding/json"
	"net/http"
	"stream-anomaly-processor/models"
	"stream-anomaly-processor/stream"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	samplesReceivedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "samples_received_total",
			Help: "Total number of samples accepted for processing",
		},
	)

	invalidSamplesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "invalid_samples_total",
			Help: "Total number of samples rejected at ingestion",
		},
	)

	anomaliesDetectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anomalies_detected_total",
			Help: "Total number of anomalies detected",
		},
		[]string{"stream_id"},
	)
)

// ResultStore persists emitted results and serves window queries.
type ResultStore interface {
	stream.ResultSink
	GetResult(streamID string) (*models.StreamResult, error)
}

type SampleHandler struct {
	store  ResultStore
	engine *stream.Engine
}

func NewSampleHandler(store ResultStore, cfg stream.Config) *SampleHandler {

	onAnomaly := func(streamID string) {
		anomaliesDetectedTotal.WithLabelValues(streamID).Inc()
	}

	return &SampleHandler{
		store:  store,
		engine: stream.NewEngine(cfg, store, onAnomaly),
	}
}

func (h *SampleHandler) HandleSample(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	defer func() {
		duration := time.Since(start).Seconds()
		requestDurationSeconds.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	}()

	var input models.SampleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, "400").Inc()
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	if err := input.Validate(); err != nil {
		invalidSamplesTotal.Inc()
		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, "400").Inc()
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.engine.Ingest(input.StreamID, input.Value, input.Anomaly)
	samplesReceivedTotal.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "accepted",
		"stream_id": input.StreamID,
	})

	httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, "200").Inc()
}

func (h *SampleHandler) HandleWindow(w http.ResponseWriter, r *http.Request) {
	streamID := r.URL.Query().Get("stream_id")
	if streamID == "" {
		http.Error(w, "stream_id parameter is required", http.StatusBadRequest)
		return
	}

	result, err := h.store.GetResult(streamID)
	if err != nil {
		http.Error(w, "Failed to get result: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Close drains the engine queue before shutdown.
func (h *SampleHandler) Close() {
	h.engine.Close()
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
