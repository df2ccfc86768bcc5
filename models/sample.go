package models

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrInvalidSample means the value cannot participate in the statistics.
	ErrInvalidSample = errors.New("sample value must be finite")

	// ErrOrderViolation means a sample arrived older than the series tail.
	ErrOrderViolation = errors.New("sample timestamp is older than series tail")
)

// Sample is one measurement at a discrete tick.
type Sample struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// AnomalyRecord is a flagged sample with its display label.
type AnomalyRecord struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
	Label     string  `json:"label"`
}

// StreamResult is the per-tick output handed to the consumer. The
// processor keeps no reference to it after emission.
type StreamResult struct {
	StreamID    string          `json:"stream_id"`
	Timestamp   int64           `json:"timestamp"`
	Value       float64         `json:"value"`
	IsAnomaly   bool            `json:"is_anomaly"`
	Data        []Sample        `json:"data"`
	Anomalies   []AnomalyRecord `json:"anomalies"`
	Error       string          `json:"error,omitempty"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// SampleInput is the ingestion payload of POST /sample.
type SampleInput struct {
	StreamID string  `json:"stream_id"`
	Value    float64 `json:"value"`
	Anomaly  bool    `json:"anomaly"`
}

func (s *SampleInput) Validate() error {
	if s.StreamID == "" {
		return errors.New("stream_id is required")
	}

	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return ErrInvalidSample
	}

	return nil
}
