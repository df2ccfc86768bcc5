package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"stream-anomaly-processor/models"
	"stream-anomaly-processor/stream"
)

type memoryStore struct {
	mu      sync.Mutex
	results map[string]models.StreamResult
}

func newMemoryStore() *memoryStore {
	return &memoryStore{results: make(map[string]models.StreamResult)}
}

func (s *memoryStore) SaveResult(streamID string, result models.StreamResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[streamID] = result
	return nil
}

func (s *memoryStore) GetResult(streamID string) (*models.StreamResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.results[streamID]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func postSample(t *testing.T, h *SampleHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/sample", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.HandleSample(w, req)
	return w
}

func TestHandleSampleAccepted(t *testing.T) {
	store := newMemoryStore()
	h := NewSampleHandler(store, stream.DefaultConfig())

	input := models.SampleInput{StreamID: "sensor-1", Value: 5.5}
	body, _ := json.Marshal(input)

	w := postSample(t, h, string(body))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["status"] != "accepted" || resp["stream_id"] != "sensor-1" {
		t.Errorf("Unexpected response: %v", resp)
	}

	// Drain the engine, then the result must be in the store.
	h.Close()

	res, err := store.GetResult("sensor-1")
	if err != nil || res == nil {
		t.Fatalf("Expected stored result, got %v, %v", res, err)
	}
	if res.Timestamp != 1 || res.Value != 5.5 || res.IsAnomaly {
		t.Errorf("Unexpected stored result: %+v", res)
	}
}

func TestHandleSampleRejectsBadInput(t *testing.T) {
	store := newMemoryStore()
	h := NewSampleHandler(store, stream.DefaultConfig())
	defer h.Close()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"missing stream id", `{"value": 5.5}`},
		{"non-numeric value", `{"stream_id": "sensor-1", "value": "NaN"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := postSample(t, h, tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", w.Code)
			}
		})
	}
}

func TestHandleWindow(t *testing.T) {
	store := newMemoryStore()
	h := NewSampleHandler(store, stream.DefaultConfig())

	input := models.SampleInput{StreamID: "sensor-1", Value: 25, Anomaly: true}
	body, _ := json.Marshal(input)
	postSample(t, h, string(body))
	h.Close()

	req := httptest.NewRequest(http.MethodGet, "/window?stream_id=sensor-1", nil)
	w := httptest.NewRecorder()
	h.HandleWindow(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var res models.StreamResult
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("Failed to decode result: %v", err)
	}
	if !res.IsAnomaly || len(res.Anomalies) != 1 || res.Anomalies[0].Label != "25.00" {
		t.Errorf("Unexpected window result: %+v", res)
	}
}

func TestHandleWindowRequiresStreamID(t *testing.T) {
	store := newMemoryStore()
	h := NewSampleHandler(store, stream.DefaultConfig())
	defer h.Close()

	req := httptest.NewRequest(http.MethodGet, "/window", nil)
	w := httptest.NewRecorder()
	h.HandleWindow(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	HealthCheck(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("Unexpected health response: %v", resp)
	}
}
