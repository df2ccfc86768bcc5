package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"os"
	"sync/atomic"
	"time"
)

var (
	sentCount    int64
	failCount    int64
	anomalyCount int64
)

type samplePayload struct {
	StreamID string  `json:"stream_id"`
	Value    float64 `json:"value"`
	Anomaly  bool    `json:"anomaly"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run tools/feedgen.go <url> [stream_id] [interval] [duration]")
		fmt.Println("Example: go run tools/feedgen.go http://localhost:8080/sample sensor-1 100ms 60s")
		os.Exit(1)
	}

	url := os.Args[1]
	streamID := "sensor-1"
	interval := 100 * time.Millisecond
	duration := 60 * time.Second

	if len(os.Args) > 2 {
		streamID = os.Args[2]
	}
	if len(os.Args) > 3 {
		if d, err := time.ParseDuration(os.Args[3]); err == nil {
			interval = d
		}
	}
	if len(os.Args) > 4 {
		if d, err := time.ParseDuration(os.Args[4]); err == nil {
			duration = d
		}
	}

	fmt.Printf("Feed Generator Configuration:\n")
	fmt.Printf("  URL: %s\n", url)
	fmt.Printf("  Stream: %s\n", streamID)
	fmt.Printf("  Interval: %v\n", interval)
	fmt.Printf("  Duration: %v\n\n", duration)

	client := &http.Client{Timeout: 5 * time.Second}
	endTime := time.Now().Add(duration)

	t := 0
	for time.Now().Before(endTime) {
		value, anomaly := generateDataPoint(t)
		send(client, url, samplePayload{
			StreamID: streamID,
			Value:    value,
			Anomaly:  anomaly,
		})
		t++
		time.Sleep(interval)
	}

	fmt.Printf("\nFeed Results:\n")
	fmt.Printf("  Sent: %d\n", atomic.LoadInt64(&sentCount))
	fmt.Printf("  Failed: %d\n", atomic.LoadInt64(&failCount))
	fmt.Printf("  Injected anomalies: %d\n", atomic.LoadInt64(&anomalyCount))
}

// generateDataPoint produces a seasonal signal with Gaussian noise and
// a 5% chance of an injected outlier around ±25.
func generateDataPoint(t int) (float64, bool) {
	seasonal := 10 * math.Sin(2*math.Pi*float64(t)/50)
	noise := rand.NormFloat64()

	if rand.Float64() < 0.05 {
		outlier := rand.NormFloat64()*5 + 25
		if rand.Intn(2) == 0 {
			outlier = rand.NormFloat64()*5 - 25
		}
		atomic.AddInt64(&anomalyCount, 1)
		return seasonal + noise + outlier, true
	}

	return seasonal + noise, false
}

func send(client *http.Client, url string, payload samplePayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		atomic.AddInt64(&failCount, 1)
		return
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		atomic.AddInt64(&failCount, 1)
		return
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		atomic.AddInt64(&failCount, 1)
		return
	}

	atomic.AddInt64(&sentCount, 1)
}
