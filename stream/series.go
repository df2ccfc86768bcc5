package stream

import (
	"stream-anomaly-processor/models"
)

// WindowedSeries is a time-indexed FIFO: entries are appended at the
// tail in non-decreasing timestamp order and evicted from the head.
// A non-zero maxLen additionally caps the retained count, dropping the
// oldest entry on overflow at append time.
type WindowedSeries[T any] struct {
	timestamps []int64
	entries    []T
	head       int
	maxLen     int
}

func NewWindowedSeries[T any](maxLen int) *WindowedSeries[T] {
	return &WindowedSeries[T]{maxLen: maxLen}
}

// Append adds an entry at the tail. A timestamp older than the current
// tail violates the monotonic arrival contract and is rejected.
func (ws *WindowedSeries[T]) Append(entry T, timestamp int64) error {
	if n := len(ws.timestamps); n > ws.head && timestamp < ws.timestamps[n-1] {
		return models.ErrOrderViolation
	}

	if ws.maxLen > 0 && ws.Len() >= ws.maxLen {
		ws.head++
	}

	ws.timestamps = append(ws.timestamps, timestamp)
	ws.entries = append(ws.entries, entry)
	ws.compact()
	return nil
}

// EvictBefore drops all head entries with timestamp < cutoff.
// Amortized O(k) for k evicted entries.
func (ws *WindowedSeries[T]) EvictBefore(cutoff int64) {
	for ws.head < len(ws.timestamps) && ws.timestamps[ws.head] < cutoff {
		ws.head++
	}
	ws.compact()
}

// compact reclaims the evicted prefix once it dominates the backing
// arrays, keeping eviction amortized O(1) per entry.
func (ws *WindowedSeries[T]) compact() {
	if ws.head == 0 || ws.head < len(ws.timestamps)/2 {
		return
	}

	n := copy(ws.timestamps, ws.timestamps[ws.head:])
	ws.timestamps = ws.timestamps[:n]

	var zero T
	m := copy(ws.entries, ws.entries[ws.head:])
	for i := m; i < len(ws.entries); i++ {
		ws.entries[i] = zero
	}
	ws.entries = ws.entries[:m]

	ws.head = 0
}

func (ws *WindowedSeries[T]) Len() int {
	return len(ws.entries) - ws.head
}

// Snapshot returns a copy of the live entries in arrival order. The
// copy is independent of later mutations; an empty series yields an
// empty slice, not an error.
func (ws *WindowedSeries[T]) Snapshot() []T {
	out := make([]T, ws.Len())
	copy(out, ws.entries[ws.head:])
	return out
}
