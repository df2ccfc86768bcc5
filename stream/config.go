package stream

import (
	"os"
	"strconv"
	"time"
)

// Defaults match the reference deployment.
const (
	DefaultWindowSize      = 40
	DefaultLowerBound      = -20.0
	DefaultUpperBound      = 20.0
	DefaultDisplayDuration = 40
	DefaultQueueSize       = 10000
	DefaultBlockTimeout    = 100 * time.Millisecond
)

// OverflowPolicy controls what Ingest does when the queue is full.
type OverflowPolicy int

const (
	// DropOnOverflow discards the incoming sample with a warning.
	DropOnOverflow OverflowPolicy = iota
	// BlockWithTimeout waits up to BlockTimeout before discarding.
	BlockWithTimeout
)

// Config is fixed at construction; there is no dynamic reconfiguration.
type Config struct {
	// WindowSize is the retention and smoothing horizon in ticks.
	WindowSize int64
	// LowerBound and UpperBound are the absolute classification bounds.
	LowerBound float64
	UpperBound float64
	// DisplayDuration caps how many anomaly records are retained.
	DisplayDuration int
	// QueueSize bounds the ingest channel.
	QueueSize int
	// Overflow selects the boundary back-pressure policy.
	Overflow OverflowPolicy
	// BlockTimeout applies when Overflow is BlockWithTimeout.
	BlockTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		WindowSize:      DefaultWindowSize,
		LowerBound:      DefaultLowerBound,
		UpperBound:      DefaultUpperBound,
		DisplayDuration: DefaultDisplayDuration,
		QueueSize:       DefaultQueueSize,
		Overflow:        DropOnOverflow,
		BlockTimeout:    DefaultBlockTimeout,
	}
}

// ConfigFromEnv applies environment overrides on top of the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("WINDOW_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.WindowSize = n
		}
	}
	if v := os.Getenv("LOWER_BOUND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.LowerBound = f
		}
	}
	if v := os.Getenv("UPPER_BOUND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.UpperBound = f
		}
	}
	if v := os.Getenv("DISPLAY_DURATION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DisplayDuration = n
		}
	}
	if v := os.Getenv("ENGINE_QUEUE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.QueueSize = n
		}
	}
	if v := os.Getenv("INGEST_BLOCK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Overflow = BlockWithTimeout
			cfg.BlockTimeout = d
		}
	}

	return cfg
}
