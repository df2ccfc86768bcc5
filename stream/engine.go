package stream

import (
	"log"
	"time"

	"stream-anomaly-processor/models"
)

type AnomalyCallback func(streamID string)

// ResultSink receives every emitted StreamResult.
type ResultSink interface {
	SaveResult(streamID string, result models.StreamResult) error
}

type task struct {
	streamID string
	value    float64
	flagged  bool
}

// Engine feeds ticks from a bounded ingest queue into per-stream
// processors. Exactly one worker goroutine drains the queue and owns
// every processor, so ticks apply strictly in arrival order and no
// locking is needed around the mutable state.
type Engine struct {
	cfg        Config
	sink       ResultSink
	processors map[string]*Processor
	taskChan   chan task
	onAnomaly  AnomalyCallback
	done       chan struct{}
}

func NewEngine(cfg Config, sink ResultSink, onAnomaly AnomalyCallback) *Engine {
	engine := &Engine{
		cfg:        cfg,
		sink:       sink,
		processors: make(map[string]*Processor),
		taskChan:   make(chan task, cfg.QueueSize),
		onAnomaly:  onAnomaly,
		done:       make(chan struct{}),
	}

	go engine.run()

	return engine
}

// Ingest enqueues one sample. It never blocks indefinitely: on a full
// queue the configured overflow policy applies.
func (e *Engine) Ingest(streamID string, value float64, flagged bool) {
	t := task{streamID: streamID, value: value, flagged: flagged}

	switch e.cfg.Overflow {
	case BlockWithTimeout:
		timer := time.NewTimer(e.cfg.BlockTimeout)
		defer timer.Stop()
		select {
		case e.taskChan <- t:
		case <-timer.C:
			log.Printf("WARNING: ingest queue is full, dropping sample from stream %s", streamID)
		}
	default:
		select {
		case e.taskChan <- t:
		default:
			// Канал переполнен, логируем предупреждение
			log.Printf("WARNING: ingest queue is full, dropping sample from stream %s", streamID)
		}
	}
}

func (e *Engine) run() {
	defer close(e.done)
	for t := range e.taskChan {
		e.process(t)
	}
}

func (e *Engine) process(t task) {
	processor, ok := e.processors[t.streamID]
	if !ok {
		processor = NewProcessor(e.cfg)
		e.processors[t.streamID] = processor
	}

	result := processor.ProcessTick(t.value, t.flagged)
	result.StreamID = t.streamID
	result.ProcessedAt = time.Now().UTC()

	if result.Error != "" {
		log.Printf("WARNING: stream %s rejected sample at tick %d: %s",
			t.streamID, result.Timestamp, result.Error)
	}

	if result.IsAnomaly {
		stats := processor.Stats()
		log.Printf("ANOMALY DETECTED: stream=%s, tick=%d, value=%.2f, mean=%.2f, std_dev=%.2f",
			t.streamID, result.Timestamp, result.Value, stats.Mean(), stats.StdDev())

		if e.onAnomaly != nil {
			e.onAnomaly(t.streamID)
		}
	}

	if e.sink != nil {
		if err := e.sink.SaveResult(t.streamID, result); err != nil {
			log.Printf("ERROR: failed to save result for stream %s: %v", t.streamID, err)
		}
	}
}

// Close stops accepting samples and waits for the queue to drain.
func (e *Engine) Close() {
	close(e.taskChan)
	<-e.done
}
