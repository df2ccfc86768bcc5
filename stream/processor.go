package stream

import (
	"fmt"

	"stream-anomaly-processor/models"
)

// Processor runs the per-tick pipeline for one stream: update the
// running statistics, classify, retain, evict, emit. It owns all of
// its state exclusively and must be driven by a single caller.
type Processor struct {
	cfg        Config
	stats      *RunningStats
	classifier *Classifier
	data       *WindowedSeries[models.Sample]
	anomalies  *WindowedSeries[models.AnomalyRecord]
	tick       int64
	previous   float64
}

func NewProcessor(cfg Config) *Processor {
	return &Processor{
		cfg:        cfg,
		stats:      NewRunningStats(int(cfg.WindowSize)),
		classifier: NewClassifier(cfg.LowerBound, cfg.UpperBound),
		data:       NewWindowedSeries[models.Sample](0),
		anomalies:  NewWindowedSeries[models.AnomalyRecord](cfg.DisplayDuration),
	}
}

// ProcessTick consumes one sample and returns the tick's result. A
// rejected sample still produces a result (with Error set) and leaves
// the statistics and both series unchanged; the next tick proceeds
// normally.
func (p *Processor) ProcessTick(value float64, flagged bool) models.StreamResult {
	p.tick++
	t := p.tick

	if err := p.stats.Update(value); err != nil {
		return models.StreamResult{
			Timestamp: t,
			Value:     value,
			Data:      p.data.Snapshot(),
			Anomalies: p.anomalies.Snapshot(),
			Error:     err.Error(),
		}
	}

	isAnomaly := p.classifier.Classify(value, p.previous, flagged)

	var tickErr string
	if isAnomaly {
		record := models.AnomalyRecord{
			Timestamp: t,
			Value:     value,
			Label:     fmt.Sprintf("%.2f", value),
		}
		if err := p.anomalies.Append(record, t); err != nil {
			tickErr = err.Error()
		}
	}

	if err := p.data.Append(models.Sample{Timestamp: t, Value: value}, t); err != nil {
		tickErr = err.Error()
	}

	// Retain only the last WindowSize ticks, the just-appended entry
	// always survives.
	cutoff := t - p.cfg.WindowSize + 1
	p.data.EvictBefore(cutoff)
	p.anomalies.EvictBefore(cutoff)

	p.previous = value

	return models.StreamResult{
		Timestamp: t,
		Value:     value,
		IsAnomaly: isAnomaly,
		Data:      p.data.Snapshot(),
		Anomalies: p.anomalies.Snapshot(),
		Error:     tickErr,
	}
}

// Stats exposes the running estimate for logging and inspection; the
// classification decision itself never consults it.
func (p *Processor) Stats() *RunningStats {
	return p.stats
}

func (p *Processor) Tick() int64 {
	return p.tick
}
