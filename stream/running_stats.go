package stream

import (
	"math"

	"stream-anomaly-processor/models"
)

// RunningStats maintains a Welford-style incremental mean and standard
// deviation without storing the sample history. The effective sample
// count is capped at the window capacity, so once the trailing window
// saturates the smoothing horizon stays fixed.
type RunningStats struct {
	count    int
	capacity int
	mean     float64
	variance float64
	stdDev   float64
}

func NewRunningStats(windowCapacity int) *RunningStats {
	return &RunningStats{capacity: windowCapacity}
}

// Update folds one value into the estimate. Non-finite values are
// rejected and leave the state untouched.
func (rs *RunningStats) Update(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return models.ErrInvalidSample
	}

	n := rs.count
	if n == 0 {
		rs.mean = value
		rs.stdDev = 0
	} else {
		delta := value - rs.mean
		rs.mean += delta / float64(n+1)
		rs.variance += delta * (value - rs.mean)
		if n > 1 {
			rs.stdDev = math.Sqrt(rs.variance / float64(n))
		} else {
			// Fixed fallback for the single-sample case.
			rs.stdDev = 1
		}
	}

	if rs.count < rs.capacity {
		rs.count++
	}

	return nil
}

func (rs *RunningStats) Mean() float64 {
	return rs.mean
}

func (rs *RunningStats) StdDev() float64 {
	return rs.stdDev
}

func (rs *RunningStats) Count() int {
	return rs.count
}

func (rs *RunningStats) Reset() {
	*rs = RunningStats{capacity: rs.capacity}
}
