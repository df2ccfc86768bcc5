package stream

import (
	"errors"
	"math"
	"testing"

	"stream-anomaly-processor/models"
)

func TestRunningStatsFirstUpdate(t *testing.T) {
	rs := NewRunningStats(40)

	if err := rs.Update(7.25); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if rs.Mean() != 7.25 {
		t.Errorf("Expected mean 7.25, got %f", rs.Mean())
	}
	if rs.StdDev() != 0 {
		t.Errorf("Expected std 0 after first update, got %f", rs.StdDev())
	}
	if rs.Count() != 1 {
		t.Errorf("Expected count 1, got %d", rs.Count())
	}
}

func TestRunningStatsSecondUpdateFallback(t *testing.T) {
	pairs := [][2]float64{
		{0, 0},
		{5, 5},
		{-3, 12},
		{100, -100},
	}

	for _, pair := range pairs {
		rs := NewRunningStats(40)
		rs.Update(pair[0])
		rs.Update(pair[1])

		if rs.StdDev() != 1 {
			t.Errorf("Expected std fallback 1 after second update of (%f, %f), got %f",
				pair[0], pair[1], rs.StdDev())
		}
	}
}

func TestRunningStatsConstantStream(t *testing.T) {
	rs := NewRunningStats(40)

	for i := 0; i < 10; i++ {
		if err := rs.Update(7.5); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	if rs.Mean() != 7.5 {
		t.Errorf("Expected mean 7.5, got %f", rs.Mean())
	}
	if rs.StdDev() > 1e-12 {
		t.Errorf("Expected std near 0 for constant stream, got %f", rs.StdDev())
	}
}

func TestRunningStatsRejectsNonFinite(t *testing.T) {
	rs := NewRunningStats(40)
	rs.Update(3)
	rs.Update(5)

	mean, std, count := rs.Mean(), rs.StdDev(), rs.Count()

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := rs.Update(bad)
		if !errors.Is(err, models.ErrInvalidSample) {
			t.Errorf("Expected ErrInvalidSample for %f, got %v", bad, err)
		}
	}

	if rs.Mean() != mean || rs.StdDev() != std || rs.Count() != count {
		t.Error("State changed after rejected update")
	}
}

func TestRunningStatsCountCappedAtCapacity(t *testing.T) {
	rs := NewRunningStats(4)

	for i := 0; i < 20; i++ {
		rs.Update(float64(i))
	}

	if rs.Count() != 4 {
		t.Errorf("Expected count capped at 4, got %d", rs.Count())
	}
}

func TestRunningStatsReset(t *testing.T) {
	rs := NewRunningStats(40)
	rs.Update(10)
	rs.Update(20)

	rs.Reset()

	if rs.Count() != 0 || rs.Mean() != 0 || rs.StdDev() != 0 {
		t.Error("Reset did not clear state")
	}

	rs.Update(3)
	if rs.Mean() != 3 || rs.StdDev() != 0 {
		t.Error("Stats after reset should behave like a fresh estimator")
	}
}
