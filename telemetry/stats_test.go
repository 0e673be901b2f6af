package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	values := []float64{10, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	s := Summarize(values)

	if math.Abs(s.Mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", s.Mean)
	}
	if s.P10 != 1 {
		t.Errorf("p10 = %v, want 1", s.P10)
	}
	if s.P50 != 5 {
		t.Errorf("p50 = %v, want 5", s.P50)
	}
	if s.P90 != 9 {
		t.Errorf("p90 = %v, want 9", s.P90)
	}
	if s.Max != 10 {
		t.Errorf("max = %v, want 10", s.Max)
	}
	if s.Std <= 0 {
		t.Errorf("std = %v, want positive", s.Std)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s != (Summary{}) {
		t.Errorf("empty series should return zero summary, got %+v", s)
	}
}

func TestSummarizeSingle(t *testing.T) {
	s := Summarize([]float64{4.2})
	if s.Mean != 4.2 || s.P50 != 4.2 || s.Max != 4.2 {
		t.Errorf("single sample summary = %+v, want all 4.2", s)
	}
	if s.Std != 0 {
		t.Errorf("single sample std = %v, want 0", s.Std)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(0.5)

	// 31 frames at 16ms is 0.496s, just short of the 0.5s interval.
	for i := 0; i < 31; i++ {
		c.Record(Sample{FrameDT: 0.016, ConstraintError: 2, KineticEnergy: 1, WindStrength: 40})
	}
	if c.ShouldFlush() {
		t.Fatal("window flushed before the interval elapsed")
	}

	c.Record(Sample{FrameDT: 0.016, ConstraintError: 4, KineticEnergy: 3, WindStrength: 80})
	c.RecordGust()
	c.RecordGust()
	c.RecordVortex()

	if !c.ShouldFlush() {
		t.Fatal("window not flushed after the interval elapsed")
	}

	stats := c.Flush(10, 2, 1)
	if stats.Frames != 32 {
		t.Errorf("frames = %d, want 32", stats.Frames)
	}
	if stats.GustsInjected != 2 || stats.VorticesInjected != 1 {
		t.Errorf("injections = %d/%d, want 2/1", stats.GustsInjected, stats.VorticesInjected)
	}
	if stats.ActiveGusts != 2 || stats.ActiveVortices != 1 {
		t.Errorf("active = %d/%d, want 2/1", stats.ActiveGusts, stats.ActiveVortices)
	}
	if stats.WindMax != 80 {
		t.Errorf("wind max = %v, want 80", stats.WindMax)
	}
	if math.Abs(stats.FrameMSMean-16) > 0.001 {
		t.Errorf("frame ms mean = %v, want 16", stats.FrameMSMean)
	}

	// Flush resets the window.
	if c.ShouldFlush() {
		t.Error("window still pending after flush")
	}
	empty := c.Flush(11, 0, 0)
	if empty.Frames != 0 || empty.GustsInjected != 0 {
		t.Errorf("post-flush window not empty: %+v", empty)
	}
}
