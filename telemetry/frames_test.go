package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestFrameStats_Empty(t *testing.T) {
	fs := NewFrameStats(10)
	s := fs.Summary()
	if s.Count != 0 || s.MeanMs != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestFrameStats_Summary(t *testing.T) {
	fs := NewFrameStats(100)
	for i := 1; i <= 100; i++ {
		fs.Add(time.Duration(i) * time.Millisecond)
	}

	s := fs.Summary()
	if s.Count != 100 {
		t.Fatalf("expected 100 samples, got %d", s.Count)
	}
	if math.Abs(s.MeanMs-50.5) > 1e-9 {
		t.Errorf("expected mean 50.5, got %f", s.MeanMs)
	}
	if s.P50Ms != 50 {
		t.Errorf("expected p50 50, got %f", s.P50Ms)
	}
	if s.P99Ms != 99 {
		t.Errorf("expected p99 99, got %f", s.P99Ms)
	}
	if s.MaxMs != 100 {
		t.Errorf("expected max 100, got %f", s.MaxMs)
	}
	if s.StdDevMs <= 0 {
		t.Error("expected positive deviation")
	}
}

func TestFrameStats_RingOverwrites(t *testing.T) {
	fs := NewFrameStats(3)
	for _, ms := range []int{100, 100, 100, 1, 2, 3} {
		fs.Add(time.Duration(ms) * time.Millisecond)
	}

	s := fs.Summary()
	if s.Count != 3 {
		t.Fatalf("expected window of 3, got %d", s.Count)
	}
	if s.MaxMs != 3 {
		t.Errorf("old samples should be evicted, max %f", s.MaxMs)
	}
}

func TestFrameStats_SingleSample(t *testing.T) {
	fs := NewFrameStats(5)
	fs.Add(16 * time.Millisecond)

	s := fs.Summary()
	if s.MeanMs != 16 || s.StdDevMs != 0 {
		t.Errorf("unexpected single-sample summary %+v", s)
	}
}
