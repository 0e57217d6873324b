package telemetry

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// FrameStats keeps a ring of recent frame durations.
type FrameStats struct {
	samples []float64 // milliseconds
	next    int
	filled  bool
	scratch []float64
}

// FrameSummary describes the frame-time distribution of the window.
type FrameSummary struct {
	Count    int
	MeanMs   float64
	StdDevMs float64
	P50Ms    float64
	P95Ms    float64
	P99Ms    float64
	MaxMs    float64
}

// NewFrameStats creates a ring holding up to size frames.
func NewFrameStats(size int) *FrameStats {
	if size < 1 {
		size = 60
	}
	return &FrameStats{
		samples: make([]float64, size),
		scratch: make([]float64, 0, size),
	}
}

// Add records one frame duration.
func (f *FrameStats) Add(d time.Duration) {
	f.samples[f.next] = float64(d) / float64(time.Millisecond)
	f.next++
	if f.next == len(f.samples) {
		f.next = 0
		f.filled = true
	}
}

// Len returns the number of recorded frames in the window.
func (f *FrameStats) Len() int {
	if f.filled {
		return len(f.samples)
	}
	return f.next
}

// Summary computes mean, deviation and empirical quantiles.
func (f *FrameStats) Summary() FrameSummary {
	n := f.Len()
	if n == 0 {
		return FrameSummary{}
	}

	f.scratch = append(f.scratch[:0], f.samples[:n]...)
	sort.Float64s(f.scratch)

	mean, std := stat.MeanStdDev(f.scratch, nil)
	if n == 1 {
		std = 0
	}
	return FrameSummary{
		Count:    n,
		MeanMs:   mean,
		StdDevMs: std,
		P50Ms:    stat.Quantile(0.50, stat.Empirical, f.scratch, nil),
		P95Ms:    stat.Quantile(0.95, stat.Empirical, f.scratch, nil),
		P99Ms:    stat.Quantile(0.99, stat.Empirical, f.scratch, nil),
		MaxMs:    f.scratch[n-1],
	}
}
