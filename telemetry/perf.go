// Package telemetry collects frame timing, detects perf bookmarks and writes run output.
package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one step of the frame tick.
type Phase int

const (
	PhaseClock Phase = iota
	PhaseAnimate
	PhaseControls
	PhaseRender
	numPhases
)

// Phases lists the tick phases in execution order.
var Phases = [numPhases]Phase{PhaseClock, PhaseAnimate, PhaseControls, PhaseRender}

var phaseNames = [numPhases]string{"clock", "animate", "controls", "render"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

type tickSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times tick phases and frames over a rolling window.
// Phases are laps: entering one closes the previous.
type PerfCollector struct {
	ticks []tickSample
	next  int
	count int

	cur       tickSample
	tickStart time.Time
	lapStart  time.Time
	phase     Phase
	inTick    bool

	lastFrame time.Time
	lastDur   time.Duration
	frames    *FrameStats
}

// NewPerfCollector creates a collector averaging over window ticks.
// The same window bounds the frame-time history.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		ticks:  make([]tickSample, window),
		phase:  -1,
		frames: NewFrameStats(window),
	}
}

// StartTick begins timing a tick. No phase is open until StartPhase.
func (p *PerfCollector) StartTick() {
	now := time.Now()
	p.cur = tickSample{}
	p.tickStart = now
	p.lapStart = now
	p.phase = -1
	p.inTick = true
}

// StartPhase closes the open phase and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	p.lap(time.Now())
	p.phase = phase
}

func (p *PerfCollector) lap(now time.Time) {
	if p.phase >= 0 && p.phase < numPhases {
		p.cur.phases[p.phase] += now.Sub(p.lapStart)
	}
	p.lapStart = now
}

// EndTick closes the open phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	if !p.inTick {
		return
	}
	now := time.Now()
	p.lap(now)
	p.cur.total = now.Sub(p.tickStart)

	p.ticks[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ticks)
	if p.count < len(p.ticks) {
		p.count++
	}
	p.phase = -1
	p.inTick = false
}

// RecordFrame marks a presented frame. The first call only sets the baseline.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.lastDur = now.Sub(p.lastFrame)
		p.frames.Add(p.lastDur)
	}
	p.lastFrame = now
}

// PerfStats is a snapshot of the collector window.
type PerfStats struct {
	AvgTickDuration time.Duration
	// PhasePct is each phase's share of the average tick, in percent.
	PhasePct [numPhases]float64

	// FPS is derived from the most recent frame only.
	FPS    float64
	Frames FrameSummary
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Frames: p.frames.Summary()}
	if p.lastDur > 0 {
		s.FPS = float64(time.Second) / float64(p.lastDur)
	}
	if p.count == 0 {
		return s
	}

	var total time.Duration
	var phases [numPhases]time.Duration
	for _, t := range p.ticks[:p.count] {
		total += t.total
		for i, d := range t.phases {
			phases[i] += d
		}
	}

	s.AvgTickDuration = total / time.Duration(p.count)
	if total > 0 {
		for i, d := range phases {
			s.PhasePct[i] = float64(d) / float64(total) * 100
		}
	}
	return s
}

// LogStats logs a flat perf line at tick.
func (s PerfStats) LogStats(logger *slog.Logger, tick int64) {
	attrs := []any{
		"tick", tick,
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	if s.Frames.Count > 0 {
		attrs = append(attrs,
			"frame_p50_ms", s.Frames.P50Ms,
			"frame_p99_ms", s.Frames.P99Ms,
		)
	}
	for _, phase := range Phases {
		// one decimal is plenty for a log line
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase.String()+"_pct", float64(int(pct*10))/10)
		}
	}
	logger.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	if s.Frames.Count > 0 {
		attrs = append(attrs,
			slog.Float64("frame_mean_ms", s.Frames.MeanMs),
			slog.Float64("frame_p95_ms", s.Frames.P95Ms),
			slog.Float64("frame_p99_ms", s.Frames.P99Ms),
		)
	}
	for _, phase := range Phases {
		attrs = append(attrs, slog.Float64(phase.String()+"_pct", s.PhasePct[phase]))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Tick        int64   `csv:"tick"`
	Elapsed     float64 `csv:"elapsed_sec"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	FPS         float64 `csv:"fps"`
	FrameMeanMs float64 `csv:"frame_mean_ms"`
	FrameP95Ms  float64 `csv:"frame_p95_ms"`
	FrameP99Ms  float64 `csv:"frame_p99_ms"`
	ClockPct    float64 `csv:"clock_pct"`
	AnimatePct  float64 `csv:"animate_pct"`
	ControlsPct float64 `csv:"controls_pct"`
	RenderPct   float64 `csv:"render_pct"`
}

// ToCSV flattens s into a row for tick at elapsed seconds.
func (s PerfStats) ToCSV(tick int64, elapsed float64) PerfStatsCSV {
	return PerfStatsCSV{
		Tick:        tick,
		Elapsed:     elapsed,
		AvgTickUS:   s.AvgTickDuration.Microseconds(),
		FPS:         s.FPS,
		FrameMeanMs: s.Frames.MeanMs,
		FrameP95Ms:  s.Frames.P95Ms,
		FrameP99Ms:  s.Frames.P99Ms,
		ClockPct:    s.PhasePct[PhaseClock],
		AnimatePct:  s.PhasePct[PhaseAnimate],
		ControlsPct: s.PhasePct[PhaseControls],
		RenderPct:   s.PhasePct[PhaseRender],
	}
}
