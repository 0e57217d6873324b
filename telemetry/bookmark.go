package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkFrameSpike BookmarkType = "frame_spike"
	BookmarkFPSDrop    BookmarkType = "fps_drop"
	BookmarkSteady     BookmarkType = "steady_frames"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType
	Tick        int64
	Description string
}

// LogBookmark logs the bookmark.
func (b Bookmark) LogBookmark(logger *slog.Logger) {
	logger.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags notable changes between perf windows.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []FrameSummary
	historySize int
	historyIdx  int
	historyFull bool

	recentFPSPeak float64
	steadyCount   int // consecutive steady windows
	steadyLogged  bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5 // minimum for steady detection
	}
	return &BookmarkDetector{
		history:     make([]FrameSummary, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats PerfStats, tick int64) []Bookmark {
	var bookmarks []Bookmark
	frames := stats.Frames

	if frames.Count == 0 {
		return nil
	}

	// Frame spike: p99 > 2x rolling average p99
	if b := bd.checkFrameSpike(frames, tick); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	// FPS drop: more than 30% below the recent peak
	if b := bd.checkFPSDrop(stats.FPS, tick); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if b := bd.checkSteady(frames, tick); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(frames)
	if stats.FPS > bd.recentFPSPeak {
		bd.recentFPSPeak = stats.FPS
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(frames FrameSummary) {
	bd.history[bd.historyIdx] = frames
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []FrameSummary {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkFrameSpike(frames FrameSummary, tick int64) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.P99Ms
	}
	avg := total / float64(len(history))
	if avg <= 0 || frames.P99Ms <= 2*avg {
		return nil
	}

	return &Bookmark{
		Type:        BookmarkFrameSpike,
		Tick:        tick,
		Description: fmt.Sprintf("p99 frame %.2fms vs %.2fms average", frames.P99Ms, avg),
	}
}

func (bd *BookmarkDetector) checkFPSDrop(fps float64, tick int64) *Bookmark {
	if bd.recentFPSPeak <= 0 || fps <= 0 {
		return nil
	}
	if fps >= bd.recentFPSPeak*0.7 {
		return nil
	}

	b := &Bookmark{
		Type:        BookmarkFPSDrop,
		Tick:        tick,
		Description: fmt.Sprintf("FPS %.1f, down from %.1f", fps, bd.recentFPSPeak),
	}
	// Reset so a sustained drop reports once
	bd.recentFPSPeak = fps
	return b
}

func (bd *BookmarkDetector) checkSteady(frames FrameSummary, tick int64) *Bookmark {
	if frames.MeanMs <= 0 || frames.StdDevMs > frames.MeanMs*0.1 {
		bd.steadyCount = 0
		bd.steadyLogged = false
		return nil
	}

	bd.steadyCount++
	if bd.steadyCount < 5 || bd.steadyLogged {
		return nil
	}
	bd.steadyLogged = true

	return &Bookmark{
		Type:        BookmarkSteady,
		Tick:        tick,
		Description: fmt.Sprintf("%d windows at %.2fms +/- %.2fms", bd.steadyCount, frames.MeanMs, frames.StdDevMs),
	}
}
