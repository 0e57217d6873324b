package telemetry

import "testing"

func perfWithFrames(fps, mean, std, p99 float64) PerfStats {
	return PerfStats{
		FPS: fps,
		Frames: FrameSummary{
			Count:    60,
			MeanMs:   mean,
			StdDevMs: std,
			P99Ms:    p99,
		},
	}
}

func hasBookmark(bookmarks []Bookmark, bt BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == bt {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_FrameSpike(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(perfWithFrames(60, 16.6, 3, 18), int64(i*300))
	}

	bookmarks := bd.Check(perfWithFrames(60, 16.6, 3, 50), 1500)
	if !hasBookmark(bookmarks, BookmarkFrameSpike) {
		t.Error("expected frame_spike bookmark")
	}
	if bookmarks[0].Tick != 1500 {
		t.Errorf("expected tick 1500, got %d", bookmarks[0].Tick)
	}
}

func TestBookmarkDetector_NoSpikeWithoutHistory(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(perfWithFrames(60, 16.6, 3, 18), 0)
	if b := bd.Check(perfWithFrames(60, 16.6, 3, 100), 300); hasBookmark(b, BookmarkFrameSpike) {
		t.Error("spike needs at least 3 windows of history")
	}
}

func TestBookmarkDetector_FPSDrop(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 3; i++ {
		bd.Check(perfWithFrames(60, 16.6, 3, 18), int64(i*300))
	}

	if b := bd.Check(perfWithFrames(50, 20, 3, 22), 900); hasBookmark(b, BookmarkFPSDrop) {
		t.Error("a 17% drop should not trigger")
	}
	if b := bd.Check(perfWithFrames(30, 33, 3, 36), 1200); !hasBookmark(b, BookmarkFPSDrop) {
		t.Error("expected fps_drop bookmark")
	}
	// Sustained low FPS reports once
	if b := bd.Check(perfWithFrames(30, 33, 3, 36), 1500); hasBookmark(b, BookmarkFPSDrop) {
		t.Error("sustained drop should not repeat")
	}
}

func TestBookmarkDetector_Steady(t *testing.T) {
	bd := NewBookmarkDetector(10)

	var found int
	for i := 0; i < 8; i++ {
		if hasBookmark(bd.Check(perfWithFrames(60, 16.6, 0.5, 17.5), int64(i)), BookmarkSteady) {
			found++
			if i != 4 {
				t.Errorf("steady bookmark at window %d, want 4", i)
			}
		}
	}
	if found != 1 {
		t.Errorf("expected one steady bookmark, got %d", found)
	}

	// Jitter resets the streak
	bd.Check(perfWithFrames(60, 16.6, 8, 30), 100)
	for i := 0; i < 4; i++ {
		if hasBookmark(bd.Check(perfWithFrames(60, 16.6, 0.5, 17.5), int64(200+i)), BookmarkSteady) {
			t.Error("streak should restart after jitter")
		}
	}
}

func TestBookmarkDetector_EmptyFrames(t *testing.T) {
	bd := NewBookmarkDetector(3)

	if b := bd.Check(PerfStats{}, 0); b != nil {
		t.Errorf("headless stats without frames should produce nothing, got %v", b)
	}
}
