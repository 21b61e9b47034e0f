package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinner_StartStop(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "computing layout")
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop() // must return, not hang on the animation goroutine
}

func TestSpinner_StopIdempotent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "computing layout")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinner_SetPhase(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "short")
	s.SetPhase("optimizing family %d: %d chains", 3, 41)

	s.mu.Lock()
	phase, width := s.phase, s.maxWidth
	s.mu.Unlock()

	if phase != "optimizing family 3: 41 chains" {
		t.Errorf("phase = %q, want formatted phase", phase)
	}
	if width < len(phase) {
		t.Errorf("maxWidth = %d, want >= %d for clean clearing", width, len(phase))
	}
}

func TestSpinner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "computing layout")
	s.Start()

	if s.Cancelled() {
		t.Error("Cancelled() = true before cancellation, want false")
	}
	cancel()
	s.Stop()
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancel, want true")
	}
}

func TestSpinner_NormalStopIsNotCancelled(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "computing layout")
	s.Start()
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true after plain Stop, want false")
	}
}
