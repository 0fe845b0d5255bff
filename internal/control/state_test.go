package control

import (
	"sync"
	"testing"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState(DefaultThreshold, DefaultBand)
	snap := s.Snapshot()
	if !snap.AIEnabled {
		t.Error("new state should start in automatic mode")
	}
	if snap.Override != OverrideNone {
		t.Errorf("expected no override, got %s", snap.Override)
	}
	if snap.Threshold != DefaultThreshold {
		t.Errorf("expected threshold %v, got %v", DefaultThreshold, snap.Threshold)
	}
	if snap.Band != DefaultBand {
		t.Errorf("expected band %v, got %v", DefaultBand, snap.Band)
	}
	if snap.HaveSample {
		t.Error("new state should not report a sample")
	}
}

func TestNewStateClampsThreshold(t *testing.T) {
	s := NewState(50.0, DefaultBand)
	if got := s.Snapshot().Threshold; got != MaxThreshold {
		t.Errorf("expected threshold clamped to %v, got %v", MaxThreshold, got)
	}

	s = NewState(0.0, DefaultBand)
	if got := s.Snapshot().Threshold; got != MinThreshold {
		t.Errorf("expected threshold clamped to %v, got %v", MinThreshold, got)
	}
}

func TestSetThresholdClamps(t *testing.T) {
	s := NewState(DefaultThreshold, DefaultBand)

	if got := s.SetThreshold(40.0); got != MaxThreshold {
		t.Errorf("expected %v, got %v", MaxThreshold, got)
	}
	if got := s.SetThreshold(10.0); got != MinThreshold {
		t.Errorf("expected %v, got %v", MinThreshold, got)
	}
	if got := s.SetThreshold(25.0); got != 25.0 {
		t.Errorf("expected 25.0, got %v", got)
	}
}

func TestRepeatedNudgesNeverLeaveLimits(t *testing.T) {
	s := NewState(18.5, DefaultBand)

	// Repeated downward nudges must never push the setpoint below the
	// lower engineering limit.
	for i := 0; i < 5; i++ {
		got := s.Nudge(-NudgeStep)
		if got < MinThreshold {
			t.Fatalf("nudge %d: threshold %v below %v", i, got, MinThreshold)
		}
	}
	if got := s.Snapshot().Threshold; got != MinThreshold {
		t.Errorf("expected threshold pinned at %v, got %v", MinThreshold, got)
	}

	for i := 0; i < 30; i++ {
		got := s.Nudge(NudgeStep)
		if got > MaxThreshold {
			t.Fatalf("nudge %d: threshold %v above %v", i, got, MaxThreshold)
		}
	}
	if got := s.Snapshot().Threshold; got != MaxThreshold {
		t.Errorf("expected threshold pinned at %v, got %v", MaxThreshold, got)
	}
}

func TestRecordTemperature(t *testing.T) {
	s := NewState(DefaultThreshold, DefaultBand)
	s.RecordTemperature(22.4)

	snap := s.Snapshot()
	if !snap.HaveSample {
		t.Error("expected HaveSample after RecordTemperature")
	}
	if snap.LastTemperature != 22.4 {
		t.Errorf("expected last temperature 22.4, got %v", snap.LastTemperature)
	}
}

// TestConcurrentWriters exercises the two-writer pattern the daemon runs
// under: the control loop recording temperatures while the intent
// resolver mutates mode and threshold. Run with -race.
func TestConcurrentWriters(t *testing.T) {
	s := NewState(DefaultThreshold, DefaultBand)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.RecordTemperature(float64(i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Nudge(NudgeStep)
			s.Nudge(-NudgeStep)
			s.SetAIEnabled(i%2 == 0)
			s.SetOverride(OverrideOn)
			s.SetOverride(OverrideNone)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			snap := s.Snapshot()
			if snap.Threshold < MinThreshold || snap.Threshold > MaxThreshold {
				t.Errorf("observed threshold %v outside limits", snap.Threshold)
				return
			}
		}
	}()

	wg.Wait()
}
