package control

import "sync"

// State is the single source of truth for the control record, written by
// both the controller loop and the intent resolver. Each mutation holds
// the lock only for the assignment, giving per-field atomicity: a reader
// never observes a half-written threshold. There is no cross-field
// transaction; a reader may see a new threshold paired with a stale mode,
// which self-corrects on the next sample evaluation.
type State struct {
	mu              sync.RWMutex
	aiEnabled       bool
	override        Override
	threshold       float64
	band            float64 // constant after construction
	lastTemperature float64
	haveSample      bool
}

// Snapshot is a point-in-time copy of the control record. It is a value
// type — safe to use after the lock is released.
type Snapshot struct {
	AIEnabled       bool
	Override        Override
	Threshold       float64
	Band            float64
	LastTemperature float64
	HaveSample      bool
}

// NewState creates the control record with the given setpoint and
// hysteresis band. The setpoint is clamped to the engineering limits.
// Automatic mode is enabled and no override is active.
func NewState(threshold, band float64) *State {
	return &State{
		aiEnabled: true,
		override:  OverrideNone,
		threshold: clampThreshold(threshold),
		band:      band,
	}
}

// Snapshot returns a copy of the control record.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		AIEnabled:       s.aiEnabled,
		Override:        s.override,
		Threshold:       s.threshold,
		Band:            s.band,
		LastTemperature: s.lastTemperature,
		HaveSample:      s.haveSample,
	}
}

// SetAIEnabled switches between automatic and manual mode.
func (s *State) SetAIEnabled(enabled bool) {
	s.mu.Lock()
	s.aiEnabled = enabled
	s.mu.Unlock()
}

// SetOverride sets the manual forcing state.
func (s *State) SetOverride(o Override) {
	s.mu.Lock()
	s.override = o
	s.mu.Unlock()
}

// SetThreshold sets the setpoint, clamped to [MinThreshold, MaxThreshold].
// Returns the value actually applied. The change takes effect on the next
// evaluation, never retroactively.
func (s *State) SetThreshold(v float64) float64 {
	clamped := clampThreshold(v)
	s.mu.Lock()
	s.threshold = clamped
	s.mu.Unlock()
	return clamped
}

// Nudge moves the setpoint by delta, clamped to the engineering limits.
// Returns the threshold after the nudge.
func (s *State) Nudge(delta float64) float64 {
	s.mu.Lock()
	s.threshold = clampThreshold(s.threshold + delta)
	v := s.threshold
	s.mu.Unlock()
	return v
}

// RecordTemperature stores the most recent temperature reading.
func (s *State) RecordTemperature(t float64) {
	s.mu.Lock()
	s.lastTemperature = t
	s.haveSample = true
	s.mu.Unlock()
}

func clampThreshold(v float64) float64 {
	if v < MinThreshold {
		return MinThreshold
	}
	if v > MaxThreshold {
		return MaxThreshold
	}
	return v
}
