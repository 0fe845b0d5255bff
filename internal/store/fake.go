package store

import (
	"sync"

	"github.com/sweeney/envirocontrol/internal/telemetry"
)

// FakeSink records appended samples for test assertions. Safe for
// concurrent use.
type FakeSink struct {
	mu      sync.Mutex
	samples []telemetry.Sample

	// AppendErr, if set, is returned by Append.
	AppendErr error
	// Closed tracks if Close was called.
	Closed bool
	// Appended, if non-nil, receives a signal after every Append attempt.
	Appended chan struct{}
}

// NewFakeSink creates a FakeSink.
func NewFakeSink() *FakeSink {
	return &FakeSink{}
}

// Append records the sample.
func (f *FakeSink) Append(s telemetry.Sample) error {
	f.mu.Lock()
	err := f.AppendErr
	if err == nil {
		f.samples = append(f.samples, s)
	}
	ch := f.Appended
	f.mu.Unlock()

	if ch != nil {
		ch <- struct{}{}
	}
	return err
}

// QueryLastN returns up to n recorded samples, oldest first.
func (f *FakeSink) QueryLastN(n int) ([]telemetry.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n > len(f.samples) {
		n = len(f.samples)
	}
	out := make([]telemetry.Sample, n)
	copy(out, f.samples[len(f.samples)-n:])
	return out, nil
}

// Close marks the sink as closed.
func (f *FakeSink) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// Samples returns a copy of everything appended so far.
func (f *FakeSink) Samples() []telemetry.Sample {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]telemetry.Sample, len(f.samples))
	copy(out, f.samples)
	return out
}
