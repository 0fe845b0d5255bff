// Package store persists telemetry samples. The daemon treats the sink
// as an opaque append-only collaborator: sink latency or failure must
// never gate an actuation decision, so the hot path hands samples to a
// bounded Writer queue instead of calling the sink directly.
package store

import "github.com/sweeney/envirocontrol/internal/telemetry"

// Sink is an append-only sample store with a last-N query capability.
type Sink interface {
	// Append stores one sample. Errors are tolerated by callers, never
	// fatal to the process.
	Append(s telemetry.Sample) error

	// QueryLastN returns up to n samples in chronological order, oldest
	// first.
	QueryLastN(n int) ([]telemetry.Sample, error)

	// Close releases sink resources.
	Close() error
}
