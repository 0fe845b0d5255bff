package store

import (
	"log"

	"github.com/sweeney/envirocontrol/internal/telemetry"
)

// ring is a fixed-capacity FIFO holding samples awaiting persistence.
// Not safe for concurrent use — caller must synchronize.
type ring struct {
	buf      []telemetry.Sample
	capacity int
	head     int // next write position
	count    int
	overflow bool // true if any sample was dropped since last drain
}

func newRing(capacity int) *ring {
	return &ring{
		buf:      make([]telemetry.Sample, capacity),
		capacity: capacity,
	}
}

// push appends a sample. When full the oldest sample is overwritten:
// fresh telemetry is worth more than stale backlog.
func (r *ring) push(s telemetry.Sample) {
	if r.count == r.capacity {
		if !r.overflow {
			log.Printf("store: queue full (%d samples), dropping oldest", r.capacity)
			r.overflow = true
		}
		// Overwrite oldest: head is already pointing at it
		r.buf[r.head] = s
		r.head = (r.head + 1) % r.capacity
		// count stays at capacity
		return
	}
	r.buf[r.head] = s
	r.head = (r.head + 1) % r.capacity
	r.count++
}

func (r *ring) drainAll() []telemetry.Sample {
	if r.count == 0 {
		return nil
	}

	result := make([]telemetry.Sample, r.count)
	// Oldest item is at (head - count) mod capacity
	start := (r.head - r.count + r.capacity) % r.capacity
	for i := 0; i < r.count; i++ {
		result[i] = r.buf[(start+i)%r.capacity]
	}

	r.count = 0
	r.head = 0
	r.overflow = false
	return result
}

func (r *ring) len() int {
	return r.count
}
