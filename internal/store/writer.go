package store

import (
	"log"
	"sync"

	"github.com/sweeney/envirocontrol/internal/telemetry"
)

// DefaultQueueDepth is the Writer's buffer capacity in samples.
const DefaultQueueDepth = 256

// Writer hands samples to a Sink without ever blocking the caller. The
// control loop enqueues and moves on; a dedicated goroutine drains the
// queue into the sink. Append failures are logged and the sample is lost;
// later samples are still attempted.
type Writer struct {
	sink Sink

	mu   sync.Mutex
	ring *ring

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewWriter starts the drain goroutine. capacity <= 0 uses
// DefaultQueueDepth.
func NewWriter(sink Sink, capacity int) *Writer {
	if capacity <= 0 {
		capacity = DefaultQueueDepth
	}
	w := &Writer{
		sink: sink,
		ring: newRing(capacity),
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.loop()
	return w
}

// Enqueue queues a sample for persistence. Never blocks: when the queue
// is full the oldest queued sample is dropped.
func (w *Writer) Enqueue(s telemetry.Sample) {
	w.mu.Lock()
	w.ring.push(s)
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
		// A wakeup is already pending; the drain will pick this up.
	}
}

// Pending returns the number of samples waiting to be persisted.
func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ring.len()
}

// Close drains any queued samples and stops the goroutine. The sink
// itself is not closed.
func (w *Writer) Close() {
	close(w.stop)
	<-w.done
}

func (w *Writer) loop() {
	defer close(w.done)
	for {
		select {
		case <-w.stop:
			w.flush()
			return
		case <-w.wake:
			w.flush()
		}
	}
}

func (w *Writer) flush() {
	w.mu.Lock()
	batch := w.ring.drainAll()
	w.mu.Unlock()

	for _, s := range batch {
		if err := w.sink.Append(s); err != nil {
			log.Printf("store: append failed: %v", err)
		}
	}
}
