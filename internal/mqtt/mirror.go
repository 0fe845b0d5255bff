package mqtt

import (
	"log"
	"time"

	"github.com/sweeney/envirocontrol/internal/control"
	"github.com/sweeney/envirocontrol/internal/telemetry"
)

// DefaultMirrorDepth is the Mirror's queue capacity in events.
const DefaultMirrorDepth = 64

// Mirror forwards samples and actuation events to a Publisher off the
// hot path. The control loop enqueues and moves on; publishing happens
// on a dedicated goroutine, so a slow or absent broker can never delay
// an actuation decision. When the queue is full the event is dropped:
// the broker mirror is best-effort, the next sample replaces it.
type Mirror struct {
	pub  Publisher
	ch   chan mirrorEvent
	done chan struct{}
}

type mirrorEvent struct {
	sample    *telemetry.Sample
	actuation *control.Command
	at        time.Time
}

// NewMirror starts the publish goroutine. depth <= 0 uses
// DefaultMirrorDepth.
func NewMirror(pub Publisher, depth int) *Mirror {
	if depth <= 0 {
		depth = DefaultMirrorDepth
	}
	m := &Mirror{
		pub:  pub,
		ch:   make(chan mirrorEvent, depth),
		done: make(chan struct{}),
	}
	go m.loop()
	return m
}

// Sample queues a telemetry sample for publication. Never blocks.
func (m *Mirror) Sample(s telemetry.Sample) {
	m.enqueue(mirrorEvent{sample: &s})
}

// Actuation queues an actuation event for publication. Never blocks.
func (m *Mirror) Actuation(cmd control.Command, at time.Time) {
	m.enqueue(mirrorEvent{actuation: &cmd, at: at})
}

// Close stops the goroutine after the queued events are published. The
// publisher itself is not closed.
func (m *Mirror) Close() {
	close(m.ch)
	<-m.done
}

func (m *Mirror) enqueue(ev mirrorEvent) {
	select {
	case m.ch <- ev:
	default:
		log.Printf("mqtt: mirror queue full, event dropped")
	}
}

func (m *Mirror) loop() {
	defer close(m.done)
	for ev := range m.ch {
		switch {
		case ev.sample != nil:
			if err := m.pub.PublishSample(*ev.sample); err != nil {
				log.Printf("mqtt: publish sample: %v", err)
			}
		case ev.actuation != nil:
			if err := m.pub.PublishActuation(*ev.actuation, ev.at); err != nil {
				log.Printf("mqtt: publish actuation: %v", err)
			}
		}
	}
}
