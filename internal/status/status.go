// Package status provides a thread-safe status tracker for the
// envirocontrol daemon. It is read by the HTTP status server and feeds
// the heartbeat/system event payloads; the excluded UI layer observes
// the daemon through its change callbacks.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/envirocontrol/internal/control"
	"github.com/sweeney/envirocontrol/internal/telemetry"
)

// Config contains daemon configuration for display.
type Config struct {
	Device      string
	Baud        int
	Broker      string // empty = MQTT disabled
	DBPath      string
	HTTPAddr    string
	HeartbeatMs int64
	ForecastOn  bool
}

// ParseFailure records the most recent telemetry line that failed to
// parse.
type ParseFailure struct {
	Line string
	At   time.Time
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Control          control.Snapshot
	LastSample       telemetry.Sample
	HaveSample       bool
	Counts           control.CommandCounts
	SerialConnected  bool
	MQTTConnected    bool
	LastParseFailure *ParseFailure
	StartTime        time.Time
	Now              time.Time
	Config           Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// ConnectionCallback is notified when a link ("serial" or "mqtt")
// transitions between connected and disconnected.
type ConnectionCallback func(link string, connected bool)

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu     sync.RWMutex
	snap   Snapshot
	onConn ConnectionCallback
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// SetConnectionCallback registers the connectivity transition callback.
// Call before the loops start; not safe to change while running.
func (t *Tracker) SetConnectionCallback(cb ConnectionCallback) {
	t.onConn = cb
}

// Update sets the control snapshot, last sample, and command counts.
// Called from the control loop on every sample.
func (t *Tracker) Update(ctrl control.Snapshot, sample telemetry.Sample, counts control.CommandCounts) {
	t.mu.Lock()
	t.snap.Control = ctrl
	t.snap.LastSample = sample
	t.snap.HaveSample = true
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetControl refreshes the control snapshot without a new sample.
// Called after intent dispatches.
func (t *Tracker) SetControl(ctrl control.Snapshot) {
	t.mu.Lock()
	t.snap.Control = ctrl
	t.mu.Unlock()
}

// SetSerialConnected sets serial link status, notifying the callback on
// transitions.
func (t *Tracker) SetSerialConnected(connected bool) {
	t.setConnected("serial", connected)
}

// SetMQTTConnected sets the MQTT connection status, notifying the
// callback on transitions.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.setConnected("mqtt", connected)
}

func (t *Tracker) setConnected(link string, connected bool) {
	t.mu.Lock()
	var changed bool
	switch link {
	case "serial":
		changed = t.snap.SerialConnected != connected
		t.snap.SerialConnected = connected
	case "mqtt":
		changed = t.snap.MQTTConnected != connected
		t.snap.MQTTConnected = connected
	}
	cb := t.onConn
	t.mu.Unlock()

	if changed && cb != nil {
		cb(link, connected)
	}
}

// RecordParseFailure notes a telemetry line that was dropped as
// malformed.
func (t *Tracker) RecordParseFailure(line string, at time.Time) {
	t.mu.Lock()
	t.snap.LastParseFailure = &ParseFailure{Line: line, At: at}
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
