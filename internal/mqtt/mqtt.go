// Package mqtt mirrors telemetry and actuation activity to an MQTT
// broker and receives recognized speech text, with abstraction for
// testing. The mirror is optional: the daemon runs identically with the
// broker disabled, and publish failures never gate a control decision.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/envirocontrol/internal/control"
	"github.com/sweeney/envirocontrol/internal/telemetry"
)

// TopicTelemetry is the topic for telemetry samples.
const TopicTelemetry = "home/envirocontrol/telemetry"

// TopicActuation is the topic for actuation events.
const TopicActuation = "home/envirocontrol/actuation"

// TopicSystem is the topic for system lifecycle events.
const TopicSystem = "home/envirocontrol/system"

// TopicVoiceText is the topic on which the external speech-to-text
// service publishes recognition results.
const TopicVoiceText = "home/envirocontrol/voice/text"

// Publisher publishes daemon activity to MQTT.
type Publisher interface {
	// PublishSample mirrors one telemetry sample to the broker.
	// Returns error if publishing fails (should not crash the process).
	PublishSample(s telemetry.Sample) error

	// PublishActuation mirrors one actuation command.
	PublishActuation(cmd control.Command, at time.Time) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "voice command" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// SamplePayload is the MQTT message payload for a telemetry sample.
type SamplePayload struct {
	Telemetry TelemetryInner `json:"telemetry"`
}

// TelemetryInner contains the sample details.
type TelemetryInner struct {
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperature_c"`
	Humidity    float64 `json:"humidity_pct"`
	Light       int     `json:"light_raw"`
}

// FormatSamplePayload creates the JSON payload for a telemetry sample.
func FormatSamplePayload(s telemetry.Sample) ([]byte, error) {
	payload := SamplePayload{
		Telemetry: TelemetryInner{
			Timestamp:   s.ObservedAt.UTC().Format(time.RFC3339),
			Temperature: s.Temperature,
			Humidity:    s.Humidity,
			Light:       s.Light,
		},
	}
	return json.Marshal(payload)
}

// ActuationPayload is the MQTT message payload for an actuation event.
type ActuationPayload struct {
	Actuation ActuationInner `json:"actuation"`
}

// ActuationInner contains the actuation details.
type ActuationInner struct {
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}

// FormatActuationPayload creates the JSON payload for an actuation event.
func FormatActuationPayload(cmd control.Command, at time.Time) ([]byte, error) {
	payload := ActuationPayload{
		Actuation: ActuationInner{
			Timestamp: at.UTC().Format(time.RFC3339),
			Command:   string(cmd),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
