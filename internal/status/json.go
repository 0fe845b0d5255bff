package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string        `json:"event,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	Mode          string        `json:"mode"`
	Override      string        `json:"override"`
	Threshold     float64       `json:"threshold_c"`
	Band          float64       `json:"band_c"`
	Sample        *SampleJSON   `json:"sample,omitempty"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	StartTime     string        `json:"start_time"`
	Timestamp     string        `json:"timestamp"`
	Serial        SerialStatus  `json:"serial"`
	MQTT          MQTTStatus    `json:"mqtt"`
	Counts        CountsJSON    `json:"command_counts"`
	LastParseFail *ParseJSON    `json:"last_parse_failure,omitempty"`
	Config        ConfigJSON    `json:"config"`
}

// SampleJSON is the JSON representation of the last telemetry sample.
type SampleJSON struct {
	Timestamp   string  `json:"timestamp"`
	Temperature float64 `json:"temperature_c"`
	Humidity    float64 `json:"humidity_pct"`
	Light       int     `json:"light_raw"`
}

// SerialStatus reports serial link state.
type SerialStatus struct {
	Connected bool   `json:"connected"`
	Device    string `json:"device"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker,omitempty"`
}

// CountsJSON is the JSON representation of command counts.
type CountsJSON struct {
	FanOn      int `json:"fan_on"`
	FanOff     int `json:"fan_off"`
	LightOn    int `json:"light_on"`
	LightOff   int `json:"light_off"`
	AutoResume int `json:"auto_resume"`
}

// ParseJSON is the JSON representation of the last parse failure.
type ParseJSON struct {
	Line string `json:"line"`
	At   string `json:"at"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Device      string `json:"device"`
	Baud        int    `json:"baud"`
	Broker      string `json:"broker,omitempty"`
	DBPath      string `json:"db_path"`
	HTTPAddr    string `json:"http_addr"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	ForecastOn  bool   `json:"forecast"`
}

func buildInner(snap Snapshot) StatusInner {
	mode := "AUTO"
	if !snap.Control.AIEnabled {
		mode = "MANUAL"
	}

	inner := StatusInner{
		Mode:          mode,
		Override:      string(snap.Control.Override),
		Threshold:     snap.Control.Threshold,
		Band:          snap.Control.Band,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Serial:        SerialStatus{Connected: snap.SerialConnected, Device: snap.Config.Device},
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			FanOn:      snap.Counts.FanOn,
			FanOff:     snap.Counts.FanOff,
			LightOn:    snap.Counts.LightOn,
			LightOff:   snap.Counts.LightOff,
			AutoResume: snap.Counts.AutoResume,
		},
		Config: ConfigJSON{
			Device:      snap.Config.Device,
			Baud:        snap.Config.Baud,
			Broker:      snap.Config.Broker,
			DBPath:      snap.Config.DBPath,
			HTTPAddr:    snap.Config.HTTPAddr,
			HeartbeatMs: snap.Config.HeartbeatMs,
			ForecastOn:  snap.Config.ForecastOn,
		},
	}

	if snap.HaveSample {
		inner.Sample = &SampleJSON{
			Timestamp:   snap.LastSample.ObservedAt.UTC().Format(time.RFC3339),
			Temperature: snap.LastSample.Temperature,
			Humidity:    snap.LastSample.Humidity,
			Light:       snap.LastSample.Light,
		}
	}

	if snap.LastParseFailure != nil {
		inner.LastParseFail = &ParseJSON{
			Line: snap.LastParseFailure.Line,
			At:   snap.LastParseFailure.At.UTC().Format(time.RFC3339),
		}
	}

	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
