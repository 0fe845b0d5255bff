// Package intent turns recognized speech text into structured commands
// and drives the wake-word/command listening state machine. The package
// consumes only recognized text; it never touches audio.
package intent

// EventKind classifies one result from the speech recognizer.
type EventKind int

const (
	// Heard carries recognized text.
	Heard EventKind = iota
	// TimedOut means the recognizer gave up waiting for speech.
	TimedOut
	// Unintelligible means audio was captured but not understood.
	Unintelligible
	// DeviceError means the microphone or recognizer service failed.
	DeviceError
)

func (k EventKind) String() string {
	switch k {
	case Heard:
		return "HEARD"
	case TimedOut:
		return "TIMED_OUT"
	case Unintelligible:
		return "UNINTELLIGIBLE"
	case DeviceError:
		return "DEVICE_ERROR"
	}
	return "UNKNOWN"
}

// RecognitionEvent is one discrete recognizer result.
type RecognitionEvent struct {
	Kind EventKind
	Text string // set only when Kind == Heard
}

// Recognizer is an event source of recognition results. The channel
// closes when the recognizer shuts down.
type Recognizer interface {
	Events() <-chan RecognitionEvent
}

// Kind classifies a parsed intent.
type Kind int

const (
	Unrecognized Kind = iota
	AdjustPreference
	SceneActivate
	DeviceSet
	ModeSet
	Query
	Shutdown
)

// Direction of a preference nudge, named for the user's complaint:
// TooWarm lowers the setpoint so cooling engages sooner, TooCool raises
// it.
type Direction int

const (
	TooWarm Direction = iota
	TooCool
)

// Device addressed by a direct hardware command.
type Device int

const (
	DeviceFan Device = iota
	DeviceLight
)

// Mode requested by a mode-set intent.
type Mode int

const (
	ModeAuto Mode = iota
	ModeManual
)

// QueryKind names an informational query.
type QueryKind int

const (
	QueryStatus QueryKind = iota
)

// Intent is one parsed command. Consumed immediately, never persisted.
type Intent struct {
	Kind      Kind
	Direction Direction // AdjustPreference
	Scene     string    // SceneActivate
	Device    Device    // DeviceSet
	On        bool      // DeviceSet
	Mode      Mode      // ModeSet
	Query     QueryKind // Query
}
