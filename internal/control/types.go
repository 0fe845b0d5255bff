// Package control contains the shared control state and the hysteresis
// decision logic for fan actuation. The decision core is pure: it never
// sleeps, polls, or touches hardware, and reacts only to new samples.
package control

// Command is an actuation the serial gateway understands. The gateway has
// no notion of why a command was issued.
type Command string

const (
	FanOn      Command = "FAN_ON"
	FanOff     Command = "FAN_OFF"
	LightOn    Command = "LIGHT_ON"
	LightOff   Command = "LIGHT_OFF"
	AutoResume Command = "AUTO_RESUME"
)

// Override is the manual forcing state. OverrideOn forces the fan on
// regardless of sensor readings; OverrideNone is the absence of forcing,
// not an explicit off command.
type Override string

const (
	OverrideNone Override = "NONE"
	OverrideOn   Override = "ON"
)

// Setpoint engineering limits and defaults.
const (
	MinThreshold     = 18.0
	MaxThreshold     = 32.0
	DefaultThreshold = 27.0
	DefaultBand      = 0.5

	// NudgeStep is how far one voice preference nudge moves the setpoint.
	NudgeStep = 1.0
)

// CommandCounts tracks the number of each command sent since startup.
type CommandCounts struct {
	FanOn      int
	FanOff     int
	LightOn    int
	LightOff   int
	AutoResume int
}
