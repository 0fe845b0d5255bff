package control

import (
	"time"

	"github.com/sweeney/envirocontrol/internal/telemetry"
)

// Advisor supplies an optional short-horizon temperature prediction.
// Predict extrapolates the temperature expected a short time after at;
// ok is false until the advisor has enough history to commit to a trend.
type Advisor interface {
	Predict(at time.Time) (temp float64, ok bool)
}

// Controller converts samples into actuation commands.
//
// In automatic mode the decision uses a hysteresis dead band around the
// setpoint: FanOn is emitted only when the temperature rises above
// threshold+band, FanOff only when it falls below threshold-band, and
// nothing inside the band. Re-asserting the previous command inside the
// band would make the fan flicker on a noisy sensor, so the controller
// only acts on crossing an edge.
//
// With the manual override active the controller emits FanOn on every
// evaluation and never FanOff; releasing the override emits nothing by
// itself, and the next sample re-evaluates under hysteresis.
type Controller struct {
	state   *State
	advisor Advisor // nil when the forecaster is disabled
}

// NewController creates a controller over the shared control record.
// advisor may be nil.
func NewController(state *State, advisor Advisor) *Controller {
	return &Controller{state: state, advisor: advisor}
}

// Evaluate records the sample's temperature and returns the command to
// send, or nil when no actuation change is warranted. It is purely
// reactive: it is only ever called with a new sample, never on a timer.
func (c *Controller) Evaluate(sample telemetry.Sample) *Command {
	c.state.RecordTemperature(sample.Temperature)
	snap := c.state.Snapshot()

	if !snap.AIEnabled {
		if snap.Override == OverrideOn {
			return commandPtr(FanOn)
		}
		return nil
	}

	if cmd := bandDecision(sample.Temperature, snap.Threshold, snap.Band); cmd != nil {
		return cmd
	}

	// Inside the dead band. The forecaster, when present and trained, may
	// advise on a predicted crossing; a raw crossing always wins because
	// it is handled above.
	if c.advisor != nil {
		if predicted, ok := c.advisor.Predict(sample.ObservedAt); ok {
			return bandDecision(predicted, snap.Threshold, snap.Band)
		}
	}

	return nil
}

// bandDecision applies the hysteresis rule to a temperature.
func bandDecision(temp, threshold, band float64) *Command {
	switch {
	case temp > threshold+band:
		return commandPtr(FanOn)
	case temp < threshold-band:
		return commandPtr(FanOff)
	}
	return nil
}

func commandPtr(c Command) *Command {
	return &c
}
