package intent

import (
	"fmt"
	"log"
	"strings"

	"github.com/sweeney/envirocontrol/internal/control"
)

// ResolverState is the listening state of the resolver.
type ResolverState int

const (
	// StateWake is the idle state, listening for the trigger phrase.
	StateWake ResolverState = iota
	// StateCommand captures exactly one instruction, then returns to
	// StateWake whatever happens.
	StateCommand
)

// CommandSender writes actuation commands to the hardware channel.
type CommandSender interface {
	Send(cmd control.Command) error
}

// Announcer receives human-readable responses for the voice/UI layer to
// speak or display. May be nil.
type Announcer func(text string)

// DefaultWakeWord is the trigger phrase listened for in StateWake.
const DefaultWakeWord = "assistant"

// Resolver is the two-state voice command machine. It mutates the shared
// control record and issues direct actuation commands; direct device
// intents bypass the controller entirely and are never contingent on
// temperature.
type Resolver struct {
	wakeWord string
	state    *control.State
	sender   CommandSender
	announce Announcer
	shutdown func(reason string)

	resolverState ResolverState
}

// NewResolver creates a resolver over the shared control record.
// shutdown is invoked when a shutdown intent is dispatched; announce and
// shutdown may be nil.
func NewResolver(wakeWord string, state *control.State, sender CommandSender, announce Announcer, shutdown func(reason string)) *Resolver {
	if wakeWord == "" {
		wakeWord = DefaultWakeWord
	}
	return &Resolver{
		wakeWord: strings.ToLower(wakeWord),
		state:    state,
		sender:   sender,
		announce: announce,
		shutdown: shutdown,
	}
}

// State returns the current listening state.
func (r *Resolver) State() ResolverState {
	return r.resolverState
}

// Run consumes recognition events until stop is closed or the recognizer
// channel closes. It blocks only on the recognizer; the recognizer's own
// timeouts keep the loop live.
func (r *Resolver) Run(rec Recognizer, stop <-chan struct{}) {
	events := rec.Events()
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-events:
			if !ok {
				log.Printf("intent: recognizer closed, stopping")
				return
			}
			r.Handle(ev)
		}
	}
}

// Handle advances the state machine by one recognition event.
//
// In StateWake only a Heard event containing the wake word does anything.
// In StateCommand every event kind transitions back to StateWake — a
// timeout, an unintelligible capture, and a device error all end the
// round trip, so the resolver can never be stuck waiting for a command.
func (r *Resolver) Handle(ev RecognitionEvent) {
	switch r.resolverState {
	case StateWake:
		if ev.Kind != Heard {
			return
		}
		if !strings.Contains(strings.ToLower(ev.Text), r.wakeWord) {
			return
		}
		r.resolverState = StateCommand
		r.say("yes?")

	case StateCommand:
		r.resolverState = StateWake
		if ev.Kind != Heard {
			log.Printf("intent: command capture ended without text (%s)", ev.Kind)
			return
		}
		r.Dispatch(Classify(ev.Text))
	}
}

// Dispatch applies one intent's side effects: control-state mutations
// and/or a direct actuation command. Dispatching the same intent twice in
// a row re-asserts the same state; nothing toggles.
func (r *Resolver) Dispatch(in Intent) {
	switch in.Kind {
	case AdjustPreference:
		delta := -control.NudgeStep
		if in.Direction == TooCool {
			delta = control.NudgeStep
		}
		applied := r.state.Nudge(delta)
		r.say(fmt.Sprintf("setpoint is now %.1f degrees", applied))

	case SceneActivate:
		sc, ok := control.SceneByName(in.Scene)
		if !ok {
			log.Printf("intent: unknown scene %q", in.Scene)
			r.say("I don't know that scene")
			return
		}
		r.state.SetThreshold(sc.Threshold)
		r.send(sc.Light)
		r.say(fmt.Sprintf("%s scene active, setpoint %.1f degrees", sc.Name, sc.Threshold))

	case DeviceSet:
		switch in.Device {
		case DeviceFan:
			r.state.SetAIEnabled(false)
			if in.On {
				r.state.SetOverride(control.OverrideOn)
				r.send(control.FanOn)
				r.say("fan on")
			} else {
				r.state.SetOverride(control.OverrideNone)
				r.send(control.FanOff)
				r.say("fan off")
			}
		case DeviceLight:
			// Lights have no control-state entry; the command goes
			// straight to the gateway.
			if in.On {
				r.send(control.LightOn)
				r.say("light on")
			} else {
				r.send(control.LightOff)
				r.say("light off")
			}
		}

	case ModeSet:
		if in.Mode == ModeAuto {
			r.state.SetOverride(control.OverrideNone)
			r.state.SetAIEnabled(true)
			r.send(control.AutoResume)
			r.say("automatic mode")
		} else {
			r.state.SetAIEnabled(false)
			r.say("manual mode")
		}

	case Query:
		r.say(statusLine(r.state.Snapshot()))

	case Shutdown:
		r.say("shutting down")
		if r.shutdown != nil {
			r.shutdown("voice command")
		}

	case Unrecognized:
		log.Printf("intent: unrecognized command")
		r.say("sorry, I didn't catch that")
	}
}

func (r *Resolver) send(cmd control.Command) {
	if r.sender == nil {
		return
	}
	if err := r.sender.Send(cmd); err != nil {
		// Dropped; the next natural trigger re-evaluates. Never retried
		// in a loop.
		log.Printf("intent: send %s: %v", cmd, err)
	}
}

func (r *Resolver) say(text string) {
	if r.announce != nil {
		r.announce(text)
	}
}

func statusLine(snap control.Snapshot) string {
	mode := "automatic"
	if !snap.AIEnabled {
		mode = "manual"
		if snap.Override == control.OverrideOn {
			mode = "manual, fan forced on"
		}
	}
	if !snap.HaveSample {
		return fmt.Sprintf("no reading yet, setpoint %.1f degrees, %s mode", snap.Threshold, mode)
	}
	return fmt.Sprintf("temperature %.1f degrees, setpoint %.1f, %s mode",
		snap.LastTemperature, snap.Threshold, mode)
}
