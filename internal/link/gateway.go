package link

import (
	"fmt"
	"io"
	"sync"

	"github.com/sweeney/envirocontrol/internal/control"
)

// Wire bytes for actuation commands, one ASCII byte per command.
const (
	byteFanOn      = 'P' // proactive cool
	byteFanOff     = 'N' // normal
	byteLightOn    = 'L'
	byteLightOff   = 'l'
	byteAutoResume = 'A'
)

var commandBytes = map[control.Command]byte{
	control.FanOn:      byteFanOn,
	control.FanOff:     byteFanOff,
	control.LightOn:    byteLightOn,
	control.LightOff:   byteLightOff,
	control.AutoResume: byteAutoResume,
}

// Gateway writes single-byte actuation commands to the serial channel.
// The physical link has no concept of concurrent writers, so all writes
// go through one mutex. The gateway has no notion of why a command was
// issued and keeps no duty-cycle state; repeated identical commands are
// written each time.
type Gateway struct {
	mu     sync.Mutex
	w      io.Writer
	counts control.CommandCounts
}

// NewGateway creates a gateway over the serial writer.
func NewGateway(w io.Writer) *Gateway {
	return &Gateway{w: w}
}

// Send writes the wire byte for cmd. A write failure is returned for the
// caller to log and drop; the next natural trigger re-evaluates and
// retries. Callers must never retry in a tight loop.
func (g *Gateway) Send(cmd control.Command) error {
	b, ok := commandBytes[cmd]
	if !ok {
		return fmt.Errorf("unknown command %q", cmd)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.w.Write([]byte{b}); err != nil {
		return fmt.Errorf("write %s: %w", cmd, err)
	}

	switch cmd {
	case control.FanOn:
		g.counts.FanOn++
	case control.FanOff:
		g.counts.FanOff++
	case control.LightOn:
		g.counts.LightOn++
	case control.LightOff:
		g.counts.LightOff++
	case control.AutoResume:
		g.counts.AutoResume++
	}
	return nil
}

// Counts returns the number of each command successfully written since
// startup.
func (g *Gateway) Counts() control.CommandCounts {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counts
}
