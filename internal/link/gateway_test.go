package link

import (
	"errors"
	"sync"
	"testing"

	"github.com/sweeney/envirocontrol/internal/control"
)

func TestGatewayWireBytes(t *testing.T) {
	cases := []struct {
		cmd  control.Command
		want byte
	}{
		{control.FanOn, 'P'},
		{control.FanOff, 'N'},
		{control.LightOn, 'L'},
		{control.LightOff, 'l'},
		{control.AutoResume, 'A'},
	}

	for _, tc := range cases {
		port := NewFakePort("")
		g := NewGateway(port)
		if err := g.Send(tc.cmd); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.cmd, err)
		}
		writes := port.Writes()
		if len(writes) != 1 || writes[0] != tc.want {
			t.Errorf("%s: expected [%c], got %q", tc.cmd, tc.want, writes)
		}
	}
}

func TestGatewayUnknownCommand(t *testing.T) {
	g := NewGateway(NewFakePort(""))
	if err := g.Send(control.Command("SELF_DESTRUCT")); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestGatewayWriteFailure(t *testing.T) {
	port := NewFakePort("")
	port.WriteErr = errors.New("device unplugged")
	g := NewGateway(port)

	if err := g.Send(control.FanOn); err == nil {
		t.Error("expected error on write failure")
	}
	// Failed writes are not counted.
	if g.Counts().FanOn != 0 {
		t.Errorf("expected FanOn count 0 after failure, got %d", g.Counts().FanOn)
	}
}

func TestGatewayCounts(t *testing.T) {
	g := NewGateway(NewFakePort(""))

	g.Send(control.FanOn)
	g.Send(control.FanOn)
	g.Send(control.FanOff)
	g.Send(control.LightOn)
	g.Send(control.AutoResume)

	counts := g.Counts()
	if counts.FanOn != 2 || counts.FanOff != 1 || counts.LightOn != 1 || counts.LightOff != 0 || counts.AutoResume != 1 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}

// TestGatewaySerializesWrites exercises the two concurrent writers the
// daemon has (control loop and intent resolver). Run with -race; every
// byte must arrive whole.
func TestGatewaySerializesWrites(t *testing.T) {
	port := NewFakePort("")
	g := NewGateway(port)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			g.Send(control.FanOn)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			g.Send(control.LightOff)
		}
	}()
	wg.Wait()

	writes := port.Writes()
	if len(writes) != 400 {
		t.Fatalf("expected 400 bytes, got %d", len(writes))
	}
	for i, b := range writes {
		if b != 'P' && b != 'l' {
			t.Fatalf("byte %d: unexpected %q", i, b)
		}
	}
	counts := g.Counts()
	if counts.FanOn != 200 || counts.LightOff != 200 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}
