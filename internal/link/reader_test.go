package link

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// flakyReader fails the first errs reads, then serves the inner reader.
type flakyReader struct {
	inner io.Reader
	errs  int
}

func (f *flakyReader) Read(p []byte) (int, error) {
	if f.errs > 0 {
		f.errs--
		return 0, errors.New("input/output error")
	}
	return f.inner.Read(p)
}

func TestReadLineStripsCR(t *testing.T) {
	lr := NewLineReader(NewFakePort("23.5,45.2,512\r\n24.0,44.0,500\n"))

	line, err := lr.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "23.5,45.2,512" {
		t.Errorf("expected CR stripped, got %q", line)
	}

	line, err = lr.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "24.0,44.0,500" {
		t.Errorf("unexpected second line %q", line)
	}

	if _, err := lr.ReadLine(); err != io.EOF {
		t.Errorf("expected io.EOF at end, got %v", err)
	}
}

func TestReadLineFinalUnterminated(t *testing.T) {
	lr := NewLineReader(NewFakePort("23.5,45.2,512"))

	line, err := lr.ReadLine()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line != "23.5,45.2,512" {
		t.Errorf("unexpected line %q", line)
	}

	if _, err := lr.ReadLine(); err != io.EOF {
		t.Errorf("expected io.EOF after final line, got %v", err)
	}
}

func TestStreamDeliversAndCloses(t *testing.T) {
	lr := NewLineReader(NewFakePort("a\nb\nc\n"))
	out := make(chan string, 8)

	lr.Stream(out, nil)

	var got []string
	for line := range out {
		got = append(got, line)
	}
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("unexpected lines: %v", got)
	}
}

// A transient read error must not end the stream: telemetry arriving
// after the fault is still delivered.
func TestStreamContinuesAfterReadError(t *testing.T) {
	r := &flakyReader{
		inner: strings.NewReader("29.1,50.0,300\n25.0,52.0,280\n"),
		errs:  1,
	}
	lr := NewLineReader(r)
	out := make(chan string, 8)

	var readErrs int
	lr.Stream(out, func(err error) {
		readErrs++
		if err == nil {
			t.Error("onErr called with nil error")
		}
	})

	var got []string
	for line := range out {
		got = append(got, line)
	}
	if len(got) != 2 || got[0] != "29.1,50.0,300" || got[1] != "25.0,52.0,280" {
		t.Errorf("expected both lines after the fault, got %v", got)
	}
	if readErrs != 1 {
		t.Errorf("expected 1 reported read error, got %d", readErrs)
	}
}

// Repeated faults keep being reported and retried until the channel
// actually reaches EOF.
func TestStreamRetriesRepeatedErrors(t *testing.T) {
	r := &flakyReader{inner: strings.NewReader("x\n"), errs: 3}
	lr := NewLineReader(r)
	out := make(chan string, 8)

	var readErrs int
	lr.Stream(out, func(error) { readErrs++ })

	var got []string
	for line := range out {
		got = append(got, line)
	}
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("expected the line after retries, got %v", got)
	}
	if readErrs != 3 {
		t.Errorf("expected 3 reported read errors, got %d", readErrs)
	}
}
