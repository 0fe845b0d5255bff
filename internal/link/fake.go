package link

import (
	"io"
	"sync"
)

// FakePort is an in-memory Port for tests: reads serve scripted input,
// writes are recorded. Safe for concurrent use.
type FakePort struct {
	mu     sync.Mutex
	input  []byte
	pos    int
	writes []byte

	// ReadErr, if set, is returned by Read.
	ReadErr error
	// WriteErr, if set, is returned by Write.
	WriteErr error
	// Closed tracks if Close was called.
	Closed bool
}

// NewFakePort creates a FakePort whose reads return input, then io.EOF.
func NewFakePort(input string) *FakePort {
	return &FakePort{input: []byte(input)}
}

// Read serves the next chunk of scripted input.
func (f *FakePort) Read(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ReadErr != nil {
		return 0, f.ReadErr
	}
	if f.pos >= len(f.input) {
		return 0, io.EOF
	}
	n := copy(p, f.input[f.pos:])
	f.pos += n
	return n, nil
}

// Write records the written bytes.
func (f *FakePort) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.WriteErr != nil {
		return 0, f.WriteErr
	}
	f.writes = append(f.writes, p...)
	return len(p), nil
}

// Close marks the port as closed.
func (f *FakePort) Close() error {
	f.mu.Lock()
	f.Closed = true
	f.mu.Unlock()
	return nil
}

// Writes returns a copy of everything written so far.
func (f *FakePort) Writes() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]byte, len(f.writes))
	copy(out, f.writes)
	return out
}
