package intent

import (
	"bufio"
	"io"
	"strings"
)

// ReaderRecognizer adapts a line-oriented reader (typically stdin) into a
// Recognizer. Each line is one Heard event; a blank line is emitted as
// TimedOut so the command state can be exercised without a microphone.
// Useful for development and demos when no speech service is wired up.
type ReaderRecognizer struct {
	ch chan RecognitionEvent
}

// NewReaderRecognizer starts reading lines from r until EOF or read
// error, then closes the event channel.
func NewReaderRecognizer(r io.Reader) *ReaderRecognizer {
	rr := &ReaderRecognizer{ch: make(chan RecognitionEvent)}
	go rr.loop(r)
	return rr
}

// Events returns the event channel.
func (rr *ReaderRecognizer) Events() <-chan RecognitionEvent {
	return rr.ch
}

func (rr *ReaderRecognizer) loop(r io.Reader) {
	defer close(rr.ch)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			rr.ch <- RecognitionEvent{Kind: TimedOut}
			continue
		}
		rr.ch <- RecognitionEvent{Kind: Heard, Text: text}
	}
}
