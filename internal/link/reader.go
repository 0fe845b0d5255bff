package link

import (
	"bufio"
	"io"
	"strings"
	"time"
)

// Retry pacing for Stream after a read error. The delay doubles per
// consecutive failure so a dead link does not spin the CPU.
const (
	streamRetryMin = 100 * time.Millisecond
	streamRetryMax = 5 * time.Second
)

// LineReader yields raw telemetry lines from the serial channel.
type LineReader struct {
	r *bufio.Reader
}

// NewLineReader wraps r for line-at-a-time reads.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// ReadLine blocks until the next newline-terminated line arrives and
// returns it with the line ending stripped. Returns io.EOF when the
// channel closes. A read error mid-line discards the partial line; the
// remainder surfaces later as a fragment and is dropped by the parser
// like any other malformed line.
func (lr *LineReader) ReadLine() (string, error) {
	line, err := lr.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) != "" {
			// Final unterminated line still counts.
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Stream reads lines into out until the channel reports EOF, then closes
// out. Any other read error is reported through onErr and reading
// resumes after a backoff: a flaky link degrades to missed samples, it
// never ends the stream. onErr may be nil. Run on its own goroutine; the
// consumer selects on out alongside its stop channel.
func (lr *LineReader) Stream(out chan<- string, onErr func(error)) {
	defer close(out)
	delay := streamRetryMin
	for {
		line, err := lr.ReadLine()
		if err == io.EOF {
			return
		}
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			time.Sleep(delay)
			if delay *= 2; delay > streamRetryMax {
				delay = streamRetryMax
			}
			continue
		}
		delay = streamRetryMin
		out <- line
	}
}
