// Package telemetry parses raw serial lines into typed samples.
// This package has NO external dependencies (no serial, DB, or OS access).
// Time is always injectable via time.Time parameters.
package telemetry

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sample is one parsed environmental reading. Immutable once created.
type Sample struct {
	Temperature float64   // degrees Celsius
	Humidity    float64   // relative humidity, percent
	Light       int       // raw ADC value
	ObservedAt  time.Time // capture time, supplied by the caller
}

// ParseError reports a malformed telemetry line. Malformed lines are
// expected noise on a physical link; callers drop them and continue.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed telemetry line %q: %s", e.Line, e.Reason)
}

// ParseLine parses one wire line of the form "<temp>,<humidity>,<light>"
// into a Sample stamped with now. Parsing is all-or-nothing: any field
// count other than three or any non-numeric field yields a ParseError and
// no partial sample.
func ParseLine(line string, now time.Time) (Sample, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Sample{}, &ParseError{Line: line, Reason: "empty line"}
	}

	fields := strings.Split(trimmed, ",")
	if len(fields) != 3 {
		return Sample{}, &ParseError{
			Line:   line,
			Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields)),
		}
	}

	temp, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return Sample{}, &ParseError{Line: line, Reason: "temperature not numeric"}
	}

	hum, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return Sample{}, &ParseError{Line: line, Reason: "humidity not numeric"}
	}

	light, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Sample{}, &ParseError{Line: line, Reason: "light not an integer"}
	}

	return Sample{
		Temperature: temp,
		Humidity:    hum,
		Light:       light,
		ObservedAt:  now,
	}, nil
}
