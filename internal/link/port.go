// Package link provides serial-channel access with hardware abstraction.
// The real implementation uses go.bug.st/serial; the fake allows testing
// without hardware.
package link

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// Port is the byte-oriented serial channel shared by telemetry input and
// actuation output.
type Port interface {
	io.ReadWriteCloser
}

// DefaultBaudRate matches the sensor node firmware.
const DefaultBaudRate = 9600

// Open opens the serial device at the given baud rate, 8N1.
func Open(device string, baud int) (Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	return port, nil
}
