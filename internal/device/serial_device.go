// Package device implements the SerialTransport type using go.bug.st/serial,
// providing read and write operations for physical serial communication ports.
package device

import (
	"fmt"
	"time"

	serial "go.bug.st/serial"
)

// SerialTransport implements Transport using go.bug.st/serial package.
type SerialTransport struct {
	port serial.Port
}

// NewSerialTransport opens a serial device with given path and baudrate
// (8 data bits, no parity, one stop bit) and applies the read timeout.
func NewSerialTransport(dev string, baud int, readTimeout time.Duration) (*SerialTransport, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(dev, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial %s: %w", dev, err)
	}
	if err := p.SetReadTimeout(readTimeout); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", dev, err)
	}
	return &SerialTransport{port: p}, nil
}

// Read reads up to len(p) bytes from the serial port.
// A return of (0, nil) means the read timeout elapsed with no data.
func (s *SerialTransport) Read(p []byte) (int, error) {
	return s.port.Read(p)
}

// Write writes p to the serial port.
func (s *SerialTransport) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// ResetInput discards bytes buffered by the driver but not yet read.
func (s *SerialTransport) ResetInput() error {
	return s.port.ResetInputBuffer()
}

// SetReadTimeout bounds every subsequent Read call by d.
func (s *SerialTransport) SetReadTimeout(d time.Duration) error {
	return s.port.SetReadTimeout(d)
}

// Close closes the underlying serial port.
func (s *SerialTransport) Close() error {
	return s.port.Close()
}

// ListPorts returns the names of the serial devices currently present.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}
