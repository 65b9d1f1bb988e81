// Package device defines the transport seam between the session controller and
// a physical serial port. It abstracts timed reads, writes and buffer control.
package device

import "time"

// Transport defines an abstract interface for the byte-oriented duplex
// channel to the ECU. Implementations must bound Read by a timeout set
// via SetReadTimeout; a timed-out read returns (0, nil).
type Transport interface {
	// Read reads up to len(p) bytes into p.
	Read(p []byte) (int, error)

	// Write writes p to the device.
	Write(p []byte) (int, error)

	// ResetInput discards bytes received but not yet read.
	ResetInput() error

	// SetReadTimeout bounds every subsequent Read call.
	SetReadTimeout(d time.Duration) error

	// Close closes the device and releases underlying resources.
	Close() error
}
