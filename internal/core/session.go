// Package core contains the session controller that drives the timed
// request-response cycle against the ECU and owns reconnection.
package core

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"EcuLink/internal/device"
	"EcuLink/internal/model"
	"EcuLink/internal/parser"
	"EcuLink/internal/util"
)

// State is the session connection state. It is owned by the session
// controller and read by logging only.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	}
	return "unknown"
}

const (
	// commandByte is the single ASCII byte requesting one realtime frame.
	commandByte = 'A'
	// confirmByte is the command echo leading every valid response.
	confirmByte = 0x41
	// minFrameLen is the smallest response worth decoding.
	minFrameLen = 3

	// QuitToken requests shutdown when received on the command channel.
	QuitToken = "q"
)

// ErrReadTimeout reports a poll that obtained no data at all.
var ErrReadTimeout = errors.New("read timeout")

// Publisher is the downstream seam of the session controller.
type Publisher interface {
	PublishAll(baseTopic string, items []model.PublishItem) int
}

// Session polls the ECU at a fixed cadence, decodes each frame and hands
// the fields to the Publisher. Lost devices drive the reconnection state
// machine; only cancellation ends the loop.
type Session struct {
	cfg *model.Config
	pub Publisher

	interval    time.Duration
	readTimeout time.Duration

	retryDelay       time.Duration
	presenceDelay    time.Duration
	presenceAttempts int

	listPorts func() ([]string, error)
	openPort  func() (device.Transport, error)

	mu        sync.Mutex
	transport device.Transport
	state     State
}

// NewSession constructs a Session around an already opened transport.
// A nil transport starts the session disconnected; the first cycle then
// goes through device wait and reopen.
func NewSession(cfg *model.Config, tr device.Transport, pub Publisher) *Session {
	s := &Session{
		cfg:              cfg,
		pub:              pub,
		interval:         time.Duration(cfg.RefreshRateMs) * time.Millisecond,
		readTimeout:      time.Second,
		retryDelay:       2 * time.Second,
		presenceDelay:    2 * time.Second,
		presenceAttempts: 5,
		listPorts:        device.ListPorts,
		transport:        tr,
	}
	s.openPort = func() (device.Transport, error) {
		return device.NewSerialTransport(cfg.PortName, cfg.BaudRate, s.readTimeout)
	}
	if tr != nil {
		s.state = StateConnected
	}
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(next State) {
	s.mu.Lock()
	prev := s.state
	s.state = next
	s.mu.Unlock()
	if prev != next {
		util.Info("session state %s -> %s", prev, next)
	}
}

func (s *Session) getTransport() device.Transport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transport
}

func (s *Session) setTransport(tr device.Transport) {
	s.mu.Lock()
	s.transport = tr
	s.mu.Unlock()
}

func (s *Session) closeTransport() {
	s.mu.Lock()
	tr := s.transport
	s.transport = nil
	s.mu.Unlock()
	if tr != nil {
		_ = tr.Close()
	}
}

// Run drives the poll loop until the quit token arrives on cmd. Each
// iteration waits out the remainder of the poll interval, re-establishes
// the device if needed, then runs one poll. A cycle that overruns the
// interval is followed immediately by the next one, with no catch-up.
func (s *Session) Run(cmd <-chan string) {
	util.Info("session started, polling %s every %s", s.cfg.PortName, s.interval)
	last := time.Now().Add(-s.interval)
	for {
		if s.waitInterval(cmd, last) {
			break
		}
		last = time.Now()

		if s.State() != StateConnected {
			found, quit := s.waitForDevice(cmd)
			if quit {
				break
			}
			if !found {
				util.Error("device %s still missing, retrying", s.cfg.PortName)
				continue
			}
			if err := s.reconnect(); err != nil {
				if s.sleep(cmd, s.retryDelay) {
					break
				}
				continue
			}
		}

		if err := s.pollOnce(); err != nil {
			s.deviceLost(err)
		}
	}
	s.closeTransport()
	util.Info("session stopped")
}

// waitInterval sleeps until the poll interval has elapsed since last,
// waking early on the quit token. Returns true on quit.
func (s *Session) waitInterval(cmd <-chan string, last time.Time) bool {
	remaining := s.interval - time.Since(last)
	if remaining <= 0 {
		select {
		case tok := <-cmd:
			if isQuit(tok) {
				return true
			}
			util.Info("ignoring command %q", tok)
		default:
		}
		return false
	}
	return s.sleep(cmd, remaining)
}

// sleep waits for d, waking early on the quit token. Other tokens are
// acknowledged and ignored. Returns true on quit.
func (s *Session) sleep(cmd <-chan string, d time.Duration) bool {
	deadline := time.NewTimer(d)
	defer deadline.Stop()
	for {
		select {
		case tok := <-cmd:
			if isQuit(tok) {
				return true
			}
			util.Info("ignoring command %q", tok)
		case <-deadline.C:
			return false
		}
	}
}

func isQuit(tok string) bool {
	return strings.EqualFold(strings.TrimSpace(tok), QuitToken)
}

// waitForDevice confirms the configured port appears in the enumeration
// list, waiting a bounded number of attempts with a fixed delay between
// them. Returns found=false once the attempts are exhausted; the outer
// loop then retries from the top.
func (s *Session) waitForDevice(cmd <-chan string) (found, quit bool) {
	for attempt := 0; attempt < s.presenceAttempts; attempt++ {
		if s.devicePresent() {
			return true, false
		}
		if attempt == 0 {
			util.Info("waiting for device %s", s.cfg.PortName)
		}
		if s.sleep(cmd, s.presenceDelay) {
			return false, true
		}
	}
	return false, false
}

func (s *Session) devicePresent() bool {
	ports, err := s.listPorts()
	if err != nil {
		util.Error("enumerate serial ports: %v", err)
		return false
	}
	for _, p := range ports {
		if p == s.cfg.PortName {
			return true
		}
	}
	return false
}

// reconnect opens (or reopens) the transport. The "reconnected" line is
// logged once per successful transition, not once per attempt.
func (s *Session) reconnect() error {
	s.setState(StateConnecting)
	tr, err := s.openPort()
	if err != nil {
		util.Error("open %s: %v", s.cfg.PortName, err)
		s.setState(StateDisconnected)
		return err
	}
	s.setTransport(tr)
	s.setState(StateConnected)
	util.Info("reconnected to %s", s.cfg.PortName)
	return nil
}

// deviceLost transitions to Disconnected and closes the transport. The
// loss is logged once per transition, not once per failed cycle.
func (s *Session) deviceLost(err error) {
	if s.State() != StateDisconnected {
		util.Error("device %s lost: %v", s.cfg.PortName, err)
		s.setState(StateDisconnected)
	}
	s.closeTransport()
}

// pollOnce runs one request-response cycle: clear stale input, send the
// realtime-data command, accumulate the response up to the configured
// frame length, then decode and publish. A short or unconfirmed response
// is logged and skipped without failing the session; an empty one fails
// the cycle and drives reconnection.
func (s *Session) pollOnce() error {
	tr := s.getTransport()
	if tr == nil {
		return errors.New("transport not open")
	}
	if err := tr.ResetInput(); err != nil {
		return fmt.Errorf("clear input: %w", err)
	}
	if _, err := tr.Write([]byte{commandByte}); err != nil {
		return fmt.Errorf("send command: %w", err)
	}

	frame := make([]byte, s.cfg.FrameLength)
	n := 0
	for n < len(frame) {
		c, err := tr.Read(frame[n:])
		if err != nil {
			if n > 0 {
				break
			}
			return fmt.Errorf("read frame: %w", err)
		}
		if c == 0 { // read timeout
			break
		}
		n += c
	}
	if n == 0 {
		return ErrReadTimeout
	}

	data := frame[:n]
	if n < minFrameLen {
		util.Error("invalid frame: expected at least %d bytes, got %d", minFrameLen, n)
		return nil
	}
	if data[0] != confirmByte {
		util.Error("invalid confirmation byte 0x%02X, expected 0x%02X", data[0], confirmByte)
		return nil
	}

	reading := parser.DecodeFrame(data[1:])
	items := parser.PublishItems(reading)
	if failed := s.pub.PublishAll(s.cfg.MQTTBaseTopic, items); failed > 0 {
		util.Error("published %d/%d fields", len(items)-failed, len(items))
	}
	return nil
}
