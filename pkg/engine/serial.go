package engine

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

// SerOut selects where serial messages from the module go.
type SerOut int32

const (
	// SerOutNone discards serial messages. This is the default.
	SerOutNone SerOut = iota
	// SerOutAll delivers serial messages to every subscriber.
	SerOutAll
)

// String returns the parameter value as typed on the command line.
func (m SerOut) String() string {
	switch m {
	case SerOutAll:
		return "All"
	default:
		return "None"
	}
}

// ParseSerOut parses "None" or "All", case-insensitively.
func ParseSerOut(s string) (SerOut, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return SerOutNone, nil
	case "all":
		return SerOutAll, nil
	default:
		return SerOutNone, fmt.Errorf("invalid serout value %q (want None or All)", s)
	}
}

// SerialOut implements Serial and fans lines out to subscribers when enabled.
// It is safe for concurrent use.
type SerialOut struct {
	mode    *atomic.Int32
	sent    atomic.Uint64
	dropped atomic.Uint64

	mu   sync.RWMutex
	subs []func(line string) error
}

var _ Serial = (*SerialOut)(nil)

// NewSerialOut creates a serial output starting in the given mode.
func NewSerialOut(mode SerOut) *SerialOut {
	return &SerialOut{mode: atomic.NewInt32(int32(mode))}
}

// Subscribe registers fn to receive every delivered line.
func (s *SerialOut) Subscribe(fn func(line string) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// SetMode changes the delivery policy.
func (s *SerialOut) SetMode(mode SerOut) {
	s.mode.Store(int32(mode))
}

// Mode returns the delivery policy.
func (s *SerialOut) Mode() SerOut {
	return SerOut(s.mode.Load())
}

// SendSerial delivers line to all subscribers, or drops it when the mode is None.
func (s *SerialOut) SendSerial(line string) error {
	if s.Mode() == SerOutNone {
		s.dropped.Inc()
		return nil
	}

	s.mu.RLock()
	subs := s.subs
	s.mu.RUnlock()

	for _, fn := range subs {
		if err := fn(line); err != nil {
			return fmt.Errorf("serial: %w", err)
		}
	}
	s.sent.Inc()
	return nil
}

// Sent returns the number of lines delivered.
func (s *SerialOut) Sent() uint64 {
	return s.sent.Load()
}

// Dropped returns the number of lines discarded because serout was None.
func (s *SerialOut) Dropped() uint64 {
	return s.dropped.Load()
}

// LineWriter returns a subscriber that writes each line to w, newline terminated.
func LineWriter(w io.Writer) func(line string) error {
	var mu sync.Mutex
	return func(line string) error {
		mu.Lock()
		defer mu.Unlock()
		_, err := io.WriteString(w, line+"\n")
		return err
	}
}
