package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/teslashibe/go-jevois-sample/internal/log"
)

// UnsupportedCommand is the reply to a command nobody recognizes.
const UnsupportedCommand = "ERR: Unsupported command"

const hostCommands = `help - print this help message
info - show the current video mapping
setpar serout <None|All> - choose where serial messages go
getpar serout - show where serial messages go`

// Stats is a snapshot of runner counters.
type Stats struct {
	SessionID   string    `json:"session_id"`
	Module      string    `json:"module"`
	Frames      uint64    `json:"frames"`
	Errors      uint64    `json:"errors"`
	SerialLines uint64    `json:"serial_lines"`
	Dropped     uint64    `json:"serial_dropped"`
	LastFrame   time.Time `json:"last_frame"`
}

// Runner drives a single module instance. It serializes all calls into the
// module, so frames and commands may arrive from different goroutines.
type Runner struct {
	id      string
	mod     Module
	mapping VideoMapping
	serial  *SerialOut
	logger  *slog.Logger

	// mu gives the module exclusive access, which it assumes.
	mu sync.Mutex

	frames    atomic.Uint64
	errs      atomic.Uint64
	lastFrame atomic.Time
}

// NewRunner creates a runner for mod. A nil serial gets a SerialOut in None mode.
func NewRunner(mod Module, mapping VideoMapping, serial *SerialOut) *Runner {
	if serial == nil {
		serial = NewSerialOut(SerOutNone)
	}
	id := uuid.NewString()
	return &Runner{
		id:      id,
		mod:     mod,
		mapping: mapping,
		serial:  serial,
		logger:  log.With("session", id, "module", mapping.Module),
	}
}

// ID returns the session id assigned at construction.
func (r *Runner) ID() string {
	return r.id
}

// Mapping returns the video mapping the module runs with.
func (r *Runner) Mapping() VideoMapping {
	return r.mapping
}

// Serial returns the serial output the module writes to.
func (r *Runner) Serial() *SerialOut {
	return r.serial
}

// ProcessFrame runs the module on one frame, choosing the entry point from the
// video mapping. Module errors are returned as-is.
func (r *Runner) ProcessFrame(in InputFrame, out OutputFrame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.mapping.HasUSBOutput() {
		if out == nil {
			return ErrNoOutput
		}
		err = r.mod.Process(in, out)
	} else {
		err = r.mod.ProcessNoUSB(in)
	}
	if err != nil {
		return err
	}

	r.frames.Inc()
	r.lastFrame.Store(time.Now())
	return nil
}

// Run pulls frames from src until it is exhausted or ctx is cancelled.
// Fatal module errors and source errors stop the loop and are returned; other
// processing errors are logged and counted.
func (r *Runner) Run(ctx context.Context, src FrameSource, out OutputFrame) error {
	r.logger.Info("runner started", "mapping", r.mapping.String())
	defer func() {
		r.logger.Info("runner stopped", "frames", r.frames.Load(), "errors", r.errs.Load())
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		in, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("next frame: %w", err)
		}

		err = r.ProcessFrame(in, out)
		if c, ok := in.(io.Closer); ok {
			c.Close()
		}
		if err == nil {
			continue
		}

		r.errs.Inc()
		if IsFatal(err) {
			r.logger.Error("module failed fatally", "error", err)
			return err
		}
		r.logger.Warn("frame processing failed", "error", err)
	}
}

// Command handles one line from the command channel and returns the reply.
// Host commands are tried first; anything else goes to the module.
func (r *Runner) Command(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}

	switch {
	case len(fields) == 1 && fields[0] == "help":
		return r.help()
	case len(fields) == 1 && fields[0] == "info":
		return r.mapping.String()
	case len(fields) == 3 && fields[0] == "setpar" && fields[1] == "serout":
		mode, err := ParseSerOut(fields[2])
		if err != nil {
			return "ERR: " + err.Error()
		}
		r.serial.SetMode(mode)
		r.logger.Info("serout changed", "serout", mode.String())
		return "OK"
	case len(fields) == 2 && fields[0] == "getpar" && fields[1] == "serout":
		return r.serial.Mode().String()
	}

	h, ok := r.mod.(CommandHandler)
	if !ok {
		return UnsupportedCommand
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return h.ParseSerial(line)
}

// help lists the host commands followed by the module's own commands.
func (r *Runner) help() string {
	var b strings.Builder
	b.WriteString("GENERAL COMMANDS:\n")
	b.WriteString(hostCommands)

	if h, ok := r.mod.(CommandHandler); ok {
		r.mu.Lock()
		cmds := h.SupportedCommands()
		r.mu.Unlock()
		if cmds != "" {
			b.WriteString("\n\nMODULE-SPECIFIC COMMANDS:\n")
			b.WriteString(cmds)
		}
	}
	return b.String()
}

// Stats returns a snapshot of the runner counters.
func (r *Runner) Stats() Stats {
	return Stats{
		SessionID:   r.id,
		Module:      r.mapping.Module,
		Frames:      r.frames.Load(),
		Errors:      r.errs.Load(),
		SerialLines: r.serial.Sent(),
		Dropped:     r.serial.Dropped(),
		LastFrame:   r.lastFrame.Load(),
	}
}
