// Package engine defines the host runtime collaborators a vision module talks to
// (input frames, output frames, the serial port) and a small runner that drives
// one module instance from a frame source.
package engine

import (
	"context"

	"gocv.io/x/gocv"
)

// InputFrame is a captured camera frame owned by the host for one process call.
type InputFrame interface {
	// GetCvBGR returns the frame converted to a BGR Mat.
	// The caller owns the returned Mat and must Close it.
	GetCvBGR() (gocv.Mat, error)
}

// OutputFrame is the sink for a processed frame, typically the USB video link.
type OutputFrame interface {
	// SendCvBGR converts a BGR Mat to the output format and transmits it.
	// The Mat is not retained after the call returns.
	SendCvBGR(img gocv.Mat) error
}

// Serial is a line-oriented text channel to whatever is listening on the serial port.
type Serial interface {
	SendSerial(line string) error
}

// Module is a vision module driven once per frame by the host.
type Module interface {
	// Process handles one frame when USB output is configured.
	Process(in InputFrame, out OutputFrame) error

	// ProcessNoUSB handles one frame when no USB output is configured.
	ProcessNoUSB(in InputFrame) error
}

// CommandHandler is implemented by modules that accept custom commands.
type CommandHandler interface {
	// ParseSerial interprets one command line and returns the reply.
	ParseSerial(cmd string) string

	// SupportedCommands describes the custom commands, one per line.
	SupportedCommands() string
}

// FrameSource yields input frames. It returns io.EOF once no more frames will come.
type FrameSource interface {
	Next(ctx context.Context) (InputFrame, error)
}
