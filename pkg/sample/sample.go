// Package sample is the starter vision module: it draws a circle, a greeting
// and a frame rate readout on every camera frame, sends the frame to the host,
// and reports progress on the serial port. It also answers a "hello" command.
//
// Copy it and edit Process to try something else.
package sample

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-jevois-sample/internal/log"
	"github.com/teslashibe/go-jevois-sample/pkg/engine"
	"github.com/teslashibe/go-jevois-sample/pkg/timer"
)

// Command replies and help text.
const (
	HelloCommand = "hello"
	HelloReply   = "Hello from python!"
	HelpText     = "hello - print hello using python"
)

// Overlay geometry and colors. gocv takes RGBA and converts to BGR itself.
const (
	CircleRadius    = 100
	CircleThickness = 3
	TextScale       = 0.5
)

var (
	circleColor   = color.RGBA{B: 255, A: 255}
	greetingColor = color.RGBA{R: 255, A: 255}
	fpsColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Module is the sample module. It is not safe for concurrent use; the host
// serializes calls.
type Module struct {
	serial engine.Serial
	timer  *timer.Timer

	// frame counts successfully processed frames.
	frame int
}

var (
	_ engine.Module         = (*Module)(nil)
	_ engine.CommandHandler = (*Module)(nil)
)

// New creates the module. Serial messages go to serial.
func New(serial engine.Serial) *Module {
	return &Module{
		serial: serial,
		timer:  timer.New("canny", 100, slog.LevelInfo),
	}
}

// Frame returns the number of frames processed so far.
func (m *Module) Frame() int {
	return m.frame
}

// ProcessNoUSB always fails: the module only produces a visual overlay, so
// running it without video output is a configuration error.
func (m *Module) ProcessNoUSB(in engine.InputFrame) error {
	err := engine.Fatal(Info.Name, fmt.Errorf("process no usb %w", engine.ErrNotImplemented))
	log.Error("process no usb not implemented", "module", Info.Name)
	return err
}

// Process draws the overlay on the next camera frame and sends it over USB.
func (m *Module) Process(in engine.InputFrame, out engine.OutputFrame) error {
	// May block until the camera delivers the frame.
	img, err := in.GetCvBGR()
	if err != nil {
		return err
	}
	defer img.Close()

	if img.Empty() {
		return fmt.Errorf("%w: empty frame", engine.ErrShapeMismatch)
	}
	// A grayscale frame would need a different overlay; reject it rather than guess.
	if ch := img.Channels(); ch != 3 {
		return fmt.Errorf("%w: want 3 channels (BGR), got %d", engine.ErrShapeMismatch, ch)
	}
	width, height := img.Cols(), img.Rows()

	// Measures drawing only, not input or output conversion.
	m.timer.Start()

	if err := gocv.Circle(&img, image.Pt(width/2, height/2), CircleRadius, circleColor, CircleThickness); err != nil {
		return fmt.Errorf("draw circle: %w", err)
	}

	if err := gocv.PutTextWithParams(&img, fmt.Sprintf("Hello JeVois - frame %d", m.frame), image.Pt(10, 30),
		gocv.FontHersheySimplex, TextScale, greetingColor, 1, gocv.LineAA, false); err != nil {
		return fmt.Errorf("draw greeting: %w", err)
	}

	fps := m.timer.Stop()
	if err := gocv.PutTextWithParams(&img, fps, image.Pt(3, height-6),
		gocv.FontHersheySimplex, TextScale, fpsColor, 1, gocv.LineAA, false); err != nil {
		return fmt.Errorf("draw fps: %w", err)
	}

	if err := out.SendCvBGR(img); err != nil {
		return err
	}

	// Only shown if the host has serout enabled (setpar serout All).
	if err := m.serial.SendSerial(fmt.Sprintf("DONE frame %d", m.frame)); err != nil {
		return err
	}
	m.frame++
	return nil
}

// ParseSerial handles a command forwarded by the host and returns the reply.
func (m *Module) ParseSerial(cmd string) string {
	log.Info("parseserial received command", "cmd", cmd)
	if cmd == HelloCommand {
		return m.hello()
	}
	return engine.UnsupportedCommand
}

// SupportedCommands describes the custom commands for the host help message.
// Several commands would be separated by newlines.
func (m *Module) SupportedCommands() string {
	return HelpText
}

func (m *Module) hello() string {
	return HelloReply
}
