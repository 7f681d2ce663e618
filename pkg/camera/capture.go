package camera

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-jevois-sample/internal/log"
	"github.com/teslashibe/go-jevois-sample/pkg/engine"
)

// Capture reads frames from an OpenCV video capture.
type Capture struct {
	vc  *gocv.VideoCapture
	cfg Config
}

var _ engine.FrameSource = (*Capture)(nil)

// Open validates cfg and opens the capture. Live devices get the configured
// size, frame rate and pixel format; files are read as they are.
func Open(cfg Config) (*Capture, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid camera config: %s", strings.Join(errs, "; "))
	}

	vc, err := gocv.OpenVideoCapture(cfg.Device)
	if err != nil {
		if vc != nil {
			vc.Close()
		}
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}

	if cfg.IsDevice() {
		vc.Set(gocv.VideoCaptureFOURCC, vc.ToCodec(cfg.Fourcc))
		vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
		vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
		vc.Set(gocv.VideoCaptureFPS, cfg.Framerate)
	}

	log.Info("camera opened",
		"device", cfg.Device,
		"width", int(vc.Get(gocv.VideoCaptureFrameWidth)),
		"height", int(vc.Get(gocv.VideoCaptureFrameHeight)),
		"fps", vc.Get(gocv.VideoCaptureFPS),
	)

	return &Capture{vc: vc, cfg: cfg}, nil
}

// Next blocks until the next frame is captured. It returns io.EOF when the
// device stops delivering or the file ends.
func (c *Capture) Next(ctx context.Context) (engine.InputFrame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat := gocv.NewMat()
	if ok := c.vc.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil, io.EOF
	}
	return &Frame{mat: mat}, nil
}

// FrameCount returns the number of frames in a video file, or 0 when unknown.
func (c *Capture) FrameCount() int {
	if c.cfg.IsDevice() {
		return 0
	}
	n := int(c.vc.Get(gocv.VideoCaptureFrameCount))
	if n < 0 {
		return 0
	}
	return n
}

// Close releases the capture.
func (c *Capture) Close() error {
	return c.vc.Close()
}

// Frame is one captured BGR frame.
type Frame struct {
	mat gocv.Mat
}

var _ engine.InputFrame = (*Frame)(nil)

// NewFrame wraps mat. The frame takes ownership of it.
func NewFrame(mat gocv.Mat) *Frame {
	return &Frame{mat: mat}
}

// GetCvBGR returns a copy of the captured frame.
func (f *Frame) GetCvBGR() (gocv.Mat, error) {
	if f.mat.Empty() {
		return gocv.NewMat(), fmt.Errorf("camera: empty frame")
	}
	return f.mat.Clone(), nil
}

// Close releases the captured frame.
func (f *Frame) Close() error {
	return f.mat.Close()
}
