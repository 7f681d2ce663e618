package camera

import (
	"fmt"

	"go.uber.org/atomic"
	"gocv.io/x/gocv"

	"github.com/teslashibe/go-jevois-sample/pkg/engine"
)

// JPEGSink encodes output frames as JPEG and hands them to a publisher,
// standing in for the USB video link.
type JPEGSink struct {
	quality int
	publish func(jpeg []byte)

	frames atomic.Uint64
	bytes  atomic.Uint64
}

var _ engine.OutputFrame = (*JPEGSink)(nil)

// NewJPEGSink creates a sink encoding at quality (1-100). publish may be nil.
func NewJPEGSink(quality int, publish func(jpeg []byte)) *JPEGSink {
	if quality < 1 || quality > 100 {
		quality = DefaultConfig().Quality
	}
	return &JPEGSink{quality: quality, publish: publish}
}

// SendCvBGR encodes img and publishes the bytes.
func (s *JPEGSink) SendCvBGR(img gocv.Mat) error {
	if img.Empty() {
		return fmt.Errorf("camera: cannot send an empty frame")
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, img, []int{int(gocv.IMWriteJpegQuality), s.quality})
	if err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	defer buf.Close()

	// The native buffer is freed on return.
	data := append([]byte(nil), buf.GetBytes()...)

	s.frames.Inc()
	s.bytes.Add(uint64(len(data)))
	if s.publish != nil {
		s.publish(data)
	}
	return nil
}

// Frames returns the number of frames sent.
func (s *JPEGSink) Frames() uint64 {
	return s.frames.Load()
}

// Bytes returns the total encoded size of all frames sent.
func (s *JPEGSink) Bytes() uint64 {
	return s.bytes.Load()
}
