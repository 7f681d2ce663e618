package engine

import (
	"context"
	"fmt"
	"io"
	"sync"

	"gocv.io/x/gocv"
)

// MockInputFrame implements InputFrame for testing.
type MockInputFrame struct {
	// Mat is the frame content. GetCvBGR hands out clones of it.
	Mat gocv.Mat

	// Err, when set, is returned by GetCvBGR instead of a frame.
	Err error

	mu    sync.Mutex
	calls int
}

var _ InputFrame = (*MockInputFrame)(nil)

// NewMockInputFrame creates a black frame with the given size and channel count (1 to 4).
func NewMockInputFrame(width, height, channels int) *MockInputFrame {
	var mt gocv.MatType
	switch channels {
	case 1:
		mt = gocv.MatTypeCV8UC1
	case 2:
		mt = gocv.MatTypeCV8UC2
	case 3:
		mt = gocv.MatTypeCV8UC3
	case 4:
		mt = gocv.MatTypeCV8UC4
	default:
		panic(fmt.Sprintf("mock frame: unsupported channel count %d", channels))
	}
	return &MockInputFrame{
		Mat: gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, mt),
	}
}

// GetCvBGR returns a clone of Mat, or Err.
func (f *MockInputFrame) GetCvBGR() (gocv.Mat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.Err != nil {
		return gocv.NewMat(), f.Err
	}
	return f.Mat.Clone(), nil
}

// Calls returns how many times GetCvBGR was invoked.
func (f *MockInputFrame) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Close releases Mat.
func (f *MockInputFrame) Close() error {
	return f.Mat.Close()
}

// MockOutputFrame implements OutputFrame for testing.
type MockOutputFrame struct {
	// SendFunc is called for every frame when set; its error is returned.
	SendFunc func(img gocv.Mat) error

	mu   sync.Mutex
	sent int
	last gocv.Mat
	has  bool
}

var _ OutputFrame = (*MockOutputFrame)(nil)

// NewMockOutputFrame creates an output frame that accepts everything.
func NewMockOutputFrame() *MockOutputFrame {
	return &MockOutputFrame{}
}

// SendCvBGR keeps a copy of img as the last frame.
func (o *MockOutputFrame) SendCvBGR(img gocv.Mat) error {
	if o.SendFunc != nil {
		if err := o.SendFunc(img); err != nil {
			return err
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.has {
		o.last.Close()
	}
	o.last = img.Clone()
	o.has = true
	o.sent++
	return nil
}

// Sent returns the number of frames accepted.
func (o *MockOutputFrame) Sent() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sent
}

// Last returns a clone of the last frame sent and whether there was one.
// The caller must Close the returned Mat.
func (o *MockOutputFrame) Last() (gocv.Mat, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.has {
		return gocv.NewMat(), false
	}
	return o.last.Clone(), true
}

// Close releases the retained frame.
func (o *MockOutputFrame) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.has {
		return nil
	}
	o.has = false
	return o.last.Close()
}

// MockSerial implements Serial for testing.
type MockSerial struct {
	// Err, when set, is returned by SendSerial and the line is not recorded.
	Err error

	mu    sync.Mutex
	lines []string
}

var _ Serial = (*MockSerial)(nil)

// NewMockSerial creates a serial port that records every line.
func NewMockSerial() *MockSerial {
	return &MockSerial{}
}

// SendSerial records line.
func (s *MockSerial) SendSerial(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.lines = append(s.lines, line)
	return nil
}

// Lines returns a copy of the recorded lines.
func (s *MockSerial) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// MockSource implements FrameSource over a fixed list of frames.
type MockSource struct {
	// Frames are returned in order, followed by io.EOF.
	Frames []InputFrame

	// Err, when set, is returned once Frames are exhausted instead of io.EOF.
	Err error

	mu  sync.Mutex
	pos int
}

var _ FrameSource = (*MockSource)(nil)

// Next returns the next frame.
func (s *MockSource) Next(ctx context.Context) (InputFrame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.Frames) {
		if s.Err != nil {
			return nil, s.Err
		}
		return nil, io.EOF
	}
	f := s.Frames[s.pos]
	s.pos++
	return f, nil
}
