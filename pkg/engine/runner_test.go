package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

var testMapping = MustParseVideoMapping("YUYV 640 480 15.0 YUYV 640 480 15.0 JeVois Fake")

// stubFrame is an InputFrame that never touches OpenCV memory.
type stubFrame struct {
	closed bool
}

func (f *stubFrame) GetCvBGR() (gocv.Mat, error) { return gocv.NewMat(), nil }
func (f *stubFrame) Close() error                { f.closed = true; return nil }

// fakeModule scripts per-frame results and records which entry point ran.
type fakeModule struct {
	mu        sync.Mutex
	results   []error
	processed int
	noUSB     int
	commands  []string
}

func (m *fakeModule) next() error {
	if len(m.results) == 0 {
		return nil
	}
	err := m.results[0]
	m.results = m.results[1:]
	return err
}

func (m *fakeModule) Process(in InputFrame, out OutputFrame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed++
	return m.next()
}

func (m *fakeModule) ProcessNoUSB(in InputFrame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noUSB++
	return Fatal("Fake", ErrNotImplemented)
}

// commandModule adds a CommandHandler to fakeModule.
type commandModule struct {
	fakeModule
}

func (m *commandModule) ParseSerial(cmd string) string {
	m.commands = append(m.commands, cmd)
	if cmd == "ping" {
		return "pong"
	}
	return UnsupportedCommand
}

func (m *commandModule) SupportedCommands() string {
	return "ping - reply pong"
}

func frames(n int) ([]InputFrame, []*stubFrame) {
	in := make([]InputFrame, n)
	stubs := make([]*stubFrame, n)
	for i := range in {
		stubs[i] = &stubFrame{}
		in[i] = stubs[i]
	}
	return in, stubs
}

func TestRunnerProcessesAllFrames(t *testing.T) {
	mod := &fakeModule{}
	r := NewRunner(mod, testMapping, nil)
	in, stubs := frames(5)

	err := r.Run(context.Background(), &MockSource{Frames: in}, NewMockOutputFrame())
	require.NoError(t, err)

	assert.Equal(t, 5, mod.processed)
	assert.Equal(t, 0, mod.noUSB)

	stats := r.Stats()
	assert.Equal(t, uint64(5), stats.Frames)
	assert.Equal(t, uint64(0), stats.Errors)
	assert.Equal(t, "Fake", stats.Module)
	assert.Equal(t, r.ID(), stats.SessionID)
	assert.WithinDuration(t, time.Now(), stats.LastFrame, time.Minute)

	for i, s := range stubs {
		assert.True(t, s.closed, "frame %d not closed", i)
	}
}

func TestRunnerContinuesAfterFrameError(t *testing.T) {
	mod := &fakeModule{results: []error{nil, ErrShapeMismatch, nil}}
	r := NewRunner(mod, testMapping, nil)
	in, _ := frames(3)

	err := r.Run(context.Background(), &MockSource{Frames: in}, NewMockOutputFrame())
	require.NoError(t, err)

	assert.Equal(t, 3, mod.processed)
	assert.Equal(t, uint64(2), r.Stats().Frames)
	assert.Equal(t, uint64(1), r.Stats().Errors)
}

func TestRunnerStopsOnFatalError(t *testing.T) {
	mod := &fakeModule{results: []error{nil, Fatal("Fake", errors.New("camera gone"))}}
	r := NewRunner(mod, testMapping, nil)
	in, _ := frames(4)

	err := r.Run(context.Background(), &MockSource{Frames: in}, NewMockOutputFrame())
	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Equal(t, 2, mod.processed)
}

func TestRunnerNoUSBMappingIsFatal(t *testing.T) {
	mod := &fakeModule{}
	mapping := MustParseVideoMapping("NONE 0 0 0.0 YUYV 640 480 15.0 JeVois Fake")
	r := NewRunner(mod, mapping, nil)
	in, _ := frames(3)

	err := r.Run(context.Background(), &MockSource{Frames: in}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Equal(t, 1, mod.noUSB)
	assert.Equal(t, 0, mod.processed)
}

func TestRunnerRequiresOutputForUSBMapping(t *testing.T) {
	r := NewRunner(&fakeModule{}, testMapping, nil)
	err := r.ProcessFrame(&stubFrame{}, nil)
	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestRunnerSourceError(t *testing.T) {
	boom := errors.New("device unplugged")
	r := NewRunner(&fakeModule{}, testMapping, nil)

	err := r.Run(context.Background(), &MockSource{Err: boom}, NewMockOutputFrame())
	assert.ErrorIs(t, err, boom)
}

func TestRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mod := &fakeModule{}
	r := NewRunner(mod, testMapping, nil)
	in, _ := frames(2)

	require.NoError(t, r.Run(ctx, &MockSource{Frames: in}, NewMockOutputFrame()))
	assert.Equal(t, 0, mod.processed)
}

func TestRunnerCommands(t *testing.T) {
	mod := &commandModule{}
	serial := NewSerialOut(SerOutNone)
	r := NewRunner(mod, testMapping, serial)

	t.Run("empty line", func(t *testing.T) {
		assert.Equal(t, "", r.Command(""))
		assert.Equal(t, "", r.Command("   "))
	})

	t.Run("help lists host and module commands", func(t *testing.T) {
		help := r.Command("help")
		assert.True(t, strings.HasPrefix(help, "GENERAL COMMANDS:\n"))
		assert.Contains(t, help, "setpar serout")
		assert.Contains(t, help, "MODULE-SPECIFIC COMMANDS:\nping - reply pong")
	})

	t.Run("info", func(t *testing.T) {
		assert.Equal(t, testMapping.String(), r.Command("info"))
	})

	t.Run("serout", func(t *testing.T) {
		assert.Equal(t, "None", r.Command("getpar serout"))
		assert.Equal(t, "OK", r.Command("setpar serout All"))
		assert.Equal(t, SerOutAll, serial.Mode())
		assert.Equal(t, "All", r.Command("getpar serout"))
		assert.True(t, strings.HasPrefix(r.Command("setpar serout USB"), "ERR: "))
		assert.Equal(t, SerOutAll, serial.Mode())
	})

	t.Run("module commands get the raw line", func(t *testing.T) {
		assert.Equal(t, "pong", r.Command("ping"))
		assert.Equal(t, UnsupportedCommand, r.Command("ping "))
		assert.Equal(t, UnsupportedCommand, r.Command("setpar foo bar"))
		assert.Equal(t, []string{"ping", "ping ", "setpar foo bar"}, mod.commands)
	})
}

func TestRunnerCommandsWithoutHandler(t *testing.T) {
	r := NewRunner(&fakeModule{}, testMapping, nil)
	assert.Equal(t, UnsupportedCommand, r.Command("hello"))
	assert.NotContains(t, r.Command("help"), "MODULE-SPECIFIC")
}

func TestRunnerStatsCountsSerial(t *testing.T) {
	serial := NewSerialOut(SerOutAll)
	serial.Subscribe(func(string) error { return nil })
	r := NewRunner(&fakeModule{}, testMapping, serial)

	require.NoError(t, serial.SendSerial("a"))
	serial.SetMode(SerOutNone)
	require.NoError(t, serial.SendSerial("b"))

	stats := r.Stats()
	assert.Equal(t, uint64(1), stats.SerialLines)
	assert.Equal(t, uint64(1), stats.Dropped)
}
