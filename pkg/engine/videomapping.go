package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// NoOutput is the output fourcc of a mapping without USB video.
const NoOutput = "NONE"

// Format describes one side of a video mapping.
type Format struct {
	Fourcc string  `json:"fourcc"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	FPS    float64 `json:"fps"`
}

// String renders the format as "FOURCC W H FPS".
func (f Format) String() string {
	return fmt.Sprintf("%s %d %d %.1f", f.Fourcc, f.Width, f.Height, f.FPS)
}

// VideoMapping pairs the USB output format with the camera format a module runs at.
type VideoMapping struct {
	Out    Format `json:"out"`
	Cam    Format `json:"cam"`
	Vendor string `json:"vendor"`
	Module string `json:"module"`
}

// ParseVideoMapping parses the canonical ten-field form, e.g.
// "YUYV 640 480 15.0 YUYV 640 480 15.0 JeVois SamplePythonModule".
func ParseVideoMapping(s string) (VideoMapping, error) {
	fields := strings.Fields(s)
	if len(fields) != 10 {
		return VideoMapping{}, fmt.Errorf("%w: expected 10 fields, got %d", ErrBadMapping, len(fields))
	}

	out, err := parseFormat(fields[0:4])
	if err != nil {
		return VideoMapping{}, fmt.Errorf("output format: %w", err)
	}
	cam, err := parseFormat(fields[4:8])
	if err != nil {
		return VideoMapping{}, fmt.Errorf("camera format: %w", err)
	}
	if cam.Fourcc == NoOutput {
		return VideoMapping{}, fmt.Errorf("%w: camera format cannot be %s", ErrBadMapping, NoOutput)
	}

	return VideoMapping{Out: out, Cam: cam, Vendor: fields[8], Module: fields[9]}, nil
}

// MustParseVideoMapping is like ParseVideoMapping but panics on error.
// It is meant for package-level mapping constants.
func MustParseVideoMapping(s string) VideoMapping {
	m, err := ParseVideoMapping(s)
	if err != nil {
		panic(err)
	}
	return m
}

func parseFormat(f []string) (Format, error) {
	fourcc := strings.ToUpper(f[0])
	if len(fourcc) != 4 {
		return Format{}, fmt.Errorf("%w: fourcc %q must be 4 characters", ErrBadMapping, f[0])
	}
	w, err := strconv.Atoi(f[1])
	if err != nil || w < 0 {
		return Format{}, fmt.Errorf("%w: width %q", ErrBadMapping, f[1])
	}
	h, err := strconv.Atoi(f[2])
	if err != nil || h < 0 {
		return Format{}, fmt.Errorf("%w: height %q", ErrBadMapping, f[2])
	}
	fps, err := strconv.ParseFloat(f[3], 64)
	if err != nil || fps < 0 {
		return Format{}, fmt.Errorf("%w: fps %q", ErrBadMapping, f[3])
	}
	if fourcc != NoOutput && (w == 0 || h == 0) {
		return Format{}, fmt.Errorf("%w: %s needs a non-zero resolution", ErrBadMapping, fourcc)
	}
	return Format{Fourcc: fourcc, Width: w, Height: h, FPS: fps}, nil
}

// HasUSBOutput reports whether frames are sent to the host over USB.
func (m VideoMapping) HasUSBOutput() bool {
	return m.Out.Fourcc != NoOutput
}

// String renders the mapping in its canonical form.
func (m VideoMapping) String() string {
	return fmt.Sprintf("%s %s %s %s", m.Out, m.Cam, m.Vendor, m.Module)
}
