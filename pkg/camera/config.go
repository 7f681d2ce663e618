// Package camera adapts an OpenCV capture device (or video file) and a JPEG
// preview stream to the engine's frame interfaces.
package camera

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teslashibe/go-jevois-sample/pkg/engine"
)

// Config holds capture and preview encoding parameters.
type Config struct {
	// Device is a capture device index ("0"), a device path or a video file.
	Device string `json:"device"`

	Width     int     `json:"width"`     // Frame width in pixels
	Height    int     `json:"height"`    // Frame height in pixels
	Framerate float64 `json:"framerate"` // Target FPS
	Fourcc    string  `json:"fourcc"`    // Camera pixel format, e.g. YUYV
	Quality   int     `json:"quality"`   // Preview JPEG quality 1-100
}

// Capture limits accepted by Validate.
const (
	MinWidth     = 32
	MinHeight    = 24
	MaxWidth     = 4096
	MaxHeight    = 3072
	MaxFramerate = 240.0
)

// DefaultConfig returns a 640x480 YUYV camera at 15 fps on device 0.
func DefaultConfig() Config {
	return Config{
		Device:    "0",
		Width:     640,
		Height:    480,
		Framerate: 15,
		Fourcc:    "YUYV",
		Quality:   75,
	}
}

// FromMapping returns the default config with the camera side of m applied.
func FromMapping(m engine.VideoMapping) Config {
	cfg := DefaultConfig()
	cfg.Width = m.Cam.Width
	cfg.Height = m.Cam.Height
	cfg.Framerate = m.Cam.FPS
	cfg.Fourcc = m.Cam.Fourcc
	return cfg
}

// IsDevice reports whether Device names a live camera rather than a file.
func (c *Config) IsDevice() bool {
	if _, err := strconv.Atoi(c.Device); err == nil {
		return true
	}
	return strings.HasPrefix(c.Device, "/dev/video")
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Device == "" {
		errors = append(errors, "device is required")
	}
	if c.Width < MinWidth || c.Width > MaxWidth {
		errors = append(errors, fmt.Sprintf("width must be between %d and %d", MinWidth, MaxWidth))
	}
	if c.Height < MinHeight || c.Height > MaxHeight {
		errors = append(errors, fmt.Sprintf("height must be between %d and %d", MinHeight, MaxHeight))
	}
	if c.Framerate <= 0 || c.Framerate > MaxFramerate {
		errors = append(errors, "framerate must be above 0 and at most 240")
	}
	if len(c.Fourcc) != 4 {
		errors = append(errors, "fourcc must be 4 characters")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errors = append(errors, "quality must be between 1 and 100")
	}

	return errors
}
