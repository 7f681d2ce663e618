// Package config provides configuration helpers for go-jevois-sample commands.
package config

import (
	"os"
	"strconv"
)

// Default host configuration.
const (
	DefaultCameraDevice = "0"
	DefaultWebPort      = "8090"
	DefaultLogLevel     = "info"
	DefaultSerOut       = "None"
	DefaultJPEGQuality  = 75
)

// CameraDevice returns the capture device from CAMERA_DEVICE env var.
// Falls back to the provided default if not set.
func CameraDevice(defaultDevice string) string {
	if dev := os.Getenv("CAMERA_DEVICE"); dev != "" {
		return dev
	}
	return defaultDevice
}

// WebPort returns the preview server port from WEB_PORT env var or default.
func WebPort() string {
	if port := os.Getenv("WEB_PORT"); port != "" {
		return port
	}
	return DefaultWebPort
}

// LogLevel returns the log level from LOG_LEVEL env var or default.
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return DefaultLogLevel
}

// SerOut returns the initial serial output policy from SEROUT env var or default.
func SerOut() string {
	if mode := os.Getenv("SEROUT"); mode != "" {
		return mode
	}
	return DefaultSerOut
}

// JPEGQuality returns the preview JPEG quality from JPEG_QUALITY env var.
// Invalid values fall back to the default.
func JPEGQuality() int {
	if q := os.Getenv("JPEG_QUALITY"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v > 0 && v <= 100 {
			return v
		}
	}
	return DefaultJPEGQuality
}
