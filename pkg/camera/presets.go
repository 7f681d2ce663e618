package camera

import "sort"

// Preset names for common sensor modes.
const (
	PresetQVGA = "qvga"
	PresetVGA  = "vga"
	PresetHD   = "hd"
)

// Presets returns all available preset configurations.
func Presets() map[string]Config {
	return map[string]Config{
		PresetQVGA: QVGAConfig(),
		PresetVGA:  DefaultConfig(),
		PresetHD:   HDConfig(),
	}
}

// PresetNames returns the sorted list of available preset names.
func PresetNames() []string {
	names := make([]string, 0, 3)
	for name := range Presets() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPreset returns a preset by name, or nil if not found.
func GetPreset(name string) *Config {
	if cfg, ok := Presets()[name]; ok {
		return &cfg
	}
	return nil
}

// QVGAConfig returns 320x240 at 60 fps.
func QVGAConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 320
	cfg.Height = 240
	cfg.Framerate = 60
	return cfg
}

// HDConfig returns 1280x720 at 30 fps with MJPG, which most UVC cameras
// need at that size.
func HDConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 1280
	cfg.Height = 720
	cfg.Framerate = 30
	cfg.Fourcc = "MJPG"
	cfg.Quality = 85
	return cfg
}
