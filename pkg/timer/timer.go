// Package timer measures per-frame processing time and reports a frame rate
// every few frames.
package timer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/teslashibe/go-jevois-sample/internal/log"
)

// NoReading is returned by Stop until the first interval completes.
const NoReading = "-- fps"

// Timer brackets one frame's processing with Start and Stop. Every interval
// frames it computes the frame rate the processing alone could sustain
// (1 / average Start-to-Stop time) and the share of wall time spent between
// Start and Stop, logs both at its level, and updates the string Stop returns.
//
// A Timer is not safe for concurrent use.
type Timer struct {
	name     string
	interval int
	level    slog.Level
	now      func() time.Time

	started     bool
	start       time.Time
	windowStart time.Time
	count       int
	busy        time.Duration
	reading     string
}

// New creates a timer that reports every interval frames at the given level.
// An interval below 1 is treated as 1.
func New(name string, interval int, level slog.Level) *Timer {
	if interval < 1 {
		interval = 1
	}
	return &Timer{
		name:     name,
		interval: interval,
		level:    level,
		now:      time.Now,
		reading:  NoReading,
	}
}

// Start marks the beginning of a frame.
func (t *Timer) Start() {
	t.start = t.now()
	if t.count == 0 {
		t.windowStart = t.start
	}
	t.started = true
}

// Stop marks the end of a frame and returns the latest frame rate reading.
// Stop without a matching Start only returns the reading.
func (t *Timer) Stop() string {
	if !t.started {
		return t.reading
	}
	t.started = false

	end := t.now()
	t.busy += end.Sub(t.start)
	t.count++

	if t.count < t.interval {
		return t.reading
	}

	window := end.Sub(t.windowStart)
	fps := 0.0
	if t.busy > 0 {
		fps = float64(t.count) / t.busy.Seconds()
	}
	load := 0.0
	if window > 0 {
		load = 100 * t.busy.Seconds() / window.Seconds()
	}
	avg := t.busy / time.Duration(t.count)

	t.reading = fmt.Sprintf("%.1f fps, %.1f%% busy", fps, load)
	log.Log(t.level, "timer",
		"name", t.name,
		"frames", t.count,
		"avg", avg,
		"fps", fmt.Sprintf("%.1f", fps),
	)

	t.count = 0
	t.busy = 0
	return t.reading
}

// Reading returns the latest frame rate reading without touching the timer.
func (t *Timer) Reading() string {
	return t.reading
}

// Name returns the timer name.
func (t *Timer) Name() string {
	return t.name
}
