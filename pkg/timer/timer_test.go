package timer

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTimer(interval int) (*Timer, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1700000000, 0)}
	tm := New("test", interval, slog.LevelDebug)
	tm.now = clk.now
	return tm, clk
}

func TestTimerNoReadingBeforeInterval(t *testing.T) {
	tm, clk := newTestTimer(3)

	for i := 0; i < 2; i++ {
		tm.Start()
		clk.advance(10 * time.Millisecond)
		if got := tm.Stop(); got != NoReading {
			t.Fatalf("frame %d: expected %q, got %q", i, NoReading, got)
		}
	}
}

func TestTimerReportsAfterInterval(t *testing.T) {
	tm, clk := newTestTimer(4)

	var got string
	for i := 0; i < 4; i++ {
		tm.Start()
		clk.advance(25 * time.Millisecond) // busy
		got = tm.Stop()
		clk.advance(75 * time.Millisecond) // idle until next frame
	}

	// 25ms per frame gives 40 fps; 100ms busy over a 325ms window.
	want := "40.0 fps, 30.8% busy"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if tm.Reading() != want {
		t.Errorf("Reading() = %q, want %q", tm.Reading(), want)
	}
}

func TestTimerKeepsReadingUntilNextInterval(t *testing.T) {
	tm, clk := newTestTimer(2)

	for i := 0; i < 2; i++ {
		tm.Start()
		clk.advance(50 * time.Millisecond)
		tm.Stop()
	}
	first := tm.Reading()
	if first != "20.0 fps, 100.0% busy" {
		t.Fatalf("unexpected first reading %q", first)
	}

	tm.Start()
	clk.advance(time.Second)
	if got := tm.Stop(); got != first {
		t.Errorf("expected reading to stay %q mid-interval, got %q", first, got)
	}

	tm.Start()
	clk.advance(time.Second)
	if got := tm.Stop(); got != "1.0 fps, 100.0% busy" {
		t.Errorf("unexpected second reading %q", got)
	}
}

func TestTimerStopWithoutStart(t *testing.T) {
	tm, _ := newTestTimer(1)
	if got := tm.Stop(); got != NoReading {
		t.Errorf("expected %q, got %q", NoReading, got)
	}
	if tm.count != 0 {
		t.Errorf("expected no frames counted, got %d", tm.count)
	}
}

func TestTimerZeroWindow(t *testing.T) {
	tm, _ := newTestTimer(1)
	tm.Start()
	if got := tm.Stop(); got != "0.0 fps, 0.0% busy" {
		t.Errorf("unexpected reading %q", got)
	}
}

func TestTimerFPSIgnoresIdleTime(t *testing.T) {
	tm, clk := newTestTimer(100)

	var got string
	for i := 0; i < 100; i++ {
		clk.advance(50 * time.Millisecond)
		tm.Start()
		clk.advance(time.Second / 60)
		got = tm.Stop()
	}

	if !strings.HasPrefix(got, "60.0 fps,") {
		t.Errorf("expected 60.0 fps regardless of idle gaps, got %q", got)
	}
}

func TestNewClampsInterval(t *testing.T) {
	tm := New("x", 0, slog.LevelInfo)
	if tm.interval != 1 {
		t.Errorf("expected interval 1, got %d", tm.interval)
	}
	if tm.Name() != "x" {
		t.Errorf("expected name x, got %q", tm.Name())
	}
}
