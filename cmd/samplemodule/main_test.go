package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/schollz/progressbar/v3"

	"github.com/teslashibe/go-jevois-sample/pkg/engine"
	"github.com/teslashibe/go-jevois-sample/pkg/sample"
)

func TestRunExec(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"hello", sample.HelloReply},
		{"goodbye", engine.UnsupportedCommand},
		{"info", sample.Mapping.String()},
		{"getpar serout", "None"},
	}

	for _, tt := range tests {
		if got := runExec(tt.line); got != tt.want {
			t.Errorf("runExec(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}

	if help := runExec("help"); !strings.Contains(help, sample.HelpText) {
		t.Errorf("expected help to include module commands, got %q", help)
	}
}

func TestConsole(t *testing.T) {
	in := strings.NewReader("hello\n\nnope\nhelp\n")
	var out bytes.Buffer
	var seen []string

	console(in, &out, func(line string) string {
		seen = append(seen, line)
		if line == "" {
			return ""
		}
		return "reply:" + line
	})

	if len(seen) != 4 {
		t.Fatalf("expected 4 lines handled, got %v", seen)
	}
	if out.String() != "reply:hello\nreply:nope\nreply:help\n" {
		t.Errorf("unexpected console output %q", out.String())
	}
}

func TestProgressSource(t *testing.T) {
	frames := []engine.InputFrame{&engine.MockInputFrame{}, &engine.MockInputFrame{}}
	p := &progressSource{
		src: &engine.MockSource{Frames: frames},
		bar: progressbar.NewOptions(2, progressbar.OptionSetWriter(io.Discard)),
	}

	for i := 0; i < 2; i++ {
		if _, err := p.Next(context.Background()); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	if _, err := p.Next(context.Background()); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
	if p.bar.State().CurrentNum != 2 {
		t.Errorf("expected bar at 2, got %d", p.bar.State().CurrentNum)
	}
}

func TestRunModuleRejectsBadFlags(t *testing.T) {
	base := runOptions{Device: "0", SerOut: "None", Quality: 75, NoWeb: true, NoConsole: true}

	bad := base
	bad.Mapping = "not a mapping"
	if err := runModule(context.Background(), bad); err == nil {
		t.Error("expected error for bad mapping")
	}

	bad = base
	bad.Preset = "8k"
	if err := runModule(context.Background(), bad); err == nil {
		t.Error("expected error for unknown preset")
	}

	bad = base
	bad.SerOut = "USB"
	if err := runModule(context.Background(), bad); err == nil {
		t.Error("expected error for bad serout")
	}
}
