package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/teslashibe/go-jevois-sample/internal/config"
	"github.com/teslashibe/go-jevois-sample/internal/log"
	"github.com/teslashibe/go-jevois-sample/pkg/camera"
	"github.com/teslashibe/go-jevois-sample/pkg/engine"
	"github.com/teslashibe/go-jevois-sample/pkg/sample"
	"github.com/teslashibe/go-jevois-sample/pkg/web"
)

// runOptions holds the flags of the run command
type runOptions struct {
	Device    string
	Port      string
	SerOut    string
	Mapping   string
	Preset    string
	Quality   int
	NoWeb     bool
	NoConsole bool
}

var runOpts runOptions

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process frames from a camera or video file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModule(cmd.Context(), runOpts)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOpts.Device, "device", "d", config.CameraDevice(config.DefaultCameraDevice), "Camera index, device path or video file")
	runCmd.Flags().StringVarP(&runOpts.Port, "port", "p", config.WebPort(), "Preview server port")
	runCmd.Flags().StringVar(&runOpts.SerOut, "serout", config.SerOut(), "Where serial messages go: None or All")
	runCmd.Flags().StringVarP(&runOpts.Mapping, "mapping", "m", "", "Video mapping override, e.g. \"NONE 0 0 0.0 YUYV 320 240 60.0 JeVois SamplePythonModule\"")
	runCmd.Flags().StringVar(&runOpts.Preset, "preset", "", "Camera preset (qvga, vga, hd); overrides the mapping's camera format")
	runCmd.Flags().IntVarP(&runOpts.Quality, "quality", "q", config.JPEGQuality(), "Preview JPEG quality 1-100")
	runCmd.Flags().BoolVar(&runOpts.NoWeb, "no-web", false, "Do not start the preview server")
	runCmd.Flags().BoolVar(&runOpts.NoConsole, "no-console", false, "Do not read commands from stdin")

	rootCmd.AddCommand(runCmd)
}

// runModule wires camera, module, serial output and preview together and
// processes frames until the source ends or the context is cancelled.
func runModule(ctx context.Context, opts runOptions) error {
	mapping := sample.Mapping
	if opts.Mapping != "" {
		m, err := engine.ParseVideoMapping(opts.Mapping)
		if err != nil {
			return err
		}
		mapping = m
	}

	camCfg := camera.FromMapping(mapping)
	if opts.Preset != "" {
		p := camera.GetPreset(opts.Preset)
		if p == nil {
			return fmt.Errorf("unknown preset %q (available: %v)", opts.Preset, camera.PresetNames())
		}
		camCfg = *p
	}
	camCfg.Device = opts.Device
	camCfg.Quality = opts.Quality

	mode, err := engine.ParseSerOut(opts.SerOut)
	if err != nil {
		return err
	}
	serial := engine.NewSerialOut(mode)
	serial.Subscribe(engine.LineWriter(os.Stdout))

	mod := sample.New(serial)
	runner := engine.NewRunner(mod, mapping, serial)

	var publish func([]byte)
	if !opts.NoWeb {
		info := sample.Info
		info.Mapping = mapping

		srv := web.NewServer(opts.Port, info)
		srv.OnCommand = runner.Command
		srv.OnStats = runner.Stats
		serial.Subscribe(srv.PublishSerial)
		publish = srv.PublishFrame
		srv.StartAsync()
		defer srv.Shutdown()
	}

	capture, err := camera.Open(camCfg)
	if err != nil {
		return err
	}
	defer capture.Close()

	sink := camera.NewJPEGSink(camCfg.Quality, publish)
	var out engine.OutputFrame
	if mapping.HasUSBOutput() {
		out = sink
	}

	if !opts.NoConsole {
		go console(os.Stdin, os.Stdout, runner.Command)
	}

	var src engine.FrameSource = capture
	if n := capture.FrameCount(); n > 0 {
		src = &progressSource{
			src: capture,
			bar: progressbar.NewOptions(n,
				progressbar.OptionSetDescription(mapping.Module),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
			),
		}
	}

	log.Info("running module", "session", runner.ID(), "mapping", mapping.String(), "serout", mode.String())
	start := time.Now()
	err = runner.Run(ctx, src, out)

	stats := runner.Stats()
	fmt.Fprintf(os.Stderr, "\n%d frames in %s, %s sent, %d errors\n",
		stats.Frames, time.Since(start).Round(time.Millisecond), humanize.Bytes(sink.Bytes()), stats.Errors)
	return err
}

// console reads command lines from r until EOF and writes non-empty replies to w.
func console(r io.Reader, w io.Writer, handle func(line string) string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if reply := handle(scanner.Text()); reply != "" {
			fmt.Fprintln(w, reply)
		}
	}
}

// progressSource advances a progress bar for every frame read.
type progressSource struct {
	src engine.FrameSource
	bar *progressbar.ProgressBar
}

func (p *progressSource) Next(ctx context.Context) (engine.InputFrame, error) {
	f, err := p.src.Next(ctx)
	if err == nil {
		p.bar.Add(1)
	} else if err == io.EOF {
		p.bar.Finish()
	}
	return f, err
}
