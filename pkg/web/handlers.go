package web

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-jevois-sample/pkg/engine"
	"github.com/teslashibe/go-jevois-sample/pkg/hub"
)

// Status is the body of GET /api/status
type Status struct {
	engine.Stats
	Mapping       string `json:"mapping"`
	VideoFrames   uint64 `json:"video_frames"`
	VideoBytes    string `json:"video_bytes"`
	VideoClients  int    `json:"video_clients"`
	SerialClients int    `json:"serial_clients"`
	VideoDropped  uint64 `json:"video_dropped"`
	SerialDropped uint64 `json:"serial_dropped_broadcasts"`
	Streaming     bool   `json:"streaming"`
}

// CommandRequest is the body of POST /api/command
type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResponse is the reply to POST /api/command
type CommandResponse struct {
	Command string `json:"command"`
	Reply   string `json:"reply"`
}

// handleIndex serves the preview page
func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString(indexHTML)
}

// handleStatus returns runner and streaming counters
func (s *Server) handleStatus(c *fiber.Ctx) error {
	st := Status{
		Mapping:       s.info.Mapping.String(),
		VideoFrames:   s.frames.Load(),
		VideoBytes:    humanize.Bytes(s.bytes.Load()),
		VideoClients:  s.videoHub.ClientCount(),
		SerialClients: s.serialHub.ClientCount(),
		VideoDropped:  s.videoHub.Dropped(),
		SerialDropped: s.serialHub.Dropped(),
		Streaming:     s.videoHub.IsRunning() && s.serialHub.IsRunning(),
	}
	if s.OnStats != nil {
		st.Stats = s.OnStats()
	}
	return c.JSON(st)
}

// handleInfo returns the module metadata
func (s *Server) handleInfo(c *fiber.Ctx) error {
	return c.JSON(s.info)
}

// handleCommands returns the help text, one command per entry
func (s *Server) handleCommands(c *fiber.Ctx) error {
	if s.OnCommand == nil {
		return c.JSON(fiber.Map{"commands": []string{}})
	}
	var cmds []string
	for _, line := range strings.Split(s.OnCommand("help"), "\n") {
		if strings.Contains(line, " - ") {
			cmds = append(cmds, line)
		}
	}
	return c.JSON(fiber.Map{"commands": cmds})
}

// handleCommand runs one command line
func (s *Server) handleCommand(c *fiber.Ctx) error {
	var req CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if s.OnCommand == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "command handler not configured",
		})
	}

	return c.JSON(CommandResponse{
		Command: req.Command,
		Reply:   s.OnCommand(req.Command),
	})
}

// handleVideoWS streams encoded frames to a viewer
func (s *Server) handleVideoWS(c *websocket.Conn) {
	if client := hub.NewClient(s.videoHub, c); client != nil {
		client.Run()
	}
}

// handleSerialWS streams serial lines to a monitor. Text the monitor sends is
// run as a command and the reply goes to every monitor, like a shared console.
func (s *Server) handleSerialWS(c *websocket.Conn) {
	client := hub.NewClient(s.serialHub, c)
	if client == nil {
		return
	}
	client.OnText = func(text string) {
		if s.OnCommand == nil {
			return
		}
		if reply := s.OnCommand(strings.TrimRight(text, "\r\n")); reply != "" {
			s.serialHub.BroadcastText(reply)
		}
	}
	client.Run()
}
