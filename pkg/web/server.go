// Package web serves a live preview of the processed video, the serial
// stream, and the module command channel over HTTP and websockets.
package web

import (
	"fmt"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/atomic"

	"github.com/teslashibe/go-jevois-sample/internal/log"
	"github.com/teslashibe/go-jevois-sample/pkg/engine"
	"github.com/teslashibe/go-jevois-sample/pkg/hub"
)

// Server is the preview server
type Server struct {
	app  *fiber.App
	port string
	info engine.Metadata

	// Hubs for websocket broadcast
	videoHub  *hub.Hub
	serialHub *hub.Hub

	frames atomic.Uint64
	bytes  atomic.Uint64

	// OnCommand runs one command line and returns the reply
	OnCommand func(line string) string

	// OnStats returns the runner counters for /api/status
	OnStats func() engine.Stats
}

// NewServer creates a preview server for the module described by info
func NewServer(port string, info engine.Metadata) *Server {
	s := &Server{
		port:      port,
		info:      info,
		videoHub:  hub.New("video"),
		serialHub: hub.New("serial"),
	}

	app := fiber.New(fiber.Config{
		AppName:               info.Name + " preview",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	app.Get("/", s.handleIndex)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/info", s.handleInfo)
	api.Get("/commands", s.handleCommands)
	api.Post("/command", s.handleCommand)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/video", websocket.New(s.handleVideoWS))
	app.Get("/ws/serial", websocket.New(s.handleSerialWS))

	s.app = app
	return s
}

// Start starts the hubs and listens on the configured port
func (s *Server) Start() error {
	log.Info("preview server listening", "url", fmt.Sprintf("http://localhost:%s", s.port))
	s.startHubs()
	return s.app.Listen(":" + s.port)
}

// Serve is like Start but uses an existing listener
func (s *Server) Serve(ln net.Listener) error {
	s.startHubs()
	return s.app.Listener(ln)
}

// StartAsync starts the server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Warn("preview server stopped", "error", err)
		}
	}()
}

// Shutdown disconnects all clients and stops the server
func (s *Server) Shutdown() error {
	s.videoHub.Stop()
	s.serialHub.Stop()
	return s.app.Shutdown()
}

func (s *Server) startHubs() {
	go s.videoHub.Run()
	go s.serialHub.Run()
}

// PublishFrame sends an encoded frame to all video viewers
func (s *Server) PublishFrame(jpeg []byte) {
	s.frames.Inc()
	s.bytes.Add(uint64(len(jpeg)))
	s.videoHub.BroadcastBinary(jpeg)
}

// PublishSerial sends a serial line to all serial monitors.
// Its signature matches engine.SerialOut subscribers.
func (s *Server) PublishSerial(line string) error {
	s.serialHub.BroadcastText(line)
	return nil
}
