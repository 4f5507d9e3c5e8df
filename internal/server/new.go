package server

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"github.com/nguyentantai21042004/video-notes/internal/config"
	"github.com/nguyentantai21042004/video-notes/internal/logger"
	"github.com/nguyentantai21042004/video-notes/internal/pipeline"
)

// Server is the HTTP surface over the pipeline: upload, status polling,
// file listing and downloads.
type Server struct {
	app      *fiber.App
	pipeline pipeline.Pipeline
	logger   logger.Logger
	addr     string
}

// New creates a new Server instance
func New(cfg config.ServerConfig, p pipeline.Pipeline, log logger.Logger) *Server {
	s := &Server{
		pipeline: p,
		logger:   log,
		addr:     cfg.Addr,
	}

	s.app = fiber.New(fiber.Config{
		BodyLimit:             bodyLimit(cfg.MaxUploadBytes),
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(s.requestLogger())
	s.routes()
	return s
}

// bodyLimit clamps the configured upload limit to what int can hold, so a
// multi-GiB limit does not wrap negative on 32-bit platforms.
func bodyLimit(maxBytes int64) int {
	if maxBytes > math.MaxInt {
		return math.MaxInt
	}
	return int(maxBytes)
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)

	v1 := s.app.Group("/api/v1/videos")
	v1.Post("/upload", s.upload)
	v1.Get("/status/:jobId", s.status)
	v1.Get("/list-files/:jobId/:subdir?", s.listFiles)
	v1.Get("/download/:kind/:jobId", s.download)
	v1.Get("/", s.list)
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	return s.app.Listen(s.addr)
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
