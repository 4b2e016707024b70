package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nguyentantai21042004/meet-captions/internal/logger"
	"github.com/nguyentantai21042004/meet-captions/internal/session"
)

type implServer struct {
	app      *fiber.App
	sessions session.Manager
	recorder *recorder
	logger   logger.Logger
}

// Options configures a Server.
type Options struct {
	// RecordDir enables capture recording of every accepted caption event.
	RecordDir string
}

// New creates a Server backed by the given session manager.
func New(sessions session.Manager, opts Options, log logger.Logger) Server {
	log = logger.Named(log, "server")
	s := &implServer{
		app: fiber.New(fiber.Config{
			AppName:               "meet-captions",
			DisableStartupMessage: true,
		}),
		sessions: sessions,
		logger:   log,
	}
	if opts.RecordDir != "" {
		s.recorder = newRecorder(opts.RecordDir, log)
		sessions.OnDelete(s.recorder.close)
	}
	s.routes()
	return s
}
