package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func (s *implServer) Start(ctx context.Context, addr string) error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.app.Listen(addr)
	}()

	s.logger.Info(ctx, "HTTP server listening on %s", addr)

	select {
	case <-ctx.Done():
		s.logger.Info(ctx, "Shutting down HTTP server...")
		s.recorder.closeAll()
		if err := s.app.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	}
}

func (s *implServer) routes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	api := s.app.Group("/api/sessions")
	api.Post("/", s.createSession)
	api.Get("/", s.listSessions)
	api.Get("/:id", s.getSession)
	api.Delete("/:id", s.deleteSession)
	api.Post("/:id/captions", s.postCaptions)
	api.Get("/:id/transcript", s.getTranscript)
	api.Get("/:id/transcript/download", s.downloadTranscript)
	api.Post("/:id/reset", s.resetTranscript)

	api.Get("/:id/ws", s.requireUpgrade, s.captionSocket())
}
