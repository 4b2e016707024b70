package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nguyentantai21042004/meet-captions/internal/capture"
	"github.com/nguyentantai21042004/meet-captions/internal/export"
	"github.com/nguyentantai21042004/meet-captions/internal/session"
)

type createSessionRequest struct {
	Meeting string `json:"meeting"`
}

func (s *implServer) createSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return errorJSON(c, fiber.StatusBadRequest, "invalid JSON")
		}
	}

	info := s.sessions.Create(c.UserContext(), req.Meeting)
	return c.Status(fiber.StatusCreated).JSON(info)
}

func (s *implServer) listSessions(c *fiber.Ctx) error {
	return c.JSON(s.sessions.List())
}

func (s *implServer) getSession(c *fiber.Ctx) error {
	info, err := s.sessions.Info(c.Params("id"))
	if err != nil {
		return sessionError(c, err)
	}
	return c.JSON(info)
}

func (s *implServer) deleteSession(c *fiber.Ctx) error {
	if err := s.sessions.Delete(c.UserContext(), c.Params("id")); err != nil {
		return sessionError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// postCaptions accepts a single caption event or a JSON array of them.
func (s *implServer) postCaptions(c *fiber.Ctx) error {
	events, err := decodeEvents(c.Body())
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	agg, err := s.sessions.Get(c.Params("id"))
	if err != nil {
		return sessionError(c, err)
	}

	ctx := c.UserContext()
	id := c.Params("id")
	for _, ev := range events {
		agg.OnCaptionUpdate(ctx, ev.Key(), ev.SpeakerName, ev.Text)
		s.recorder.record(ctx, id, ev)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"accepted": len(events)})
}

func (s *implServer) getTranscript(c *fiber.Ctx) error {
	agg, err := s.sessions.Get(c.Params("id"))
	if err != nil {
		return sessionError(c, err)
	}

	ctx := c.UserContext()
	switch c.Query("format") {
	case "text":
		c.Type("txt")
		return c.SendString(agg.Transcript(ctx))
	case "records":
		return c.JSON(fiber.Map{"records": agg.Records(ctx)})
	default:
		return c.JSON(fiber.Map{"transcript": agg.Transcript(ctx)})
	}
}

func (s *implServer) downloadTranscript(c *fiber.Ctx) error {
	id := c.Params("id")
	agg, err := s.sessions.Get(id)
	if err != nil {
		return sessionError(c, err)
	}
	info, err := s.sessions.Info(id)
	if err != nil {
		return sessionError(c, err)
	}

	transcript := agg.Transcript(c.UserContext())
	if len(bytes.TrimSpace([]byte(transcript))) == 0 {
		return errorJSON(c, fiber.StatusConflict, export.ErrEmptyTranscript.Error())
	}

	c.Attachment(export.TranscriptFilename(info.Meeting, time.Now()))
	return c.SendString(transcript)
}

func (s *implServer) resetTranscript(c *fiber.Ctx) error {
	agg, err := s.sessions.Get(c.Params("id"))
	if err != nil {
		return sessionError(c, err)
	}
	agg.ResetTranscript(c.UserContext())
	return c.JSON(fiber.Map{"ok": true})
}

func decodeEvents(body []byte) ([]capture.Event, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	switch body[0] {
	case '[':
		var events []capture.Event
		if err := json.Unmarshal(body, &events); err != nil {
			return nil, fmt.Errorf("invalid JSON array: %w", err)
		}
		return events, nil
	case '{':
		var ev capture.Event
		if err := json.Unmarshal(body, &ev); err != nil {
			return nil, fmt.Errorf("invalid JSON object: %w", err)
		}
		return []capture.Event{ev}, nil
	default:
		return nil, fmt.Errorf("expected a JSON object or array")
	}
}

func sessionError(c *fiber.Ctx, err error) error {
	if errors.Is(err, session.ErrNotFound) {
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	}
	return errorJSON(c, fiber.StatusInternalServerError, err.Error())
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
