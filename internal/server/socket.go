package server

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/nguyentantai21042004/meet-captions/internal/capture"
)

// Message types exchanged over the caption socket.
const (
	MsgCaption         = "CAPTION"
	MsgGetTranscript   = "GET_TRANSCRIPT"
	MsgResetTranscript = "RESET_TRANSCRIPT"
	MsgTranscript      = "TRANSCRIPT"
	MsgError           = "ERROR"
)

// Message is a single socket frame. Caption fields are only set for CAPTION.
type Message struct {
	Type string `json:"type"`
	capture.Event
}

func (s *implServer) requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if _, err := s.sessions.Info(c.Params("id")); err != nil {
		return sessionError(c, err)
	}
	return c.Next()
}

func (s *implServer) captionSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		ctx := context.Background()
		id := conn.Params("id")
		s.logger.Info(ctx, "Caption socket connected (session %s)", id)

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.logger.Info(ctx, "Caption socket closed (session %s)", id)
				} else {
					s.logger.Warn(ctx, "Caption socket read error (session %s): %v", id, err)
				}
				return
			}

			reply := s.handleMessage(ctx, id, raw)
			if reply == nil {
				continue
			}
			if err := conn.WriteJSON(reply); err != nil {
				s.logger.Warn(ctx, "Caption socket write error (session %s): %v", id, err)
				return
			}
		}
	})
}

// handleMessage applies one socket frame to a session and returns the reply,
// or nil when the frame needs none.
func (s *implServer) handleMessage(ctx context.Context, id string, raw []byte) fiber.Map {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fiber.Map{"type": MsgError, "error": "invalid JSON"}
	}

	agg, err := s.sessions.Get(id)
	if err != nil {
		return fiber.Map{"type": MsgError, "error": err.Error()}
	}

	switch msg.Type {
	case MsgCaption:
		agg.OnCaptionUpdate(ctx, msg.Key(), msg.SpeakerName, msg.Text)
		s.recorder.record(ctx, id, msg.Event)
		return nil
	case MsgGetTranscript:
		return fiber.Map{"type": MsgTranscript, "transcript": agg.Transcript(ctx)}
	case MsgResetTranscript:
		agg.ResetTranscript(ctx)
		return fiber.Map{"type": MsgResetTranscript, "ok": true}
	default:
		s.logger.Debug(ctx, "Unknown socket message type %q", msg.Type)
		return fiber.Map{"type": MsgError, "error": "unknown message type"}
	}
}
