package feeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meet-captions/internal/capture"
	"github.com/nguyentantai21042004/meet-captions/internal/server"
)

// Feed creates a session, streams every event as a CAPTION frame, then asks
// for the flushed transcript.
func (f *implFeeder) Feed(ctx context.Context, events []capture.Event) (Result, error) {
	id, err := f.createSession(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("create session: %w", err)
	}
	res := Result{SessionID: id}

	wsURL, err := socketURL(f.opts.BaseURL, id)
	if err != nil {
		return res, err
	}

	conn, _, err := f.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return res, fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	f.logger.Info(ctx, "Streaming %d events into session %s", len(events), id)

	var prev time.Time
	for i, ev := range events {
		if i > 0 {
			if err := f.pace(ctx, ev.Time.Sub(prev)); err != nil {
				return res, err
			}
		}
		prev = ev.Time

		if err := conn.WriteJSON(server.Message{Type: server.MsgCaption, Event: ev}); err != nil {
			return res, fmt.Errorf("send caption: %w", err)
		}
		res.Sent++
	}

	if err := conn.WriteJSON(server.Message{Type: server.MsgGetTranscript}); err != nil {
		return res, fmt.Errorf("request transcript: %w", err)
	}

	var reply struct {
		Type       string `json:"type"`
		Transcript string `json:"transcript"`
		Error      string `json:"error"`
	}
	if err := conn.ReadJSON(&reply); err != nil {
		return res, fmt.Errorf("read transcript: %w", err)
	}
	if reply.Type != server.MsgTranscript {
		return res, fmt.Errorf("unexpected reply %q: %s", reply.Type, reply.Error)
	}
	res.Transcript = reply.Transcript

	return res, nil
}

// pace sleeps for the scaled gap between two captured events.
func (f *implFeeder) pace(ctx context.Context, gap time.Duration) error {
	if f.opts.Speed <= 0 || gap <= 0 {
		return nil
	}

	timer := time.NewTimer(time.Duration(float64(gap) / f.opts.Speed))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (f *implFeeder) createSession(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{"meeting": f.opts.Meeting})
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(f.opts.BaseURL, "/") + "/api/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode session: %w", err)
	}
	if info.ID == "" {
		return "", fmt.Errorf("server returned no session id")
	}
	return info.ID, nil
}

// socketURL maps http(s)://host to ws(s)://host/api/sessions/<id>/ws.
func socketURL(base, id string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/sessions/" + url.PathEscape(id) + "/ws"
	return u.String(), nil
}
