package feeder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/meet-captions/internal/capture"
	"github.com/nguyentantai21042004/meet-captions/internal/logger"
	"github.com/nguyentantai21042004/meet-captions/internal/server"
)

// fakeServer speaks the session API well enough to record what the feeder sends.
type fakeServer struct {
	mu       sync.Mutex
	meeting  string
	captions []string
}

func (f *fakeServer) handler(t *testing.T) http.Handler {
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()

	mux.HandleFunc("/api/sessions", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Meeting string `json:"meeting"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.meeting = req.Meeting
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"s-1"}`))
	})

	mux.HandleFunc("/api/sessions/s-1/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		for {
			var msg server.Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			switch msg.Type {
			case server.MsgCaption:
				f.mu.Lock()
				f.captions = append(f.captions, msg.Key()+":"+msg.Text)
				f.mu.Unlock()
			case server.MsgGetTranscript:
				f.mu.Lock()
				transcript := strings.Join(f.captions, "\n")
				f.mu.Unlock()
				_ = conn.WriteJSON(map[string]string{"type": server.MsgTranscript, "transcript": transcript})
			}
		}
	})
	return mux
}

func TestFeed(t *testing.T) {
	fake := &fakeServer{}
	ts := httptest.NewServer(fake.handler(t))
	defer ts.Close()

	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []capture.Event{
		{Time: t0, SpeakerKey: "p1", SpeakerName: "Ann", Text: "Hello"},
		{Time: t0.Add(10 * time.Millisecond), SpeakerName: "Bob", Text: "Hi"},
	}

	f := New(Options{BaseURL: ts.URL, Meeting: "abc-defg-hij", Speed: 10}, logger.Discard())
	res, err := f.Feed(context.Background(), events)
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	want := Result{SessionID: "s-1", Sent: 2, Transcript: "p1:Hello\nBob:Hi"}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Feed() (-want +got):\n%s", diff)
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if fake.meeting != "abc-defg-hij" {
		t.Errorf("meeting = %q", fake.meeting)
	}
}

func TestFeedSessionRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	f := New(Options{BaseURL: ts.URL}, logger.Discard())
	if _, err := f.Feed(context.Background(), nil); err == nil {
		t.Error("Feed() should fail when the session cannot be created")
	}
}

func TestSocketURL(t *testing.T) {
	tests := []struct {
		base    string
		want    string
		wantErr bool
	}{
		{"http://localhost:8080", "ws://localhost:8080/api/sessions/x/ws", false},
		{"https://captions.example.com/base/", "wss://captions.example.com/base/api/sessions/x/ws", false},
		{"ftp://nope", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			got, err := socketURL(tt.base, "x")
			if (err != nil) != tt.wantErr {
				t.Fatalf("socketURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("socketURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
