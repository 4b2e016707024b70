package feeder

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/meet-captions/internal/logger"
)

type implFeeder struct {
	opts   Options
	client *http.Client
	dialer *websocket.Dialer
	logger logger.Logger
}

// New creates a Feeder.
func New(opts Options, log logger.Logger) Feeder {
	return &implFeeder{
		opts:   opts,
		client: &http.Client{Timeout: 10 * time.Second},
		dialer: websocket.DefaultDialer,
		logger: logger.Named(log, "feeder"),
	}
}
