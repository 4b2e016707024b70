package server

import "context"

// Server exposes caption sessions over HTTP and websocket.
type Server interface {
	// Start listens on addr until ctx is cancelled, then shuts down.
	Start(ctx context.Context, addr string) error
}
