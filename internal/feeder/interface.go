package feeder

import (
	"context"

	"github.com/nguyentantai21042004/meet-captions/internal/capture"
)

// Feeder streams captured caption events into a running server session.
type Feeder interface {
	Feed(ctx context.Context, events []capture.Event) (Result, error)
}

// Options configures a Feeder.
type Options struct {
	// BaseURL of the server, e.g. http://localhost:8080.
	BaseURL string
	// Meeting is attached to the created session and used for file names.
	Meeting string
	// Speed scales the gaps between event timestamps. Zero sends as fast as possible.
	Speed float64
}

// Result summarizes a feed run.
type Result struct {
	SessionID  string
	Sent       int
	Transcript string
}
