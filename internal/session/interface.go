package session

import (
	"context"
	"errors"
	"time"

	"github.com/nguyentantai21042004/meet-captions/internal/caption"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Manager owns one caption aggregator per live captioning session.
type Manager interface {
	Create(ctx context.Context, meeting string) Info
	Get(id string) (caption.Aggregator, error)
	Info(id string) (Info, error)
	List() []Info
	// Delete forgets a session. Sessions expired by Run are deleted the same way.
	Delete(ctx context.Context, id string) error
	// OnDelete registers fn to be called after every session deletion,
	// explicit or by expiry.
	OnDelete(fn func(ctx context.Context, id string))
	// Run expires idle sessions until ctx is done.
	Run(ctx context.Context, interval time.Duration)
}

// Info describes a session.
type Info struct {
	ID         string        `json:"id"`
	Meeting    string        `json:"meeting,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	LastActive time.Time     `json:"lastActive"`
	Stats      caption.Stats `json:"stats"`
}
