package session

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentantai21042004/meet-captions/internal/caption"
	"github.com/nguyentantai21042004/meet-captions/internal/logger"
)

type entry struct {
	agg        caption.Aggregator
	meeting    string
	createdAt  time.Time
	lastActive time.Time
}

type implManager struct {
	mu       sync.Mutex
	opts     caption.Options
	ttl      time.Duration
	sched    caption.Scheduler
	logger   logger.Logger
	sessions map[string]*entry
	onDelete []func(ctx context.Context, id string)
}

// New creates a Manager. Sessions idle for longer than ttl are dropped by Run;
// a zero ttl disables expiry. sched is shared by every session's aggregator and
// defaults to the wall clock.
func New(opts caption.Options, ttl time.Duration, sched caption.Scheduler, log logger.Logger) Manager {
	if sched == nil {
		sched = caption.NewWallScheduler()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &implManager{
		opts:     opts,
		ttl:      ttl,
		sched:    sched,
		logger:   logger.Named(log, "session"),
		sessions: make(map[string]*entry),
	}
}
