package caption

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/meet-captions/internal/logger"
)

// DefaultGracePeriod is how long a chunk stays open after its last accepted update.
const DefaultGracePeriod = 2000 * time.Millisecond

// Options configures an Aggregator.
type Options struct {
	// GracePeriod defaults to DefaultGracePeriod when zero or negative.
	GracePeriod time.Duration
}

type implAggregator struct {
	mu       sync.Mutex
	grace    time.Duration
	sched    Scheduler
	logger   logger.Logger
	open     map[string]*chunk
	lastSeen map[string]string
	records  []Record
}

// New creates an Aggregator. A nil scheduler means wall-clock timers.
func New(opts Options, sched Scheduler, log logger.Logger) Aggregator {
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = DefaultGracePeriod
	}
	if sched == nil {
		sched = NewWallScheduler()
	}
	if log == nil {
		log = logger.Discard()
	}

	return &implAggregator{
		grace:    opts.GracePeriod,
		sched:    sched,
		logger:   log,
		open:     make(map[string]*chunk),
		lastSeen: make(map[string]string),
	}
}
