package processor

import (
	"time"

	"github.com/nguyentantai21042004/meet-captions/internal/config"
	"github.com/nguyentantai21042004/meet-captions/internal/logger"
	"github.com/nguyentantai21042004/meet-captions/internal/summarizer"
)

type implProcessor struct {
	cfg        *config.Config
	summarizer summarizer.Summarizer
	logger     logger.Logger
	now        func() time.Time
}

// New creates a Processor. sum may be nil, in which case no summaries are made.
func New(cfg *config.Config, sum summarizer.Summarizer, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		summarizer: sum,
		logger:     logger.Named(log, "processor"),
		now:        time.Now,
	}
}
