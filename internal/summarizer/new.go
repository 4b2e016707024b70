package summarizer

import (
	"sync"

	"github.com/nguyentantai21042004/meet-captions/internal/logger"
)

type implSummarizer struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	model      string
	generate   Generator
	docx       bool
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
// When docx is set, SummarizeAll also writes a .docx next to each summary.
func New(apiKeys []string, model string, docx bool, log logger.Logger) Summarizer {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implSummarizer{
		apiKeys:  apiKeys,
		logger:   logger.Named(log, "summarizer"),
		model:    model,
		generate: geminiGenerate,
		docx:     docx,
	}
}
