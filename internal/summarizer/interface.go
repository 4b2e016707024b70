package summarizer

import "context"

// Summarizer turns meeting transcripts into LLM-generated markdown summaries.
type Summarizer interface {
	// Summarize returns a markdown summary of one transcript.
	Summarize(ctx context.Context, transcript string) (string, error)
	// SummarizeAll summarizes every .txt transcript in srcDir into destDir.
	SummarizeAll(ctx context.Context, srcDir, destDir string) error
	// WriteSummary stores a summary as <name>.md (and .docx when enabled) in destDir.
	WriteSummary(name, summary, destDir string) (string, error)
}

// Generator produces text for a prompt using a single API key.
type Generator func(ctx context.Context, apiKey, model, prompt string) (string, error)
