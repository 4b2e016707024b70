package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meet-captions/internal/export"
)

const summaryPrompt = `You are a meeting summarizer. Below is a caption transcript of a meeting. Each line is "[start] [end] speaker : text".

Produce a concise markdown summary with these sections:

## Summary
Two or three sentences on what the meeting was about.

## Key Decisions
Bullet points of decisions that were made.

## Action Items
Bullet points of follow-ups, with the responsible person when identifiable.

## Discussion Highlights
Brief notes on the main topics, in the order they came up.

Omit sections with no content. Use **bold** for important names and terms.

Transcript:
---
%s
---`

// ErrNoAPIKeys is returned when no Gemini API key is configured.
var ErrNoAPIKeys = errors.New("no Gemini API keys configured")

func (s *implSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", export.ErrEmptyTranscript
	}
	if len(s.apiKeys) == 0 {
		return "", ErrNoAPIKeys
	}

	summary, err := s.callGemini(ctx, fmt.Sprintf(summaryPrompt, transcript))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

// SummarizeAll reads every .txt transcript in srcDir, summarizes it, and
// writes <name>.md (and <name>.docx when enabled) into destDir. Summarized
// transcripts are moved to destDir so they are not processed twice.
func (s *implSummarizer) SummarizeAll(ctx context.Context, srcDir, destDir string) error {
	files, err := discoverTranscripts(srcDir)
	if err != nil {
		return fmt.Errorf("discover transcripts: %w", err)
	}

	if len(files) == 0 {
		s.logger.Info(ctx, "No transcripts found in %s", srcDir)
		return nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d transcripts to summarize", len(files))

	successCount := 0
	failCount := 0

	for i, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(files), name)

		content, err := os.ReadFile(path)
		if err != nil {
			s.logger.Error(ctx, "Failed to read %s: %v", path, err)
			failCount++
			continue
		}

		summary, err := s.Summarize(ctx, string(content))
		if err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", name, err)
			failCount++
			continue
		}

		mdPath, err := s.WriteSummary(name, summary, destDir)
		if err != nil {
			s.logger.Error(ctx, "Failed to write summary for %s: %v", name, err)
			failCount++
			continue
		}

		if err := os.Rename(path, filepath.Join(destDir, filepath.Base(path))); err != nil {
			s.logger.Warn(ctx, "Failed to move transcript %s: %v", path, err)
		}

		s.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
		successCount++
	}

	s.logger.Info(ctx, "Summary complete: %d success, %d failed", successCount, failCount)
	return nil
}

// WriteSummary writes <name>.md, plus <name>.docx when enabled, into destDir.
func (s *implSummarizer) WriteSummary(name, summary, destDir string) (string, error) {
	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n", name, time.Now().Format("2006-01-02 15:04"), summary)

	mdPath := filepath.Join(destDir, name+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}

	if s.docx {
		if err := export.MarkdownToDocx(name, summary, filepath.Join(destDir, name+".docx")); err != nil {
			return "", fmt.Errorf("write docx: %w", err)
		}
	}
	return mdPath, nil
}

// callGemini rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for range len(s.apiKeys) {
		key, idx := s.key()

		text, err := s.generate(ctx, key, s.model, prompt)
		if err == nil {
			return text, nil
		}
		if !isRateLimited(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}

		s.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
		s.rotateKey()
		lastErr = err
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) key() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKeys[s.currentKey], s.currentKey
}

func (s *implSummarizer) rotateKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

func discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) == ".txt" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
