package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meet-captions/internal/config"
	"github.com/nguyentantai21042004/meet-captions/internal/logger"
)

const sampleCapture = `{"ts":"2025-04-01T10:00:00Z","speakerKey":"p1","speakerName":"Ann","text":"Hello"}
{"ts":"2025-04-01T10:00:00.2Z","speakerKey":"p1","speakerName":"Ann","text":"Hello."}
{"ts":"2025-04-01T10:00:00.5Z","speakerKey":"p1","speakerName":"Ann","text":"Hello there"}
{"ts":"2025-04-01T10:00:05Z","speakerKey":"p2","speakerName":"Bob","text":"Morning"}
`

type fakeSummarizer struct {
	err     error
	written []string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "## Summary\nGreetings.", nil
}

func (f *fakeSummarizer) SummarizeAll(ctx context.Context, srcDir, destDir string) error {
	return nil
}

func (f *fakeSummarizer) WriteSummary(name, summary, destDir string) (string, error) {
	path := filepath.Join(destDir, name+".md")
	f.written = append(f.written, path)
	return path, os.WriteFile(path, []byte(summary), 0644)
}

func setup(t *testing.T, content string) (*config.Config, string) {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Paths: config.PathsConfig{
			Inbox:    filepath.Join(root, "inbox"),
			Output:   filepath.Join(root, "output"),
			Archived: filepath.Join(root, "archived"),
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(cfg.Paths.Inbox, 0755); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(cfg.Paths.Inbox, "abc-defg-hij.jsonl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return cfg, path
}

func newTestProcessor(cfg *config.Config, sum *fakeSummarizer) *implProcessor {
	var p *implProcessor
	if sum != nil {
		p = New(cfg, sum, logger.Discard()).(*implProcessor)
	} else {
		p = New(cfg, nil, logger.Discard()).(*implProcessor)
	}
	p.now = func() time.Time { return time.UnixMilli(1743501600000) }
	return p
}

func TestProcess(t *testing.T) {
	cfg, path := setup(t, sampleCapture)
	cfg.Export.Docx = true
	cfg.Export.Summarize = true
	sum := &fakeSummarizer{}

	if err := newTestProcessor(cfg, sum).Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	txt := filepath.Join(cfg.Paths.Output, "google-meet-transcript-abc-defg-hij-1743501600000.txt")
	data, err := os.ReadFile(txt)
	if err != nil {
		t.Fatalf("transcript missing: %v", err)
	}
	want := strings.Join([]string{
		"[2025-04-01T10:00:00.000Z] [2025-04-01T10:00:00.500Z] Ann : Hello there",
		"[2025-04-01T10:00:05.000Z] [2025-04-01T10:00:05.000Z] Bob : Morning",
	}, "\n")
	if string(data) != want {
		t.Errorf("transcript =\n%s\nwant\n%s", data, want)
	}

	if _, err := os.Stat(strings.TrimSuffix(txt, ".txt") + ".docx"); err != nil {
		t.Errorf("docx missing: %v", err)
	}
	if len(sum.written) != 1 {
		t.Errorf("summaries written = %v, want 1", sum.written)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Archived, "abc-defg-hij.jsonl")); err != nil {
		t.Errorf("capture not archived: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("capture still in inbox: %v", err)
	}
}

func TestProcessSummaryFailureIsNotFatal(t *testing.T) {
	cfg, path := setup(t, sampleCapture)
	cfg.Export.Summarize = true
	sum := &fakeSummarizer{err: errors.New("boom")}

	if err := newTestProcessor(cfg, sum).Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(sum.written) != 0 {
		t.Errorf("summary written despite error")
	}
}

func TestProcessEmptyCapture(t *testing.T) {
	cfg, path := setup(t, `{"ts":"2025-04-01T10:00:00Z","speakerName":"Ann","text":"   "}`+"\n")

	if err := newTestProcessor(cfg, nil).Process(context.Background(), path); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	entries, _ := os.ReadDir(cfg.Paths.Output)
	if len(entries) != 0 {
		t.Errorf("output dir has %d files, want none", len(entries))
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Archived, "abc-defg-hij.jsonl")); err != nil {
		t.Errorf("empty capture not archived: %v", err)
	}
}

func TestProcessInvalidCapture(t *testing.T) {
	cfg, path := setup(t, "garbage\n")
	if err := newTestProcessor(cfg, nil).Process(context.Background(), path); err == nil {
		t.Error("Process() should fail on a malformed capture")
	}
}
