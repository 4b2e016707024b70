package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meet-captions/internal/caption"
	"github.com/nguyentantai21042004/meet-captions/internal/capture"
	"github.com/nguyentantai21042004/meet-captions/internal/export"
)

// Process replays a capture file through the caption engine and writes the
// resulting transcript (and optional docx and summary) to the output folder.
func (p *implProcessor) Process(ctx context.Context, capturePath string) error {
	startTime := time.Now()
	meeting := strings.TrimSuffix(filepath.Base(capturePath), filepath.Ext(capturePath))

	p.logger.Info(ctx, "Processing capture: %s", capturePath)

	// Step 1: Load caption events
	events, err := capture.ReadFile(capturePath)
	if err != nil {
		return fmt.Errorf("load capture: %w", err)
	}

	// Step 2: Replay on a virtual clock
	records := capture.Replay(ctx, events, caption.Options{GracePeriod: p.cfg.GracePeriod()}, p.logger)
	transcript := caption.JoinRecords(records)
	p.logger.Info(ctx, "Replayed %d events into %d utterances", len(events), len(records))

	if strings.TrimSpace(transcript) == "" {
		p.logger.Warn(ctx, "Transcript is empty for %s, archiving capture only", capturePath)
		return p.moveToArchived(ctx, capturePath)
	}

	// Step 3: Write transcript
	txtPath, err := export.WriteText(p.cfg.Paths.Output, meeting, transcript, p.now())
	if err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	p.logger.Info(ctx, "Transcript saved: %s", txtPath)

	base := strings.TrimSuffix(txtPath, filepath.Ext(txtPath))

	// Step 4: Optional docx
	if p.cfg.Export.Docx {
		if err := export.TranscriptToDocx(meeting, records, base+".docx"); err != nil {
			p.logger.Warn(ctx, "Failed to write transcript docx: %v", err)
		}
	}

	// Step 5: Optional summary
	if p.cfg.Export.Summarize && p.summarizer != nil {
		if err := p.summarize(ctx, filepath.Base(base), transcript); err != nil {
			p.logger.Warn(ctx, "Failed to summarize %s: %v", meeting, err)
		}
	}

	// Step 6: Archive the capture
	if err := p.moveToArchived(ctx, capturePath); err != nil {
		p.logger.Warn(ctx, "Failed to archive capture: %v", err)
	}

	p.logger.Info(ctx, "Capture %s processed in %s", meeting, time.Since(startTime))
	return nil
}

func (p *implProcessor) summarize(ctx context.Context, name, transcript string) error {
	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return err
	}

	mdPath, err := p.summarizer.WriteSummary(name, summary, p.cfg.Paths.Output)
	if err != nil {
		return err
	}
	p.logger.Info(ctx, "Summary saved: %s", mdPath)
	return nil
}
