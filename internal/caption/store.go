package caption

import (
	"context"
	"sort"
)

// commitLocked finalizes the open chunk of key. Missing keys are a no-op so
// late or post-reset timer firings are harmless.
func (a *implAggregator) commitLocked(ctx context.Context, key string) {
	c, ok := a.open[key]
	if !ok {
		return
	}

	a.records = append(a.records, Record{
		SpeakerKey: c.speakerKey,
		Speaker:    c.speaker,
		Start:      c.start,
		End:        c.end,
		Text:       c.text,
	})
	c.timer.Stop()
	delete(a.open, key)

	a.logger.Debug(ctx, "Chunk committed for %q (%d records)", key, len(a.records))
}

// flushAllLocked commits every open chunk, oldest first.
func (a *implAggregator) flushAllLocked(ctx context.Context) {
	if len(a.open) == 0 {
		return
	}

	keys := make([]string, 0, len(a.open))
	for k := range a.open {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := a.open[keys[i]], a.open[keys[j]]
		if !ci.start.Equal(cj.start) {
			return ci.start.Before(cj.start)
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		a.commitLocked(ctx, k)
	}
}

func (a *implAggregator) Transcript(ctx context.Context) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.flushAllLocked(ctx)
	return JoinRecords(a.records)
}

func (a *implAggregator) Records(ctx context.Context) []Record {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.flushAllLocked(ctx)
	out := make([]Record, len(a.records))
	copy(out, a.records)
	return out
}

// ResetTranscript keeps the last-seen table, so a speaker's first caption after
// a reset is dropped if it normalizes to their last caption before it.
func (a *implAggregator) ResetTranscript(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	dropped := len(a.open)
	for k, c := range a.open {
		c.timer.Stop()
		delete(a.open, k)
	}
	a.records = nil

	a.logger.Debug(ctx, "Transcript reset (%d open chunks dropped)", dropped)
}

func (a *implAggregator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Stats{OpenChunks: len(a.open), Records: len(a.records)}
}
