package capture

import (
	"context"
	"sort"

	"github.com/nguyentantai21042004/meet-captions/internal/caption"
	"github.com/nguyentantai21042004/meet-captions/internal/logger"
)

// Replay feeds events through a fresh aggregator driven by a virtual clock
// that follows the event timestamps, so timer expiries land exactly where they
// would have in the live session. It returns the flushed records.
func Replay(ctx context.Context, events []Event, opts caption.Options, log logger.Logger) []caption.Record {
	if len(events) == 0 {
		return nil
	}

	ordered := make([]Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Time.Before(ordered[j].Time)
	})

	sched := caption.NewManualScheduler(ordered[0].Time)
	agg := caption.New(opts, sched, log)

	for _, ev := range ordered {
		if ctx.Err() != nil {
			break
		}
		sched.AdvanceTo(ev.Time)
		agg.OnCaptionUpdate(ctx, ev.Key(), ev.SpeakerName, ev.Text)
	}

	return agg.Records(ctx)
}
