package caption

import (
	"context"
	"strings"
	"time"
)

// placeholderSpeaker stands in for a missing display name.
const placeholderSpeaker = " "

type chunk struct {
	speakerKey string
	speaker    string
	start      time.Time
	end        time.Time
	text       string
	timer      Timer
	gen        uint64
}

func (a *implAggregator) OnCaptionUpdate(ctx context.Context, speakerKey, speakerName, rawText string) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return
	}
	if speakerName == "" {
		speakerName = placeholderSpeaker
	}
	norm := Normalize(text)

	a.mu.Lock()
	defer a.mu.Unlock()

	if prev, ok := a.lastSeen[speakerKey]; ok && prev == norm {
		return
	}
	a.lastSeen[speakerKey] = norm

	now := a.sched.Now()
	c, ok := a.open[speakerKey]
	if !ok {
		c = &chunk{
			speakerKey: speakerKey,
			speaker:    speakerName,
			start:      now,
			end:        now,
			text:       text,
		}
		a.open[speakerKey] = c
		a.armLocked(c)
		a.logger.Debug(ctx, "Chunk opened for %q", speakerKey)
		return
	}

	c.end = now
	c.text = text
	c.speaker = speakerName
	c.timer.Stop()
	a.armLocked(c)
}

// armLocked (re)arms the commit timer of c. The generation lets a callback that
// already fired, but lost the lock race to a newer update, recognise itself as stale.
func (a *implAggregator) armLocked(c *chunk) {
	c.gen++
	gen := c.gen
	c.timer = a.sched.AfterFunc(a.grace, func() {
		a.expire(c, gen)
	})
}

func (a *implAggregator) expire(c *chunk, gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.open[c.speakerKey] != c || c.gen != gen {
		return
	}
	a.commitLocked(context.Background(), c.speakerKey)
}
