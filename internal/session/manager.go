package session

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meet-captions/internal/caption"
)

func (m *implManager) Create(ctx context.Context, meeting string) Info {
	now := m.sched.Now()
	e := &entry{
		agg:        caption.New(m.opts, m.sched, m.logger),
		meeting:    meeting,
		createdAt:  now,
		lastActive: now,
	}
	id := uuid.NewString()

	m.mu.Lock()
	m.sessions[id] = e
	m.mu.Unlock()

	m.logger.Info(ctx, "Session %s created (meeting=%q)", id, meeting)
	return e.info(id)
}

// Get returns the aggregator of a session and marks it active.
func (m *implManager) Get(id string) (caption.Aggregator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastActive = m.sched.Now()
	return e.agg, nil
}

func (m *implManager) Info(id string) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return Info{}, ErrNotFound
	}
	return e.info(id), nil
}

func (m *implManager) List() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Info, 0, len(m.sessions))
	for id, e := range m.sessions {
		out = append(out, e.info(id))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Delete resets the session's transcript and forgets it.
func (m *implManager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	hooks := m.onDelete
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	e.agg.ResetTranscript(ctx)
	for _, fn := range hooks {
		fn(ctx, id)
	}
	m.logger.Info(ctx, "Session %s deleted", id)
	return nil
}

func (m *implManager) OnDelete(fn func(ctx context.Context, id string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onDelete = append(m.onDelete, fn)
}

func (m *implManager) Run(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.expireIdle(ctx)
		}
	}
}

func (m *implManager) expireIdle(ctx context.Context) int {
	cutoff := m.sched.Now().Add(-m.ttl)

	var expired []string
	m.mu.Lock()
	for id, e := range m.sessions {
		if e.lastActive.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		if err := m.Delete(ctx, id); err == nil {
			m.logger.Info(ctx, "Session %s expired after %s idle", id, m.ttl)
		}
	}
	return len(expired)
}

func (e *entry) info(id string) Info {
	return Info{
		ID:         id,
		Meeting:    e.meeting,
		CreatedAt:  e.createdAt,
		LastActive: e.lastActive,
		Stats:      e.agg.Stats(),
	}
}
