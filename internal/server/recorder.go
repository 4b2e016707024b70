package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nguyentantai21042004/meet-captions/internal/capture"
	"github.com/nguyentantai21042004/meet-captions/internal/logger"
)

// recorder appends accepted caption events to <dir>/<session>.jsonl so a live
// session can be replayed later. A nil recorder records nothing.
type recorder struct {
	dir    string
	logger logger.Logger
	now    func() time.Time

	mu    sync.Mutex
	files map[string]*recording
}

type recording struct {
	file   *os.File
	writer *capture.Writer
}

func newRecorder(dir string, log logger.Logger) *recorder {
	return &recorder{
		dir:    dir,
		logger: log,
		now:    time.Now,
		files:  make(map[string]*recording),
	}
}

func (r *recorder) record(ctx context.Context, id string, ev capture.Event) {
	if r == nil {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = r.now().UTC()
	}

	// close must not run between lookup and write.
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.openLocked(id)
	if err != nil {
		r.logger.Warn(ctx, "Recording disabled for session %s: %v", id, err)
		return
	}
	if err := rec.writer.Write(ev); err != nil {
		r.logger.Warn(ctx, "Failed to record caption (session %s): %v", id, err)
	}
}

func (r *recorder) openLocked(id string) (*recording, error) {
	if rec, ok := r.files[id]; ok {
		return rec, nil
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return nil, fmt.Errorf("create record dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(r.dir, id+".jsonl"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open capture file: %w", err)
	}

	rec := &recording{file: f, writer: capture.NewWriter(f)}
	r.files[id] = rec
	return rec, nil
}

// close releases the capture file of a deleted or expired session.
func (r *recorder) close(ctx context.Context, id string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.files[id]; ok {
		if err := rec.file.Close(); err != nil {
			r.logger.Warn(ctx, "Failed to close capture file (session %s): %v", id, err)
		}
		delete(r.files, id)
	}
}

func (r *recorder) closeAll() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.files {
		rec.file.Close()
		delete(r.files, id)
	}
}

func (r *recorder) openFiles() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.files)
}
