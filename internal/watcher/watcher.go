package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/meet-captions/internal/logger"
)

var captureExts = []string{".jsonl", ".ndjson"}

type implWatcher struct {
	inboxDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	settle        time.Duration
	wg            sync.WaitGroup
}

// Start handles capture files already waiting in the inbox, then every new one
// until ctx is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Capture watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inboxDir)

	existing, err := w.pendingFiles()
	if err != nil {
		w.logger.Warn(ctx, "Failed to scan inbox: %v", err)
	}
	for _, path := range existing {
		if err := w.dispatch(ctx, path); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Capture watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isCaptureFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-capture file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New capture detected: %s", event.Name)

			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				continue
			}
			if err := w.dispatch(ctx, event.Name); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatch runs the handler in a goroutine once a concurrency slot is free.
func (w *implWatcher) dispatch(ctx context.Context, path string) error {
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}()
	return nil
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) pendingFiles() ([]string, error) {
	entries, err := os.ReadDir(w.inboxDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if isCaptureFile(e.Name()) {
			files = append(files, filepath.Join(w.inboxDir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func isCaptureFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range captureExts {
		if ext == e {
			return true
		}
	}
	return false
}
