package watcher

import "context"

// Watcher monitors an inbox directory for new caption capture files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one capture file.
type EventHandler func(ctx context.Context, filePath string) error
