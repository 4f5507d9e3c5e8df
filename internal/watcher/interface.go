package watcher

import "context"

// Watcher monitors the inbox directory for dropped video files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler receives the path of a newly dropped file.
type EventHandler func(ctx context.Context, filePath string) error
