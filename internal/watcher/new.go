package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/video-notes/internal/logger"
)

// New creates a new Watcher over the inbox directory. The handler is invoked
// once per dropped video; concurrency is bounded downstream by the pipeline.
func New(inboxDir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inboxDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inboxDir: inboxDir,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
	}, nil
}
