package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/video-notes/internal/logger"
)

type implWatcher struct {
	inboxDir string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	wg       sync.WaitGroup
}

// Start begins monitoring the inbox for new video files and submits each one
// through the handler. Blocks until the context is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Inbox watcher started. Monitoring: %s", w.inboxDir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight submissions to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Inbox watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isVideoFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New video detected: %s", event.Name)

			// Small delay to ensure file is fully written
			time.Sleep(500 * time.Millisecond)

			w.wg.Add(1)
			go func(filePath string) {
				defer w.wg.Done()
				if err := w.handler(ctx, filePath); err != nil {
					w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
				}
			}(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isVideoFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".webm", ".mov", ".qt":
		return true
	}
	return false
}
