package pipeline

import (
	"github.com/nguyentantai21042004/video-notes/internal/config"
	"github.com/nguyentantai21042004/video-notes/internal/logger"
	"github.com/nguyentantai21042004/video-notes/internal/media"
	"github.com/nguyentantai21042004/video-notes/internal/notes"
	"github.com/nguyentantai21042004/video-notes/internal/transcribe"
)

type implPipeline struct {
	cfg         *config.Config
	media       media.Media
	transcriber transcribe.Transcriber
	notes       notes.Notes
	logger      logger.Logger

	// Bounds how many jobs process at once. Queries are not serialized
	// against it.
	semaphore chan struct{}
}

// New creates a new Pipeline instance
func New(cfg *config.Config, m media.Media, t transcribe.Transcriber, n notes.Notes, log logger.Logger) Pipeline {
	maxConcurrent := cfg.Performance.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &implPipeline{
		cfg:         cfg,
		media:       m,
		transcriber: t,
		notes:       n,
		logger:      log,
		semaphore:   make(chan struct{}, maxConcurrent),
	}
}
