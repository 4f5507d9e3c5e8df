package transcribe

import (
	"github.com/nguyentantai21042004/video-notes/internal/config"
	"github.com/nguyentantai21042004/video-notes/internal/logger"
	"github.com/nguyentantai21042004/video-notes/pkg/executor"
)

type implTranscriber struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Transcriber instance
func New(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
