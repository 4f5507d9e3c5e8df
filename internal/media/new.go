package media

import (
	"runtime"
	"time"

	"github.com/nguyentantai21042004/video-notes/internal/logger"
	"github.com/nguyentantai21042004/video-notes/pkg/executor"
)

type implMedia struct {
	ffmpeg     string
	executor   executor.Executor
	logger     logger.Logger
	batchPause time.Duration
}

// New creates a Media instance using the given ffmpeg binary.
func New(ffmpegPath string, exec executor.Executor, log logger.Logger) Media {
	return &implMedia{
		ffmpeg:     ffmpegPath,
		executor:   exec,
		logger:     log,
		batchPause: 200 * time.Millisecond,
	}
}

// DefaultMaxParallel caps concurrent frame-extraction subprocesses: never more
// than 3, never more than half the CPUs, never less than 1.
func DefaultMaxParallel() int {
	n := runtime.NumCPU() / 2
	if n > 3 {
		n = 3
	}
	if n < 1 {
		n = 1
	}
	return n
}
