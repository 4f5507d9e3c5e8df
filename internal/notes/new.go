package notes

import (
	"github.com/nguyentantai21042004/video-notes/internal/logger"
	"github.com/nguyentantai21042004/video-notes/internal/refine"
)

type implNotes struct {
	refiner refine.Refiner
	logger  logger.Logger
}

// New creates a new Notes instance
func New(refiner refine.Refiner, log logger.Logger) Notes {
	return &implNotes{
		refiner: refiner,
		logger:  log,
	}
}
