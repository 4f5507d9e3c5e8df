package pipeline

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/video-notes/internal/job"
)

// Upload is one incoming video file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Pipeline sequences the processing stages for one video and answers
// status/poll queries. Queries are pure filesystem reads, safe to call
// concurrently with a running job.
type Pipeline interface {
	// Submit validates the upload, places the video artifact and returns the
	// new job ID. It does not wait for processing.
	Submit(ctx context.Context, upload Upload) (string, error)
	// SubmitFile submits a video already on disk (inbox drops).
	SubmitFile(ctx context.Context, path string) (string, error)
	// Run executes the stages for a submitted job in strict order, skipping
	// any stage whose output artifact already exists.
	Run(ctx context.Context, id string) error

	Status(id string) (job.Status, error)
	ListJobs() ([]string, error)
	ListFiles(id, subdir string) ([]string, error)
	// Artifact resolves a download kind to the artifact file path.
	Artifact(id, kind string) (string, error)
}
