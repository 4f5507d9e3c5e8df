package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/video-notes/internal/apperr"
	"github.com/nguyentantai21042004/video-notes/internal/job"
)

// allowedTypes is the upload MIME allow-list.
var allowedTypes = map[string]bool{
	"video/mp4":       true,
	"video/webm":      true,
	"video/quicktime": true,
}

// typeByExt maps inbox file extensions onto the same allow-list.
var typeByExt = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".qt":   "video/quicktime",
}

// Submit validates the upload and places the video artifact at
// jobs/<id>/video/<file>. Nothing is written before validation passes, so a
// rejected upload leaves no trace. Returns as soon as the file is in place.
func (p *implPipeline) Submit(ctx context.Context, upload Upload) (string, error) {
	contentType := strings.TrimSpace(strings.Split(upload.ContentType, ";")[0])
	if !allowedTypes[contentType] {
		return "", &apperr.ValidationError{Reason: fmt.Sprintf("unsupported media type %q", contentType)}
	}
	if upload.Size > p.cfg.Server.MaxUploadBytes {
		return "", &apperr.ValidationError{
			Reason: fmt.Sprintf("file size %d exceeds limit %d", upload.Size, p.cfg.Server.MaxUploadBytes),
		}
	}

	id := job.NewID(upload.Filename, time.Now())
	dir := job.NewDir(p.cfg.Paths.Jobs, id)

	if err := os.MkdirAll(dir.VideoDir(), 0755); err != nil {
		return "", fmt.Errorf("create job dir: %w", err)
	}

	videoPath := filepath.Join(dir.VideoDir(), job.SanitizeName(upload.Filename))
	out, err := os.Create(videoPath)
	if err != nil {
		return "", fmt.Errorf("create video file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, upload.Reader); err != nil {
		return "", fmt.Errorf("store video: %w", err)
	}

	p.logger.Info(ctx, "Job submitted: %s (%d bytes)", id, upload.Size)
	return id, nil
}

// SubmitFile submits a video already on disk, validating it through the same
// path as an HTTP upload.
func (p *implPipeline) SubmitFile(ctx context.Context, path string) (string, error) {
	contentType, ok := typeByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", &apperr.ValidationError{Reason: fmt.Sprintf("unsupported file extension %q", filepath.Ext(path))}
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat video: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open video: %w", err)
	}
	defer f.Close()

	return p.Submit(ctx, Upload{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		Reader:      f,
	})
}
