package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-notes/internal/apperr"
	"github.com/nguyentantai21042004/video-notes/internal/job"
	"github.com/nguyentantai21042004/video-notes/internal/media"
	"github.com/nguyentantai21042004/video-notes/internal/transcribe"
)

// Run executes the stages for one job in strict order: audio extraction,
// scene detection and frame extraction, transcription, document assembly,
// archive. A stage only runs when its output artifact is absent, which makes
// Run safe to re-invoke after a partial failure. Audio, transcription and
// archive failures abort the remaining stages; artifacts already produced are
// left in place for inspection.
func (p *implPipeline) Run(ctx context.Context, id string) error {
	select {
	case p.semaphore <- struct{}{}:
		defer func() { <-p.semaphore }()
	case <-ctx.Done():
		return ctx.Err()
	}

	dir := job.NewDir(p.cfg.Paths.Jobs, id)
	videoPath, err := p.findVideo(dir)
	if err != nil {
		return err
	}

	p.logger.Info(ctx, "Pipeline started for job %s", id)

	audioPath, err := p.runAudio(ctx, dir, videoPath)
	if err != nil {
		return err
	}

	p.runFrames(ctx, dir, videoPath)

	rawTranscript, err := p.runTranscription(ctx, dir, audioPath)
	if err != nil {
		return err
	}

	if !exists(dir.MarkdownFile()) {
		if err := p.notes.BuildDocument(ctx, dir, rawTranscript); err != nil {
			return fmt.Errorf("assemble document: %w", err)
		}
	} else {
		p.logger.Debug(ctx, "Document already assembled, skipping: %s", id)
	}

	if !exists(dir.ZipFile()) {
		if err := p.notes.Archive(ctx, dir); err != nil {
			return err
		}
	}

	p.logger.Info(ctx, "Pipeline completed for job %s", id)
	return nil
}

// runAudio extracts mono 16kHz audio unless it already exists. Failure is
// stage-fatal.
func (p *implPipeline) runAudio(ctx context.Context, dir job.Dir, videoPath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(dir.AudioDir(), base+".wav")

	if exists(audioPath) {
		p.logger.Debug(ctx, "Audio already extracted, skipping: %s", audioPath)
		return audioPath, nil
	}

	if err := os.MkdirAll(dir.AudioDir(), 0755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}
	if err := p.media.ExtractAudio(ctx, videoPath, audioPath); err != nil {
		return "", err
	}
	return audioPath, nil
}

// runFrames detects scene changes and extracts stills. The whole stage is
// best-effort: the notes document degrades to text-only when it fails.
func (p *implPipeline) runFrames(ctx context.Context, dir job.Dir, videoPath string) {
	if _, err := os.Stat(dir.ImagesDir()); err == nil {
		p.logger.Debug(ctx, "Frames already extracted, skipping: %s", dir.ID)
		return
	}

	times, err := p.media.DetectScenes(ctx, videoPath)
	if err != nil {
		p.logger.Warn(ctx, "Scene detection failed, continuing without screenshots: %v", err)
		return
	}

	if err := os.MkdirAll(dir.ImagesDir(), 0755); err != nil {
		p.logger.Warn(ctx, "Create images dir failed: %v", err)
		return
	}

	count, err := p.media.ExtractFrames(ctx, videoPath, dir.ImagesDir(), times, media.DefaultMaxParallel())
	if err != nil {
		p.logger.Warn(ctx, "Frame extraction interrupted after %d frames: %v", count, err)
	}
}

// runTranscription produces transcript.txt and transcript.json unless they
// exist. Failure is stage-fatal.
func (p *implPipeline) runTranscription(ctx context.Context, dir job.Dir, audioPath string) (string, error) {
	if exists(dir.TranscriptTxt()) {
		p.logger.Debug(ctx, "Transcript already exists, skipping: %s", dir.ID)
		data, err := os.ReadFile(dir.TranscriptTxt())
		if err != nil {
			return "", fmt.Errorf("read transcript: %w", err)
		}
		return string(data), nil
	}

	segments, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", err
	}

	transcript := transcribe.Assemble(segments)
	if err := transcribe.WriteArtifacts(dir, segments, transcript); err != nil {
		return "", err
	}
	return transcript, nil
}

// findVideo locates the uploaded file under jobs/<id>/video.
func (p *implPipeline) findVideo(dir job.Dir) (string, error) {
	entries, err := os.ReadDir(dir.VideoDir())
	if err != nil {
		return "", &apperr.NotFoundError{What: "job " + dir.ID}
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			return filepath.Join(dir.VideoDir(), entry.Name()), nil
		}
	}
	return "", &apperr.NotFoundError{What: "video for job " + dir.ID}
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
