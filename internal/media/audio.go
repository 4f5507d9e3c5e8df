package media

import (
	"context"

	"github.com/nguyentantai21042004/video-notes/internal/apperr"
)

// ExtractAudio downsamples the video's audio track to 16kHz mono PCM WAV,
// the format the speech-to-text engine expects. A transcoder failure here is
// fatal to the job.
func (m *implMedia) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	m.logger.Info(ctx, "Extracting audio: %s", videoPath)

	args := []string{
		"-i", videoPath,
		"-vn",          // No video
		"-ar", "16000", // 16kHz sample rate
		"-ac", "1", // Mono
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := m.executor.Execute(ctx, m.ffmpeg, args...); err != nil {
		return &apperr.ExternalToolError{Tool: "ffmpeg extract audio", Err: err}
	}

	m.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return nil
}
