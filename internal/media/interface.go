package media

import "context"

// Media drives the external transcoder: audio extraction, scene detection,
// and still-frame extraction.
type Media interface {
	ExtractAudio(ctx context.Context, videoPath, audioPath string) error
	DetectScenes(ctx context.Context, videoPath string) ([]int, error)
	ExtractFrames(ctx context.Context, videoPath, imagesDir string, times []int, maxParallel int) (int, error)
}
