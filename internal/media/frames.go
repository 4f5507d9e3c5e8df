package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// frameTimeout is the hard per-frame limit after which the transcoder
// subprocess is killed and the frame counted as failed.
const frameTimeout = 10 * time.Second

// ExtractFrames grabs one still image per timestamp, named <seconds>.jpg.
// Timestamps are processed in fixed-size batches of maxParallel to cap
// concurrent subprocesses regardless of video length; a short pause between
// batches lets subprocess resources release. Individual failures are counted,
// never fatal: the return value is the number of frames actually written.
func (m *implMedia) ExtractFrames(ctx context.Context, videoPath, imagesDir string, times []int, maxParallel int) (int, error) {
	if maxParallel < 1 {
		maxParallel = 1
	}
	m.logger.Info(ctx, "Extracting %d frames with %d parallel processes", len(times), maxParallel)

	successes := 0
	for start := 0; start < len(times); start += maxParallel {
		end := start + maxParallel
		if end > len(times) {
			end = len(times)
		}
		batch := times[start:end]

		results := make([]bool, len(batch))
		var wg sync.WaitGroup
		for i, ts := range batch {
			wg.Add(1)
			go func(i, ts int) {
				defer wg.Done()
				results[i] = m.extractFrame(ctx, videoPath, imagesDir, ts)
			}(i, ts)
		}
		wg.Wait()

		for _, ok := range results {
			if ok {
				successes++
			}
		}

		if end < len(times) && m.batchPause > 0 {
			select {
			case <-ctx.Done():
				return successes, ctx.Err()
			case <-time.After(m.batchPause):
			}
		}
	}

	m.logger.Info(ctx, "Frame extraction complete: %d of %d succeeded", successes, len(times))
	return successes, nil
}

func (m *implMedia) extractFrame(ctx context.Context, videoPath, imagesDir string, ts int) bool {
	frameCtx, cancel := context.WithTimeout(ctx, frameTimeout)
	defer cancel()

	outputPath := filepath.Join(imagesDir, fmt.Sprintf("%d.jpg", ts))
	args := []string{
		"-ss", strconv.Itoa(ts),
		"-i", videoPath,
		"-vframes", "1",
		"-f", "image2",
		"-y",
		outputPath,
	}

	if _, err := m.executor.Execute(frameCtx, m.ffmpeg, args...); err != nil {
		m.logger.Warn(ctx, "Frame at %ds failed: %v", ts, err)
		return false
	}
	return true
}
