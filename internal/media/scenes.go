package media

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/nguyentantai21042004/video-notes/internal/apperr"
)

const (
	// minSceneChange is the scene-change score a frame must exceed to count.
	minSceneChange = 0.15
	// minTimeGap is the minimum spacing in seconds between kept offsets.
	minTimeGap = 10
	// maxFrames caps how many representative timestamps a video yields.
	maxFrames = 50
)

var ptsTimeRe = regexp.MustCompile(`pts_time:(\d+(?:\.\d+)?)`)

// DetectScenes runs a single-pass scene-change filter over the video and
// returns representative second offsets: the first reported change, then only
// changes at least minTimeGap seconds after the last kept one, capped at
// maxFrames, in time order. Offsets are parsed incrementally out of the
// filter's progress stream.
func (m *implMedia) DetectScenes(ctx context.Context, videoPath string) ([]int, error) {
	m.logger.Info(ctx, "Detecting scene changes: %s", videoPath)

	var kept []int
	onLine := func(line string) {
		match := ptsTimeRe.FindStringSubmatch(line)
		if match == nil {
			return
		}
		secs, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return
		}
		offset := int(math.Round(secs))

		if len(kept) > 0 && offset-kept[len(kept)-1] < minTimeGap {
			return
		}
		if len(kept) >= maxFrames {
			return
		}
		kept = append(kept, offset)
	}

	args := []string{
		"-i", videoPath,
		"-vf", fmt.Sprintf("select='gt(scene,%g)',showinfo", minSceneChange),
		"-vsync", "0",
		"-an",
		"-f", "null",
		"-",
	}

	if err := m.executor.Stream(ctx, onLine, m.ffmpeg, args...); err != nil {
		return nil, &apperr.ExternalToolError{Tool: "ffmpeg scene detect", Err: err}
	}

	m.logger.Info(ctx, "Scene detection found %d timestamps", len(kept))
	return kept, nil
}
