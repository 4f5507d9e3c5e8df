package media

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/video-notes/internal/apperr"
	"github.com/nguyentantai21042004/video-notes/internal/logger"
)

// fakeExecutor simulates external command runs.
type fakeExecutor struct {
	mu      sync.Mutex
	calls   int
	execute func(ctx context.Context, name string, args ...string) (string, error)
	stream  func(ctx context.Context, onLine func(string), name string, args ...string) error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.execute == nil {
		return "", nil
	}
	return f.execute(ctx, name, args...)
}

func (f *fakeExecutor) Stream(ctx context.Context, onLine func(string), name string, args ...string) error {
	if f.stream == nil {
		return nil
	}
	return f.stream(ctx, onLine, name, args...)
}

func newTestMedia(exec *fakeExecutor) *implMedia {
	return &implMedia{
		ffmpeg:     "ffmpeg",
		executor:   exec,
		logger:     logger.New("error", "text"),
		batchPause: 0,
	}
}

func TestDetectScenesKeepFirstAfterGap(t *testing.T) {
	exec := &fakeExecutor{
		stream: func(ctx context.Context, onLine func(string), name string, args ...string) error {
			for _, ts := range []string{"1.000000", "2.000000", "9.000000", "9.200000", "21.000000"} {
				onLine(fmt.Sprintf("[Parsed_showinfo_1 @ 0x0] n:0 pts:1 pts_time:%s", ts))
			}
			return nil
		},
	}

	scenes, err := newTestMedia(exec).DetectScenes(context.Background(), "video.mp4")
	if err != nil {
		t.Fatalf("DetectScenes() error = %v", err)
	}
	if len(scenes) != 2 || scenes[0] != 1 || scenes[1] != 21 {
		t.Errorf("scenes = %v, want [1 21]", scenes)
	}
}

func TestDetectScenesIgnoresUnrelatedLines(t *testing.T) {
	exec := &fakeExecutor{
		stream: func(ctx context.Context, onLine func(string), name string, args ...string) error {
			onLine("frame=  100 fps= 25 q=-0.0 size=N/A")
			onLine("[Parsed_showinfo_1 @ 0x0] pts_time:5.500000 duration:0.04")
			onLine("random noise")
			return nil
		},
	}

	scenes, err := newTestMedia(exec).DetectScenes(context.Background(), "video.mp4")
	if err != nil {
		t.Fatalf("DetectScenes() error = %v", err)
	}
	// 5.5 rounds up to 6
	if len(scenes) != 1 || scenes[0] != 6 {
		t.Errorf("scenes = %v, want [6]", scenes)
	}
}

func TestDetectScenesCapped(t *testing.T) {
	exec := &fakeExecutor{
		stream: func(ctx context.Context, onLine func(string), name string, args ...string) error {
			for i := 0; i < 100; i++ {
				onLine(fmt.Sprintf("pts_time:%d.000000", i*20))
			}
			return nil
		},
	}

	scenes, err := newTestMedia(exec).DetectScenes(context.Background(), "video.mp4")
	if err != nil {
		t.Fatalf("DetectScenes() error = %v", err)
	}
	if len(scenes) != maxFrames {
		t.Errorf("scenes = %d, want capped at %d", len(scenes), maxFrames)
	}
	for i := 1; i < len(scenes); i++ {
		if scenes[i] <= scenes[i-1] {
			t.Fatalf("scenes not in time order: %v", scenes)
		}
	}
}

func TestDetectScenesToolError(t *testing.T) {
	exec := &fakeExecutor{
		stream: func(ctx context.Context, onLine func(string), name string, args ...string) error {
			return errors.New("exit status 1")
		},
	}

	_, err := newTestMedia(exec).DetectScenes(context.Background(), "video.mp4")
	var te *apperr.ExternalToolError
	if !errors.As(err, &te) {
		t.Fatalf("DetectScenes() error = %v, want ExternalToolError", err)
	}
}

func TestExtractFramesBoundedParallelism(t *testing.T) {
	var mu sync.Mutex
	inFlight, peak := 0, 0

	exec := &fakeExecutor{}
	exec.execute = func(ctx context.Context, name string, args ...string) (string, error) {
		mu.Lock()
		inFlight++
		if inFlight > peak {
			peak = inFlight
		}
		mu.Unlock()
		defer func() {
			mu.Lock()
			inFlight--
			mu.Unlock()
		}()
		return "", nil
	}

	times := []int{1, 11, 21, 31, 41, 51, 61}
	count, err := newTestMedia(exec).ExtractFrames(context.Background(), "v.mp4", t.TempDir(), times, 3)
	if err != nil {
		t.Fatalf("ExtractFrames() error = %v", err)
	}
	if count != len(times) {
		t.Errorf("success count = %d, want %d", count, len(times))
	}
	if peak > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", peak)
	}
	if exec.calls != len(times) {
		t.Errorf("executor calls = %d, want %d", exec.calls, len(times))
	}
}

func TestExtractFramesPartialFailureTolerated(t *testing.T) {
	exec := &fakeExecutor{}
	exec.execute = func(ctx context.Context, name string, args ...string) (string, error) {
		// Fail the frame at 21 seconds, succeed for the rest.
		for _, a := range args {
			if a == "21" {
				return "", errors.New("exit status 1")
			}
		}
		return "", nil
	}

	count, err := newTestMedia(exec).ExtractFrames(context.Background(), "v.mp4", t.TempDir(), []int{1, 21, 41}, 3)
	if err != nil {
		t.Fatalf("ExtractFrames() error = %v", err)
	}
	if count != 2 {
		t.Errorf("success count = %d, want 2", count)
	}
}

func TestExtractFramesOutputNaming(t *testing.T) {
	var got []string
	var mu sync.Mutex
	exec := &fakeExecutor{}
	exec.execute = func(ctx context.Context, name string, args ...string) (string, error) {
		mu.Lock()
		got = append(got, args[len(args)-1])
		mu.Unlock()
		return "", nil
	}

	if _, err := newTestMedia(exec).ExtractFrames(context.Background(), "v.mp4", "/tmp/images", []int{7}, 1); err != nil {
		t.Fatalf("ExtractFrames() error = %v", err)
	}
	if len(got) != 1 || !strings.HasSuffix(got[0], "7.jpg") {
		t.Errorf("output path = %v, want .../7.jpg", got)
	}
}

func TestDefaultMaxParallel(t *testing.T) {
	n := DefaultMaxParallel()
	if n < 1 || n > 3 {
		t.Errorf("DefaultMaxParallel() = %d, want within [1,3]", n)
	}
}
