package pipeline

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/video-notes/internal/apperr"
	"github.com/nguyentantai21042004/video-notes/internal/config"
	"github.com/nguyentantai21042004/video-notes/internal/job"
	"github.com/nguyentantai21042004/video-notes/internal/logger"
	"github.com/nguyentantai21042004/video-notes/internal/notes"
	"github.com/nguyentantai21042004/video-notes/internal/refine"
	"github.com/nguyentantai21042004/video-notes/internal/transcribe"
)

// fakeMedia simulates the transcoder by writing the files a real run would.
type fakeMedia struct {
	audioCalls int
	audioErr   error
}

func (f *fakeMedia) ExtractAudio(ctx context.Context, videoPath, audioPath string) error {
	f.audioCalls++
	if f.audioErr != nil {
		return f.audioErr
	}
	return os.WriteFile(audioPath, []byte("wav"), 0644)
}

func (f *fakeMedia) DetectScenes(ctx context.Context, videoPath string) ([]int, error) {
	return []int{5}, nil
}

func (f *fakeMedia) ExtractFrames(ctx context.Context, videoPath, imagesDir string, times []int, maxParallel int) (int, error) {
	for _, t := range times {
		if err := os.WriteFile(filepath.Join(imagesDir, fmt.Sprintf("%d.jpg", t)), []byte("jpg"), 0644); err != nil {
			return 0, err
		}
	}
	return len(times), nil
}

type fakeTranscriber struct {
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) ([]transcribe.Segment, error) {
	f.calls++
	return []transcribe.Segment{
		{Start: "00:00:00,000", Speech: "Hello there."},
		{Start: "00:00:06,000", Speech: "General remarks."},
	}, nil
}

// fakeRefiner mirrors a cached refinement service: fixed entries per goal.
type fakeRefiner struct{}

func (fakeRefiner) Refine(ctx context.Context, dir job.Dir, goal refine.Goal, content string) ([]json.RawMessage, error) {
	entry := map[string]map[string]interface{}{
		"mainGoal":     {"Header": "Intro", "Content": "Opening.", "Timestamp": "(00:00:00)"},
		"summaryGoal":  {"Header": "Point", "Content": "A sentence"},
		"glossaryGoal": {"Term": "Job", "Definition": "A video lifecycle."},
		"faqGoal":      {"Question": "Why?", "Answer": "Because."},
		"tldrGoal":     {"Title": "TL;DR", "Content": "Short."},
		"slidesGoal":   {"Title": "Slide", "Content": "Bullet"},
	}[goal.Name]
	raw, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return []json.RawMessage{raw}, nil
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Paths:       config.PathsConfig{Jobs: t.TempDir()},
		Performance: config.PerformanceConfig{MaxConcurrent: 2},
		Server:      config.ServerConfig{MaxUploadBytes: 2 * 1024 * 1024 * 1024},
	}
}

func newTestPipeline(t *testing.T, cfg *config.Config, m *fakeMedia, tr *fakeTranscriber) Pipeline {
	log := logger.New("error", "text")
	return New(cfg, m, tr, notes.New(fakeRefiner{}, log), log)
}

func submitTestVideo(t *testing.T, p Pipeline) string {
	t.Helper()
	id, err := p.Submit(context.Background(), Upload{
		Filename:    "My Talk.mp4",
		ContentType: "video/mp4",
		Size:        1024,
		Reader:      strings.NewReader("fake video bytes"),
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	return id
}

func TestSubmitCreatesVideoArtifact(t *testing.T) {
	cfg := testConfig(t)
	p := newTestPipeline(t, cfg, &fakeMedia{}, &fakeTranscriber{})

	id := submitTestVideo(t, p)
	if !strings.HasSuffix(id, "-My_Talk") {
		t.Errorf("id = %q, want sanitized name suffix", id)
	}

	videoPath := filepath.Join(cfg.Paths.Jobs, id, "video", "My_Talk.mp4")
	if _, err := os.Stat(videoPath); err != nil {
		t.Errorf("video artifact missing: %v", err)
	}

	status, err := p.Status(id)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Markdown || status.Zip {
		t.Errorf("fresh job should have no derived artifacts: %+v", status)
	}
}

func TestSubmitRejectsOversized(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.MaxUploadBytes = 1024
	p := newTestPipeline(t, cfg, &fakeMedia{}, &fakeTranscriber{})

	_, err := p.Submit(context.Background(), Upload{
		Filename:    "huge.mp4",
		ContentType: "video/mp4",
		Size:        2048,
		Reader:      strings.NewReader("x"),
	})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Submit() error = %v, want ValidationError", err)
	}

	entries, err := os.ReadDir(cfg.Paths.Jobs)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("rejected upload left %d entries in jobs dir", len(entries))
	}
}

func TestSubmitRejectsBadType(t *testing.T) {
	p := newTestPipeline(t, testConfig(t), &fakeMedia{}, &fakeTranscriber{})

	_, err := p.Submit(context.Background(), Upload{
		Filename:    "evil.exe",
		ContentType: "application/octet-stream",
		Size:        10,
		Reader:      strings.NewReader("x"),
	})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Submit() error = %v, want ValidationError", err)
	}
}

func TestSubmitFile(t *testing.T) {
	cfg := testConfig(t)
	p := newTestPipeline(t, cfg, &fakeMedia{}, &fakeTranscriber{})

	src := filepath.Join(t.TempDir(), "drop.mov")
	if err := os.WriteFile(src, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	id, err := p.SubmitFile(context.Background(), src)
	if err != nil {
		t.Fatalf("SubmitFile() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Jobs, id, "video", "drop.mov")); err != nil {
		t.Errorf("video artifact missing: %v", err)
	}

	if _, err := p.SubmitFile(context.Background(), "notes.txt"); err == nil {
		t.Error("SubmitFile() should reject non-video extension")
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	m := &fakeMedia{}
	tr := &fakeTranscriber{}
	p := newTestPipeline(t, cfg, m, tr)

	id := submitTestVideo(t, p)
	if err := p.Run(context.Background(), id); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	status, err := p.Status(id)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if !status.Zip || !status.Markdown {
		t.Fatalf("pipeline did not complete: %+v", status)
	}
	if status.DownloadURLs["zip"] == "" {
		t.Errorf("zip download URL missing: %+v", status.DownloadURLs)
	}

	zipPath, err := p.Artifact(id, "zip")
	if err != nil {
		t.Fatalf("Artifact() error = %v", err)
	}
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer r.Close()

	names := make(map[string]bool)
	for _, f := range r.File {
		names[f.Name] = true
	}
	for _, want := range []string{"markdown/transcript.md", "transcript.txt", "transcript.json", "images/5.jpg"} {
		if !names[want] {
			t.Errorf("archive missing %s (have %v)", want, names)
		}
	}
}

func TestRunIdempotentResume(t *testing.T) {
	cfg := testConfig(t)
	m := &fakeMedia{}
	tr := &fakeTranscriber{}
	p := newTestPipeline(t, cfg, m, tr)

	id := submitTestVideo(t, p)
	for i := 0; i < 2; i++ {
		if err := p.Run(context.Background(), id); err != nil {
			t.Fatalf("Run() #%d error = %v", i+1, err)
		}
	}

	if m.audioCalls != 1 {
		t.Errorf("audio extracted %d times, want 1", m.audioCalls)
	}
	if tr.calls != 1 {
		t.Errorf("transcribed %d times, want 1", tr.calls)
	}
}

func TestRunAudioFailureAborts(t *testing.T) {
	cfg := testConfig(t)
	m := &fakeMedia{audioErr: &apperr.ExternalToolError{Tool: "ffmpeg extract audio", Err: errors.New("exit status 1")}}
	tr := &fakeTranscriber{}
	p := newTestPipeline(t, cfg, m, tr)

	id := submitTestVideo(t, p)
	err := p.Run(context.Background(), id)
	var te *apperr.ExternalToolError
	if !errors.As(err, &te) {
		t.Fatalf("Run() error = %v, want ExternalToolError", err)
	}
	if tr.calls != 0 {
		t.Errorf("transcriber called despite audio failure")
	}

	status, serr := p.Status(id)
	if serr != nil {
		t.Fatalf("Status() error = %v", serr)
	}
	if status.Zip {
		t.Errorf("failed job reported complete: %+v", status)
	}
}

func TestRunUnknownJob(t *testing.T) {
	p := newTestPipeline(t, testConfig(t), &fakeMedia{}, &fakeTranscriber{})

	err := p.Run(context.Background(), "1700000000000-missing")
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Run() error = %v, want NotFoundError", err)
	}
}
