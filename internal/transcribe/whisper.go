package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/video-notes/internal/apperr"
)

// whisperOutput mirrors the JSON file whisper.cpp writes with -oj.
type whisperOutput struct {
	Transcription []struct {
		Timestamps struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"timestamps"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs Whisper once over the audio file and returns its timed
// segments in order. Whisper writes a JSON file next to the audio; the file
// is parsed and removed afterwards.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) ([]Segment, error) {
	// Whisper appends .json to this prefix
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Starting transcription with %d threads: %s", t.cfg.Threads, audioPath)

	// -m: Model path
	// -f: Input audio file
	// -oj: Output JSON format
	// -l: Force language (prevents hallucination)
	// -t: Number of threads
	// --output-file: Output file prefix
	args := []string{
		"-m", t.cfg.ModelPath,
		"-f", audioPath,
		"-oj",
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.BinaryPath, args...); err != nil {
		return nil, &apperr.ExternalToolError{Tool: "whisper transcribe", Err: err}
	}

	jsonPath := outputPrefix + ".json"
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, &apperr.ExternalToolError{Tool: "whisper transcribe", Err: fmt.Errorf("read output: %w", err)}
	}
	defer os.Remove(jsonPath)

	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &apperr.ExternalToolError{Tool: "whisper transcribe", Err: fmt.Errorf("parse output: %w", err)}
	}

	segments := make([]Segment, 0, len(out.Transcription))
	for _, item := range out.Transcription {
		speech := strings.TrimSpace(item.Text)
		if speech == "" {
			continue
		}
		segments = append(segments, Segment{
			Start:  item.Timestamps.From,
			Speech: speech,
		})
	}

	t.logger.Info(ctx, "Transcription completed: %d segments", len(segments))
	return segments, nil
}
