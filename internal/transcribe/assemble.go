package transcribe

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/video-notes/internal/job"
)

const (
	// windowSeconds is the fixed width of one transcript line.
	windowSeconds = 5
	// maxTimeJump clamps segment start times that jump more than 10 minutes
	// ahead of the last accepted time. Noisy transcription timing must not
	// create huge silent gaps.
	maxTimeJump = 600
)

// leadingPunctuation is appended without a separating space.
const leadingPunctuation = `,.;!?-()[]{}<>:"'`

// Assemble renders timed segments into the plain-text transcript: one line
// per 5-second window, formatted "(hh:mm:ss) text". Segments are consumed in
// order; a start time more than maxTimeJump seconds ahead of the last
// accepted one is clamped rather than trusted.
func Assemble(segments []Segment) string {
	if len(segments) == 0 {
		return ""
	}

	var transcript strings.Builder
	var currentText string

	lineStartTime := segments[0].StartSeconds()
	lastValidTime := lineStartTime

	for _, seg := range segments {
		content := strings.TrimSpace(seg.Speech)
		startTime := seg.StartSeconds()

		if startTime-lastValidTime > maxTimeJump {
			startTime = lastValidTime + maxTimeJump
		}
		lastValidTime = startTime

		for startTime-lineStartTime >= windowSeconds {
			if strings.TrimSpace(currentText) != "" {
				transcript.WriteString(fmt.Sprintf("(%s) %s\n", formatTime(lineStartTime), strings.TrimSpace(currentText)))
				currentText = ""
			}
			lineStartTime += windowSeconds
		}

		if strings.HasSuffix(currentText, " ") || startsWithPunctuation(content) {
			currentText += content
		} else {
			currentText += " " + content
		}
	}

	if strings.TrimSpace(currentText) != "" {
		transcript.WriteString(fmt.Sprintf("(%s) %s\n", formatTime(lineStartTime), strings.TrimSpace(currentText)))
	}

	return transcript.String()
}

func startsWithPunctuation(s string) bool {
	return s != "" && strings.ContainsRune(leadingPunctuation, rune(s[0]))
}

func formatTime(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// WriteArtifacts persists both the rendered transcript and the raw segment
// sequence under the job directory.
func WriteArtifacts(dir job.Dir, segments []Segment, transcript string) error {
	if err := os.WriteFile(dir.TranscriptTxt(), []byte(transcript), 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	raw, err := json.Marshal(segments)
	if err != nil {
		return fmt.Errorf("marshal segments: %w", err)
	}
	if err := os.WriteFile(dir.TranscriptJSON(), raw, 0644); err != nil {
		return fmt.Errorf("write segments: %w", err)
	}
	return nil
}
