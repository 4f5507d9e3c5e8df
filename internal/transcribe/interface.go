package transcribe

import (
	"context"
)

type Transcriber interface {
	// Transcribe runs the speech-to-text engine over the audio file and
	// returns the timed segments in order.
	Transcribe(ctx context.Context, audioPath string) ([]Segment, error)
}
