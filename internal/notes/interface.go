package notes

import (
	"context"

	"github.com/nguyentantai21042004/video-notes/internal/job"
)

type Notes interface {
	// BuildDocument refines the raw transcript into sections, combines them
	// into one Markdown document and renders the derived formats.
	BuildDocument(ctx context.Context, dir job.Dir, rawTranscript string) error
	// Archive packages all job artifacts into zip/transcript.zip.
	Archive(ctx context.Context, dir job.Dir) error
}
