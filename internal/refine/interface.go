package refine

import (
	"context"
	"encoding/json"

	"github.com/nguyentantai21042004/video-notes/internal/job"
)

// Refiner turns long text into a merged structured result for one goal,
// caching the result under the job directory.
type Refiner interface {
	Refine(ctx context.Context, dir job.Dir, goal Goal, content string) ([]json.RawMessage, error)
}
