package refine

import "context"

// Request is one text-generation call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float32
}

// Client abstracts the text-generation service so the stage can be exercised
// without network access.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}
