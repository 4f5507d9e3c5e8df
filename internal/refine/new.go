package refine

import (
	"time"

	"github.com/nguyentantai21042004/video-notes/internal/logger"
)

const (
	defaultCallTimeout = 120 * time.Second
	defaultMaxAttempts = 3
	defaultBackoffBase = 10 * time.Second
)

type implRefiner struct {
	client      Client
	logger      logger.Logger
	model       string
	callTimeout time.Duration
	retry       RetryPolicy
}

// New creates a Refiner. Per-chunk calls are bounded by a 120s timeout and
// retried up to 3 times on timeout with linearly increasing backoff.
func New(client Client, model string, log logger.Logger) Refiner {
	return &implRefiner{
		client:      client,
		logger:      log,
		model:       model,
		callTimeout: defaultCallTimeout,
		retry: RetryPolicy{
			MaxAttempts: defaultMaxAttempts,
			Backoff:     LinearBackoff(defaultBackoffBase),
		},
	}
}
