package refine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/video-notes/internal/logger"
)

type implGenaiClient struct {
	apiKeys []string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// NewGenaiClient creates a Client backed by the Gemini API that rotates
// through the supplied API keys on quota errors.
func NewGenaiClient(apiKeys []string, log logger.Logger) Client {
	return &implGenaiClient{
		apiKeys: apiKeys,
		logger:  log,
	}
}

// Generate sends one prompt to Gemini and returns the reply text.
// Rotates API keys on 429 / quota errors.
func (c *implGenaiClient) Generate(ctx context.Context, req Request) (string, error) {
	attempts := len(c.apiKeys)
	var lastErr error

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	for range attempts {
		idx, key := c.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				c.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				c.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("empty response from model")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// key returns the current key index and value. One client is shared by
// every concurrent job, so reads and rotations go through the mutex.
func (c *implGenaiClient) key() (int, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentKey, c.apiKeys[c.currentKey]
}

func (c *implGenaiClient) rotateKey() {
	c.mu.Lock()
	c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	c.mu.Unlock()
}
